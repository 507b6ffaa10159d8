package solunar

import "time"

const (
	coarseStep    = 5 * time.Minute
	coarseSamples = 288
	refineRadius  = 30 * time.Minute
	refineStep    = time.Minute
)

// findTransits locates the Moon's upper and lower transits within the UTC
// day starting at dayStart by sampling the altitude function. A 5-minute
// coarse scan over the full day seeds a 1-minute refinement over a ±30
// minute window around each candidate. Ties keep the first occurrence, so
// precision is bounded by the refinement grid; no interpolation is done.
//
// At high latitudes the altitude may be monotonic across the day. The scan
// then reports the boundary sample holding the global extremum, which is a
// documented approximation rather than an error.
func findTransits(altitude func(time.Time) float64, dayStart time.Time) (upper, lower *time.Time) {
	var (
		maxAlt, minAlt float64
		maxAt, minAt   time.Time
		seeded         bool
	)
	for i := 0; i < coarseSamples; i++ {
		t := dayStart.Add(time.Duration(i) * coarseStep)
		alt := altitude(t)
		if !seeded {
			maxAlt, minAlt = alt, alt
			maxAt, minAt = t, t
			seeded = true
			continue
		}
		if alt > maxAlt {
			maxAlt, maxAt = alt, t
		}
		if alt < minAlt {
			minAlt, minAt = alt, t
		}
	}
	if !seeded {
		return nil, nil
	}

	up := refineExtremum(altitude, maxAt, true)
	lo := refineExtremum(altitude, minAt, false)
	return &up, &lo
}

// refineExtremum rescans [seed-refineRadius, seed+refineRadius] at 1-minute
// resolution and returns the instant of the local max (or min).
func refineExtremum(altitude func(time.Time) float64, seed time.Time, max bool) time.Time {
	start := seed.Add(-refineRadius)
	best := start
	bestAlt := altitude(start)
	for t := start.Add(refineStep); !t.After(seed.Add(refineRadius)); t = t.Add(refineStep) {
		alt := altitude(t)
		if max && alt > bestAlt {
			bestAlt, best = alt, t
		}
		if !max && alt < bestAlt {
			bestAlt, best = alt, t
		}
	}
	return best
}
