package solunar

import (
	"math"
	"time"
)

const (
	majorAmplitude  = 100.0
	majorGaussWidth = 800.0
	majorReach      = 90.0
	minorAmplitude  = 70.0
	minorGaussWidth = 200.0
	minorReach      = 45.0

	overlapBonus = 18.0
)

// scorer evaluates per-slice activity scores for one day. It is a pure
// value: all inputs are fixed at construction and slices are independent.
type scorer struct {
	majors  []Period
	minors  []Period
	phase   MoonPhaseInfo
	sunrise *time.Time
	sunset  *time.Time

	weather     []WeatherObservation
	tides       []TideEvent
	weatherCalc weatherCalculator
	tideCalc    tideCalculator
}

type sliceScore struct {
	Total   int
	Solunar float64
	Weather float64
	Tide    float64
}

// scoreAt computes the activity score at instant t. The base solunar score
// is the max Gaussian proximity contribution across all periods, scaled by
// the moon-phase and day-time multipliers; the overlap bonus and the
// weather/tide modifiers are then added before clamping to [0, 100].
func (s *scorer) scoreAt(t time.Time) sliceScore {
	base := baseScore(t, s.majors, s.minors)
	base *= s.phase.Phase.Multiplier()
	base *= dayTimeMultiplier(t, s.sunrise, s.sunset)

	total := base
	if insideAny(t, s.majors) && insideAny(t, s.minors) {
		total += overlapBonus
	}

	var weatherMod, tideMod float64
	if len(s.weather) > 0 {
		cur, prev := observationAt(t, s.weather)
		weatherMod = s.weatherCalc.Modifier(cur, prev)
		total += weatherMod
	}
	if len(s.tides) > 0 {
		tideMod = s.tideCalc.Modifier(t, s.tides)
		total += tideMod
	}

	return sliceScore{
		Total:   int(math.Round(clampFloat(total, 0, 100))),
		Solunar: base,
		Weather: weatherMod,
		Tide:    tideMod,
	}
}

// baseScore is the maximum Gaussian contribution across every major and
// minor period; overlapping periods do not stack through this term.
func baseScore(t time.Time, majors, minors []Period) float64 {
	best := 0.0
	for _, p := range majors {
		d := math.Abs(t.Sub(p.Center).Minutes())
		if d > majorReach {
			continue
		}
		if c := majorAmplitude * math.Exp(-(d*d)/majorGaussWidth); c > best {
			best = c
		}
	}
	for _, p := range minors {
		d := math.Abs(t.Sub(p.Center).Minutes())
		if d > minorReach {
			continue
		}
		if c := minorAmplitude * math.Exp(-(d*d)/minorGaussWidth); c > best {
			best = c
		}
	}
	return best
}

// dayTimeMultiplier rates the instant against sunrise and sunset, in
// precedence order: twilight edge, the two hours after rise/set, solar
// midday lull, daytime, night. Missing sun times degrade to neutral.
func dayTimeMultiplier(t time.Time, sunrise, sunset *time.Time) float64 {
	if sunrise == nil || sunset == nil {
		return 1.0
	}
	rise, set := *sunrise, *sunset

	if within(t, rise, 30*time.Minute) || within(t, set, 30*time.Minute) {
		return 1.10
	}
	if inFollowingWindow(t, rise, 2*time.Hour) || inFollowingWindow(t, set, 2*time.Hour) {
		return 1.05
	}
	midday := rise.Add(set.Sub(rise) / 2)
	if within(t, midday, time.Hour) {
		return 0.90
	}
	if !t.Before(rise) && !t.After(set) {
		return 1.00
	}
	return 0.95
}

func within(t, ref time.Time, d time.Duration) bool {
	diff := t.Sub(ref)
	if diff < 0 {
		diff = -diff
	}
	return diff <= d
}

func inFollowingWindow(t, ref time.Time, d time.Duration) bool {
	return !t.Before(ref) && !t.After(ref.Add(d))
}

func insideAny(t time.Time, periods []Period) bool {
	for _, p := range periods {
		if p.Contains(t) {
			return true
		}
	}
	return false
}

// observationAt selects the latest observation at or before t, falling back
// to the first when t precedes the whole series. The selected observation's
// predecessor in the sorted list supplies the pressure trend.
func observationAt(t time.Time, sorted []WeatherObservation) (cur WeatherObservation, prev *WeatherObservation) {
	idx := 0
	for i, obs := range sorted {
		if obs.Time.After(t) {
			break
		}
		idx = i
	}
	if idx > 0 {
		prev = &sorted[idx-1]
	}
	return sorted[idx], prev
}

// classifyRating maps the arithmetic mean of the slice scores to the
// ordinal daily rating.
func classifyRating(samples []ActivitySample) Rating {
	if len(samples) == 0 {
		return RatingPoor
	}
	sum := 0.0
	for _, s := range samples {
		sum += float64(s.Score)
	}
	return classifyAverage(sum / float64(len(samples)))
}

func classifyAverage(avg float64) Rating {
	switch {
	case avg >= 80:
		return RatingExcellent
	case avg >= 60:
		return RatingGood
	case avg >= 40:
		return RatingFair
	default:
		return RatingPoor
	}
}
