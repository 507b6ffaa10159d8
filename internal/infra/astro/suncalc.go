package astro

import (
	"math"
	"time"

	"github.com/sixdouglas/suncalc"

	"github.com/alkias2/SolunarBase/internal/domain/solunar"
)

// Provider implements solunar.AstroProvider on top of the suncalc
// ephemeris. Moon phases are resolved to the closed enum here so the
// engine never sees raw phase values.
type Provider struct{}

// NewProvider constructs the suncalc-backed provider.
func NewProvider() *Provider {
	return &Provider{}
}

// SunTimes returns the UTC sunrise and sunset for the calendar day
// starting at dayStart. Events that do not occur are reported as nil.
func (p *Provider) SunTimes(lat, lon float64, day time.Time) solunar.SunTimes {
	// Anchor at local noon so suncalc resolves events of this day rather
	// than a neighbor.
	noon := day.Add(12 * time.Hour)
	times := suncalc.GetTimes(noon, lat, lon)
	return solunar.SunTimes{
		Rise: dayEvent(times[suncalc.Sunrise].Value, noon),
		Set:  dayEvent(times[suncalc.Sunset].Value, noon),
	}
}

// dayEvent validates a computed sun event. Polar day and polar night leave
// suncalc with no solution, which surfaces as a zero or far-out-of-range
// instant; both are reported as nil.
func dayEvent(t time.Time, noon time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	if d := t.Sub(noon); d < -24*time.Hour || d > 24*time.Hour {
		return nil
	}
	utc := t.UTC()
	return &utc
}

// MoonTimes returns the UTC moonrise and moonset for the day, each
// optional.
func (p *Provider) MoonTimes(lat, lon float64, day time.Time) solunar.MoonTimes {
	times := suncalc.GetMoonTimes(day, lat, lon, true)
	mt := solunar.MoonTimes{}
	if !times.AlwaysUp && !times.AlwaysDown {
		mt.Rise = optionalInstant(times.Rise)
		mt.Set = optionalInstant(times.Set)
	}
	return mt
}

// MoonAltitude returns the Moon's altitude in degrees at the instant.
func (p *Provider) MoonAltitude(lat, lon float64, at time.Time) float64 {
	pos := suncalc.GetMoonPosition(at, lat, lon)
	return pos.Altitude * 180 / math.Pi
}

// MoonPhase returns the day's phase resolved to the closed enum, with the
// illuminated fraction.
func (p *Provider) MoonPhase(_, _ float64, day time.Time) solunar.MoonPhaseInfo {
	illum := suncalc.GetMoonIllumination(day.Add(12 * time.Hour))
	return solunar.MoonPhaseInfo{
		Phase:        phaseFromValue(illum.Phase),
		Illumination: illum.Fraction,
	}
}

// phaseFromValue maps the continuous phase value (0 new, 0.5 full) to the
// enum, with a ±0.02 band around each cardinal phase.
func phaseFromValue(v float64) solunar.MoonPhase {
	v = math.Mod(v, 1)
	if v < 0 {
		v += 1
	}
	switch {
	case v < 0.02 || v > 0.98:
		return solunar.PhaseNew
	case v < 0.23:
		return solunar.PhaseWaxingCrescent
	case v < 0.27:
		return solunar.PhaseFirstQuarter
	case v < 0.48:
		return solunar.PhaseWaxingGibbous
	case v < 0.52:
		return solunar.PhaseFull
	case v < 0.73:
		return solunar.PhaseWaningGibbous
	case v < 0.77:
		return solunar.PhaseLastQuarter
	default:
		return solunar.PhaseWaningCrescent
	}
}

func optionalInstant(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	utc := t.UTC()
	return &utc
}

var _ solunar.AstroProvider = (*Provider)(nil)
