package solunar

import "time"

// SunTimes holds the day's sunrise and sunset. Either may be nil when the
// event does not occur at the location (polar day or night).
type SunTimes struct {
	Rise *time.Time
	Set  *time.Time
}

// MoonTimes holds the day's moonrise and moonset, each optional.
type MoonTimes struct {
	Rise *time.Time
	Set  *time.Time
}

// AstroProvider is the narrow ephemeris interface the engine consumes.
// Implementations report absent events as nil instants, never as errors;
// the engine degrades gracefully when an event is missing.
type AstroProvider interface {
	SunTimes(lat, lon float64, day time.Time) SunTimes
	MoonTimes(lat, lon float64, day time.Time) MoonTimes
	MoonAltitude(lat, lon float64, at time.Time) float64
	MoonPhase(lat, lon float64, day time.Time) MoonPhaseInfo
}
