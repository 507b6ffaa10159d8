package solunar

import "time"

// PeriodKind identifies the astronomical event a period is built around.
type PeriodKind string

const (
	PeriodUpperTransit PeriodKind = "upper_transit"
	PeriodLowerTransit PeriodKind = "lower_transit"
	PeriodMoonrise     PeriodKind = "moonrise"
	PeriodMoonset      PeriodKind = "moonset"
)

// Major reports whether the kind denotes a major (transit-centered) period.
func (k PeriodKind) Major() bool {
	return k == PeriodUpperTransit || k == PeriodLowerTransit
}

// Period is a major or minor activity window. All instants are UTC and
// satisfy Start <= Center <= End.
type Period struct {
	Kind   PeriodKind
	Start  time.Time
	End    time.Time
	Center time.Time
}

// Contains reports whether t falls inside the inclusive [Start, End] window.
func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.Start) && !t.After(p.End)
}

// MoonPhase is the closed set of lunar phases resolved at the provider
// boundary. The engine never matches phase strings at runtime.
type MoonPhase string

const (
	PhaseNew            MoonPhase = "new"
	PhaseWaxingCrescent MoonPhase = "waxing_crescent"
	PhaseFirstQuarter   MoonPhase = "first_quarter"
	PhaseWaxingGibbous  MoonPhase = "waxing_gibbous"
	PhaseFull           MoonPhase = "full"
	PhaseWaningGibbous  MoonPhase = "waning_gibbous"
	PhaseLastQuarter    MoonPhase = "last_quarter"
	PhaseWaningCrescent MoonPhase = "waning_crescent"
)

// Multiplier returns the activity multiplier solunar theory assigns to the
// phase. Phases without a documented effect are neutral.
func (p MoonPhase) Multiplier() float64 {
	switch p {
	case PhaseNew:
		return 1.05
	case PhaseFull:
		return 1.10
	case PhaseLastQuarter:
		return 0.95
	default:
		return 1.00
	}
}

// MoonPhaseInfo is computed once per day and shared across all slices.
type MoonPhaseInfo struct {
	Phase        MoonPhase `json:"phase"`
	Illumination float64   `json:"illumination"`
}

// TideType marks a tide extreme as high or low water.
type TideType string

const (
	TideHigh TideType = "high"
	TideLow  TideType = "low"
)

// TideEvent is a predicted tide extreme. Events are assumed roughly
// alternating in time order; strict alternation is not validated.
type TideEvent struct {
	Time   time.Time `json:"time"`
	Height float64   `json:"height"`
	Type   TideType  `json:"type"`
}

// WeatherObservation is a timestamped set of marine weather readings.
// Consecutive observations supply the pressure trend.
type WeatherObservation struct {
	Time             time.Time `json:"time"`
	AirTemperature   float64   `json:"airTemperature"`
	WaterTemperature float64   `json:"waterTemperature"`
	CloudCover       float64   `json:"cloudCover"`
	WindDirection    float64   `json:"windDirection"`
	WindSpeed        float64   `json:"windSpeed"`
	Pressure         float64   `json:"pressure"`
	Humidity         float64   `json:"humidity"`
	WaveHeight       float64   `json:"waveHeight"`
	CurrentSpeed     float64   `json:"currentSpeed"`
}

// SolunarWeights scale the solunar components of the model.
type SolunarWeights struct {
	Major     float64 `json:"major" yaml:"major"`
	Minor     float64 `json:"minor" yaml:"minor"`
	MoonPhase float64 `json:"moonPhase" yaml:"moonPhase"`
}

// WeatherWeights scale the seven weather component scores.
type WeatherWeights struct {
	WaterTemperature float64 `json:"waterTemperature" yaml:"waterTemperature"`
	Pressure         float64 `json:"pressure" yaml:"pressure"`
	Wind             float64 `json:"wind" yaml:"wind"`
	CloudCover       float64 `json:"cloudCover" yaml:"cloudCover"`
	Waves            float64 `json:"waves" yaml:"waves"`
	AirTemperature   float64 `json:"airTemperature" yaml:"airTemperature"`
	Humidity         float64 `json:"humidity" yaml:"humidity"`
}

// TideWeights scale the two tide sub-scores.
type TideWeights struct {
	Level    float64 `json:"level" yaml:"level"`
	Movement float64 `json:"movement" yaml:"movement"`
}

// Weights is the immutable modifier weight configuration threaded through
// every calculation. Use DefaultWeights when the caller supplies none.
type Weights struct {
	Solunar SolunarWeights `json:"solunar" yaml:"solunar"`
	Weather WeatherWeights `json:"weather" yaml:"weather"`
	Tide    TideWeights    `json:"tide" yaml:"tide"`
}

// DefaultWeights returns the documented default modifier weights.
func DefaultWeights() Weights {
	return Weights{
		Solunar: SolunarWeights{Major: 1.0, Minor: 0.6, MoonPhase: 0.3},
		Weather: WeatherWeights{
			WaterTemperature: 0.9,
			Pressure:         0.8,
			Wind:             0.7,
			CloudCover:       0.5,
			Waves:            0.6,
			AirTemperature:   0.4,
			Humidity:         0.2,
		},
		Tide: TideWeights{Level: 0.8, Movement: 1.0},
	}
}

// Resolution selects the slice granularity of a forecast.
type Resolution string

const (
	ResolutionHour    Resolution = "hour"
	ResolutionQuarter Resolution = "quarter"
)

// SliceCount returns the number of scored slices for the resolution.
func (r Resolution) SliceCount() int {
	if r == ResolutionQuarter {
		return 96
	}
	return 24
}

// Rating is the qualitative summary of a day's activity.
type Rating string

const (
	RatingExcellent Rating = "Excellent"
	RatingGood      Rating = "Good"
	RatingFair      Rating = "Fair"
	RatingPoor      Rating = "Poor"
)

// ActivitySample is one scored time slice.
type ActivitySample struct {
	Hour      int    `json:"hour"`
	Minute    int    `json:"minute"`
	Score     int    `json:"score"`
	Time      string `json:"time"`
	LocalTime string `json:"localTime"`
}

// ActivityBreakdown decomposes a slice score into its sources. Rows exist
// only when weather and/or tide inputs were supplied.
type ActivityBreakdown struct {
	Hour            int     `json:"hour"`
	Minute          int     `json:"minute"`
	SolunarScore    float64 `json:"solunarScore"`
	WeatherModifier float64 `json:"weatherModifier"`
	TideModifier    float64 `json:"tideModifier"`
	TotalScore      int     `json:"totalScore"`
}

// PeriodView is a period serialized with both UTC and local instants.
type PeriodView struct {
	Kind        PeriodKind `json:"kind"`
	Start       string     `json:"start"`
	End         string     `json:"end"`
	Center      string     `json:"center"`
	LocalStart  string     `json:"localStart"`
	LocalEnd    string     `json:"localEnd"`
	LocalCenter string     `json:"localCenter"`
}
