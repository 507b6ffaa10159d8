package solunar

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/alkias2/SolunarBase/pkg/errors"
	"github.com/alkias2/SolunarBase/pkg/metrics"
	"github.com/alkias2/SolunarBase/pkg/util"
)

// Request captures one forecast query.
type Request struct {
	Latitude   float64              `json:"latitude"`
	Longitude  float64              `json:"longitude"`
	Date       string               `json:"date"`
	Timezone   string               `json:"timezone"`
	Resolution Resolution           `json:"resolution"`
	Weather    []WeatherObservation `json:"weather,omitempty"`
	Tides      []TideEvent          `json:"tides,omitempty"`
	Weights    *Weights             `json:"weights,omitempty"`
}

// Result is the read-only forecast aggregate returned to callers. All
// instants appear in both UTC and the caller-resolved local zone.
type Result struct {
	Date         string               `json:"date"`
	Latitude     float64              `json:"latitude"`
	Longitude    float64              `json:"longitude"`
	Timezone     string               `json:"timezone"`
	Resolution   Resolution           `json:"resolution"`
	MoonPhase    MoonPhaseInfo        `json:"moonPhase"`
	MajorPeriods []PeriodView         `json:"majorPeriods"`
	MinorPeriods []PeriodView         `json:"minorPeriods"`
	Samples      []ActivitySample     `json:"samples"`
	Breakdown    []ActivityBreakdown  `json:"breakdown,omitempty"`
	Rating       Rating               `json:"rating"`
	AverageScore float64              `json:"averageScore"`
	HasWeather   bool                 `json:"hasWeather"`
	HasTides     bool                 `json:"hasTides"`
	Stats        metrics.ComputeStats `json:"stats"`
}

// Config tunes the forecast service.
type Config struct {
	DefaultResolution Resolution
	CacheTTL          time.Duration
	Weights           Weights
}

// Service exposes solunar forecasting.
type Service interface {
	Forecast(ctx context.Context, req Request) (Result, error)
	Recent(ctx context.Context, limit int) ([]Record, error)
}

type service struct {
	cfg      Config
	provider AstroProvider
	cache    Cache
	repo     HistoryRepository
	logger   *slog.Logger
	now      func() time.Time
}

// NewService wires up the solunar forecast domain.
func NewService(cfg Config, provider AstroProvider, cache Cache, repo HistoryRepository, logger *slog.Logger) Service {
	if cfg.DefaultResolution == "" {
		cfg.DefaultResolution = ResolutionHour
	}
	if (cfg.Weights == Weights{}) {
		cfg.Weights = DefaultWeights()
	}
	return &service{
		cfg:      cfg,
		provider: provider,
		cache:    cache,
		repo:     repo,
		logger:   logger.With("component", "solunar.service"),
		now:      util.NowUTC,
	}
}

func (s *service) Forecast(ctx context.Context, req Request) (Result, error) {
	day, err := time.ParseInLocation("2006-01-02", req.Date, time.UTC)
	if err != nil {
		return Result{}, apperrors.Wrap("invalid_input", "date must be formatted as YYYY-MM-DD", err)
	}
	day = util.DayStartUTC(day)
	if req.Latitude < -90 || req.Latitude > 90 {
		return Result{}, apperrors.Wrap("invalid_input", "latitude must be within [-90, 90]", nil)
	}
	if req.Longitude < -180 || req.Longitude > 180 {
		return Result{}, apperrors.Wrap("invalid_input", "longitude must be within [-180, 180]", nil)
	}

	zone := time.UTC
	zoneName := "UTC"
	if req.Timezone != "" {
		zone, err = time.LoadLocation(req.Timezone)
		if err != nil {
			return Result{}, apperrors.Wrap("invalid_input", "unknown time zone", err)
		}
		zoneName = req.Timezone
	}

	resolution := req.Resolution
	switch resolution {
	case "":
		resolution = s.cfg.DefaultResolution
	case ResolutionHour, ResolutionQuarter:
	default:
		return Result{}, apperrors.Wrap("invalid_input", "resolution must be hour or quarter", nil)
	}

	weights := s.cfg.Weights
	if req.Weights != nil {
		weights = *req.Weights
	}

	cacheable := len(req.Weather) == 0 && len(req.Tides) == 0 && req.Weights == nil
	key := cacheKey(req.Latitude, req.Longitude, req.Date, zoneName, resolution)
	if cacheable && s.cache != nil {
		if cached, ok, cacheErr := s.cache.Get(ctx, key); cacheErr != nil {
			s.logger.Warn("forecast cache lookup failed", "key", key, "error", cacheErr)
		} else if ok {
			s.logger.Debug("forecast cache hit", "key", key)
			return cached, nil
		}
	}

	result := s.compute(req, day, zone, zoneName, resolution, weights)

	if s.repo != nil {
		record := Record{
			ID:           uuid.New(),
			Latitude:     req.Latitude,
			Longitude:    req.Longitude,
			Date:         req.Date,
			Timezone:     zoneName,
			Rating:       result.Rating,
			AverageScore: result.AverageScore,
			CreatedAt:    s.now().UTC(),
		}
		if saveErr := s.repo.Save(ctx, record); saveErr != nil {
			s.logger.Warn("forecast history save failed", "error", saveErr)
		}
	}

	if cacheable && s.cache != nil {
		if setErr := s.cache.Set(ctx, key, result, s.cfg.CacheTTL); setErr != nil {
			s.logger.Warn("forecast cache store failed", "key", key, "error", setErr)
		}
	}

	s.logger.Info("forecast computed",
		"date", req.Date, "lat", req.Latitude, "lon", req.Longitude,
		"rating", result.Rating, "avg", result.AverageScore,
		"altitude_samples", result.Stats.AltitudeSamples)
	return result, nil
}

func (s *service) Recent(ctx context.Context, limit int) ([]Record, error) {
	if s.repo == nil {
		return nil, nil
	}
	records, err := s.repo.Recent(ctx, limit)
	if err != nil {
		return nil, apperrors.Wrap("storage_error", "failed to read forecast history", err)
	}
	return records, nil
}

// compute runs the full engine for one day. It is deterministic: slices do
// not depend on each other and no state survives the call.
func (s *service) compute(req Request, day time.Time, zone *time.Location, zoneName string, resolution Resolution, weights Weights) Result {
	started := s.now()
	altitudeSamples := 0
	altitude := func(t time.Time) float64 {
		altitudeSamples++
		return s.provider.MoonAltitude(req.Latitude, req.Longitude, t)
	}

	upper, lower := findTransits(altitude, day)
	moon := s.provider.MoonTimes(req.Latitude, req.Longitude, day)
	sun := s.provider.SunTimes(req.Latitude, req.Longitude, day)
	phase := s.provider.MoonPhase(req.Latitude, req.Longitude, day)

	majors, minors := buildPeriods(upper, lower, moon.Rise, moon.Set)

	weather := make([]WeatherObservation, len(req.Weather))
	copy(weather, req.Weather)
	sort.Slice(weather, func(i, j int) bool { return weather[i].Time.Before(weather[j].Time) })

	sc := &scorer{
		majors:      majors,
		minors:      minors,
		phase:       phase,
		sunrise:     sun.Rise,
		sunset:      sun.Set,
		weather:     weather,
		tides:       req.Tides,
		weatherCalc: weatherCalculator{weights: weights.Weather},
		tideCalc:    tideCalculator{weights: weights.Tide},
	}

	withBreakdown := len(weather) > 0 || len(req.Tides) > 0
	step := 60
	if resolution == ResolutionQuarter {
		step = 15
	}

	samples := make([]ActivitySample, 0, resolution.SliceCount())
	var breakdown []ActivityBreakdown
	sum := 0.0
	for minuteOfDay := 0; minuteOfDay < 24*60; minuteOfDay += step {
		hour, minute := minuteOfDay/60, minuteOfDay%60
		local := time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, zone)
		at := local.UTC()

		score := sc.scoreAt(at)
		sum += float64(score.Total)
		samples = append(samples, ActivitySample{
			Hour:      hour,
			Minute:    minute,
			Score:     score.Total,
			Time:      at.Format(time.RFC3339),
			LocalTime: local.Format(time.RFC3339),
		})
		if withBreakdown {
			breakdown = append(breakdown, ActivityBreakdown{
				Hour:            hour,
				Minute:          minute,
				SolunarScore:    roundTo(score.Solunar, 2),
				WeatherModifier: roundTo(score.Weather, 2),
				TideModifier:    roundTo(score.Tide, 2),
				TotalScore:      score.Total,
			})
		}
	}

	avg := sum / float64(len(samples))
	return Result{
		Date:         req.Date,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		Timezone:     zoneName,
		Resolution:   resolution,
		MoonPhase:    phase,
		MajorPeriods: periodViews(majors, zone),
		MinorPeriods: periodViews(minors, zone),
		Samples:      samples,
		Breakdown:    breakdown,
		Rating:       classifyAverage(avg),
		AverageScore: roundTo(avg, 2),
		HasWeather:   len(weather) > 0,
		HasTides:     len(req.Tides) > 0,
		Stats: metrics.ComputeStats{
			AltitudeSamples: altitudeSamples,
			SlicesScored:    len(samples),
			ElapsedMillis:   s.now().Sub(started).Milliseconds(),
		},
	}
}

func periodViews(periods []Period, zone *time.Location) []PeriodView {
	views := make([]PeriodView, 0, len(periods))
	for _, p := range periods {
		views = append(views, PeriodView{
			Kind:        p.Kind,
			Start:       p.Start.UTC().Format(time.RFC3339),
			End:         p.End.UTC().Format(time.RFC3339),
			Center:      p.Center.UTC().Format(time.RFC3339),
			LocalStart:  p.Start.In(zone).Format(time.RFC3339),
			LocalEnd:    p.End.In(zone).Format(time.RFC3339),
			LocalCenter: p.Center.In(zone).Format(time.RFC3339),
		})
	}
	return views
}

func cacheKey(lat, lon float64, date, zone string, resolution Resolution) string {
	return fmt.Sprintf("%.4f:%.4f:%s:%s:%s", lat, lon, date, zone, resolution)
}

func roundTo(v float64, places int) float64 {
	factor := math.Pow(10, float64(places))
	return math.Round(v*factor) / factor
}
