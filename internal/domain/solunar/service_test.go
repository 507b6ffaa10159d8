package solunar

import (
	"context"
	"io"
	"log/slog"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	apperrors "github.com/alkias2/SolunarBase/pkg/errors"
)

type stubProvider struct {
	sun       SunTimes
	moon      MoonTimes
	phase     MoonPhaseInfo
	transitAt time.Time
}

func (p *stubProvider) SunTimes(_, _ float64, _ time.Time) SunTimes   { return p.sun }
func (p *stubProvider) MoonTimes(_, _ float64, _ time.Time) MoonTimes { return p.moon }
func (p *stubProvider) MoonPhase(_, _ float64, _ time.Time) MoonPhaseInfo {
	return p.phase
}

// MoonAltitude is a smooth signal peaking at transitAt.
func (p *stubProvider) MoonAltitude(_, _ float64, at time.Time) float64 {
	phase := 2 * math.Pi * float64(at.Sub(p.transitAt)) / float64(24*time.Hour)
	return 60 * math.Cos(phase)
}

type stubCache struct {
	entries map[string]Result
	gets    int
	sets    int
}

func newStubCache() *stubCache {
	return &stubCache{entries: make(map[string]Result)}
}

func (c *stubCache) Get(_ context.Context, key string) (Result, bool, error) {
	c.gets++
	result, ok := c.entries[key]
	return result, ok, nil
}

func (c *stubCache) Set(_ context.Context, key string, result Result, _ time.Duration) error {
	c.sets++
	c.entries[key] = result
	return nil
}

type stubRepo struct {
	saved []Record
}

func (r *stubRepo) Save(_ context.Context, record Record) error {
	r.saved = append(r.saved, record)
	return nil
}

func (r *stubRepo) Recent(_ context.Context, limit int) ([]Record, error) {
	if limit > len(r.saved) {
		limit = len(r.saved)
	}
	return r.saved[:limit], nil
}

func newTestService(provider AstroProvider, cache Cache, repo HistoryRepository) *service {
	return &service{
		cfg: Config{
			DefaultResolution: ResolutionHour,
			CacheTTL:          time.Hour,
			Weights:           DefaultWeights(),
		},
		provider: provider,
		cache:    cache,
		repo:     repo,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:      time.Now,
	}
}

func defaultStubProvider(t *testing.T) *stubProvider {
	t.Helper()
	rise := instant(t, "2025-06-15T04:30:00Z")
	set := instant(t, "2025-06-15T19:45:00Z")
	moonrise := instant(t, "2025-06-15T08:10:00Z")
	return &stubProvider{
		sun:       SunTimes{Rise: &rise, Set: &set},
		moon:      MoonTimes{Rise: &moonrise},
		phase:     MoonPhaseInfo{Phase: PhaseFull, Illumination: 0.98},
		transitAt: instant(t, "2025-06-15T13:42:00Z"),
	}
}

func TestServiceForecastHourly(t *testing.T) {
	provider := defaultStubProvider(t)
	cache := newStubCache()
	repo := &stubRepo{}
	svc := newTestService(provider, cache, repo)

	result, err := svc.Forecast(context.Background(), Request{
		Latitude:  59.33,
		Longitude: 18.07,
		Date:      "2025-06-15",
	})
	require.NoError(t, err)

	require.Equal(t, "2025-06-15", result.Date)
	require.Equal(t, "UTC", result.Timezone)
	require.Equal(t, ResolutionHour, result.Resolution)
	require.Len(t, result.Samples, 24)
	require.Empty(t, result.Breakdown)
	require.False(t, result.HasWeather)
	require.False(t, result.HasTides)
	require.Equal(t, PhaseFull, result.MoonPhase.Phase)

	// Upper and lower transit majors plus the single moonrise minor.
	require.Len(t, result.MajorPeriods, 2)
	require.Len(t, result.MinorPeriods, 1)
	require.Equal(t, "2025-06-15T01:42:00Z", result.MajorPeriods[0].Center)
	require.Equal(t, "2025-06-15T13:42:00Z", result.MajorPeriods[1].Center)

	for _, s := range result.Samples {
		require.GreaterOrEqual(t, s.Score, 0)
		require.LessOrEqual(t, s.Score, 100)
	}

	require.Len(t, repo.saved, 1)
	require.Equal(t, result.Rating, repo.saved[0].Rating)
	require.Equal(t, 1, cache.sets)
}

func TestServiceForecastQuarterResolution(t *testing.T) {
	svc := newTestService(defaultStubProvider(t), newStubCache(), &stubRepo{})

	result, err := svc.Forecast(context.Background(), Request{
		Latitude:   59.33,
		Longitude:  18.07,
		Date:       "2025-06-15",
		Resolution: ResolutionQuarter,
	})
	require.NoError(t, err)
	require.Len(t, result.Samples, 96)
	require.Equal(t, 15, result.Samples[1].Minute)
}

func TestServiceForecastCacheHit(t *testing.T) {
	cache := newStubCache()
	repo := &stubRepo{}
	svc := newTestService(defaultStubProvider(t), cache, repo)

	req := Request{Latitude: 10, Longitude: 20, Date: "2025-06-15"}

	first, err := svc.Forecast(context.Background(), req)
	require.NoError(t, err)
	second, err := svc.Forecast(context.Background(), req)
	require.NoError(t, err)

	require.Equal(t, first.Rating, second.Rating)
	require.Equal(t, 1, cache.sets)
	require.Len(t, repo.saved, 1)
}

func TestServiceForecastWithModifiersSkipsCache(t *testing.T) {
	cache := newStubCache()
	svc := newTestService(defaultStubProvider(t), cache, &stubRepo{})

	result, err := svc.Forecast(context.Background(), Request{
		Latitude:  10,
		Longitude: 20,
		Date:      "2025-06-15",
		Weather: []WeatherObservation{{
			Time:             instant(t, "2025-06-15T06:00:00Z"),
			WaterTemperature: 21,
			Pressure:         1015,
			AirTemperature:   20,
			Humidity:         70,
			CloudCover:       80,
			WindSpeed:        3,
		}},
		Tides: []TideEvent{
			{Time: instant(t, "2025-06-15T02:00:00Z"), Height: 0.3, Type: TideLow},
			{Time: instant(t, "2025-06-15T08:20:00Z"), Height: 1.9, Type: TideHigh},
		},
	})
	require.NoError(t, err)
	require.True(t, result.HasWeather)
	require.True(t, result.HasTides)
	require.Len(t, result.Breakdown, 24)
	require.Zero(t, cache.gets)
	require.Zero(t, cache.sets)

	for i, row := range result.Breakdown {
		require.Equal(t, result.Samples[i].Score, row.TotalScore)
	}
}

func TestServiceForecastLocalZoneSlices(t *testing.T) {
	svc := newTestService(defaultStubProvider(t), newStubCache(), &stubRepo{})

	result, err := svc.Forecast(context.Background(), Request{
		Latitude:  -33.86,
		Longitude: 151.21,
		Date:      "2025-06-15",
		Timezone:  "Australia/Sydney",
	})
	require.NoError(t, err)
	require.Equal(t, "Australia/Sydney", result.Timezone)

	// Local midnight in Sydney is 14:00 UTC the previous day in June.
	first, err := time.Parse(time.RFC3339, result.Samples[0].Time)
	require.NoError(t, err)
	require.Equal(t, instant(t, "2025-06-14T14:00:00Z"), first)
}

func TestServiceForecastInvalidInput(t *testing.T) {
	svc := newTestService(defaultStubProvider(t), newStubCache(), &stubRepo{})

	cases := []Request{
		{Latitude: 10, Longitude: 20, Date: "15-06-2025"},
		{Latitude: 95, Longitude: 20, Date: "2025-06-15"},
		{Latitude: 10, Longitude: 200, Date: "2025-06-15"},
		{Latitude: 10, Longitude: 20, Date: "2025-06-15", Timezone: "Mars/Olympus"},
		{Latitude: 10, Longitude: 20, Date: "2025-06-15", Resolution: "weekly"},
	}
	for _, req := range cases {
		_, err := svc.Forecast(context.Background(), req)
		require.Error(t, err)
		require.True(t, apperrors.IsCode(err, "invalid_input"))
	}
}

func TestServiceForecastMissingSunTimes(t *testing.T) {
	provider := defaultStubProvider(t)
	provider.sun = SunTimes{}
	provider.moon = MoonTimes{}
	svc := newTestService(provider, newStubCache(), &stubRepo{})

	result, err := svc.Forecast(context.Background(), Request{
		Latitude:  78.22,
		Longitude: 15.63,
		Date:      "2025-06-15",
	})
	require.NoError(t, err)
	require.Empty(t, result.MinorPeriods)
	require.Len(t, result.MajorPeriods, 2)
}

func TestServiceRecent(t *testing.T) {
	repo := &stubRepo{}
	svc := newTestService(defaultStubProvider(t), newStubCache(), repo)

	_, err := svc.Forecast(context.Background(), Request{Latitude: 1, Longitude: 2, Date: "2025-06-15"})
	require.NoError(t, err)

	records, err := svc.Recent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, "2025-06-15", records[0].Date)
	require.NotEqual(t, records[0].ID.String(), "00000000-0000-0000-0000-000000000000")
}
