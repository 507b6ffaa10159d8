package astro

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/alkias2/SolunarBase/internal/domain/solunar"
)

func TestPhaseFromValue(t *testing.T) {
	cases := []struct {
		value float64
		want  solunar.MoonPhase
	}{
		{0.0, solunar.PhaseNew},
		{0.01, solunar.PhaseNew},
		{0.99, solunar.PhaseNew},
		{0.12, solunar.PhaseWaxingCrescent},
		{0.25, solunar.PhaseFirstQuarter},
		{0.35, solunar.PhaseWaxingGibbous},
		{0.50, solunar.PhaseFull},
		{0.51, solunar.PhaseFull},
		{0.62, solunar.PhaseWaningGibbous},
		{0.75, solunar.PhaseLastQuarter},
		{0.88, solunar.PhaseWaningCrescent},
		{1.12, solunar.PhaseWaxingCrescent},
		{-0.25, solunar.PhaseLastQuarter},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, phaseFromValue(tc.value), "value=%v", tc.value)
	}
}

func TestSunTimesMidLatitude(t *testing.T) {
	p := NewProvider()
	day := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	st := p.SunTimes(59.33, 18.07, day)
	require.NotNil(t, st.Rise)
	require.NotNil(t, st.Set)
	require.True(t, st.Rise.Before(*st.Set))
	require.Equal(t, day.Day(), st.Rise.Day())
}

func TestSunTimesPolarDay(t *testing.T) {
	p := NewProvider()
	day := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	// Longyearbyen in June: the sun never sets.
	st := p.SunTimes(78.22, 15.63, day)
	require.Nil(t, st.Rise)
	require.Nil(t, st.Set)
}

func TestMoonAltitudeBounded(t *testing.T) {
	p := NewProvider()
	day := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	for h := 0; h < 24; h++ {
		alt := p.MoonAltitude(40.0, -74.0, day.Add(time.Duration(h)*time.Hour))
		require.GreaterOrEqual(t, alt, -90.0)
		require.LessOrEqual(t, alt, 90.0)
	}
}

func TestMoonPhaseResolvesEnum(t *testing.T) {
	p := NewProvider()
	day := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	info := p.MoonPhase(40.0, -74.0, day)
	require.NotEmpty(t, info.Phase)
	require.GreaterOrEqual(t, info.Illumination, 0.0)
	require.LessOrEqual(t, info.Illumination, 1.0)
}
