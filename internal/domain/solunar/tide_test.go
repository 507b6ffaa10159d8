package solunar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func defaultTideCalc() tideCalculator {
	return tideCalculator{weights: DefaultWeights().Tide}
}

func TestTideModifierEmptyEvents(t *testing.T) {
	calc := defaultTideCalc()
	at := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	require.Zero(t, calc.Modifier(at, nil))
	require.Zero(t, calc.Modifier(at, []TideEvent{}))
}

func TestTideModifierUnbracketableInstant(t *testing.T) {
	calc := defaultTideCalc()
	events := []TideEvent{
		{Time: time.Date(2025, 1, 1, 6, 0, 0, 0, time.UTC), Height: 0.4, Type: TideLow},
		{Time: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC), Height: 1.8, Type: TideHigh},
	}

	require.Zero(t, calc.Modifier(time.Date(2025, 1, 1, 5, 0, 0, 0, time.UTC), events))
	require.Zero(t, calc.Modifier(time.Date(2025, 1, 1, 13, 0, 0, 0, time.UTC), events))
}

func TestTideModifierIncomingPeak(t *testing.T) {
	calc := defaultTideCalc()
	low := time.Date(2025, 1, 1, 6, 0, 0, 0, time.UTC)
	high := time.Date(2025, 1, 1, 16, 0, 0, 0, time.UTC)
	events := []TideEvent{
		{Time: low, Height: 0.2, Type: TideLow},
		{Time: high, Height: 1.8, Type: TideHigh},
	}

	// pos = 0.7: level plateau (+10), movement factor 0.84 (+10), range
	// 1.6 m (+3): 0.8*10 + 1.0*13 = 21, clamped to 20.
	at := low.Add(7 * time.Hour)
	require.InDelta(t, 20, calc.Modifier(at, events), 1e-9)
}

func TestTideModifierOutgoingDecay(t *testing.T) {
	calc := tideCalculator{weights: TideWeights{Level: 1, Movement: 0}}
	high := time.Date(2025, 1, 1, 4, 0, 0, 0, time.UTC)
	low := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	events := []TideEvent{
		{Time: high, Height: 1.8, Type: TideHigh},
		{Time: low, Height: 0.4, Type: TideLow},
	}

	// Just after high tide the level score is near +8, decaying through 0
	// mid-bracket and down to -10 approaching low water.
	early := calc.Modifier(high.Add(30*time.Minute), events)
	mid := calc.Modifier(high.Add(3*time.Hour), events)
	late := calc.Modifier(low.Add(-30*time.Minute), events)

	require.InDelta(t, 6.667, early, 0.01)
	require.InDelta(t, 0, mid, 1e-9)
	require.InDelta(t, -8.333, late, 0.01)
}

func TestTideModifierMatchingEventTypesNeutralLevel(t *testing.T) {
	calc := tideCalculator{weights: TideWeights{Level: 1, Movement: 0}}
	events := []TideEvent{
		{Time: time.Date(2025, 1, 1, 6, 0, 0, 0, time.UTC), Height: 1.8, Type: TideHigh},
		{Time: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC), Height: 1.7, Type: TideHigh},
	}

	require.Zero(t, calc.Modifier(time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC), events))
}

func TestTideModifierSmallRangePenalty(t *testing.T) {
	calc := tideCalculator{weights: TideWeights{Level: 0, Movement: 1}}
	low := time.Date(2025, 1, 1, 6, 0, 0, 0, time.UTC)
	high := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	events := []TideEvent{
		{Time: low, Height: 1.0, Type: TideLow},
		{Time: high, Height: 1.1, Type: TideHigh},
	}

	// Mid-bracket movement peaks at +10 but the 0.1 m range drops it by 3.
	require.InDelta(t, 7, calc.Modifier(low.Add(3*time.Hour), events), 1e-9)
}

func TestTideModifierUnsortedEvents(t *testing.T) {
	calc := defaultTideCalc()
	low := time.Date(2025, 1, 1, 6, 0, 0, 0, time.UTC)
	high := time.Date(2025, 1, 1, 16, 0, 0, 0, time.UTC)
	sorted := []TideEvent{
		{Time: low, Height: 0.2, Type: TideLow},
		{Time: high, Height: 1.8, Type: TideHigh},
	}
	reversed := []TideEvent{sorted[1], sorted[0]}

	at := low.Add(7 * time.Hour)
	require.Equal(t, calc.Modifier(at, sorted), calc.Modifier(at, reversed))
}

func TestMovementScoreParabola(t *testing.T) {
	// Peak at mid-bracket, symmetric falloff, -10 at the extremes (range
	// adjustment neutral at 0.4 m).
	require.InDelta(t, 10, movementScore(0.5, 0.4), 1e-9)
	require.InDelta(t, movementScore(0.2, 0.4), movementScore(0.8, 0.4), 1e-9)
	require.InDelta(t, -10, movementScore(0, 0.4), 1e-9)
	require.InDelta(t, -10, movementScore(1, 0.4), 1e-9)
}
