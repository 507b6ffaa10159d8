package solunar

import (
	"math"
	"sort"
	"time"
)

// tideCalculator converts the tidal state around an instant into an
// additive modifier in [-20, 20].
type tideCalculator struct {
	weights TideWeights
}

// Modifier evaluates the tide modifier at the given instant. The instant
// must be bracketed by a strictly-earlier and a strictly-later event in the
// time-sorted list; otherwise the modifier is neutral (0).
func (c tideCalculator) Modifier(at time.Time, events []TideEvent) float64 {
	if len(events) == 0 {
		return 0
	}
	prev, next, ok := bracketEvents(at, events)
	if !ok {
		return 0
	}

	span := next.Time.Sub(prev.Time)
	pos := 0.5
	if span > 0 {
		pos = float64(at.Sub(prev.Time)) / float64(span)
	}

	level := levelScore(prev.Type, next.Type, pos)
	movement := movementScore(pos, math.Abs(next.Height-prev.Height))

	return clampFloat(c.weights.Level*level+c.weights.Movement*movement, -20, 20)
}

// bracketEvents finds the nearest strictly-preceding and strictly-following
// events by a linear scan over the sorted list.
func bracketEvents(at time.Time, events []TideEvent) (prev, next TideEvent, ok bool) {
	sorted := make([]TideEvent, len(events))
	copy(sorted, events)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Time.Before(sorted[j].Time) })

	havePrev, haveNext := false, false
	for _, ev := range sorted {
		if ev.Time.Before(at) {
			prev = ev
			havePrev = true
			continue
		}
		if ev.Time.After(at) {
			next = ev
			haveNext = true
			break
		}
	}
	return prev, next, havePrev && haveNext
}

// levelScore rates the water level by position within the bracket.
// Incoming (low to high) water peaks late in the bracket; outgoing water
// starts favorable just after high tide and decays toward low. Any other
// event pairing is neutral.
func levelScore(prevType, nextType TideType, pos float64) float64 {
	switch {
	case prevType == TideLow && nextType == TideHigh:
		switch {
		case pos < 0.3:
			return pos / 0.3 * 5
		case pos < 0.6:
			return 5 + (pos-0.3)/0.3*5
		case pos <= 0.9:
			return 10
		default:
			return 10 - (pos-0.9)/0.1*2
		}
	case prevType == TideHigh && nextType == TideLow:
		if pos <= 0.5 {
			return 8 * (1 - pos/0.5)
		}
		return -10 * (pos - 0.5) / 0.5
	default:
		return 0
	}
}

// movementScore rates water movement with a parabola peaking mid-bracket,
// then adjusts for the tidal range between the bracketing extremes.
func movementScore(pos, tidalRange float64) float64 {
	factor := 1 - 4*(pos-0.5)*(pos-0.5)

	var score float64
	switch {
	case factor > 0.8:
		score = 10
	case factor > 0.5:
		score = 5 + (factor-0.5)/0.3*5
	case factor > 0.2:
		score = (factor - 0.2) / 0.3 * 5
	default:
		score = -10 + factor/0.2*10
	}

	switch {
	case tidalRange > 1.0:
		score += 3
	case tidalRange > 0.5:
		score += 1
	case tidalRange < 0.2:
		score -= 3
	}
	return score
}
