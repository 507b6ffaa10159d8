package solunar

import "math"

// weatherCalculator converts a weather observation into an additive score
// modifier. Each component is individually clamped per its documented range;
// the weighted total (roughly -50..+50) is not clamped here.
type weatherCalculator struct {
	weights WeatherWeights
}

// Modifier computes the weighted weather modifier for one observation.
// prev supplies the pressure trend; when nil the trend term is omitted.
func (c weatherCalculator) Modifier(cur WeatherObservation, prev *WeatherObservation) float64 {
	var prevPressure *float64
	if prev != nil {
		prevPressure = &prev.Pressure
	}
	return c.weights.WaterTemperature*waterTemperatureScore(cur.WaterTemperature) +
		c.weights.Pressure*pressureScore(cur.Pressure, prevPressure) +
		c.weights.Wind*windScore(cur.WindSpeed, cur.WindDirection) +
		c.weights.CloudCover*cloudCoverScore(cur.CloudCover) +
		c.weights.Waves*wavesScore(cur.WaveHeight, cur.CurrentSpeed) +
		c.weights.AirTemperature*airTemperatureScore(cur.AirTemperature) +
		c.weights.Humidity*humidityScore(cur.Humidity)
}

// waterTemperatureScore has a +15 plateau over the 18-24 C optimum, linear
// ramps through the 12-15 and 24-27 C bands, and decays 2 pts/C beyond
// them down to a -15 floor.
func waterTemperatureScore(t float64) float64 {
	switch {
	case t >= 18 && t <= 24:
		return 15
	case t >= 15 && t < 18:
		return 5 + (t-15)/3*10
	case t >= 12 && t < 15:
		return (t - 12) / 3 * 5
	case t > 24 && t <= 27:
		return 15 - (t-24)/3*15
	case t < 12:
		return math.Max(-15, -2*(12-t))
	default: // t > 27
		return math.Max(-15, -2*(t-27))
	}
}

// pressureScore sums a banded trend term against the previous observation
// and an absolute-level term, clamped to [-15, 15]. Without a previous
// pressure the trend term is omitted.
func pressureScore(pressure float64, prev *float64) float64 {
	score := 0.0
	if prev != nil {
		delta := pressure - *prev
		switch {
		case delta > 2:
			score += 15
		case delta > 0.5:
			score += 8
		case delta >= -0.5:
			// steady: no trend contribution
		case delta >= -2:
			score -= 8
		default:
			score -= 15
		}
	}
	switch {
	case pressure >= 1013 && pressure <= 1023:
		score += 5
	case pressure < 1000:
		score -= 10
	case pressure > 1030:
		score -= 5
	}
	return clampFloat(score, -15, 15)
}

// windScore bands the wind speed and grants a small bonus for an easterly
// to southeasterly direction, clamped to [-10, 10].
func windScore(speed, direction float64) float64 {
	var score float64
	switch {
	case speed >= 2 && speed <= 5:
		score = 10
	case speed < 2:
		score = 3
	case speed <= 8:
		score = 10 - (speed-5)/3*15
	case speed <= 12:
		score = -5
	default:
		score = -10
	}
	if direction >= 45 && direction <= 135 {
		score += 2
	}
	return clampFloat(score, -10, 10)
}

// cloudCoverScore rewards overcast skies: heavy cover is a flat +10,
// moderate cover ramps 5..10, clear skies scale with the raw percentage.
func cloudCoverScore(cover float64) float64 {
	switch {
	case cover >= 70:
		return 10
	case cover >= 30:
		return 5 + (cover-30)/40*5
	default:
		return 0.1 * cover
	}
}

// wavesScore combines a wave-height term and a current-speed term, clamped
// to [-10, 10].
func wavesScore(height, current float64) float64 {
	var score float64
	switch {
	case height >= 0.3 && height <= 1.0:
		score = 5
	case height < 0.3:
		score = 2
	case height <= 2.0:
		score = 5 - (height-1.0)*10
	default:
		score = -10
	}
	switch {
	case current >= 0.1 && current <= 0.5:
		score += 5
	case current < 0.1:
		score += 1
	case current <= 1.0:
		score += 5 - (current-0.5)/0.5*5
	default:
		score -= 5
	}
	return clampFloat(score, -10, 10)
}

// airTemperatureScore has a +5 plateau over 15-25 C, ramps to 0 at 10/30 C
// and to -5 at 5/35 C, clamped at -5 outside.
func airTemperatureScore(t float64) float64 {
	switch {
	case t >= 15 && t <= 25:
		return 5
	case t >= 10 && t < 15:
		return (t - 10)
	case t > 25 && t <= 30:
		return 30 - t
	case t >= 5 && t < 10:
		return -5 + (t - 5)
	case t > 30 && t <= 35:
		return -(t - 30)
	default:
		return -5
	}
}

// humidityScore favors the 60-80% band.
func humidityScore(h float64) float64 {
	switch {
	case h >= 60 && h <= 80:
		return 3
	case h >= 40 && h < 60:
		return (h - 40) / 20 * 2
	case h > 80 && h <= 90:
		return 3 - (h-80)/10*4
	case h < 40:
		return -2
	default: // h > 90
		return -3
	}
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
