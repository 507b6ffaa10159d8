package metrics

// ComputeStats captures the work performed to produce one forecast.
type ComputeStats struct {
	AltitudeSamples int   `json:"altitudeSamples"`
	SlicesScored    int   `json:"slicesScored"`
	ElapsedMillis   int64 `json:"elapsedMillis"`
}

// IsZero reports whether stats are absent.
func (s ComputeStats) IsZero() bool {
	return s.AltitudeSamples == 0 && s.SlicesScored == 0 && s.ElapsedMillis == 0
}
