package logging

import "time"

// #region intervention-entry
// InterventionEntry is a single row in the intervention_log table.
type InterventionEntry struct {
	StreamID   string
	Horizon    time.Duration
	ReasonCode string
	Dimension  string
	Threshold  float64
	Value      float64
	Confidence float64
	CreatedAt  time.Time
}

// #endregion intervention-entry
