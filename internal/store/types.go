package store

import "time"

// #region types

// StreamRecord describes one monitored text stream.
type StreamRecord struct {
	StreamID    string
	Label       string
	Calibration string
	CreatedAt   time.Time
}

// SnapshotRecord is one persisted signature reading in a stream.
type SnapshotRecord struct {
	ID        int64
	StreamID  string
	Timestamp time.Time
	Psi       float64
	Rho       float64
	QRaw      float64
	QOpt      float64
	F         float64
	Tau       float64
}

// #endregion types
