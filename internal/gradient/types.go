package gradient

import (
	"fmt"
	"time"
)

// #region snapshot

// Snapshot is one timestamped signature in a tracked stream. Once added to
// a tracker, ownership passes to the tracker's history buffer.
type Snapshot struct {
	Timestamp time.Time
	Psi       float64
	Rho       float64
	QRaw      float64
	QOpt      float64
	F         float64
	Tau       float64
}

// dims returns the snapshot as an ordered dimension vector.
func (s Snapshot) dims() [6]float64 {
	return [6]float64{s.Psi, s.Rho, s.QRaw, s.QOpt, s.F, s.Tau}
}

// DimensionNames gives the order used by Gradient vectors.
var DimensionNames = [6]string{"psi", "rho", "q_raw", "q_opt", "f", "tau"}

// Index positions within a dimension vector.
const (
	DimPsi = iota
	DimRho
	DimQRaw
	DimQOpt
	DimF
	DimTau
)

// #endregion snapshot

// #region gradient

// Gradient holds the most recent velocity and acceleration per dimension,
// in units of value per second.
type Gradient struct {
	Velocity     [6]float64
	Acceleration [6]float64
}

// #endregion gradient

// #region reason

// ReasonCode identifies which intervention condition fired.
type ReasonCode string

const (
	ReasonPredictedQ  ReasonCode = "predicted_q"
	ReasonQVelocity   ReasonCode = "q_velocity"
	ReasonPsiVelocity ReasonCode = "psi_velocity"
	ReasonFVelocity   ReasonCode = "f_velocity"
)

// Reason is the structured explanation of an intervention recommendation.
type Reason struct {
	Code      ReasonCode
	Dimension string
	Threshold float64
	Value     float64
}

func (r Reason) String() string {
	return fmt.Sprintf("%s: %s = %.3f (threshold %.3f)", r.Code, r.Dimension, r.Value, r.Threshold)
}

// #endregion reason

// #region prediction

// Prediction is the kinematic extrapolation of a stream to now + horizon.
// Every dimension is clamped to [0, 1]; an out-of-range extrapolation is
// evidence of breakdown, not a forecast.
type Prediction struct {
	Horizon   time.Duration
	Predicted Snapshot

	// Confidence falls as acceleration magnitude rises: an unstable
	// gradient extrapolates poorly.
	Confidence float64

	InterventionRecommended bool
	InterventionReason      *Reason // nil when no condition fired
}

// #endregion prediction

// #region config

// Thresholds holds the intervention decision boundaries. All values are
// configurable defaults rather than validated constants.
type Thresholds struct {
	PredictedQMax  float64 // predicted q_opt above this recommends intervention
	QVelocityMax   float64 // q_opt rising faster than this per second
	PsiVelocityMin float64 // psi falling faster than this (negative)
	FVelocityMin   float64 // f falling faster than this (negative)
}

// Config holds tracker tuning knobs.
type Config struct {
	// Capacity bounds history length; oldest snapshots evict first.
	// Zero means unbounded, which makes growth the caller's problem.
	Capacity int
	// MinSamples gates gradient and trajectory computation (default 2).
	MinSamples int
	Thresholds Thresholds
}

// DefaultConfig returns the documented defaults.
func DefaultConfig() Config {
	return Config{
		Capacity:   0,
		MinSamples: 2,
		Thresholds: Thresholds{
			PredictedQMax:  0.85,
			QVelocityMax:   0.3,
			PsiVelocityMin: -0.25,
			FVelocityMin:   -0.4,
		},
	}
}

// #endregion config

// #region errors

// OutOfOrderError reports a snapshot whose timestamp does not advance the
// stream. Out-of-order data is rejected, never silently reordered.
type OutOfOrderError struct {
	Last time.Time
	Got  time.Time
}

func (e *OutOfOrderError) Error() string {
	return fmt.Sprintf("out-of-order snapshot: %s not after %s",
		e.Got.Format(time.RFC3339Nano), e.Last.Format(time.RFC3339Nano))
}

// InsufficientHistoryError reports a gradient or trajectory request before
// the tracker holds enough snapshots.
type InsufficientHistoryError struct {
	Have int
	Need int
}

func (e *InsufficientHistoryError) Error() string {
	return fmt.Sprintf("insufficient history: have %d snapshots, need %d", e.Have, e.Need)
}

// #endregion errors

// #region analysis

// Trend labels the direction of a dimension over the window.
type Trend string

const (
	TrendIncreasing Trend = "increasing"
	TrendDecreasing Trend = "decreasing"
	TrendStable     Trend = "stable"
)

// DimensionStats summarizes one dimension across the full history window.
type DimensionStats struct {
	Mean         float64
	StdDev       float64
	Current      float64
	Velocity     float64
	Acceleration float64
	Trend        Trend
}

// HistoryAnalysis is the diagnostic view over the whole window.
type HistoryAnalysis struct {
	Samples    int
	TimeSpan   time.Duration
	Dimensions map[string]DimensionStats
}

// #endregion analysis
