package gradient

import (
	"math"
	"time"
)

// #region tracker

// Tracker maintains the signature history of exactly one subject stream
// and derives velocity, acceleration, and trajectory forecasts from it.
// Single-writer: a tracker must not be mutated from multiple goroutines;
// track several streams with one tracker each.
type Tracker struct {
	config  Config
	history []Snapshot
}

// NewTracker creates an empty tracker with the given configuration.
func NewTracker(config Config) *Tracker {
	if config.MinSamples < 2 {
		config.MinSamples = 2
	}
	return &Tracker{config: config}
}

// Len returns the number of snapshots currently held.
func (t *Tracker) Len() int {
	return len(t.history)
}

// Ready reports whether enough history exists for trajectory prediction.
func (t *Tracker) Ready() bool {
	return len(t.history) >= t.config.MinSamples
}

// Latest returns the most recent snapshot and whether one exists.
func (t *Tracker) Latest() (Snapshot, bool) {
	if len(t.history) == 0 {
		return Snapshot{}, false
	}
	return t.history[len(t.history)-1], true
}

// #endregion tracker

// #region add-snapshot

// AddSnapshot appends a snapshot to history. Timestamps must strictly
// increase; a stale or duplicate timestamp returns OutOfOrderError. When a
// capacity is configured the oldest snapshot evicts first.
func (t *Tracker) AddSnapshot(s Snapshot) error {
	if n := len(t.history); n > 0 {
		last := t.history[n-1].Timestamp
		if !s.Timestamp.After(last) {
			return &OutOfOrderError{Last: last, Got: s.Timestamp}
		}
	}
	t.history = append(t.history, s)
	if t.config.Capacity > 0 && len(t.history) > t.config.Capacity {
		t.history = t.history[len(t.history)-t.config.Capacity:]
	}
	return nil
}

// #endregion add-snapshot

// #region gradient

// CalculateGradient computes per-dimension velocity from the two most
// recent snapshots and acceleration from the three most recent. With
// exactly two snapshots, acceleration degrades gracefully to zero.
// Fails with InsufficientHistoryError below two snapshots.
func (t *Tracker) CalculateGradient() (Gradient, error) {
	n := len(t.history)
	if n < 2 {
		return Gradient{}, &InsufficientHistoryError{Have: n, Need: 2}
	}

	var g Gradient
	g.Velocity = finiteDifference(t.history[n-2], t.history[n-1])

	if n >= 3 {
		v1 := finiteDifference(t.history[n-2], t.history[n-1])
		v2 := finiteDifference(t.history[n-3], t.history[n-2])
		dt1 := t.history[n-1].Timestamp.Sub(t.history[n-2].Timestamp).Seconds()
		dt2 := t.history[n-2].Timestamp.Sub(t.history[n-3].Timestamp).Seconds()
		meanDt := (dt1 + dt2) / 2
		for i := range g.Acceleration {
			g.Acceleration[i] = (v1[i] - v2[i]) / meanDt
		}
	}
	return g, nil
}

// finiteDifference computes (b - a) / dt per dimension. Timestamps are
// strictly increasing, so dt is always positive.
func finiteDifference(a, b Snapshot) [6]float64 {
	dt := b.Timestamp.Sub(a.Timestamp).Seconds()
	av, bv := a.dims(), b.dims()
	var out [6]float64
	for i := range out {
		out[i] = (bv[i] - av[i]) / dt
	}
	return out
}

// #endregion gradient

// #region predict

// PredictTrajectory extrapolates every dimension to now + horizon:
//
//	predicted = current + v*h + 0.5*a*h^2
//
// clamped to [0, 1], then checks intervention conditions in priority order
// predicted-q, q-velocity, psi-velocity, f-velocity. Fails with
// InsufficientHistoryError before the tracker is ready.
func (t *Tracker) PredictTrajectory(horizon time.Duration) (Prediction, error) {
	if !t.Ready() {
		return Prediction{}, &InsufficientHistoryError{Have: len(t.history), Need: t.config.MinSamples}
	}

	g, err := t.CalculateGradient()
	if err != nil {
		return Prediction{}, err
	}

	current := t.history[len(t.history)-1]
	h := horizon.Seconds()
	cur := current.dims()

	var pred [6]float64
	for i := range pred {
		pred[i] = clamp01(cur[i] + g.Velocity[i]*h + 0.5*g.Acceleration[i]*h*h)
	}

	predicted := Snapshot{
		Timestamp: current.Timestamp.Add(horizon),
		Psi:       pred[DimPsi],
		Rho:       pred[DimRho],
		QRaw:      pred[DimQRaw],
		QOpt:      pred[DimQOpt],
		F:         pred[DimF],
		Tau:       pred[DimTau],
	}

	reason := t.checkIntervention(g, predicted)

	return Prediction{
		Horizon:                 horizon,
		Predicted:               predicted,
		Confidence:              clamp01(1.0 - accelMagnitude(g)),
		InterventionRecommended: reason != nil,
		InterventionReason:      reason,
	}, nil
}

// checkIntervention evaluates decision thresholds in priority order and
// returns the first that fires, or nil.
func (t *Tracker) checkIntervention(g Gradient, predicted Snapshot) *Reason {
	th := t.config.Thresholds

	if predicted.QOpt > th.PredictedQMax {
		return &Reason{
			Code:      ReasonPredictedQ,
			Dimension: "q_opt",
			Threshold: th.PredictedQMax,
			Value:     predicted.QOpt,
		}
	}
	if g.Velocity[DimQOpt] > th.QVelocityMax {
		return &Reason{
			Code:      ReasonQVelocity,
			Dimension: "q_opt",
			Threshold: th.QVelocityMax,
			Value:     g.Velocity[DimQOpt],
		}
	}
	if g.Velocity[DimPsi] < th.PsiVelocityMin {
		return &Reason{
			Code:      ReasonPsiVelocity,
			Dimension: "psi",
			Threshold: th.PsiVelocityMin,
			Value:     g.Velocity[DimPsi],
		}
	}
	if g.Velocity[DimF] < th.FVelocityMin {
		return &Reason{
			Code:      ReasonFVelocity,
			Dimension: "f",
			Threshold: th.FVelocityMin,
			Value:     g.Velocity[DimF],
		}
	}
	return nil
}

func accelMagnitude(g Gradient) float64 {
	var sum float64
	for _, a := range g.Acceleration {
		sum += a * a
	}
	return math.Sqrt(sum)
}

// #endregion predict

// #region analyze

// trendBand is the velocity magnitude below which a dimension reads stable.
const trendBand = 0.05

// AnalyzeHistory summarizes each dimension over the full window: mean,
// spread, current value, and trend from the latest gradient.
func (t *Tracker) AnalyzeHistory() (HistoryAnalysis, error) {
	n := len(t.history)
	if n < 2 {
		return HistoryAnalysis{}, &InsufficientHistoryError{Have: n, Need: 2}
	}

	g, err := t.CalculateGradient()
	if err != nil {
		return HistoryAnalysis{}, err
	}

	dims := make(map[string]DimensionStats, len(DimensionNames))
	for i, name := range DimensionNames {
		values := make([]float64, n)
		for j, s := range t.history {
			values[j] = s.dims()[i]
		}
		mean, std := meanStd(values)

		trend := TrendStable
		switch {
		case g.Velocity[i] > trendBand:
			trend = TrendIncreasing
		case g.Velocity[i] < -trendBand:
			trend = TrendDecreasing
		}

		dims[name] = DimensionStats{
			Mean:         mean,
			StdDev:       std,
			Current:      values[n-1],
			Velocity:     g.Velocity[i],
			Acceleration: g.Acceleration[i],
			Trend:        trend,
		}
	}

	return HistoryAnalysis{
		Samples:    n,
		TimeSpan:   t.history[n-1].Timestamp.Sub(t.history[0].Timestamp),
		Dimensions: dims,
	}, nil
}

func meanStd(values []float64) (mean, std float64) {
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))
	var acc float64
	for _, v := range values {
		d := v - mean
		acc += d * d
	}
	return mean, math.Sqrt(acc / float64(len(values)))
}

// #endregion analyze

// clamp01 restricts v to [0, 1].
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
