// Package replay re-runs recorded feature observations through the full
// signature and forecasting pipeline, deterministically and in-memory.
package replay

import (
	"fmt"
	"time"

	"github.com/mwestbrook/prismatic/go-engine/internal/calibration"
	"github.com/mwestbrook/prismatic/go-engine/internal/gradient"
	"github.com/mwestbrook/prismatic/go-engine/internal/signature"
)

// #region types

// Observation is a single recorded reading for replay.
type Observation struct {
	ObservationID string
	Offset        time.Duration
	Features      signature.FeatureRecord
}

// ReplayConfig bundles signature and tracker configs for a replay run.
type ReplayConfig struct {
	SignatureConfig signature.Config
	TrackerConfig   gradient.Config
	Horizon         time.Duration
}

// DefaultReplayConfig returns sensible defaults for both pipeline stages.
func DefaultReplayConfig() ReplayConfig {
	return ReplayConfig{
		SignatureConfig: signature.DefaultConfig(),
		TrackerConfig:   gradient.DefaultConfig(),
		Horizon:         10 * time.Second,
	}
}

// ReplayResult captures the outcome of replaying one observation.
type ReplayResult struct {
	ObservationID string
	Signature     signature.DimensionalSignature

	// Forecast stage (nil while the tracker is still warming up)
	Prediction *gradient.Prediction

	Recommended bool
	ReasonCode  string
}

// ReplaySummary provides aggregate stats from a replay run.
type ReplaySummary struct {
	TotalObservations int
	Warmups           int
	Forecasts         int
	Recommendations   int
}

// #endregion types

// #region replay

// Replay feeds observations through compute, track, and forecast in order.
// A fixed base time keeps runs reproducible regardless of wall clock.
func Replay(observations []Observation, profile calibration.Profile, config ReplayConfig) ([]ReplayResult, error) {
	comp := signature.NewComputer(config.SignatureConfig)
	tracker := gradient.NewTracker(config.TrackerConfig)
	base := time.Unix(0, 0).UTC()

	results := make([]ReplayResult, 0, len(observations))
	for _, obs := range observations {
		sig, err := comp.Compute(obs.Features, profile)
		if err != nil {
			return nil, fmt.Errorf("compute %s: %w", obs.ObservationID, err)
		}

		snap := gradient.Snapshot{
			Timestamp: base.Add(obs.Offset),
			Psi:       sig.Psi,
			Rho:       sig.Rho,
			QRaw:      sig.QRaw,
			QOpt:      sig.QOpt,
			F:         sig.F,
			Tau:       sig.Tau,
		}
		if err := tracker.AddSnapshot(snap); err != nil {
			return nil, fmt.Errorf("track %s: %w", obs.ObservationID, err)
		}

		res := ReplayResult{ObservationID: obs.ObservationID, Signature: sig}
		if tracker.Ready() {
			pred, err := tracker.PredictTrajectory(config.Horizon)
			if err != nil {
				return nil, fmt.Errorf("forecast %s: %w", obs.ObservationID, err)
			}
			res.Prediction = &pred
			res.Recommended = pred.InterventionRecommended
			if pred.InterventionReason != nil {
				res.ReasonCode = string(pred.InterventionReason.Code)
			}
		}
		results = append(results, res)
	}
	return results, nil
}

// ReplayFixture runs a loaded fixture end to end.
func ReplayFixture(f *Fixture, profile calibration.Profile) ([]ReplayResult, error) {
	observations := make([]Observation, 0, len(f.Observations))
	for _, fo := range f.Observations {
		observations = append(observations, Observation{
			ObservationID: fo.ObservationID,
			Offset:        secondsToDuration(fo.OffsetSeconds),
			Features:      fo.Features.ToFeatureRecord(),
		})
	}
	return Replay(observations, profile, f.Config.ToReplayConfig())
}

// Summarize computes aggregate stats from replay results.
func Summarize(results []ReplayResult) ReplaySummary {
	s := ReplaySummary{TotalObservations: len(results)}
	for _, r := range results {
		if r.Prediction == nil {
			s.Warmups++
			continue
		}
		s.Forecasts++
		if r.Recommended {
			s.Recommendations++
		}
	}
	return s
}

// #endregion replay

// #region helpers

func secondsToDuration(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

// #endregion helpers
