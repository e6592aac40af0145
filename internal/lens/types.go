package lens

import "github.com/mwestbrook/prismatic/go-engine/internal/signature"

// #region reading

// Reading pairs one signature with the calibration that produced it.
type Reading struct {
	Calibration string
	Signature   signature.DimensionalSignature
}

// #endregion reading

// #region stability

// Stability classifies how much a text's signature depends on the lens.
type Stability string

const (
	LensStable    Stability = "lens_stable"
	LensDependent Stability = "lens_dependent"
)

// #endregion stability

// #region report

// DimensionVariance holds per-dimension population variance across readings.
type DimensionVariance struct {
	Psi  float64
	Rho  float64
	QOpt float64
	F    float64
	Tau  float64
}

// Compatibility is the pairwise agreement between two lens readings:
// 1 minus the mean absolute dimension difference.
type Compatibility struct {
	LensA string
	LensB string
	Score float64
}

// Report is the output of one interference analysis. Created fresh per
// call; never cached by the engine.
type Report struct {
	Lambda          float64 // normalized aggregate variance, [0, 1]
	Variance        DimensionVariance
	Classification  Stability
	Threshold       float64 // threshold used for classification
	MostStable      string  // dimension with lowest variance
	MostVariable    string  // dimension with highest variance
	LensDeviation   float64 // std-dev of pattern intensity across readings
	RecommendedLens string  // calibration closest to the cross-lens mean intensity
	Compatibility   []Compatibility
}

// #endregion report

// #region config

// Config holds analyzer tuning knobs.
type Config struct {
	// Threshold above which lambda classifies as lens-dependent.
	Threshold float64
	// FWeight over-weights the social dimension, empirically the most
	// lens-sensitive, when aggregating variance into lambda.
	FWeight float64
}

// DefaultConfig returns the documented defaults.
func DefaultConfig() Config {
	return Config{
		Threshold: 0.015,
		FWeight:   2.0,
	}
}

// #endregion config
