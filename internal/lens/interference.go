package lens

import (
	"math"
	"sort"

	"github.com/mwestbrook/prismatic/go-engine/internal/signature"
)

// maxVariance is the largest possible population variance of values
// confined to [0, 1]; dividing by it normalizes lambda into [0, 1].
const maxVariance = 0.25

// #region analyzer

// Analyzer measures cross-calibration variance of a signature. Pure and
// stateless: safe for concurrent callers.
type Analyzer struct {
	config Config
}

// NewAnalyzer creates an analyzer with the given configuration.
func NewAnalyzer(config Config) *Analyzer {
	return &Analyzer{config: config}
}

// CalculateInterference derives lambda and its breakdown from at least two
// readings of the same text. The analyzer never picks a "correct" lens; the
// recommendation is only proximity to cross-lens consensus.
func (a *Analyzer) CalculateInterference(readings []Reading) (Report, error) {
	if len(readings) < 2 {
		return Report{}, &signature.InsufficientInputError{
			What: "lens readings",
			Got:  len(readings),
			Min:  2,
		}
	}

	v := DimensionVariance{
		Psi:  varianceOf(readings, func(r Reading) float64 { return r.Signature.Psi }),
		Rho:  varianceOf(readings, func(r Reading) float64 { return r.Signature.Rho }),
		QOpt: varianceOf(readings, func(r Reading) float64 { return r.Signature.QOpt }),
		F:    varianceOf(readings, func(r Reading) float64 { return r.Signature.F }),
		Tau:  varianceOf(readings, func(r Reading) float64 { return r.Signature.Tau }),
	}

	fw := a.config.FWeight
	if fw <= 0 {
		fw = 1
	}
	weighted := (v.Psi + v.Rho + v.QOpt + fw*v.F + v.Tau) / (4 + fw)
	lambda := clamp01(weighted / maxVariance)

	classification := LensStable
	if lambda >= a.config.Threshold {
		classification = LensDependent
	}

	mostStable, mostVariable := extremes(v)

	return Report{
		Lambda:          lambda,
		Variance:        v,
		Classification:  classification,
		Threshold:       a.config.Threshold,
		MostStable:      mostStable,
		MostVariable:    mostVariable,
		LensDeviation:   intensityDeviation(readings),
		RecommendedLens: recommend(readings),
		Compatibility:   compatibilityMatrix(readings),
	}, nil
}

// #endregion analyzer

// #region recommend

// recommend returns the calibration whose pattern intensity sits closest to
// the cross-lens mean, ties broken by lexical name order.
func recommend(readings []Reading) string {
	var mean float64
	for _, r := range readings {
		mean += r.Signature.PatternIntensity
	}
	mean /= float64(len(readings))

	sorted := make([]Reading, len(readings))
	copy(sorted, readings)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Calibration < sorted[j].Calibration
	})

	best := sorted[0].Calibration
	bestDist := math.Abs(sorted[0].Signature.PatternIntensity - mean)
	for _, r := range sorted[1:] {
		d := math.Abs(r.Signature.PatternIntensity - mean)
		if d < bestDist {
			bestDist = d
			best = r.Calibration
		}
	}
	return best
}

// #endregion recommend

// #region helpers

// varianceOf computes population variance of one dimension across readings.
func varianceOf(readings []Reading, dim func(Reading) float64) float64 {
	var sum float64
	for _, r := range readings {
		sum += dim(r)
	}
	mean := sum / float64(len(readings))

	var acc float64
	for _, r := range readings {
		d := dim(r) - mean
		acc += d * d
	}
	return acc / float64(len(readings))
}

// intensityDeviation is the std-dev of pattern intensity across readings.
func intensityDeviation(readings []Reading) float64 {
	v := varianceOf(readings, func(r Reading) float64 { return r.Signature.PatternIntensity })
	return math.Sqrt(v)
}

// extremes names the lowest- and highest-variance dimensions, lexical
// tie-break so output is deterministic.
func extremes(v DimensionVariance) (stable, variable string) {
	dims := []struct {
		name string
		v    float64
	}{
		{"f", v.F},
		{"psi", v.Psi},
		{"q", v.QOpt},
		{"rho", v.Rho},
		{"tau", v.Tau},
	}
	stable, variable = dims[0].name, dims[0].name
	minV, maxV := dims[0].v, dims[0].v
	for _, d := range dims[1:] {
		if d.v < minV {
			minV = d.v
			stable = d.name
		}
		if d.v > maxV {
			maxV = d.v
			variable = d.name
		}
	}
	return stable, variable
}

// compatibilityMatrix computes each unordered pair's agreement score.
func compatibilityMatrix(readings []Reading) []Compatibility {
	var pairs []Compatibility
	for i := 0; i < len(readings); i++ {
		for j := i + 1; j < len(readings); j++ {
			a, b := readings[i], readings[j]
			diff := (math.Abs(a.Signature.Psi-b.Signature.Psi) +
				math.Abs(a.Signature.Rho-b.Signature.Rho) +
				math.Abs(a.Signature.QOpt-b.Signature.QOpt) +
				math.Abs(a.Signature.F-b.Signature.F)) / 4.0
			pairs = append(pairs, Compatibility{
				LensA: a.Calibration,
				LensB: b.Calibration,
				Score: clamp01(1.0 - diff),
			})
		}
	}
	return pairs
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// #endregion helpers
