package signature

import (
	"github.com/mwestbrook/prismatic/go-engine/internal/calibration"
)

// #region computer

// Computer turns feature records into dimensional signatures. It is pure
// and stateless: safe for any number of concurrent callers.
type Computer struct {
	config Config
}

// NewComputer creates a signature computer with the given configuration.
func NewComputer(config Config) *Computer {
	return &Computer{config: config}
}

// Compute produces the signature of one feature record under one profile.
// Deterministic: identical inputs yield bit-identical output. Neither the
// record nor the profile is mutated.
func (c *Computer) Compute(features FeatureRecord, profile calibration.Profile) (DimensionalSignature, error) {
	if err := validate(features); err != nil {
		return DimensionalSignature{}, err
	}
	if features.WordCount < c.config.MinWordCount {
		return DimensionalSignature{}, &InsufficientInputError{
			What: "word count",
			Got:  features.WordCount,
			Min:  c.config.MinWordCount,
		}
	}

	psi := clamp01(saturate(float64(features.ThematicRepeats)) * profile.Weights.Psi)
	rho := clamp01(metaphorDensity(features) * profile.Weights.Rho)
	f := clamp01(collectiveRatio(features) * profile.Weights.F)

	qRaw := clamp01(activationEnergy(features) * profile.Weights.Q)
	qOpt := OptimizeActivation(qRaw, profile.Km, profile.Ki)
	if qOpt > c.config.QOptCeiling {
		qOpt = c.config.QOptCeiling
	}

	tau := temporalDepth(features, profile.TemporalScale)

	return DimensionalSignature{
		Psi:              psi,
		Rho:              rho,
		QRaw:             qRaw,
		QOpt:             qOpt,
		F:                f,
		Tau:              tau,
		PatternIntensity: psi + rho + qOpt + f,
		Calibration:      profile.Name,
	}, nil
}

// #endregion computer

// #region optimize-activation

// OptimizeActivation is the saturation-with-inhibition curve that damps raw
// activation into a bounded value:
//
//	q_opt = q/(km+q) * ki/(q+ki)
//
// Rises toward half-saturation at km, then the inhibition term pulls the
// curve back down as q grows past ki. Guarantees q_opt(0) = 0 and
// q_opt in [0, 1) for all non-negative q and positive km, ki. Non-positive
// km or ki are lifted to a small floor instead of dividing by zero.
func OptimizeActivation(q, km, ki float64) float64 {
	const floor = 1e-9
	if q <= 0 {
		return 0
	}
	if km < floor {
		km = floor
	}
	if ki < floor {
		ki = floor
	}
	return clamp01(q / (km + q) * (ki / (q + ki)))
}

// #endregion optimize-activation

// #region dimensions

// saturate maps a non-negative count onto [0, 1) monotonically.
func saturate(v float64) float64 {
	if v <= 0 {
		return 0
	}
	return v / (v + 1)
}

// metaphorDensity measures figurative load relative to clause structure,
// monotone in metaphor hits and bounded below 1.
func metaphorDensity(fr FeatureRecord) float64 {
	m := float64(fr.MetaphorHits)
	return m / (m + float64(fr.ClauseCount) + 1)
}

// collectiveRatio measures social framing as the collective share of the
// text, scaled so that one collective pronoun per five words saturates.
func collectiveRatio(fr FeatureRecord) float64 {
	words := fr.WordCount
	if words < 1 {
		words = 1
	}
	r := float64(fr.CollectivePronouns) / float64(words) * 5.0
	if r > 1 {
		return 1
	}
	return r
}

// activationEnergy sums marker polarity: negated hits invert, amplifiers
// scale the net multiplicatively, exclamations add a flat charge.
func activationEnergy(fr FeatureRecord) float64 {
	net := float64(fr.ActivationHits - fr.NegatedActivationHits)
	if net < 0 {
		net = 0
	}
	amp := 1.0 + 0.5*float64(fr.AmplifierHits)

	words := fr.WordCount
	if words < 1 {
		words = 1
	}
	return net*amp/float64(words)*3.0 + 0.1*float64(fr.Exclamations)
}

// temporalDepth computes tau as a compression ratio damped by the share of
// ephemeral markers. Zero markers of both classes means tau = 0: silence
// defaults to ephemeral rather than inventing depth.
func temporalDepth(fr FeatureRecord, scale float64) float64 {
	eternal := float64(fr.EternalHits)
	ephemeral := float64(fr.EphemeralHits)
	if eternal+ephemeral == 0 {
		return 0
	}

	compression := eternal / (eternal + ephemeral + 1)
	decayResistance := 1.0 - ephemeral/(eternal+ephemeral)

	return clamp01(compression * decayResistance * scale)
}

// #endregion dimensions

// #region validate

func validate(fr FeatureRecord) error {
	checks := []struct {
		name  string
		value int
	}{
		{"word_count", fr.WordCount},
		{"clause_count", fr.ClauseCount},
		{"exclamations", fr.Exclamations},
		{"thematic_repeats", fr.ThematicRepeats},
		{"metaphor_hits", fr.MetaphorHits},
		{"activation_hits", fr.ActivationHits},
		{"amplifier_hits", fr.AmplifierHits},
		{"negated_activation_hits", fr.NegatedActivationHits},
		{"collective_pronouns", fr.CollectivePronouns},
		{"total_pronouns", fr.TotalPronouns},
		{"eternal_hits", fr.EternalHits},
		{"ephemeral_hits", fr.EphemeralHits},
	}
	for _, c := range checks {
		if c.value < 0 {
			return &MalformedRecordError{Field: c.name, Value: c.value}
		}
	}
	return nil
}

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

// #endregion validate
