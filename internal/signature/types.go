package signature

// #region feature-record

// FeatureRecord is the fixed set of scalar counts handed to the engine by
// the feature extractor. All counts are non-negative; the engine rejects
// malformed records rather than defaulting silently.
type FeatureRecord struct {
	WordCount    int
	ClauseCount  int
	Exclamations int

	// Thematic structure
	ThematicRepeats int // recurring-concept hits
	MetaphorHits    int // figurative-pattern hits

	// Activation markers
	ActivationHits        int // positive-polarity activation marker hits
	AmplifierHits         int // intensity amplifiers modifying activation markers
	NegatedActivationHits int // activation hits whose polarity was inverted by negation

	// Social framing
	CollectivePronouns int
	TotalPronouns      int

	// Temporal marker classes
	EternalHits   int // enduring/generational markers
	EphemeralHits int // immediate/trending/timestamp markers
}

// #endregion feature-record

// #region signature

// DimensionalSignature is the bounded six-dimensional summary of one text
// under one calibration. Immutable once computed.
type DimensionalSignature struct {
	Psi  float64 // internal coherence
	Rho  float64 // accumulated depth
	QRaw float64 // raw activation intensity
	QOpt float64 // damped activation intensity
	F    float64 // social framing
	Tau  float64 // temporal depth

	// PatternIntensity = Psi + Rho + QOpt + F, range [0, 4].
	PatternIntensity float64

	// Calibration names the profile that produced this signature.
	Calibration string
}

// #endregion signature

// #region config

// Config holds engine policy knobs for signature computation.
type Config struct {
	MinWordCount int     // reject records below this word count
	QOptCeiling  float64 // hard cap on damped activation
}

// DefaultConfig returns the documented defaults.
func DefaultConfig() Config {
	return Config{
		MinWordCount: 10,
		QOptCeiling:  1.0,
	}
}

// #endregion config
