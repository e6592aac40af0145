package replay

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mwestbrook/prismatic/go-engine/internal/gradient"
	"github.com/mwestbrook/prismatic/go-engine/internal/signature"
)

// #region fixture-types

// Fixture is the top-level JSON structure for a replay fixture.
type Fixture struct {
	Description     string                  `json:"description"`
	Calibration     string                  `json:"calibration"`
	Config          FixtureConfig           `json:"config"`
	Observations    []FixtureObservation    `json:"observations"`
	ExpectedResults []FixtureExpectedResult `json:"expected_results"`
}

// FixtureFeatures mirrors signature.FeatureRecord with JSON tags.
type FixtureFeatures struct {
	WordCount             int `json:"word_count"`
	ClauseCount           int `json:"clause_count"`
	Exclamations          int `json:"exclamations"`
	ThematicRepeats       int `json:"thematic_repeats"`
	MetaphorHits          int `json:"metaphor_hits"`
	ActivationHits        int `json:"activation_hits"`
	AmplifierHits         int `json:"amplifier_hits"`
	NegatedActivationHits int `json:"negated_activation_hits"`
	CollectivePronouns    int `json:"collective_pronouns"`
	TotalPronouns         int `json:"total_pronouns"`
	EternalHits           int `json:"eternal_hits"`
	EphemeralHits         int `json:"ephemeral_hits"`
}

// FixtureObservation is one recorded reading; offsets are relative to the
// run's base time so fixtures stay wall-clock independent.
type FixtureObservation struct {
	ObservationID string          `json:"observation_id"`
	OffsetSeconds float64         `json:"offset_seconds"`
	Features      FixtureFeatures `json:"features"`
}

// FixtureExpectedResult captures the expected forecast per observation.
type FixtureExpectedResult struct {
	ObservationID string `json:"observation_id"`
	Recommended   bool   `json:"recommended"`
	ReasonCode    string `json:"reason_code,omitempty"`
}

// FixtureConfig bundles all sub-configs for a replay run.
type FixtureConfig struct {
	SignatureConfig FixtureSignatureConfig `json:"signature_config"`
	TrackerConfig   FixtureTrackerConfig   `json:"tracker_config"`
	HorizonSeconds  float64                `json:"horizon_seconds"`
}

// FixtureSignatureConfig mirrors signature.Config with JSON tags.
type FixtureSignatureConfig struct {
	MinWordCount int     `json:"min_word_count"`
	QOptCeiling  float64 `json:"q_opt_ceiling"`
}

// FixtureTrackerConfig mirrors gradient.Config with JSON tags.
type FixtureTrackerConfig struct {
	Capacity       int     `json:"capacity"`
	MinSamples     int     `json:"min_samples"`
	PredictedQMax  float64 `json:"predicted_q_max"`
	QVelocityMax   float64 `json:"q_velocity_max"`
	PsiVelocityMin float64 `json:"psi_velocity_min"`
	FVelocityMin   float64 `json:"f_velocity_min"`
}

// #endregion fixture-types

// #region fixture-loader

// LoadFixture reads and parses a JSON fixture file.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture %s: %w", path, err)
	}
	var f Fixture
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse fixture %s: %w", path, err)
	}
	return &f, nil
}

// ToFeatureRecord converts FixtureFeatures to a domain FeatureRecord.
func (ff *FixtureFeatures) ToFeatureRecord() signature.FeatureRecord {
	return signature.FeatureRecord{
		WordCount:             ff.WordCount,
		ClauseCount:           ff.ClauseCount,
		Exclamations:          ff.Exclamations,
		ThematicRepeats:       ff.ThematicRepeats,
		MetaphorHits:          ff.MetaphorHits,
		ActivationHits:        ff.ActivationHits,
		AmplifierHits:         ff.AmplifierHits,
		NegatedActivationHits: ff.NegatedActivationHits,
		CollectivePronouns:    ff.CollectivePronouns,
		TotalPronouns:         ff.TotalPronouns,
		EternalHits:           ff.EternalHits,
		EphemeralHits:         ff.EphemeralHits,
	}
}

// ToReplayConfig converts a FixtureConfig to a domain ReplayConfig.
func (fc *FixtureConfig) ToReplayConfig() ReplayConfig {
	cfg := DefaultReplayConfig()
	if fc.SignatureConfig != (FixtureSignatureConfig{}) {
		cfg.SignatureConfig = signature.Config{
			MinWordCount: fc.SignatureConfig.MinWordCount,
			QOptCeiling:  fc.SignatureConfig.QOptCeiling,
		}
	}
	if fc.TrackerConfig != (FixtureTrackerConfig{}) {
		cfg.TrackerConfig = gradient.Config{
			Capacity:   fc.TrackerConfig.Capacity,
			MinSamples: fc.TrackerConfig.MinSamples,
			Thresholds: gradient.Thresholds{
				PredictedQMax:  fc.TrackerConfig.PredictedQMax,
				QVelocityMax:   fc.TrackerConfig.QVelocityMax,
				PsiVelocityMin: fc.TrackerConfig.PsiVelocityMin,
				FVelocityMin:   fc.TrackerConfig.FVelocityMin,
			},
		}
	}
	if fc.HorizonSeconds > 0 {
		cfg.Horizon = secondsToDuration(fc.HorizonSeconds)
	}
	return cfg
}

// #endregion fixture-loader
