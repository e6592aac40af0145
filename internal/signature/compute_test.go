package signature

import (
	"errors"
	"math"
	"testing"

	"github.com/mwestbrook/prismatic/go-engine/internal/calibration"
)

func neutralProfile() calibration.Profile {
	return calibration.Profile{
		Name:          "test-neutral",
		Weights:       calibration.Weights{Psi: 1.0, Rho: 1.0, Q: 1.0, F: 1.0},
		Km:            0.2,
		Ki:            10.0,
		TemporalScale: 1.0,
	}
}

func baseFeatures() FeatureRecord {
	return FeatureRecord{
		WordCount:          40,
		ClauseCount:        4,
		ThematicRepeats:    2,
		MetaphorHits:       1,
		ActivationHits:     2,
		CollectivePronouns: 2,
		TotalPronouns:      4,
		EternalHits:        1,
		EphemeralHits:      1,
	}
}

func TestComputeBoundsUnderExtremeInput(t *testing.T) {
	c := NewComputer(DefaultConfig())
	fr := FeatureRecord{
		WordCount:          50,
		ClauseCount:        1,
		Exclamations:       100,
		ThematicRepeats:    1000,
		MetaphorHits:       1000,
		ActivationHits:     1000,
		AmplifierHits:      1000,
		CollectivePronouns: 1000,
		TotalPronouns:      1000,
		EternalHits:        1000,
	}
	profile := neutralProfile()
	profile.Weights = calibration.Weights{Psi: 5, Rho: 5, Q: 5, F: 5}
	profile.TemporalScale = 5

	sig, err := c.Compute(fr, profile)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	dims := map[string]float64{
		"psi": sig.Psi, "rho": sig.Rho, "q_raw": sig.QRaw,
		"q_opt": sig.QOpt, "f": sig.F, "tau": sig.Tau,
	}
	for name, v := range dims {
		if v < 0 || v > 1 {
			t.Errorf("%s = %v, want within [0, 1]", name, v)
		}
	}
}

func TestComputeDeterministic(t *testing.T) {
	c := NewComputer(DefaultConfig())
	a, err := c.Compute(baseFeatures(), neutralProfile())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := c.Compute(baseFeatures(), neutralProfile())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a != b {
		t.Fatalf("same input produced different signatures: %+v vs %+v", a, b)
	}
}

func TestComputeRejectsShortText(t *testing.T) {
	c := NewComputer(DefaultConfig())
	fr := baseFeatures()
	fr.WordCount = 5

	_, err := c.Compute(fr, neutralProfile())
	var insufficientErr *InsufficientInputError
	if !errors.As(err, &insufficientErr) {
		t.Fatalf("expected InsufficientInputError, got %v", err)
	}
	if insufficientErr.Got != 5 {
		t.Errorf("Got = %d, want 5", insufficientErr.Got)
	}
}

func TestComputeRejectsNegativeCount(t *testing.T) {
	c := NewComputer(DefaultConfig())
	fr := baseFeatures()
	fr.MetaphorHits = -1

	_, err := c.Compute(fr, neutralProfile())
	var malformedErr *MalformedRecordError
	if !errors.As(err, &malformedErr) {
		t.Fatalf("expected MalformedRecordError, got %v", err)
	}
	if malformedErr.Field != "metaphor_hits" {
		t.Errorf("Field = %s, want metaphor_hits", malformedErr.Field)
	}
}

func TestOptimizeActivationZeroIsZero(t *testing.T) {
	if got := OptimizeActivation(0, 0.2, 10.0); got != 0 {
		t.Fatalf("q_opt(0) = %v, want 0", got)
	}
}

func TestOptimizeActivationHandlesZeroConstants(t *testing.T) {
	got := OptimizeActivation(0.5, 0, 0)
	if math.IsNaN(got) || math.IsInf(got, 0) {
		t.Fatalf("q_opt with zero constants = %v, want finite", got)
	}
	if got < 0 || got > 1 {
		t.Fatalf("q_opt = %v, want within [0, 1]", got)
	}
}

func TestOptimizeActivationDampsHighActivation(t *testing.T) {
	// Past the inhibition constant the curve must turn back down.
	lower := OptimizeActivation(2.0, 0.3, 1.0)
	higher := OptimizeActivation(8.0, 0.3, 1.0)
	if higher >= lower {
		t.Fatalf("expected damping past ki: q_opt(8)=%v >= q_opt(2)=%v", higher, lower)
	}
}

func TestQOptCeilingApplied(t *testing.T) {
	c := NewComputer(Config{MinWordCount: 10, QOptCeiling: 0.3})
	fr := baseFeatures()
	fr.ActivationHits = 30
	fr.AmplifierHits = 10

	sig, err := c.Compute(fr, neutralProfile())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sig.QOpt > 0.3 {
		t.Fatalf("q_opt = %v, want capped at 0.3", sig.QOpt)
	}
}

func TestTemporalDepthZeroWithoutMarkers(t *testing.T) {
	c := NewComputer(DefaultConfig())
	fr := baseFeatures()
	fr.EternalHits = 0
	fr.EphemeralHits = 0

	sig, err := c.Compute(fr, neutralProfile())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sig.Tau != 0 {
		t.Fatalf("tau = %v, want 0 when no temporal markers", sig.Tau)
	}
}

func TestTemporalDepthEphemeralStaysShallow(t *testing.T) {
	// All-ephemeral text (think a feed update) must read as shallow time.
	c := NewComputer(DefaultConfig())
	fr := baseFeatures()
	fr.EternalHits = 0
	fr.EphemeralHits = 5

	sig, err := c.Compute(fr, neutralProfile())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sig.Tau >= 0.2 {
		t.Fatalf("tau = %v, want below 0.2 for ephemeral-only text", sig.Tau)
	}
}

func TestTemporalDepthEternalRunsDeep(t *testing.T) {
	c := NewComputer(DefaultConfig())
	fr := baseFeatures()
	fr.EternalHits = 8
	fr.EphemeralHits = 0

	sig, err := c.Compute(fr, neutralProfile())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sig.Tau <= 0.5 {
		t.Fatalf("tau = %v, want above 0.5 for eternal-only text", sig.Tau)
	}
}

func TestNegationSuppressesActivation(t *testing.T) {
	c := NewComputer(DefaultConfig())

	charged := baseFeatures()
	charged.ActivationHits = 4

	negated := charged
	negated.ActivationHits = 2
	negated.NegatedActivationHits = 2

	sigCharged, err := c.Compute(charged, neutralProfile())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sigNegated, err := c.Compute(negated, neutralProfile())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sigNegated.QRaw >= sigCharged.QRaw {
		t.Fatalf("negated q_raw %v should fall below charged %v", sigNegated.QRaw, sigCharged.QRaw)
	}
}

func TestCalibrationShiftsReading(t *testing.T) {
	c := NewComputer(DefaultConfig())
	fr := baseFeatures()

	flat := neutralProfile()
	weighted := neutralProfile()
	weighted.Weights.Rho = 1.5

	sigFlat, err := c.Compute(fr, flat)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sigWeighted, err := c.Compute(fr, weighted)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sigWeighted.Rho <= sigFlat.Rho {
		t.Fatalf("rho weight 1.5 should lift rho: %v vs %v", sigWeighted.Rho, sigFlat.Rho)
	}
}
