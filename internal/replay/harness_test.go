package replay

import (
	"testing"
	"time"

	"github.com/mwestbrook/prismatic/go-engine/internal/calibration"
	"github.com/mwestbrook/prismatic/go-engine/internal/signature"
)

func testProfile() calibration.Profile {
	return calibration.Profile{
		Name:          "test",
		Weights:       calibration.Weights{Psi: 1, Rho: 1, Q: 1, F: 1},
		Km:            0.2,
		Ki:            10.0,
		TemporalScale: 1.0,
	}
}

// chargedFeatures builds a record whose activation rises with level.
func chargedFeatures(level int) signature.FeatureRecord {
	return signature.FeatureRecord{
		WordCount:          30,
		ClauseCount:        3,
		ThematicRepeats:    1,
		MetaphorHits:       1,
		ActivationHits:     level,
		AmplifierHits:      level,
		CollectivePronouns: 1,
		TotalPronouns:      2,
		EternalHits:        1,
	}
}

func TestReplayWarmsUpThenForecasts(t *testing.T) {
	observations := []Observation{
		{ObservationID: "obs-1", Offset: 0, Features: chargedFeatures(1)},
		{ObservationID: "obs-2", Offset: 10 * time.Second, Features: chargedFeatures(1)},
		{ObservationID: "obs-3", Offset: 20 * time.Second, Features: chargedFeatures(1)},
	}

	results, err := Replay(observations, testProfile(), DefaultReplayConfig())
	if err != nil {
		t.Fatalf("Replay: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("results = %d, want 3", len(results))
	}
	if results[0].Prediction != nil {
		t.Error("first observation should still be warming up")
	}
	if results[1].Prediction == nil || results[2].Prediction == nil {
		t.Error("later observations should carry forecasts")
	}
	if results[1].Recommended || results[2].Recommended {
		t.Error("flat stream should not recommend intervention")
	}
}

func TestReplayEscalationRecommends(t *testing.T) {
	observations := []Observation{
		{ObservationID: "obs-1", Offset: 0, Features: chargedFeatures(0)},
		{ObservationID: "obs-2", Offset: time.Second, Features: chargedFeatures(12)},
	}

	results, err := Replay(observations, testProfile(), DefaultReplayConfig())
	if err != nil {
		t.Fatalf("Replay: %v", err)
	}
	last := results[len(results)-1]
	if !last.Recommended {
		t.Fatalf("expected recommendation, got %+v", last.Prediction)
	}
	if last.ReasonCode == "" {
		t.Error("expected a reason code alongside the recommendation")
	}
}

func TestReplayDeterministic(t *testing.T) {
	observations := []Observation{
		{ObservationID: "obs-1", Offset: 0, Features: chargedFeatures(2)},
		{ObservationID: "obs-2", Offset: 5 * time.Second, Features: chargedFeatures(4)},
	}

	first, err := Replay(observations, testProfile(), DefaultReplayConfig())
	if err != nil {
		t.Fatalf("Replay: %v", err)
	}
	second, err := Replay(observations, testProfile(), DefaultReplayConfig())
	if err != nil {
		t.Fatalf("Replay: %v", err)
	}
	for i := range first {
		if first[i].Signature != second[i].Signature {
			t.Fatalf("run diverged at %s", first[i].ObservationID)
		}
		if first[i].Recommended != second[i].Recommended {
			t.Fatalf("recommendation diverged at %s", first[i].ObservationID)
		}
	}
}

func TestReplayPropagatesComputeFailure(t *testing.T) {
	observations := []Observation{
		{ObservationID: "obs-1", Offset: 0, Features: signature.FeatureRecord{WordCount: 1}},
	}

	if _, err := Replay(observations, testProfile(), DefaultReplayConfig()); err == nil {
		t.Fatal("expected error for short text")
	}
}

func TestSummarizeCountsOutcomes(t *testing.T) {
	observations := []Observation{
		{ObservationID: "obs-1", Offset: 0, Features: chargedFeatures(0)},
		{ObservationID: "obs-2", Offset: time.Second, Features: chargedFeatures(12)},
		{ObservationID: "obs-3", Offset: 2 * time.Second, Features: chargedFeatures(12)},
	}

	results, err := Replay(observations, testProfile(), DefaultReplayConfig())
	if err != nil {
		t.Fatalf("Replay: %v", err)
	}
	summary := Summarize(results)
	if summary.TotalObservations != 3 {
		t.Errorf("TotalObservations = %d, want 3", summary.TotalObservations)
	}
	if summary.Warmups != 1 {
		t.Errorf("Warmups = %d, want 1", summary.Warmups)
	}
	if summary.Forecasts != 2 {
		t.Errorf("Forecasts = %d, want 2", summary.Forecasts)
	}
}
