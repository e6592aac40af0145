package replay

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

const sampleFixture = `{
  "description": "escalating activation over two readings",
  "calibration": "general",
  "config": {
    "signature_config": {"min_word_count": 10, "q_opt_ceiling": 1.0},
    "tracker_config": {
      "capacity": 0,
      "min_samples": 2,
      "predicted_q_max": 0.85,
      "q_velocity_max": 0.3,
      "psi_velocity_min": -0.25,
      "f_velocity_min": -0.4
    },
    "horizon_seconds": 10
  },
  "observations": [
    {
      "observation_id": "obs-1",
      "offset_seconds": 0,
      "features": {"word_count": 30, "clause_count": 3, "total_pronouns": 2}
    },
    {
      "observation_id": "obs-2",
      "offset_seconds": 1,
      "features": {
        "word_count": 30, "clause_count": 3, "total_pronouns": 2,
        "activation_hits": 12, "amplifier_hits": 12
      }
    }
  ],
  "expected_results": [
    {"observation_id": "obs-2", "recommended": true, "reason_code": "predicted_q"}
  ]
}`

func writeFixture(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fixture.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestLoadFixture(t *testing.T) {
	path := writeFixture(t, sampleFixture)

	f, err := LoadFixture(path)
	if err != nil {
		t.Fatalf("LoadFixture: %v", err)
	}
	if len(f.Observations) != 2 {
		t.Fatalf("observations = %d, want 2", len(f.Observations))
	}
	if f.Calibration != "general" {
		t.Errorf("calibration = %s, want general", f.Calibration)
	}
	if f.Observations[1].Features.ActivationHits != 12 {
		t.Errorf("ActivationHits = %d, want 12", f.Observations[1].Features.ActivationHits)
	}
}

func TestLoadFixtureMissingFile(t *testing.T) {
	if _, err := LoadFixture(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Fatal("expected error for missing fixture")
	}
}

func TestLoadFixtureMalformedJSON(t *testing.T) {
	path := writeFixture(t, "{not json")
	if _, err := LoadFixture(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestFixtureConfigConversion(t *testing.T) {
	path := writeFixture(t, sampleFixture)
	f, err := LoadFixture(path)
	if err != nil {
		t.Fatalf("LoadFixture: %v", err)
	}

	cfg := f.Config.ToReplayConfig()
	if cfg.Horizon != 10*time.Second {
		t.Errorf("Horizon = %v, want 10s", cfg.Horizon)
	}
	if cfg.TrackerConfig.Thresholds.PredictedQMax != 0.85 {
		t.Errorf("PredictedQMax = %v, want 0.85", cfg.TrackerConfig.Thresholds.PredictedQMax)
	}
	if cfg.SignatureConfig.MinWordCount != 10 {
		t.Errorf("MinWordCount = %d, want 10", cfg.SignatureConfig.MinWordCount)
	}
}

func TestFixtureConfigDefaultsWhenEmpty(t *testing.T) {
	var fc FixtureConfig
	cfg := fc.ToReplayConfig()

	def := DefaultReplayConfig()
	if cfg.SignatureConfig != def.SignatureConfig {
		t.Errorf("empty fixture config should fall back to defaults")
	}
	if cfg.Horizon != def.Horizon {
		t.Errorf("Horizon = %v, want default %v", cfg.Horizon, def.Horizon)
	}
}

func TestReplayFixtureEndToEnd(t *testing.T) {
	path := writeFixture(t, sampleFixture)
	f, err := LoadFixture(path)
	if err != nil {
		t.Fatalf("LoadFixture: %v", err)
	}

	results, err := ReplayFixture(f, testProfile())
	if err != nil {
		t.Fatalf("ReplayFixture: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("results = %d, want 2", len(results))
	}

	expected := f.ExpectedResults[0]
	got := results[1]
	if got.ObservationID != expected.ObservationID {
		t.Fatalf("observation mismatch: %s vs %s", got.ObservationID, expected.ObservationID)
	}
	if got.Recommended != expected.Recommended {
		t.Errorf("Recommended = %v, want %v", got.Recommended, expected.Recommended)
	}
	if got.ReasonCode != expected.ReasonCode {
		t.Errorf("ReasonCode = %s, want %s", got.ReasonCode, expected.ReasonCode)
	}
}
