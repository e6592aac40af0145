// Package config handles engine configuration loading.
package config

// #region imports
import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mwestbrook/prismatic/go-engine/internal/calibration"
	"github.com/mwestbrook/prismatic/go-engine/internal/gradient"
	"github.com/mwestbrook/prismatic/go-engine/internal/lens"
	"github.com/mwestbrook/prismatic/go-engine/internal/signature"
)

// #endregion

// #region types

// Config is the root configuration structure.
type Config struct {
	Signature    SignatureConfig    `yaml:"signature"`
	Interference InterferenceConfig `yaml:"interference"`
	Tracker      TrackerConfig      `yaml:"tracker"`
	Profiles     []ProfileConfig    `yaml:"profiles"`
}

// SignatureConfig holds signature computation settings.
type SignatureConfig struct {
	MinWordCount int     `yaml:"min_word_count"`
	QOptCeiling  float64 `yaml:"q_opt_ceiling"`
}

// InterferenceConfig holds multi-lens analysis settings.
type InterferenceConfig struct {
	Threshold float64 `yaml:"threshold"`
	FWeight   float64 `yaml:"f_weight"`
}

// TrackerConfig holds gradient tracker settings.
type TrackerConfig struct {
	Capacity   int              `yaml:"capacity"`
	MinSamples int              `yaml:"min_samples"`
	Thresholds ThresholdsConfig `yaml:"thresholds"`
}

// ThresholdsConfig holds intervention thresholds.
type ThresholdsConfig struct {
	PredictedQMax  float64 `yaml:"predicted_q_max"`
	QVelocityMax   float64 `yaml:"q_velocity_max"`
	PsiVelocityMin float64 `yaml:"psi_velocity_min"`
	FVelocityMin   float64 `yaml:"f_velocity_min"`
}

// ProfileConfig declares a custom calibration profile. Custom profiles are
// added on top of the builtin set; a name collision overrides the builtin.
type ProfileConfig struct {
	Name                 string  `yaml:"name"`
	Description          string  `yaml:"description"`
	PsiWeight            float64 `yaml:"psi_weight"`
	RhoWeight            float64 `yaml:"rho_weight"`
	QWeight              float64 `yaml:"q_weight"`
	FWeight              float64 `yaml:"f_weight"`
	Km                   float64 `yaml:"km"`
	Ki                   float64 `yaml:"ki"`
	TemporalScale        float64 `yaml:"temporal_scale"`
	InterferenceBaseline float64 `yaml:"interference_baseline"`
}

// #endregion types

// #region load

// Default returns the configuration used when no file is given.
func Default() Config {
	sig := signature.DefaultConfig()
	lc := lens.DefaultConfig()
	gc := gradient.DefaultConfig()
	return Config{
		Signature: SignatureConfig{
			MinWordCount: sig.MinWordCount,
			QOptCeiling:  sig.QOptCeiling,
		},
		Interference: InterferenceConfig{
			Threshold: lc.Threshold,
			FWeight:   lc.FWeight,
		},
		Tracker: TrackerConfig{
			Capacity:   gc.Capacity,
			MinSamples: gc.MinSamples,
			Thresholds: ThresholdsConfig{
				PredictedQMax:  gc.Thresholds.PredictedQMax,
				QVelocityMax:   gc.Thresholds.QVelocityMax,
				PsiVelocityMin: gc.Thresholds.PsiVelocityMin,
				FVelocityMin:   gc.Thresholds.FVelocityMin,
			},
		},
	}
}

// Load reads a YAML configuration file. Absent fields keep their defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadOrDefault loads path when non-empty, otherwise returns Default.
func LoadOrDefault(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

// #endregion load

// #region build

// SignatureOptions converts to the signature package's config.
func (c Config) SignatureOptions() signature.Config {
	return signature.Config{
		MinWordCount: c.Signature.MinWordCount,
		QOptCeiling:  c.Signature.QOptCeiling,
	}
}

// LensOptions converts to the lens package's config.
func (c Config) LensOptions() lens.Config {
	return lens.Config{
		Threshold: c.Interference.Threshold,
		FWeight:   c.Interference.FWeight,
	}
}

// TrackerOptions converts to the gradient package's config.
func (c Config) TrackerOptions() gradient.Config {
	return gradient.Config{
		Capacity:   c.Tracker.Capacity,
		MinSamples: c.Tracker.MinSamples,
		Thresholds: gradient.Thresholds{
			PredictedQMax:  c.Tracker.Thresholds.PredictedQMax,
			QVelocityMax:   c.Tracker.Thresholds.QVelocityMax,
			PsiVelocityMin: c.Tracker.Thresholds.PsiVelocityMin,
			FVelocityMin:   c.Tracker.Thresholds.FVelocityMin,
		},
	}
}

// BuildRegistry returns the builtin profiles plus any declared in the file.
// A custom profile with a builtin name replaces the builtin.
func (c Config) BuildRegistry() *calibration.Registry {
	profiles := calibration.BuiltinProfiles()
	for _, p := range c.Profiles {
		profiles = append(profiles, calibration.Profile{
			Name:        p.Name,
			Description: p.Description,
			Weights: calibration.Weights{
				Psi: p.PsiWeight,
				Rho: p.RhoWeight,
				Q:   p.QWeight,
				F:   p.FWeight,
			},
			Km:                   p.Km,
			Ki:                   p.Ki,
			TemporalScale:        p.TemporalScale,
			InterferenceBaseline: p.InterferenceBaseline,
		})
	}
	return calibration.NewRegistry(profiles)
}

// #endregion build
