package calibration

import "sort"

// #region registry

// Registry is a read-only set of calibration profiles built once at
// process start. It exposes no mutation path after construction, which is
// what makes concurrent signature computation safe without locks.
type Registry struct {
	profiles map[string]Profile
}

// NewRegistry builds a registry from the given profiles. Later entries
// with a duplicate name replace earlier ones.
func NewRegistry(profiles []Profile) *Registry {
	m := make(map[string]Profile, len(profiles))
	for _, p := range profiles {
		m[p.Name] = p
	}
	return &Registry{profiles: m}
}

// Get returns the named profile, or a NotFoundError for unknown names.
func (r *Registry) Get(name string) (Profile, error) {
	p, ok := r.profiles[name]
	if !ok {
		return Profile{}, &NotFoundError{Name: name}
	}
	return p, nil
}

// Names returns all registered profile names in lexical order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.profiles))
	for name := range r.profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered profiles.
func (r *Registry) Len() int {
	return len(r.profiles)
}

// #endregion registry

// #region builtin

// BuiltinProfiles returns the default profile set. Weight and saturation
// values are working defaults, not validated ground truth; deployments
// override them through config.
func BuiltinProfiles() []Profile {
	return []Profile{
		{
			Name:                 "general",
			Description:          "Neutral frame with unit weights",
			Weights:              Weights{Psi: 1.0, Rho: 1.0, Q: 1.0, F: 1.0},
			Km:                   0.3,
			Ki:                   2.0,
			TemporalScale:        1.0,
			InterferenceBaseline: 0.015,
		},
		{
			Name:                 "modern_poetic",
			Description:          "Contemporary poetic expression with personal voice",
			Weights:              Weights{Psi: 1.0, Rho: 1.2, Q: 1.3, F: 0.8},
			Km:                   0.3,
			Ki:                   2.0,
			TemporalScale:        1.1,
			InterferenceBaseline: 0.015,
		},
		{
			Name:                 "reflective_scholastic",
			Description:          "Demonstrative reasoning with restrained emotion",
			Weights:              Weights{Psi: 1.5, Rho: 1.4, Q: 0.6, F: 1.0},
			Km:                   0.5,
			Ki:                   3.0,
			TemporalScale:        1.3,
			InterferenceBaseline: 0.012,
		},
		{
			Name:                 "oral_narrative",
			Description:          "Circular, story-based wisdom transmission",
			Weights:              Weights{Psi: 0.9, Rho: 1.5, Q: 1.0, F: 1.4},
			Km:                   0.2,
			Ki:                   1.5,
			TemporalScale:        1.4,
			InterferenceBaseline: 0.015,
		},
		{
			Name:                 "digital_native",
			Description:          "Rapid, networked, reaction-punctuated expression",
			Weights:              Weights{Psi: 0.7, Rho: 0.8, Q: 1.1, F: 1.3},
			Km:                   0.2,
			Ki:                   1.8,
			TemporalScale:        0.7,
			InterferenceBaseline: 0.018,
		},
		{
			Name:                 "contemplative",
			Description:          "Paradoxical framing pointing beyond concepts",
			Weights:              Weights{Psi: 0.8, Rho: 1.6, Q: 0.7, F: 1.2},
			Km:                   0.4,
			Ki:                   2.5,
			TemporalScale:        1.5,
			InterferenceBaseline: 0.012,
		},
		{
			Name:                 "heightened_logic",
			Description:          "Consistency-first framing; directness over social smoothing",
			Weights:              Weights{Psi: 1.3, Rho: 1.1, Q: 0.9, F: 0.7},
			Km:                   0.45,
			Ki:                   3.5,
			TemporalScale:        1.0,
			InterferenceBaseline: 0.014,
		},
		{
			Name:                 "rapid_associative",
			Description:          "Associative leaps, quick activation shifts, relation-focused",
			Weights:              Weights{Psi: 0.8, Rho: 1.2, Q: 1.4, F: 1.3},
			Km:                   0.25,
			Ki:                   1.2,
			TemporalScale:        0.8,
			InterferenceBaseline: 0.018,
		},
		{
			Name:                 "tactical_compression",
			Description:          "Compressed, vigilance-shaped communication under sustained load",
			Weights:              Weights{Psi: 1.1, Rho: 1.2, Q: 1.5, F: 1.3},
			Km:                   0.2,
			Ki:                   0.8,
			TemporalScale:        0.6,
			InterferenceBaseline: 0.02,
		},
	}
}

// DefaultRegistry returns a registry populated with the builtin profiles.
func DefaultRegistry() *Registry {
	return NewRegistry(BuiltinProfiles())
}

// #endregion builtin
