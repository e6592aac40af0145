package calibration

// #region weights

// Weights holds per-dimension multipliers applied after base normalization.
type Weights struct {
	Psi float64
	Rho float64
	Q   float64
	F   float64
}

// #endregion weights

// #region profile

// Profile is an immutable interpretive frame: dimension weights plus the
// saturation constants that shape the activation damping curve.
// Profiles are registered once at startup and shared read-only across
// any number of concurrent signature computations.
type Profile struct {
	Name        string
	Description string
	Weights     Weights

	// Saturation-with-inhibition constants. Km is the half-saturation
	// point, Ki the inhibition onset. Both must be positive.
	Km float64
	Ki float64

	// TemporalScale stretches or compresses the temporal-depth window.
	TemporalScale float64

	// InterferenceBaseline is the expected lambda when this profile reads
	// ordinary text; used as a default classification threshold by callers
	// that key their analysis to one primary profile.
	InterferenceBaseline float64
}

// #endregion profile

// #region not-found

// NotFoundError reports a lookup against an unregistered profile name.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return "calibration profile not found: " + e.Name
}

// #endregion not-found
