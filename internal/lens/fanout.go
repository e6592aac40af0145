package lens

import (
	"fmt"

	"github.com/mwestbrook/prismatic/go-engine/internal/calibration"
	"github.com/mwestbrook/prismatic/go-engine/internal/signature"
)

// #region fanout

// ReadAll computes one reading per registered profile for a single feature
// record. The fan-out is explicit over the registry so the analyzer never
// has to know which or how many profiles exist.
func ReadAll(comp *signature.Computer, features signature.FeatureRecord, reg *calibration.Registry) ([]Reading, error) {
	names := reg.Names()
	readings := make([]Reading, 0, len(names))
	for _, name := range names {
		profile, err := reg.Get(name)
		if err != nil {
			return nil, err
		}
		sig, err := comp.Compute(features, profile)
		if err != nil {
			return nil, fmt.Errorf("compute under %s: %w", name, err)
		}
		readings = append(readings, Reading{Calibration: name, Signature: sig})
	}
	return readings, nil
}

// #endregion fanout
