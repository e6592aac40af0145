package signature

import "fmt"

// #region insufficient-input

// InsufficientInputError reports input volume below the engine minimum:
// too few words for a signature, or too few readings for an analysis.
type InsufficientInputError struct {
	What string
	Got  int
	Min  int
}

func (e *InsufficientInputError) Error() string {
	return fmt.Sprintf("insufficient input: %s %d below minimum %d", e.What, e.Got, e.Min)
}

// #endregion insufficient-input

// #region malformed-record

// MalformedRecordError reports a feature record violating the non-negative
// count invariant. Always a caller bug, never recovered into a default.
type MalformedRecordError struct {
	Field string
	Value int
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("malformed feature record: %s = %d (counts must be non-negative)", e.Field, e.Value)
}

// #endregion malformed-record
