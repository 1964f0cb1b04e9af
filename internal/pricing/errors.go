package pricing

import "errors"

// ErrInvalidInput marks caller errors: negative prices or costs, malformed fee
// schedules. Soft conditions (no market signal, undefined ROI, floor applied)
// are represented as values, never as errors.
var ErrInvalidInput = errors.New("invalid input")
