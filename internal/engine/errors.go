package engine

import "errors"

// Common errors.
var (
	ErrInvalidPrecision = errors.New("precision must be \"float\" or \"double\"")
	ErrDisjointKeys     = errors.New("input and gradient key sets are disjoint")
	ErrHandleInUse      = errors.New("context handle is already registered")
)
