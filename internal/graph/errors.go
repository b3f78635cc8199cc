package graph

import "errors"

// Common errors.
var (
	ErrCycleDetected   = errors.New("cycle detected in computation graph")
	ErrUnresolvedInput = errors.New("operator input has no producer and is not a bindable variable")
	ErrNotInGraph      = errors.New("variable is not part of this graph")
)
