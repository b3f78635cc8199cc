package eval

import "errors"

// Common errors.
var (
	ErrMissingInput  = errors.New("required input variable is not bound")
	ErrShapeMismatch = errors.New("buffer shape does not satisfy the declared variable shape")
	ErrStateMismatch = errors.New("evaluation state does not match this backward pass")
)
