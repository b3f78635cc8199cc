package tensor

import "fmt"

// FreeDim marks a dimension whose concrete size is supplied at bind time
// (typically the batch axis) in a declared variable shape.
const FreeDim = -1

// Shape represents the dimensions of a buffer, row-major.
type Shape []int

// NumElements returns the total number of elements.
func (s Shape) NumElements() int {
	if len(s) == 0 {
		return 1 // Scalar has 1 element
	}
	n := 1
	for _, dim := range s {
		n *= dim
	}
	return n
}

// Validate checks that the shape is concrete (all dimensions > 0).
func (s Shape) Validate() error {
	for i, dim := range s {
		if dim <= 0 {
			return fmt.Errorf("invalid dimension at index %d: %d (must be > 0)", i, dim)
		}
	}
	return nil
}

// Equal checks if two shapes are equal.
func (s Shape) Equal(other Shape) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// ConformsTo reports whether a concrete shape satisfies a declared shape.
// A FreeDim in the declared shape matches any concrete size; every other
// dimension must match exactly, as must the rank.
func (s Shape) ConformsTo(declared Shape) bool {
	if len(s) != len(declared) {
		return false
	}
	for i := range s {
		if declared[i] == FreeDim {
			continue
		}
		if s[i] != declared[i] {
			return false
		}
	}
	return true
}

// Clone returns a copy of the shape.
func (s Shape) Clone() Shape {
	clone := make(Shape, len(s))
	copy(clone, s)
	return clone
}

// Reversed returns the shape with its dimension order reversed. The host
// boundary uses this for the one-time layout adaptation; the engine itself
// is always canonical row-major.
func (s Shape) Reversed() Shape {
	rev := make(Shape, len(s))
	for i, dim := range s {
		rev[len(s)-1-i] = dim
	}
	return rev
}

// ComputeStrides calculates row-major strides for the shape.
// Strides define memory layout: stride[i] = product of all dimensions after i.
func (s Shape) ComputeStrides() []int {
	strides := make([]int, len(s))
	if len(s) == 0 {
		return strides
	}

	strides[len(s)-1] = 1
	for i := len(s) - 2; i >= 0; i-- {
		strides[i] = strides[i+1] * s[i+1]
	}
	return strides
}
