// Package ops defines the closed set of operator kinds the evaluator can
// dispatch, each with a forward computation, a backward computation, and a
// retain policy describing which forward buffers the backward pass needs.
//
// Supported kinds:
//   - AddOp, SubOp, MulOp: element-wise binary arithmetic
//   - ScaleOp, AddConstOp: element-wise scalar arithmetic
//   - MatMulOp: 2D matrix multiplication
//   - ReLUOp, SigmoidOp, TanhOp, ExpOp, LogOp: element-wise unary
package ops

import (
	"fmt"

	"github.com/ember-ml/ember/internal/tensor"
)

// Retain declares which forward-pass buffers an operation's backward
// computation needs. The evaluator uses it to build the retain set: buffers
// not covered by any policy are released as soon as their last forward
// consumer has run.
type Retain int

// Retain policies.
const (
	RetainNone   Retain = iota // backward needs no forward buffers (Add, Scale)
	RetainInputs               // backward needs the inputs (Mul, MatMul, Log)
	RetainOutput               // backward needs the output (Sigmoid, Tanh, Exp)
)

// Saved carries the retained forward buffers handed to Backward. Fields not
// covered by the operation's retain policy are nil.
type Saved struct {
	Inputs []*tensor.Buffer
	Output *tensor.Buffer
}

// Operation is a single differentiable computation kind. Implementations are
// immutable values; static parameters (like a scale constant) are fields set
// at graph-construction time.
type Operation interface {
	// Kind returns the operation's kind tag.
	Kind() string

	// Arity returns the number of input variables the operation consumes.
	Arity() int

	// OutputShape infers the declared output shape from the declared input
	// shapes. Free dimensions propagate; incompatible declared shapes fail.
	OutputShape(inputs []tensor.Shape) (tensor.Shape, error)

	// Forward computes the output buffer from fully concrete input buffers.
	Forward(inputs []*tensor.Buffer, backend tensor.Backend) (*tensor.Buffer, error)

	// Backward computes one gradient contribution per input, given the
	// gradient accumulated at the output and the retained forward buffers.
	// Returned buffers are freshly allocated and owned by the caller.
	Backward(outputGrad *tensor.Buffer, saved Saved, backend tensor.Backend) ([]*tensor.Buffer, error)

	// Retain returns the operation's retain policy.
	Retain() Retain
}

// elementwiseShape infers the output shape of a binary element-wise
// operation. Ranks must match; per dimension the sizes must agree unless one
// side is free, in which case the free dimension propagates.
func elementwiseShape(kind string, inputs []tensor.Shape) (tensor.Shape, error) {
	if len(inputs) != 2 {
		return nil, fmt.Errorf("%s: expected 2 inputs, got %d", kind, len(inputs))
	}
	a, b := inputs[0], inputs[1]
	if len(a) != len(b) {
		return nil, fmt.Errorf("%s: rank mismatch %v vs %v", kind, a, b)
	}
	out := make(tensor.Shape, len(a))
	for i := range a {
		switch {
		case a[i] == b[i]:
			out[i] = a[i]
		case a[i] == tensor.FreeDim || b[i] == tensor.FreeDim:
			out[i] = tensor.FreeDim
		default:
			return nil, fmt.Errorf("%s: dimension %d mismatch %v vs %v", kind, i, a, b)
		}
	}
	return out, nil
}

// unaryShape infers the output shape of a unary element-wise operation.
func unaryShape(kind string, inputs []tensor.Shape) (tensor.Shape, error) {
	if len(inputs) != 1 {
		return nil, fmt.Errorf("%s: expected 1 input, got %d", kind, len(inputs))
	}
	return inputs[0].Clone(), nil
}

// sameShape validates that concrete forward operands agree in shape and dtype.
func sameShape(kind string, inputs []*tensor.Buffer) error {
	if len(inputs) != 2 {
		return fmt.Errorf("%s: expected 2 inputs, got %d", kind, len(inputs))
	}
	a, b := inputs[0], inputs[1]
	if !a.Shape().Equal(b.Shape()) {
		return fmt.Errorf("%s: operand shapes %v and %v differ", kind, a.Shape(), b.Shape())
	}
	if a.DType() != b.DType() {
		return fmt.Errorf("%s: operand dtypes %s and %s differ", kind, a.DType(), b.DType())
	}
	return nil
}

// oneInput validates the arity of a unary forward call.
func oneInput(kind string, inputs []*tensor.Buffer) error {
	if len(inputs) != 1 {
		return fmt.Errorf("%s: expected 1 input, got %d", kind, len(inputs))
	}
	return nil
}
