package ops

import (
	"fmt"

	"github.com/ember-ml/ember/internal/tensor"
)

// MatMulOp is 2D matrix multiplication: output = a @ b for a [m, k] and
// b [k, n]. Both inputs are retained for the backward pass.
//
// Backward:
//
//	grad_a = outputGrad @ bᵀ
//	grad_b = aᵀ @ outputGrad
type MatMulOp struct{}

// Kind returns the kind tag.
func (MatMulOp) Kind() string { return "MatMul" }

// Arity returns 2.
func (MatMulOp) Arity() int { return 2 }

// Retain returns RetainInputs.
func (MatMulOp) Retain() Retain { return RetainInputs }

// OutputShape infers [m, n] from [m, k] @ [k, n]. A free inner dimension
// defers the contraction check to bind time.
func (MatMulOp) OutputShape(inputs []tensor.Shape) (tensor.Shape, error) {
	if len(inputs) != 2 {
		return nil, fmt.Errorf("MatMul: expected 2 inputs, got %d", len(inputs))
	}
	a, b := inputs[0], inputs[1]
	if len(a) != 2 || len(b) != 2 {
		return nil, fmt.Errorf("MatMul: expected 2D operands, got %v and %v", a, b)
	}
	if a[1] != b[0] && a[1] != tensor.FreeDim && b[0] != tensor.FreeDim {
		return nil, fmt.Errorf("MatMul: inner dimensions mismatch: %v @ %v", a, b)
	}
	return tensor.Shape{a[0], b[1]}, nil
}

// Forward computes a @ b.
func (MatMulOp) Forward(inputs []*tensor.Buffer, backend tensor.Backend) (*tensor.Buffer, error) {
	if len(inputs) != 2 {
		return nil, fmt.Errorf("MatMul: expected 2 inputs, got %d", len(inputs))
	}
	a, b := inputs[0], inputs[1]
	if len(a.Shape()) != 2 || len(b.Shape()) != 2 {
		return nil, fmt.Errorf("MatMul: expected 2D operands, got %v and %v", a.Shape(), b.Shape())
	}
	if a.Shape()[1] != b.Shape()[0] {
		return nil, fmt.Errorf("MatMul: inner dimensions mismatch: %v @ %v", a.Shape(), b.Shape())
	}
	if a.DType() != b.DType() {
		return nil, fmt.Errorf("MatMul: operand dtypes %s and %s differ", a.DType(), b.DType())
	}
	return backend.MatMul(a, b), nil
}

// Backward computes grad_a = outputGrad @ bᵀ and grad_b = aᵀ @ outputGrad.
func (MatMulOp) Backward(outputGrad *tensor.Buffer, saved Saved, backend tensor.Backend) ([]*tensor.Buffer, error) {
	a, b := saved.Inputs[0], saved.Inputs[1]

	bT := backend.Transpose2D(b)
	gradA := backend.MatMul(outputGrad, bT)
	bT.Release()

	aT := backend.Transpose2D(a)
	gradB := backend.MatMul(aT, outputGrad)
	aT.Release()

	return []*tensor.Buffer{gradA, gradB}, nil
}
