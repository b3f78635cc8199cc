package ops

import "github.com/ember-ml/ember/internal/tensor"

// MulOp is element-wise multiplication: output = a * b.
//
// Backward: d(a*b)/da = b and d(a*b)/db = a, so both inputs are retained
// for the backward pass.
type MulOp struct{}

// Kind returns the kind tag.
func (MulOp) Kind() string { return "Mul" }

// Arity returns 2.
func (MulOp) Arity() int { return 2 }

// Retain returns RetainInputs.
func (MulOp) Retain() Retain { return RetainInputs }

// OutputShape infers the element-wise output shape.
func (MulOp) OutputShape(inputs []tensor.Shape) (tensor.Shape, error) {
	return elementwiseShape("Mul", inputs)
}

// Forward computes a * b.
func (MulOp) Forward(inputs []*tensor.Buffer, backend tensor.Backend) (*tensor.Buffer, error) {
	if err := sameShape("Mul", inputs); err != nil {
		return nil, err
	}
	return backend.Mul(inputs[0], inputs[1]), nil
}

// Backward computes grad_a = outputGrad * b and grad_b = outputGrad * a.
func (MulOp) Backward(outputGrad *tensor.Buffer, saved Saved, backend tensor.Backend) ([]*tensor.Buffer, error) {
	a, b := saved.Inputs[0], saved.Inputs[1]
	return []*tensor.Buffer{
		backend.Mul(outputGrad, b),
		backend.Mul(outputGrad, a),
	}, nil
}
