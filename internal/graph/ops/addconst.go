package ops

import "github.com/ember-ml/ember/internal/tensor"

// AddConstOp adds a constant to every element: output = x + c.
//
// Backward: d(x+c)/dx = 1, so the output gradient passes through unchanged.
type AddConstOp struct {
	C float64
}

// Kind returns the kind tag.
func (AddConstOp) Kind() string { return "AddConst" }

// Arity returns 1.
func (AddConstOp) Arity() int { return 1 }

// Retain returns RetainNone.
func (AddConstOp) Retain() Retain { return RetainNone }

// OutputShape passes the input shape through.
func (AddConstOp) OutputShape(inputs []tensor.Shape) (tensor.Shape, error) {
	return unaryShape("AddConst", inputs)
}

// Forward computes x + c.
func (op AddConstOp) Forward(inputs []*tensor.Buffer, backend tensor.Backend) (*tensor.Buffer, error) {
	if err := oneInput("AddConst", inputs); err != nil {
		return nil, err
	}
	return backend.AddScalar(inputs[0], op.C), nil
}

// Backward passes the output gradient through.
func (AddConstOp) Backward(outputGrad *tensor.Buffer, _ Saved, _ tensor.Backend) ([]*tensor.Buffer, error) {
	return []*tensor.Buffer{outputGrad.Clone()}, nil
}
