package ops

import "github.com/ember-ml/ember/internal/tensor"

// ExpOp is the element-wise exponential.
//
// Backward: d(eˣ)/dx = eˣ = y, so only the output is retained:
// grad_x = outputGrad * y.
type ExpOp struct{}

// Kind returns the kind tag.
func (ExpOp) Kind() string { return "Exp" }

// Arity returns 1.
func (ExpOp) Arity() int { return 1 }

// Retain returns RetainOutput.
func (ExpOp) Retain() Retain { return RetainOutput }

// OutputShape passes the input shape through.
func (ExpOp) OutputShape(inputs []tensor.Shape) (tensor.Shape, error) {
	return unaryShape("Exp", inputs)
}

// Forward computes exp(x).
func (ExpOp) Forward(inputs []*tensor.Buffer, backend tensor.Backend) (*tensor.Buffer, error) {
	if err := oneInput("Exp", inputs); err != nil {
		return nil, err
	}
	return backend.Exp(inputs[0]), nil
}

// Backward computes outputGrad * y from the retained output.
func (ExpOp) Backward(outputGrad *tensor.Buffer, saved Saved, backend tensor.Backend) ([]*tensor.Buffer, error) {
	return []*tensor.Buffer{backend.Mul(outputGrad, saved.Output)}, nil
}
