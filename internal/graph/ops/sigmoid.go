package ops

import "github.com/ember-ml/ember/internal/tensor"

// SigmoidOp is the logistic function: output = 1 / (1 + exp(-x)).
//
// Backward: dσ/dx = σ(x) * (1 - σ(x)), expressed entirely in terms of the
// retained output y: grad_x = outputGrad * y * (1 - y).
type SigmoidOp struct{}

// Kind returns the kind tag.
func (SigmoidOp) Kind() string { return "Sigmoid" }

// Arity returns 1.
func (SigmoidOp) Arity() int { return 1 }

// Retain returns RetainOutput.
func (SigmoidOp) Retain() Retain { return RetainOutput }

// OutputShape passes the input shape through.
func (SigmoidOp) OutputShape(inputs []tensor.Shape) (tensor.Shape, error) {
	return unaryShape("Sigmoid", inputs)
}

// Forward computes 1 / (1 + exp(-x)).
func (SigmoidOp) Forward(inputs []*tensor.Buffer, backend tensor.Backend) (*tensor.Buffer, error) {
	if err := oneInput("Sigmoid", inputs); err != nil {
		return nil, err
	}
	return backend.Sigmoid(inputs[0]), nil
}

// Backward computes outputGrad * y * (1 - y) from the retained output.
func (SigmoidOp) Backward(outputGrad *tensor.Buffer, saved Saved, backend tensor.Backend) ([]*tensor.Buffer, error) {
	y := saved.Output
	negY := backend.Scale(y, -1)
	oneMinusY := backend.AddScalar(negY, 1)
	negY.Release()
	dydx := backend.Mul(y, oneMinusY)
	oneMinusY.Release()
	grad := backend.Mul(outputGrad, dydx)
	dydx.Release()
	return []*tensor.Buffer{grad}, nil
}
