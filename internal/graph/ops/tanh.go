package ops

import "github.com/ember-ml/ember/internal/tensor"

// TanhOp is the hyperbolic tangent.
//
// Backward: d(tanh x)/dx = 1 - tanh²(x), so only the output is retained:
// grad_x = outputGrad * (1 - y²).
type TanhOp struct{}

// Kind returns the kind tag.
func (TanhOp) Kind() string { return "Tanh" }

// Arity returns 1.
func (TanhOp) Arity() int { return 1 }

// Retain returns RetainOutput.
func (TanhOp) Retain() Retain { return RetainOutput }

// OutputShape passes the input shape through.
func (TanhOp) OutputShape(inputs []tensor.Shape) (tensor.Shape, error) {
	return unaryShape("Tanh", inputs)
}

// Forward computes tanh(x).
func (TanhOp) Forward(inputs []*tensor.Buffer, backend tensor.Backend) (*tensor.Buffer, error) {
	if err := oneInput("Tanh", inputs); err != nil {
		return nil, err
	}
	return backend.Tanh(inputs[0]), nil
}

// Backward computes outputGrad * (1 - y²) from the retained output.
func (TanhOp) Backward(outputGrad *tensor.Buffer, saved Saved, backend tensor.Backend) ([]*tensor.Buffer, error) {
	y := saved.Output
	ySq := backend.Mul(y, y)
	negYSq := backend.Scale(ySq, -1)
	ySq.Release()
	dydx := backend.AddScalar(negYSq, 1)
	negYSq.Release()
	grad := backend.Mul(outputGrad, dydx)
	dydx.Release()
	return []*tensor.Buffer{grad}, nil
}
