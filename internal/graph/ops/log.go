package ops

import "github.com/ember-ml/ember/internal/tensor"

// LogOp is the element-wise natural logarithm. Input values must be
// positive.
//
// Backward: d(log x)/dx = 1/x, so the input is retained:
// grad_x = outputGrad / x.
type LogOp struct{}

// Kind returns the kind tag.
func (LogOp) Kind() string { return "Log" }

// Arity returns 1.
func (LogOp) Arity() int { return 1 }

// Retain returns RetainInputs.
func (LogOp) Retain() Retain { return RetainInputs }

// OutputShape passes the input shape through.
func (LogOp) OutputShape(inputs []tensor.Shape) (tensor.Shape, error) {
	return unaryShape("Log", inputs)
}

// Forward computes log(x).
func (LogOp) Forward(inputs []*tensor.Buffer, backend tensor.Backend) (*tensor.Buffer, error) {
	if err := oneInput("Log", inputs); err != nil {
		return nil, err
	}
	return backend.Log(inputs[0]), nil
}

// Backward computes outputGrad / x from the retained input.
func (LogOp) Backward(outputGrad *tensor.Buffer, saved Saved, backend tensor.Backend) ([]*tensor.Buffer, error) {
	return []*tensor.Buffer{backend.Div(outputGrad, saved.Inputs[0])}, nil
}
