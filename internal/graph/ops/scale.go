package ops

import "github.com/ember-ml/ember/internal/tensor"

// ScaleOp multiplies every element by a constant: output = c * x.
// The constant is a static parameter owned by the operation.
//
// Backward: d(c*x)/dx = c, so grad_x = c * outputGrad.
type ScaleOp struct {
	C float64
}

// Kind returns the kind tag.
func (ScaleOp) Kind() string { return "Scale" }

// Arity returns 1.
func (ScaleOp) Arity() int { return 1 }

// Retain returns RetainNone.
func (ScaleOp) Retain() Retain { return RetainNone }

// OutputShape passes the input shape through.
func (ScaleOp) OutputShape(inputs []tensor.Shape) (tensor.Shape, error) {
	return unaryShape("Scale", inputs)
}

// Forward computes c * x.
func (op ScaleOp) Forward(inputs []*tensor.Buffer, backend tensor.Backend) (*tensor.Buffer, error) {
	if err := oneInput("Scale", inputs); err != nil {
		return nil, err
	}
	return backend.Scale(inputs[0], op.C), nil
}

// Backward scales the output gradient by the constant.
func (op ScaleOp) Backward(outputGrad *tensor.Buffer, _ Saved, backend tensor.Backend) ([]*tensor.Buffer, error) {
	return []*tensor.Buffer{backend.Scale(outputGrad, op.C)}, nil
}
