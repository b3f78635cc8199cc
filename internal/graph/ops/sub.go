package ops

import "github.com/ember-ml/ember/internal/tensor"

// SubOp is element-wise subtraction: output = a - b.
//
// Backward: grad_a = outputGrad, grad_b = -outputGrad.
type SubOp struct{}

// Kind returns the kind tag.
func (SubOp) Kind() string { return "Sub" }

// Arity returns 2.
func (SubOp) Arity() int { return 2 }

// Retain returns RetainNone.
func (SubOp) Retain() Retain { return RetainNone }

// OutputShape infers the element-wise output shape.
func (SubOp) OutputShape(inputs []tensor.Shape) (tensor.Shape, error) {
	return elementwiseShape("Sub", inputs)
}

// Forward computes a - b.
func (SubOp) Forward(inputs []*tensor.Buffer, backend tensor.Backend) (*tensor.Buffer, error) {
	if err := sameShape("Sub", inputs); err != nil {
		return nil, err
	}
	return backend.Sub(inputs[0], inputs[1]), nil
}

// Backward routes the gradient to a unchanged and negated to b.
func (SubOp) Backward(outputGrad *tensor.Buffer, _ Saved, backend tensor.Backend) ([]*tensor.Buffer, error) {
	return []*tensor.Buffer{outputGrad.Clone(), backend.Scale(outputGrad, -1)}, nil
}
