package ops

import "github.com/ember-ml/ember/internal/tensor"

// AddOp is element-wise addition: output = a + b.
//
// Backward: d(a+b)/da = d(a+b)/db = 1, so the output gradient flows to both
// inputs unchanged. No forward buffers are retained.
type AddOp struct{}

// Kind returns the kind tag.
func (AddOp) Kind() string { return "Add" }

// Arity returns 2.
func (AddOp) Arity() int { return 2 }

// Retain returns RetainNone.
func (AddOp) Retain() Retain { return RetainNone }

// OutputShape infers the element-wise output shape.
func (AddOp) OutputShape(inputs []tensor.Shape) (tensor.Shape, error) {
	return elementwiseShape("Add", inputs)
}

// Forward computes a + b.
func (AddOp) Forward(inputs []*tensor.Buffer, backend tensor.Backend) (*tensor.Buffer, error) {
	if err := sameShape("Add", inputs); err != nil {
		return nil, err
	}
	return backend.Add(inputs[0], inputs[1]), nil
}

// Backward routes the output gradient to both inputs.
func (AddOp) Backward(outputGrad *tensor.Buffer, _ Saved, _ tensor.Backend) ([]*tensor.Buffer, error) {
	return []*tensor.Buffer{outputGrad.Clone(), outputGrad.Clone()}, nil
}
