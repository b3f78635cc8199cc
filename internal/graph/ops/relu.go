package ops

import "github.com/ember-ml/ember/internal/tensor"

// ReLUOp is the rectified linear unit: output = max(0, x).
//
// Backward: gradient flows only where the output is positive. The output is
// retained; since ReLU(x) > 0 exactly where x > 0, the input is not needed.
type ReLUOp struct{}

// Kind returns the kind tag.
func (ReLUOp) Kind() string { return "ReLU" }

// Arity returns 1.
func (ReLUOp) Arity() int { return 1 }

// Retain returns RetainOutput.
func (ReLUOp) Retain() Retain { return RetainOutput }

// OutputShape passes the input shape through.
func (ReLUOp) OutputShape(inputs []tensor.Shape) (tensor.Shape, error) {
	return unaryShape("ReLU", inputs)
}

// Forward computes max(0, x).
func (ReLUOp) Forward(inputs []*tensor.Buffer, backend tensor.Backend) (*tensor.Buffer, error) {
	if err := oneInput("ReLU", inputs); err != nil {
		return nil, err
	}
	return backend.ReLU(inputs[0]), nil
}

// Backward masks the output gradient to the positive region.
func (ReLUOp) Backward(outputGrad *tensor.Buffer, saved Saved, _ tensor.Backend) ([]*tensor.Buffer, error) {
	grad := outputGrad.Clone()
	switch grad.DType() {
	case tensor.Float32:
		y := saved.Output.AsFloat32()
		g := grad.AsFloat32()
		for i := range g {
			if y[i] <= 0 {
				g[i] = 0
			}
		}
	case tensor.Float64:
		y := saved.Output.AsFloat64()
		g := grad.AsFloat64()
		for i := range g {
			if y[i] <= 0 {
				g[i] = 0
			}
		}
	}
	return []*tensor.Buffer{grad}, nil
}
