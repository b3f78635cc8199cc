package graph

import (
	"github.com/ember-ml/ember/internal/tensor"

	"github.com/ember-ml/ember/internal/graph/ops"
)

// Operator is a single computation node: an ordered list of input variables,
// one output variable, and a kind selecting its forward/backward
// computation. Operators are immutable once the graph is built; creation
// order (the id) breaks scheduling ties deterministically.
type Operator struct {
	id     int
	op     ops.Operation
	inputs []*Variable
	output *Variable
}

// ID returns the operator's creation-order identity.
func (o *Operator) ID() int {
	return o.id
}

// Kind returns the operation kind tag.
func (o *Operator) Kind() string {
	return o.op.Kind()
}

// Op returns the operation implementing forward/backward for this node.
func (o *Operator) Op() ops.Operation {
	return o.op
}

// Inputs returns the ordered input variables.
func (o *Operator) Inputs() []*Variable {
	return o.inputs
}

// Output returns the output variable.
func (o *Operator) Output() *Variable {
	return o.output
}

// InputShapes returns the declared shapes of the inputs.
func (o *Operator) InputShapes() []tensor.Shape {
	shapes := make([]tensor.Shape, len(o.inputs))
	for i, in := range o.inputs {
		shapes[i] = in.Shape()
	}
	return shapes
}
