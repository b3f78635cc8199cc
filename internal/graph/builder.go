package graph

import (
	"fmt"

	"github.com/ember-ml/ember/internal/tensor"

	"github.com/ember-ml/ember/internal/graph/ops"
)

// Builder constructs variables and operators with creation-order identities.
// Construction errors (bad shapes, nil operands) are sticky: building
// methods keep returning usable handles and the first error surfaces from
// Build.
type Builder struct {
	nextVarID int
	nextOpID  int
	err       error
}

// NewBuilder creates an empty builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Input declares a caller-bound input variable. Free dimensions in the
// declared shape (tensor.FreeDim) match any concrete size at bind time.
func (b *Builder) Input(name string, shape tensor.Shape) *Variable {
	return b.newVariable(name, shape, RoleInput)
}

// Parameter declares a variable carrying its own value buffer. The variable
// owns the buffer exclusively for its lifetime.
func (b *Builder) Parameter(name string, value *tensor.Buffer) *Variable {
	v := b.newVariable(name, value.Shape(), RoleParameter)
	v.value = value
	return v
}

// GradPlaceholder declares a variable that only ever receives gradients,
// never forward data.
func (b *Builder) GradPlaceholder(name string, shape tensor.Shape) *Variable {
	return b.newVariable(name, shape, RoleGradPlaceholder)
}

// Add creates an element-wise addition node.
func (b *Builder) Add(x, y *Variable) *Variable {
	return b.apply(ops.AddOp{}, x, y)
}

// Sub creates an element-wise subtraction node.
func (b *Builder) Sub(x, y *Variable) *Variable {
	return b.apply(ops.SubOp{}, x, y)
}

// Mul creates an element-wise multiplication node.
func (b *Builder) Mul(x, y *Variable) *Variable {
	return b.apply(ops.MulOp{}, x, y)
}

// Scale creates a multiply-by-constant node.
func (b *Builder) Scale(x *Variable, c float64) *Variable {
	return b.apply(ops.ScaleOp{C: c}, x)
}

// AddConst creates an add-constant node.
func (b *Builder) AddConst(x *Variable, c float64) *Variable {
	return b.apply(ops.AddConstOp{C: c}, x)
}

// MatMul creates a 2D matrix multiplication node.
func (b *Builder) MatMul(x, y *Variable) *Variable {
	return b.apply(ops.MatMulOp{}, x, y)
}

// ReLU creates a rectified linear unit node.
func (b *Builder) ReLU(x *Variable) *Variable {
	return b.apply(ops.ReLUOp{}, x)
}

// Sigmoid creates a logistic activation node.
func (b *Builder) Sigmoid(x *Variable) *Variable {
	return b.apply(ops.SigmoidOp{}, x)
}

// Tanh creates a hyperbolic tangent node.
func (b *Builder) Tanh(x *Variable) *Variable {
	return b.apply(ops.TanhOp{}, x)
}

// Exp creates an element-wise exponential node.
func (b *Builder) Exp(x *Variable) *Variable {
	return b.apply(ops.ExpOp{}, x)
}

// Log creates an element-wise natural logarithm node.
func (b *Builder) Log(x *Variable) *Variable {
	return b.apply(ops.LogOp{}, x)
}

// Build collects everything reachable from the roots into an immutable
// graph. It surfaces the first sticky construction error, if any.
func (b *Builder) Build(roots ...*Variable) (*Graph, error) {
	if b.err != nil {
		return nil, b.err
	}
	return Build(roots...)
}

// Err returns the sticky construction error, if any.
func (b *Builder) Err() error {
	return b.err
}

func (b *Builder) newVariable(name string, shape tensor.Shape, role Role) *Variable {
	v := &Variable{
		id:       b.nextVarID,
		name:     name,
		declared: shape.Clone(),
		role:     role,
	}
	b.nextVarID++
	return v
}

func (b *Builder) apply(op ops.Operation, inputs ...*Variable) *Variable {
	out := b.newVariable(fmt.Sprintf("%s_%d", op.Kind(), b.nextOpID), nil, RoleOutput)
	if b.err != nil {
		return out
	}
	for _, in := range inputs {
		if in == nil {
			b.err = fmt.Errorf("%s: nil input variable", op.Kind())
			return out
		}
	}

	shapes := make([]tensor.Shape, len(inputs))
	for i, in := range inputs {
		shapes[i] = in.Shape()
	}
	outShape, err := op.OutputShape(shapes)
	if err != nil {
		b.err = err
		return out
	}

	node := &Operator{
		id:     b.nextOpID,
		op:     op,
		inputs: append([]*Variable(nil), inputs...),
		output: out,
	}
	b.nextOpID++
	out.declared = outShape
	out.producer = node
	return out
}
