// Package graph provides the immutable operator DAG the evaluator executes:
// variables (named data slots), operators (computation nodes), graph
// construction with cycle detection, and deterministic topological ordering.
package graph

import (
	"fmt"

	"github.com/ember-ml/ember/internal/tensor"
)

// Role tags the function a variable serves in the graph.
type Role int

// Variable roles.
const (
	RoleInput           Role = iota // bound by the caller at forward time
	RoleOutput                      // produced by an operator
	RoleParameter                   // carries its own value buffer
	RoleGradPlaceholder             // receives gradients only, never forward data
)

// String returns a human-readable role name.
func (r Role) String() string {
	switch r {
	case RoleInput:
		return "Input"
	case RoleOutput:
		return "Output"
	case RoleParameter:
		return "Parameter"
	case RoleGradPlaceholder:
		return "GradPlaceholder"
	default:
		return "Unknown"
	}
}

// Variable is a named data slot connecting operators. It carries a declared
// shape, possibly with free dimensions, and a role tag. Variables are owned
// by the graph and referenced, never owned, by operators.
type Variable struct {
	id       int
	name     string
	declared tensor.Shape
	role     Role
	producer *Operator
	value    *tensor.Buffer // parameters only
}

// ID returns the variable's creation-order identity.
func (v *Variable) ID() int {
	return v.id
}

// Name returns the variable's name.
func (v *Variable) Name() string {
	return v.name
}

// Shape returns the declared shape. Free dimensions are tensor.FreeDim.
func (v *Variable) Shape() tensor.Shape {
	return v.declared
}

// Role returns the variable's role tag.
func (v *Variable) Role() Role {
	return v.role
}

// Producer returns the operator producing this variable, or nil for
// variables bound from outside the graph.
func (v *Variable) Producer() *Operator {
	return v.producer
}

// Value returns the owned value buffer for parameter variables, nil
// otherwise.
func (v *Variable) Value() *tensor.Buffer {
	return v.value
}

// String returns a debug representation.
func (v *Variable) String() string {
	return fmt.Sprintf("%s(%q, %v)", v.role, v.name, v.declared)
}
