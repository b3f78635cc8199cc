// Copyright 2026 Ember ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package graph provides the public API for building immutable operator
// DAGs: variables, operators, and deterministic topological scheduling.
//
// Example:
//
//	b := graph.NewBuilder()
//	x := b.Input("x", tensor.Shape{2})
//	y := b.AddConst(b.Scale(x, 2), 1) // y = 2x + 1
//	g, err := b.Build(y)
package graph

import (
	"github.com/ember-ml/ember/internal/graph"
)

// Variable is a named data slot connecting operators.
type Variable = graph.Variable

// Operator is a single computation node with forward and backward behavior.
type Operator = graph.Operator

// Graph is an immutable DAG of operators connected by data-dependency edges.
type Graph = graph.Graph

// Builder constructs variables and operators with creation-order identities.
type Builder = graph.Builder

// Role tags the function a variable serves in the graph.
type Role = graph.Role

// Variable roles.
const (
	RoleInput           Role = graph.RoleInput
	RoleOutput          Role = graph.RoleOutput
	RoleParameter       Role = graph.RoleParameter
	RoleGradPlaceholder Role = graph.RoleGradPlaceholder
)

// Common errors.
var (
	ErrCycleDetected   = graph.ErrCycleDetected
	ErrUnresolvedInput = graph.ErrUnresolvedInput
	ErrNotInGraph      = graph.ErrNotInGraph
)

// NewBuilder creates an empty builder.
func NewBuilder() *Builder {
	return graph.NewBuilder()
}

// Build collects everything reachable from the roots into an immutable
// graph, failing on cycles and unresolvable inputs.
func Build(roots ...*Variable) (*Graph, error) {
	return graph.Build(roots...)
}
