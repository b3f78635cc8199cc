// Copyright 2026 Ember ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package eval provides the public API for forward and backward evaluation
// of operator graphs.
//
// A forward pass produces output buffers plus an EvaluationState; the state
// feeds exactly one matching backward pass, which returns accumulated
// gradients per requested variable.
//
// Example:
//
//	e := eval.New(cpu.New())
//	outputs, state, err := e.Forward(g, []*graph.Variable{y}, bindings)
//	grads, err := e.Backward(state, seeds, []*graph.Variable{x})
package eval

import (
	"github.com/ember-ml/ember/internal/eval"
	"github.com/ember-ml/ember/internal/tensor"
)

// Evaluator executes forward and backward passes on a single device.
type Evaluator = eval.Evaluator

// EvaluationState links a forward pass to its matching backward pass.
type EvaluationState = eval.EvaluationState

// GradientMap maps variables to their accumulated gradient buffers.
type GradientMap = eval.GradientMap

// Common errors.
var (
	ErrMissingInput  = eval.ErrMissingInput
	ErrShapeMismatch = eval.ErrShapeMismatch
	ErrStateMismatch = eval.ErrStateMismatch
)

// New creates an evaluator dispatching kernels through the given backend.
func New(backend tensor.Backend) *Evaluator {
	return eval.New(backend)
}
