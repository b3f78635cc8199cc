// Copyright 2026 Ember ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package engine provides the public API for execution contexts: the entry
// point external callers evaluate graphs through.
//
// A context binds a device and a precision policy at construction and stays
// immutable. Contexts live in explicitly owned registries; scoped use
// guarantees deregistration on every exit path.
//
// Example:
//
//	reg := engine.NewRegistry()
//	err := reg.With("demo", engine.CPUDeviceID, engine.PrecisionFloat,
//	    func(ctx *engine.ExecutionContext) error {
//	        outputs, grads, err := ctx.Evaluate(roots, inputs, wantGradients)
//	        ...
//	        return err
//	    })
package engine

import (
	"github.com/ember-ml/ember/internal/engine"
)

// ExecutionContext owns a device binding and precision policy and evaluates
// graphs on them.
type ExecutionContext = engine.ExecutionContext

// Registry is an explicitly owned mapping from handle to execution context.
type Registry = engine.Registry

// Precision selects the numeric policy of an execution context.
type Precision = engine.Precision

// Supported precisions.
const (
	PrecisionFloat  Precision = engine.PrecisionFloat
	PrecisionDouble Precision = engine.PrecisionDouble
)

// CPUDeviceID is the device id selecting the host CPU.
const CPUDeviceID = engine.CPUDeviceID

// DefaultHandle is the registry handle used when none is given.
const DefaultHandle = engine.DefaultHandle

// Common errors.
var (
	ErrInvalidPrecision = engine.ErrInvalidPrecision
	ErrDisjointKeys     = engine.ErrDisjointKeys
	ErrHandleInUse      = engine.ErrHandleInUse
)

// New creates an execution context with the given device id and precision.
func New(name string, deviceID int, precision Precision) (*ExecutionContext, error) {
	return engine.New(name, deviceID, precision)
}

// NewRegistry creates an empty context registry.
func NewRegistry() *Registry {
	return engine.NewRegistry()
}
