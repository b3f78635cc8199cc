// Package engine provides the execution context: the single entry point
// external callers evaluate graphs through. A context binds a device and a
// precision policy at construction, caches built graphs per root set, and
// synthesizes seed gradients for backward passes.
package engine

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/ember-ml/ember/internal/backend/cpu"
	"github.com/ember-ml/ember/internal/eval"
	"github.com/ember-ml/ember/internal/graph"
	"github.com/ember-ml/ember/internal/tensor"
)

// Precision selects the numeric policy of an execution context.
type Precision string

// Supported precisions.
const (
	PrecisionFloat  Precision = "float"  // float32
	PrecisionDouble Precision = "double" // float64
)

// CPUDeviceID is the device id selecting the host CPU; non-negative ids
// denote accelerator indices.
const CPUDeviceID = -1

// ExecutionContext owns a device binding and a precision policy, both
// immutable after construction, and evaluates graphs on them. Graphs are
// built once per distinct root set and cached by root identity.
type ExecutionContext struct {
	name      string
	device    tensor.Device
	precision Precision
	dtype     tensor.DataType
	evaluator *eval.Evaluator

	mu    sync.Mutex
	cache map[string]*graph.Graph
}

// New creates an execution context. The device id maps CPUDeviceID to the
// CPU and non-negative values to the accelerator with that index; invalid
// precision values fail immediately.
func New(name string, deviceID int, precision Precision) (*ExecutionContext, error) {
	var dtype tensor.DataType
	switch precision {
	case PrecisionFloat:
		dtype = tensor.Float32
	case PrecisionDouble:
		dtype = tensor.Float64
	default:
		return nil, fmt.Errorf("%w: got %q", ErrInvalidPrecision, precision)
	}

	device := tensor.CPUDevice()
	if deviceID >= 0 {
		device = tensor.GPUDevice(deviceID)
	}

	return &ExecutionContext{
		name:      name,
		device:    device,
		precision: precision,
		dtype:     dtype,
		evaluator: eval.New(cpu.New()),
		cache:     make(map[string]*graph.Graph),
	}, nil
}

// Name returns the context's handle name.
func (c *ExecutionContext) Name() string {
	return c.name
}

// Device returns the bound device descriptor.
func (c *ExecutionContext) Device() tensor.Device {
	return c.device
}

// Precision returns the precision policy.
func (c *ExecutionContext) Precision() Precision {
	return c.precision
}

// DType returns the data type the precision policy maps to.
func (c *ExecutionContext) DType() tensor.DataType {
	return c.dtype
}

// Evaluator returns the context's evaluator for direct forward/backward
// control.
func (c *ExecutionContext) Evaluator() *eval.Evaluator {
	return c.evaluator
}

// Evaluate runs a forward pass for the given roots and, when gradient
// targets are supplied, a backward pass seeded with ones-buffers shaped
// like each forward output. Every gradient target must be an input key or a
// parameter; anything else fails with ErrDisjointKeys before any
// computation runs. Input bindings must carry the dtype the context's
// precision policy maps to.
func (c *ExecutionContext) Evaluate(
	roots []*graph.Variable,
	inputs map[*graph.Variable]*tensor.Buffer,
	wantGradients []*graph.Variable,
) (map[*graph.Variable]*tensor.Buffer, eval.GradientMap, error) {
	for _, v := range wantGradients {
		if _, bound := inputs[v]; !bound && v.Role() != graph.RoleParameter {
			return nil, nil, fmt.Errorf("%w: gradient target %s is not an input key", ErrDisjointKeys, v)
		}
	}
	for v, buf := range inputs {
		if buf.DType() != c.dtype {
			return nil, nil, fmt.Errorf("%w: %s bound with dtype %s, context precision %q computes in %s",
				eval.ErrShapeMismatch, v, buf.DType(), c.precision, c.dtype)
		}
	}

	g, err := c.graphFor(roots)
	if err != nil {
		return nil, nil, err
	}

	outputs, state, err := c.evaluator.Forward(g, roots, inputs)
	if err != nil {
		return nil, nil, err
	}
	if len(wantGradients) == 0 {
		return outputs, nil, nil
	}

	// Seed gradient convention: a ones-buffer per forward output.
	seeds := make(map[*graph.Variable]*tensor.Buffer, len(outputs))
	releaseSeeds := func() {
		for _, seed := range seeds {
			seed.Release()
		}
	}
	for v, out := range outputs {
		seed, err := tensor.Ones(out.Shape(), out.DType(), c.device)
		if err != nil {
			releaseSeeds()
			return nil, nil, fmt.Errorf("evaluate: seed gradient for %s: %w", v, err)
		}
		seeds[v] = seed
	}

	grads, err := c.evaluator.Backward(state, seeds, wantGradients)
	releaseSeeds()
	if err != nil {
		return nil, nil, err
	}
	return outputs, grads, nil
}

// graphFor builds or reuses the graph for a root set.
func (c *ExecutionContext) graphFor(roots []*graph.Variable) (*graph.Graph, error) {
	key := rootKey(roots)

	c.mu.Lock()
	defer c.mu.Unlock()
	if g, ok := c.cache[key]; ok {
		return g, nil
	}

	g, err := graph.Build(roots...)
	if err != nil {
		return nil, err
	}
	c.cache[key] = g
	return g, nil
}

// rootKey derives a cache key from root identity. Pointer identity is the
// identity of a variable; order does not matter.
func rootKey(roots []*graph.Variable) string {
	keys := make([]string, len(roots))
	for i, v := range roots {
		keys[i] = fmt.Sprintf("%p", v)
	}
	sort.Strings(keys)
	return strings.Join(keys, ",")
}
