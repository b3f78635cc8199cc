// Package eval orchestrates forward and backward passes over an immutable
// operator graph: dependency-ordered scheduling, liveness-based buffer
// release, and fan-in gradient accumulation.
package eval

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/ember-ml/ember/internal/graph"
	"github.com/ember-ml/ember/internal/graph/ops"
	"github.com/ember-ml/ember/internal/tensor"
)

// GradientMap maps variables to their accumulated gradient buffers. A
// variable feeding multiple downstream operators receives the elementwise
// sum of their contributions, in the originating dtype with no upcast.
type GradientMap map[*graph.Variable]*tensor.Buffer

// Evaluator executes forward and backward passes on a single device. The
// graph it reads is immutable, so any number of evaluators may share one;
// the states and gradient maps an evaluator produces are exclusively owned
// by the pass that created them.
type Evaluator struct {
	backend tensor.Backend
}

// New creates an evaluator dispatching kernels through the given backend.
func New(backend tensor.Backend) *Evaluator {
	return &Evaluator{backend: backend}
}

// Backend returns the kernel backend.
func (e *Evaluator) Backend() tensor.Backend {
	return e.backend
}

// Forward executes the sub-DAG needed to compute the targets, consuming the
// bound input buffers and producing one output buffer per target. Interior
// buffers are released as soon as their last consumer has run, except those
// in the retain set a later backward pass needs. A failed pass releases
// everything it allocated and returns no state.
func (e *Evaluator) Forward(
	g *graph.Graph,
	targets []*graph.Variable,
	bindings map[*graph.Variable]*tensor.Buffer,
) (map[*graph.Variable]*tensor.Buffer, *EvaluationState, error) {
	order, err := g.TopologicalOrder(targets...)
	if err != nil {
		return nil, nil, err
	}

	targetSet := make(map[*graph.Variable]bool, len(targets))
	for _, t := range targets {
		targetSet[t] = true
	}

	// Bind every external variable the sub-DAG consumes.
	values := make(map[*graph.Variable]*tensor.Buffer)
	inputShapes := make(map[*graph.Variable]tensor.Shape)
	bind := func(v *graph.Variable) error {
		if _, ok := values[v]; ok {
			return nil
		}
		switch v.Role() {
		case graph.RoleParameter:
			if v.Value() == nil {
				return fmt.Errorf("%w: parameter %s has no value", ErrMissingInput, v)
			}
			values[v] = v.Value()
			inputShapes[v] = v.Value().Shape()
		case graph.RoleInput:
			buf, ok := bindings[v]
			if !ok {
				return fmt.Errorf("%w: %s", ErrMissingInput, v)
			}
			if !buf.Shape().ConformsTo(v.Shape()) {
				return fmt.Errorf("%w: %s bound with shape %v", ErrShapeMismatch, v, buf.Shape())
			}
			values[v] = buf
			inputShapes[v] = buf.Shape()
		default:
			return fmt.Errorf("%w: %s", ErrMissingInput, v)
		}
		return nil
	}
	for _, op := range order {
		for _, in := range op.Inputs() {
			if in.Producer() == nil {
				if err := bind(in); err != nil {
					return nil, nil, err
				}
			}
		}
	}
	for _, t := range targets {
		if t.Producer() == nil {
			if err := bind(t); err != nil {
				return nil, nil, err
			}
		}
	}

	// Remaining-consumer counts drive the liveness-based release.
	remaining := make(map[*graph.Variable]int)
	for _, op := range order {
		for _, in := range op.Inputs() {
			remaining[in]++
		}
	}

	// owned tracks buffers this pass allocated; retained is the retain set
	// a later backward pass needs.
	owned := make(map[*tensor.Buffer]bool)
	retained := make(map[*tensor.Buffer]bool)
	saved := make(map[*graph.Operator]ops.Saved, len(order))

	fail := func(cause error) error {
		for buf := range owned {
			buf.Release()
		}
		return cause
	}

	for _, op := range order {
		inputs := make([]*tensor.Buffer, len(op.Inputs()))
		for i, in := range op.Inputs() {
			inputs[i] = values[in]
		}

		out, err := op.Op().Forward(inputs, e.backend)
		if err != nil {
			return nil, nil, fail(fmt.Errorf("forward %s: %w", op.Kind(), err))
		}
		values[op.Output()] = out
		owned[out] = true

		// Record the retain set per the operation's policy before any
		// release decision touches these buffers.
		var sv ops.Saved
		switch op.Op().Retain() {
		case ops.RetainInputs:
			sv.Inputs = inputs
			for _, buf := range inputs {
				retained[buf] = true
			}
		case ops.RetainOutput:
			sv.Output = out
			retained[out] = true
		}
		saved[op] = sv

		for _, in := range op.Inputs() {
			remaining[in]--
			buf := values[in]
			if remaining[in] == 0 && owned[buf] && !retained[buf] && !targetSet[in] {
				buf.Release()
				delete(owned, buf)
			}
		}
	}

	outputs := make(map[*graph.Variable]*tensor.Buffer, len(targets))
	targetShapes := make(map[*graph.Variable]tensor.Shape, len(targets))
	for _, t := range targets {
		buf, ok := values[t]
		if !ok {
			return nil, nil, fail(fmt.Errorf("forward: no value produced for target %s", t))
		}
		outputs[t] = buf
		targetShapes[t] = buf.Shape()
	}

	// Retained buffers the evaluator owns retire with the state; buffers
	// handed to the caller or bound by the caller do not.
	var retired []*tensor.Buffer
	for buf := range retained {
		if owned[buf] && !isOutput(buf, outputs) {
			retired = append(retired, buf)
		}
	}

	dtype := outputs[targets[0]].DType()
	state := &EvaluationState{
		id:          uuid.New(),
		graph:       g,
		order:       order,
		dtype:       dtype,
		targets:     targetShapes,
		saved:       saved,
		inputShapes: inputShapes,
		retired:     retired,
	}
	return outputs, state, nil
}

func isOutput(buf *tensor.Buffer, outputs map[*graph.Variable]*tensor.Buffer) bool {
	for _, out := range outputs {
		if out == buf {
			return true
		}
	}
	return false
}

// Backward traverses the forward order in reverse, accumulating gradient
// contributions at every variable, and returns the gradient map restricted
// to the requested variables. The state must be the exact object returned by
// the matching forward pass and is consumed; gradients of unreached
// requested variables are zero-filled. An error publishes nothing.
func (e *Evaluator) Backward(
	state *EvaluationState,
	seeds map[*graph.Variable]*tensor.Buffer,
	wrt []*graph.Variable,
) (GradientMap, error) {
	if state == nil {
		return nil, fmt.Errorf("%w: nil state", ErrStateMismatch)
	}
	if state.consumed {
		return nil, fmt.Errorf("%w: state already consumed by a backward pass", ErrStateMismatch)
	}
	if len(seeds) != len(state.targets) {
		return nil, fmt.Errorf("%w: %d seed gradients for %d pass targets",
			ErrStateMismatch, len(seeds), len(state.targets))
	}
	for v, seed := range seeds {
		shape, ok := state.targets[v]
		if !ok {
			return nil, fmt.Errorf("%w: %s was not a target of the forward pass", ErrStateMismatch, v)
		}
		if !seed.Shape().Equal(shape) {
			return nil, fmt.Errorf("%w: seed for %s has shape %v, forward output had %v",
				ErrShapeMismatch, v, seed.Shape(), shape)
		}
		if seed.DType() != state.dtype {
			return nil, fmt.Errorf("%w: seed for %s has dtype %s, pass dtype is %s",
				ErrShapeMismatch, v, seed.DType(), state.dtype)
		}
	}

	wrtSet := make(map[*graph.Variable]bool, len(wrt))
	for _, v := range wrt {
		wrtSet[v] = true
	}

	// Accumulators are owned by this pass; seeds are cloned so callers
	// keep their buffers untouched.
	grads := make(map[*graph.Variable]*tensor.Buffer, len(seeds))
	discard := func() {
		for _, buf := range grads {
			buf.Release()
		}
	}
	for v, seed := range seeds {
		grads[v] = seed.Clone()
	}

	for i := len(state.order) - 1; i >= 0; i-- {
		op := state.order[i]
		outGrad, ok := grads[op.Output()]
		if !ok {
			continue // no gradient flows through this operator
		}

		contributions, err := op.Op().Backward(outGrad, state.saved[op], e.backend)
		if err != nil {
			discard()
			return nil, fmt.Errorf("backward %s: %w", op.Kind(), err)
		}

		for j, in := range op.Inputs() {
			contribution := contributions[j]
			if contribution == nil {
				continue
			}
			if existing, ok := grads[in]; ok {
				// Fan-in accumulation: sum, never overwrite.
				e.backend.Accumulate(existing, contribution)
				contribution.Release()
			} else {
				grads[in] = contribution
			}
		}

		// The output gradient has served its single producer; interior
		// gradients are not surfaced.
		if !wrtSet[op.Output()] {
			outGrad.Release()
			delete(grads, op.Output())
		}
	}

	result := make(GradientMap, len(wrt))
	for _, v := range wrt {
		if buf, ok := grads[v]; ok {
			result[v] = buf
			continue
		}
		shape, ok := state.inputShapes[v]
		if !ok {
			discard()
			return nil, fmt.Errorf("backward: gradient target %s was not bound in the forward pass", v)
		}
		zeros, err := tensor.Zeros(shape, state.dtype, e.backend.Device())
		if err != nil {
			discard()
			return nil, fmt.Errorf("backward: zero gradient for %s: %w", v, err)
		}
		result[v] = zeros
	}

	// Release computed-but-unrequested gradients.
	for v, buf := range grads {
		if !wrtSet[v] {
			buf.Release()
		}
	}

	state.retire()
	return result, nil
}
