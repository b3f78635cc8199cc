package eval

import (
	"github.com/google/uuid"

	"github.com/ember-ml/ember/internal/graph"
	"github.com/ember-ml/ember/internal/graph/ops"
	"github.com/ember-ml/ember/internal/tensor"
)

// EvaluationState is the ephemeral link between a forward pass and its
// matching backward pass. It records the topological order the forward pass
// used, the retained buffers backward computation needs, and a unique pass
// identity. A state is consumed by at most one backward pass; reuse fails
// with ErrStateMismatch.
type EvaluationState struct {
	id    uuid.UUID
	graph *graph.Graph
	order []*graph.Operator
	dtype tensor.DataType

	// targets maps each pass target to the concrete shape its output had,
	// for seed validation.
	targets map[*graph.Variable]tensor.Shape

	// saved holds the retain set per operator, as declared by its retain
	// policy. Nothing else survives the forward pass.
	saved map[*graph.Operator]ops.Saved

	// inputShapes records the concrete shapes of bound inputs and
	// parameters, so gradients of unreached targets can be zero-filled.
	inputShapes map[*graph.Variable]tensor.Shape

	// retired tracks evaluator-owned retained buffers to release when the
	// state itself retires. Buffers handed to the caller are excluded.
	retired []*tensor.Buffer

	consumed bool
}

// ID returns the unique identity of the pass that produced this state.
func (s *EvaluationState) ID() uuid.UUID {
	return s.id
}

// Targets returns the variables the forward pass computed.
func (s *EvaluationState) Targets() []*graph.Variable {
	targets := make([]*graph.Variable, 0, len(s.targets))
	for t := range s.targets {
		targets = append(targets, t)
	}
	return targets
}

// Consumed reports whether a backward pass has already used this state.
func (s *EvaluationState) Consumed() bool {
	return s.consumed
}

// retire releases the retained buffers the evaluator still owns.
func (s *EvaluationState) retire() {
	s.consumed = true
	for _, buf := range s.retired {
		buf.Release()
	}
	s.retired = nil
	s.saved = nil
}
