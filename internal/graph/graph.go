package graph

import (
	"fmt"
	"sort"
)

// Graph is an immutable DAG of operators connected by data-dependency
// edges. Exactly one operator produces each non-input variable; the graph
// is safely readable by any number of concurrent evaluators.
type Graph struct {
	operators []*Operator // creation order
	variables []*Variable
	roots     []*Variable
	varSet    map[*Variable]struct{}
}

// visit states for the cycle-detecting producer walk.
const (
	unvisited = iota
	onStack
	done
)

// Build walks backward from the roots via producer edges, collecting all
// reachable operators and variables. It fails with ErrCycleDetected when a
// variable is revisited on the current walk stack, and with
// ErrUnresolvedInput when a reachable operator consumes a variable that has
// no producer and cannot be bound from outside.
func Build(roots ...*Variable) (*Graph, error) {
	if len(roots) == 0 {
		return nil, fmt.Errorf("build: no root variables")
	}

	state := make(map[*Variable]int)
	var operators []*Operator
	var variables []*Variable

	var walk func(v *Variable) error
	walk = func(v *Variable) error {
		switch state[v] {
		case done:
			return nil
		case onStack:
			return fmt.Errorf("%w: at variable %s", ErrCycleDetected, v)
		}
		state[v] = onStack

		if op := v.producer; op != nil {
			for _, in := range op.inputs {
				if err := walk(in); err != nil {
					return err
				}
			}
			operators = append(operators, op)
		} else if v.role == RoleOutput || v.role == RoleGradPlaceholder {
			return fmt.Errorf("%w: %s", ErrUnresolvedInput, v)
		}

		state[v] = done
		variables = append(variables, v)
		return nil
	}

	for _, root := range roots {
		if root == nil {
			return nil, fmt.Errorf("build: nil root variable")
		}
		if err := walk(root); err != nil {
			return nil, err
		}
	}

	sort.Slice(operators, func(i, j int) bool { return operators[i].id < operators[j].id })

	varSet := make(map[*Variable]struct{}, len(variables))
	for _, v := range variables {
		varSet[v] = struct{}{}
	}

	return &Graph{
		operators: operators,
		variables: variables,
		roots:     append([]*Variable(nil), roots...),
		varSet:    varSet,
	}, nil
}

// Operators returns all operators in creation order.
func (g *Graph) Operators() []*Operator {
	return g.operators
}

// Variables returns all reachable variables.
func (g *Graph) Variables() []*Variable {
	return g.variables
}

// Roots returns the root variables the graph was built from.
func (g *Graph) Roots() []*Variable {
	return g.roots
}

// Contains reports whether the variable belongs to this graph.
func (g *Graph) Contains(v *Variable) bool {
	_, ok := g.varSet[v]
	return ok
}

// TopologicalOrder returns a Kahn-style ordering of the operators needed to
// compute the targets, restricted to that sub-DAG. Ties are broken by
// operator creation order so repeated evaluations schedule identically.
func (g *Graph) TopologicalOrder(targets ...*Variable) ([]*Operator, error) {
	if len(targets) == 0 {
		return nil, fmt.Errorf("topological order: no target variables")
	}

	// Restrict to operators reachable backward from the targets.
	needed := make(map[*Operator]bool)
	var collect func(v *Variable) error
	collect = func(v *Variable) error {
		if !g.Contains(v) {
			return fmt.Errorf("%w: %s", ErrNotInGraph, v)
		}
		op := v.producer
		if op == nil || needed[op] {
			return nil
		}
		needed[op] = true
		for _, in := range op.inputs {
			if err := collect(in); err != nil {
				return err
			}
		}
		return nil
	}
	for _, t := range targets {
		if t == nil {
			return nil, fmt.Errorf("topological order: nil target variable")
		}
		if err := collect(t); err != nil {
			return nil, err
		}
	}

	// Dependency edges within the restricted sub-DAG.
	indegree := make(map[*Operator]int, len(needed))
	consumers := make(map[*Operator][]*Operator, len(needed))
	for op := range needed {
		for _, in := range op.inputs {
			if dep := in.producer; dep != nil && needed[dep] {
				indegree[op]++
				consumers[dep] = append(consumers[dep], op)
			}
		}
	}

	var ready []*Operator
	for op := range needed {
		if indegree[op] == 0 {
			ready = append(ready, op)
		}
	}

	order := make([]*Operator, 0, len(needed))
	for len(ready) > 0 {
		// Deterministic tie-break: lowest creation id first.
		minIdx := 0
		for i, op := range ready {
			if op.id < ready[minIdx].id {
				minIdx = i
			}
		}
		op := ready[minIdx]
		ready = append(ready[:minIdx], ready[minIdx+1:]...)
		order = append(order, op)

		for _, c := range consumers[op] {
			indegree[c]--
			if indegree[c] == 0 {
				ready = append(ready, c)
			}
		}
	}

	if len(order) != len(needed) {
		return nil, ErrCycleDetected
	}
	return order, nil
}
