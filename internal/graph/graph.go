// Package graph orders collections by their declared dependencies.
package graph

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

var (
	ErrCycle             = errors.New("dependency cycle")
	ErrOutOfOrder        = errors.New("dependency declared after dependent")
	ErrUnknownDependency = errors.New("unknown dependency")
	ErrDuplicateNode     = errors.New("duplicate collection")
)

// Graph is a directed graph over collection names. An edge runs from a
// dependency to each collection that depends on it.
type Graph struct {
	index map[string]int
	nodes []string
	deps  [][]string
}

func New() *Graph {
	return &Graph{index: map[string]int{}}
}

// Add declares a collection and the collections it depends on. Declaration
// order is remembered and used to break ties in TopoSort.
func (g *Graph) Add(name string, deps ...string) error {
	if _, ok := g.index[name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateNode, name)
	}
	g.index[name] = len(g.nodes)
	g.nodes = append(g.nodes, name)
	g.deps = append(g.deps, slices.Clone(deps))
	return nil
}

func (g *Graph) Len() int {
	return len(g.nodes)
}

// Dependencies returns the declared dependencies of name.
func (g *Graph) Dependencies(name string) []string {
	i, ok := g.index[name]
	if !ok {
		return nil
	}
	return slices.Clone(g.deps[i])
}

func (g *Graph) checkKnown() error {
	for i, deps := range g.deps {
		for _, d := range deps {
			if _, ok := g.index[d]; !ok {
				return fmt.Errorf("%w: %s depends on %s", ErrUnknownDependency, g.nodes[i], d)
			}
		}
	}
	return nil
}

// TopoSort returns the collections so that every dependency precedes its
// dependents. Among collections that are ready at the same time the one
// declared first wins, so an already valid declaration order is returned
// unchanged.
func (g *Graph) TopoSort() ([]string, error) {
	if err := g.checkKnown(); err != nil {
		return nil, err
	}

	indegree := make([]int, len(g.nodes))
	dependents := make([][]int, len(g.nodes))
	for i, deps := range g.deps {
		for _, d := range slices.Compact(slices.Sorted(slices.Values(deps))) {
			j := g.index[d]
			indegree[i]++
			dependents[j] = append(dependents[j], i)
		}
	}

	var ready []int
	for i, n := range indegree {
		if n == 0 {
			ready = append(ready, i)
		}
	}

	order := make([]string, 0, len(g.nodes))
	for len(ready) > 0 {
		slices.Sort(ready)
		i := ready[0]
		ready = ready[1:]
		order = append(order, g.nodes[i])
		for _, j := range dependents[i] {
			indegree[j]--
			if indegree[j] == 0 {
				ready = append(ready, j)
			}
		}
	}

	if len(order) != len(g.nodes) {
		var stuck []string
		for i, n := range indegree {
			if n > 0 {
				stuck = append(stuck, g.nodes[i])
			}
		}
		return nil, fmt.Errorf("%w among %s", ErrCycle, strings.Join(stuck, ", "))
	}
	return order, nil
}

// Validate checks that the graph is acyclic, that every dependency is a
// declared collection and that each collection was declared after all of
// its dependencies.
func (g *Graph) Validate() error {
	if _, err := g.TopoSort(); err != nil {
		return err
	}
	for i, deps := range g.deps {
		for _, d := range deps {
			if g.index[d] > i {
				return fmt.Errorf("%w: %s is declared before its dependency %s", ErrOutOfOrder, g.nodes[i], d)
			}
		}
	}
	return nil
}
