// Package graph assembles the in-memory commit DAG from which the
// topological order is computed.
package graph

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/masmgr/topoorder-go/internal/object"
)

var (
	// ErrIncompleteHistory reports a parent hash that could not be resolved
	// to an existing object during closure.
	ErrIncompleteHistory = errors.New("incomplete history")

	// ErrCyclicHistory reports a hash reachable from itself via parent
	// edges. The input is supposed to be a DAG; a cycle is a fatal store
	// inconsistency, not something to repair.
	ErrCyclicHistory = errors.New("cyclic history")
)

// Node is one commit in the DAG: its hash, its parent links in commit
// order, and the committer timestamp used as a tie-break key.
type Node struct {
	Hash    object.Hash
	Parents []object.Hash
	When    time.Time
}

// Graph is the closed commit DAG. Nodes maps every reachable hash to its
// node; Children is the reverse index (parent hash to sorted child hashes);
// Roots are the branch tips the traversal started from.
type Graph struct {
	Nodes    map[object.Hash]*Node
	Children map[object.Hash][]object.Hash
	Roots    []object.Hash
}

// Len returns the number of commits in the graph.
func (g *Graph) Len() int {
	return len(g.Nodes)
}

// Edges returns the number of parent edges in the graph.
func (g *Graph) Edges() int {
	n := 0
	for _, node := range g.Nodes {
		n += len(node.Parents)
	}
	return n
}

// FromNodes validates a node table and assembles the graph: every parent
// referenced by a node must itself be a node (closure completeness), and no
// hash may be reachable from itself. The children index is built sorted so
// downstream output never depends on map iteration order.
func FromNodes(nodes map[object.Hash]*Node, roots []object.Hash) (*Graph, error) {
	children := make(map[object.Hash][]object.Hash, len(nodes))
	for _, node := range nodes {
		for _, parent := range node.Parents {
			if _, ok := nodes[parent]; !ok {
				return nil, fmt.Errorf("%w: commit %s references missing parent %s",
					ErrIncompleteHistory, node.Hash, parent)
			}
			children[parent] = append(children[parent], node.Hash)
		}
	}
	for _, c := range children {
		sort.Slice(c, func(i, j int) bool { return c[i] < c[j] })
	}

	g := &Graph{Nodes: nodes, Children: children, Roots: roots}
	if cyclic, err := g.findCycle(); err != nil {
		return nil, err
	} else if cyclic != "" {
		return nil, fmt.Errorf("%w: commit %s is its own ancestor", ErrCyclicHistory, cyclic)
	}
	return g, nil
}

// findCycle runs an iterative three-color depth-first search over parent
// edges and returns a hash on a cycle, or "" when the graph is acyclic.
func (g *Graph) findCycle() (object.Hash, error) {
	const (
		white = 0 // unvisited
		gray  = 1 // on the current DFS path
		black = 2 // fully explored
	)
	state := make(map[object.Hash]int, len(g.Nodes))

	// Deterministic start order is not required for correctness, but keeps
	// the reported hash stable across runs.
	starts := make([]object.Hash, 0, len(g.Nodes))
	for h := range g.Nodes {
		starts = append(starts, h)
	}
	sort.Slice(starts, func(i, j int) bool { return starts[i] < starts[j] })

	type frame struct {
		hash object.Hash
		next int
	}
	for _, start := range starts {
		if state[start] != white {
			continue
		}
		stack := []frame{{hash: start}}
		state[start] = gray
		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			parents := g.Nodes[top.hash].Parents
			if top.next >= len(parents) {
				state[top.hash] = black
				stack = stack[:len(stack)-1]
				continue
			}
			parent := parents[top.next]
			top.next++
			switch state[parent] {
			case white:
				state[parent] = gray
				stack = append(stack, frame{hash: parent})
			case gray:
				return parent, nil
			}
		}
	}
	return "", nil
}
