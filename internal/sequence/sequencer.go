// Package sequence computes one deterministic total order over the commit
// DAG, child before parent, keeping chains of directly linked commits
// adjacent wherever the graph allows it.
package sequence

import (
	"fmt"
	"sort"

	"github.com/masmgr/topoorder-go/internal/graph"
	"github.com/masmgr/topoorder-go/internal/object"
)

// Order returns the hashes of g exactly once each, such that every commit
// precedes all of its parents in the result.
//
// The algorithm is Kahn's with an outstanding-children counter per node: a
// node becomes ready once every commit listing it as a parent has been
// emitted. The ready set is a stack, so the node most recently made ready
// is selected next; emitting a commit immediately frees its parent in a
// linear chain, which keeps whole branch segments contiguous before the
// order switches to a sibling branch. Nodes that become ready together are
// pushed so that the one with the latest committer timestamp pops first,
// remaining ties broken by ascending hash. Selection is O(1) amortized,
// the whole pass O(V+E) plus the sorting of ready batches.
//
// The same input graph always yields the same order: no step depends on map
// iteration order, and the builder already rejected cyclic input. The cycle
// check here is a defensive invariant only.
func Order(g *graph.Graph) ([]object.Hash, error) {
	outstanding := make(map[object.Hash]int, len(g.Nodes))
	for h := range g.Nodes {
		outstanding[h] = len(g.Children[h])
	}

	var ready stack
	var batch []*graph.Node
	for h, n := range outstanding {
		if n == 0 {
			batch = append(batch, g.Nodes[h])
		}
	}
	ready.pushBatch(batch)

	out := make([]object.Hash, 0, len(g.Nodes))
	for ready.len() > 0 {
		node := ready.pop()
		out = append(out, node.Hash)

		batch = batch[:0]
		for _, parent := range node.Parents {
			outstanding[parent]--
			if outstanding[parent] == 0 {
				batch = append(batch, g.Nodes[parent])
			}
		}
		ready.pushBatch(batch)
	}

	if len(out) != len(g.Nodes) {
		return nil, fmt.Errorf("%w: %d of %d commits unreachable by child-first emission",
			graph.ErrCyclicHistory, len(g.Nodes)-len(out), len(g.Nodes))
	}
	return out, nil
}

// stack is the ready set with the last-made-ready-first discipline.
type stack struct {
	nodes []*graph.Node
}

func (s *stack) len() int { return len(s.nodes) }

func (s *stack) pop() *graph.Node {
	n := s.nodes[len(s.nodes)-1]
	s.nodes = s.nodes[:len(s.nodes)-1]
	return n
}

// pushBatch pushes nodes that became ready together so that the preferred
// one ends up on top: latest timestamp first, then ascending hash. The
// batch is sorted into reverse preference order before pushing.
func (s *stack) pushBatch(batch []*graph.Node) {
	sort.Slice(batch, func(i, j int) bool {
		if !batch[i].When.Equal(batch[j].When) {
			return batch[i].When.Before(batch[j].When)
		}
		return batch[i].Hash > batch[j].Hash
	})
	s.nodes = append(s.nodes, batch...)
}
