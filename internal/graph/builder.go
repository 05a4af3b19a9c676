package graph

import (
	"errors"
	"fmt"

	"github.com/masmgr/topoorder-go/internal/object"
)

// Build traverses the commit DAG from the given roots, decoding every
// reachable commit exactly once, and returns the closed graph.
//
// The seen set guarantees each object is fetched and decoded at most once
// even when diamond-shaped histories reach a shared ancestor via multiple
// paths. A parent that cannot be read surfaces as ErrIncompleteHistory; a
// deliberately shallow clone and a damaged store are indistinguishable here
// and both abort the run.
func Build(src object.Source, roots []object.Hash) (*Graph, error) {
	nodes := make(map[object.Hash]*Node)
	frontier := make([]object.Hash, len(roots))
	copy(frontier, roots)

	for len(frontier) > 0 {
		h := frontier[len(frontier)-1]
		frontier = frontier[:len(frontier)-1]
		if _, ok := nodes[h]; ok {
			continue
		}

		kind, payload, err := src.Read(h)
		if err != nil {
			if errors.Is(err, object.ErrObjectNotFound) {
				return nil, fmt.Errorf("%w: %v", ErrIncompleteHistory, err)
			}
			return nil, err
		}
		commit, err := object.DecodeCommit(h, kind, payload)
		if err != nil {
			return nil, err
		}

		nodes[h] = &Node{Hash: h, Parents: commit.Parents, When: commit.When}
		for _, parent := range commit.Parents {
			if _, ok := nodes[parent]; !ok {
				frontier = append(frontier, parent)
			}
		}
	}

	return FromNodes(nodes, roots)
}
