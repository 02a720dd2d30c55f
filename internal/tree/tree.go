package tree

import (
	"github.com/teemow/tasknotes/internal/tasks"
)

// Node wraps one task and its ordered children. Children are exactly the
// tasks whose parent field names this node's task and that exist in the
// same fetched batch.
type Node struct {
	Task     tasks.Task
	Children []*Node
}

// Build converts a flat task collection into a forest. A task whose
// parent is not present in the batch (filtered out upstream, or stale)
// is rooted rather than dropped. Input order is preserved for roots and
// for each node's children; the remote position field is not consulted.
func Build(items []tasks.Task) []*Node {
	index := make(map[string]*Node, len(items))
	nodes := make([]*Node, 0, len(items))
	for _, t := range items {
		n := &Node{Task: t}
		nodes = append(nodes, n)
		if t.ID != "" {
			index[t.ID] = n
		}
	}

	var roots []*Node
	for _, n := range nodes {
		if parent, ok := index[n.Task.Parent]; ok && n.Task.Parent != "" && parent != n {
			parent.Children = append(parent.Children, n)
			continue
		}
		roots = append(roots, n)
	}
	return roots
}

// Count returns the number of nodes in the forest.
func Count(forest []*Node) int {
	total := 0
	for _, n := range forest {
		total += 1 + Count(n.Children)
	}
	return total
}

// Walk calls fn for every node in the forest in depth-first order,
// passing the node's depth (roots are depth 0).
func Walk(forest []*Node, fn func(n *Node, depth int)) {
	walk(forest, 0, fn)
}

func walk(forest []*Node, depth int, fn func(n *Node, depth int)) {
	for _, n := range forest {
		fn(n, depth)
		walk(n.Children, depth+1, fn)
	}
}
