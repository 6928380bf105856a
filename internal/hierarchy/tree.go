package hierarchy

import (
	"context"
	"errors"
)

// ErrCycle is returned when a walk revisits a node. The validators prevent
// cycles on write; this only fires on data that bypassed them.
var ErrCycle = errors.New("hierarchy: cycle detected")

// ChildLoader returns the direct children of the node with the given ID, in
// whatever order the store enumerates them.
type ChildLoader[T Node] func(ctx context.Context, parentID uint64) ([]T, error)

// ParentLoader returns the node with the given ID.
type ParentLoader[T Node] func(ctx context.Context, id uint64) (T, error)

// Branch is one node together with its subtree. Leaves have an empty Children.
type Branch[T Node] struct {
	Node     T
	Children Tree[T]
}

// Tree is an ordered list of sibling branches.
type Tree[T Node] []Branch[T]

// Children collects the full subtree below node.
func Children[T Node](ctx context.Context, load ChildLoader[T], node T) (Tree[T], error) {
	visited := map[uint64]struct{}{node.NodeID(): {}}
	return collect(ctx, load, node.NodeID(), visited)
}

func collect[T Node](ctx context.Context, load ChildLoader[T], id uint64, visited map[uint64]struct{}) (Tree[T], error) {
	kids, err := load(ctx, id)
	if err != nil {
		return nil, err
	}

	tree := make(Tree[T], 0, len(kids))
	for _, kid := range kids {
		if _, seen := visited[kid.NodeID()]; seen {
			return nil, ErrCycle
		}
		visited[kid.NodeID()] = struct{}{}

		sub, err := collect(ctx, load, kid.NodeID(), visited)
		if err != nil {
			return nil, err
		}
		tree = append(tree, Branch[T]{Node: kid, Children: sub})
	}
	return tree, nil
}

// Root follows parent links upward until it reaches a node without a parent.
func Root[T Node](ctx context.Context, loadParent ParentLoader[T], node T) (T, error) {
	visited := make(map[uint64]struct{})
	current := node
	for {
		parentID := current.ParentNodeID()
		if parentID == nil {
			return current, nil
		}
		if _, seen := visited[current.NodeID()]; seen {
			var zero T
			return zero, ErrCycle
		}
		visited[current.NodeID()] = struct{}{}

		parent, err := loadParent(ctx, *parentID)
		if err != nil {
			var zero T
			return zero, err
		}
		current = parent
	}
}

// IsAncestor reports whether the node with the given ID appears on the chain
// from start up to its root, start included.
func IsAncestor[T Node](ctx context.Context, loadParent ParentLoader[T], id uint64, start T) (bool, error) {
	visited := make(map[uint64]struct{})
	current := start
	for {
		if current.NodeID() == id {
			return true, nil
		}
		parentID := current.ParentNodeID()
		if parentID == nil {
			return false, nil
		}
		if _, seen := visited[current.NodeID()]; seen {
			return false, ErrCycle
		}
		visited[current.NodeID()] = struct{}{}

		parent, err := loadParent(ctx, *parentID)
		if err != nil {
			return false, err
		}
		current = parent
	}
}

// Hierarchy returns the whole tree node belongs to, starting at its root.
func Hierarchy[T Node](ctx context.Context, loadParent ParentLoader[T], loadChildren ChildLoader[T], node T) (Branch[T], error) {
	root, err := Root(ctx, loadParent, node)
	if err != nil {
		return Branch[T]{}, err
	}
	children, err := Children(ctx, loadChildren, root)
	if err != nil {
		return Branch[T]{}, err
	}
	return Branch[T]{Node: root, Children: children}, nil
}

// Forest arranges an in-memory set of nodes into trees. Nodes whose parent is
// not part of the set become roots. Input order is kept among siblings.
func Forest[T Node](nodes []T) Tree[T] {
	inSet := make(map[uint64]struct{}, len(nodes))
	for _, n := range nodes {
		inSet[n.NodeID()] = struct{}{}
	}

	byParent := make(map[uint64][]T)
	var roots []T
	for _, n := range nodes {
		pid := n.ParentNodeID()
		if pid != nil {
			if _, ok := inSet[*pid]; ok {
				byParent[*pid] = append(byParent[*pid], n)
				continue
			}
		}
		roots = append(roots, n)
	}

	visited := make(map[uint64]struct{}, len(nodes))
	var build func(level []T) Tree[T]
	build = func(level []T) Tree[T] {
		tree := make(Tree[T], 0, len(level))
		for _, n := range level {
			if _, seen := visited[n.NodeID()]; seen {
				continue
			}
			visited[n.NodeID()] = struct{}{}
			tree = append(tree, Branch[T]{Node: n, Children: build(byParent[n.NodeID()])})
		}
		return tree
	}
	return build(roots)
}

// Flatten lists every node of the tree, parents before their children.
func Flatten[T Node](tree Tree[T]) []T {
	var out []T
	for _, b := range tree {
		out = append(out, b.Node)
		out = append(out, Flatten(b.Children)...)
	}
	return out
}
