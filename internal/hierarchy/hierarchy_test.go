package hierarchy

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	apierrors "github.com/yukikurage/workspace-task-api/internal/errors"
)

type fakeNode struct {
	id        uint64
	parent    *uint64
	workspace uint64
	category  uint64
	visible   bool
}

func (n *fakeNode) NodeID() uint64        { return n.id }
func (n *fakeNode) ParentNodeID() *uint64 { return n.parent }
func (n *fakeNode) WorkspaceRef() uint64  { return n.workspace }
func (n *fakeNode) CategoryRef() uint64   { return n.category }
func (n *fakeNode) Visibility() bool      { return n.visible }

// scopedNode only carries workspace scope, like a category.
type scopedNode struct {
	id        uint64
	parent    *uint64
	workspace uint64
}

func (n *scopedNode) NodeID() uint64        { return n.id }
func (n *scopedNode) ParentNodeID() *uint64 { return n.parent }
func (n *scopedNode) WorkspaceRef() uint64  { return n.workspace }

func ptr(v uint64) *uint64 { return &v }

type fakeStore map[uint64]*fakeNode

func (s fakeStore) parent(_ context.Context, id uint64) (*fakeNode, error) {
	n, ok := s[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return n, nil
}

func (s fakeStore) children(_ context.Context, id uint64) ([]*fakeNode, error) {
	var out []*fakeNode
	for i := uint64(1); i <= uint64(len(s))+10; i++ {
		n, ok := s[i]
		if ok && n.parent != nil && *n.parent == id {
			out = append(out, n)
		}
	}
	return out, nil
}

func requireMessage(t *testing.T, err error, msg string) {
	t.Helper()
	vErr, ok := apierrors.AsValidationError(err)
	require.True(t, ok, "expected validation error, got %v", err)
	require.Equal(t, []string{msg}, vErr.Messages)
}

func TestValidateParent_NilParentIsRoot(t *testing.T) {
	node := &fakeNode{id: 1, workspace: 1}
	require.NoError(t, ValidateParent(node, nil))
}

func TestValidateParent_Rules(t *testing.T) {
	base := func() *fakeNode { return &fakeNode{id: 2, workspace: 1, category: 1, visible: true} }

	tests := []struct {
		name   string
		node   *fakeNode
		parent *fakeNode
		want   string
	}{
		{"self", base(), base(), MsgSelfParent},
		{"workspace", base(), &fakeNode{id: 1, workspace: 9, category: 1, visible: true}, MsgWorkspaceMismatch},
		{"category", base(), &fakeNode{id: 1, workspace: 1, category: 9, visible: true}, MsgCategoryMismatch},
		{"visibility", base(), &fakeNode{id: 1, workspace: 1, category: 1, visible: false}, MsgVisibilityMismatch},
		// workspace wins over category and visibility
		{"first failure wins", base(), &fakeNode{id: 1, workspace: 9, category: 9, visible: false}, MsgWorkspaceMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			requireMessage(t, ValidateParent(tt.node, tt.parent), tt.want)
		})
	}

	require.NoError(t, ValidateParent(base(), &fakeNode{id: 1, workspace: 1, category: 1, visible: true}))
}

func TestValidateParent_UnsavedNodeSkipsSelfCheck(t *testing.T) {
	node := &fakeNode{workspace: 1}
	parent := &fakeNode{workspace: 1}
	require.NoError(t, ValidateParent(node, parent))
}

func TestValidateParent_WorkspaceOnlyCapability(t *testing.T) {
	node := &scopedNode{id: 3, workspace: 1}
	require.NoError(t, ValidateParent(node, &scopedNode{id: 1, workspace: 1}))
	requireMessage(t, ValidateParent(node, &scopedNode{id: 1, workspace: 2}), MsgWorkspaceMismatch)
	requireMessage(t, ValidateParent(node, node), MsgSelfParent)
}

func TestValidateScope(t *testing.T) {
	node := &fakeNode{id: 1, workspace: 1}

	require.NoError(t, ValidateScope(node, Scope{Category: ptr(1)}))
	require.NoError(t, ValidateScope(node, Scope{Category: ptr(1), Status: ptr(1), Priority: ptr(1)}))
	requireMessage(t, ValidateScope(node, Scope{Category: ptr(2)}), MsgScopeMismatch)
	requireMessage(t, ValidateScope(node, Scope{Category: ptr(1), Status: ptr(2)}), MsgScopeMismatch)
	requireMessage(t, ValidateScope(node, Scope{Category: ptr(1), Priority: ptr(2)}), MsgScopeMismatch)
}

func TestValidateTagScope(t *testing.T) {
	node := &fakeNode{id: 1, workspace: 1}
	require.NoError(t, ValidateTagScope(node, []uint64{1, 1}))
	requireMessage(t, ValidateTagScope(node, []uint64{1, 2}), MsgTagScopeMismatch)
}

// 1 -> 2 -> 3, 1 -> 4
func sampleStore() fakeStore {
	return fakeStore{
		1: {id: 1},
		2: {id: 2, parent: ptr(1)},
		3: {id: 3, parent: ptr(2)},
		4: {id: 4, parent: ptr(1)},
	}
}

func TestChildren_NestedOrder(t *testing.T) {
	store := sampleStore()

	tree, err := Children(context.Background(), store.children, store[1])
	require.NoError(t, err)
	require.Len(t, tree, 2)

	assert.Equal(t, uint64(2), tree[0].Node.id)
	require.Len(t, tree[0].Children, 1)
	assert.Equal(t, uint64(3), tree[0].Children[0].Node.id)
	assert.Empty(t, tree[0].Children[0].Children)
	assert.Equal(t, uint64(4), tree[1].Node.id)
	assert.Empty(t, tree[1].Children)

	ids := []uint64{}
	for _, n := range Flatten(tree) {
		ids = append(ids, n.id)
	}
	assert.Equal(t, []uint64{2, 3, 4}, ids)
}

func TestChildren_Cycle(t *testing.T) {
	store := fakeStore{
		1: {id: 1, parent: ptr(2)},
		2: {id: 2, parent: ptr(1)},
	}
	_, err := Children(context.Background(), store.children, store[1])
	require.ErrorIs(t, err, ErrCycle)
}

func TestRoot(t *testing.T) {
	store := sampleStore()

	root, err := Root(context.Background(), store.parent, store[3])
	require.NoError(t, err)
	assert.Equal(t, uint64(1), root.id)

	root, err = Root(context.Background(), store.parent, store[1])
	require.NoError(t, err)
	assert.Equal(t, uint64(1), root.id)
}

func TestRoot_Cycle(t *testing.T) {
	store := fakeStore{
		1: {id: 1, parent: ptr(3)},
		2: {id: 2, parent: ptr(1)},
		3: {id: 3, parent: ptr(2)},
	}
	_, err := Root(context.Background(), store.parent, store[1])
	require.ErrorIs(t, err, ErrCycle)
}

func TestValidateAncestry(t *testing.T) {
	store := sampleStore()
	ctx := context.Background()

	// moving 1 under its grandchild 3 would close a loop
	requireMessage(t, ValidateAncestry(ctx, store.parent, store[1], store[3]), MsgDescendantParent)
	require.NoError(t, ValidateAncestry(ctx, store.parent, store[4], store[3]))
	require.NoError(t, ValidateAncestry(ctx, store.parent, &fakeNode{}, store[3]))
}

func TestHierarchy(t *testing.T) {
	store := sampleStore()

	branch, err := Hierarchy(context.Background(), store.parent, store.children, store[3])
	require.NoError(t, err)
	assert.Equal(t, uint64(1), branch.Node.id)
	assert.Len(t, Flatten(branch.Children), 3)
}

func TestForest(t *testing.T) {
	store := sampleStore()
	nodes := []*fakeNode{store[3], store[2], store[4], {id: 7, parent: ptr(99)}}

	forest := Forest(nodes)
	require.Len(t, forest, 3)
	assert.Equal(t, uint64(2), forest[0].Node.id)
	require.Len(t, forest[0].Children, 1)
	assert.Equal(t, uint64(3), forest[0].Children[0].Node.id)
	assert.Equal(t, uint64(4), forest[1].Node.id)
	assert.Equal(t, uint64(7), forest[2].Node.id)
}
