package blobtree

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAddLeafTracksPrimitiveIndex(t *testing.T) {
	tree := New()
	l0 := tree.AddLeaf(2)
	require.Equal(t, int32(2), tree.Nodes[l0].Primitive)
	require.Equal(t, l0, tree.LeafIndexOfPrimitive(2))
	require.Equal(t, None, tree.LeafIndexOfPrimitive(5))
}

func TestAddOpFixesUpParent(t *testing.T) {
	tree := New()
	a := tree.AddLeaf(0)
	b := tree.AddLeaf(1)
	op := tree.AddOp(Union, a, b)
	require.Equal(t, op, tree.Nodes[a].Parent)
	require.Equal(t, op, tree.Nodes[b].Parent)
	require.False(t, tree.Nodes[op].Leaf)
	require.Equal(t, Union, tree.Nodes[op].Op)
}

func TestValidRequiresReachableRoot(t *testing.T) {
	tree := New()
	require.False(t, tree.Valid())
	leaf := tree.AddLeaf(0)
	tree.Root = leaf
	require.True(t, tree.Valid())
}

func TestOperatorString(t *testing.T) {
	require.Equal(t, "union", Union.String())
	require.Equal(t, "intersection", Intersection.String())
	require.Equal(t, "difference", Difference.String())
}
