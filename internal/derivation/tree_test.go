package derivation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTree_AddAndForwardAndBack(t *testing.T) {
	tree := New()
	root := tree.Root()

	v := tree.AddAndForward(VARIABLE, "digit")
	require.Same(t, v, tree.Current())
	assert.Same(t, root, v.Parent)

	leaf := tree.Add(VALUE, "1")
	assert.Same(t, v, leaf.Parent)
	assert.Equal(t, []*Node{leaf}, v.Children)

	tree.Back()
	assert.Same(t, root, tree.Current())

	tree.Back() // no-op at root
	assert.Same(t, root, tree.Current())
}

func TestTree_AddChildrenGraftsSubtree(t *testing.T) {
	tree := New()
	side := New()
	child := side.Add(VALUE, "x")

	tree.AddChildren(side.Root().Children[0])

	require.Len(t, tree.Root().Children, 1)
	assert.Same(t, tree.Root(), tree.Root().Children[0].Parent)
	assert.Same(t, child, tree.Root().Children[0])
}

func TestTree_Reset(t *testing.T) {
	tree := New()
	tree.AddAndForward(VARIABLE, "x")
	tree.Reset()

	assert.Empty(t, tree.Root().Children)
	assert.Same(t, tree.Root(), tree.Current())
}

func TestTree_SetCurrentRestoresCursor(t *testing.T) {
	tree := New()
	saved := tree.Current()
	tree.AddAndForward(VARIABLE, "a")
	tree.SetCurrent(saved)
	assert.Same(t, saved, tree.Current())
}
