package bt_test

import (
	"testing"

	"github.com/aledsdavies/bttree/bt"
	"github.com/stretchr/testify/assert"
)

func TestNewTreeIsNotASubtreeByDefault(t *testing.T) {
	tree := bt.NewTree("IsTrue", bt.NewIsTrue(), nil)
	assert.False(t, tree.IsSubtree())
}

func TestNewSubtreeTreeReportsIsSubtree(t *testing.T) {
	tree := bt.NewSubtreeTree("Sub", bt.NewSubtree("Sub", nil), nil)
	assert.True(t, tree.IsSubtree())
}

func TestTreePortMapReturnsConstructorBindings(t *testing.T) {
	portMap := bt.NewPortMap().Ref("input", bt.Input, "parent_value").Literal("n", "3")
	tree := bt.NewTree("X", bt.NewIsTrue(), portMap)

	got := tree.PortMap()
	assert.Len(t, got, 2)

	binding, ok := got[bt.Intern("input")]
	assert.True(t, ok)
	assert.Equal(t, bt.BindRef, binding.Kind)
	assert.Equal(t, bt.Intern("parent_value"), binding.Target)

	literal, ok := got[bt.Intern("n")]
	assert.True(t, ok)
	assert.Equal(t, bt.BindLiteral, literal.Kind)
	assert.Equal(t, "3", literal.Literal)
}
