package bt_test

import (
	"testing"

	"github.com/aledsdavies/bttree/bt"
	"github.com/stretchr/testify/assert"
)

func TestIsTrueSucceedsWhenInputIsTrue(t *testing.T) {
	bb := bt.NewBlackboard()
	bb.Insert(bt.Intern("input"), true)
	tree := bt.NewTree("IsTrue", bt.NewIsTrue(), nil)

	assert.Equal(t, bt.Success, tree.Tick(noopCallback, bt.NewContext(bb)))
}

func TestIsTrueFailsWhenInputIsFalseOrUnset(t *testing.T) {
	bb := bt.NewBlackboard()
	bb.Insert(bt.Intern("input"), false)
	tree := bt.NewTree("IsTrue", bt.NewIsTrue(), nil)
	assert.Equal(t, bt.Failure, tree.Tick(noopCallback, bt.NewContext(bb)))

	unset := bt.NewTree("IsTrue", bt.NewIsTrue(), nil)
	assert.Equal(t, bt.Failure, unset.Tick(noopCallback, bt.NewContext(bt.NewBlackboard())))
}

func TestIsTrueReadsInputThroughAnExplicitPortMap(t *testing.T) {
	bb := bt.NewBlackboard()
	bb.Insert(bt.Intern("ready"), true)
	portMap := bt.NewPortMap().Ref("input", bt.Input, "ready")
	tree := bt.NewTree("IsTrue", bt.NewIsTrue(), portMap)

	assert.Equal(t, bt.Success, tree.Tick(noopCallback, bt.NewContext(bb)))
}

func TestSetBoolCopiesValueToOutput(t *testing.T) {
	bb := bt.NewBlackboard()
	bb.Insert(bt.Intern("value"), true)
	tree := bt.NewTree("SetBool", bt.NewSetBool(), nil)

	assert.Equal(t, bt.Success, tree.Tick(noopCallback, bt.NewContext(bb)))

	out, ok := bb.Get(bt.Intern("output"))
	assert.True(t, ok)
	assert.Equal(t, true, out)
}
