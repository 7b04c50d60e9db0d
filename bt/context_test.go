package bt_test

import (
	"testing"

	"github.com/aledsdavies/bttree/bt"
	"github.com/stretchr/testify/assert"
)

// portNode reads its "in" input port and writes double-ish to its "out"
// output port, to exercise Context's port-map resolution from inside a
// Node.
type portNode struct{ seen int }

func (n *portNode) Name() string              { return "PortNode" }
func (n *portNode) ProvidedPorts() []bt.PortSpec { return []bt.PortSpec{bt.NewInPort("in"), bt.NewOutPort("out")} }
func (n *portNode) NumChildren() bt.NumChildren  { return bt.Finite(0) }
func (n *portNode) Tick(ctx *bt.Context, cb bt.Callback) bt.Outcome {
	v, ok := bt.Get[int](ctx, bt.Intern("in"))
	if !ok {
		return bt.Failure
	}
	n.seen = v
	bt.Set(ctx, bt.Intern("out"), v*2)
	return bt.Success
}

func TestPortMapUnmappedKeyUsesLiteralBlackboardKey(t *testing.T) {
	bb := bt.NewBlackboard()
	bb.Insert(bt.Intern("in"), 5)
	ctx := bt.NewContext(bb)

	node := &portNode{}
	tree := bt.NewTree("PortNode", node, nil)

	assert.Equal(t, bt.Success, tree.Tick(noopCallback, ctx))
	assert.Equal(t, 5, node.seen)

	out, ok := bb.Get(bt.Intern("out"))
	assert.True(t, ok)
	assert.Equal(t, 10, out)
}

func TestPortMapRefRedirectsToMappedKey(t *testing.T) {
	bb := bt.NewBlackboard()
	bb.Insert(bt.Intern("source"), 7)
	ctx := bt.NewContext(bb)

	node := &portNode{}
	portMap := bt.NewPortMap().
		Ref("in", bt.Input, "source").
		Ref("out", bt.Output, "dest")
	tree := bt.NewTree("PortNode", node, portMap)

	assert.Equal(t, bt.Success, tree.Tick(noopCallback, ctx))

	dest, ok := bb.Get(bt.Intern("dest"))
	assert.True(t, ok)
	assert.Equal(t, 14, dest)

	_, hasIn := bb.Get(bt.Intern("in"))
	assert.False(t, hasIn, "the unmapped key must not have been touched")
}

func TestPortMapLiteralSuppliesReadOnlyValue(t *testing.T) {
	ctx := bt.NewContext(bt.NewBlackboard())

	node := &portNode{}
	portMap := bt.NewPortMap().Literal("in", "3")
	tree := bt.NewTree("PortNode", node, portMap)

	assert.Equal(t, bt.Failure, tree.Tick(noopCallback, ctx), "literal \"3\" is a string, Get[int] does not parse it")
}

func TestPortMapLiteralParsesThroughGetParse(t *testing.T) {
	ctx := bt.NewContext(bt.NewBlackboard())

	portMap := bt.NewPortMap().Literal("n", "3")
	tree := bt.NewTree("Repeat", bt.NewRepeat(), portMap)
	assert.NoError(t, tree.AddChild(bt.NewTree("Append", &appendNode{value: true}, nil)))

	cb, res := recorder()
	var result bt.Outcome
	for result = tree.Tick(cb, ctx); result == bt.Running; result = tree.Tick(cb, ctx) {
	}
	assert.Equal(t, []bool{true, true, true}, *res)
}

func TestStrictModePanicsOnDirectionViolation(t *testing.T) {
	bb := bt.NewBlackboard()
	ctx := bt.NewContext(bb)
	ctx.SetStrict(true)

	// "in" is an Input port on portNode; binding it Output is a
	// direction violation on read.
	portMap := bt.NewPortMap().Ref("in", bt.Output, "source")
	tree := bt.NewTree("PortNode", &portNode{}, portMap)

	assert.Panics(t, func() { tree.Tick(noopCallback, ctx) })
}

func TestPermissiveModeFailsSilentlyOnDirectionViolation(t *testing.T) {
	bb := bt.NewBlackboard()
	ctx := bt.NewContext(bb)
	ctx.SetStrict(false)

	portMap := bt.NewPortMap().Ref("in", bt.Output, "source")
	tree := bt.NewTree("PortNode", &portNode{}, portMap)

	assert.Equal(t, bt.Failure, tree.Tick(noopCallback, ctx))
}
