package testing

import (
	"github.com/aledsdavies/bttree/bt"
	"github.com/aledsdavies/bttree/invariant"
)

// TreeBuilder assembles a *bt.Tree fixture with a fluent interface,
// standing in for DSL source in tests that want to build a tree shape
// directly - the same role the teacher's TestBuilder played for
// decorator fixtures, adapted to this package's Tree/PortMap/Node types.
type TreeBuilder struct {
	name     string
	node     bt.Node
	portMap  bt.PortMap
	children []*TreeBuilder
}

// NewTreeBuilder starts a builder for a Tree named name wrapping node.
func NewTreeBuilder(name string, node bt.Node) *TreeBuilder {
	return &TreeBuilder{name: name, node: node, portMap: bt.NewPortMap()}
}

// Ref binds localPort to the blackboard key target with direction dir.
func (b *TreeBuilder) Ref(localPort string, dir bt.PortDirection, target string) *TreeBuilder {
	b.portMap = b.portMap.Ref(localPort, dir, target)
	return b
}

// Literal binds localPort to an inline literal value.
func (b *TreeBuilder) Literal(localPort, value string) *TreeBuilder {
	b.portMap = b.portMap.Literal(localPort, value)
	return b
}

// Child appends a child builder, built and attached when Build runs.
func (b *TreeBuilder) Child(child *TreeBuilder) *TreeBuilder {
	b.children = append(b.children, child)
	return b
}

// Build constructs the Tree, recursively building and attaching every
// child in the order they were added. A child rejected by the wrapped
// Node's NumChildren bound is a fixture-construction bug, not a
// condition callers need to handle, so Build panics via
// invariant.ExpectNoError rather than returning an error.
func (b *TreeBuilder) Build() *bt.Tree {
	tree := bt.NewTree(b.name, b.node, b.portMap)
	for _, child := range b.children {
		invariant.ExpectNoError(tree.AddChild(child.Build()), "TreeBuilder fixture child add")
	}
	return tree
}
