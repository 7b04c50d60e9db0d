package bt

import "github.com/aledsdavies/bttree/invariant"

// Tree is the runtime container around one Node: its port map (the
// bindings supplied at the call site that created it) and its children,
// themselves Trees. Tree is the unit the loader builds and the unit a
// host holds onto across repeated ticks - Running state lives in the
// Node values reachable from it.
//
// A Tree's port map and child list are only visible to its own Node
// while that Node is being ticked: Tick swaps them into the shared
// Context for the duration of the call and restores whatever was there
// before, on every exit path including a panic, mirroring the container
// swap in the reference implementation this runtime was ported from.
type Tree struct {
	name       string
	node       Node
	portMap    PortMap
	children   []*Tree
	lastResult *Outcome
	isSubtree  bool
}

// NewTree wraps node as a Tree with the given name and port map. name is
// typically the node's registry name or a subtree's name; it is used only
// for diagnostics.
func NewTree(name string, node Node, portMap PortMap) *Tree {
	if portMap == nil {
		portMap = NewPortMap()
	}
	return &Tree{name: name, node: node, portMap: portMap}
}

// NewSubtreeTree is NewTree for a Tree built from a tree declaration
// rather than a registered node; IsSubtree reports true on the result,
// which diag uses to mark the boundary in a tree dump.
func NewSubtreeTree(name string, node Node, portMap PortMap) *Tree {
	t := NewTree(name, node, portMap)
	t.isSubtree = true
	return t
}

// Name returns the name this Tree was constructed with.
func (t *Tree) Name() string { return t.name }

// Node returns the Node this Tree wraps.
func (t *Tree) Node() Node { return t.node }

// PortMap returns the port bindings supplied at this Tree's call site, for
// diagnostic inspection without re-deriving them from source.
func (t *Tree) PortMap() PortMap { return t.portMap }

// IsSubtree reports whether this Tree was built from a tree declaration
// (a subtree reference) rather than a node registered directly with a
// Registry.
func (t *Tree) IsSubtree() bool { return t.isSubtree }

// Children returns this Tree's children, in order.
func (t *Tree) Children() []*Tree { return t.children }

// LastResult returns the outcome of the most recent Tick, or nil if this
// Tree has never been ticked.
func (t *Tree) LastResult() *Outcome { return t.lastResult }

// AddChild appends child to this Tree's child list, refusing it with
// TooManyChildren once the wrapped Node's NumChildren bound is reached.
func (t *Tree) AddChild(child *Tree) error {
	if !t.node.NumChildren().Allows(len(t.children)) {
		return &AddChildError{Kind: TooManyChildren, Parent: t.name}
	}
	t.children = append(t.children, child)
	invariant.Postcondition(t.node.NumChildren().Allows(len(t.children)-1),
		"%s gained a child past its NumChildren bound", t.name)
	return nil
}

// Tick ticks the wrapped Node. It swaps this Tree's port map and children
// into ctx for the duration of the call, so that Context.TickChild and
// the port-resolution methods see this node's own bindings rather than
// whatever was active before, and restores the previous values before
// returning - including when node.Tick panics.
func (t *Tree) Tick(cb Callback, ctx *Context) Outcome {
	savedPortMap, savedChildren := ctx.portMap, ctx.children
	ctx.portMap, ctx.children = t.portMap, t.children
	defer func() {
		ctx.portMap, ctx.children = savedPortMap, savedChildren
	}()

	result := t.node.Tick(ctx, cb)
	t.lastResult = &result
	return result
}
