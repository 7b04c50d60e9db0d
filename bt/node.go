package bt

// Node is the behavior implemented by one tree node: a name (used in
// diagnostics and the registry), the ports it declares, how many children
// it accepts, and the tick itself. A Node instance is owned by exactly
// one Tree and may hold whatever latched state its semantics require
// (a current-child index, a retry counter) as ordinary struct fields -
// the runtime never ticks the same Node instance through two Trees.
type Node interface {
	// Name identifies the node type, e.g. "Sequence" or a subtree's name.
	Name() string

	// ProvidedPorts lists the ports this node type declares, for the
	// loader's static port-direction checking. A node with no ports
	// returns nil.
	ProvidedPorts() []PortSpec

	// NumChildren bounds how many children this node accepts.
	NumChildren() NumChildren

	// Tick advances the node by one step. ctx exposes this node's own
	// port map and children for the duration of the call; cb is the
	// host callback threaded through unchanged.
	Tick(ctx *Context, cb Callback) Outcome
}
