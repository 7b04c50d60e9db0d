package bt

// PortDirection describes whether a port is read, written, or both.
type PortDirection int

const (
	Input PortDirection = iota
	Output
	InOut
)

// String renders the direction the way the DSL spells it (in/out/inout).
func (d PortDirection) String() string {
	switch d {
	case Input:
		return "in"
	case Output:
		return "out"
	case InOut:
		return "inout"
	default:
		return "unknown"
	}
}

// CanRead reports whether a port of this direction may be read.
func (d PortDirection) CanRead() bool { return d == Input || d == InOut }

// CanWrite reports whether a port of this direction may be written.
func (d PortDirection) CanWrite() bool { return d == Output || d == InOut }

// PortSpec is a declaration attached to a node type: a named port and its
// direction. Purely descriptive - used by the loader for static port
// validation and by Subtree for parameter marshalling.
type PortSpec struct {
	Key       Symbol
	Direction PortDirection
}

// NewInPort, NewOutPort and NewInOutPort build PortSpec values for use in
// a Node's ProvidedPorts().
func NewInPort(key string) PortSpec    { return PortSpec{Key: Intern(key), Direction: Input} }
func NewOutPort(key string) PortSpec   { return PortSpec{Key: Intern(key), Direction: Output} }
func NewInOutPort(key string) PortSpec { return PortSpec{Key: Intern(key), Direction: InOut} }

// BindingKind distinguishes a port map entry that references another
// blackboard key from one that supplies an inline literal.
type BindingKind int

const (
	BindRef BindingKind = iota
	BindLiteral
)

// Binding is a per-child-invocation entry in a PortMap: a node-local port
// name bound to either a blackboard key (Ref) or an inline string
// (Literal), carrying the direction written at the call site (the DSL's
// "<-"/"->"/"<->" arrow). A literal target is only legal with Input -
// enforced by the parser, which makes it a parse error rather than a
// runtime one. When the loader runs with port checking enabled, this
// direction is additionally cross-checked against the node's own declared
// PortSpec for the same key.
type Binding struct {
	Kind      BindingKind
	Target    Symbol // valid when Kind == BindRef
	Literal   string // valid when Kind == BindLiteral
	Direction PortDirection
}

// RefBinding builds a Binding that forwards reads/writes to target.
func RefBinding(target Symbol, dir PortDirection) Binding {
	return Binding{Kind: BindRef, Target: target, Direction: dir}
}

// LiteralBinding builds an Input Binding that supplies a fixed literal
// value.
func LiteralBinding(value string) Binding {
	return Binding{Kind: BindLiteral, Literal: value, Direction: Input}
}

// PortMap is the set of per-child bindings attached to one Tree
// invocation, keyed by the node-local port name.
type PortMap map[Symbol]Binding

// NewPortMap is a small builder for assembling PortMaps in code, the
// library's convenience literal-mapping constructor named in spec.md §6.
//
// Example:
//
//	bt.NewPortMap().Ref("input", Input, "parent_value").Literal("n", "3")
func NewPortMap() PortMap {
	return make(PortMap)
}

// Ref binds localPort to the blackboard key target with the given
// direction.
func (m PortMap) Ref(localPort string, dir PortDirection, target string) PortMap {
	m[Intern(localPort)] = RefBinding(Intern(target), dir)
	return m
}

// Literal binds localPort to an inline literal string value (Input only).
func (m PortMap) Literal(localPort, value string) PortMap {
	m[Intern(localPort)] = LiteralBinding(value)
	return m
}
