package bt

// IsTrue is a leaf condition node: it reads its "input" input port as a
// bool (a string such as "true" is parsed) and reports Success when it is
// true, Failure otherwise (including when the port is unset or holds
// neither a bool nor a string that parses as one). It is the node bare-identifier
// conditions in the tree DSL desugar to, e.g. a lone "ready" inside an
// if-condition becomes `IsTrue(input <- ready)`.
type IsTrue struct{}

// NewIsTrue returns an IsTrue leaf.
func NewIsTrue() *IsTrue { return &IsTrue{} }

func (n *IsTrue) Name() string { return "IsTrue" }

func (n *IsTrue) ProvidedPorts() []PortSpec {
	return []PortSpec{NewInPort("input")}
}

func (n *IsTrue) NumChildren() NumChildren { return Finite(0) }

func (n *IsTrue) Tick(ctx *Context, cb Callback) Outcome {
	v, ok := GetParse[bool](ctx, Intern("input"))
	if ok && v {
		return Success
	}
	return Failure
}

// SetBool is a leaf node used to seed or mutate blackboard state from a
// tree source, most often in tests: it reads its "value" input port and
// writes it unchanged to its "output" output port, always succeeding.
type SetBool struct{}

// NewSetBool returns a SetBool leaf.
func NewSetBool() *SetBool { return &SetBool{} }

func (n *SetBool) Name() string { return "SetBool" }

func (n *SetBool) ProvidedPorts() []PortSpec {
	return []PortSpec{NewInPort("value"), NewOutPort("output")}
}

func (n *SetBool) NumChildren() NumChildren { return Finite(0) }

func (n *SetBool) Tick(ctx *Context, cb Callback) Outcome {
	v, _ := GetParse[bool](ctx, Intern("value"))
	Set(ctx, Intern("output"), v)
	return Success
}
