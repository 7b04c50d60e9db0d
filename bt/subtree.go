package bt

// Subtree wraps one expanded tree body as a single child, giving that
// body its own private blackboard rather than sharing the caller's. Its
// own ports (as declared by the `tree Name(in port, ...)` header the
// loader built it from) are copied in from the caller's scope before the
// body ticks and copied back out after, in the direction each port
// allows - Input and InOut ports flow in, Output and InOut ports flow
// out. The private blackboard persists across ticks, so any value a port
// didn't overwrite survives between calls; Running state inside the body
// lives in the body's own Node values, as it does anywhere else.
type Subtree struct {
	treeName   string
	ports      []PortSpec
	blackboard *Blackboard
}

// NewSubtree returns a Subtree for the tree named treeName, declaring
// the given ports.
func NewSubtree(treeName string, ports []PortSpec) *Subtree {
	return &Subtree{treeName: treeName, ports: ports}
}

func (s *Subtree) Name() string             { return s.treeName }
func (s *Subtree) ProvidedPorts() []PortSpec { return s.ports }
func (s *Subtree) NumChildren() NumChildren  { return Finite(1) }

func (s *Subtree) Tick(ctx *Context, cb Callback) Outcome {
	if s.blackboard == nil {
		s.blackboard = NewBlackboard()
	}

	for _, port := range s.ports {
		if !port.Direction.CanRead() {
			continue
		}
		if v, ok := ctx.GetAny(port.Key); ok {
			s.blackboard.Insert(port.Key, v)
		}
	}

	parent := ctx.SwapBlackboard(s.blackboard)
	result := ctx.TickChild(0, cb)
	ctx.SwapBlackboard(parent)

	for _, port := range s.ports {
		if !port.Direction.CanWrite() {
			continue
		}
		if v, ok := s.blackboard.Get(port.Key); ok {
			ctx.SetAny(port.Key, v)
		}
	}

	return result
}
