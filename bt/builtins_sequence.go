package bt

// Sequence ticks its children in order, one per tick once any child
// returns Running: the index of a Running child is latched, and the next
// tick resumes there directly rather than re-ticking earlier children.
// Success runs every child to completion in a single tick and resets the
// latch; Failure short-circuits and resets the latch.
type Sequence struct {
	current int
}

// NewSequence returns a fresh, unlatched Sequence.
func NewSequence() *Sequence { return &Sequence{} }

func (s *Sequence) Name() string             { return "Sequence" }
func (s *Sequence) ProvidedPorts() []PortSpec { return nil }
func (s *Sequence) NumChildren() NumChildren  { return UnboundedChildren }

func (s *Sequence) Tick(ctx *Context, cb Callback) Outcome {
	for i := s.current; i < ctx.NumChildren(); i++ {
		switch ctx.TickChild(i, cb) {
		case Failure:
			s.current = 0
			return Failure
		case Running:
			s.current = i
			return Running
		}
	}
	s.current = 0
	return Success
}

// ReactiveSequence behaves like Sequence but never latches: every tick
// restarts at the first child, so a Running result re-observes every
// earlier child on the next tick.
type ReactiveSequence struct{}

// NewReactiveSequence returns a ReactiveSequence.
func NewReactiveSequence() *ReactiveSequence { return &ReactiveSequence{} }

func (s *ReactiveSequence) Name() string             { return "ReactiveSequence" }
func (s *ReactiveSequence) ProvidedPorts() []PortSpec { return nil }
func (s *ReactiveSequence) NumChildren() NumChildren  { return UnboundedChildren }

func (s *ReactiveSequence) Tick(ctx *Context, cb Callback) Outcome {
	for i := 0; i < ctx.NumChildren(); i++ {
		switch ctx.TickChild(i, cb) {
		case Failure:
			return Failure
		case Running:
			return Running
		}
	}
	return Success
}
