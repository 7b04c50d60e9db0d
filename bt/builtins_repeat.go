package bt

// Repeat ticks its single child every tick, counting consecutive
// successes. Once the count reaches the value of its "n" input port, it
// resets the count and returns Success. A child Failure resets the count
// and is propagated immediately. A child Running passes through
// unchanged, without touching the count - the child's own container
// latches whatever progress it has made.
type Repeat struct {
	count int
}

// NewRepeat returns a fresh Repeat.
func NewRepeat() *Repeat { return &Repeat{} }

func (n *Repeat) Name() string { return "Repeat" }

func (n *Repeat) ProvidedPorts() []PortSpec {
	return []PortSpec{NewInPort("n")}
}

func (n *Repeat) NumChildren() NumChildren { return Finite(1) }

func (n *Repeat) Tick(ctx *Context, cb Callback) Outcome {
	target, ok := GetParse[int](ctx, Intern("n"))
	if !ok {
		target = 1
	}

	switch ctx.TickChild(0, cb) {
	case Failure:
		n.count = 0
		return Failure
	case Running:
		return Running
	default:
		n.count++
		if n.count >= target {
			n.count = 0
			return Success
		}
		return Running
	}
}

// Retry ticks its single child every tick, counting consecutive
// failures. A child Success resets the count and is reported immediately.
// Once the count reaches the value of its "n" input port, it resets the
// count and returns Failure. A child Running passes through unchanged.
type Retry struct {
	count int
}

// NewRetry returns a fresh Retry.
func NewRetry() *Retry { return &Retry{} }

func (n *Retry) Name() string { return "Retry" }

func (n *Retry) ProvidedPorts() []PortSpec {
	return []PortSpec{NewInPort("n")}
}

func (n *Retry) NumChildren() NumChildren { return Finite(1) }

func (n *Retry) Tick(ctx *Context, cb Callback) Outcome {
	target, ok := GetParse[int](ctx, Intern("n"))
	if !ok {
		target = 1
	}

	switch ctx.TickChild(0, cb) {
	case Success:
		n.count = 0
		return Success
	case Running:
		return Running
	default:
		n.count++
		if n.count >= target {
			n.count = 0
			return Failure
		}
		return Running
	}
}
