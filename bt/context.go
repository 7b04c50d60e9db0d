package bt

import (
	"fmt"
	"strconv"

	"github.com/aledsdavies/bttree/invariant"
)

// Callback is the host-supplied side channel threaded through one
// top-level tick. It exists because the blackboard cannot carry
// references with non-static lifetimes, while the callback - scoped to
// one Tick call - can. Nodes may invoke it zero or more times.
type Callback func(value any) any

// Context is the tick-time view threaded through a Tree: the active
// blackboard, the port map currently swapped in for the node being
// ticked, a strict flag controlling port-direction-violation behavior,
// and (transiently, while a control node is executing) the child list it
// is driving.
type Context struct {
	blackboard *Blackboard
	portMap    PortMap
	strict     bool
	children   []*Tree
}

// NewContext returns a Context over blackboard with strict mode enabled
// (the default - see spec.md §5 "Strict mode").
func NewContext(blackboard *Blackboard) *Context {
	return &Context{blackboard: blackboard, strict: true}
}

// SetStrict toggles strict mode: when true, a port-direction violation
// panics; when false, it resolves to a silent miss (Get returns false,
// Set is a no-op).
func (c *Context) SetStrict(strict bool) { c.strict = strict }

// Strict reports the current strict-mode setting.
func (c *Context) Strict() bool { return c.strict }

// Blackboard returns the blackboard currently active in this Context.
func (c *Context) Blackboard() *Blackboard { return c.blackboard }

// SwapBlackboard installs bb as the active blackboard and returns the one
// it replaced. Used by Subtree to switch into its private blackboard
// around its single child's tick and switch back afterward.
func (c *Context) SwapBlackboard(bb *Blackboard) *Blackboard {
	old := c.blackboard
	c.blackboard = bb
	return old
}

// NumChildren returns the number of children available to the node
// currently executing.
func (c *Context) NumChildren() int { return len(c.children) }

// TickChild ticks the child at index, swapping its own port map (and, by
// way of Tree.Tick, its own child list) into this Context around the
// call, exactly as the top-level Tree.Tick does for the root.
func (c *Context) TickChild(index int, cb Callback) Outcome {
	invariant.Precondition(index >= 0 && index < len(c.children),
		"child index %d out of range [0, %d)", index, len(c.children))
	return c.children[index].Tick(cb, c)
}

// resolveForRead applies the port-map resolution rule of spec.md §4.3 for
// a read: if key has no entry, the key itself is the blackboard key; a
// Ref entry substitutes its target when its direction permits reading; a
// Literal entry supplies its string directly. ok is false when resolution
// fails under permissive mode (non-strict); under strict mode a direction
// violation panics instead of returning.
func (c *Context) resolveForRead(key Symbol) (target Symbol, literal string, isLiteral bool, ok bool) {
	binding, has := c.portMap[key]
	if !has {
		return key, "", false, true
	}
	if !binding.Direction.CanRead() {
		if c.strict {
			panic(fmt.Sprintf("strict mode: port %q is bound %s, cannot be read", key, binding.Direction))
		}
		return Symbol{}, "", false, false
	}
	if binding.Kind == BindLiteral {
		return Symbol{}, binding.Literal, true, true
	}
	return binding.Target, "", false, true
}

// resolveForWrite applies the port-map resolution rule for a write. A
// literal target on a write is a parse-time error (spec.md §4.7), so
// reaching one here is a programming-error invariant violation, not a
// user-facing failure.
func (c *Context) resolveForWrite(key Symbol) (target Symbol, ok bool) {
	binding, has := c.portMap[key]
	if !has {
		return key, true
	}
	invariant.Invariant(binding.Kind != BindLiteral, "port %q bound to a literal cannot be written", key)
	if !binding.Direction.CanWrite() {
		if c.strict {
			panic(fmt.Sprintf("strict mode: port %q is bound %s, cannot be written", key, binding.Direction))
		}
		return Symbol{}, false
	}
	return binding.Target, true
}

// Get returns the value stored at key, resolved through the active port
// map and downcast to T. It returns false when the key is unresolved, the
// stored value is not a T, or (in permissive mode) a direction violation
// occurred.
func Get[T any](ctx *Context, key Symbol) (T, bool) {
	var zero T
	target, literal, isLiteral, ok := ctx.resolveForRead(key)
	if !ok {
		return zero, false
	}
	if isLiteral {
		v, ok := any(literal).(T)
		return v, ok
	}
	raw, has := ctx.blackboard.Get(target)
	if !has {
		return zero, false
	}
	v, ok := raw.(T)
	return v, ok
}

// GetAny returns the raw resolved value, bypassing downcast.
func (c *Context) GetAny(key Symbol) (any, bool) {
	target, literal, isLiteral, ok := c.resolveForRead(key)
	if !ok {
		return nil, false
	}
	if isLiteral {
		return literal, true
	}
	return c.blackboard.Get(target)
}

// GetParse behaves like Get, but if the resolved value is a string (most
// commonly a port-map literal), it attempts to parse that string into T.
// This lets literal port values feed numeric or boolean ports.
func GetParse[T any](ctx *Context, key Symbol) (T, bool) {
	if v, ok := Get[T](ctx, key); ok {
		return v, true
	}

	var zero T
	target, literal, isLiteral, ok := ctx.resolveForRead(key)
	if !ok {
		return zero, false
	}

	var s string
	if isLiteral {
		s = literal
	} else {
		raw, has := ctx.blackboard.Get(target)
		if !has {
			return zero, false
		}
		str, isStr := raw.(string)
		if !isStr {
			return zero, false
		}
		s = str
	}
	return parseAs[T](s)
}

func parseAs[T any](s string) (T, bool) {
	var zero T
	switch any(zero).(type) {
	case bool:
		b, err := strconv.ParseBool(s)
		if err != nil {
			return zero, false
		}
		return any(b).(T), true
	case int:
		n, err := strconv.Atoi(s)
		if err != nil {
			return zero, false
		}
		return any(n).(T), true
	case int64:
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return zero, false
		}
		return any(n).(T), true
	case float64:
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return zero, false
		}
		return any(f).(T), true
	case string:
		return any(s).(T), true
	default:
		return zero, false
	}
}

// Set writes value at key, resolved through the active port map. A write
// through an Input-only port is a no-op under permissive mode, or a panic
// under strict mode; a write through a literal binding panics in either
// mode.
func Set[T any](ctx *Context, key Symbol, value T) {
	target, ok := ctx.resolveForWrite(key)
	if !ok {
		return
	}
	ctx.blackboard.Insert(target, value)
}

// SetAny writes a raw, already-type-erased value at key.
func (c *Context) SetAny(key Symbol, value any) {
	target, ok := c.resolveForWrite(key)
	if !ok {
		return
	}
	c.blackboard.Insert(target, value)
}
