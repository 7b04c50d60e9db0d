// Package testing is the in-module test harness: small Node
// implementations for exercising the engine and the loader without a
// host, plus a TreeBuilder for assembling fixtures without going through
// the DSL. Grounded on the reference implementation's own test helpers
// (Append/AppendAndFail/Suspend/AlwaysRunning/AlwaysSucceed/AlwaysFail in
// nodes/test.rs) and, for the fluent construction style, the teacher's
// TestBuilder in this same directory before it was replaced.
package testing

import "github.com/aledsdavies/bttree/bt"

// RecordingNode is a leaf that calls back with a fixed value (if any) and
// returns outcomes from a fixed sequence, repeating the last entry once
// the sequence is exhausted - enough to express "succeeds", "fails",
// "runs twice then succeeds", and similar fixtures in one type.
type RecordingNode struct {
	name      string
	value     any
	hasValue  bool
	outcomes  []bt.Outcome
	ports     []bt.PortSpec
	children  bt.NumChildren
	tickCount int
}

// NewRecordingNode returns a leaf named name that ticks through outcomes
// in order, repeating the last once exhausted. Panics if outcomes is
// empty - a RecordingNode with nothing to return is a fixture bug.
func NewRecordingNode(name string, outcomes ...bt.Outcome) *RecordingNode {
	if len(outcomes) == 0 {
		panic("testing: NewRecordingNode requires at least one outcome")
	}
	return &RecordingNode{name: name, outcomes: outcomes, children: bt.Finite(0)}
}

// WithValue makes the node invoke the tick callback with value on every
// tick, before returning its outcome.
func (n *RecordingNode) WithValue(value any) *RecordingNode {
	n.value, n.hasValue = value, true
	return n
}

// WithPorts sets the ports this node reports via ProvidedPorts, for
// exercising the loader's static port checking against a fixture node.
func (n *RecordingNode) WithPorts(ports ...bt.PortSpec) *RecordingNode {
	n.ports = ports
	return n
}

// WithNumChildren overrides the default of accepting no children, for
// fixtures that need a pass-through control node.
func (n *RecordingNode) WithNumChildren(nc bt.NumChildren) *RecordingNode {
	n.children = nc
	return n
}

func (n *RecordingNode) Name() string               { return n.name }
func (n *RecordingNode) ProvidedPorts() []bt.PortSpec { return n.ports }
func (n *RecordingNode) NumChildren() bt.NumChildren { return n.children }

func (n *RecordingNode) Tick(ctx *bt.Context, cb bt.Callback) bt.Outcome {
	if n.hasValue {
		cb(n.value)
	}
	idx := n.tickCount
	if idx >= len(n.outcomes) {
		idx = len(n.outcomes) - 1
	}
	n.tickCount++
	return n.outcomes[idx]
}

// Append returns a leaf that calls back with value and always succeeds -
// the Go equivalent of the reference suite's Append<V>.
func Append(value any) *RecordingNode {
	return NewRecordingNode("Append", bt.Success).WithValue(value)
}

// AppendAndFail is Append, but always fails.
func AppendAndFail(value any) *RecordingNode {
	return NewRecordingNode("AppendAndFail", bt.Failure).WithValue(value)
}

// AlwaysRunning never completes - the reference suite's Suspend/
// AlwaysRunning.
func AlwaysRunning() *RecordingNode {
	return NewRecordingNode("AlwaysRunning", bt.Running)
}

// AlwaysSucceed always succeeds without calling back.
func AlwaysSucceed() *RecordingNode {
	return NewRecordingNode("AlwaysSucceed", bt.Success)
}

// AlwaysFail always fails without calling back.
func AlwaysFail() *RecordingNode {
	return NewRecordingNode("AlwaysFail", bt.Failure)
}

// RunningThen returns Running for the first count ticks, then settles on
// final - the reference suite's Countdown, generalized to any terminal
// outcome.
func RunningThen(count int, final bt.Outcome) *RecordingNode {
	outcomes := make([]bt.Outcome, count+1)
	for i := 0; i < count; i++ {
		outcomes[i] = bt.Running
	}
	outcomes[count] = final
	return NewRecordingNode("RunningThen", outcomes...)
}
