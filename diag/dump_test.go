package diag_test

import (
	"strings"
	"testing"

	"github.com/aledsdavies/bttree/bt"
	"github.com/aledsdavies/bttree/diag"
	bttest "github.com/aledsdavies/bttree/testing"
	"github.com/stretchr/testify/assert"
)

func TestDumpRendersNestedChildrenWithBoxDrawing(t *testing.T) {
	tree := bttest.NewTreeBuilder("Sequence", bt.NewSequence()).
		Child(bttest.NewTreeBuilder("Append", bttest.Append(true))).
		Child(bttest.NewTreeBuilder("Inverter", bt.NewInverter()).
			Child(bttest.NewTreeBuilder("AlwaysFail", bttest.AlwaysFail()))).
		Build()

	var out strings.Builder
	diag.Dump(&out, tree, diag.Options{})

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	assert.Equal(t, "Sequence", lines[0])
	assert.Equal(t, "├─ Append", lines[1])
	assert.Equal(t, "└─ Inverter", lines[2])
	assert.Equal(t, "   └─ AlwaysFail", lines[3])
}

func TestDumpMarksSubtreeBoundary(t *testing.T) {
	inner := bttest.NewTreeBuilder("Leaf", bttest.AlwaysSucceed()).Build()
	sub := bt.NewSubtreeTree("Sub", bt.NewSubtree("Sub", nil), nil)
	assert.NoError(t, sub.AddChild(inner))

	var out strings.Builder
	diag.Dump(&out, sub, diag.Options{})

	assert.Contains(t, out.String(), "Sub (subtree)")
}

func TestDumpRendersPortBindings(t *testing.T) {
	tree := bttest.NewTreeBuilder("IsTrue", bt.NewIsTrue()).
		Ref("input", bt.Input, "ready").
		Build()

	var out strings.Builder
	diag.Dump(&out, tree, diag.Options{})

	assert.Contains(t, out.String(), `input <- ready`)
}

func TestDumpRendersLiteralBindingsQuoted(t *testing.T) {
	tree := bttest.NewTreeBuilder("Repeat", bt.NewRepeat()).
		Literal("n", "3").
		Build()

	var out strings.Builder
	diag.Dump(&out, tree, diag.Options{})

	assert.Contains(t, out.String(), `n <- "3"`)
}
