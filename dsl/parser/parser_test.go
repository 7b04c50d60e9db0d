package parser_test

import (
	"testing"

	"github.com/aledsdavies/bttree/bt"
	"github.com/aledsdavies/bttree/dsl/ast"
	"github.com/aledsdavies/bttree/dsl/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseOne(t *testing.T, src string) *ast.TreeDecl {
	t.Helper()
	file, errs := parser.Parse(src)
	require.Empty(t, errs)
	require.Len(t, file.Trees, 1)
	return file.Trees[0]
}

func TestParsesPlainNodeWithChildren(t *testing.T) {
	tree := parseOne(t, `tree main = Sequence { A  B }`)
	assert.Equal(t, "main", tree.Name)
	assert.Equal(t, "Sequence", tree.Root.Name)
	require.Len(t, tree.Root.Children, 2)
	assert.Equal(t, "A", tree.Root.Children[0].Name)
	assert.Equal(t, "B", tree.Root.Children[1].Name)
}

func TestParsesTreeParamsAndPortMapsAllDirections(t *testing.T) {
	tree := parseOne(t, `tree main(in x, out y: int) = Node(a <- b, c -> d, e <-> f)`)

	require.Len(t, tree.Params, 2)
	assert.Equal(t, bt.Input, tree.Params[0].Direction)
	assert.Equal(t, "x", tree.Params[0].Name)
	assert.Equal(t, bt.Output, tree.Params[1].Direction)
	assert.Equal(t, "y", tree.Params[1].Name)
	assert.Equal(t, "int", tree.Params[1].Type)

	require.Len(t, tree.Root.PortMaps, 3)
	assert.Equal(t, ast.PortMap{Port: "a", Direction: bt.Input, RefName: "b", Pos: tree.Root.PortMaps[0].Pos}, tree.Root.PortMaps[0])
	assert.Equal(t, ast.PortMap{Port: "c", Direction: bt.Output, RefName: "d", Pos: tree.Root.PortMaps[1].Pos}, tree.Root.PortMaps[1])
	assert.Equal(t, ast.PortMap{Port: "e", Direction: bt.InOut, RefName: "f", Pos: tree.Root.PortMaps[2].Pos}, tree.Root.PortMaps[2])
}

func TestParsesLiteralPortMap(t *testing.T) {
	tree := parseOne(t, `tree main = Node(value <- "hello\nworld")`)
	require.Len(t, tree.Root.PortMaps, 1)
	m := tree.Root.PortMaps[0]
	assert.True(t, m.IsLiteral)
	assert.Equal(t, "hello\nworld", m.Literal)
}

func TestLiteralTargetWithOutputArrowIsParseError(t *testing.T) {
	_, errs := parser.Parse(`tree main = Node(value -> "nope")`)
	require.NotEmpty(t, errs)
	assert.Contains(t, errs[0].Message, "cannot write to a string literal")
}

func TestAndOrNotDesugar(t *testing.T) {
	tree := parseOne(t, `tree main = Sequence { A && B || !C }`)
	require.Len(t, tree.Root.Children, 1)
	root := tree.Root.Children[0]

	require.Equal(t, "Fallback", root.Name)
	require.Len(t, root.Children, 2)

	seq := root.Children[0]
	assert.Equal(t, "Sequence", seq.Name)
	require.Len(t, seq.Children, 2)
	assert.Equal(t, "A", seq.Children[0].Name)
	assert.Equal(t, "B", seq.Children[1].Name)

	inv := root.Children[1]
	assert.Equal(t, "Inverter", inv.Name)
	require.Len(t, inv.Children, 1)
	assert.Equal(t, "C", inv.Children[0].Name)
}

func TestParenthesesOverrideAndOrPrecedence(t *testing.T) {
	tree := parseOne(t, `tree main = Sequence { A && (B || C) }`)
	require.Len(t, tree.Root.Children, 1)
	root := tree.Root.Children[0]
	assert.Equal(t, "Sequence", root.Name)
	require.Len(t, root.Children, 2)
	assert.Equal(t, "A", root.Children[0].Name)
	assert.Equal(t, "Fallback", root.Children[1].Name)
}

func TestVarDeclDesugarsToSetBool(t *testing.T) {
	tree := parseOne(t, `tree main = Sequence { var ready = true  IsTrue(input <- ready) }`)
	require.Len(t, tree.Root.Children, 2)

	decl := tree.Root.Children[0]
	assert.Equal(t, "SetBool", decl.Name)
	assert.Equal(t, "ready", decl.DeclaresVar)
	require.Len(t, decl.PortMaps, 2)
	assert.Equal(t, "value", decl.PortMaps[0].Port)
	assert.True(t, decl.PortMaps[0].IsLiteral)
	assert.Equal(t, "true", decl.PortMaps[0].Literal)
	assert.Equal(t, "output", decl.PortMaps[1].Port)
	assert.Equal(t, "ready", decl.PortMaps[1].RefName)
}

func TestVarDeclWithoutInitializerDeclaresNameOnly(t *testing.T) {
	tree := parseOne(t, `tree main = Sequence { var flag }`)
	require.Len(t, tree.Root.Children, 1)
	decl := tree.Root.Children[0]
	assert.Equal(t, "flag", decl.DeclaresVar)
	assert.Empty(t, decl.Name)
	assert.Empty(t, decl.PortMaps)
}

func TestIfElseDesugar(t *testing.T) {
	tree := parseOne(t, `tree main = Sequence { if (Cond) { Then } else { Else } }`)
	require.Len(t, tree.Root.Children, 1)

	n := tree.Root.Children[0]
	assert.Equal(t, "if", n.Name)
	require.Len(t, n.Children, 3)
	assert.Equal(t, "Cond", n.Children[0].Name)

	then := n.Children[1]
	assert.Equal(t, "Sequence", then.Name)
	require.Len(t, then.Children, 1)
	assert.Equal(t, "Then", then.Children[0].Name)

	els := n.Children[2]
	assert.Equal(t, "Sequence", els.Name)
	require.Len(t, els.Children, 1)
	assert.Equal(t, "Else", els.Children[0].Name)
}

func TestIfWithoutElseOmitsElseSequence(t *testing.T) {
	tree := parseOne(t, `tree main = Sequence { if (Cond) { Then } }`)
	require.Len(t, tree.Root.Children, 1)
	require.Len(t, tree.Root.Children[0].Children, 2)
}

func TestMultipleTreeDeclsAndNodeDecl(t *testing.T) {
	src := `
node External {
	in value : bool
	out result
}

tree sub(in x, out y) = Node(x <- x, y -> y)

tree main = Sequence { sub(x <- "1", y -> r) }
`
	file, errs := parser.Parse(src)
	require.Empty(t, errs)

	require.Len(t, file.NodeDecls, 1)
	assert.Equal(t, "External", file.NodeDecls[0].Name)
	require.Len(t, file.NodeDecls[0].Ports, 2)
	assert.Equal(t, bt.Input, file.NodeDecls[0].Ports[0].Direction)
	assert.Equal(t, "bool", file.NodeDecls[0].Ports[0].Type)

	require.Len(t, file.Trees, 2)
	assert.Equal(t, "sub", file.Trees[0].Name)
	assert.Equal(t, "main", file.Trees[1].Name)
}

func TestCommentsAreIgnoredBetweenDeclarations(t *testing.T) {
	tree := parseOne(t, "# a file comment\ntree main = A # trailing\n")
	assert.Equal(t, "A", tree.Root.Name)
}

func TestParseErrorsAccumulateAcrossMultipleDeclarations(t *testing.T) {
	_, errs := parser.Parse("tree = A\ntree = B\n")
	assert.Len(t, errs, 2)
}
