// Package printer renders a dsl/ast.File back into tree source text, the
// inverse of dsl/parser - used to reformat a loaded file and to exercise the
// round-trip property a grammar like this should hold: parsing printed
// output must yield a structurally equivalent tree to the one that was
// printed (spec.md §8).
//
// The parser desugars `&&`, `||`, `!`, `if`/`else` and `var x = ...` into
// plain NodeExpr shapes before the printer ever sees them (dsl/ast package
// doc), so printing is itself a small resugaring pass: a NodeExpr flagged
// Synthetic is rendered back in its operator form instead of as a call to
// "Sequence"/"Fallback"/"Inverter". The printer favors a guaranteed-correct
// parenthesization over a minimal one - an extra pair of parens around an
// operand still reparses to the same tree, whereas a missing pair would not.
package printer

import (
	"strconv"
	"strings"

	"github.com/aledsdavies/bttree/bt"
	"github.com/aledsdavies/bttree/dsl/ast"
)

// Print renders file as tree source text.
func Print(file *ast.File) string {
	p := &printer{}
	p.printFile(file)
	return p.buf.String()
}

type printer struct {
	buf    strings.Builder
	indent int
}

func (p *printer) writeIndent() { p.buf.WriteString(strings.Repeat("  ", p.indent)) }

func (p *printer) printFile(file *ast.File) {
	for i, decl := range file.NodeDecls {
		if i > 0 {
			p.buf.WriteString("\n")
		}
		p.printNodeDecl(decl)
	}
	if len(file.NodeDecls) > 0 && len(file.Trees) > 0 {
		p.buf.WriteString("\n")
	}
	for i, decl := range file.Trees {
		if i > 0 {
			p.buf.WriteString("\n")
		}
		p.printTreeDecl(decl)
	}
}

func (p *printer) printNodeDecl(decl *ast.NodeDecl) {
	p.buf.WriteString("node " + decl.Name + " {\n")
	p.indent++
	for _, port := range decl.Ports {
		p.writeIndent()
		p.buf.WriteString(printPortParam(port))
		p.buf.WriteString("\n")
	}
	p.indent--
	p.buf.WriteString("}\n")
}

func (p *printer) printTreeDecl(decl *ast.TreeDecl) {
	p.buf.WriteString("tree " + decl.Name + printParamList(decl.Params) + " = ")
	p.printExpr(decl.Root)
	p.buf.WriteString("\n")
}

func printParamList(params []ast.PortParam) string {
	if len(params) == 0 {
		return ""
	}
	parts := make([]string, len(params))
	for i, pp := range params {
		parts[i] = printPortParam(pp)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func printPortParam(pp ast.PortParam) string {
	s := directionKeyword(pp.Direction) + " " + pp.Name
	if pp.Type != "" {
		s += ": " + pp.Type
	}
	return s
}

func directionKeyword(d bt.PortDirection) string {
	switch d {
	case bt.Output:
		return "out"
	case bt.InOut:
		return "inout"
	default:
		return "in"
	}
}

// printBody prints each of children as its own indented line, resugaring
// var declarations and if/else statements on the way.
func (p *printer) printBody(children []*ast.NodeExpr) {
	for _, child := range children {
		p.writeIndent()
		p.printBodyChild(child)
		p.buf.WriteString("\n")
	}
}

func (p *printer) printBodyChild(e *ast.NodeExpr) {
	switch {
	case e.DeclaresVar != "" && e.Name == "":
		p.buf.WriteString("var " + e.DeclaresVar)
	case e.DeclaresVar != "" && e.Name == "SetBool":
		p.buf.WriteString("var " + e.DeclaresVar + " = " + literalFor(e.PortMaps, "value"))
	case e.Name == "if":
		p.printIf(e)
	default:
		p.printExpr(e)
	}
}

func literalFor(maps []ast.PortMap, port string) string {
	for _, m := range maps {
		if m.Port == port && m.IsLiteral {
			return m.Literal
		}
	}
	return ""
}

// printIf resugars the parser's `if` node - children [cond, thenSeq,
// elseSeq?] - back into `if (cond) { ... } else { ... }`.
func (p *printer) printIf(e *ast.NodeExpr) {
	cond, thenSeq := e.Children[0], e.Children[1]

	p.buf.WriteString("if (")
	p.printExpr(cond)
	p.buf.WriteString(") {\n")
	p.indent++
	p.printBody(thenSeq.Children)
	p.indent--
	p.writeIndent()
	p.buf.WriteString("}")

	if len(e.Children) > 2 {
		p.buf.WriteString(" else {\n")
		p.indent++
		p.printBody(e.Children[2].Children)
		p.indent--
		p.writeIndent()
		p.buf.WriteString("}")
	}
}

// printExpr prints e as a cond_expr: resugaring a Synthetic Sequence,
// Fallback or Inverter back into &&/||/!, or falling through to a plain
// node call.
func (p *printer) printExpr(e *ast.NodeExpr) {
	switch {
	case e.Synthetic && e.Name == "Inverter" && len(e.Children) == 1:
		p.buf.WriteString("!")
		p.printOperand(e.Children[0], needsParensForNot)
	case e.Synthetic && e.Name == "Sequence":
		for i, c := range e.Children {
			if i > 0 {
				p.buf.WriteString(" && ")
			}
			p.printOperand(c, needsParensForAnd)
		}
	case e.Synthetic && e.Name == "Fallback":
		for i, c := range e.Children {
			if i > 0 {
				p.buf.WriteString(" || ")
			}
			p.printOperand(c, needsParensForOr)
		}
	default:
		p.printCall(e)
	}
}

func (p *printer) printOperand(e *ast.NodeExpr, needsParens func(*ast.NodeExpr) bool) {
	if needsParens(e) {
		p.buf.WriteString("(")
		p.printExpr(e)
		p.buf.WriteString(")")
		return
	}
	p.printExpr(e)
}

// A factor (&&'s and !'s operand) cannot itself be a bare or_expr, so a
// Fallback operand there needs parens; an and_expr (||'s operand) can
// directly be a Sequence with no parens.
func needsParensForAnd(e *ast.NodeExpr) bool { return e.Synthetic && e.Name == "Fallback" }
func needsParensForOr(*ast.NodeExpr) bool    { return false }
func needsParensForNot(e *ast.NodeExpr) bool {
	return e.Synthetic && (e.Name == "Sequence" || e.Name == "Fallback")
}

func (p *printer) printCall(e *ast.NodeExpr) {
	p.buf.WriteString(e.Name)

	if len(e.PortMaps) > 0 {
		parts := make([]string, len(e.PortMaps))
		for i, m := range e.PortMaps {
			parts[i] = printPortMap(m)
		}
		p.buf.WriteString("(" + strings.Join(parts, ", ") + ")")
	}

	if len(e.Children) > 0 {
		p.buf.WriteString(" {\n")
		p.indent++
		p.printBody(e.Children)
		p.indent--
		p.writeIndent()
		p.buf.WriteString("}")
	}
}

func printPortMap(m ast.PortMap) string {
	arrow := arrowFor(m.Direction)
	if m.IsLiteral {
		return m.Port + " " + arrow + " " + strconv.Quote(m.Literal)
	}
	return m.Port + " " + arrow + " " + m.RefName
}

func arrowFor(d bt.PortDirection) string {
	switch d {
	case bt.Output:
		return "->"
	case bt.InOut:
		return "<->"
	default:
		return "<-"
	}
}
