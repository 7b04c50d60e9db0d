// Package ast defines the syntax tree produced by dsl/parser from the
// tree definition language (spec.md §4.7): a file of named tree
// declarations, each rooted at a single desugared node expression.
//
// The parser performs all of the grammar's structural desugaring
// (`&&`, `||`, `!`, `if`/`else`, `var x = ...`) while building this tree,
// so by the time dsl/loader sees a File there is exactly one kind of
// node to resolve: NodeExpr, a named invocation with a port map and
// child list. The one desugar step the parser defers to the loader is
// "bare identifier naming a declared variable becomes IsTrue" - that
// substitution needs the loader's variable-hoisting pass (spec.md §4.8
// step 3) to know which names are in scope, so a bare identifier reaches
// the loader as an ordinary zero-argument NodeExpr and is reinterpreted
// there.
package ast

import "github.com/aledsdavies/bttree/bt"

// Position is a source location, used only for diagnostics.
type Position struct {
	Line   int
	Column int
}

// File is the parsed contents of one tree source document.
type File struct {
	NodeDecls []*NodeDecl
	Trees     []*TreeDecl
}

// NodeDecl is a `node name { port_param* }` declaration: a description of
// an externally-implemented node's ports, carried through parsing for
// documentation purposes. Mirrors the upstream grammar's node_def
// production; like upstream, the loader does not consult it (a node's
// real ProvidedPorts come from the registered Node itself), so a
// NodeDecl and its registered node's ports may legitimately drift -
// this is a known upstream quirk, not a bug introduced here.
type NodeDecl struct {
	Name  string
	Ports []PortParam
	Pos   Position
}

// TreeDecl is `tree name(params) = node`.
type TreeDecl struct {
	Name   string
	Params []PortParam
	Root   *NodeExpr
	Pos    Position
}

// PortParam is one entry of a tree_decl's parameter list: a direction, a
// name, and an optional type annotation (used for literal validation,
// SPEC_FULL §2).
type PortParam struct {
	Direction bt.PortDirection
	Name      string
	Type      string
	Pos       Position
}

// NodeExpr is a single node invocation: a type name, the port bindings
// supplied at this call site, and its children in declaration order.
// Every DSL construct - a plain node call, `a && b`, `!a`, `if`/`else`,
// `var x = true` - is represented as a NodeExpr by the time parsing is
// done.
//
// DeclaresVar is non-empty when this NodeExpr represents a `var name
// [= true|false]` statement; the loader uses it to hoist the name into
// scope before resolving sibling references. When the declaration has an
// initializer, Name is "SetBool" and PortMaps assigns the literal to the
// variable at the point of declaration. A bare `var name` with no
// initializer carries an empty Name - it declares scope only and the
// loader builds no node for it.
type NodeExpr struct {
	Name        string
	PortMaps    []PortMap
	Children    []*NodeExpr
	DeclaresVar string
	// Synthetic marks a NodeExpr the parser generated rather than one the
	// source named directly - the Sequence from `a && b`, the Fallback
	// from `a || b`, the Inverter from `!a`, the per-branch Sequence
	// wrapping an if/else body. The loader still resolves Name against
	// the Registry normally; Synthetic only affects what diagnostic name
	// the resulting Tree carries (a gensym, since there's no source name
	// to show).
	Synthetic bool
	Pos       Position
}

// PortMap is one `port <- target`/`port -> target`/`port <-> target`
// entry in a node invocation's argument list.
type PortMap struct {
	Port      string
	Direction bt.PortDirection
	IsLiteral bool
	RefName   string // valid when !IsLiteral
	Literal   string // valid when IsLiteral (already escape-decoded)
	Pos       Position
}
