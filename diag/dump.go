// Package diag renders a *bt.Tree as a human-readable box-drawing
// diagram, the runtime's equivalent of the teacher's --dry-run execution
// plan dump.
package diag

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/aledsdavies/bttree/bt"
)

// ANSI color codes, carried over from the teacher's formatter package
// verbatim - the same small fixed palette, the same opt-in Colorize
// helper.
const (
	ColorReset  = "\033[0m"
	ColorBlue   = "\033[34m"
	ColorCyan   = "\033[36m"
	ColorGray   = "\033[90m"
	ColorYellow = "\033[33m"
)

// Colorize wraps text in an ANSI color code when useColor is true,
// otherwise returns text unchanged.
func Colorize(text, color string, useColor bool) string {
	if !useColor {
		return text
	}
	return color + text + ColorReset
}

// Options controls Dump's output.
type Options struct {
	// Color enables ANSI coloring of node names and port bindings.
	Color bool
}

// Dump writes tree as a box-drawing diagram to w: one line per node,
// "├─"/"└─" branches, a "│ " continuation column for non-last ancestors,
// the node's port bindings sorted by port name, and a "(subtree)" marker on
// tree-declaration boundaries. Unlike the teacher's FormatTree - which
// only walks a flat list of top-level steps - this recurses through
// arbitrarily nested children, since a behavior tree has no flat-plan
// analog.
func Dump(w io.Writer, tree *bt.Tree, opts Options) {
	fmt.Fprintln(w, renderLabel(tree, opts))
	dumpChildren(w, tree.Children(), "", opts)
}

func dumpChildren(w io.Writer, children []*bt.Tree, prefix string, opts Options) {
	for i, child := range children {
		isLast := i == len(children)-1

		branch := "├─ "
		cont := "│  "
		if isLast {
			branch = "└─ "
			cont = "   "
		}

		fmt.Fprintf(w, "%s%s%s\n", prefix, branch, renderLabel(child, opts))
		dumpChildren(w, child.Children(), prefix+cont, opts)
	}
}

func renderLabel(tree *bt.Tree, opts Options) string {
	name := Colorize(tree.Name(), ColorBlue, opts.Color)
	if tree.IsSubtree() {
		name += " " + Colorize("(subtree)", ColorGray, opts.Color)
	}

	if bindings := renderPortMap(tree.PortMap(), opts); bindings != "" {
		name += " " + bindings
	}

	if result := tree.LastResult(); result != nil {
		name += " " + Colorize(fmt.Sprintf("[%s]", result), ColorYellow, opts.Color)
	}

	return name
}

// renderPortMap renders a Tree's bindings as "(port <- target, port ->
// target)", sorted by port name for a deterministic dump.
func renderPortMap(portMap bt.PortMap, opts Options) string {
	if len(portMap) == 0 {
		return ""
	}

	ports := make([]bt.Symbol, 0, len(portMap))
	for key := range portMap {
		ports = append(ports, key)
	}
	sort.Slice(ports, func(i, j int) bool { return ports[i].String() < ports[j].String() })

	parts := make([]string, 0, len(ports))
	for _, key := range ports {
		binding := portMap[key]
		parts = append(parts, renderBinding(key, binding, opts))
	}

	return "(" + strings.Join(parts, ", ") + ")"
}

func renderBinding(port bt.Symbol, binding bt.Binding, opts Options) string {
	arrow := "<-"
	if binding.Direction == bt.Output {
		arrow = "->"
	} else if binding.Direction == bt.InOut {
		arrow = "<->"
	}
	arrow = Colorize(arrow, ColorCyan, opts.Color)

	if binding.Kind == bt.BindLiteral {
		return fmt.Sprintf("%s %s %q", port, arrow, binding.Literal)
	}
	return fmt.Sprintf("%s %s %s", port, arrow, binding.Target)
}
