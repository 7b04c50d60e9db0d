// Package loader turns a parsed dsl/ast.File into an executable *bt.Tree
// rooted at the tree named "main" (spec.md §4.8). It resolves every node
// reference depth-first, preferring the Registry over tree definitions so
// a host can shadow a subtree name with a real implementation; detects a
// subtree that contains itself through the static call graph; hoists
// `var` declarations so a reference to a variable can appear before or
// after its declaration within the same body; and, when check_ports is
// enabled, statically validates every port map against the target node's
// declared ports.
package loader

import (
	"github.com/aledsdavies/bttree/bt"
	"github.com/aledsdavies/bttree/dsl/ast"
)

// Config controls how Load resolves and validates a tree source,
// mirroring spec.md §4.8's check_ports parameter.
type Config struct {
	// CheckPorts enables static port-map validation: every port map in
	// the source is checked against its target node's ProvidedPorts()
	// (name, direction) and, for subtree parameters with a `: type`
	// annotation, against that type's JSON Schema.
	CheckPorts bool
}

// DefaultConfig returns a Config with CheckPorts enabled. Load does not
// fall back to it; every caller passes its own Config.
func DefaultConfig() Config {
	return Config{CheckPorts: true}
}

// Load builds the executable tree for file's "main" tree declaration.
func Load(file *ast.File, registry *bt.Registry, cfg Config) (*bt.Tree, error) {
	treesByName := make(map[string]*ast.TreeDecl, len(file.Trees))
	for _, decl := range file.Trees {
		treesByName[decl.Name] = decl
	}

	main, ok := treesByName["main"]
	if !ok {
		return nil, &LoadError{Kind: MissingTree}
	}

	l := &loader{registry: registry, treesByName: treesByName, checkPorts: cfg.CheckPorts}
	return l.buildSubtreeRoot(main, &frame{name: "main"})
}

type loader struct {
	registry    *bt.Registry
	treesByName map[string]*ast.TreeDecl
	checkPorts  bool
}

// frame is a node in the loader's ancestor call-stack linked list,
// threaded through the recursion rather than held in a growable slice
// (spec.md §9 "Infinite-recursion detection").
type frame struct {
	name   string
	parent *frame
}

func (f *frame) contains(name string) bool {
	for cur := f; cur != nil; cur = cur.parent {
		if cur.name == name {
			return true
		}
	}
	return false
}

// buildSubtreeRoot builds decl's root node in a fresh lexical scope - the
// scope a subtree boundary introduces (spec.md §4.8 step 2).
func (l *loader) buildSubtreeRoot(decl *ast.TreeDecl, ancestors *frame) (*bt.Tree, error) {
	scope := make(map[string]bool)
	return l.buildNode(decl.Root, scope, ancestors)
}

// buildNode resolves one NodeExpr into an executable Tree: either the
// bare-identifier-to-IsTrue substitution deferred from the parser, a
// registered built-in/host node, or a subtree reference wrapped in a
// bt.Subtree.
func (l *loader) buildNode(expr *ast.NodeExpr, scope map[string]bool, ancestors *frame) (*bt.Tree, error) {
	name := expr.Name

	if name != "" && scope[name] && len(expr.PortMaps) == 0 && len(expr.Children) == 0 {
		return l.buildVarReference(name)
	}

	var node bt.Node
	var preloadedChild *bt.Tree
	var isSubtree bool
	var paramTypes map[string]string

	if factory, ok := l.registry.Lookup(name); ok {
		node = factory()
	} else {
		decl, ok := l.treesByName[name]
		if !ok {
			return nil, l.missingNodeError(name)
		}
		if ancestors.contains(name) {
			return nil, &LoadError{Kind: InfiniteRecursion, Node: name}
		}
		inner, err := l.buildSubtreeRoot(decl, &frame{name: name, parent: ancestors})
		if err != nil {
			return nil, err
		}
		node = bt.NewSubtree(name, portSpecsFromParams(decl.Params))
		preloadedChild = inner
		isSubtree = true
		paramTypes = typesByParam(decl.Params)
	}

	portMap, err := l.buildPortMap(name, node, expr.PortMaps, paramTypes)
	if err != nil {
		return nil, err
	}

	// A synthetic node (the Sequence/Fallback/Inverter the parser
	// generated desugaring &&/||/!/if) has no source-given call site name
	// worth showing in a diagnostic, so it gets a gensym instead of its
	// bare type name - distinguishing e.g. the dozen Sequences desugared
	// from a long chain of && in one tree dump.
	treeName := name
	if expr.Synthetic {
		treeName = bt.Gensym().String()
	}

	var tree *bt.Tree
	if isSubtree {
		tree = bt.NewSubtreeTree(treeName, node, portMap)
	} else {
		tree = bt.NewTree(treeName, node, portMap)
	}

	if preloadedChild != nil {
		if err := tree.AddChild(preloadedChild); err != nil {
			return nil, &LoadError{Kind: TooManyNodes, Node: name}
		}
	}

	if err := l.buildChildren(tree, expr.Children, scope, ancestors); err != nil {
		return nil, err
	}

	return tree, nil
}

// buildVarReference builds the IsTrue node the parser deferred for a bare
// identifier that names an in-scope variable (dsl/ast package doc).
// IsTrue reads its condition through its "input" port (builtins_leaf.go),
// so that is the local port name bound here, not the variable's own name.
func (l *loader) buildVarReference(name string) (*bt.Tree, error) {
	node := bt.NewIsTrue()
	portMap := bt.NewPortMap().Ref("input", bt.Input, name)
	return bt.NewTree("IsTrue", node, portMap), nil
}

// buildChildren hoists every var declared as an immediate child of
// children into scope, then builds and appends each non-declaration-only
// child to tree in order.
func (l *loader) buildChildren(tree *bt.Tree, children []*ast.NodeExpr, scope map[string]bool, ancestors *frame) error {
	for _, child := range children {
		if child.DeclaresVar != "" {
			scope[child.DeclaresVar] = true
		}
	}

	for _, child := range children {
		if child.Name == "" {
			continue // `var x` with no initializer: scope only, no node
		}

		childTree, err := l.buildNode(child, scope, ancestors)
		if err != nil {
			return err
		}
		if err := tree.AddChild(childTree); err != nil {
			return &LoadError{Kind: TooManyNodes, Node: tree.Name()}
		}
	}

	return nil
}

// buildPortMap assembles node's PortMap from maps, validating each entry
// against node's declared ports when check_ports is enabled. paramTypes,
// populated only when node wraps a subtree reference, carries the `:
// type` annotation (if any) declared on that subtree's parameters; a
// literal bound to a typed parameter is additionally checked against that
// type's JSON Schema (SPEC_FULL §2) - type annotations only exist on
// tree_decl parameters, so this check never applies to a plain registered
// node's ports.
func (l *loader) buildPortMap(nodeName string, node bt.Node, maps []ast.PortMap, paramTypes map[string]string) (bt.PortMap, error) {
	portMap := bt.NewPortMap()

	var declared map[bt.Symbol]bt.PortDirection
	if l.checkPorts {
		declared = make(map[bt.Symbol]bt.PortDirection, len(node.ProvidedPorts()))
		for _, spec := range node.ProvidedPorts() {
			declared[spec.Key] = spec.Direction
		}
	}

	for _, m := range maps {
		if l.checkPorts {
			dir, ok := declared[bt.Intern(m.Port)]
			if !ok {
				return nil, &LoadError{Kind: PortUnmatch, Node: nodeName, Port: m.Port}
			}
			if dir != m.Direction {
				return nil, &LoadError{Kind: PortIOUnmatch, Node: nodeName, Port: m.Port}
			}
		}

		if m.IsLiteral {
			if typeName, ok := paramTypes[m.Port]; ok {
				if err := validateTypedLiteral(typeName, m.Literal); err != nil {
					return nil, &LoadError{Kind: PortTypeMismatch, Node: nodeName, Port: m.Port, Detail: err.Error()}
				}
			}
			portMap = portMap.Literal(m.Port, m.Literal)
		} else {
			portMap = portMap.Ref(m.Port, m.Direction, m.RefName)
		}
	}

	return portMap, nil
}

func portSpecsFromParams(params []ast.PortParam) []bt.PortSpec {
	specs := make([]bt.PortSpec, len(params))
	for i, p := range params {
		specs[i] = bt.PortSpec{Key: bt.Intern(p.Name), Direction: p.Direction}
	}
	return specs
}

func typesByParam(params []ast.PortParam) map[string]string {
	types := make(map[string]string, len(params))
	for _, p := range params {
		if p.Type != "" {
			types[p.Name] = p.Type
		}
	}
	return types
}

func (l *loader) missingNodeError(name string) error {
	candidates := l.registry.Names()
	for treeName := range l.treesByName {
		candidates = append(candidates, treeName)
	}

	err := &LoadError{Kind: MissingNode, Node: name}
	if suggestions := bt.Suggest(name, candidates); len(suggestions) > 0 {
		err.Hint = suggestions[0]
	}
	return err
}
