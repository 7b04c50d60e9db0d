package bt

import (
	"fmt"
	"sort"
	"sync"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Factory constructs a fresh Node instance. The loader calls it once per
// node reference in the tree source, so latched state (a Sequence's
// current-child index, a Retry's counter) starts clean for every
// instantiation even when the same node name is used many times.
type Factory func() Node

// Registry maps node type names to Factory constructors, following the
// same registration pattern as database/sql drivers: register during
// init, look up by name at load time. Safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry returns a Registry pre-populated with the built-in control
// and decorator nodes (spec.md §4.6).
func NewRegistry() *Registry {
	r := &Registry{factories: make(map[string]Factory)}
	registerBuiltins(r)
	return r
}

// Register adds name to the registry. Registering the same name twice
// overwrites the previous factory, matching the decorator registry this
// type is grounded on - later registrations win, which lets a host
// shadow a built-in by re-registering its name.
func (r *Registry) Register(name string, factory Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[name] = factory
}

// Lookup returns the factory registered under name, if any.
func (r *Registry) Lookup(name string) (Factory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.factories[name]
	return f, ok
}

// New constructs a fresh Node for name, or an error naming the closest
// registered name if name isn't registered.
func (r *Registry) New(name string) (Node, error) {
	factory, ok := r.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("node %q is not registered%s", name, r.suggestionSuffix(name))
	}
	return factory(), nil
}

// Names returns the registered node type names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Suggest returns the registered names that most resemble name, closest
// first, for "did you mean" diagnostics when a tree source references an
// unregistered node.
func (r *Registry) Suggest(name string) []string {
	return Suggest(name, r.Names())
}

// Suggest ranks candidates by fuzzy resemblance to target, closest
// first. Shared by Registry.Suggest and the loader, which additionally
// wants to suggest across tree_def names that aren't in any Registry.
func Suggest(target string, candidates []string) []string {
	ranks := fuzzy.RankFindFold(target, candidates)
	sort.Sort(ranks)
	names := make([]string, len(ranks))
	for i, rank := range ranks {
		names[i] = rank.Target
	}
	return names
}

func (r *Registry) suggestionSuffix(name string) string {
	matches := r.Suggest(name)
	if len(matches) == 0 {
		return ""
	}
	return fmt.Sprintf(" (did you mean %q?)", matches[0])
}

func registerBuiltins(r *Registry) {
	r.Register("Sequence", func() Node { return NewSequence() })
	r.Register("ReactiveSequence", func() Node { return NewReactiveSequence() })
	r.Register("Fallback", func() Node { return NewFallback() })
	r.Register("ReactiveFallback", func() Node { return NewReactiveFallback() })
	r.Register("ForceSuccess", func() Node { return NewForceSuccess() })
	r.Register("ForceFailure", func() Node { return NewForceFailure() })
	r.Register("Inverter", func() Node { return NewInverter() })
	r.Register("Repeat", func() Node { return NewRepeat() })
	r.Register("Retry", func() Node { return NewRetry() })
	r.Register("IsTrue", func() Node { return NewIsTrue() })
	r.Register("if", func() Node { return NewIf() })
	r.Register("SetBool", func() Node { return NewSetBool() })
}
