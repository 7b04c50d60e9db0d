package bt

import (
	"fmt"
	"sync"
	"sync/atomic"
)

// Symbol is an interned identifier. Two symbols are equal iff they were
// created from equal strings. Comparison is O(1); the interner holds the
// backing string for the life of the process.
type Symbol struct {
	id uint32
}

var symbolInterner = struct {
	mu      sync.RWMutex
	byName  map[string]uint32
	strings []string
}{
	byName: make(map[string]uint32),
}

// Intern returns the Symbol for s, creating one on first use. Interning is
// idempotent and safe for concurrent use.
func Intern(s string) Symbol {
	symbolInterner.mu.RLock()
	if id, ok := symbolInterner.byName[s]; ok {
		symbolInterner.mu.RUnlock()
		return Symbol{id: id}
	}
	symbolInterner.mu.RUnlock()

	symbolInterner.mu.Lock()
	defer symbolInterner.mu.Unlock()

	// Re-check: another goroutine may have interned s while we waited for
	// the write lock.
	if id, ok := symbolInterner.byName[s]; ok {
		return Symbol{id: id}
	}

	id := uint32(len(symbolInterner.strings))
	symbolInterner.strings = append(symbolInterner.strings, s)
	symbolInterner.byName[s] = id
	return Symbol{id: id}
}

// String returns the original string this Symbol was interned from.
func (s Symbol) String() string {
	symbolInterner.mu.RLock()
	defer symbolInterner.mu.RUnlock()
	if int(s.id) >= len(symbolInterner.strings) {
		return fmt.Sprintf("<invalid-symbol-%d>", s.id)
	}
	return symbolInterner.strings[s.id]
}

// SymbolCount returns the number of distinct symbols interned so far.
func SymbolCount() int {
	symbolInterner.mu.RLock()
	defer symbolInterner.mu.RUnlock()
	return len(symbolInterner.strings)
}

var gensymCounter uint64

// Gensym mints a fresh symbol of the form "G#<n>", guaranteed distinct from
// every previously generated gensym. Used internally by the loader to name
// synthetic nodes produced by desugaring (e.g. the Sequence introduced by
// "a && b") when a diagnostic needs a name.
func Gensym() Symbol {
	n := atomic.AddUint64(&gensymCounter, 1) - 1
	return Intern(fmt.Sprintf("G#%d", n))
}
