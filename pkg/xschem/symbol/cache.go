package symbol

import "fmt"

// Loader is the narrow external-collaborator interface the cache uses to
// load a symbol definition by name.
type Loader interface {
	LoadSymbol(name string) (Symbol, error)
}

// growChunk is the capacity increment check_storage grows the backing array
// by.
const growChunk = 64

// Cache is the dense array of Symbols, looked up by name, that backs every
// sheet's symbol references. Deletion is by shift-compaction: any
// symbol deletion invalidates instance references unless the sheet is being
// torn down.
type Cache struct {
	symbols []Symbol
	byName  map[string]int
	loader  Loader

	// cloneActive/cloneSeen implement the polymorphic-expansion contract:
	// between Start and End, no call that may renumber symbols is
	// permitted, and a hash set guards duplicate clones within one pass.
	cloneActive bool
	cloneStart  int
	cloneSeen   map[string]int
}

// NewCache builds an empty symbol cache backed by loader.
func NewCache(loader Loader) *Cache {
	return &Cache{
		byName: make(map[string]int),
		loader: loader,
	}
}

// Len reports the number of live symbols.
func (c *Cache) Len() int { return len(c.symbols) }

// Resolve returns a pointer to the symbol at idx. The pointer is only valid
// until the next mutating cache call (append/remove/clone), since
// shift-compaction and growth may relocate entries; callers must re-resolve
// after any such call rather than holding the pointer across it.
func (c *Cache) Resolve(idx int) (*Symbol, bool) {
	if idx < 0 || idx >= len(c.symbols) {
		return nil, false
	}
	return &c.symbols[idx], true
}

// IndexOf returns the index of the named symbol, or -1 if not loaded.
func (c *Cache) IndexOf(name string) int {
	if idx, ok := c.byName[name]; ok {
		return idx
	}
	return -1
}

// MatchSymbol returns an existing index for name, or loads it through the
// Loader and appends it. Must not be called while
// a polymorphic-expansion pass is active.
func (c *Cache) MatchSymbol(name string) (int, error) {
	if c.cloneActive {
		return -1, fmt.Errorf("symbol: MatchSymbol called between polymorphic start/end for %q", name)
	}
	if idx, ok := c.byName[name]; ok {
		return idx, nil
	}
	sym, err := c.loader.LoadSymbol(name)
	if err != nil {
		return -1, fmt.Errorf("symbol: load %q: %w", name, err)
	}
	sym.Kind = Primary
	sym.BaseIndex = -1
	return c.append(sym), nil
}

// checkStorage grows the backing array in growChunk bursts, keeping
// reallocation bounded and predictable.
func (c *Cache) checkStorage() {
	if cap(c.symbols)-len(c.symbols) == 0 {
		grown := make([]Symbol, len(c.symbols), len(c.symbols)+growChunk)
		copy(grown, c.symbols)
		c.symbols = grown
	}
}

func (c *Cache) append(sym Symbol) int {
	c.checkStorage()
	c.symbols = append(c.symbols, sym)
	idx := len(c.symbols) - 1
	c.byName[sym.Name] = idx
	return idx
}

// RemoveSymbol deletes the symbol at index j by shift-compaction: entries
// j+1..N-1 move down one slot and the cleared slot is left at the tail,
// outside the live range, so Len drops by one.
// The caller is responsible for relinking or clearing any
// Instance.SymbolIndex referencing j or above before calling this, except
// during a full sheet teardown.
func (c *Cache) RemoveSymbol(j int) error {
	if j < 0 || j >= len(c.symbols) {
		return fmt.Errorf("symbol: RemoveSymbol: index %d out of range", j)
	}
	removed := c.symbols[j]
	delete(c.byName, removed.Name)

	copy(c.symbols[j:], c.symbols[j+1:])
	c.symbols[len(c.symbols)-1] = Symbol{}
	c.symbols = c.symbols[:len(c.symbols)-1]
	for i := j; i < len(c.symbols); i++ {
		c.byName[c.symbols[i].Name] = i
	}
	return nil
}

// Clear empties the cache entirely, used when the sheet is torn down.
func (c *Cache) Clear() {
	c.symbols = nil
	c.byName = make(map[string]int)
	c.cloneActive = false
}

// All returns a read-only snapshot slice of every live symbol, in index
// order.
func (c *Cache) All() []Symbol {
	out := make([]Symbol, len(c.symbols))
	copy(out, c.symbols)
	return out
}

// Install replaces the cache contents with symbols, in order, rebuilding the
// name index. The undo codec uses this to reinstall a document snapshot:
// instance symbol indices survive unchanged because order is preserved.
func (c *Cache) Install(symbols []Symbol) {
	c.symbols = append([]Symbol(nil), symbols...)
	c.byName = make(map[string]int, len(symbols))
	for i, s := range symbols {
		c.byName[s.Name] = i
	}
	c.cloneActive = false
	c.cloneSeen = nil
}

// InstallSymbol appends (or replaces in place, keeping the index stable) a
// fully built symbol, returning its index. Used when a definition arrives
// from somewhere other than the Loader, e.g. an embedded symbol loaded on
// ascend.
func (c *Cache) InstallSymbol(sym Symbol) int {
	if idx, ok := c.byName[sym.Name]; ok {
		c.symbols[idx] = sym
		return idx
	}
	if sym.Kind == Primary {
		sym.BaseIndex = -1
	}
	return c.append(sym)
}

// InstallPlaceholder appends an empty symbol under name, used when a load
// fails and the caller continues with a placeholder rather than aborting.
func (c *Cache) InstallPlaceholder(name string) int {
	if idx, ok := c.byName[name]; ok {
		return idx
	}
	return c.append(Symbol{Name: name, Kind: Primary, BaseIndex: -1, Type: "missing"})
}
