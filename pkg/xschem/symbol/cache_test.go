package symbol

import "testing"

type stubLoader struct {
	defs map[string]Symbol
}

func (s *stubLoader) LoadSymbol(name string) (Symbol, error) {
	if sym, ok := s.defs[name]; ok {
		sym.Name = name
		return sym, nil
	}
	return Symbol{Name: name}, nil
}

func newTestCache() *Cache {
	loader := &stubLoader{defs: map[string]Symbol{
		"nand2": {Pins: []Pin{{Name: "A"}, {Name: "B"}, {Name: "Y"}}},
	}}
	return NewCache(loader)
}

func TestMatchSymbolLoadsAndCaches(t *testing.T) {
	c := newTestCache()
	i1, err := c.MatchSymbol("nand2")
	if err != nil {
		t.Fatal(err)
	}
	i2, err := c.MatchSymbol("nand2")
	if err != nil {
		t.Fatal(err)
	}
	if i1 != i2 {
		t.Fatalf("expected same index on repeat lookup: %d vs %d", i1, i2)
	}
	if c.Len() != 1 {
		t.Fatalf("expected 1 symbol, got %d", c.Len())
	}
}

func TestRemoveSymbolPreservesOrder(t *testing.T) {
	c := newTestCache()
	ia, _ := c.MatchSymbol("a")
	_, _ = c.MatchSymbol("b")
	ic, _ := c.MatchSymbol("c")
	_ = ia

	if err := c.RemoveSymbol(1); err != nil { // remove "b"
		t.Fatal(err)
	}
	if c.Len() != 2 {
		t.Fatalf("expected 2 symbols after removal, got %d", c.Len())
	}
	newIdxC := c.IndexOf("c")
	if newIdxC != 1 {
		t.Fatalf("expected c to shift down to index 1, got %d", newIdxC)
	}
	sym, ok := c.Resolve(newIdxC)
	if !ok || sym.Name != "c" {
		t.Fatalf("resolve mismatch after compaction: %+v", sym)
	}
	_ = ic
}

func TestPolymorphicCloneAndRollback(t *testing.T) {
	c := newTestCache()
	base, err := c.MatchSymbol("nand2")
	if err != nil {
		t.Fatal(err)
	}
	sizeBefore := c.Len()

	exp := c.Start()
	if _, err := c.MatchSymbol("nand2"); err == nil {
		t.Fatal("MatchSymbol should be rejected while a polymorphic pass is active")
	}

	cloneIdx, err := exp.Clone(base, "nand2_variant", map[string]string{
		"spice": `(spice "X1 %1 %2 %3 nand2mod")`,
	})
	if err != nil {
		t.Fatal(err)
	}
	dup, err := exp.Clone(base, "nand2_variant", nil)
	if err != nil {
		t.Fatal(err)
	}
	if dup != cloneIdx {
		t.Fatalf("duplicate clone request should return the same index: %d vs %d", dup, cloneIdx)
	}

	clone, _ := c.Resolve(cloneIdx)
	if clone.Kind != Clone || clone.BaseIndex != base {
		t.Fatalf("clone metadata wrong: %+v", clone)
	}

	exp.End()
	if c.Len() != sizeBefore {
		t.Fatalf("End() should roll back to pre-pass size: got %d want %d", c.Len(), sizeBefore)
	}
}
