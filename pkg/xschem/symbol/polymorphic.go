package symbol

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/OpenTraceLab/xschem-go/pkg/xschem/attr"
	"github.com/chewxy/sexp"
)

// symDefOverride is the decoded shape of a "{spice,vhdl,verilog}_sym_def"
// attribute token: a small s-expression list, e.g.
// `(spice "X@name %1 %2 model")`.
type symDefOverride struct {
	Lang  string
	Value string
}

// decodeSymDef parses a `(lang "value")`-shaped override string with
// chewxy/sexp. Malformed input degrades to treating the raw text as the
// value rather than propagating an error; malformed attributes are
// non-fatal.
func decodeSymDef(lang, raw string) symDefOverride {
	ov := symDefOverride{Lang: lang}
	if raw == "" {
		return ov
	}
	nodes, err := sexp.ParseString(raw)
	if err != nil || len(nodes) == 0 || nodes[0] == nil {
		ov.Value = raw
		return ov
	}
	n := nodes[0]
	if n.IsLeaf() {
		ov.Value = unquote(fmt.Sprintf("%s", n))
		return ov
	}
	if head := n.Head(); head != nil && head.IsLeaf() {
		ov.Lang = fmt.Sprintf("%s", head)
	}
	if tail := n.Tail(); tail != nil {
		if v := tail.Head(); v != nil {
			ov.Value = unquote(fmt.Sprintf("%s", v))
		}
	}
	return ov
}

// encodeSymDef serializes an override back to its s-expression form for
// patching into a clone's attribute string.
func encodeSymDef(ov symDefOverride) string {
	return "(" + ov.Lang + " " + strconv.Quote(ov.Value) + ")"
}

func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		if u, err := strconv.Unquote(s); err == nil {
			return u
		}
		return s[1 : len(s)-1]
	}
	return s
}

// Expander produces transient polymorphic symbol clones for a netlist or
// preview pass. Cache.cloneActive marks a session as active; Start does not
// check whether another session is already active.
type Expander struct {
	cache    *Cache
	appended []int
	startLen int
}

// Start begins a polymorphic-expansion pass. Between Start and the matching
// End, MatchSymbol on the underlying cache is rejected: no call that may
// renumber symbols is permitted while clones are outstanding.
func (c *Cache) Start() *Expander {
	c.cloneActive = true
	c.cloneStart = len(c.symbols)
	c.cloneSeen = make(map[string]int)
	return &Expander{cache: c, startLen: len(c.symbols)}
}

// Clone deep-copies the base symbol at baseIdx, rewrites the copy's name to
// name (after @symname substitution has already been applied by the
// caller), patches language-specific *_sym_def tokens into the clone's
// attribute string, and appends it to the cache. A duplicate request for
// the same (baseIdx, name) pair within one pass returns the
// previously-created clone's index instead of appending again.
func (e *Expander) Clone(baseIdx int, name string, langOverrides map[string]string) (int, error) {
	key := fmt.Sprintf("%d\x00%s", baseIdx, name)
	if idx, ok := e.cache.cloneSeen[key]; ok {
		return idx, nil
	}

	base, ok := e.cache.Resolve(baseIdx)
	if !ok {
		return -1, fmt.Errorf("symbol: Clone: base index %d invalid", baseIdx)
	}

	clone := deepCopy(*base)
	clone.Kind = Clone
	clone.BaseIndex = baseIdx
	clone.Name = name

	attrs := clone.Attributes
	for lang, raw := range langOverrides {
		ov := decodeSymDef(lang, raw)
		attrs = attr.Set(attrs, lang+"_sym_def", encodeSymDef(ov))
	}
	clone.Attributes = attrs

	e.cache.checkStorage()
	e.cache.symbols = append(e.cache.symbols, clone)
	idx := len(e.cache.symbols) - 1
	// Clones are intentionally NOT added to byName: MatchSymbol must keep
	// resolving the base symbol by its real name, and multiple clones may
	// share a rewritten name across different base symbols.
	e.appended = append(e.appended, idx)
	e.cache.cloneSeen[key] = idx
	return idx, nil
}

// End removes every clone appended since the matching Start, restoring the
// cache to its pre-pass size.
func (e *Expander) End() {
	if len(e.cache.symbols) > e.startLen {
		e.cache.symbols = e.cache.symbols[:e.startLen]
	}
	e.cache.cloneActive = false
	e.cache.cloneSeen = nil
}

func deepCopy(s Symbol) Symbol {
	clone := s
	clone.Lines = append([]Line(nil), s.Lines...)
	clone.Rects = append([]RectGeo(nil), s.Rects...)
	clone.Arcs = append([]ArcGeo(nil), s.Arcs...)
	clone.Polys = append([]PolyGeo(nil), s.Polys...)
	for i := range clone.Polys {
		p := &clone.Polys[i].Poly
		p.X = append([]float64(nil), p.X...)
		p.Y = append([]float64(nil), p.Y...)
		p.Selected = append([]bool(nil), p.Selected...)
	}
	clone.Texts = append([]TextGeo(nil), s.Texts...)
	clone.Pins = append([]Pin(nil), s.Pins...)
	return clone
}

// ResolveSchematicRef computes the effective schematic= override for an
// instance, substituting @symname with the instance's own symbol name.
func ResolveSchematicRef(instanceProps string, symbolName string) (string, bool) {
	raw := attr.Get(instanceProps, "schematic")
	if raw == "" {
		return "", false
	}
	return attr.SubstSymname(raw, symbolName), true
}

// DefaultChildFilename builds "<symbolname>.sch" when no schematic=
// override is present, dropping any library prefix and the .sym extension.
func DefaultChildFilename(symbolName string) string {
	name := symbolName
	if i := strings.LastIndexByte(name, ':'); i >= 0 {
		name = name[i+1:]
	}
	name = strings.TrimSuffix(name, ".sym")
	return name + ".sch"
}
