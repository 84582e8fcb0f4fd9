// Package floater implements the deferred-evaluation cache for floater
// TextItems: text whose visible string is computed by template
// substitution against a named instance's attributes.
package floater

import (
	"strings"

	"github.com/OpenTraceLab/xschem-go/pkg/xschem/attr"
	"github.com/OpenTraceLab/xschem-go/pkg/xschem/doc"
)

// InstanceIndex is a process-wide (here: per-Cache) instance-name hash
// accelerating floater-to-instance lookup. It is rebuilt lazily:
// Lookup rebuilds it on first use after Invalidate.
type InstanceIndex struct {
	byName map[string]int
	fresh  bool
}

// NewInstanceIndex creates an empty, stale index.
func NewInstanceIndex() *InstanceIndex {
	return &InstanceIndex{}
}

// Invalidate marks the index stale; it is freed and lazily rebuilt on the
// next Lookup, matching "freed and lazily rebuilt on any modification".
func (ix *InstanceIndex) Invalidate() {
	ix.byName = nil
	ix.fresh = false
}

func (ix *InstanceIndex) ensure(sheet *doc.Sheet) {
	if ix.fresh {
		return
	}
	ix.byName = make(map[string]int, len(sheet.Instances))
	for i, inst := range sheet.Instances {
		if inst.InstanceName != "" {
			ix.byName[inst.InstanceName] = i
		}
		if inst.Name != "" {
			if _, ok := ix.byName[inst.Name]; !ok {
				ix.byName[inst.Name] = i
			}
		}
	}
	ix.fresh = true
}

// Lookup resolves instName to its instance index on sheet, rebuilding the
// index first if it is stale.
func (ix *InstanceIndex) Lookup(sheet *doc.Sheet, instName string) (int, bool) {
	ix.ensure(sheet)
	i, ok := ix.byName[instName]
	return i, ok
}

// Cache evaluates and caches floater TextItem strings. Its OnModify
// listener, passed to Sheet.SetModify, makes SetModify(true) invalidate both
// every floater's cached string and the instance-name index in one step.
type Cache struct {
	instances *InstanceIndex
}

// New creates a floater cache backed by its own instance-name index.
func New() *Cache {
	return &Cache{instances: NewInstanceIndex()}
}

// OnModify is the doc.ModifyListener to register with Sheet.SetModify: it
// nulls every floater TextItem's cache and invalidates the instance-name
// index, satisfying the "callers must invalidate floater caches before the
// next draw" contract.
func (c *Cache) OnModify(sheet *doc.Sheet) doc.ModifyListener {
	return func() {
		for i := range sheet.Texts {
			sheet.Texts[i].FloaterCache = nil
		}
		c.instances.Invalidate()
	}
}

// Resolve returns the floater's visible string, using the cached value if
// present and otherwise evaluating the template against the target
// instance's attributes and caching the result. txt must be a
// floater (attr.TextFlagFloater set / non-empty FloaterInstName); ok is
// false otherwise.
func (c *Cache) Resolve(sheet *doc.Sheet, txt *doc.TextItem) (string, bool) {
	if txt.FloaterInstName == "" {
		return "", false
	}
	if txt.FloaterCache != nil {
		return *txt.FloaterCache, true
	}

	instIdx, ok := c.instances.Lookup(sheet, txt.FloaterInstName)
	if !ok {
		return "", false
	}
	inst := &sheet.Instances[instIdx]

	resolved := Substitute(txt.Text, inst)
	txt.FloaterCache = &resolved
	return resolved, true
}

// Substitute expands every "@key" token in template against inst's
// properties (falling back to its bare Name for "@symname"), the template
// evaluation rule also used for `@symname` in schematic= overrides.
func Substitute(template string, inst *doc.Instance) string {
	out := attr.SubstSymname(template, inst.Name)
	for _, key := range attr.Keys(inst.Properties) {
		val := attr.Get(inst.Properties, key)
		out = strings.ReplaceAll(out, "@"+key, val)
	}
	return out
}
