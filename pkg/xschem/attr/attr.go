// Package attr implements the attribute engine: tokenized
// key=value property strings with get/set/subst/str_replace operations, name
// uniqueness helpers, and the @symname / floater substitution used by
// templated text.
package attr

import (
	"fmt"
	"strings"
)

// Mode selects how Get treats a missing key.
type Mode int

const (
	// ModePlain returns "" for a missing key.
	ModePlain Mode = iota
	// ModeTabbed formats the result as "key=value" even when found, and
	// returns "" when missing (mirrors xschem's get_tok tabbed variant).
	ModeTabbed
)

// Get returns the value bound to key in s, or "" if absent.
func Get(s, key string) string {
	for _, tok := range parseTokens(s) {
		if tok.Key == key {
			return tok.Parsed()
		}
	}
	return ""
}

// GetMode returns the value bound to key, formatted per mode.
func GetMode(s, key string, mode Mode) string {
	v := Get(s, key)
	if mode == ModeTabbed && v != "" {
		return key + "=" + v
	}
	return v
}

// Has reports whether key is present in s.
func Has(s, key string) bool {
	for _, tok := range parseTokens(s) {
		if tok.Key == key {
			return true
		}
	}
	return false
}

// needsQuoting reports whether v must be wrapped in double quotes to remain
// a single token (contains whitespace or an embedded "=").
func needsQuoting(v string) bool {
	return strings.ContainsAny(v, " \t\r\n=\"")
}

func quoteIfNeeded(v string) string {
	if !needsQuoting(v) {
		return v
	}
	var b strings.Builder
	b.WriteByte('"')
	for i := 0; i < len(v); i++ {
		if v[i] == '"' || v[i] == '\\' {
			b.WriteByte('\\')
		}
		b.WriteByte(v[i])
	}
	b.WriteByte('"')
	return b.String()
}

// Set writes key=value into s, replacing an existing binding in place or
// appending a new "key=value" token when absent. The result is always
// well-formed.
func Set(s, key, value string) string {
	toks := parseTokens(s)
	found := false
	var b strings.Builder
	for i, tok := range toks {
		if i > 0 {
			b.WriteByte('\n')
		}
		if tok.Key == key {
			b.WriteString(key)
			b.WriteByte('=')
			b.WriteString(quoteIfNeeded(value))
			found = true
		} else {
			b.WriteString(tok.Key)
			b.WriteByte('=')
			b.WriteString(tok.Value)
		}
	}
	if !found {
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(key)
		b.WriteByte('=')
		b.WriteString(quoteIfNeeded(value))
	}
	return b.String()
}

// Subst is an alias of Set: xschem's subst_token updates-or-appends, which
// is exactly Set's behavior.
func Subst(s, key, value string) string { return Set(s, key, value) }

// Unset removes key's binding from s, if present.
func Unset(s, key string) string {
	toks := parseTokens(s)
	var b strings.Builder
	first := true
	for _, tok := range toks {
		if tok.Key == key {
			continue
		}
		if !first {
			b.WriteByte('\n')
		}
		first = false
		b.WriteString(tok.Key)
		b.WriteByte('=')
		b.WriteString(tok.Value)
	}
	return b.String()
}

// StrReplace performs a literal substring replacement of needle with
// replacement across every token value in s, used for templated
// substitution such as @symname. When escape is true,
// replacement is quoted if it would otherwise need quoting.
func StrReplace(s, needle, replacement string, escape bool) string {
	toks := parseTokens(s)
	if len(toks) == 0 {
		return strings.ReplaceAll(s, needle, replacement)
	}
	var b strings.Builder
	for i, tok := range toks {
		if i > 0 {
			b.WriteByte('\n')
		}
		v := tok.Parsed()
		v = strings.ReplaceAll(v, needle, replacement)
		b.WriteString(tok.Key)
		b.WriteByte('=')
		if escape {
			b.WriteString(quoteIfNeeded(v))
		} else {
			b.WriteString(v)
		}
	}
	return b.String()
}

// SubstSymname replaces every "@symname" occurrence in s with name, the
// substitution rule used when computing a descend child filename or a
// polymorphic clone's schematic= override.
func SubstSymname(s, name string) string {
	return StrReplace(s, "@symname", name, true)
}

// Keys returns every key currently bound in s, in order of first
// appearance.
func Keys(s string) []string {
	var keys []string
	seen := make(map[string]bool)
	for _, tok := range parseTokens(s) {
		if !seen[tok.Key] {
			seen[tok.Key] = true
			keys = append(keys, tok.Key)
		}
	}
	return keys
}

// UniqueName returns a name derived from base that does not collide with
// any string in taken, appending "_N" with increasing N starting at 1.
// Used when placing an instance to uniquify its name= property.
func UniqueName(base string, taken map[string]bool) string {
	if !taken[base] {
		return base
	}
	for n := 1; ; n++ {
		candidate := fmt.Sprintf("%s_%d", base, n)
		if !taken[candidate] {
			return candidate
		}
	}
}
