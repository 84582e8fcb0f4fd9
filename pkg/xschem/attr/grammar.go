package attr

import (
	"github.com/alecthomas/participle/v2"
)

// token is one key=value pair as parsed out of an attribute string. Value
// is the raw captured text, quotes (if any) still attached; Parsed() strips
// them.
type token struct {
	Key   string `@Bare "="`
	Value string `@(String|Bare)`
}

// tokenFile is the whole attribute string: a flat list of key=value pairs.
// Keys with no "=" at all (bare flags) are represented as a token whose
// Value is empty; attribute strings are conventionally well-formed
// key=value text, but parsing degrades gracefully (see parseTokens).
type tokenFile struct {
	Tokens []*token `(@@)*`
}

var tokenParser = participle.MustBuild[tokenFile](
	participle.Lexer(TokenLexer),
	participle.Elide("Whitespace", "Newline"),
)

// Parsed returns the token's value with surrounding double quotes (and
// backslash escapes) removed, if present.
func (t *token) Parsed() string {
	v := t.Value
	if len(v) >= 2 && v[0] == '"' && v[len(v)-1] == '"' {
		v = v[1 : len(v)-1]
		v = unescape(v)
	}
	return v
}

func unescape(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			i++
		}
		out = append(out, s[i])
	}
	return string(out)
}

// parseTokens tokenizes an attribute string via the participle grammar,
// falling back to an empty token list (rather than failing the caller) on
// malformed input; attribute engine operations must never error out, since
// malformed attributes are non-fatal.
func parseTokens(s string) []*token {
	if s == "" {
		return nil
	}
	f, err := tokenParser.ParseString("", s)
	if err != nil {
		return scanFallback(s)
	}
	return f.Tokens
}

// scanFallback does a best-effort manual split when the participle grammar
// rejects malformed text (e.g. an unterminated quote), so callers still get
// whatever well-formed prefix tokens exist.
func scanFallback(s string) []*token {
	var out []*token
	for _, field := range splitFields(s) {
		eq := indexByte(field, '=')
		if eq < 0 {
			continue
		}
		out = append(out, &token{Key: field[:eq], Value: field[eq+1:]})
	}
	return out
}

func splitFields(s string) []string {
	var fields []string
	start := -1
	inQuote := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '"' {
			inQuote = !inQuote
		}
		if !inQuote && (c == ' ' || c == '\t' || c == '\n' || c == '\r') {
			if start >= 0 {
				fields = append(fields, s[start:i])
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		fields = append(fields, s[start:])
	}
	return fields
}

func indexByte(s string, b byte) int {
	for i := 0; i < len(s); i++ {
		if s[i] == b {
			return i
		}
	}
	return -1
}
