package attr

import "github.com/alecthomas/participle/v2/lexer"

// TokenLexer defines the lexical structure of xschem attribute strings:
// whitespace/newline-separated key=value tokens where the value may be a
// double-quoted string (spaces allowed) or a bare run of non-space
// characters.
var TokenLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Whitespace", Pattern: `[ \t]+`},
	{Name: "Newline", Pattern: `\r?\n`},
	{Name: "String", Pattern: `"(?:[^"\\]|\\.)*"`},
	{Name: "Equals", Pattern: `=`},
	{Name: "Bare", Pattern: `[^ \t\r\n="]+`},
})
