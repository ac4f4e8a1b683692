// Package token defines lexical token kinds for the lev compiler.
// Invariants:
//   - Token.Text is the exact lexeme; Token.Span covers it and never crosses a line.
//   - Layout tokens (Newline, Indent, Dedent) carry an empty or whitespace Text.
//   - Built-in type names (i32, u8, f64, bool, ...) are identifiers.
//     They are recognized by the parser, not the lexer.
package token
