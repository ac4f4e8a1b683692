package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"lev/internal/source"
	"lev/internal/token"
)

type TokenOutput struct {
	Kind string `json:"kind"`
	Text string `json:"text,omitempty"`
	Line uint32 `json:"line"`
	Col  uint32 `json:"col"`
}

// FormatTokensPretty выводит токены по одному на строку:
// "  1: Ident           \"x\" at 1:5-1:6".
func FormatTokensPretty(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	for i, tok := range tokens {
		fmt.Fprintf(w, "%3d: %-15s", i+1, tok.Kind.String())
		if tok.Text != "" && !tok.IsLayout() {
			fmt.Fprintf(w, " %q", tok.Text)
		}
		if _, _, ok := locate(fs, tok.Span); ok {
			startPos, endPos := fs.Resolve(tok.Span)
			fmt.Fprintf(w, " at %d:%d-%d:%d", startPos.Line, startPos.Col, endPos.Line, endPos.Col)
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
		if tok.Kind == token.EOF {
			break
		}
	}
	return nil
}

// FormatTokensJSON выводит токены в JSON формате
func FormatTokensJSON(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	output := make([]TokenOutput, 0, len(tokens))
	for _, tok := range tokens {
		out := TokenOutput{Kind: tok.Kind.String(), Line: tok.Span.Line}
		if !tok.IsLayout() {
			out.Text = tok.Text
		}
		if _, _, ok := locate(fs, tok.Span); ok {
			start, _ := fs.Resolve(tok.Span)
			out.Line, out.Col = start.Line, start.Col
		}
		output = append(output, out)
		if tok.Kind == token.EOF {
			break
		}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

// FormatTokensCompact печатает "Kind(text)" через пробел; удобно для golden-тестов.
func FormatTokensCompact(tokens []token.Token) string {
	var out []byte
	for i, tok := range tokens {
		if i > 0 {
			out = append(out, ' ')
		}
		out = append(out, tok.Kind.String()...)
		if tok.Text != "" && !tok.IsLayout() && tok.Kind != token.EOF {
			out = append(out, '(')
			out = append(out, tok.Text...)
			out = append(out, ')')
		}
	}
	return string(out)
}
