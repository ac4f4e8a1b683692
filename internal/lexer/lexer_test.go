package lexer_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/nalgeon/be"

	"lev/internal/lexer"
	"lev/internal/source"
	"lev/internal/token"
)

func makeTestFile(input string) *source.File {
	fs := source.NewFileSet()
	return fs.Get(fs.AddVirtual("test.lev", []byte(input)))
}

func tokenize(t *testing.T, input string) []token.Token {
	t.Helper()
	toks, err := lexer.Tokenize(makeTestFile(input))
	if err != nil {
		t.Fatalf("Tokenize(%q): %v", input, err)
	}
	return toks
}

func lexError(t *testing.T, input string) *lexer.Error {
	t.Helper()
	_, err := lexer.Tokenize(makeTestFile(input))
	var lexErr *lexer.Error
	if !errors.As(err, &lexErr) {
		t.Fatalf("Tokenize(%q): expected *lexer.Error, got %v", input, err)
	}
	return lexErr
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, tok := range toks {
		out[i] = tok.Kind
	}
	return out
}

func tokensToString(tokens []token.Token) string {
	parts := make([]string, len(tokens))
	for i, tok := range tokens {
		parts[i] = fmt.Sprintf("%v(%q)", tok.Kind, tok.Text)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// expectTokens проверяет последовательность токенов, включая EOF
func expectTokens(t *testing.T, input string, expected ...token.Kind) {
	t.Helper()
	toks := tokenize(t, input)
	got := kinds(toks)
	if len(got) != len(expected) {
		t.Fatalf("expected %d tokens, got %d\ninput: %q\ntokens: %s",
			len(expected), len(got), input, tokensToString(toks))
	}
	for i := range got {
		if got[i] != expected[i] {
			t.Errorf("token %d: expected %v, got %v\ntokens: %s", i, expected[i], got[i], tokensToString(toks))
		}
	}
}

func TestFunctionSample(t *testing.T) {
	src := "fn main() -> i32:\n  let variable: i32 = 5\n  return variable\n"
	expectTokens(t, src,
		token.KwFn, token.Ident, token.LParen, token.RParen, token.Arrow, token.Ident, token.Colon, token.Newline,
		token.Indent,
		token.KwLet, token.Ident, token.Colon, token.Ident, token.Assign, token.IntLit, token.Newline,
		token.KwReturn, token.Ident, token.Newline,
		token.Dedent,
		token.EOF,
	)
}

func TestOperators(t *testing.T) {
	expectTokens(t, "== != >= <= += -= *= /= -> + - * / = ! < > : , ; ( )",
		token.EqEq, token.BangEq, token.GtEq, token.LtEq,
		token.PlusAssign, token.MinusAssign, token.StarAssign, token.SlashAssign, token.Arrow,
		token.Plus, token.Minus, token.Star, token.Slash, token.Assign, token.Bang,
		token.Lt, token.Gt, token.Colon, token.Comma, token.Semicolon, token.LParen, token.RParen,
		token.Newline, token.EOF,
	)
	// без пробелов: "a-=-1" -> a, -=, -, 1
	expectTokens(t, "a-=-1", token.Ident, token.MinusAssign, token.Minus, token.IntLit, token.Newline, token.EOF)
	expectTokens(t, "x=>y", token.Ident, token.Assign, token.Gt, token.Ident, token.Newline, token.EOF)
}

func TestKeywordsAndIdentifiers(t *testing.T) {
	toks := tokenize(t, "let mut lettuce and or not true false _tmp x1 переменная")
	be.Equal(t, kinds(toks), []token.Kind{
		token.KwLet, token.KwMut, token.Ident, token.KwAnd, token.KwOr, token.KwNot,
		token.KwTrue, token.KwFalse, token.Ident, token.Ident, token.Ident,
		token.Newline, token.EOF,
	})
	be.Equal(t, toks[2].Text, "lettuce")
	be.Equal(t, toks[10].Text, "переменная")
}

func TestNumbers(t *testing.T) {
	tests := []struct {
		input string
		kind  token.Kind
	}{
		{"0", token.IntLit},
		{"12345", token.IntLit},
		{"3.14", token.FloatLit},
		{"3.", token.FloatLit},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			toks := tokenize(t, tt.input)
			be.Equal(t, toks[0].Kind, tt.kind)
			be.Equal(t, toks[0].Text, tt.input)
		})
	}
}

func TestRedundantDecimalPoint(t *testing.T) {
	err := lexError(t, "let x = 1.2.3")
	be.Equal(t, err.Kind, lexer.RedundantDecimalPoint)
	// вторая точка: "let x = 1.2" занимает 11 байт
	be.Equal(t, err.Span.Start, uint32(11))
	be.Equal(t, err.Span.End, uint32(12))
	be.Equal(t, err.Span.Line, uint32(1))
}

func TestStrings(t *testing.T) {
	toks := tokenize(t, `"hello \"lev\""`)
	be.Equal(t, toks[0].Kind, token.StringLit)
	be.Equal(t, toks[0].Text, `"hello \"lev\""`)
}

func TestUnterminatedStringAnchoredAtOpeningQuote(t *testing.T) {
	for _, input := range []string{`let s = "abc`, "let s = \"abc\nlet t = 1"} {
		err := lexError(t, input)
		be.Equal(t, err.Kind, lexer.UnterminatedString)
		be.Equal(t, err.Span.Start, uint32(8))
		be.Equal(t, err.Span.End, uint32(9))
	}
}

func TestUnexpectedCharacter(t *testing.T) {
	err := lexError(t, "let a = 1\nlet b = $")
	be.Equal(t, err.Kind, lexer.UnexpectedCharacter)
	be.Equal(t, err.Char, '$')
	be.Equal(t, err.Span.Line, uint32(2))

	err = lexError(t, "let a = 1 · 2")
	be.Equal(t, err.Char, '·')

	// одиночная точка не начинает число
	err = lexError(t, ".5")
	be.Equal(t, err.Char, '.')
}

func TestComments(t *testing.T) {
	expectTokens(t, "// header\nlet a = 1 // trailing\n// tail",
		token.KwLet, token.Ident, token.Assign, token.IntLit, token.Newline, token.EOF)
	// "//" внутри выражения не путается с делением
	expectTokens(t, "a / b", token.Ident, token.Slash, token.Ident, token.Newline, token.EOF)
}

func TestNestedIndentation(t *testing.T) {
	src := strings.Join([]string{
		"fn f() -> i32:",
		"    if a:",
		"        if b:",
		"            return 1",
		"    return 2",
	}, "\n")
	expectTokens(t, src,
		token.KwFn, token.Ident, token.LParen, token.RParen, token.Arrow, token.Ident, token.Colon, token.Newline,
		token.Indent, token.KwIf, token.Ident, token.Colon, token.Newline,
		token.Indent, token.KwIf, token.Ident, token.Colon, token.Newline,
		token.Indent, token.KwReturn, token.IntLit, token.Newline,
		token.Dedent, token.Dedent, token.KwReturn, token.IntLit, token.Newline,
		token.Dedent, token.EOF,
	)
}

func TestTabCountsAsFourColumns(t *testing.T) {
	// таб и четыре пробела - один уровень
	src := "fn f() -> i32:\n\tlet a = 1\n    return a\n"
	toks := tokenize(t, src)
	var indents, dedents int
	for _, tok := range toks {
		switch tok.Kind {
		case token.Indent:
			indents++
		case token.Dedent:
			dedents++
		}
	}
	be.Equal(t, indents, 1)
	be.Equal(t, dedents, 1)
}

func TestBlankAndCommentLinesKeepIndentation(t *testing.T) {
	src := "fn f() -> i32:\n    let a = 1\n\n// left margin comment\n        \n    return a\n"
	expectTokens(t, src,
		token.KwFn, token.Ident, token.LParen, token.RParen, token.Arrow, token.Ident, token.Colon, token.Newline,
		token.Indent, token.KwLet, token.Ident, token.Assign, token.IntLit, token.Newline,
		token.KwReturn, token.Ident, token.Newline,
		token.Dedent, token.EOF,
	)
}

func TestIndentBalance(t *testing.T) {
	sources := []string{
		"",
		"let a = 1",
		"fn f() -> i32:\n  return 1",
		"fn f() -> i32:\n  if a:\n    if b:\n      if c:\n        return 1\n  return 2\n",
		"fn f() -> i32:\n  if a:\n    return 1\n  else if b:\n    return 2\n  else:\n    return 3\n\n\n",
		"fn a() -> i32:\n\treturn 1\nfn b() -> i32:\n\t\treturn 2\n",
	}
	for _, src := range sources {
		lx := lexer.New(makeTestFile(src))
		var indents, dedents int
		for {
			tok, err := lx.Next()
			be.Err(t, err, nil)
			if tok.Kind == token.Indent {
				indents++
			}
			if tok.Kind == token.Dedent {
				dedents++
			}
			if tok.Kind == token.EOF {
				break
			}
		}
		be.Equal(t, indents, dedents)
		be.Equal(t, lx.Depth(), 0)
	}
}

func TestInconsistentDedentFails(t *testing.T) {
	src := "fn f() -> i32:\n    if a:\n        return 1\n  return 2\n"
	err := lexError(t, src)
	be.Equal(t, err.Kind, lexer.UnexpectedCharacter)
	be.Equal(t, err.Span.Line, uint32(4))
}

func TestNextAfterEOF(t *testing.T) {
	lx := lexer.New(makeTestFile("a"))
	for range 3 {
		_, err := lx.Next()
		be.Err(t, err, nil)
	}
	for range 2 {
		tok, err := lx.Next()
		be.Err(t, err, nil)
		be.Equal(t, tok.Kind, token.EOF)
	}
}

func TestSpansMatchText(t *testing.T) {
	src := "fn add(a: i32, b: i32) -> i32:\n  return a + b * 2\n"
	file := makeTestFile(src)
	toks, err := lexer.Tokenize(file)
	be.Err(t, err, nil)
	for _, tok := range toks {
		if tok.IsLayout() || tok.Kind == token.EOF {
			continue
		}
		be.Equal(t, string(file.Content[tok.Span.Start:tok.Span.End]), tok.Text)
	}
	be.Equal(t, toks[len(toks)-4].Span.Line, uint32(2))
}
