package testkit

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/nalgeon/be"

	"lev/internal/ast"
	"lev/internal/lexer"
	"lev/internal/parser"
	"lev/internal/source"
	"lev/internal/token"
)

func TestGoldenCases(t *testing.T) {
	files, err := filepath.Glob(filepath.Join("..", "..", "testdata", "*.md"))
	be.Err(t, err, nil)
	be.True(t, len(files) > 0)

	for _, file := range files {
		cases, err := LoadFile(file)
		if err != nil {
			t.Fatal(err)
		}
		for _, tc := range cases {
			t.Run(filepath.Base(file)+"/"+tc.Name, func(t *testing.T) {
				failures, err := Run(context.Background(), tc)
				if err != nil {
					t.Fatalf("%s:%d: %v", tc.File, tc.Line, err)
				}
				for _, f := range failures {
					t.Errorf("%s: %v", tc.File, f)
				}
			})
		}
	}
}

const doc = "# Title\n\n" +
	"```\nplain fence is ignored\n```\n\n" +
	"## Test: first\n\n" +
	"```lev-program\nfn main() -> i32:\n    return 1\n```\n\n" +
	"```execute\n1:i32\n```\n\n" +
	"## Test: second\n\n" +
	"```lev-program\nlet x = 1\n```\n\n" +
	"```tokens\nKwLet(let) Ident(x) Assign(=) IntLit(1) Newline EOF\n```\n"

func TestExtractTestCases(t *testing.T) {
	cases, err := ExtractTestCases([]byte(doc))
	be.Err(t, err, nil)
	be.Equal(t, len(cases), 2)

	be.Equal(t, cases[0].Name, "first")
	be.Equal(t, cases[0].Program, "fn main() -> i32:\n    return 1\n")
	be.Equal(t, cases[0].Assertions, []Assertion{{Type: AssertExecute, Content: "1:i32", Line: 15}})
	be.Equal(t, cases[1].Assertions[0].Type, AssertTokens)
}

func TestExtractTestCasesErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"fence outside", "```execute\n1\n```\n", "fence found outside of test case"},
		{"unknown fence", "## Test: a\n\n```lev-program\nx\n```\n\n```wasm\n1\n```\n", "unknown fence language 'wasm'"},
		{"no program", "## Test: a\n\n```execute\n1\n```\n", "has no lev-program fence"},
		{"no assertions", "## Test: a\n\n```lev-program\nx\n```\n", "has no assertion fences"},
		{"two programs", "## Test: a\n\n```lev-program\nx\n```\n\n```lev-program\ny\n```\n", "multiple lev-program fences"},
		{"execute and error", "## Test: a\n\n```lev-program\nx\n```\n\n```execute\n1\n```\n\n```compile-error\nok\n```\n", "mixes execute and compile-error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ExtractTestCases([]byte(tt.doc))
			be.Err(t, err, tt.want)
		})
	}
}

func TestRunReportsMismatch(t *testing.T) {
	tc := TestCase{
		Name:    "wrong",
		Program: "fn main() -> i32:\n    return 2 + 2\n",
		Assertions: []Assertion{
			{Type: AssertExecute, Content: "5:i32", Line: 7},
			{Type: AssertCompileError, Content: "ok", Line: 9},
		},
	}
	failures, err := Run(context.Background(), tc)
	be.Err(t, err, nil)
	be.Equal(t, len(failures), 1)
	be.Equal(t, failures[0].Got, "4:i32")
	be.Err(t, failures[0], "line 7: execute mismatch")
}

func TestRunExecuteOnCompileError(t *testing.T) {
	tc := TestCase{
		Name:       "broken",
		Program:    "fn main() -> i32:\n    return y\n",
		Assertions: []Assertion{{Type: AssertExecute, Content: "0:i32"}},
	}
	failures, err := Run(context.Background(), tc)
	be.Err(t, err, nil)
	be.Equal(t, failures[0].Got, "compile error: SEM3001 2:12 undefined variable 'y'")
}

func parse(t *testing.T, src string) (*ast.Builder, []ast.StmtID, *source.File) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("inv.lev", []byte(src)))
	toks, err := lexer.Tokenize(file)
	be.Err(t, err, nil)
	b := ast.NewBuilder(ast.Hints{})
	stmts, err := parser.Parse(toks, b)
	be.Err(t, err, nil)
	return b, stmts, file
}

func TestSpanInvariantsHold(t *testing.T) {
	b, stmts, file := parse(t, "fn f(a: i32) -> i32:\n    let mut x = (a + 1) * -2\n    x -= f(x)\n    if x > 0 and not false:\n        return x\n    return 0\n")
	be.Err(t, CheckSpanInvariants(b, stmts, file), nil)
}

func TestSpanInvariantsCatchBrokenSpans(t *testing.T) {
	b, stmts, file := parse(t, "fn f() -> i32:\n    return 1 + 2\n")

	// операнд за пределами родительского выражения
	id := b.Exprs.NewLiteral(ast.ExprLitInt, token.Token{Kind: token.IntLit, Span: source.Span{File: file.ID, Start: 0, End: 1, Line: 1}, Text: "9"})
	stray := b.Stmts.NewReturn(source.Span{File: file.ID, Start: 30, End: 31, Line: 3}, id)
	be.Err(t, CheckSpanInvariants(b, []ast.StmtID{stmts[0], stray}, file), "does not cover expression")

	outOfOrder := []ast.StmtID{stray, stmts[0]}
	be.Err(t, CheckSpanInvariants(b, outOfOrder, file), "is not after")

	be.Err(t, CheckSpanInvariants(nil, stmts, file), "nil builder or file")
}

func TestErrorGoldenFileLoads(t *testing.T) {
	cases, err := LoadFile(filepath.Join("..", "..", "testdata", "errors.md"))
	be.Err(t, err, nil)
	byName := make(map[string]TestCase, len(cases))
	for _, tc := range cases {
		byName[tc.Name] = tc
	}
	tc, ok := byName["mutable variable accepts assignment"]
	be.True(t, ok)
	be.Equal(t, len(tc.Assertions), 1)
	be.Equal(t, tc.Assertions[0].Type, AssertExecute)
	be.True(t, len(cases) > 1)
}

func TestMixedExecuteAndCompileErrorRejected(t *testing.T) {
	src := "## Test: mixed\n\n" +
		"```lev-program\nfn main() -> i32:\n    return 1\n```\n\n" +
		"```compile-error\nok\n```\n\n" +
		"```execute\n1:i32\n```\n"
	_, err := ExtractTestCases([]byte(src))
	be.Err(t, err, "mixes execute and compile-error")
}
