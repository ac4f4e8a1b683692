package parser_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"lev/internal/ast"
	"lev/internal/lexer"
	"lev/internal/parser"
	"lev/internal/source"
)

func parseSource(t *testing.T, src string) (*ast.Builder, []ast.StmtID) {
	t.Helper()
	b, stmts, err := tryParse(t, src)
	if err != nil {
		t.Fatalf("Parse(%q): %v", src, err)
	}
	return b, stmts
}

func tryParse(t *testing.T, src string) (*ast.Builder, []ast.StmtID, error) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.lev", []byte(src)))
	toks, err := lexer.Tokenize(file)
	if err != nil {
		t.Fatalf("Tokenize(%q): %v", src, err)
	}
	b := ast.NewBuilder(ast.Hints{})
	stmts, err := parser.Parse(toks, b)
	return b, stmts, err
}

func parseError(t *testing.T, src string) *parser.Error {
	t.Helper()
	_, _, err := tryParse(t, src)
	var perr *parser.Error
	if !errors.As(err, &perr) {
		t.Fatalf("Parse(%q): expected *parser.Error, got %v", src, err)
	}
	return perr
}

// parseExprSource разбирает выражение через `let e = <expr>`.
func parseExprSource(t *testing.T, expr string) (*ast.Builder, ast.ExprID) {
	t.Helper()
	b, stmts := parseSource(t, "let e = "+expr)
	decl, ok := b.Stmts.VarDecl(stmts[0])
	if !ok {
		t.Fatalf("expected variable declaration")
	}
	return b, decl.Init
}

// sexpr печатает выражение со всеми скобками: (+ (+ 1 3) (* 2 2)).
func sexpr(b *ast.Builder, id ast.ExprID) string {
	expr := b.Exprs.Get(id)
	switch expr.Kind {
	case ast.ExprLit:
		lit, _ := b.Exprs.Literal(id)
		return lit.Token.Text
	case ast.ExprIdent:
		ident, _ := b.Exprs.Ident(id)
		return ident.Name.Text
	case ast.ExprUnary:
		u, _ := b.Exprs.Unary(id)
		return fmt.Sprintf("(%s %s)", u.Op, sexpr(b, u.Operand))
	case ast.ExprBinary:
		bin, _ := b.Exprs.Binary(id)
		return fmt.Sprintf("(%s %s %s)", bin.Op, sexpr(b, bin.Left), sexpr(b, bin.Right))
	case ast.ExprCall:
		call, _ := b.Exprs.Call(id)
		parts := []string{call.Callee.Text}
		for _, a := range call.Args {
			parts = append(parts, sexpr(b, a))
		}
		return "(call " + strings.Join(parts, " ") + ")"
	default:
		return "?"
	}
}
