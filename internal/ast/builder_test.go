package ast

import (
	"testing"

	"github.com/nalgeon/be"

	"lev/internal/source"
	"lev/internal/token"
	"lev/internal/types"
)

func ident(name string) token.Token {
	return token.Token{Kind: token.Ident, Text: name}
}

func intLit(text string) token.Token {
	return token.Token{Kind: token.IntLit, Text: text}
}

func TestArenaIsOneBased(t *testing.T) {
	a := NewArena[int](0)
	be.Equal(t, a.Get(0), (*int)(nil))
	id := a.Allocate(42)
	be.Equal(t, id, uint32(1))
	be.Equal(t, *a.Get(id), 42)
	be.Equal(t, a.Get(2), (*int)(nil))
	be.Equal(t, a.Len(), uint32(1))
}

func TestExprAccessorsCheckKind(t *testing.T) {
	b := NewBuilder(Hints{})
	one := b.Exprs.NewLiteral(ExprLitInt, intLit("1"))
	x := b.Exprs.NewIdent(ident("x"))
	sum := b.Exprs.NewBinary(source.Span{}, ExprBinaryAdd, one, x)

	bin, ok := b.Exprs.Binary(sum)
	be.True(t, ok)
	be.Equal(t, bin.Left, one)
	be.Equal(t, bin.Right, x)

	_, ok = b.Exprs.Binary(one)
	be.True(t, !ok)
	_, ok = b.Exprs.Ident(NoExprID)
	be.True(t, !ok)

	lit, ok := b.Exprs.Literal(one)
	be.True(t, ok)
	be.Equal(t, lit.Token.Text, "1")
	be.Equal(t, b.ExprChildren(sum), []ExprID{one, x})
}

func TestControlChildrenInSourceOrder(t *testing.T) {
	b := NewBuilder(Hints{})
	a := b.Exprs.NewIdent(ident("a"))
	c := b.Exprs.NewIdent(ident("c"))
	thenBlk := b.Stmts.NewBlock(source.Span{}, nil)
	elifBlk := b.Stmts.NewBlock(source.Span{}, nil)
	elseBlk := b.Stmts.NewBlock(source.Span{}, nil)
	ctl := b.Stmts.NewControl(source.Span{}, StmtControlData{
		If:      Branch{Cond: a, Body: thenBlk},
		ElseIfs: []Branch{{Cond: c, Body: elifBlk}},
		Else:    elseBlk,
	})

	stmts, exprs := b.StmtChildren(ctl)
	be.Equal(t, stmts, []StmtID{thenBlk, elifBlk, elseBlk})
	be.Equal(t, exprs, []ExprID{a, c})
}

func TestVarDeclPayload(t *testing.T) {
	b := NewBuilder(Hints{})
	init := b.Exprs.NewLiteral(ExprLitInt, intLit("5"))
	id := b.Stmts.NewVarDecl(source.Span{}, StmtVarDeclData{
		Name: ident("v"), Type: types.TypeI32, Init: init, Mutable: true,
	})
	d, ok := b.Stmts.VarDecl(id)
	be.True(t, ok)
	be.Equal(t, d.Type, types.TypeI32)
	be.True(t, d.Mutable)
	be.Equal(t, b.Stmts.Get(id).Kind, StmtVarDecl)
	be.Equal(t, b.Stmts.Get(id).Kind.String(), "VariableDeclaration")
}

func TestOperatorSpelling(t *testing.T) {
	be.Equal(t, ExprBinaryLessEq.String(), "<=")
	be.Equal(t, ExprBinaryLogicalOr.String(), "or")
	be.Equal(t, ExprBinaryOp(200).String(), "?")
	be.True(t, ExprBinaryGreater.IsComparison())
	be.True(t, !ExprBinaryLogicalAnd.IsComparison())
	be.Equal(t, ExprCall.String(), "Call")
	be.Equal(t, ExprKind(0).String(), "Expr(?)")
}
