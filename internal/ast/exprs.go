package ast

import (
	"slices"

	"lev/internal/source"
	"lev/internal/token"
)

// Exprs is the expression arena: one header per node plus a payload arena
// per variant.
type Exprs struct {
	Arena    *Arena[Expr]
	Literals *Arena[ExprLiteralData]
	Idents   *Arena[ExprIdentData]
	Unaries  *Arena[ExprUnaryData]
	Binaries *Arena[ExprBinaryData]
	Calls    *Arena[ExprCallData]
}

func NewExprs(capHint uint) *Exprs {
	if capHint == 0 {
		capHint = 1 << 8
	}
	return &Exprs{
		Arena:    NewArena[Expr](capHint),
		Literals: NewArena[ExprLiteralData](capHint),
		Idents:   NewArena[ExprIdentData](capHint),
		Unaries:  NewArena[ExprUnaryData](capHint / 4),
		Binaries: NewArena[ExprBinaryData](capHint),
		Calls:    NewArena[ExprCallData](capHint / 4),
	}
}

func (e *Exprs) push(kind ExprKind, span source.Span, payload uint32) ExprID {
	return ExprID(e.Arena.Allocate(Expr{Kind: kind, Span: span, Payload: PayloadID(payload)}))
}

func (e *Exprs) Get(id ExprID) *Expr { return e.Arena.Get(uint32(id)) }

// header returns the payload id of id when it is a kind node.
func (e *Exprs) header(id ExprID, kind ExprKind) (PayloadID, bool) {
	if x := e.Get(id); x != nil && x.Kind == kind {
		return x.Payload, true
	}
	return NoPayloadID, false
}

func (e *Exprs) NewLiteral(kind ExprLitKind, tok token.Token) ExprID {
	return e.push(ExprLit, tok.Span, e.Literals.Allocate(ExprLiteralData{Kind: kind, Token: tok}))
}

func (e *Exprs) NewIdent(name token.Token) ExprID {
	return e.push(ExprIdent, name.Span, e.Idents.Allocate(ExprIdentData{Name: name}))
}

func (e *Exprs) NewUnary(span source.Span, op ExprUnaryOp, operand ExprID) ExprID {
	return e.push(ExprUnary, span, e.Unaries.Allocate(ExprUnaryData{Op: op, Operand: operand}))
}

func (e *Exprs) NewBinary(span source.Span, op ExprBinaryOp, left, right ExprID) ExprID {
	return e.push(ExprBinary, span, e.Binaries.Allocate(ExprBinaryData{Op: op, Left: left, Right: right}))
}

// NewCall copies args; the parser reuses its scratch slice.
func (e *Exprs) NewCall(span source.Span, callee token.Token, args []ExprID) ExprID {
	return e.push(ExprCall, span, e.Calls.Allocate(ExprCallData{Callee: callee, Args: slices.Clone(args)}))
}

func (e *Exprs) Literal(id ExprID) (*ExprLiteralData, bool) {
	pid, ok := e.header(id, ExprLit)
	return variantOf(e.Literals, pid, ok)
}

func (e *Exprs) Ident(id ExprID) (*ExprIdentData, bool) {
	pid, ok := e.header(id, ExprIdent)
	return variantOf(e.Idents, pid, ok)
}

func (e *Exprs) Unary(id ExprID) (*ExprUnaryData, bool) {
	pid, ok := e.header(id, ExprUnary)
	return variantOf(e.Unaries, pid, ok)
}

func (e *Exprs) Binary(id ExprID) (*ExprBinaryData, bool) {
	pid, ok := e.header(id, ExprBinary)
	return variantOf(e.Binaries, pid, ok)
}

func (e *Exprs) Call(id ExprID) (*ExprCallData, bool) {
	pid, ok := e.header(id, ExprCall)
	return variantOf(e.Calls, pid, ok)
}
