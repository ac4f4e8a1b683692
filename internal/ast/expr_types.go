package ast

import (
	"lev/internal/source"
	"lev/internal/token"
)

// ExprKind tags an expression header; the zero value is not a valid kind.
type ExprKind uint8

const (
	ExprLit ExprKind = iota + 1
	ExprIdent
	ExprUnary
	ExprBinary
	ExprCall
)

var exprKindNames = [...]string{
	ExprLit:    "Literal",
	ExprIdent:  "Identifier",
	ExprUnary:  "Unary",
	ExprBinary: "Binary",
	ExprCall:   "Call",
}

func (k ExprKind) String() string {
	if k == 0 || int(k) >= len(exprKindNames) {
		return "Expr(?)"
	}
	return exprKindNames[k]
}

// Expr is the arena header of an expression; variant data lives in Payload.
type Expr struct {
	Kind    ExprKind
	Span    source.Span
	Payload PayloadID
}

// ExprBinaryOp is an infix operator. Order matters: comparisons form one
// contiguous range.
type ExprBinaryOp uint8

const (
	ExprBinaryAdd ExprBinaryOp = iota
	ExprBinarySub
	ExprBinaryMul
	ExprBinaryDiv

	ExprBinaryEq
	ExprBinaryNotEq
	ExprBinaryLess
	ExprBinaryLessEq
	ExprBinaryGreater
	ExprBinaryGreaterEq

	ExprBinaryLogicalAnd
	ExprBinaryLogicalOr
)

var binaryOpText = [...]string{
	ExprBinaryAdd: "+", ExprBinarySub: "-", ExprBinaryMul: "*", ExprBinaryDiv: "/",
	ExprBinaryEq: "==", ExprBinaryNotEq: "!=",
	ExprBinaryLess: "<", ExprBinaryLessEq: "<=", ExprBinaryGreater: ">", ExprBinaryGreaterEq: ">=",
	ExprBinaryLogicalAnd: "and", ExprBinaryLogicalOr: "or",
}

// String is the source spelling.
func (op ExprBinaryOp) String() string {
	if int(op) < len(binaryOpText) {
		return binaryOpText[op]
	}
	return "?"
}

// IsComparison: bool result from two operands of the same type.
func (op ExprBinaryOp) IsComparison() bool {
	return ExprBinaryEq <= op && op <= ExprBinaryGreaterEq
}

func (op ExprBinaryOp) IsLogical() bool {
	return op == ExprBinaryLogicalAnd || op == ExprBinaryLogicalOr
}

// ExprUnaryOp is a prefix operator.
type ExprUnaryOp uint8

const (
	ExprUnaryMinus ExprUnaryOp = iota // -
	ExprUnaryNot                      // not, !
)

func (op ExprUnaryOp) String() string {
	switch op {
	case ExprUnaryMinus:
		return "-"
	case ExprUnaryNot:
		return "not"
	}
	return "?"
}

// ExprLitKind classifies literal tokens.
type ExprLitKind uint8

const (
	ExprLitInt ExprLitKind = iota
	ExprLitFloat
	ExprLitString
	ExprLitBool
)

type ExprLiteralData struct {
	Kind  ExprLitKind
	Token token.Token
}

type ExprIdentData struct{ Name token.Token }

type ExprUnaryData struct {
	Op      ExprUnaryOp
	Operand ExprID
}

type ExprBinaryData struct {
	Op          ExprBinaryOp
	Left, Right ExprID
}

type ExprCallData struct {
	Callee token.Token
	Args   []ExprID
}
