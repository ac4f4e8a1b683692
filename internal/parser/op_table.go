package parser

import (
	"lev/internal/ast"
	"lev/internal/token"
)

// Таблица приоритетов для бинарных операторов.
// Чем больше число, тем выше приоритет; промежутки оставлены под новые операторы.
const (
	precLogicalOr      = 3  // or
	precLogicalAnd     = 5  // and
	precComparison     = 10 // == != < <= > >=
	precAdditive       = 20 // + -
	precMultiplicative = 40 // * /
)

// getBinaryOperatorPrec возвращает приоритет оператора и false, если токен не бинарный оператор.
func getBinaryOperatorPrec(kind token.Kind) (int, bool) {
	switch kind {
	case token.KwOr:
		return precLogicalOr, true
	case token.KwAnd:
		return precLogicalAnd, true
	case token.EqEq, token.BangEq, token.Lt, token.LtEq, token.Gt, token.GtEq:
		return precComparison, true
	case token.Plus, token.Minus:
		return precAdditive, true
	case token.Star, token.Slash:
		return precMultiplicative, true
	default:
		return -1, false
	}
}

var binaryOps = map[token.Kind]ast.ExprBinaryOp{
	token.Plus:   ast.ExprBinaryAdd,
	token.Minus:  ast.ExprBinarySub,
	token.Star:   ast.ExprBinaryMul,
	token.Slash:  ast.ExprBinaryDiv,
	token.EqEq:   ast.ExprBinaryEq,
	token.BangEq: ast.ExprBinaryNotEq,
	token.Lt:     ast.ExprBinaryLess,
	token.LtEq:   ast.ExprBinaryLessEq,
	token.Gt:     ast.ExprBinaryGreater,
	token.GtEq:   ast.ExprBinaryGreaterEq,
	token.KwAnd:  ast.ExprBinaryLogicalAnd,
	token.KwOr:   ast.ExprBinaryLogicalOr,
}

// compoundAssignOps: `x op= e` разворачивается в `x = x op e`.
var compoundAssignOps = map[token.Kind]ast.ExprBinaryOp{
	token.PlusAssign:  ast.ExprBinaryAdd,
	token.MinusAssign: ast.ExprBinarySub,
	token.StarAssign:  ast.ExprBinaryMul,
	token.SlashAssign: ast.ExprBinaryDiv,
}

// getUnaryOperator возвращает тип унарного оператора для токена
func getUnaryOperator(kind token.Kind) (ast.ExprUnaryOp, bool) {
	switch kind {
	case token.Minus:
		return ast.ExprUnaryMinus, true
	case token.KwNot, token.Bang:
		return ast.ExprUnaryNot, true
	default:
		return 0, false
	}
}
