package parser

import (
	"lev/internal/ast"
	"lev/internal/token"
)

// parseExpr - главная точка входа для парсинга выражений:
// primary, затем precedence climbing с минимальным приоритетом 0.
func (p *Parser) parseExpr() (ast.ExprID, error) {
	lhs, err := p.parseUnaryExpr()
	if err != nil {
		return ast.NoExprID, err
	}
	return p.parseBinaryRHS(0, lhs)
}

// parseBinaryRHS сворачивает операторы с приоритетом >= minPrec в lhs.
// Если следующий оператор связывает сильнее текущего, сначала строится
// правое поддерево с порогом prec+1; равные приоритеты ассоциируются влево.
func (p *Parser) parseBinaryRHS(minPrec int, lhs ast.ExprID) (ast.ExprID, error) {
	for {
		prec, ok := getBinaryOperatorPrec(p.peek().Kind)
		if !ok || prec < minPrec {
			return lhs, nil
		}
		opTok := p.advance()

		rhs, err := p.parseUnaryExpr()
		if err != nil {
			return ast.NoExprID, err
		}
		if nextPrec, ok := getBinaryOperatorPrec(p.peek().Kind); ok && prec < nextPrec {
			rhs, err = p.parseBinaryRHS(prec+1, rhs)
			if err != nil {
				return ast.NoExprID, err
			}
		}

		span := p.exprSpan(lhs).Cover(p.exprSpan(rhs))
		lhs = p.arenas.Exprs.NewBinary(span, binaryOps[opTok.Kind], lhs, rhs)
	}
}

// parseUnaryExpr: ('-' | 'not' | '!')* primary
func (p *Parser) parseUnaryExpr() (ast.ExprID, error) {
	op, ok := getUnaryOperator(p.peek().Kind)
	if !ok {
		return p.parsePrimaryExpr()
	}
	opTok := p.advance()
	operand, err := p.parseUnaryExpr()
	if err != nil {
		return ast.NoExprID, err
	}
	span := opTok.Span.Cover(p.exprSpan(operand))
	return p.arenas.Exprs.NewUnary(span, op, operand), nil
}

func (p *Parser) parsePrimaryExpr() (ast.ExprID, error) {
	tok := p.peek()
	switch tok.Kind {
	case token.IntLit:
		return p.arenas.Exprs.NewLiteral(ast.ExprLitInt, p.advance()), nil
	case token.FloatLit:
		return p.arenas.Exprs.NewLiteral(ast.ExprLitFloat, p.advance()), nil
	case token.StringLit:
		return p.arenas.Exprs.NewLiteral(ast.ExprLitString, p.advance()), nil
	case token.KwTrue, token.KwFalse:
		return p.arenas.Exprs.NewLiteral(ast.ExprLitBool, p.advance()), nil
	case token.Ident:
		if p.peekN(1).Kind == token.LParen {
			return p.parseCallExpr()
		}
		return p.arenas.Exprs.NewIdent(p.advance()), nil
	case token.LParen:
		return p.parseGroupExpr()
	default:
		return ast.NoExprID, p.unexpected("expression")
	}
}

// parseGroupExpr: '(' expr ')'. Отдельного узла нет, скобки влияют только на дерево.
func (p *Parser) parseGroupExpr() (ast.ExprID, error) {
	p.advance() // '('
	inner, err := p.parseExpr()
	if err != nil {
		return ast.NoExprID, err
	}
	if _, err := p.expect(token.RParen); err != nil {
		return ast.NoExprID, err
	}
	return inner, nil
}

// parseCallExpr: name '(' [expr (',' expr)*] ')'
func (p *Parser) parseCallExpr() (ast.ExprID, error) {
	callee := p.advance()
	p.advance() // '('
	var args []ast.ExprID
	for !p.at(token.RParen) {
		arg, err := p.parseExpr()
		if err != nil {
			return ast.NoExprID, err
		}
		args = append(args, arg)
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	closing, err := p.expect(token.RParen)
	if err != nil {
		return ast.NoExprID, err
	}
	return p.arenas.Exprs.NewCall(callee.Span.Cover(closing.Span), callee, args), nil
}
