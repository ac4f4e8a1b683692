package parser

import (
	"lev/internal/ast"
	"lev/internal/source"
	"lev/internal/token"
)

// parseStatement разбирает оператор внутри блока или на верхнем уровне.
func (p *Parser) parseStatement() (ast.StmtID, error) {
	switch p.peek().Kind {
	case token.KwLet:
		return p.parseLetStmt()
	case token.KwReturn:
		return p.parseReturnStmt()
	case token.KwIf:
		return p.parseControlStmt()
	case token.Ident:
		return p.parseAssignStmt()
	case token.KwFn:
		return ast.NoStmtID, p.unimplemented("nested function declaration")
	case token.KwWhile:
		return ast.NoStmtID, p.unimplemented("'while' loop")
	case token.KwFor:
		return ast.NoStmtID, p.unimplemented("'for' loop")
	case token.KwBreak:
		return ast.NoStmtID, p.unimplemented("'break' statement")
	case token.KwClass:
		return ast.NoStmtID, p.unimplemented("class declaration")
	case token.KwImpl:
		return ast.NoStmtID, p.unimplemented("impl block")
	default:
		return ast.NoStmtID, p.unexpected("statement")
	}
}

// endSimpleStmt: простой оператор заканчивается концом строки.
func (p *Parser) endSimpleStmt() error {
	_, err := p.expect(token.Newline)
	return err
}

// parseReturnStmt: 'return' [expr]
func (p *Parser) parseReturnStmt() (ast.StmtID, error) {
	kw := p.advance()
	span := kw.Span
	value := ast.NoExprID
	if !p.atOr(token.Newline, token.Dedent, token.EOF) {
		var err error
		if value, err = p.parseExpr(); err != nil {
			return ast.NoStmtID, err
		}
		span = span.Cover(p.exprSpan(value))
	}
	if err := p.endSimpleStmt(); err != nil {
		return ast.NoStmtID, err
	}
	return p.arenas.Stmts.NewReturn(span, value), nil
}

// parseAssignStmt: name ('=' | '+=' | '-=' | '*=' | '/=') expr
func (p *Parser) parseAssignStmt() (ast.StmtID, error) {
	name := p.advance()
	opTok := p.peek()
	compound, isCompound := compoundAssignOps[opTok.Kind]
	if opTok.Kind != token.Assign && !isCompound {
		return ast.NoStmtID, &Error{
			Kind:     UnexpectedToken,
			Got:      opTok,
			Expected: token.Assign,
			Span:     p.getDiagnosticSpan(),
		}
	}
	p.advance()

	value, err := p.parseExpr()
	if err != nil {
		return ast.NoStmtID, err
	}
	span := name.Span.Cover(p.exprSpan(value))
	if isCompound {
		current := p.arenas.Exprs.NewIdent(name)
		value = p.arenas.Exprs.NewBinary(span, compound, current, value)
	}
	if err := p.endSimpleStmt(); err != nil {
		return ast.NoStmtID, err
	}
	return p.arenas.Stmts.NewAssign(span, ast.StmtAssignData{Name: name, Value: value}), nil
}

// parseBlock: NEWLINE INDENT stmt+ DEDENT. Двоеточие съедает вызывающий.
func (p *Parser) parseBlock() (ast.StmtID, error) {
	if _, err := p.expect(token.Newline); err != nil {
		return ast.NoStmtID, err
	}
	p.skipNewlines()
	indent, err := p.expect(token.Indent)
	if err != nil {
		return ast.NoStmtID, err
	}

	var stmts []ast.StmtID
	for {
		p.skipNewlines()
		if p.at(token.Dedent) {
			p.advance()
			break
		}
		if p.at(token.EOF) {
			return ast.NoStmtID, p.unexpected("end of block")
		}
		id, err := p.parseStatement()
		if err != nil {
			return ast.NoStmtID, err
		}
		stmts = append(stmts, id)
	}
	return p.arenas.Stmts.NewBlock(indent.Span, stmts), nil
}

// headerSpan покрывает токены заголовка от start до последнего съеденного.
func (p *Parser) headerSpan(start source.Span) source.Span {
	return start.Cover(p.lastSpan)
}
