package parser

import (
	"lev/internal/ast"
	"lev/internal/token"
)

// parseFnDecl: 'fn' name '(' [param (',' param)*] ')' '->' type ':' block
func (p *Parser) parseFnDecl() (ast.StmtID, error) {
	kw := p.advance()
	name, err := p.expect(token.Ident)
	if err != nil {
		return ast.NoStmtID, err
	}
	params, err := p.parseFnParams()
	if err != nil {
		return ast.NoStmtID, err
	}
	if _, err := p.expect(token.Arrow); err != nil {
		return ast.NoStmtID, err
	}
	result, err := p.parseType()
	if err != nil {
		return ast.NoStmtID, err
	}
	if _, err := p.expect(token.Colon); err != nil {
		return ast.NoStmtID, err
	}
	header := p.headerSpan(kw.Span)

	body, err := p.parseBlock()
	if err != nil {
		return ast.NoStmtID, err
	}
	return p.arenas.Stmts.NewFnDecl(header, ast.StmtFnDeclData{
		Name:   name,
		Params: params,
		Result: result,
		Body:   body,
	}), nil
}

// parseFnParams: '(' [name ':' type (',' name ':' type)*] ')'
func (p *Parser) parseFnParams() ([]ast.FnParam, error) {
	if _, err := p.expect(token.LParen); err != nil {
		return nil, err
	}
	var params []ast.FnParam
	for !p.at(token.RParen) {
		name, err := p.expect(token.Ident)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.Colon); err != nil {
			return nil, err
		}
		typ, err := p.parseType()
		if err != nil {
			return nil, err
		}
		params = append(params, ast.FnParam{Name: name, Type: typ})
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	if _, err := p.expect(token.RParen); err != nil {
		return nil, err
	}
	return params, nil
}
