package parser

import (
	"lev/internal/token"
	"lev/internal/types"
)

// parseType: имя типа. Встроенные имена дают Builtin, остальные - UserDefined.
func (p *Parser) parseType() (types.Type, error) {
	if !p.at(token.Ident) {
		return types.Type{}, p.unexpected("type")
	}
	return types.Lookup(p.advance().Text), nil
}

// parseTypeAnnotation: [':' type]; без аннотации тип выводится.
func (p *Parser) parseTypeAnnotation() (types.Type, error) {
	if !p.at(token.Colon) {
		return types.Inferred(), nil
	}
	p.advance()
	return p.parseType()
}
