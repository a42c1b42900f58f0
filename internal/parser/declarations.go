package parser

import (
	"strconv"

	"github.com/dekarrin/algoc/internal/ast"
	"github.com/dekarrin/algoc/internal/token"
)

// parseTypesSection parses the optional "Types:" header followed by zero
// or more Article record definitions.
func (p *Parser) parseTypesSection() []ast.CustomType {
	p.expect(token.TYPES)
	p.expect(token.COLON)
	p.skipNewlines()

	var types []ast.CustomType
	for p.at(token.ARTICLE) {
		types = append(types, p.parseArticle())
		p.skipNewlines()
	}
	return types
}

func (p *Parser) parseArticle() ast.CustomType {
	pos := p.cur().Pos
	p.expect(token.ARTICLE)
	name := p.expectID()
	p.skipNewlines()

	ct := ast.CustomType{Pos: pos, Name: name.Lexeme}
	for p.at(token.ID) {
		ct.Attributes = append(ct.Attributes, p.parseOneVarDecl())
		p.skipNewlines()
	}
	return ct
}

func (p *Parser) parseMainAlgorithm() ast.MainAlgorithm {
	pos := p.cur().Pos
	p.expect(token.ALGORITHME)
	name := p.expectID()
	p.skipNewlines()

	p.expect(token.VARIABLES)
	p.expect(token.COLON)
	p.skipNewlines()
	decls := p.parseVarDeclList(token.INSTRUCTIONS)

	p.expect(token.INSTRUCTIONS)
	p.expect(token.COLON)
	p.skipNewlines()

	h := p.blocks.push(blockMainAlgo, pos)
	stmts := p.parseStmtList(token.FINALGO)
	p.expectFooter(token.FINALGO, h)

	return ast.MainAlgorithm{Pos: pos, Name: name.Lexeme, VarDecls: decls, Statements: stmts}
}

func (p *Parser) parseSubAlgorithm() ast.SubAlgorithm {
	pos := p.cur().Pos
	if p.at(token.SA) {
		p.advance()
	} else {
		p.expect(token.SOUS)
		p.expect(token.ALGORITHME)
	}
	name := p.expectID()

	p.expect(token.LPAREN)
	inputs, outputs := p.parseParamSections()
	p.expect(token.RPAREN)
	p.skipNewlines()

	p.expect(token.VARIABLES)
	p.expect(token.COLON)
	p.skipNewlines()
	decls := p.parseVarDeclList(token.INSTRUCTIONS)

	p.expect(token.INSTRUCTIONS)
	p.expect(token.COLON)
	p.skipNewlines()

	h := p.blocks.push(blockSubAlgo, pos)
	stmts := p.parseStmtList(token.FINSA)
	p.expectFooter(token.FINSA, h)

	return ast.SubAlgorithm{
		Pos: pos, Name: name.Lexeme,
		Inputs: inputs, Outputs: outputs,
		VarDecls: decls, Statements: stmts,
	}
}

// parseParamSections parses the optional "PE: ... ; PS: ..." parameter
// declarations inside a sub-algorithm's parenthesized header. Either
// section may be absent; when both are present they are separated by a
// semicolon that is distinguished from a decl-group separator by
// lookahead (a semicolon immediately followed by PS or ")" ends the
// input section rather than introducing another input decl group).
func (p *Parser) parseParamSections() (inputs, outputs []ast.VarDecl) {
	if p.at(token.PE) {
		p.advance()
		p.expect(token.COLON)
		inputs = p.parseDeclGroup()
	}
	if p.at(token.SEMI) {
		p.advance()
	}
	if p.at(token.PS) {
		p.advance()
		p.expect(token.COLON)
		outputs = p.parseDeclGroup()
	}
	return inputs, outputs
}

// parseDeclGroup parses one or more "names : type" decl lines separated
// by semicolons, stopping before a semicolon that introduces the next
// PE/PS section or the closing parenthesis.
func (p *Parser) parseDeclGroup() []ast.VarDecl {
	var out []ast.VarDecl
	for {
		out = append(out, p.parseOneVarDecl())
		if p.at(token.SEMI) && !p.sectionBoundaryAfterSemi() {
			p.advance()
			continue
		}
		break
	}
	return out
}

func (p *Parser) sectionBoundaryAfterSemi() bool {
	next := p.toks.PeekAt(1)
	return next.Kind == token.PS || next.Kind == token.RPAREN
}

// parseVarDeclList parses "names : type" lines until the current token is
// stop (typically the section keyword that ends this list) or EOF.
func (p *Parser) parseVarDeclList(stop token.Kind) []ast.VarDecl {
	var out []ast.VarDecl
	for p.at(token.ID) && !p.at(stop) {
		out = append(out, p.parseOneVarDecl())
		p.skipNewlines()
	}
	return out
}

func (p *Parser) parseOneVarDecl() ast.VarDecl {
	pos := p.cur().Pos
	names := []string{p.expectID().Lexeme}
	for p.at(token.COMMA) {
		p.advance()
		names = append(names, p.expectID().Lexeme)
	}
	p.expect(token.COLON)
	typ := p.parseType()
	return ast.VarDecl{Pos: pos, Names: names, Type: typ}
}

// parseType parses a Type: Pointeur sur <type>, Tableau <ranges> de
// <type>, or a bare base/custom type name.
func (p *Parser) parseType() ast.Type {
	switch {
	case p.at(token.POINTEUR):
		p.advance()
		p.expect(token.SUR)
		return ast.PtrType{Inner: p.parseType()}
	case p.at(token.TABLEAU):
		p.advance()
		ranges := p.parseRangeList()
		p.expect(token.DE)
		return ast.TableType{Ranges: ranges, Inner: p.parseType()}
	default:
		name := p.expectID()
		return ast.BaseType{Name: name.Lexeme}
	}
}

func (p *Parser) parseRangeList() []ast.Range {
	ranges := []ast.Range{p.parseOneRange()}
	for p.at(token.COMMA) {
		p.advance()
		ranges = append(ranges, p.parseOneRange())
	}
	return ranges
}

func (p *Parser) parseOneRange() ast.Range {
	start := p.expectIntLiteral()
	p.expect(token.POINTS)
	if p.at(token.LIT_INT) {
		end := p.expectIntLiteral()
		return ast.Range{Start: start, End: end, EndSet: true}
	}
	return ast.Range{Start: start, EndSet: false}
}

// expectIntLiteral consumes a LIT_INT token and returns its integer
// value, or 0 without advancing if the current token is not one.
func (p *Parser) expectIntLiteral() int {
	if !p.at(token.LIT_INT) {
		p.errExpected(token.LIT_INT)
		return 0
	}
	tok := p.advance()
	v, err := strconv.Atoi(tok.Lexeme)
	if err != nil {
		return 0
	}
	return v
}
