// Package parser implements a hand-written, single-pass parser that turns
// a token.Stream into an ast.Program. It follows the shift/reduce block
// discipline described by the language design: each compound construct
// (the main algorithm, a sub-algorithm, Si, Pour, TantQue) pushes a kind
// onto a block stack when its header is recognized and pops it when its
// footer keyword is recognized, so that an error in one block cannot
// silently eat the footer of an enclosing one. Every production that can
// fail reports one diagnostic and keeps going on a best-effort basis,
// matching the original prototype's "report everything you can in one
// pass" behavior rather than stopping at the first error.
package parser

import (
	"fmt"

	"github.com/dekarrin/algoc/internal/ast"
	"github.com/dekarrin/algoc/internal/diag"
	"github.com/dekarrin/algoc/internal/token"
)

// Parser holds the mutable state of one parse: the token cursor, the
// diagnostic sink shared with the rest of the compile, and the open block
// stack.
type Parser struct {
	toks   *token.Stream
	sink   *diag.Sink
	blocks blockStack
}

// New builds a Parser reading from toks and reporting to sink.
func New(toks *token.Stream, sink *diag.Sink) *Parser {
	return &Parser{toks: toks, sink: sink}
}

// Parse consumes the entire token stream and returns the resulting
// program. It always returns a non-nil *ast.Program; callers should
// inspect the shared diag.Sink to decide whether the parse was clean.
func Parse(toks *token.Stream, sink *diag.Sink) *ast.Program {
	p := New(toks, sink)
	return p.parseProgram()
}

func (p *Parser) parseProgram() *ast.Program {
	pos := p.cur().Pos
	prog := &ast.Program{Pos: pos}

	p.skipNewlines()

	if p.at(token.TYPES) {
		prog.Types = p.parseTypesSection()
	}

	for p.at(token.SOUS) || p.at(token.SA) {
		prog.Subs = append(prog.Subs, p.parseSubAlgorithm())
		p.skipNewlines()
	}

	prog.Main = p.parseMainAlgorithm()
	p.skipNewlines()

	for p.at(token.SOUS) || p.at(token.SA) {
		prog.Subs = append(prog.Subs, p.parseSubAlgorithm())
		p.skipNewlines()
	}

	if !p.at(token.EOF) {
		p.errExpected(token.EOF)
		p.syncToEOF()
	}

	p.finalizeBlocks()
	return prog
}

// finalizeBlocks synthesizes one UnclosedBlock diagnostic per entry still
// open when the token stream is exhausted, innermost block first.
func (p *Parser) finalizeBlocks() {
	for _, e := range p.blocks.entries() {
		p.sink.Add(diag.Diagnostic{
			Code:     diag.UnclosedBlock,
			Category: diag.Syntactic,
			Positions: []int{e.headerPos},
			Message:  fmt.Sprintf("bloc non fermé : aucun '%s' correspondant trouvé avant la fin du fichier", e.kind.footerName()),
			Expected: fmt.Sprintf("'%s'", e.kind.footerName()),
		})
	}
}

// --- token cursor helpers ---

func (p *Parser) cur() token.Token { return p.toks.Peek() }
func (p *Parser) at(k token.Kind) bool { return p.cur().Kind == k }

func (p *Parser) advance() token.Token { return p.toks.Next() }

// expect consumes the current token if it has kind k, reporting
// ExpectedSymbol and leaving the cursor in place otherwise.
func (p *Parser) expect(k token.Kind) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	p.errExpected(k)
	return p.cur(), false
}

// expectFooter consumes the token that closes the block identified by h
// and pops it. If the current token isn't that footer, the block is left
// open rather than reported here: parseStmtList only stops a body short
// of its own footer at EOF or at an enclosing block's footer, both of
// which finalizeBlocks (or the enclosing level's own expectFooter call)
// already accounts for, so reporting a mismatch here too would duplicate
// that diagnostic.
func (p *Parser) expectFooter(k token.Kind, h blockHandle) {
	if p.at(k) {
		p.advance()
		p.blocks.pop(h)
	}
}

// expectID is expect(token.ID) specialized to return a usable token even
// on failure, so callers can keep building a partial AST.
func (p *Parser) expectID() token.Token {
	if p.at(token.ID) {
		return p.advance()
	}
	p.errExpected(token.ID)
	return token.Token{Kind: token.ID, Lexeme: "", Pos: p.cur().Pos, Line: p.cur().Line}
}

func (p *Parser) errExpected(k token.Kind) {
	tok := p.cur()
	p.sink.Add(diag.Diagnostic{
		Code:      diag.ExpectedSymbol,
		Category:  diag.Syntactic,
		Positions: []int{tok.Pos},
		Message:   fmt.Sprintf("trouvé %s", tok.Kind.Human()),
		Expected:  k.Human(),
	})
}

func (p *Parser) skipNewlines() {
	for p.at(token.NEWLINE) {
		p.advance()
	}
}

// syncToEOF advances past every remaining token. Used only when the
// top-level parse finds trailing garbage after the last sub-algorithm.
func (p *Parser) syncToEOF() {
	for !p.at(token.EOF) {
		p.advance()
	}
}

// syncPastLine advances past tokens until it crosses a NEWLINE or hits
// EOF, the recovery strategy for a statement or declaration line that
// failed to parse partway through.
func (p *Parser) syncPastLine() {
	for !p.at(token.NEWLINE) && !p.at(token.EOF) {
		p.advance()
	}
	p.skipNewlines()
}
