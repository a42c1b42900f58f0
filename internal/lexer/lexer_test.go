package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dekarrin/algoc/internal/diag"
	"github.com/dekarrin/algoc/internal/source"
	"github.com/dekarrin/algoc/internal/token"
)

func lexAll(t *testing.T, text string) ([]token.Token, *diag.Sink, bool) {
	t.Helper()
	buf := source.New("t", text)
	sink := diag.NewSink()
	lx := New(buf, sink)
	stream, ok := lx.Lex()

	var toks []token.Token
	for {
		tok := stream.Next()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	return toks, sink, ok
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, tok := range toks {
		out[i] = tok.Kind
	}
	return out
}

func Test_Lex_keywordsAndAliases(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  []token.Kind
	}{
		{name: "bare algorithme header", input: "Algorithme Foo", want: []token.Kind{
			token.ALGORITHME, token.ID, token.EOF,
		}},
		{name: "algo alias folds to ALGORITHME", input: "Algo Foo", want: []token.Kind{
			token.ALGORITHME, token.ID, token.EOF,
		}},
		{name: "one-word sousalgo folds to SA", input: "SousAlgo Bar", want: []token.Kind{
			token.SA, token.ID, token.EOF,
		}},
		{name: "two-word sous algorithme stays two tokens", input: "Sous Algorithme Bar", want: []token.Kind{
			token.SOUS, token.ALGORITHME, token.ID, token.EOF,
		}},
		{name: "ptr alias folds to POINTEUR", input: "Ptr sur entier", want: []token.Kind{
			token.POINTEUR, token.SUR, token.ID, token.EOF,
		}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			toks, sink, ok := lexAll(t, tc.input)
			assert.True(t, ok)
			assert.True(t, sink.Empty())
			assert.Equal(t, tc.want, kinds(toks))
		})
	}
}

func Test_Lex_numberLiterals(t *testing.T) {
	testCases := []struct {
		name   string
		input  string
		kind   token.Kind
		lexeme string
	}{
		{name: "plain int", input: "42", kind: token.LIT_INT, lexeme: "42"},
		{name: "float", input: "3.14", kind: token.LIT_FLOAT, lexeme: "3.14"},
		{name: "single negative folds to minus sign", input: "-5", kind: token.LIT_INT, lexeme: "-5"},
		{name: "double negative cancels out", input: "--5", kind: token.LIT_INT, lexeme: "5"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			toks, sink, ok := lexAll(t, tc.input)
			assert.True(t, ok)
			assert.True(t, sink.Empty())
			assert.Equal(t, tc.kind, toks[0].Kind)
			assert.Equal(t, tc.lexeme, toks[0].Lexeme)
		})
	}
}

func Test_Lex_charLiteral(t *testing.T) {
	toks, sink, ok := lexAll(t, "'a'")
	assert.True(t, ok)
	assert.True(t, sink.Empty())
	assert.Equal(t, token.LIT_CHAR, toks[0].Kind)
	assert.Equal(t, "a", toks[0].Lexeme)
}

func Test_Lex_charLiteral_malformedYieldsSentinelNoDiagnostic(t *testing.T) {
	toks, sink, ok := lexAll(t, "'ab'")
	assert.True(t, ok)
	assert.True(t, sink.Empty())
	assert.Equal(t, token.LIT_CHAR, toks[0].Kind)
	assert.Equal(t, "bad", toks[0].Lexeme)
}

func Test_Lex_illegalCharacterIsFatal(t *testing.T) {
	toks, sink, ok := lexAll(t, "Algorithme @")
	assert.False(t, ok)
	assert.False(t, sink.Empty())
	assert.True(t, sink.HasFatal())
	assert.Equal(t, diag.IllegalCharacter, sink.All()[0].Code)
	assert.Equal(t, token.EOF, toks[len(toks)-1].Kind)
}

func Test_Lex_punctuationAndArrow(t *testing.T) {
	toks, sink, ok := lexAll(t, "x <-- y[1] <= 2")
	assert.True(t, ok)
	assert.True(t, sink.Empty())
	assert.Equal(t, []token.Kind{
		token.ID, token.L_ARROW, token.ID, token.LBRACKET, token.LIT_INT,
		token.RBRACKET, token.LTE, token.LIT_INT, token.EOF,
	}, kinds(toks))
}

func Test_Lex_newlinesCollapseAndLeadingBlankLinesAreSilent(t *testing.T) {
	toks, sink, ok := lexAll(t, "\n\nAlgorithme Foo\n\n\nVariables")
	assert.True(t, ok)
	assert.True(t, sink.Empty())
	assert.Equal(t, []token.Kind{
		token.ALGORITHME, token.ID, token.NEWLINE, token.VARIABLES, token.EOF,
	}, kinds(toks))
}

func Test_Lex_pointsDotsAndAttributeDot(t *testing.T) {
	toks, sink, ok := lexAll(t, "1..5 x.y")
	assert.True(t, ok)
	assert.True(t, sink.Empty())
	assert.Equal(t, []token.Kind{
		token.LIT_INT, token.POINTS, token.LIT_INT, token.ID, token.DOT, token.ID, token.EOF,
	}, kinds(toks))
}
