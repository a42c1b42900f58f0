package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dekarrin/algoc/internal/ast"
	"github.com/dekarrin/algoc/internal/diag"
	"github.com/dekarrin/algoc/internal/lexer"
	"github.com/dekarrin/algoc/internal/source"
)

func parseSource(t *testing.T, text string) (*ast.Program, *diag.Sink) {
	t.Helper()
	buf := source.New("t", text)
	sink := diag.NewSink()
	lx := lexer.New(buf, sink)
	toks, ok := lx.Lex()
	require.True(t, ok)
	return Parse(toks, sink), sink
}

func Test_Parse_minimalMainAlgorithm(t *testing.T) {
	prog, sink := parseSource(t, `Algorithme Exemple
Variables:
x : entier
Instructions:
x <-- 3
FinAlgo
`)

	assert.True(t, sink.Empty())
	assert.Equal(t, "Exemple", prog.Main.Name)
	require.Len(t, prog.Main.VarDecls, 1)
	assert.Equal(t, []string{"x"}, prog.Main.VarDecls[0].Names)
	require.Len(t, prog.Main.Statements, 1)

	assign, ok := prog.Main.Statements[0].(*ast.Assign)
	require.True(t, ok)
	lhs, ok := assign.Lhs.(*ast.Ident)
	require.True(t, ok)
	assert.Equal(t, "x", lhs.Name)
}

func Test_Parse_unclosedBlockSynthesizesDiagnostic(t *testing.T) {
	_, sink := parseSource(t, `Algorithme Exemple
Variables:
Instructions:
x <-- 1
`)

	require.False(t, sink.Empty())
	found := false
	for _, d := range sink.All() {
		if d.Code == diag.UnclosedBlock {
			found = true
			assert.Equal(t, "'FinAlgo'", d.Expected)
		}
	}
	assert.True(t, found)
}

func Test_Parse_subAlgorithmBothSpellings(t *testing.T) {
	testCases := []struct {
		name   string
		header string
	}{
		{name: "one word SousAlgo", header: "SousAlgo"},
		{name: "two words Sous Algorithme", header: "Sous Algorithme"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			text := `Algorithme Exemple
Variables:
Instructions:
FinAlgo

` + tc.header + ` Double(PE: n : entier; PS: r : entier)
Variables:
Instructions:
r <-- n
FinSa
`
			prog, sink := parseSource(t, text)
			assert.True(t, sink.Empty())
			require.Len(t, prog.Subs, 1)
			assert.Equal(t, "Double", prog.Subs[0].Name)
			require.Len(t, prog.Subs[0].Inputs, 1)
			require.Len(t, prog.Subs[0].Outputs, 1)
		})
	}
}

func Test_Parse_forWhileIf(t *testing.T) {
	text := `Algorithme Exemple
Variables:
i, total : entier
ok : booléen
Instructions:
total <-- 0
Pour i allant de 1 a 10 Faire
    total <-- total + i
FinPour
TantQue total > 0 Faire
    total <-- total - 1
FinTq
Si ok
    total <-- 1
SinonSi total = 0
    total <-- 2
Sinon
    total <-- 3
FinSi
FinAlgo
`
	prog, sink := parseSource(t, text)
	assert.True(t, sink.Empty())
	require.Len(t, prog.Main.Statements, 4)

	forStmt, ok := prog.Main.Statements[1].(*ast.ForStmt)
	require.True(t, ok)
	assert.Equal(t, "i", forStmt.Var)
	assert.False(t, forStmt.StepSet)

	whileStmt, ok := prog.Main.Statements[2].(*ast.WhileStmt)
	require.True(t, ok)
	assert.NotNil(t, whileStmt.Cond)

	ifStmt, ok := prog.Main.Statements[3].(*ast.IfStmt)
	require.True(t, ok)
	require.Len(t, ifStmt.Branches, 3)
	assert.Nil(t, ifStmt.Branches[2].Cond)
}

func Test_Parse_callStatementWithInputsAndOutputs(t *testing.T) {
	text := `Algorithme Exemple
Variables:
c, b : entier
Instructions:
Double(c ! b)
FinAlgo

SousAlgo Double(PE: n : entier; PS: r : entier)
Variables:
Instructions:
r <-- n
FinSa
`
	prog, sink := parseSource(t, text)
	assert.True(t, sink.Empty())

	call, ok := prog.Main.Statements[0].(*ast.CallStmt)
	require.True(t, ok)
	assert.Equal(t, "Double", call.Func)
	require.Len(t, call.Inputs, 1)
	require.Len(t, call.Outputs, 1)
}

func Test_Parse_bangCallInExpressionPositionIsRejected(t *testing.T) {
	text := `Algorithme Exemple
Variables:
c, b : entier
Instructions:
c <-- Double(b ! c)
FinAlgo
`
	_, sink := parseSource(t, text)
	require.False(t, sink.Empty())

	found := false
	for _, d := range sink.All() {
		if d.Code == diag.StatementCallInExpr {
			found = true
		}
	}
	assert.True(t, found)
}

func Test_Parse_typesArticle(t *testing.T) {
	text := `Types:
Article Point
x : entier
y : entier

Algorithme Exemple
Variables:
p : Point
Instructions:
FinAlgo
`
	prog, sink := parseSource(t, text)
	assert.True(t, sink.Empty())
	require.Len(t, prog.Types, 1)
	assert.Equal(t, "Point", prog.Types[0].Name)
	require.Len(t, prog.Types[0].Attributes, 2)
}

func Test_Parse_unsizedTableDimensionOnlyAcceptedAsParam(t *testing.T) {
	text := `SousAlgo Somme(PE: t : Tableau 1.. de entier; PS: s : entier)
Variables:
Instructions:
s <-- 0
FinSa

Algorithme Exemple
Variables:
Instructions:
FinAlgo
`
	prog, sink := parseSource(t, text)
	assert.True(t, sink.Empty())
	require.Len(t, prog.Subs, 1)

	tt, ok := prog.Subs[0].Inputs[0].Type.(ast.TableType)
	require.True(t, ok)
	assert.False(t, tt.Ranges[0].EndSet)
}
