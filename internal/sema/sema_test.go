package sema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dekarrin/algoc/internal/config"
	"github.com/dekarrin/algoc/internal/diag"
	"github.com/dekarrin/algoc/internal/lexer"
	"github.com/dekarrin/algoc/internal/parser"
	"github.com/dekarrin/algoc/internal/source"
)

func analyzeSource(t *testing.T, text string) (*ProgramVariables, *diag.Sink) {
	t.Helper()
	buf := source.New("t", text)
	sink := diag.NewSink()
	lx := lexer.New(buf, sink)
	toks, ok := lx.Lex()
	require.True(t, ok)

	prog := parser.Parse(toks, sink)
	require.True(t, sink.Empty())

	vars := Analyze(prog, sink, config.Default())
	return vars, sink
}

func Test_Analyze_cleanProgramReportsNothing(t *testing.T) {
	_, sink := analyzeSource(t, `Algorithme Exemple
Variables:
x, y : entier
Instructions:
x <-- 1
y <-- x + 2
FinAlgo
`)
	assert.True(t, sink.Empty())
}

func Test_Analyze_undeclaredVariableOnAssign(t *testing.T) {
	_, sink := analyzeSource(t, `Algorithme Exemple
Variables:
Instructions:
x <-- 1
FinAlgo
`)
	assertHasCode(t, sink, diag.UndeclaredVariable)
}

func Test_Analyze_incompatibleAssignmentTypes(t *testing.T) {
	_, sink := analyzeSource(t, `Algorithme Exemple
Variables:
x : booléen
Instructions:
x <-- 1
FinAlgo
`)
	assertHasCode(t, sink, diag.IncompatibleAssignmentTypes)
}

func Test_Analyze_entierPromotesToReel(t *testing.T) {
	_, sink := analyzeSource(t, `Algorithme Exemple
Variables:
x : réel
Instructions:
x <-- 3
FinAlgo
`)
	assert.True(t, sink.Empty())
}

func Test_Analyze_callOutputsRequireStrictTypeMatchNoPromotion(t *testing.T) {
	_, sink := analyzeSource(t, `Algorithme Exemple
Variables:
r : réel
Instructions:
Double(1 ! r)
FinAlgo

SousAlgo Double(PE: n : entier; PS: r : entier)
Variables:
Instructions:
r <-- n
FinSa
`)
	assertHasCode(t, sink, diag.IncompatibleOutputType)
}

func Test_Analyze_callInputsAllowPromotion(t *testing.T) {
	_, sink := analyzeSource(t, `Algorithme Exemple
Variables:
r : entier
Instructions:
Double(1 ! r)
FinAlgo

SousAlgo Double(PE: n : réel; PS: r : entier)
Variables:
Instructions:
r <-- 1
FinSa
`)
	assert.True(t, sink.Empty())
}

func Test_Analyze_undefinedFunctionCall(t *testing.T) {
	_, sink := analyzeSource(t, `Algorithme Exemple
Variables:
r : entier
Instructions:
Inconnu(1 ! r)
FinAlgo
`)
	assertHasCode(t, sink, diag.UndefinedFunction)
}

func Test_Analyze_nonBooleanWhileCondition(t *testing.T) {
	_, sink := analyzeSource(t, `Algorithme Exemple
Variables:
x : entier
Instructions:
TantQue x Faire
    x <-- x - 1
FinTq
FinAlgo
`)
	assertHasCode(t, sink, diag.NonBooleanWhileCondition)
}

func Test_Analyze_nonIntegerForBounds(t *testing.T) {
	_, sink := analyzeSource(t, `Algorithme Exemple
Variables:
i : entier
x : réel
Instructions:
Pour i allant de x a 10 Faire
    i <-- i
FinPour
FinAlgo
`)
	assertHasCode(t, sink, diag.NonIntegerStart)
}

func Test_Analyze_tableIndexArity(t *testing.T) {
	_, sink := analyzeSource(t, `Algorithme Exemple
Variables:
t : Tableau 1..5 de entier
x : entier
Instructions:
x <-- t[1, 2]
FinAlgo
`)
	assertHasCode(t, sink, diag.UnmatchedTableIndexes)
}

func Test_Analyze_typeRecursionDetected(t *testing.T) {
	_, sink := analyzeSource(t, `Types:
Article Noeud
valeur : entier
suivant : Noeud

Algorithme Exemple
Variables:
Instructions:
FinAlgo
`)
	assertHasCode(t, sink, diag.TypeDefinitionRecursion)
}

func Test_Analyze_typeRecursionBrokenByPointer(t *testing.T) {
	_, sink := analyzeSource(t, `Types:
Article Noeud
valeur : entier
suivant : Pointeur sur Noeud

Algorithme Exemple
Variables:
Instructions:
FinAlgo
`)
	assert.True(t, sink.Empty())
}

func Test_Analyze_reservedWordCollision(t *testing.T) {
	_, sink := analyzeSource(t, `Algorithme Exemple
Variables:
int : entier
Instructions:
int <-- 1
FinAlgo
`)
	assertHasCode(t, sink, diag.ReservedNameCollision)
}

func Test_Analyze_attributeAccessOnNonCustomType(t *testing.T) {
	_, sink := analyzeSource(t, `Algorithme Exemple
Variables:
x : entier
y : entier
Instructions:
y <-- x.champ
FinAlgo
`)
	assertHasCode(t, sink, diag.NonCustomTypeAttributeAccess)
}

func assertHasCode(t *testing.T, sink *diag.Sink, code diag.Code) {
	t.Helper()
	for _, d := range sink.All() {
		if d.Code == code {
			return
		}
	}
	t.Fatalf("expected diagnostic %s, got: %+v", code, sink.All())
}
