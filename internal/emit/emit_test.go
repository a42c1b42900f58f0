package emit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dekarrin/algoc/internal/config"
	"github.com/dekarrin/algoc/internal/diag"
	"github.com/dekarrin/algoc/internal/lexer"
	"github.com/dekarrin/algoc/internal/parser"
	"github.com/dekarrin/algoc/internal/sema"
	"github.com/dekarrin/algoc/internal/source"
)

func compileAndEmit(t *testing.T, text string) string {
	t.Helper()
	buf := source.New("t", text)
	sink := diag.NewSink()
	lx := lexer.New(buf, sink)
	toks, ok := lx.Lex()
	require.True(t, ok)

	prog := parser.Parse(toks, sink)
	require.True(t, sink.Empty())

	vars := sema.Analyze(prog, sink, config.Default())
	require.True(t, sink.Empty())

	out, err := NewCEmitter().EmitProgram(prog, vars)
	require.NoError(t, err)
	return out
}

func Test_EmitProgram_mainOnly(t *testing.T) {
	out := compileAndEmit(t, `Algorithme Exemple
Variables:
x : entier
Instructions:
x <-- 3
FinAlgo
`)

	assert.Contains(t, out, "#include <stdio.h>")
	assert.NotContains(t, out, "stdbool.h")
	assert.Contains(t, out, "int main(void) {")
	assert.Contains(t, out, "int x;")
	assert.Contains(t, out, "x = 3;")
	assert.Contains(t, out, "return 0;")
}

func Test_EmitProgram_booleanUsageIncludesStdbool(t *testing.T) {
	out := compileAndEmit(t, `Algorithme Exemple
Variables:
ok : booléen
Instructions:
ok <-- Vrai
FinAlgo
`)

	assert.Contains(t, out, "#include <stdbool.h>")
	assert.Contains(t, out, "bool ok;")
	assert.Contains(t, out, "ok = true;")
}

func Test_EmitProgram_singleScalarOutputBecomesReturnValue(t *testing.T) {
	out := compileAndEmit(t, `Algorithme Exemple
Variables:
r : entier
Instructions:
Double(2 ! r)
FinAlgo

SousAlgo Double(PE: n : entier; PS: r : entier)
Variables:
Instructions:
r <-- n + n
FinSa
`)

	assert.Contains(t, out, "int Double(int n) {")
	assert.Contains(t, out, "return r;")
	assert.Contains(t, out, "r = Double(2);")
}

func Test_EmitProgram_multipleOutputsPassedByReference(t *testing.T) {
	out := compileAndEmit(t, `Algorithme Exemple
Variables:
c, b : entier
Instructions:
Partage(4 ! c, b)
FinAlgo

SousAlgo Partage(PE: n : entier; PS: q, r : entier)
Variables:
Instructions:
q <-- n
r <-- n
FinSa
`)

	assert.Contains(t, out, "void Partage(int n, int *q, int *r) {")
	assert.Contains(t, out, "Partage(4, &c, &b);")
}

func Test_EmitProgram_recordEmitsTypedefStruct(t *testing.T) {
	out := compileAndEmit(t, `Types:
Article Point
x : entier
y : entier

Algorithme Exemple
Variables:
p : Point
Instructions:
FinAlgo
`)

	assert.Contains(t, out, "typedef struct {")
	assert.Contains(t, out, "int x;")
	assert.Contains(t, out, "int y;")
	assert.Contains(t, out, "} Point;")
	assert.Contains(t, out, "Point p;")
}

func Test_EmitProgram_tableIndexShiftsByRangeStart(t *testing.T) {
	out := compileAndEmit(t, `Algorithme Exemple
Variables:
t : Tableau 1..5 de entier
x : entier
Instructions:
x <-- t[1]
FinAlgo
`)

	assert.Contains(t, out, "x = t[(1 - 1)];")
}

func Test_EmitProgram_multiDimTableParamUsesNestedArrayPointer(t *testing.T) {
	out := compileAndEmit(t, `Algorithme Exemple
Variables:
m : Tableau 1..2, 1..3 de entier
s : entier
Instructions:
Somme(m ! s)
FinAlgo

SousAlgo Somme(PE: m : Tableau 1..2, 1..3 de entier; PS: s : entier)
Variables:
Instructions:
s <-- m[1, 1]
FinSa
`)

	assert.Contains(t, out, "int Somme(int (*m)[3]) {")
	assert.Contains(t, out, "return s;")
	assert.Contains(t, out, "s = m[(1 - 1)][(1 - 1)];")
	assert.Contains(t, out, "s = Somme(m);")
}

func Test_EmitProgram_forAndIfStatements(t *testing.T) {
	out := compileAndEmit(t, `Algorithme Exemple
Variables:
i, total : entier
Instructions:
Pour i allant de 1 a 5 Faire
    total <-- total + i
FinPour
Si total > 0
    total <-- 1
Sinon
    total <-- 0
FinSi
FinAlgo
`)

	assert.Contains(t, out, "for (i = 1; i <= 5; i++) {")
	assert.Contains(t, out, "if (total > 0) {")
	assert.Contains(t, out, "} else {")
}
