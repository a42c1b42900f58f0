package diag

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dekarrin/algoc/internal/source"
)

func Test_Diagnostic_Render_singleLine(t *testing.T) {
	buf := source.New("t", "x <-- 1\ny <-- 2\n")

	d := Diagnostic{
		Code:      UndeclaredVariable,
		Category:  Semantic,
		Positions: []int{0},
		Message:   "variable non déclarée 'x'",
		Expected:  "une déclaration préalable",
	}

	out := d.Render(buf)

	assert.Contains(t, out, "Ligne 1, colonne 1")
	assert.Contains(t, out, "x <-- 1")
	assert.Contains(t, out, "Erreur sémantique: variable non déclarée 'x'")
	assert.Contains(t, out, "-> Attendu: une déclaration préalable")
	assert.True(t, strings.Contains(out, "^"))
}

func Test_Diagnostic_Render_syntaxCategory(t *testing.T) {
	buf := source.New("t", "Algorithme\n")

	d := Diagnostic{
		Code:      ExpectedSymbol,
		Category:  Syntactic,
		Positions: []int{0},
		Message:   "trouvé EOF",
	}

	out := d.Render(buf)
	assert.Contains(t, out, "Erreur de syntaxe: trouvé EOF")
}

func Test_Diagnostic_Render_multiplePositionsSameLine(t *testing.T) {
	buf := source.New("t", "x <-- y + z\n")

	d := Diagnostic{
		Code:      DifferentTypesComparison,
		Category:  Semantic,
		Positions: []int{5, 9},
		Message:   "types incompatibles",
	}

	out := d.Render(buf)
	assert.Contains(t, out, "colonnes 6 et 10")
}

func Test_Diagnostic_Render_noPositionsOmitsHeader(t *testing.T) {
	buf := source.New("t", "x\n")

	d := Diagnostic{Code: UndefinedFunction, Message: "erreur"}
	out := d.Render(buf)

	assert.False(t, strings.Contains(out, "Ligne"))
	assert.Contains(t, out, "erreur")
}
