package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_FoldAlias(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  string
	}{
		{name: "ptr alias", input: "PTR", want: "POINTEUR"},
		{name: "algo alias", input: "ALGO", want: "ALGORITHME"},
		{name: "sousalgo alias", input: "SOUSALGO", want: "SA"},
		{name: "sousalgorithme alias", input: "SOUSALGORITHME", want: "SA"},
		{name: "non-alias passes through", input: "ALGORITHME", want: "ALGORITHME"},
		{name: "unknown word passes through", input: "TOTO", want: "TOTO"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, FoldAlias(tc.input))
		})
	}
}

func Test_Reserved_resolvesKeywords(t *testing.T) {
	assert := assert.New(t)

	kind, ok := Reserved["ALGORITHME"]
	assert.True(ok)
	assert.Equal(ALGORITHME, kind)

	kind, ok = Reserved["FINSI"]
	assert.True(ok)
	assert.Equal(FINSI, kind)

	_, ok = Reserved["NOTAKEYWORD"]
	assert.False(ok)
}

func Test_Kind_IsKeyword(t *testing.T) {
	assert := assert.New(t)

	assert.True(SI.IsKeyword())
	assert.True(FINALGO.IsKeyword())
	assert.False(ID.IsKeyword())
	assert.False(LPAREN.IsKeyword())
	assert.False(EOF.IsKeyword())
}

func Test_Kind_Human_fallsBackToString(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("un identifiant", ID.Human())
	assert.Equal("'FinAlgo'", FINALGO.Human())
	assert.Equal("'+'", PLUS.Human())
}
