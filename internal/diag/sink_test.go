package diag

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Sink_EmptyAndAdd(t *testing.T) {
	assert := assert.New(t)

	sink := NewSink()
	assert.True(sink.Empty())
	assert.Equal(0, sink.Len())

	sink.Add(Diagnostic{Code: IllegalCharacter, Fatal: true})
	assert.False(sink.Empty())
	assert.Equal(1, sink.Len())
	assert.True(sink.HasFatal())
}

func Test_Sink_HasFatal_falseWhenNoFatalDiag(t *testing.T) {
	sink := NewSink()
	sink.Add(Diagnostic{Code: UndeclaredVariable})
	assert.False(t, sink.HasFatal())
}

func Test_Sink_All_preservesInsertionOrder(t *testing.T) {
	sink := NewSink()
	sink.Add(Diagnostic{Code: ExpectedSymbol, Positions: []int{1}})
	sink.Add(Diagnostic{Code: UndeclaredVariable, Positions: []int{2}})

	all := sink.All()
	assert.Equal(t, ExpectedSymbol, all[0].Code)
	assert.Equal(t, UndeclaredVariable, all[1].Code)
}
