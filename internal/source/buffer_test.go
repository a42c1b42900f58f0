package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Buffer_LineOf(t *testing.T) {
	buf := New("t", "abc\ndef\nghi")

	testCases := []struct {
		name   string
		offset int
		want   int
	}{
		{name: "first line", offset: 0, want: 1},
		{name: "still first line", offset: 2, want: 1},
		{name: "second line", offset: 4, want: 2},
		{name: "third line", offset: 9, want: 3},
		{name: "past end clamps to last line", offset: 1000, want: 3},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, buf.LineOf(tc.offset))
		})
	}
}

func Test_Buffer_ColumnOf(t *testing.T) {
	buf := New("t", "abc\ndef\nghi")

	testCases := []struct {
		name   string
		offset int
		want   int
	}{
		{name: "start of text", offset: 0, want: 1},
		{name: "third char of first line", offset: 2, want: 3},
		{name: "start of second line", offset: 4, want: 1},
		{name: "second char of second line", offset: 5, want: 2},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, buf.ColumnOf(tc.offset))
		})
	}
}

func Test_Buffer_LineTextOf(t *testing.T) {
	buf := New("t", "abc\ndef\nghi")

	assert.Equal(t, "abc", buf.LineTextOf(0))
	assert.Equal(t, "def", buf.LineTextOf(5))
	assert.Equal(t, "ghi", buf.LineTextOf(9))
}

func Test_Buffer_NameAndText(t *testing.T) {
	buf := New("prog.algoc", "Algorithme X\n")

	assert.Equal(t, "prog.algoc", buf.Name())
	assert.Equal(t, "Algorithme X\n", buf.Text())
	assert.Equal(t, len("Algorithme X\n"), buf.Len())
}
