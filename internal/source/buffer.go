// Package source owns the full text of a single compile's input and
// exposes the only positional primitives the rest of the compiler is
// allowed to use: byte-offset-to-line/column, and byte-offset-to-line-text.
// Every diagnostic produced by later passes carries a byte offset; all
// human-readable rendering goes through a Buffer.
package source

import "strings"

// Buffer owns one compile's source text. The zero value is not usable;
// construct with New. A Buffer is created once per compile and outlives
// every other component built on top of it.
type Buffer struct {
	text string
	name string
}

// New wraps text as a Buffer for diagnostic purposes, identifying it by
// name (typically the input path) for any future multi-file diagnostics.
// It does not pad a missing trailing newline; that is the driver's job
// per the input-format contract, not the Buffer's.
func New(name, text string) *Buffer {
	return &Buffer{text: text, name: name}
}

// Name returns the identifying name the Buffer was constructed with.
func (b *Buffer) Name() string {
	return b.name
}

// Text returns the full source text, unmodified.
func (b *Buffer) Text() string {
	return b.text
}

// Len returns the number of bytes in the source text.
func (b *Buffer) Len() int {
	return len(b.text)
}

// LineOf returns the 1-based line number containing the byte at offset.
// Offsets past the end of the text resolve to the last line.
func (b *Buffer) LineOf(offset int) int {
	if offset > len(b.text) {
		offset = len(b.text)
	}
	return 1 + strings.Count(b.text[:offset], "\n")
}

// ColumnOf returns the 1-based column of offset: the distance from the
// character strictly after the last newline before offset, to offset.
func (b *Buffer) ColumnOf(offset int) int {
	last := strings.LastIndexByte(b.text[:clamp(offset, len(b.text))], '\n')
	return offset - last
}

// LineTextOf returns the full text of the source line containing offset,
// without its terminating newline.
func (b *Buffer) LineTextOf(offset int) string {
	offset = clamp(offset, len(b.text))

	start := strings.LastIndexByte(b.text[:offset], '\n') + 1

	end := strings.IndexByte(b.text[offset:], '\n')
	if end < 0 {
		return b.text[start:]
	}
	return b.text[start : offset+end]
}

func clamp(offset, max int) int {
	if offset < 0 {
		return 0
	}
	if offset > max {
		return max
	}
	return offset
}
