package parser

import "github.com/dekarrin/algoc/internal/token"

// blockKind is one of the five compound-construct kinds the parser tracks
// on its block stack, per the block-discipline design.
type blockKind int

const (
	blockMainAlgo blockKind = iota
	blockSubAlgo
	blockSi
	blockPour
	blockTantQue
)

func (k blockKind) footerName() string {
	switch k {
	case blockMainAlgo:
		return "FinAlgo"
	case blockSubAlgo:
		return "FinSa"
	case blockSi:
		return "FinSi"
	case blockPour:
		return "FinPour"
	case blockTantQue:
		return "FinTq"
	default:
		return "?"
	}
}

// footerBlockKind reports which blockKind, if any, closes with footer k.
func footerBlockKind(k token.Kind) (blockKind, bool) {
	switch k {
	case token.FINALGO:
		return blockMainAlgo, true
	case token.FINSA:
		return blockSubAlgo, true
	case token.FINSI:
		return blockSi, true
	case token.FINPOUR:
		return blockPour, true
	case token.FINTQ:
		return blockTantQue, true
	default:
		return 0, false
	}
}

// blockStack is the parser's stack of currently open block kinds: header
// productions push and get back a handle, footer productions pop that
// handle once their own footer is actually matched. While a kind is on the
// stack, a stray closing keyword of a shallower enclosing kind is left
// untouched for that enclosing level to consume; at EOF, every residual
// entry synthesizes one "expected Fin…" diagnostic.
type blockStack struct {
	open []blockEntry
}

type blockEntry struct {
	kind blockKind
	// headerPos is the byte offset of the header keyword that pushed this
	// entry, used as the position for the synthesized EOF diagnostic.
	headerPos int
}

// blockHandle identifies one pushed entry so it can be popped later even
// if entries pushed after it (nested blocks) are still open.
type blockHandle int

func (s *blockStack) push(kind blockKind, headerPos int) blockHandle {
	s.open = append(s.open, blockEntry{kind: kind, headerPos: headerPos})
	return blockHandle(len(s.open) - 1)
}

// pop removes the entry identified by h. Entries pushed after h that are
// still open (their own footer was never matched, typically because an
// enclosing footer ended the production first) are left in the stack so
// finalizeBlocks still reports them.
func (s *blockStack) pop(h blockHandle) {
	idx := int(h)
	if idx < 0 || idx >= len(s.open) {
		return
	}
	s.open = append(s.open[:idx], s.open[idx+1:]...)
}

// top returns the innermost open block kind and whether the stack is
// non-empty.
func (s *blockStack) top() (blockKind, bool) {
	if len(s.open) == 0 {
		return 0, false
	}
	return s.open[len(s.open)-1].kind, true
}

// has reports whether kind is anywhere on the stack, used to decide
// whether a closing keyword belongs to an enclosing block and so ends the
// current body without being consumed.
func (s *blockStack) has(kind blockKind) bool {
	for _, e := range s.open {
		if e.kind == kind {
			return true
		}
	}
	return false
}

func (s *blockStack) empty() bool {
	return len(s.open) == 0
}

// entries returns the residual open entries, innermost first, for EOF
// diagnostic synthesis.
func (s *blockStack) entries() []blockEntry {
	out := make([]blockEntry, len(s.open))
	for i := range s.open {
		out[i] = s.open[len(s.open)-1-i]
	}
	return out
}
