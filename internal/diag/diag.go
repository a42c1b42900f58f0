// Package diag implements the diagnostic taxonomy and textual rendering
// described by the error handling design: every diagnostic resolves its
// byte offsets through a source.Buffer, renders a line header, the
// offending source line, a caret line, the message, and an optional
// trailer — never anything else.
package diag

import (
	"fmt"
	"strings"

	"github.com/dekarrin/rosed"

	"github.com/dekarrin/algoc/internal/source"
)

// Category is the top-level grouping a Diagnostic's message is rendered
// under: "Erreur de syntaxe" or "Erreur sémantique". Lexical diagnostics
// render as syntax errors, matching the original prototype's rendering
// (it never distinguished the two at the text level).
type Category int

const (
	// Syntactic covers lexical and parser diagnostics alike.
	Syntactic Category = iota
	Semantic
)

func (c Category) header() string {
	if c == Semantic {
		return "Erreur sémantique"
	}
	return "Erreur de syntaxe"
}

// Code names one of the error kinds, used for tests and for the taxonomy.
type Code string

// Lexical, syntactic, naming, type-structural, reference, operator,
// assignment/call, and control-flow codes.
const (
	IllegalCharacter     Code = "IllegalCharacter"
	MalformedCharLiteral Code = "MalformedCharLiteral"

	ExpectedSymbol          Code = "ExpectedSymbol"
	UnclosedBlock           Code = "UnclosedBlock"
	StatementCallInExpr     Code = "StatementCallInExpression"

	ReservedNameCollision Code = "ReservedNameCollision"
	VariableRedeclaration Code = "VariableRedeclaration"
	TypeRedefinition      Code = "TypeRedefinition"
	SubAlgoRedefinition   Code = "SubAlgoRedefinition"
	AttributeRedeclaration Code = "AttributeRedeclaration"
	IdentifierCollision   Code = "IdentifierCollision"

	UnknownBaseType               Code = "UnknownBaseType"
	TableRangeInvalidEnd          Code = "TableRangeInvalidEnd"
	TableEndNotDefinedForVariable Code = "TableEndNotDefinedForVariable"
	TypeDefinitionRecursion       Code = "TypeDefinitionRecursion"

	UndeclaredVariable          Code = "UndeclaredVariable"
	UndefinedFunction           Code = "UndefinedFunction"
	InvalidAttribute            Code = "InvalidAttribute"
	NonCustomTypeAttributeAccess Code = "NonCustomTypeAttributeAccess"
	NonTableElementAccess       Code = "NonTableElementAccess"
	UnmatchedTableIndexes       Code = "UnmatchedTableIndexes"

	InvalidBinaryOperationTermType      Code = "InvalidBinaryOperationTermType"
	InvalidUnaryOperationExpressionType Code = "InvalidUnaryOperationExpressionType"
	NonPointerDereference               Code = "NonPointerDereference"
	NonBooleanUnaryNot                  Code = "NonBooleanUnaryNot"
	DifferentTypesComparison            Code = "DifferentTypesComparison"

	NonAssignableExpression      Code = "NonAssignableExpression"
	TableAssignment              Code = "TableAssignment"
	IncompatibleAssignmentTypes  Code = "IncompatibleAssignmentTypes"
	IncompatibleInputType        Code = "IncompatibleInputType"
	IncompatibleOutputType       Code = "IncompatibleOutputType"
	UnmatchedNumberOfInputs      Code = "UnmatchedNumberOfInputs"
	UnmatchedNumberOfOutputs     Code = "UnmatchedNumberOfOutputs"
	NonUniqueOutputFunctionExpr  Code = "NonUniqueOutputFunctionExpression"

	NonIntegerIterationVariable Code = "NonIntegerIterationVariable"
	NonIntegerStart             Code = "NonIntegerStart"
	NonIntegerEnd                Code = "NonIntegerEnd"
	NonIntegerIndex              Code = "NonIntegerIndex"
	NonBooleanWhileCondition     Code = "NonBooleanWhileCondition"
	NonBooleanIfCondition        Code = "NonBooleanIfCondition"
)

// Diagnostic is one reported problem. A Diagnostic with a single Pos is a
// StandardSemanticError/token-level syntax error; one with two Positions
// of differing line is a DoubleLineError; one with two or more Positions
// sharing a line is a MultiSemanticError.
type Diagnostic struct {
	Code     Code
	Category Category

	// Positions holds one or more byte offsets into the owning
	// source.Buffer. Order is rendering order.
	Positions []int

	// Message is the diagnostic-specific text appended after the
	// "Erreur de ...: " prefix.
	Message string

	// Expected, if non-empty, is rendered as a "-> Attendu: <Expected>"
	// trailer.
	Expected string

	// Details, if non-empty, is rendered as a free-form "-> <Details>"
	// trailer, wrapped to a fixed column width.
	Details string

	// Fatal marks the one diagnostic kind (IllegalCharacter) after which
	// the compile stops instead of continuing best-effort.
	Fatal bool
}

// detailWrapWidth is the column width diagnostic detail trailers are
// wrapped to before printing.
const detailWrapWidth = 78

// Render renders the diagnostic against buf, producing the exact textual
// contract described by the error handling design: line header, source
// line, caret line, message, optional trailer.
func (d Diagnostic) Render(buf *source.Buffer) string {
	var sb strings.Builder

	sb.WriteString(d.renderHeaderAndSource(buf))
	sb.WriteString(d.Category.header())
	sb.WriteString(": ")
	sb.WriteString(d.Message)
	sb.WriteString("\n")

	if d.Details != "" {
		wrapped := rosed.Edit(d.Details).Wrap(detailWrapWidth).String()
		sb.WriteString(" -> ")
		sb.WriteString(wrapped)
		sb.WriteString("\n")
	}

	if d.Expected != "" {
		sb.WriteString(" -> Attendu: ")
		sb.WriteString(d.Expected)
	}

	return sb.String()
}

func (d Diagnostic) renderHeaderAndSource(buf *source.Buffer) string {
	if len(d.Positions) == 0 {
		return ""
	}

	lines := make([]int, len(d.Positions))
	cols := make([]int, len(d.Positions))
	for i, p := range d.Positions {
		lines[i] = buf.LineOf(p)
		cols[i] = buf.ColumnOf(p)
	}

	allSameLine := true
	for i := 1; i < len(lines); i++ {
		if lines[i] != lines[0] {
			allSameLine = false
			break
		}
	}

	var sb strings.Builder

	if allSameLine {
		sb.WriteString(headerLine(lines[0], cols))
		sb.WriteString(sourceAndCaretBlock(buf, lines[0], cols))
		return sb.String()
	}

	// DoubleLineError: one stacked single-line header+block per distinct
	// line, in position order.
	seen := map[int]bool{}
	for i, ln := range lines {
		if seen[ln] {
			continue
		}
		seen[ln] = true

		var lineCols []int
		for j := i; j < len(lines); j++ {
			if lines[j] == ln {
				lineCols = append(lineCols, cols[j])
			}
		}

		sb.WriteString(headerLine(ln, lineCols))
		sb.WriteString(sourceAndCaretBlock(buf, ln, lineCols))
	}

	return sb.String()
}

func headerLine(line int, cols []int) string {
	switch len(cols) {
	case 1:
		return fmt.Sprintf("Ligne %d, colonne %d\n", line, cols[0])
	case 2:
		return fmt.Sprintf("Ligne %d, colonnes %d et %d\n", line, cols[0], cols[1])
	default:
		parts := make([]string, len(cols)-1)
		for i := 0; i < len(cols)-1; i++ {
			parts[i] = fmt.Sprintf("%d", cols[i])
		}
		return fmt.Sprintf("Ligne %d, colonnes %s et %d\n", line, strings.Join(parts, ", "), cols[len(cols)-1])
	}
}

func sourceAndCaretBlock(buf *source.Buffer, line int, cols []int) string {
	lineNoStr := fmt.Sprintf("%d", line)

	// recover the line's start offset by re-deriving it from any column on
	// the line: offset = (line-start byte) is not directly exposed, so we
	// render using the text returned for an offset known to be on this
	// line. Since callers only ever have offsets (not lines) to begin
	// with, we locate the line text via the first known offset on it.
	// Diagnostics always carry at least one Positions entry on this line,
	// so the caller-provided columns are enough to build the caret row
	// without re-deriving an offset.
	lineText := buf.LineTextOf(offsetForLineCol(buf, line, cols[0]))

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("  %s | %s\n", lineNoStr, lineText))

	gutter := "  " + strings.Repeat(" ", len(lineNoStr)) + " | "
	caretLine := make([]byte, 0, len(lineText)+1)
	pos := 1
	colSet := map[int]bool{}
	for _, c := range cols {
		colSet[c] = true
	}
	maxCol := cols[0]
	for _, c := range cols {
		if c > maxCol {
			maxCol = c
		}
	}
	for pos <= maxCol {
		if colSet[pos] {
			caretLine = append(caretLine, '^')
		} else {
			caretLine = append(caretLine, ' ')
		}
		pos++
	}

	sb.WriteString(gutter)
	sb.Write(caretLine)
	sb.WriteString("\n")

	return sb.String()
}

// offsetForLineCol reconstructs a byte offset on line at 1-based column col.
// Buffer does not store a line index, so this walks the text once; diag
// rendering is a cold path invoked only when a compile actually failed, so
// this is not worth a second buffer-side index.
func offsetForLineCol(buf *source.Buffer, line, col int) int {
	text := buf.Text()
	ln := 1
	start := 0
	for i := 0; i < len(text) && ln < line; i++ {
		if text[i] == '\n' {
			ln++
			start = i + 1
		}
	}
	if ln != line {
		start = len(text)
	}
	return start + col - 1
}
