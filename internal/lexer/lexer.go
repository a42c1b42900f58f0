// Package lexer implements the single-pass, non-restartable lexer
// described by the character class policy, number/char literal rules and
// keyword/alias folding: it turns one source.Buffer into a finite
// token.Stream, terminated by exactly one EOF token.
package lexer

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/rangetable"

	"github.com/dekarrin/algoc/internal/diag"
	"github.com/dekarrin/algoc/internal/source"
	"github.com/dekarrin/algoc/internal/token"
)

// accentedLetters is the inclusive U+00C0..U+00FF range of accented Latin
// letters identifier runes are allowed to draw from, in addition to
// unaccented ASCII letters. golang.org/x/text/unicode/rangetable builds
// the table once at init time rather than hand-rolling the comparison.
var accentedLetters = rangetable.New(accentedRunes()...)

func accentedRunes() []rune {
	rs := make([]rune, 0, 0xFF-0xC0+1)
	for r := rune(0x00C0); r <= 0x00FF; r++ {
		rs = append(rs, r)
	}
	return rs
}

func isIdentStart(r rune) bool {
	return unicode.IsLetter(r) && (r < 0x80 || unicode.Is(accentedLetters, r)) || r == '_'
}

func isIdentContinue(r rune) bool {
	return isIdentStart(r) || unicode.IsDigit(r)
}

// Lexer scans one source.Buffer into a token.Stream.
type Lexer struct {
	buf  *source.Buffer
	sink *diag.Sink

	runes []rune
	// byteOffset[i] is the byte offset of runes[i] in buf.Text().
	byteOffset []int

	pos  int // index into runes
	line int
}

// New constructs a Lexer over buf, writing any IllegalCharacter diagnostic
// to sink.
func New(buf *source.Buffer, sink *diag.Sink) *Lexer {
	text := buf.Text()
	runes := make([]rune, 0, len(text))
	offsets := make([]int, 0, len(text))
	for i, r := range text {
		runes = append(runes, r)
		offsets = append(offsets, i)
	}
	offsets = append(offsets, len(text))

	return &Lexer{
		buf:        buf,
		sink:       sink,
		runes:      runes,
		byteOffset: offsets,
		line:       1,
	}
}

// Lex scans the entire buffer. It returns the resulting stream and true,
// or a stream truncated at the point of failure and false if an
// IllegalCharacter was encountered — the one fatal lexical error.
func (l *Lexer) Lex() (*token.Stream, bool) {
	var toks []token.Token
	sawToken := false

	for {
		if l.atEnd() {
			break
		}

		r := l.cur()

		if r == ' ' || r == '\t' {
			l.pos++
			continue
		}

		if r == '\n' {
			tok, ok := l.lexNewlines(sawToken)
			if ok {
				toks = append(toks, tok)
				sawToken = true
			}
			continue
		}

		if isIdentStart(r) {
			tok := l.lexIdentOrKeyword()
			if tok.Kind == token.ID && strings.ToUpper(tok.Lexeme) == "TANTQUE" {
				// "TantQue" written as one word is the TANT QUE keyword pair.
				toks = append(toks,
					token.Token{Kind: token.TANT, Lexeme: "TANT", Pos: tok.Pos, Line: tok.Line},
					token.Token{Kind: token.QUE, Lexeme: "QUE", Pos: tok.Pos + len("Tant"), Line: tok.Line})
			} else {
				toks = append(toks, tok)
			}
			sawToken = true
			continue
		}

		if unicode.IsDigit(r) || (r == '-' && l.minusLeadsToDigits()) {
			toks = append(toks, l.lexNumber())
			sawToken = true
			continue
		}

		if r == '\'' {
			toks = append(toks, l.lexCharLiteral())
			sawToken = true
			continue
		}

		if r == '.' {
			toks = append(toks, l.lexDots())
			sawToken = true
			continue
		}

		if r == '<' {
			toks = append(toks, l.lexLessThan())
			sawToken = true
			continue
		}

		if tok, ok := l.lexSingleCharPunct(r); ok {
			toks = append(toks, tok)
			sawToken = true
			continue
		}

		// illegal character: fatal.
		pos := l.byteOffset[l.pos]
		l.sink.Add(diag.Diagnostic{
			Code:      diag.IllegalCharacter,
			Category:  diag.Syntactic,
			Positions: []int{pos},
			Message:   fmt.Sprintf("caractère illégal '%c'", r),
			Fatal:     true,
		})
		toks = append(toks, token.NewEOF(pos, l.line))
		return token.NewStream(toks), false
	}

	eofPos := l.byteOffset[l.pos]
	toks = append(toks, token.NewEOF(eofPos, l.line))
	return token.NewStream(toks), true
}

func (l *Lexer) atEnd() bool {
	return l.pos >= len(l.runes)
}

func (l *Lexer) cur() rune {
	return l.runes[l.pos]
}

func (l *Lexer) peekAt(off int) rune {
	i := l.pos + off
	if i < 0 || i >= len(l.runes) {
		return 0
	}
	return l.runes[i]
}

// lexNewlines consumes a run of one or more newlines (and any interspersed
// spaces/tabs) as a single logical break. If sawToken is false, this is a
// leading blank-line run and is consumed silently (no token, but the line
// counter still advances); otherwise it produces one NEWLINE token.
func (l *Lexer) lexNewlines(sawToken bool) (token.Token, bool) {
	startPos := l.byteOffset[l.pos]
	startLine := l.line

	count := 0
	for !l.atEnd() {
		switch l.cur() {
		case '\n':
			count++
			l.line++
			l.pos++
		case ' ', '\t':
			l.pos++
		default:
			goto done
		}
	}
done:
	if count == 0 {
		return token.Token{}, false
	}

	if !sawToken {
		return token.Token{}, false
	}

	return token.Token{Kind: token.NEWLINE, Lexeme: "\n", Pos: startPos, Line: startLine}, true
}

func (l *Lexer) lexIdentOrKeyword() token.Token {
	startPos := l.byteOffset[l.pos]
	startLine := l.line

	var sb strings.Builder
	sb.WriteRune(l.cur())
	l.pos++
	for !l.atEnd() && isIdentContinue(l.cur()) {
		sb.WriteRune(l.cur())
		l.pos++
	}

	lexeme := sb.String()
	upper := token.FoldAlias(strings.ToUpper(lexeme))

	if kind, ok := token.Reserved[upper]; ok {
		return token.Token{Kind: kind, Lexeme: upper, Pos: startPos, Line: startLine}
	}

	return token.Token{Kind: token.ID, Lexeme: lexeme, Pos: startPos, Line: startLine}
}

// minusLeadsToDigits reports whether the run of '-' characters starting at
// the cursor is immediately followed by a digit, i.e. whether it should be
// folded into a number literal rather than lexed as standalone MINUS
// tokens.
func (l *Lexer) minusLeadsToDigits() bool {
	i := 0
	for l.peekAt(i) == '-' {
		i++
	}
	return unicode.IsDigit(l.peekAt(i))
}

// lexNumber scans an optional run of leading '-' characters — an odd run
// folds into the literal's sign, an even run cancels out — then digits,
// then an optional '.' and more digits.
func (l *Lexer) lexNumber() token.Token {
	startPos := l.byteOffset[l.pos]
	startLine := l.line

	minuses := 0
	for !l.atEnd() && l.cur() == '-' {
		minuses++
		l.pos++
	}

	var sb strings.Builder
	if minuses%2 == 1 {
		sb.WriteByte('-')
	}

	for !l.atEnd() && unicode.IsDigit(l.cur()) {
		sb.WriteRune(l.cur())
		l.pos++
	}

	isFloat := false
	if !l.atEnd() && l.cur() == '.' && unicode.IsDigit(l.peekAt(1)) {
		isFloat = true
		sb.WriteByte('.')
		l.pos++
		for !l.atEnd() && unicode.IsDigit(l.cur()) {
			sb.WriteRune(l.cur())
			l.pos++
		}
	}

	kind := token.LIT_INT
	if isFloat {
		kind = token.LIT_FLOAT
	}

	return token.Token{Kind: kind, Lexeme: sb.String(), Pos: startPos, Line: startLine}
}

// validCharLiteralBody reports whether r is an acceptable unescaped
// character-literal body rune: printable ASCII other than the quote.
func validCharLiteralBody(r rune) bool {
	return r >= 0x20 && r < 0x7F && r != '\''
}

func (l *Lexer) lexCharLiteral() token.Token {
	startPos := l.byteOffset[l.pos]
	startLine := l.line

	l.pos++ // consume opening quote

	malformed := func() token.Token {
		return token.Token{Kind: token.LIT_CHAR, Lexeme: "bad", Pos: startPos, Line: startLine}
	}

	if l.atEnd() {
		return malformed()
	}

	var lexeme string
	if l.cur() == '\\' {
		esc := l.peekAt(1)
		switch esc {
		case 'n':
			lexeme = "\n"
		case '0':
			lexeme = "\x00"
		case '\'':
			lexeme = "'"
		case '\\':
			lexeme = "\\"
		default:
			return malformed()
		}
		l.pos += 2
	} else if validCharLiteralBody(l.cur()) {
		lexeme = string(l.cur())
		l.pos++
	} else {
		return malformed()
	}

	if l.atEnd() || l.cur() != '\'' {
		return malformed()
	}
	l.pos++ // consume closing quote

	return token.Token{Kind: token.LIT_CHAR, Lexeme: lexeme, Pos: startPos, Line: startLine}
}

// lexDots matches ".." or the three-dot "..." backward-compatibility alias
// as POINTS; a single '.' is the attribute-access DOT token.
func (l *Lexer) lexDots() token.Token {
	startPos := l.byteOffset[l.pos]
	startLine := l.line

	if l.peekAt(1) == '.' {
		n := 2
		if l.peekAt(2) == '.' {
			n = 3
		}
		l.pos += n
		return token.Token{Kind: token.POINTS, Lexeme: strings.Repeat(".", n), Pos: startPos, Line: startLine}
	}

	l.pos++
	return token.Token{Kind: token.DOT, Lexeme: ".", Pos: startPos, Line: startLine}
}

func (l *Lexer) lexLessThan() token.Token {
	startPos := l.byteOffset[l.pos]
	startLine := l.line

	if l.peekAt(1) == '-' && l.peekAt(2) == '-' {
		l.pos += 3
		return token.Token{Kind: token.L_ARROW, Lexeme: "<--", Pos: startPos, Line: startLine}
	}
	if l.peekAt(1) == '=' {
		l.pos += 2
		return token.Token{Kind: token.LTE, Lexeme: "<=", Pos: startPos, Line: startLine}
	}
	l.pos++
	return token.Token{Kind: token.LT, Lexeme: "<", Pos: startPos, Line: startLine}
}

var singleCharKinds = map[rune]token.Kind{
	'+': token.PLUS,
	'-': token.MINUS,
	'*': token.STAR,
	'/': token.SLASH,
	'(': token.LPAREN,
	')': token.RPAREN,
	'{': token.LBRACE,
	'}': token.RBRACE,
	'[': token.LBRACKET,
	']': token.RBRACKET,
	':': token.COLON,
	',': token.COMMA,
	';': token.SEMI,
	'&': token.AMP,
	'^': token.CARET,
	'%': token.PERCENT,
	'!': token.BANG,
}

func (l *Lexer) lexSingleCharPunct(r rune) (token.Token, bool) {
	startPos := l.byteOffset[l.pos]
	startLine := l.line

	if r == '>' {
		if l.peekAt(1) == '=' {
			l.pos += 2
			return token.Token{Kind: token.GTE, Lexeme: ">=", Pos: startPos, Line: startLine}, true
		}
		l.pos++
		return token.Token{Kind: token.GT, Lexeme: ">", Pos: startPos, Line: startLine}, true
	}

	if r == '=' {
		l.pos++
		return token.Token{Kind: token.EQUALS, Lexeme: "=", Pos: startPos, Line: startLine}, true
	}

	if kind, ok := singleCharKinds[r]; ok {
		l.pos++
		return token.Token{Kind: kind, Lexeme: string(r), Pos: startPos, Line: startLine}, true
	}

	return token.Token{}, false
}
