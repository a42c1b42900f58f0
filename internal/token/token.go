// Package token defines the closed set of lexical token kinds produced by
// the lexer and consumed by the parser, per the token taxonomy.
package token

import "fmt"

// Kind is the closed set of token kinds. The zero value is not a valid kind
// and is never produced by the lexer.
type Kind int

const (
	Invalid Kind = iota

	// reserved words
	TYPES
	VARIABLES
	INSTRUCTIONS
	POINTEUR
	TABLEAU
	SUR
	DE
	ALGORITHME
	SA
	OU
	ET
	NON
	PE
	PS
	POUR
	ALLANT
	A
	PAR
	PAS
	FINPOUR
	FINALGO
	FINSA
	SOUS
	TANT
	QUE
	FAIRE
	FINTQ
	SI
	SINONSI
	SINON
	FINSI
	ARTICLE
	VRAI
	FAUX

	// literals
	LIT_INT
	LIT_FLOAT
	LIT_CHAR
	LIT_BOOL

	// identifiers
	ID

	// structural punctuation
	NEWLINE
	POINTS   // ".." (and the "..." alias)
	L_ARROW  // "<--"
	LTE      // "<="
	GTE      // ">="
	PLUS     // "+"
	MINUS    // "-"
	STAR     // "*"
	SLASH    // "/"
	LPAREN   // "("
	RPAREN   // ")"
	LBRACE   // "{"
	RBRACE   // "}"
	LBRACKET // "["
	RBRACKET // "]"
	EQUALS   // "="
	COLON    // ":"
	COMMA    // ","
	SEMI     // ";"
	DOT      // "."
	AMP      // "&"
	CARET    // "^"
	PERCENT  // "%"
	BANG     // "!"
	LT       // "<"
	GT       // ">"

	// end of stream, emitted exactly once
	EOF
)

var names = map[Kind]string{
	Invalid:      "INVALID",
	TYPES:        "TYPES",
	VARIABLES:    "VARIABLES",
	INSTRUCTIONS: "INSTRUCTIONS",
	POINTEUR:     "POINTEUR",
	TABLEAU:      "TABLEAU",
	SUR:          "SUR",
	DE:           "DE",
	ALGORITHME:   "ALGORITHME",
	SA:           "SA",
	OU:           "OU",
	ET:           "ET",
	NON:          "NON",
	PE:           "PE",
	PS:           "PS",
	POUR:         "POUR",
	ALLANT:       "ALLANT",
	A:            "A",
	PAR:          "PAR",
	PAS:          "PAS",
	FINPOUR:      "FINPOUR",
	FINALGO:      "FINALGO",
	FINSA:        "FINSA",
	SOUS:         "SOUS",
	TANT:         "TANT",
	QUE:          "QUE",
	FAIRE:        "FAIRE",
	FINTQ:        "FINTQ",
	SI:           "SI",
	SINONSI:      "SINONSI",
	SINON:        "SINON",
	FINSI:        "FINSI",
	ARTICLE:      "ARTICLE",
	VRAI:         "VRAI",
	FAUX:         "FAUX",
	LIT_INT:      "LIT_INT",
	LIT_FLOAT:    "LIT_FLOAT",
	LIT_CHAR:     "LIT_CHAR",
	LIT_BOOL:     "LIT_BOOL",
	ID:           "ID",
	NEWLINE:      "NEWLINE",
	POINTS:       "POINTS",
	L_ARROW:      "L_ARROW",
	LTE:          "LTE",
	GTE:          "GTE",
	PLUS:         "+",
	MINUS:        "-",
	STAR:         "*",
	SLASH:        "/",
	LPAREN:       "(",
	RPAREN:       ")",
	LBRACE:       "{",
	RBRACE:       "}",
	LBRACKET:     "[",
	RBRACKET:     "]",
	EQUALS:       "=",
	COLON:        ":",
	COMMA:        ",",
	SEMI:         ";",
	DOT:          ".",
	AMP:          "&",
	CARET:        "^",
	PERCENT:      "%",
	BANG:         "!",
	LT:           "<",
	GT:           ">",
	EOF:          "EOF",
}

// human is the French-language description of a kind used in diagnostic
// messages, e.g. "un mot clé 'FinAlgo'" or "un identifiant". Populated only
// for kinds that appear by name in rendered diagnostics; kinds absent from
// this map fall back to their String() name in single quotes.
var human = map[Kind]string{
	ID:           "un identifiant",
	LIT_INT:      "un littéral entier",
	LIT_FLOAT:    "un littéral réel",
	LIT_CHAR:     "un littéral caractère",
	LIT_BOOL:     "un littéral booléen",
	NEWLINE:      "une fin de ligne",
	EOF:          "la fin du fichier",
	FINALGO:      "'FinAlgo'",
	FINSA:        "'FinSa'",
	FINSI:        "'FinSi'",
	FINPOUR:      "'FinPour'",
	FINTQ:        "'FinTq'",
	L_ARROW:      "'<--'",
	INSTRUCTIONS: "'Instructions'",
	VARIABLES:    "'Variables'",
}

// Reserved maps the upper-cased keyword spelling to its Kind. It is the
// canonical keyword table the lexer consults after upper-casing an
// identifier-shaped lexeme, and the table the analyzer consults to reject
// identifiers that shadow a reserved word of this language (output-language
// reserved words are a distinct, configurable set; see internal/config).
var Reserved = map[string]Kind{
	"TYPES":        TYPES,
	"VARIABLES":    VARIABLES,
	"INSTRUCTIONS": INSTRUCTIONS,
	"POINTEUR":     POINTEUR,
	"TABLEAU":      TABLEAU,
	"SUR":          SUR,
	"DE":           DE,
	"ALGORITHME":   ALGORITHME,
	"SA":           SA,
	"OU":           OU,
	"ET":           ET,
	"NON":          NON,
	"PE":           PE,
	"PS":           PS,
	"POUR":         POUR,
	"ALLANT":       ALLANT,
	"A":            A,
	"PAR":          PAR,
	"PAS":          PAS,
	"FINPOUR":      FINPOUR,
	"FINALGO":      FINALGO,
	"FINSA":        FINSA,
	"SOUS":         SOUS,
	"TANT":         TANT,
	"QUE":          QUE,
	"FAIRE":        FAIRE,
	"FINTQ":        FINTQ,
	"SI":           SI,
	"SINONSI":      SINONSI,
	"SINON":        SINON,
	"FINSI":        FINSI,
	"ARTICLE":      ARTICLE,
	"VRAI":         VRAI,
	"FAUX":         FAUX,
}

// aliases maps an upper-cased alias spelling to the upper-cased canonical
// keyword it folds to, per the lexer's alias policy.
var aliases = map[string]string{
	"PTR":            "POINTEUR",
	"ALGO":           "ALGORITHME",
	"À":              "A",
	"SOUSALGO":       "SA",
	"SOUSALGORITHME": "SA",
	"REÉL":           "REEL",
}

// FoldAlias returns the canonical upper-cased spelling for upper, applying
// the lexer's alias table if upper names an alias, else returning upper
// unchanged.
func FoldAlias(upper string) string {
	if canon, ok := aliases[upper]; ok {
		return canon
	}
	return upper
}

func (k Kind) String() string {
	if s, ok := names[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Human returns a French human-readable description of the kind suitable
// for embedding in a diagnostic message, falling back to the kind's name
// in single quotes when no bespoke phrasing is registered.
func (k Kind) Human() string {
	if s, ok := human[k]; ok {
		return s
	}
	return fmt.Sprintf("'%s'", k.String())
}

// IsKeyword returns whether k is one of the reserved words of this
// language (as opposed to punctuation, a literal, or a structural token).
func (k Kind) IsKeyword() bool {
	switch k {
	case TYPES, VARIABLES, INSTRUCTIONS, POINTEUR, TABLEAU, SUR, DE, ALGORITHME,
		SA, OU, ET, NON, PE, PS, POUR, ALLANT, A, PAR, PAS, FINPOUR, FINALGO,
		FINSA, SOUS, TANT, QUE, FAIRE, FINTQ, SI, SINONSI, SINON, FINSI,
		ARTICLE, VRAI, FAUX:
		return true
	default:
		return false
	}
}

// Token is a single lexical token: its kind, its literal source text, and
// its position. pos is the byte offset of the token's first rune into the
// owning source.Buffer; line is the 1-based line number of that offset.
type Token struct {
	Kind   Kind
	Lexeme string
	Pos    int
	Line   int
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q)@%d:%d", t.Kind, t.Lexeme, t.Line, t.Pos)
}

// NewEOF builds the synthetic end-of-stream token at the given position.
func NewEOF(pos, line int) Token {
	return Token{Kind: EOF, Lexeme: "", Pos: pos, Line: line}
}
