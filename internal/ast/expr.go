package ast

// BinOp and UnOp are the closed sets of binary/unary operator spellings.
type BinOp int

const (
	OpAdd BinOp = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	OpEq
	OpLt
	OpGt
	OpLte
	OpGte
	OpAnd
	OpOr
)

type UnOp int

const (
	UnPlus UnOp = iota
	UnMinus
	UnDeref // &e
	UnAddr  // ^e
	UnNot   // non e
)

// Expr is the closed expression variant set. Every concrete expression
// embeds Pos (the byte offset of its first token), is_assignable (fixed at
// construction time) and a Type slot the analyzer fills in exactly once.
type Expr interface {
	isExpr()
	Position() int
	IsAssignable() bool
	ExprType() Type
	SetExprType(t Type)
}

// exprBase factors the bookkeeping every Expr variant shares.
type exprBase struct {
	pos        int
	assignable bool
	typ        Type
}

func (e exprBase) Position() int       { return e.pos }
func (e exprBase) IsAssignable() bool  { return e.assignable }
func (e *exprBase) SetExprType(t Type) { e.typ = t }
func (e exprBase) ExprType() Type      { return e.typ }

type LitInt struct {
	exprBase
	Value int
}

func (*LitInt) isExpr() {}

func NewLitInt(pos int, v int) *LitInt {
	return &LitInt{exprBase: exprBase{pos: pos}, Value: v}
}

type LitFloat struct {
	exprBase
	Value float64
}

func (*LitFloat) isExpr() {}

func NewLitFloat(pos int, v float64) *LitFloat {
	return &LitFloat{exprBase: exprBase{pos: pos}, Value: v}
}

type LitChar struct {
	exprBase
	Value byte
}

func (*LitChar) isExpr() {}

func NewLitChar(pos int, v byte) *LitChar {
	return &LitChar{exprBase: exprBase{pos: pos}, Value: v}
}

type LitBool struct {
	exprBase
	Value bool
}

func (*LitBool) isExpr() {}

func NewLitBool(pos int, v bool) *LitBool {
	return &LitBool{exprBase: exprBase{pos: pos}, Value: v}
}

// Ident is a bare identifier reference; it is assignable because it may
// denote a variable's storage.
type Ident struct {
	exprBase
	Name string
}

func (*Ident) isExpr() {}

func NewIdent(pos int, name string) *Ident {
	return &Ident{exprBase: exprBase{pos: pos, assignable: true}, Name: name}
}

// Paren is a parenthesized expression; its type is its inner expression's
// type and it is never itself assignable (assignability does not
// propagate through parentheses in this grammar).
type Paren struct {
	exprBase
	Inner Expr
}

func (*Paren) isExpr() {}

func NewParen(pos int, inner Expr) *Paren {
	return &Paren{exprBase: exprBase{pos: pos}, Inner: inner}
}

type Binary struct {
	exprBase
	Op          BinOp
	Left, Right Expr
}

func (*Binary) isExpr() {}

func NewBinary(pos int, op BinOp, left, right Expr) *Binary {
	return &Binary{exprBase: exprBase{pos: pos}, Op: op, Left: left, Right: right}
}

type Unary struct {
	exprBase
	Op   UnOp
	Expr Expr
}

func (*Unary) isExpr() {}

// NewUnary builds a unary expression. Only UnDeref (&e) is assignable —
// per the data model, dereferences denote storage the way identifiers,
// table indices and attribute accesses do.
func NewUnary(pos int, op UnOp, expr Expr) *Unary {
	return &Unary{exprBase: exprBase{pos: pos, assignable: op == UnDeref}, Op: op, Expr: expr}
}

// TableIndex is e[i1, ..., ik].
type TableIndex struct {
	exprBase
	Table   Expr
	Indexes []Expr
}

func (*TableIndex) isExpr() {}

func NewTableIndex(pos int, table Expr, indexes []Expr) *TableIndex {
	return &TableIndex{exprBase: exprBase{pos: pos, assignable: true}, Table: table, Indexes: indexes}
}

// Attribute is e.field.
type Attribute struct {
	exprBase
	Object Expr
	Field  string
}

func (*Attribute) isExpr() {}

func NewAttribute(pos int, object Expr, field string) *Attribute {
	return &Attribute{exprBase: exprBase{pos: pos, assignable: true}, Object: object, Field: field}
}

// Call is f(args), an expression-position call. Statement-position calls
// with a "!" output separator are a distinct statement node (CallStmt);
// the parser's error production rejects a "!" call in expression position
// before one of these would ever be built with output args.
type Call struct {
	exprBase
	Func string
	Args []Expr
}

func (*Call) isExpr() {}

func NewCall(pos int, fn string, args []Expr) *Call {
	return &Call{exprBase: exprBase{pos: pos}, Func: fn, Args: args}
}
