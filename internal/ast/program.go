package ast

// VarDecl is one "names : type" declaration line: Variables sections,
// sub-algorithm input/output lists, and Article attribute lists all share
// this shape.
type VarDecl struct {
	Pos   int
	Names []string
	Type  Type
}

// CustomType is a user-defined Article record: a name plus its ordered,
// ungrouped attribute list (each VarDecl here has exactly one name in
// practice, but the parser does not forbid "x, y: entier" inside an
// Article and the analyzer treats both forms identically).
type CustomType struct {
	Pos        int
	Name       string
	Attributes []VarDecl
}

// MainAlgorithm is the program's single entry point.
type MainAlgorithm struct {
	Pos        int
	Name       string
	VarDecls   []VarDecl
	Statements []Stmt
}

// SubAlgorithm is one callable unit with its own input/output/local scope.
type SubAlgorithm struct {
	Pos        int
	Name       string
	Inputs     []VarDecl
	Outputs    []VarDecl
	VarDecls   []VarDecl
	Statements []Stmt
}

// Program is the root node: one main algorithm, any number of
// sub-algorithms, and any number of custom (Article) type definitions, all
// in source order.
type Program struct {
	Pos        int
	Types      []CustomType
	Main       MainAlgorithm
	Subs       []SubAlgorithm
}
