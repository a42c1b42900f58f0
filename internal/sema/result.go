package sema

import "github.com/dekarrin/algoc/internal/ast"

// AlgorithmVariables is the exported, read-only view of one algorithm's
// three-map variable table, handed to the emitter so it can declare
// locals and bind input/output parameters without re-deriving them from
// the AST.
type AlgorithmVariables struct {
	Locals  map[string]ast.Type
	Inputs  map[string]ast.Type
	Outputs map[string]ast.Type
}

func (v *variables) export() AlgorithmVariables {
	return AlgorithmVariables{Locals: v.locals, Inputs: v.inputs, Outputs: v.outputs}
}

// ProgramVariables collects every algorithm's variable table for one
// compile, keyed by sub-algorithm name; Main holds the entry point's.
type ProgramVariables struct {
	Main AlgorithmVariables
	Subs map[string]AlgorithmVariables
}
