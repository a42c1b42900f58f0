package sema

import (
	"fmt"

	"github.com/dekarrin/algoc/internal/ast"
	"github.com/dekarrin/algoc/internal/diag"
)

// algoScope is the input to algorithm analysis: either the main algorithm
// (inputs/outputs empty) or one sub-algorithm.
type algoScope struct {
	name     string
	inputs   []ast.VarDecl
	outputs  []ast.VarDecl
	varDecls []ast.VarDecl
}

// variables is the three-map AlgorithmVariables table: locals, inputs and
// outputs are disjoint by construction (phase 3a rejects any name shared
// across them), but lookup always walks all three since a reference in
// the body cannot distinguish which map a name came from.
type variables struct {
	locals  map[string]ast.Type
	inputs  map[string]ast.Type
	outputs map[string]ast.Type
}

func newVariables() *variables {
	return &variables{
		locals:  map[string]ast.Type{},
		inputs:  map[string]ast.Type{},
		outputs: map[string]ast.Type{},
	}
}

// lookup resolves name against all three maps, case-sensitively (unlike
// reserved-word/type-name comparisons, declared variable names are not
// folded since they are plain user identifiers, not keyword spellings).
func (v *variables) lookup(name string) (ast.Type, bool) {
	if t, ok := v.locals[name]; ok {
		return t, true
	}
	if t, ok := v.inputs[name]; ok {
		return t, true
	}
	if t, ok := v.outputs[name]; ok {
		return t, true
	}
	return nil, false
}

// analyzeAlgorithm runs phase 3 for one algorithm: build its variable
// table (3a, 3b), then walk its statements (3c), returning the table for
// the emitter's use.
func (a *Analyzer) analyzeAlgorithm(scope algoScope, body []ast.Stmt) AlgorithmVariables {
	vars := newVariables()

	a.registerDecls(scope.name, scope.inputs, vars.inputs, vars, true)
	a.registerDecls(scope.name, scope.outputs, vars.outputs, vars, true)
	a.registerDecls(scope.name, scope.varDecls, vars.locals, vars, false)

	for _, s := range body {
		a.checkStmt(s, vars)
	}

	return vars.export()
}

// registerDecls validates and inserts decls into dest, using vars to
// detect cross-map collisions (3a). allowUnsized permits table
// declarations to omit an end bound (legal for inputs/outputs only).
func (a *Analyzer) registerDecls(scopeName string, decls []ast.VarDecl, dest map[string]ast.Type, vars *variables, allowUnsized bool) {
	for _, decl := range decls {
		a.validateType(decl.Pos, decl.Type, allowUnsized)
		for _, name := range decl.Names {
			if a.isReservedName(name) {
				a.reservedCollision(decl.Pos, name)
				continue
			}
			if _, exists := a.types[upper(name)]; exists {
				a.sink.Add(diag.Diagnostic{
					Code:      diag.IdentifierCollision,
					Category:  diag.Semantic,
					Positions: []int{decl.Pos},
					Message:   fmt.Sprintf("'%s' est déjà utilisé comme nom de type", name),
				})
				continue
			}
			if _, exists := vars.lookup(name); exists {
				a.sink.Add(diag.Diagnostic{
					Code:      diag.VariableRedeclaration,
					Category:  diag.Semantic,
					Positions: []int{decl.Pos},
					Message:   fmt.Sprintf("'%s' est déjà déclaré dans '%s'", name, scopeName),
				})
				continue
			}
			dest[name] = decl.Type
		}
	}
}
