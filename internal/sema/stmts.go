package sema

import (
	"fmt"

	"github.com/dekarrin/algoc/internal/ast"
	"github.com/dekarrin/algoc/internal/diag"
)

func (a *Analyzer) checkStmt(s ast.Stmt, vars *variables) {
	switch st := s.(type) {
	case *ast.Assign:
		a.checkAssign(st, vars)
	case *ast.CallStmt:
		a.checkCallStmt(st, vars)
	case *ast.ForStmt:
		a.checkFor(st, vars)
	case *ast.WhileStmt:
		a.checkWhile(st, vars)
	case *ast.IfStmt:
		a.checkIf(st, vars)
	}
}

func (a *Analyzer) checkAssign(st *ast.Assign, vars *variables) {
	lt := a.typeOf(st.Lhs, vars)
	rt := a.typeOf(st.Rhs, vars)

	if !st.Lhs.IsAssignable() {
		a.sink.Add(diag.Diagnostic{
			Code:      diag.NonAssignableExpression,
			Category:  diag.Semantic,
			Positions: []int{st.Lhs.Position()},
			Message:   "le côté gauche d'une affectation doit être assignable",
		})
		return
	}

	if _, isTable := lt.(ast.TableType); isTable {
		a.sink.Add(diag.Diagnostic{
			Code:      diag.TableAssignment,
			Category:  diag.Semantic,
			Positions: []int{st.Position()},
			Message:   "un tableau entier ne peut pas être affecté en une seule fois",
		})
		return
	}

	if !promotable(rt, lt) {
		a.sink.Add(diag.Diagnostic{
			Code:      diag.IncompatibleAssignmentTypes,
			Category:  diag.Semantic,
			Positions: []int{st.Position()},
			Message:   "le type du côté droit est incompatible avec celui du côté gauche",
		})
	}
}

func (a *Analyzer) checkCallStmt(st *ast.CallStmt, vars *variables) {
	sub, ok := a.lookupSub(st.Func)
	if !ok {
		a.sink.Add(diag.Diagnostic{
			Code:      diag.UndefinedFunction,
			Category:  diag.Semantic,
			Positions: []int{st.Position()},
			Message:   fmt.Sprintf("sous-algorithme inconnu '%s'", st.Func),
		})
		for _, arg := range st.Inputs {
			a.typeOf(arg, vars)
		}
		for _, arg := range st.Outputs {
			a.typeOf(arg, vars)
		}
		return
	}

	a.checkCallArity(st.Position(), st.Inputs, sub, vars)

	wantOutputs := flattenDecls(sub.Outputs)
	if len(st.Outputs) != len(wantOutputs) {
		a.sink.Add(diag.Diagnostic{
			Code:      diag.UnmatchedNumberOfOutputs,
			Category:  diag.Semantic,
			Positions: []int{st.Position()},
			Message:   fmt.Sprintf("'%s' produit %d sortie(s), %d fournie(s)", sub.Name, len(wantOutputs), len(st.Outputs)),
		})
		return
	}

	for i, arg := range st.Outputs {
		at := a.typeOf(arg, vars)
		if !arg.IsAssignable() {
			a.sink.Add(diag.Diagnostic{
				Code:      diag.NonAssignableExpression,
				Category:  diag.Semantic,
				Positions: []int{arg.Position()},
				Message:   "un argument de sortie doit être assignable",
			})
			continue
		}
		// Outputs bind storage directly: no entier->réel relaxation.
		if !ast.TypesEqual(at, wantOutputs[i]) {
			a.sink.Add(diag.Diagnostic{
				Code:      diag.IncompatibleOutputType,
				Category:  diag.Semantic,
				Positions: []int{arg.Position()},
				Message:   fmt.Sprintf("type incompatible pour la sortie %d de '%s'", i+1, sub.Name),
			})
		}
	}
}

func (a *Analyzer) checkFor(st *ast.ForStmt, vars *variables) {
	if vt, ok := vars.lookup(st.Var); ok {
		if !isEntier(vt) {
			a.sink.Add(diag.Diagnostic{
				Code:      diag.NonIntegerIterationVariable,
				Category:  diag.Semantic,
				Positions: []int{st.Position()},
				Message:   fmt.Sprintf("la variable de boucle '%s' doit être de type entier", st.Var),
			})
		}
	} else {
		a.sink.Add(diag.Diagnostic{
			Code:      diag.UndeclaredVariable,
			Category:  diag.Semantic,
			Positions: []int{st.Position()},
			Message:   fmt.Sprintf("variable non déclarée '%s'", st.Var),
		})
	}

	if t := a.typeOf(st.Start, vars); !isEntier(t) {
		a.sink.Add(diag.Diagnostic{
			Code:      diag.NonIntegerStart,
			Category:  diag.Semantic,
			Positions: []int{st.Start.Position()},
			Message:   "la borne de départ d'une boucle 'pour' doit être de type entier",
		})
	}
	if t := a.typeOf(st.End, vars); !isEntier(t) {
		a.sink.Add(diag.Diagnostic{
			Code:      diag.NonIntegerEnd,
			Category:  diag.Semantic,
			Positions: []int{st.End.Position()},
			Message:   "la borne de fin d'une boucle 'pour' doit être de type entier",
		})
	}

	for _, s := range st.Body {
		a.checkStmt(s, vars)
	}
}

func (a *Analyzer) checkWhile(st *ast.WhileStmt, vars *variables) {
	if t := a.typeOf(st.Cond, vars); !isBooleen(t) {
		a.sink.Add(diag.Diagnostic{
			Code:      diag.NonBooleanWhileCondition,
			Category:  diag.Semantic,
			Positions: []int{st.Cond.Position()},
			Message:   "la condition d'une boucle 'tant que' doit être de type booléen",
		})
	}
	for _, s := range st.Body {
		a.checkStmt(s, vars)
	}
}

func (a *Analyzer) checkIf(st *ast.IfStmt, vars *variables) {
	for _, br := range st.Branches {
		if br.Cond != nil {
			if t := a.typeOf(br.Cond, vars); !isBooleen(t) {
				a.sink.Add(diag.Diagnostic{
					Code:      diag.NonBooleanIfCondition,
					Category:  diag.Semantic,
					Positions: []int{br.Cond.Position()},
					Message:   "la condition d'un 'si' doit être de type booléen",
				})
			}
		}
		for _, s := range br.Body {
			a.checkStmt(s, vars)
		}
	}
}
