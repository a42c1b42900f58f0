package sema

import (
	"fmt"

	"github.com/dekarrin/algoc/internal/ast"
	"github.com/dekarrin/algoc/internal/diag"
)

func entierType() ast.Type  { return ast.BaseType{Name: ast.Entier} }
func reelType() ast.Type    { return ast.BaseType{Name: ast.Reel} }
func booleenType() ast.Type { return ast.BaseType{Name: ast.Booleen} }

func isNumeric(t ast.Type) bool {
	b, ok := t.(ast.BaseType)
	return ok && (b.Name == ast.Entier || b.Name == ast.Reel)
}

func isEntier(t ast.Type) bool {
	b, ok := t.(ast.BaseType)
	return ok && b.Name == ast.Entier
}

func isBooleen(t ast.Type) bool {
	b, ok := t.(ast.BaseType)
	return ok && b.Name == ast.Booleen
}

// promotable reports whether a value of type from may be used where type
// to is expected, allowing the single implicit entier->réel widening.
func promotable(from, to ast.Type) bool {
	if ast.TypesEqual(from, to) {
		return true
	}
	return isEntier(from) && ast.TypesEqual(to, reelType())
}

// typeOf computes and records the type of e per the expression typing
// table, reporting diagnostics as it descends. It always returns a
// non-nil Type (falling back to entier) so callers above a failed
// sub-expression keep a fixed result type and errors do not cascade.
func (a *Analyzer) typeOf(e ast.Expr, vars *variables) ast.Type {
	var t ast.Type

	switch ex := e.(type) {
	case *ast.LitInt:
		t = entierType()
	case *ast.LitFloat:
		t = reelType()
	case *ast.LitChar:
		t = ast.BaseType{Name: ast.Caractere}
	case *ast.LitBool:
		t = booleenType()
	case *ast.Ident:
		if vt, ok := vars.lookup(ex.Name); ok {
			t = vt
		} else {
			a.sink.Add(diag.Diagnostic{
				Code:      diag.UndeclaredVariable,
				Category:  diag.Semantic,
				Positions: []int{ex.Position()},
				Message:   fmt.Sprintf("variable non déclarée '%s'", ex.Name),
			})
			t = entierType()
		}
	case *ast.Paren:
		t = a.typeOf(ex.Inner, vars)
	case *ast.TableIndex:
		t = a.typeOfTableIndex(ex, vars)
	case *ast.Attribute:
		t = a.typeOfAttribute(ex, vars)
	case *ast.Unary:
		t = a.typeOfUnary(ex, vars)
	case *ast.Binary:
		t = a.typeOfBinary(ex, vars)
	case *ast.Call:
		t = a.typeOfCallExpr(ex, vars)
	default:
		t = entierType()
	}

	e.SetExprType(t)
	return t
}

func (a *Analyzer) typeOfTableIndex(ex *ast.TableIndex, vars *variables) ast.Type {
	tableType := a.typeOf(ex.Table, vars)
	tt, ok := tableType.(ast.TableType)
	if !ok {
		a.sink.Add(diag.Diagnostic{
			Code:      diag.NonTableElementAccess,
			Category:  diag.Semantic,
			Positions: []int{ex.Position()},
			Message:   "l'indexation ne s'applique qu'à un tableau",
		})
		for _, idx := range ex.Indexes {
			a.typeOf(idx, vars)
		}
		return entierType()
	}

	if len(ex.Indexes) != len(tt.Ranges) {
		a.sink.Add(diag.Diagnostic{
			Code:      diag.UnmatchedTableIndexes,
			Category:  diag.Semantic,
			Positions: []int{ex.Position()},
			Message:   fmt.Sprintf("le tableau a %d dimension(s), %d indice(s) fourni(s)", len(tt.Ranges), len(ex.Indexes)),
		})
	}

	for _, idx := range ex.Indexes {
		it := a.typeOf(idx, vars)
		if !isEntier(it) {
			a.sink.Add(diag.Diagnostic{
				Code:      diag.NonIntegerIndex,
				Category:  diag.Semantic,
				Positions: []int{idx.Position()},
				Message:   "un indice de tableau doit être de type entier",
			})
		}
	}

	return tt.Inner
}

func (a *Analyzer) typeOfAttribute(ex *ast.Attribute, vars *variables) ast.Type {
	objType := a.typeOf(ex.Object, vars)
	bt, ok := objType.(ast.BaseType)
	if !ok {
		a.sink.Add(diag.Diagnostic{
			Code:      diag.NonCustomTypeAttributeAccess,
			Category:  diag.Semantic,
			Positions: []int{ex.Position()},
			Message:   "l'accès par attribut ne s'applique qu'à un article",
		})
		return entierType()
	}
	ct, ok := a.lookupType(bt.Name)
	if !ok {
		a.sink.Add(diag.Diagnostic{
			Code:      diag.NonCustomTypeAttributeAccess,
			Category:  diag.Semantic,
			Positions: []int{ex.Position()},
			Message:   "l'accès par attribut ne s'applique qu'à un article",
		})
		return entierType()
	}
	for _, attr := range ct.Attributes {
		for _, n := range attr.Names {
			if n == ex.Field {
				return attr.Type
			}
		}
	}
	a.sink.Add(diag.Diagnostic{
		Code:      diag.InvalidAttribute,
		Category:  diag.Semantic,
		Positions: []int{ex.Position()},
		Message:   fmt.Sprintf("l'article '%s' n'a pas d'attribut '%s'", ct.Name, ex.Field),
	})
	return entierType()
}

func (a *Analyzer) typeOfUnary(ex *ast.Unary, vars *variables) ast.Type {
	inner := a.typeOf(ex.Expr, vars)

	switch ex.Op {
	case ast.UnPlus, ast.UnMinus:
		if !isNumeric(inner) {
			a.sink.Add(diag.Diagnostic{
				Code:      diag.InvalidUnaryOperationExpressionType,
				Category:  diag.Semantic,
				Positions: []int{ex.Position()},
				Message:   "l'opérande de '+'/'-' unaire doit être numérique",
			})
		}
		return inner
	case ast.UnAddr:
		return ast.PtrType{Inner: inner}
	case ast.UnDeref:
		pt, ok := inner.(ast.PtrType)
		if !ok {
			a.sink.Add(diag.Diagnostic{
				Code:      diag.NonPointerDereference,
				Category:  diag.Semantic,
				Positions: []int{ex.Position()},
				Message:   "'&' ne s'applique qu'à un pointeur",
			})
			return entierType()
		}
		return pt.Inner
	case ast.UnNot:
		if !isBooleen(inner) {
			a.sink.Add(diag.Diagnostic{
				Code:      diag.NonBooleanUnaryNot,
				Category:  diag.Semantic,
				Positions: []int{ex.Position()},
				Message:   "l'opérande de 'non' doit être de type booléen",
			})
		}
		return booleenType()
	default:
		return inner
	}
}

func (a *Analyzer) typeOfBinary(ex *ast.Binary, vars *variables) ast.Type {
	lt := a.typeOf(ex.Left, vars)
	rt := a.typeOf(ex.Right, vars)

	switch ex.Op {
	case ast.OpAdd, ast.OpSub, ast.OpMul, ast.OpDiv:
		if !isNumeric(lt) || !isNumeric(rt) {
			a.sink.Add(diag.Diagnostic{
				Code:      diag.InvalidBinaryOperationTermType,
				Category:  diag.Semantic,
				Positions: []int{ex.Position()},
				Message:   "les opérandes d'une opération arithmétique doivent être numériques",
			})
		}
		if ast.TypesEqual(lt, reelType()) || ast.TypesEqual(rt, reelType()) {
			return reelType()
		}
		return entierType()
	case ast.OpMod:
		if !isEntier(lt) || !isEntier(rt) {
			a.sink.Add(diag.Diagnostic{
				Code:      diag.InvalidBinaryOperationTermType,
				Category:  diag.Semantic,
				Positions: []int{ex.Position()},
				Message:   "les opérandes de '%' doivent être de type entier",
			})
		}
		return entierType()
	case ast.OpEq:
		if _, lIsTable := lt.(ast.TableType); lIsTable {
			a.sink.Add(diag.Diagnostic{
				Code:      diag.InvalidBinaryOperationTermType,
				Category:  diag.Semantic,
				Positions: []int{ex.Position()},
				Message:   "un tableau ne peut pas être comparé",
			})
		} else if !ast.TypesEqual(lt, rt) && !(isNumeric(lt) && isNumeric(rt)) {
			a.sink.Add(diag.Diagnostic{
				Code:      diag.DifferentTypesComparison,
				Category:  diag.Semantic,
				Positions: []int{ex.Position()},
				Message:   "les deux opérandes d'une comparaison doivent être de même type",
			})
		}
		return booleenType()
	case ast.OpLt, ast.OpGt, ast.OpLte, ast.OpGte:
		if !ast.TypesEqual(lt, rt) && !(isNumeric(lt) && isNumeric(rt)) {
			a.sink.Add(diag.Diagnostic{
				Code:      diag.DifferentTypesComparison,
				Category:  diag.Semantic,
				Positions: []int{ex.Position()},
				Message:   "les deux opérandes d'une comparaison doivent être de même type",
			})
		}
		return booleenType()
	case ast.OpAnd, ast.OpOr:
		if !isBooleen(lt) || !isBooleen(rt) {
			a.sink.Add(diag.Diagnostic{
				Code:      diag.InvalidBinaryOperationTermType,
				Category:  diag.Semantic,
				Positions: []int{ex.Position()},
				Message:   "les deux opérandes de 'et'/'ou' doivent être de type booléen",
			})
		}
		return booleenType()
	default:
		return entierType()
	}
}

// typeOfCallExpr handles f(args) in expression position: f must be a
// sub-algorithm with exactly one output, which becomes the call's type.
func (a *Analyzer) typeOfCallExpr(ex *ast.Call, vars *variables) ast.Type {
	for _, arg := range ex.Args {
		a.typeOf(arg, vars)
	}

	sub, ok := a.lookupSub(ex.Func)
	if !ok {
		a.sink.Add(diag.Diagnostic{
			Code:      diag.UndefinedFunction,
			Category:  diag.Semantic,
			Positions: []int{ex.Position()},
			Message:   fmt.Sprintf("sous-algorithme inconnu '%s'", ex.Func),
		})
		return entierType()
	}

	if len(flattenDecls(sub.Outputs)) != 1 {
		a.sink.Add(diag.Diagnostic{
			Code:      diag.NonUniqueOutputFunctionExpr,
			Category:  diag.Semantic,
			Positions: []int{ex.Position()},
			Message:   fmt.Sprintf("'%s' ne peut pas être utilisé en position d'expression : il n'a pas exactement une sortie", ex.Func),
		})
		return entierType()
	}

	a.checkCallArity(ex.Position(), ex.Args, sub, vars)
	return sub.Outputs[0].Type
}

// checkCallArity validates a call's argument list against a
// sub-algorithm's declared input list (the shared input-promotion check
// used by both expression-position and statement-position calls).
func (a *Analyzer) checkCallArity(pos int, args []ast.Expr, sub *ast.SubAlgorithm, vars *variables) {
	wantInputs := flattenDecls(sub.Inputs)
	if len(args) != len(wantInputs) {
		a.sink.Add(diag.Diagnostic{
			Code:      diag.UnmatchedNumberOfInputs,
			Category:  diag.Semantic,
			Positions: []int{pos},
			Message:   fmt.Sprintf("'%s' attend %d entrée(s), %d fournie(s)", sub.Name, len(wantInputs), len(args)),
		})
		return
	}
	for i, arg := range args {
		at := a.typeOf(arg, vars)
		if !promotable(at, wantInputs[i]) {
			a.sink.Add(diag.Diagnostic{
				Code:      diag.IncompatibleInputType,
				Category:  diag.Semantic,
				Positions: []int{arg.Position()},
				Message:   fmt.Sprintf("type incompatible pour l'entrée %d de '%s'", i+1, sub.Name),
			})
		}
	}
}

// flattenDecls expands a VarDecl list (each possibly naming several
// identifiers sharing one type) into one Type per individual name, in
// declaration order.
func flattenDecls(decls []ast.VarDecl) []ast.Type {
	var out []ast.Type
	for _, d := range decls {
		for range d.Names {
			out = append(out, d.Type)
		}
	}
	return out
}
