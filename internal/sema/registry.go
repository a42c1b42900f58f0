// Package sema implements the semantic analyzer: the ordered
// type-definition, sub-algorithm-registration and algorithm-analysis
// passes that walk an ast.Program, filling in every expression's
// expr_type slot and reporting diagnostics to a shared diag.Sink.
package sema

import (
	"fmt"

	"github.com/dekarrin/algoc/internal/ast"
	"github.com/dekarrin/algoc/internal/config"
	"github.com/dekarrin/algoc/internal/diag"
	"github.com/dekarrin/algoc/internal/token"
)

// builtinBaseTypes are the four base type spellings the language defines;
// any other bare name in a type position must resolve to a custom type.
var builtinBaseTypes = map[string]bool{
	ast.Entier:    true,
	ast.Reel:      true,
	ast.Booleen:   true,
	ast.Caractere: true,
}

// Analyzer holds the registries built up across the type-definition and
// sub-algorithm-registration phases, shared by algorithm analysis.
type Analyzer struct {
	sink *diag.Sink
	cfg  config.Config

	types map[string]*ast.CustomType
	subs  map[string]*ast.SubAlgorithm
}

// Analyze runs the full ordered pass over prog, reporting to sink, and
// returns the variable tables built for the main algorithm and every
// sub-algorithm. cfg supplies the output-language reserved word set used
// for name-collision checks; pass config.Default() when no project
// configuration applies.
func Analyze(prog *ast.Program, sink *diag.Sink, cfg config.Config) *ProgramVariables {
	a := &Analyzer{
		sink:  sink,
		cfg:   cfg,
		types: map[string]*ast.CustomType{},
		subs:  map[string]*ast.SubAlgorithm{},
	}
	a.registerTypes(prog)
	a.registerSubs(prog)
	a.checkRecursion(prog)

	result := &ProgramVariables{Subs: map[string]AlgorithmVariables{}}

	result.Main = a.analyzeAlgorithm(algoScope{
		name:     prog.Main.Name,
		varDecls: prog.Main.VarDecls,
	}, prog.Main.Statements)

	for i := range prog.Subs {
		sub := &prog.Subs[i]
		result.Subs[sub.Name] = a.analyzeAlgorithm(algoScope{
			name:     sub.Name,
			inputs:   sub.Inputs,
			outputs:  sub.Outputs,
			varDecls: sub.VarDecls,
		}, sub.Statements)
	}

	return result
}

func (a *Analyzer) isReservedName(name string) bool {
	return a.cfg.ReservedSet()[upper(name)] || isLanguageKeyword(name)
}

func isLanguageKeyword(name string) bool {
	_, ok := token.Reserved[upper(name)]
	return ok
}

func upper(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if r >= 'a' && r <= 'z' {
			r -= 'a' - 'A'
		}
		out = append(out, r)
	}
	return string(out)
}

// registerTypes runs type-definition phase (a)-(c): name/attribute
// collision checks and per-attribute type validation. Phase (d),
// recursion detection, runs separately once every name is registered.
func (a *Analyzer) registerTypes(prog *ast.Program) {
	for i := range prog.Types {
		ct := &prog.Types[i]

		if a.isReservedName(ct.Name) {
			a.reservedCollision(ct.Pos, ct.Name)
		} else if _, exists := a.types[upper(ct.Name)]; exists {
			a.sink.Add(diag.Diagnostic{
				Code:      diag.TypeRedefinition,
				Category:  diag.Semantic,
				Positions: []int{ct.Pos},
				Message:   fmt.Sprintf("le type '%s' est déjà défini", ct.Name),
			})
		} else {
			a.types[upper(ct.Name)] = ct
		}

		seen := map[string]bool{}
		for _, attr := range ct.Attributes {
			for _, n := range attr.Names {
				if a.isReservedName(n) {
					a.reservedCollision(attr.Pos, n)
					continue
				}
				if seen[upper(n)] {
					a.sink.Add(diag.Diagnostic{
						Code:      diag.AttributeRedeclaration,
						Category:  diag.Semantic,
						Positions: []int{attr.Pos},
						Message:   fmt.Sprintf("l'attribut '%s' est déjà déclaré dans '%s'", n, ct.Name),
					})
					continue
				}
				seen[upper(n)] = true
			}
			a.validateType(attr.Pos, attr.Type, false)
		}
	}
}

func (a *Analyzer) reservedCollision(pos int, name string) {
	a.sink.Add(diag.Diagnostic{
		Code:      diag.ReservedNameCollision,
		Category:  diag.Semantic,
		Positions: []int{pos},
		Message:   fmt.Sprintf("'%s' est un mot réservé et ne peut pas être utilisé comme identifiant", name),
	})
}

// validateType checks that every base name appearing in t exists (built-in
// or a registered custom type) and that every table range has both
// endpoints with end > start, unless allowUnsized permits an absent end
// (legal only on sub-algorithm input/output declarations).
func (a *Analyzer) validateType(pos int, t ast.Type, allowUnsized bool) {
	switch tv := t.(type) {
	case ast.BaseType:
		if builtinBaseTypes[tv.Name] {
			return
		}
		if _, ok := a.types[upper(tv.Name)]; !ok {
			a.sink.Add(diag.Diagnostic{
				Code:      diag.UnknownBaseType,
				Category:  diag.Semantic,
				Positions: []int{pos},
				Message:   fmt.Sprintf("type inconnu '%s'", tv.Name),
			})
		}
	case ast.PtrType:
		a.validateType(pos, tv.Inner, allowUnsized)
	case ast.TableType:
		for _, r := range tv.Ranges {
			if !r.EndSet {
				if !allowUnsized {
					a.sink.Add(diag.Diagnostic{
						Code:      diag.TableEndNotDefinedForVariable,
						Category:  diag.Semantic,
						Positions: []int{pos},
						Message:   "une dimension de tableau sans borne de fin n'est autorisée que pour un paramètre de sous-algorithme",
					})
				}
				continue
			}
			if r.End <= r.Start {
				a.sink.Add(diag.Diagnostic{
					Code:      diag.TableRangeInvalidEnd,
					Category:  diag.Semantic,
					Positions: []int{pos},
					Message:   fmt.Sprintf("la borne de fin %d doit être supérieure à la borne de début %d", r.End, r.Start),
				})
			}
		}
		a.validateType(pos, tv.Inner, allowUnsized)
	}
}

// registerSubs builds the name -> SubAlgorithm map, diagnosing collisions
// against reserved words, custom type names, and earlier sub-algorithms.
func (a *Analyzer) registerSubs(prog *ast.Program) {
	for i := range prog.Subs {
		sub := &prog.Subs[i]

		if a.isReservedName(sub.Name) {
			a.reservedCollision(sub.Pos, sub.Name)
			continue
		}
		if _, exists := a.types[upper(sub.Name)]; exists {
			a.sink.Add(diag.Diagnostic{
				Code:      diag.IdentifierCollision,
				Category:  diag.Semantic,
				Positions: []int{sub.Pos},
				Message:   fmt.Sprintf("'%s' est déjà utilisé comme nom de type", sub.Name),
			})
			continue
		}
		if _, exists := a.subs[upper(sub.Name)]; exists {
			a.sink.Add(diag.Diagnostic{
				Code:      diag.SubAlgoRedefinition,
				Category:  diag.Semantic,
				Positions: []int{sub.Pos},
				Message:   fmt.Sprintf("le sous-algorithme '%s' est déjà défini", sub.Name),
			})
			continue
		}
		a.subs[upper(sub.Name)] = sub

		for _, decl := range append(append([]ast.VarDecl{}, sub.Inputs...), sub.Outputs...) {
			a.validateType(decl.Pos, decl.Type, true)
		}
	}
}

// checkRecursion runs type-definition phase (d): for each custom type,
// descend through Table inner types (pointers break the chain, following
// named base types into their own custom definitions) and report
// TypeDefinitionRecursion if the starting name is re-encountered.
func (a *Analyzer) checkRecursion(prog *ast.Program) {
	for i := range prog.Types {
		ct := &prog.Types[i]
		visited := map[string]bool{upper(ct.Name): true}
		for _, attr := range ct.Attributes {
			if a.typeRecurses(ct.Name, attr.Type, visited) {
				a.sink.Add(diag.Diagnostic{
					Code:      diag.TypeDefinitionRecursion,
					Category:  diag.Semantic,
					Positions: []int{ct.Pos},
					Message:   fmt.Sprintf("la définition de '%s' est récursive", ct.Name),
				})
				break
			}
		}
	}
}

func (a *Analyzer) typeRecurses(rootName string, t ast.Type, visited map[string]bool) bool {
	switch tv := t.(type) {
	case ast.BaseType:
		if builtinBaseTypes[tv.Name] {
			return false
		}
		if upper(tv.Name) == upper(rootName) {
			return true
		}
		if visited[upper(tv.Name)] {
			return false
		}
		other, ok := a.types[upper(tv.Name)]
		if !ok {
			return false
		}
		visited[upper(tv.Name)] = true
		for _, attr := range other.Attributes {
			if a.typeRecurses(rootName, attr.Type, visited) {
				return true
			}
		}
		return false
	case ast.TableType:
		return a.typeRecurses(rootName, tv.Inner, visited)
	case ast.PtrType:
		// pointers break the recursion chain.
		return false
	default:
		return false
	}
}

// lookupType resolves a BaseType name to its custom definition, if any.
func (a *Analyzer) lookupType(name string) (*ast.CustomType, bool) {
	ct, ok := a.types[upper(name)]
	return ct, ok
}

// lookupSub resolves a call target name to its SubAlgorithm, if any.
func (a *Analyzer) lookupSub(name string) (*ast.SubAlgorithm, bool) {
	sub, ok := a.subs[upper(name)]
	return sub, ok
}
