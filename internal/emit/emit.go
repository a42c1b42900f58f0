// Package emit defines the Target contract the compiler driver calls once
// analysis finishes cleanly, and CEmitter, the reference implementation
// that renders an ast.Program as C source per the output format
// contracted by the driver: one record per custom type, one function per
// sub-algorithm, one main function, in source order.
package emit

import (
	"fmt"
	"strings"

	"github.com/dekarrin/algoc/internal/ast"
	"github.com/dekarrin/algoc/internal/sema"
)

// Target renders a fully analyzed program to its target-language text.
// vars supplies the per-algorithm variable tables sema.Analyze built, so
// an implementation need not re-derive declared types from the AST.
type Target interface {
	EmitProgram(p *ast.Program, vars *sema.ProgramVariables) (string, error)
}

// CEmitter is the reference Target: it lowers to C.
type CEmitter struct {
	boolUsed bool
	subs     map[string]*ast.SubAlgorithm
}

// NewCEmitter returns a ready-to-use CEmitter.
func NewCEmitter() *CEmitter {
	return &CEmitter{}
}

func (c *CEmitter) EmitProgram(p *ast.Program, vars *sema.ProgramVariables) (string, error) {
	c.boolUsed = programUsesBool(p)
	c.subs = map[string]*ast.SubAlgorithm{}
	for i := range p.Subs {
		c.subs[p.Subs[i].Name] = &p.Subs[i]
	}

	var body strings.Builder
	for _, ct := range p.Types {
		body.WriteString(c.emitRecord(ct))
		body.WriteString("\n")
	}
	for i := range p.Subs {
		sub := &p.Subs[i]
		body.WriteString(c.emitSub(sub, vars.Subs[sub.Name]))
		body.WriteString("\n")
	}
	body.WriteString(c.emitMain(&p.Main, vars.Main))

	var out strings.Builder
	out.WriteString("#include <stdio.h>\n")
	if c.boolUsed {
		out.WriteString("#include <stdbool.h>\n")
	}
	out.WriteString("\n")
	out.WriteString(body.String())
	return out.String(), nil
}

func programUsesBool(p *ast.Program) bool {
	for _, ct := range p.Types {
		for _, a := range ct.Attributes {
			if typeUsesBool(a.Type) {
				return true
			}
		}
	}
	if mainUsesBool(p.Main.VarDecls) {
		return true
	}
	for _, s := range p.Subs {
		if mainUsesBool(s.VarDecls) || mainUsesBool(s.Inputs) || mainUsesBool(s.Outputs) {
			return true
		}
	}
	return false
}

func mainUsesBool(decls []ast.VarDecl) bool {
	for _, d := range decls {
		if typeUsesBool(d.Type) {
			return true
		}
	}
	return false
}

func typeUsesBool(t ast.Type) bool {
	switch tv := t.(type) {
	case ast.BaseType:
		return tv.Name == ast.Booleen
	case ast.PtrType:
		return typeUsesBool(tv.Inner)
	case ast.TableType:
		return typeUsesBool(tv.Inner)
	default:
		return false
	}
}

// cType maps the four built-in base type spellings to their C
// counterparts; any other name is a custom record type, emitted under
// its own declared name unchanged.
func (c *CEmitter) cType(t ast.Type) string {
	switch tv := t.(type) {
	case ast.BaseType:
		switch tv.Name {
		case ast.Entier:
			return "int"
		case ast.Reel:
			return "float"
		case ast.Caractere:
			return "char"
		case ast.Booleen:
			return "bool"
		default:
			return tv.Name
		}
	case ast.PtrType:
		return c.cType(tv.Inner) + "*"
	case ast.TableType:
		return c.cType(tv.Inner)
	default:
		return "int"
	}
}

func (c *CEmitter) emitRecord(ct ast.CustomType) string {
	var sb strings.Builder
	sb.WriteString("typedef struct {\n")
	for _, attr := range ct.Attributes {
		sb.WriteString("    ")
		sb.WriteString(c.declLine(attr))
		sb.WriteString("\n")
	}
	sb.WriteString(fmt.Sprintf("} %s;\n", ct.Name))
	return sb.String()
}

// declLine renders one "names : type" VarDecl as a C declaration,
// applying array dimensions after each name for Table types.
func (c *CEmitter) declLine(d ast.VarDecl) string {
	tt, isTable := d.Type.(ast.TableType)
	base := c.cType(d.Type)

	names := make([]string, len(d.Names))
	for i, n := range d.Names {
		if isTable {
			names[i] = n + arrayDims(tt)
		} else {
			names[i] = n
		}
	}
	return fmt.Sprintf("%s %s;", base, strings.Join(names, ", "))
}

func arrayDims(tt ast.TableType) string {
	var sb strings.Builder
	for _, r := range tt.Ranges {
		if !r.EndSet {
			sb.WriteString("[]")
			continue
		}
		sb.WriteString(fmt.Sprintf("[%d]", r.End-r.Start+1))
	}
	return sb.String()
}
