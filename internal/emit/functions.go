package emit

import (
	"fmt"
	"strings"

	"github.com/dekarrin/algoc/internal/ast"
	"github.com/dekarrin/algoc/internal/sema"
)

// emitSub renders one sub-algorithm as a C function. A sub-algorithm
// with exactly one non-Table output returns that value directly;
// otherwise every output becomes a by-reference (pointer) parameter.
// Every Table parameter (input or output) with an unsized final
// dimension gains one trailing "int _<name>_<i>" length parameter per
// unsized dimension.
func (c *CEmitter) emitSub(sub *ast.SubAlgorithm, vars sema.AlgorithmVariables) string {
	returnsValue, retType := singleScalarOutput(sub.Outputs)

	cReturn := "void"
	if returnsValue {
		cReturn = c.cType(retType)
	}

	params := c.inputParams(sub.Inputs)
	if !returnsValue {
		params = append(params, c.outputParams(sub.Outputs)...)
	}
	if len(params) == 0 {
		params = []string{"void"}
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s %s(%s) {\n", cReturn, sub.Name, strings.Join(params, ", ")))
	sb.WriteString(c.declareLocals(sub.VarDecls))
	sb.WriteString(c.emitStmts(sub.Statements, 1))
	if returnsValue {
		sb.WriteString(fmt.Sprintf("    return %s;\n", firstOutputName(sub.Outputs)))
	}
	sb.WriteString("}\n")
	return sb.String()
}

func (c *CEmitter) emitMain(main *ast.MainAlgorithm, vars sema.AlgorithmVariables) string {
	var sb strings.Builder
	sb.WriteString("int main(void) {\n")
	sb.WriteString(c.declareLocals(main.VarDecls))
	sb.WriteString(c.emitStmts(main.Statements, 1))
	sb.WriteString("    return 0;\n}\n")
	return sb.String()
}

// singleScalarOutput reports whether outputs is exactly one declared
// name of a non-Table type — the only case the emitter compiles to a
// return value instead of a by-reference parameter.
func singleScalarOutput(outputs []ast.VarDecl) (bool, ast.Type) {
	names := flattenNames(outputs)
	if len(names) != 1 {
		return false, nil
	}
	t := typeOfName(outputs, names[0])
	if _, isTable := t.(ast.TableType); isTable {
		return false, nil
	}
	return true, t
}

func firstOutputName(outputs []ast.VarDecl) string {
	names := flattenNames(outputs)
	if len(names) == 0 {
		return ""
	}
	return names[0]
}

func flattenNames(decls []ast.VarDecl) []string {
	var out []string
	for _, d := range decls {
		out = append(out, d.Names...)
	}
	return out
}

func typeOfName(decls []ast.VarDecl, name string) ast.Type {
	for _, d := range decls {
		for _, n := range d.Names {
			if n == name {
				return d.Type
			}
		}
	}
	return nil
}

func (c *CEmitter) inputParams(inputs []ast.VarDecl) []string {
	var out []string
	for _, d := range inputs {
		for _, name := range d.Names {
			out = append(out, c.paramDecl(name, d.Type)...)
		}
	}
	return out
}

// outputParams renders every output as a pointer parameter (by
// reference), since this path is only taken when there is more than one
// output or a Table output (which is always a parameter).
func (c *CEmitter) outputParams(outputs []ast.VarDecl) []string {
	var out []string
	for _, d := range outputs {
		for _, name := range d.Names {
			if _, isTable := d.Type.(ast.TableType); isTable {
				out = append(out, c.paramDecl(name, d.Type)...)
				continue
			}
			out = append(out, fmt.Sprintf("%s *%s", c.cType(d.Type), name))
		}
	}
	return out
}

// paramDecl renders one parameter: a one-dimensional Table type decays to
// a pointer to its element type; a Table of two or more dimensions decays
// to a pointer to the array of its remaining dimensions (every dimension
// but the first must be sized for this to be valid C, mirroring how a C
// array-to-pointer decay itself works). Either way, one trailing length
// parameter is added per unsized dimension. Every other type is passed by
// value.
func (c *CEmitter) paramDecl(name string, t ast.Type) []string {
	tt, isTable := t.(ast.TableType)
	if !isTable {
		return []string{fmt.Sprintf("%s %s", c.cType(t), name)}
	}

	var decl string
	if len(tt.Ranges) == 1 {
		decl = fmt.Sprintf("%s *%s", c.cType(tt.Inner), name)
	} else {
		rest := arrayDims(ast.TableType{Ranges: tt.Ranges[1:], Inner: tt.Inner})
		decl = fmt.Sprintf("%s (*%s)%s", c.cType(tt.Inner), name, rest)
	}

	out := []string{decl}
	for i, r := range tt.Ranges {
		if !r.EndSet {
			out = append(out, fmt.Sprintf("int _%s_%d", name, i+1))
		}
	}
	return out
}

func (c *CEmitter) declareLocals(decls []ast.VarDecl) string {
	var sb strings.Builder
	for _, d := range decls {
		sb.WriteString("    ")
		sb.WriteString(c.declLine(d))
		sb.WriteString("\n")
	}
	return sb.String()
}
