package emit

import (
	"fmt"
	"strings"

	"github.com/dekarrin/algoc/internal/ast"
)

func ind(level int) string { return strings.Repeat("    ", level) }

func (c *CEmitter) emitStmts(stmts []ast.Stmt, level int) string {
	var sb strings.Builder
	for _, s := range stmts {
		sb.WriteString(c.emitStmt(s, level))
	}
	return sb.String()
}

func (c *CEmitter) emitStmt(s ast.Stmt, level int) string {
	switch st := s.(type) {
	case *ast.Assign:
		return fmt.Sprintf("%s%s = %s;\n", ind(level), c.exprToC(st.Lhs), c.exprToC(st.Rhs))
	case *ast.CallStmt:
		return c.emitCallStmt(st, level)
	case *ast.ForStmt:
		return c.emitFor(st, level)
	case *ast.WhileStmt:
		return c.emitWhile(st, level)
	case *ast.IfStmt:
		return c.emitIf(st, level)
	default:
		return ""
	}
}

// emitCallStmt compiles f(inputs ! outputs). When f has exactly one
// non-Table output and exactly one output argument, the call compiles to
// an assignment from f's return value; otherwise every output argument
// is passed by address (Table arguments, which already decay to
// pointers, are passed bare).
func (c *CEmitter) emitCallStmt(st *ast.CallStmt, level int) string {
	sub, ok := c.subs[st.Func]
	if !ok {
		return fmt.Sprintf("%s%s(%s);\n", ind(level), st.Func, c.exprList(append(append([]ast.Expr{}, st.Inputs...), st.Outputs...)))
	}

	returnsValue, _ := singleScalarOutput(sub.Outputs)
	if returnsValue && len(st.Outputs) == 1 {
		return fmt.Sprintf("%s%s = %s(%s);\n", ind(level), c.exprToC(st.Outputs[0]), st.Func, c.exprList(st.Inputs))
	}

	args := make([]string, 0, len(st.Inputs)+len(st.Outputs))
	for _, a := range st.Inputs {
		args = append(args, c.exprToC(a))
	}
	for _, a := range st.Outputs {
		if _, isTable := a.ExprType().(ast.TableType); isTable {
			args = append(args, c.exprToC(a))
			continue
		}
		args = append(args, "&"+c.exprToC(a))
	}
	return fmt.Sprintf("%s%s(%s);\n", ind(level), st.Func, strings.Join(args, ", "))
}

func (c *CEmitter) exprList(args []ast.Expr) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = c.exprToC(a)
	}
	return strings.Join(parts, ", ")
}

func (c *CEmitter) emitFor(st *ast.ForStmt, level int) string {
	step := st.Step
	if !st.StepSet {
		step = 1
	}

	var cond, update string
	if step < 0 {
		cond = fmt.Sprintf("%s >= %s", st.Var, c.exprToC(st.End))
	} else {
		cond = fmt.Sprintf("%s <= %s", st.Var, c.exprToC(st.End))
	}
	switch step {
	case 1:
		update = st.Var + "++"
	case -1:
		update = st.Var + "--"
	default:
		update = fmt.Sprintf("%s += %d", st.Var, step)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%sfor (%s = %s; %s; %s) {\n", ind(level), st.Var, c.exprToC(st.Start), cond, update))
	sb.WriteString(c.emitStmts(st.Body, level+1))
	sb.WriteString(ind(level))
	sb.WriteString("}\n")
	return sb.String()
}

func (c *CEmitter) emitWhile(st *ast.WhileStmt, level int) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%swhile (%s) {\n", ind(level), c.exprToC(st.Cond)))
	sb.WriteString(c.emitStmts(st.Body, level+1))
	sb.WriteString(ind(level))
	sb.WriteString("}\n")
	return sb.String()
}

func (c *CEmitter) emitIf(st *ast.IfStmt, level int) string {
	var sb strings.Builder
	for i, br := range st.Branches {
		switch {
		case i == 0:
			sb.WriteString(fmt.Sprintf("%sif (%s) {\n", ind(level), c.exprToC(br.Cond)))
		case br.Cond == nil:
			sb.WriteString(fmt.Sprintf("%s} else {\n", ind(level)))
		default:
			sb.WriteString(fmt.Sprintf("%s} else if (%s) {\n", ind(level), c.exprToC(br.Cond)))
		}
		sb.WriteString(c.emitStmts(br.Body, level+1))
	}
	sb.WriteString(ind(level))
	sb.WriteString("}\n")
	return sb.String()
}
