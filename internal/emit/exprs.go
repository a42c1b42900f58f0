package emit

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dekarrin/algoc/internal/ast"
)

var binOpSpelling = map[ast.BinOp]string{
	ast.OpAdd: "+", ast.OpSub: "-", ast.OpMul: "*", ast.OpDiv: "/", ast.OpMod: "%",
	ast.OpEq: "==", ast.OpLt: "<", ast.OpGt: ">", ast.OpLte: "<=", ast.OpGte: ">=",
	ast.OpAnd: "&&", ast.OpOr: "||",
}

var unOpSpelling = map[ast.UnOp]string{
	ast.UnPlus: "+", ast.UnMinus: "-", ast.UnDeref: "*", ast.UnAddr: "&", ast.UnNot: "!",
}

// exprToC renders e as a C expression. It assumes e has already been
// through semantic analysis (ExprType is set on every node).
func (c *CEmitter) exprToC(e ast.Expr) string {
	switch ex := e.(type) {
	case *ast.LitInt:
		return strconv.Itoa(ex.Value)
	case *ast.LitFloat:
		return formatFloat(ex.Value)
	case *ast.LitChar:
		return "'" + escapeChar(ex.Value) + "'"
	case *ast.LitBool:
		if ex.Value {
			return "true"
		}
		return "false"
	case *ast.Ident:
		return ex.Name
	case *ast.Paren:
		return "(" + c.exprToC(ex.Inner) + ")"
	case *ast.Binary:
		return fmt.Sprintf("%s %s %s", c.exprToC(ex.Left), binOpSpelling[ex.Op], c.exprToC(ex.Right))
	case *ast.Unary:
		return unOpSpelling[ex.Op] + c.exprToC(ex.Expr)
	case *ast.TableIndex:
		return c.tableIndexToC(ex)
	case *ast.Attribute:
		return c.attributeToC(ex)
	case *ast.Call:
		return fmt.Sprintf("%s(%s)", ex.Func, c.exprList(ex.Args))
	default:
		return ""
	}
}

func (c *CEmitter) tableIndexToC(ex *ast.TableIndex) string {
	var sb strings.Builder
	sb.WriteString(c.exprToC(ex.Table))

	tt, ok := ex.Table.ExprType().(ast.TableType)
	for i, idx := range ex.Indexes {
		idxC := c.exprToC(idx)
		if ok && i < len(tt.Ranges) && tt.Ranges[i].Start != 0 {
			idxC = fmt.Sprintf("(%s - %d)", idxC, tt.Ranges[i].Start)
		}
		sb.WriteString("[")
		sb.WriteString(idxC)
		sb.WriteString("]")
	}
	return sb.String()
}

func (c *CEmitter) attributeToC(ex *ast.Attribute) string {
	sep := "."
	if _, isPtr := ex.Object.ExprType().(ast.PtrType); isPtr {
		sep = "->"
	}
	return c.exprToC(ex.Object) + sep + ex.Field
}

func formatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

func escapeChar(b byte) string {
	switch b {
	case '\n':
		return "\\n"
	case '\'':
		return "\\'"
	case '\\':
		return "\\\\"
	case 0:
		return "\\0"
	default:
		return string(rune(b))
	}
}
