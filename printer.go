// printer.go: user-facing value rendering and the AST pretty-printer.
//
// DisplayValue is what ecrire prints (text unquoted); FormatValue is the
// debug/REPL rendering (text quoted). FormatProgram regenerates surface
// syntax from an AST; re-parsing its output yields an equal tree modulo
// positions, which the tests rely on.
package meowlang

import (
	"fmt"
	"strconv"
	"strings"
)

// DisplayValue renders a value the way ecrire shows it.
func DisplayValue(v Value) string {
	switch v.Tag {
	case VTNothing:
		return ""
	case VTBool:
		if v.Data.(bool) {
			return "vrai"
		}
		return "faux"
	case VTInt:
		return strconv.FormatInt(v.Data.(int64), 10)
	case VTFloat:
		return strconv.FormatFloat(v.Data.(float64), 'g', -1, 64)
	case VTText:
		return v.Data.(string)
	case VTList:
		elems := v.Data.(*ListObject).Elems
		parts := make([]string, len(elems))
		for i, el := range elems {
			parts[i] = FormatValue(el)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case VTDict:
		d := v.Data.(*DictObject)
		parts := make([]string, 0, len(d.Keys))
		for _, key := range d.Keys {
			val, _ := d.Get(key)
			parts = append(parts, FormatValue(key)+": "+FormatValue(val))
		}
		return "dictionnaire(" + strings.Join(parts, ", ") + ")"
	case VTFunc:
		return "<fonction " + v.Data.(*Function).Name + ">"
	case VTNative:
		return "<fonction " + v.Data.(*NativeFunc).Name + ">"
	case VTFile:
		return "<fichier " + v.Data.(*FileObject).Path + ">"
	case VTModule:
		return "<module " + v.Data.(*Module).Name + ">"
	default:
		return "<inconnu>"
	}
}

// FormatValue renders a value for the REPL: like DisplayValue except text is
// quoted and rien is spelled out.
func FormatValue(v Value) string {
	switch v.Tag {
	case VTNothing:
		return "rien"
	case VTText:
		return strconv.Quote(v.Data.(string))
	default:
		return DisplayValue(v)
	}
}

// ---- AST pretty-printer ----------------------------------------------------

// FormatProgram renders a parsed program back to surface syntax.
func FormatProgram(p *Program) string {
	var b strings.Builder
	b.WriteString("miaou\n")
	for _, stmt := range p.Statements {
		writeStmt(&b, stmt, 0)
	}
	b.WriteString("meow\n")
	return b.String()
}

func indentOf(depth int) string { return strings.Repeat("    ", depth) }

func writeBlock(b *strings.Builder, stmts []Stmt, depth int) {
	for _, stmt := range stmts {
		writeStmt(b, stmt, depth)
	}
}

func writeStmt(b *strings.Builder, stmt Stmt, depth int) {
	ind := indentOf(depth)
	switch n := stmt.(type) {
	case *ExpressionStatement:
		fmt.Fprintf(b, "%s%s\n", ind, formatExpr(n.Expression))
	case *Assignment:
		fmt.Fprintf(b, "%s%s = %s\n", ind, n.Name, formatExpr(n.Value))
	case *IndexAssignment:
		fmt.Fprintf(b, "%s%s[%s] = %s\n", ind, formatExpr(n.Target), formatExpr(n.Index), formatExpr(n.Value))
	case *If:
		fmt.Fprintf(b, "%ssi %s alors:\n", ind, formatExpr(n.Cond))
		writeBlock(b, n.Then, depth+1)
		for _, elif := range n.Elifs {
			fmt.Fprintf(b, "%ssinon si %s alors:\n", ind, formatExpr(elif.Cond))
			writeBlock(b, elif.Body, depth+1)
		}
		if n.Else != nil {
			fmt.Fprintf(b, "%ssinon:\n", ind)
			writeBlock(b, n.Else, depth+1)
		}
	case *While:
		fmt.Fprintf(b, "%stant que %s:\n", ind, formatExpr(n.Cond))
		writeBlock(b, n.Body, depth+1)
	case *Repeat:
		fmt.Fprintf(b, "%srepeter %s fois:\n", ind, formatExpr(n.Count))
		writeBlock(b, n.Body, depth+1)
	case *ForEach:
		fmt.Fprintf(b, "%spour chaque %s dans %s:\n", ind, n.Var, formatExpr(n.Iter))
		writeBlock(b, n.Body, depth+1)
	case *FunctionDef:
		fmt.Fprintf(b, "%sfonction %s(%s):\n", ind, n.Name, strings.Join(n.Params, ", "))
		writeBlock(b, n.Body, depth+1)
	case *Return:
		if n.Value == nil {
			fmt.Fprintf(b, "%sretour\n", ind)
		} else {
			fmt.Fprintf(b, "%sretour %s\n", ind, formatExpr(n.Value))
		}
	case *Break:
		fmt.Fprintf(b, "%sstop\n", ind)
	case *Continue:
		fmt.Fprintf(b, "%ssuivant\n", ind)
	case *TryExcept:
		fmt.Fprintf(b, "%sessayer:\n", ind)
		writeBlock(b, n.TryBody, depth+1)
		if n.ErrName != "" {
			fmt.Fprintf(b, "%ssauf erreur %s:\n", ind, n.ErrName)
		} else {
			fmt.Fprintf(b, "%ssauf:\n", ind)
		}
		writeBlock(b, n.ExceptBody, depth+1)
	case *Import:
		fmt.Fprintf(b, "%simporter %s\n", ind, n.Module)
	}
}

func formatExpr(expr Expr) string {
	switch n := expr.(type) {
	case *Literal:
		switch n.Kind {
		case LitString:
			return strconv.Quote(n.Str)
		case LitInt:
			return strconv.FormatInt(n.Int, 10)
		case LitFloat:
			s := strconv.FormatFloat(n.Float, 'g', -1, 64)
			if !strings.ContainsAny(s, ".e") {
				s += ".0"
			}
			return s
		default:
			if n.Bool {
				return "vrai"
			}
			return "faux"
		}
	case *Identifier:
		return n.Name
	case *BinaryOp:
		return fmt.Sprintf("(%s %s %s)", formatExpr(n.Left), n.Op, formatExpr(n.Right))
	case *UnaryOp:
		if n.Op == "non" {
			return fmt.Sprintf("(non %s)", formatExpr(n.Operand))
		}
		return fmt.Sprintf("(-%s)", formatExpr(n.Operand))
	case *FunctionCall:
		args := make([]string, len(n.Args))
		for i, a := range n.Args {
			args[i] = formatExpr(a)
		}
		callee := formatExpr(n.Callee)
		// Multi-word builtin callees need the parenthesized call form.
		return fmt.Sprintf("%s(%s)", callee, strings.Join(args, ", "))
	case *IndexAccess:
		return fmt.Sprintf("%s[%s]", formatExpr(n.Target), formatExpr(n.Index))
	case *AttributeAccess:
		return fmt.Sprintf("%s.%s", formatExpr(n.Target), n.Name)
	case *ListExpr:
		parts := make([]string, len(n.Elements))
		for i, el := range n.Elements {
			parts[i] = formatExpr(el)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case *DictExpr:
		parts := make([]string, len(n.Pairs))
		for i, pair := range n.Pairs {
			parts[i] = formatExpr(pair.Key) + ": " + formatExpr(pair.Value)
		}
		return "dictionnaire(" + strings.Join(parts, ", ") + ")"
	default:
		return "<?>"
	}
}
