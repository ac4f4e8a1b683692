package diagfmt

import (
	"fmt"
	"strings"

	"lev/internal/ast"
)

// formatExprInline печатает выражение в исходном синтаксисе,
// расставляя скобки вокруг вложенных бинарных операций.
func formatExprInline(builder *ast.Builder, id ast.ExprID) string {
	expr := builder.Exprs.Get(id)
	if expr == nil {
		return "<nil>"
	}
	switch expr.Kind {
	case ast.ExprLit:
		lit, _ := builder.Exprs.Literal(id)
		if lit.Kind == ast.ExprLitString {
			return fmt.Sprintf("%q", lit.Token.Text)
		}
		return lit.Token.Text
	case ast.ExprIdent:
		ident, _ := builder.Exprs.Ident(id)
		return ident.Name.Text
	case ast.ExprUnary:
		u, _ := builder.Exprs.Unary(id)
		operand := wrapIfBinary(builder, u.Operand)
		if u.Op == ast.ExprUnaryNot {
			return "not " + operand
		}
		return u.Op.String() + operand
	case ast.ExprBinary:
		bin, _ := builder.Exprs.Binary(id)
		return fmt.Sprintf("%s %s %s",
			wrapIfBinary(builder, bin.Left), bin.Op, wrapIfBinary(builder, bin.Right))
	case ast.ExprCall:
		call, _ := builder.Exprs.Call(id)
		args := make([]string, len(call.Args))
		for i, arg := range call.Args {
			args[i] = formatExprInline(builder, arg)
		}
		return fmt.Sprintf("%s(%s)", call.Callee.Text, strings.Join(args, ", "))
	default:
		return "<?>"
	}
}

func wrapIfBinary(builder *ast.Builder, id ast.ExprID) string {
	rendered := formatExprInline(builder, id)
	if e := builder.Exprs.Get(id); e != nil && e.Kind == ast.ExprBinary {
		return "(" + rendered + ")"
	}
	return rendered
}

// formatExprSexpr печатает выражение как S-выражение: (+ 1 (* 2 x)).
func formatExprSexpr(builder *ast.Builder, id ast.ExprID) string {
	expr := builder.Exprs.Get(id)
	if expr == nil {
		return "nil"
	}
	switch expr.Kind {
	case ast.ExprLit, ast.ExprIdent:
		return formatExprInline(builder, id)
	case ast.ExprUnary:
		u, _ := builder.Exprs.Unary(id)
		return fmt.Sprintf("(%s %s)", u.Op, formatExprSexpr(builder, u.Operand))
	case ast.ExprBinary:
		bin, _ := builder.Exprs.Binary(id)
		return fmt.Sprintf("(%s %s %s)", bin.Op,
			formatExprSexpr(builder, bin.Left), formatExprSexpr(builder, bin.Right))
	case ast.ExprCall:
		call, _ := builder.Exprs.Call(id)
		parts := []string{"call", call.Callee.Text}
		for _, arg := range call.Args {
			parts = append(parts, formatExprSexpr(builder, arg))
		}
		return "(" + strings.Join(parts, " ") + ")"
	default:
		return "?"
	}
}
