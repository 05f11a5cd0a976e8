package semantic

import "github.com/cwbudde/mjc/internal/ast"

// foldConstBool attempts to fold expr to a compile-time boolean constant
// by traversing literal operators — bare true/false and any nesting of
// &&, ||, ! over them (spec.md §4.6, §9's reachability fold). ok reports
// whether folding succeeded; any non-literal sub-expression (a variable,
// a call, a comparison, …) makes the whole expression non-constant.
func foldConstBool(expr ast.Expr) (value bool, ok bool) {
	switch e := expr.(type) {
	case *ast.LitTrue:
		return true, true
	case *ast.LitFalse:
		return false, true
	case *ast.UnaryOp:
		if e.Op != ast.Not {
			return false, false
		}
		v, ok := foldConstBool(e.Operand)
		if !ok {
			return false, false
		}
		return !v, true
	case *ast.BinaryOp:
		if e.Op != ast.And && e.Op != ast.Or {
			return false, false
		}
		l, lok := foldConstBool(e.Left)
		r, rok := foldConstBool(e.Right)
		if !lok || !rok {
			return false, false
		}
		if e.Op == ast.And {
			return l && r, true
		}
		return l || r, true
	default:
		return false, false
	}
}
