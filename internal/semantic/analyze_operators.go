package semantic

import (
	"github.com/cwbudde/mjc/internal/ast"
	"github.com/cwbudde/mjc/internal/env"
	"github.com/cwbudde/mjc/internal/types"
)

// analyzeBinaryOp type-checks both operands unconditionally — short-circuit
// evaluation (spec.md §4.5's boolean-jump protocol) is purely a
// code-generation concern, and does not change which operands must type-check.
func analyzeBinaryOp(b *ast.BinaryOp, e *env.Environment) (types.Type, error) {
	leftType, err := analyzeExpr(b.Left, e)
	if err != nil {
		return types.Type{}, err
	}
	rightType, err := analyzeExpr(b.Right, e)
	if err != nil {
		return types.Type{}, err
	}

	switch b.Op {
	case ast.Add:
		switch {
		case leftType.Tag == types.Int && rightType.Tag == types.Int:
			b.ResolvedType = types.IntType
		case leftType.Tag == types.String && rightType.Tag == types.String:
			b.ResolvedType = types.StringType
		default:
			return types.Type{}, NewTypeError(b.Position, "+ requires two ints or two strings, got %s and %s", leftType, rightType)
		}
	case ast.Sub, ast.Mul, ast.Div, ast.Mod:
		if leftType.Tag != types.Int || rightType.Tag != types.Int {
			return types.Type{}, NewTypeError(b.Position, "%s requires int operands, got %s and %s", b.Op, leftType, rightType)
		}
		b.ResolvedType = types.IntType
	case ast.Lt, ast.Le, ast.Gt, ast.Ge:
		if leftType.Tag != types.Int || rightType.Tag != types.Int {
			return types.Type{}, NewTypeError(b.Position, "%s requires int operands, got %s and %s", b.Op, leftType, rightType)
		}
		b.ResolvedType = types.BoolType
	case ast.Eq, ast.Ne:
		if !types.IsSubtype(leftType, rightType, e.ParentOf) && !types.IsSubtype(rightType, leftType, e.ParentOf) {
			return types.Type{}, NewTypeError(b.Position, "cannot compare %s and %s", leftType, rightType)
		}
		b.ResolvedType = types.BoolType
	case ast.And, ast.Or:
		if leftType.Tag != types.Bool || rightType.Tag != types.Bool {
			return types.Type{}, NewTypeError(b.Position, "%s requires boolean operands, got %s and %s", b.Op, leftType, rightType)
		}
		b.ResolvedType = types.BoolType
	default:
		return types.Type{}, NewCompileError(b.Position, "unknown operator %s", b.Op)
	}
	return b.ResolvedType, nil
}
