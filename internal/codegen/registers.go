package codegen

import (
	"github.com/cwbudde/mjc/internal/asmloc"
	"github.com/cwbudde/mjc/internal/ast"
	"github.com/cwbudde/mjc/internal/types"
)

// regPair builds a Register location over a fixed narrow/full name pair,
// sized to size (4 or 8) — the working-register convention this
// generator uses throughout (eax/rax as the primary accumulator,
// ebx/rbx as the secondary operand).
func regPair(narrow, full string, size int) *asmloc.Location {
	if size == 8 {
		return asmloc.NewWideRegister(full)
	}
	return asmloc.NewRegister(narrow, full)
}

var (
	eax4 = regPair("eax", "rax", 4)
)

// exprType reads off the resolved type the semantic pass already
// annotated expr with, without re-deriving it.
func exprType(expr ast.Expr) types.Type {
	switch e := expr.(type) {
	case *ast.Var:
		return e.ResolvedType
	case *ast.LitInt:
		return types.IntType
	case *ast.LitTrue, *ast.LitFalse:
		return types.BoolType
	case *ast.LitString:
		return types.StringType
	case *ast.LitNull:
		return types.NullType
	case *ast.Call:
		return e.ResolvedType
	case *ast.MethodCall:
		return e.ResolvedType
	case *ast.Attribute:
		return e.ResolvedType
	case *ast.New:
		return types.ClassType(e.ClassName)
	case *ast.Cast:
		return e.ResolvedType
	case *ast.UnaryOp:
		return e.ResolvedType
	case *ast.BinaryOp:
		return e.ResolvedType
	default:
		return types.VoidType
	}
}
