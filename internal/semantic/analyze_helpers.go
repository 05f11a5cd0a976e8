package semantic

import (
	"github.com/cwbudde/mjc/internal/ast"
	"github.com/cwbudde/mjc/internal/env"
	"github.com/cwbudde/mjc/internal/types"
)

// resolveType maps tn to its semantic Type, wrapping internal/types'
// plain error with the reporting node's position.
func resolveType(tn *ast.TypeName, classes map[string]*env.ClassInfo) (types.Type, error) {
	classExists := func(name string) bool {
		_, ok := classes[name]
		return ok
	}
	t, err := types.ResolveTypeName(tn.Name, classExists)
	if err != nil {
		return types.Type{}, NewUndefinedVariableError(tn.Position, "%s", err.Error())
	}
	return t, nil
}

// isReference reports whether expr is an lvalue (spec.md §4.5's
// is_reference): only Var and Attribute qualify.
func isReference(expr ast.Expr) bool {
	switch expr.(type) {
	case *ast.Var, *ast.Attribute:
		return true
	default:
		return false
	}
}

// rejectBareDecl enforces spec.md §4.6: the body of a bare if/while
// cannot be a lone declaration, since no new scope would otherwise open
// for it.
func rejectBareDecl(stmt ast.Stmt) error {
	if _, ok := stmt.(*ast.DeclStmt); ok {
		return NewTypeError(stmt.Pos(), "a declaration cannot be the sole body of if/while; wrap it in a block")
	}
	return nil
}

func cloneFuncMap(src map[string]*env.FuncSignature) map[string]*env.FuncSignature {
	dst := make(map[string]*env.FuncSignature, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
