package semantic

import (
	"github.com/cwbudde/mjc/internal/ast"
	"github.com/cwbudde/mjc/internal/env"
	"github.com/cwbudde/mjc/internal/types"
)

// analyzeProgram implements spec.md §4.2: register every top-level
// function's signature (rejecting redefinitions against both the runtime
// intrinsics and other user functions), register and lay out every
// class, then check each function and method body. `main` must exist and
// take no parameters; its return type is otherwise unconstrained and
// subject to the normal definite-return rule like any other function.
func analyzeProgram(prog *ast.Program, root *env.Environment) error {
	for _, fn := range prog.Functions {
		if _, exists := root.Functions[fn.Name]; exists {
			return NewRedefinitionError(fn.Position, "function %q is already defined", fn.Name)
		}
		retType, err := resolveType(fn.ReturnType, root.Classes)
		if err != nil {
			return err
		}

		paramTypes := make([]types.Type, len(fn.Params))
		for i, p := range fn.Params {
			pt, err := resolveType(p.Type, root.Classes)
			if err != nil {
				return err
			}
			paramTypes[i] = pt
		}

		root.Functions[fn.Name] = &env.FuncSignature{
			Name:       fn.Name,
			ReturnType: retType,
			Params:     paramTypes,
		}
	}

	if err := analyzeClasses(prog.Classes, root); err != nil {
		return err
	}

	for _, fn := range prog.Functions {
		if err := analyzeFunction(fn, root, ""); err != nil {
			return err
		}
	}

	mainSig, ok := root.Functions["main"]
	if !ok {
		return NewUndefinedVariableError(prog.Position, "program has no entry function %q", "main")
	}
	if len(mainSig.Params) != 0 {
		return NewTypeError(prog.Position, "entry function %q must take no parameters", "main")
	}
	return nil
}
