package semantic

import (
	"github.com/cwbudde/mjc/internal/asmloc"
	"github.com/cwbudde/mjc/internal/ast"
	"github.com/cwbudde/mjc/internal/env"
	"github.com/cwbudde/mjc/internal/types"
)

// analyzeFunction checks one top-level function or method (spec.md §4.3):
// it resolves the return type, installs parameters at their calling-
// convention offsets, installs an implicit `self` plus the class's
// attributes when inClass is non-empty, checks the body, and enforces
// the definite-return requirement for non-void functions.
func analyzeFunction(fn *ast.FunctionDecl, parent *env.Environment, inClass string) error {
	retType, err := resolveType(fn.ReturnType, parent.Classes)
	if err != nil {
		return err
	}
	fn.ReturnResolvedType = retType

	fe := parent.Clone()
	fe.Level = 1
	fe.InClass = inClass
	fe.StackCounter = 0
	fe.WasReturn = false
	fe.CurrentFunc = &env.CurrentFunc{Name: fn.Name, ReturnType: retType}

	// Parameters sit above the saved rbp and return address at +16; a
	// method reserves +16 for the implicit receiver and starts its
	// declared parameters at +24 (spec.md §3 "Storage location", §4.4).
	offset := 16
	if inClass != "" {
		info, ok := fe.LookupClass(inClass)
		if !ok {
			return NewUndefinedVariableError(fn.Position, "method %q declared on undefined class %q", fn.Name, inClass)
		}
		fe.DeclareVar("self", &env.VarBinding{
			Type:     types.ClassType(inClass),
			Level:    1,
			Location: asmloc.NewWideRegister("r13"),
		})
		for _, f := range info.Fields {
			fe.DeclareVar(f.Name, &env.VarBinding{
				Type:     f.Type,
				Level:    1,
				Location: asmloc.NewPointer("r13", f.Offset, types.Size(f.Type)),
			})
		}
		offset = 24
	}

	seenParams := map[string]bool{}
	for _, p := range fn.Params {
		if seenParams[p.Name] {
			return NewRedefinitionError(p.Position, "duplicate parameter name %q in %q", p.Name, fn.Name)
		}
		seenParams[p.Name] = true

		pt, err := resolveType(p.Type, fe.Classes)
		if err != nil {
			return err
		}
		if pt.IsVoid() {
			return NewTypeError(p.Position, "parameter %q cannot have type void", p.Name)
		}
		p.ResolvedType = pt
		loc := asmloc.NewMemory("rbp", offset, types.Size(pt))
		p.Location = loc
		fe.DeclareVar(p.Name, &env.VarBinding{Type: pt, Level: 1, Location: loc})
		offset += 8
	}

	bodyEnv, err := analyzeBlock(fn.Body, fe)
	if err != nil {
		return err
	}

	if !retType.IsVoid() && !bodyEnv.WasReturn {
		return NewNoReturnError(fn.Position, "function %q does not definitely return a value on every path", fn.Name)
	}

	fn.StackSize = bodyEnv.StackCounter
	if inClass == "" {
		fn.Label = "top_" + fn.Name
	}
	return nil
}
