package semantic

import (
	"errors"

	"github.com/cwbudde/mjc/internal/ast"
	"github.com/cwbudde/mjc/internal/env"
	"github.com/cwbudde/mjc/internal/layout"
	"github.com/cwbudde/mjc/internal/source"
)

// analyzeClasses registers every class skeleton, resolves layouts in
// root-first order, and checks each class's own methods (spec.md §4.4).
// Skeleton registration happens before any layout is built so that a
// field or method referring to another (possibly not-yet-laid-out)
// class by name resolves successfully.
func analyzeClasses(classes []*ast.ClassDefinition, root *env.Environment) error {
	for _, c := range classes {
		if _, exists := root.Classes[c.Name]; exists {
			return NewRedefinitionError(c.Position, "class %q is already defined", c.Name)
		}
		root.Classes[c.Name] = &env.ClassInfo{Name: c.Name, ParentName: c.ParentName}
	}

	ordered, err := layout.ProcessingOrder(classes)
	if err != nil {
		pos := source.Position{}
		if len(classes) > 0 {
			pos = classes[0].Position
		}
		var undefinedParent *layout.UndefinedParentError
		if errors.As(err, &undefinedParent) {
			return NewUndefinedVariableError(pos, "%s", err.Error())
		}
		return NewCycleError(pos, "%s", err.Error())
	}

	for _, c := range ordered {
		info, err := layout.Build(c, root.Classes)
		if err != nil {
			var dup *layout.DuplicateFieldError
			var mismatch *layout.OverrideMismatchError
			if errors.As(err, &dup) || errors.As(err, &mismatch) {
				return NewRedefinitionError(c.Position, "%s", err.Error())
			}
			return NewUndefinedVariableError(c.Position, "%s", err.Error())
		}
		root.Classes[c.Name] = info
	}

	for _, c := range ordered {
		for _, m := range c.Methods {
			if err := analyzeFunction(m, root, c.Name); err != nil {
				return err
			}
		}
	}
	return nil
}
