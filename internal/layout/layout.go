// Package layout builds per-class memory layout and vtables from an
// already name-resolved class hierarchy: flattened field lists with
// 8-byte-aligned offsets, and an override-in-place vtable (spec.md §3
// "Class layout", §4.4). It is grounded on original_source/expr.py's
// ExpNew/ExpAttribute/ExpMethodCall offset arithmetic (`8 + 8*index`,
// `8*slot`), generalized here into a standalone builder invoked once per
// class instead of recomputed ad hoc at every call site.
package layout

import (
	"fmt"
	"sort"

	"github.com/cwbudde/mjc/internal/ast"
	"github.com/cwbudde/mjc/internal/env"
	"github.com/cwbudde/mjc/internal/types"
)

// Build resolves cls's field and method types and constructs its
// env.ClassInfo, annotating cls's AST nodes (Field.Offset, Field.ResolvedType,
// FunctionDecl.Label/OwnerClass/ReturnResolvedType/Param.ResolvedType,
// ClassDefinition.Size/VTableLabel) in the process.
//
// classes must already contain a fully-built ClassInfo for cls's parent
// (callers are expected to process classes in root-first order — see
// ProcessingOrder) and at least a name-only entry for every class so type
// names can be resolved.
func Build(cls *ast.ClassDefinition, classes map[string]*env.ClassInfo) (*env.ClassInfo, error) {
	classExists := func(name string) bool {
		_, ok := classes[name]
		return ok
	}

	var parent *env.ClassInfo
	if cls.ParentName != "" {
		parent = classes[cls.ParentName]
	}

	fields, err := buildFields(cls, parent, classExists)
	if err != nil {
		return nil, err
	}

	vtable, err := buildVTable(cls, parent, classExists)
	if err != nil {
		return nil, err
	}

	cls.Size = 8 + 8*len(fields)
	cls.VTableLabel = "vtable_" + cls.Name

	return &env.ClassInfo{
		Name:        cls.Name,
		ParentName:  cls.ParentName,
		Size:        cls.Size,
		VTableLabel: cls.VTableLabel,
		Fields:      fields,
		VTable:      vtable,
	}, nil
}

// DuplicateFieldError reports a field name reused somewhere in a class's
// inheritance chain (spec.md §7: Redefinition).
type DuplicateFieldError struct {
	ClassName string
	FieldName string
}

func (e *DuplicateFieldError) Error() string {
	return fmt.Sprintf("field %q is already declared in the inheritance chain of class %q", e.FieldName, e.ClassName)
}

// OverrideMismatchError reports a method override whose signature
// doesn't match the method it overrides (spec.md §7: Redefinition).
type OverrideMismatchError struct {
	ClassName       string
	MethodName      string
	ParentClassName string
}

func (e *OverrideMismatchError) Error() string {
	return fmt.Sprintf(
		"method %q in class %q does not match the signature it overrides from %q",
		e.MethodName, e.ClassName, e.ParentClassName)
}

func buildFields(cls *ast.ClassDefinition, parent *env.ClassInfo, classExists types.ClassExists) ([]env.FieldInfo, error) {
	var fields []env.FieldInfo
	seen := map[string]bool{}
	if parent != nil {
		fields = append(fields, parent.Fields...)
		for _, f := range fields {
			seen[f.Name] = true
		}
	}
	for _, f := range cls.Fields {
		if seen[f.Name] {
			return nil, &DuplicateFieldError{ClassName: cls.Name, FieldName: f.Name}
		}
		seen[f.Name] = true

		ft, err := types.ResolveTypeName(f.Type.Name, classExists)
		if err != nil {
			return nil, fmt.Errorf("field %q of class %q: %w", f.Name, cls.Name, err)
		}
		f.ResolvedType = ft
		f.Offset = 8 + 8*len(fields)
		fields = append(fields, env.FieldInfo{Name: f.Name, Type: ft, Offset: f.Offset})
	}
	return fields, nil
}

func buildVTable(cls *ast.ClassDefinition, parent *env.ClassInfo, classExists types.ClassExists) ([]env.VTableSlot, error) {
	var vtable []env.VTableSlot
	slotIndex := map[string]int{}
	if parent != nil {
		vtable = append(vtable, parent.VTable...)
		for i, slot := range vtable {
			slotIndex[slot.Method] = i
		}
	}

	// "each layer contributes its methods in sorted order" (spec.md §3).
	ownMethods := make([]*ast.FunctionDecl, len(cls.Methods))
	copy(ownMethods, cls.Methods)
	sort.Slice(ownMethods, func(i, j int) bool { return ownMethods[i].Name < ownMethods[j].Name })

	for _, m := range ownMethods {
		retType, err := types.ResolveTypeName(m.ReturnType.Name, classExists)
		if err != nil {
			return nil, fmt.Errorf("method %q of class %q: %w", m.Name, cls.Name, err)
		}
		paramTypes := make([]types.Type, len(m.Params))
		for i, p := range m.Params {
			pt, err := types.ResolveTypeName(p.Type.Name, classExists)
			if err != nil {
				return nil, fmt.Errorf("parameter %q of method %q in class %q: %w", p.Name, m.Name, cls.Name, err)
			}
			p.ResolvedType = pt
			paramTypes[i] = pt
		}

		m.ReturnResolvedType = retType
		m.OwnerClass = cls.Name
		m.Label = fmt.Sprintf("cls_%s_%s", cls.Name, m.Name)

		slot := env.VTableSlot{
			Method:        m.Name,
			Label:         m.Label,
			DefiningClass: cls.Name,
			ReturnType:    retType,
			ParamTypes:    paramTypes,
		}

		if idx, overrides := slotIndex[m.Name]; overrides {
			if !signatureEquals(vtable[idx], slot) {
				return nil, &OverrideMismatchError{
					ClassName:       cls.Name,
					MethodName:      m.Name,
					ParentClassName: vtable[idx].DefiningClass,
				}
			}
			vtable[idx] = slot
		} else {
			slotIndex[m.Name] = len(vtable)
			vtable = append(vtable, slot)
		}
	}
	return vtable, nil
}

func signatureEquals(a, b env.VTableSlot) bool {
	if !a.ReturnType.Equal(b.ReturnType) {
		return false
	}
	if len(a.ParamTypes) != len(b.ParamTypes) {
		return false
	}
	for i := range a.ParamTypes {
		if !a.ParamTypes[i].Equal(b.ParamTypes[i]) {
			return false
		}
	}
	return true
}

// UndefinedParentError reports a class naming a parent that was never
// declared (spec.md §7: UndefinedVariable — a missing class).
type UndefinedParentError struct {
	ClassName  string
	ParentName string
}

func (e *UndefinedParentError) Error() string {
	return fmt.Sprintf("class %q has undefined parent %q", e.ClassName, e.ParentName)
}

// CycleError reports a class revisited while still being visited, i.e.
// an actual inheritance cycle (spec.md §7: Cycle).
type CycleError struct {
	ClassName string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("inheritance cycle detected at class %q", e.ClassName)
}

// ProcessingOrder topologically sorts defs root-first, so that by the
// time Build runs on a class its parent has already been built. It
// doubles as the inheritance-cycle check from spec.md §4.2: a class
// revisited while still being visited is a cycle, and a reference to an
// undeclared parent is a distinct failure (the class simply doesn't
// exist, not a cycle).
func ProcessingOrder(defs []*ast.ClassDefinition) ([]*ast.ClassDefinition, error) {
	byName := make(map[string]*ast.ClassDefinition, len(defs))
	for _, c := range defs {
		byName[c.Name] = c
	}

	var order []*ast.ClassDefinition
	done := map[string]bool{}
	visiting := map[string]bool{}

	var visit func(c *ast.ClassDefinition) error
	visit = func(c *ast.ClassDefinition) error {
		if done[c.Name] {
			return nil
		}
		if visiting[c.Name] {
			return &CycleError{ClassName: c.Name}
		}
		visiting[c.Name] = true
		if c.ParentName != "" {
			parent, ok := byName[c.ParentName]
			if !ok {
				return &UndefinedParentError{ClassName: c.Name, ParentName: c.ParentName}
			}
			if err := visit(parent); err != nil {
				return err
			}
		}
		visiting[c.Name] = false
		done[c.Name] = true
		order = append(order, c)
		return nil
	}

	for _, c := range defs {
		if err := visit(c); err != nil {
			return nil, err
		}
	}
	return order, nil
}
