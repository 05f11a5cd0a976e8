package types

import "fmt"

// ClassExists reports whether name is a registered class, letting
// ResolveTypeName validate a class-typed name without internal/types
// importing anything above it.
type ClassExists func(name string) bool

// ResolveTypeName maps a parsed type name — one of the four primitive
// keywords or a class name — to its semantic Type (spec.md §3 "Types").
func ResolveTypeName(name string, classExists ClassExists) (Type, error) {
	switch name {
	case "int":
		return IntType, nil
	case "boolean":
		return BoolType, nil
	case "string":
		return StringType, nil
	case "void":
		return VoidType, nil
	}
	if classExists(name) {
		return ClassType(name), nil
	}
	return Type{}, fmt.Errorf("undefined type %q", name)
}
