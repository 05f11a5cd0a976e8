package types

// ParentLookup resolves a class's immediate parent, matching the shape of
// env.cls from spec.md §3: given a class name it returns the parent class
// name and whether that class exists/has a parent. It is satisfied by
// internal/env.Environment so this package never imports ast or env.
type ParentLookup func(className string) (parent string, ok bool)

// IsSubtype implements spec.md §4.1's is_subtype(sub, sup, env):
//
//   - sub == sup structurally; or
//   - sub is null and sup is a class; or
//   - sub and sup are both classes and walking sub's parent chain reaches sup.
func IsSubtype(sub, sup Type, parentOf ParentLookup) bool {
	if sub.Equal(sup) {
		return true
	}
	if sub.Tag == Null && sup.Tag == Class {
		return true
	}
	if sub.Tag != Class || sup.Tag != Class {
		return false
	}
	name := sub.ClassName
	seen := map[string]bool{name: true}
	for {
		parent, ok := parentOf(name)
		if !ok || parent == "" {
			return false
		}
		if parent == sup.ClassName {
			return true
		}
		if seen[parent] {
			// A cycle here means the hierarchy check (spec.md §4.2) was
			// skipped or bypassed; refuse to loop forever.
			return false
		}
		seen[parent] = true
		name = parent
	}
}

// CanCast implements spec.md §4.1's can_cast(from, to, env): a downcast
// (is_subtype(to, from)) or a null-to-class widening. Casts are checked
// only statically; no runtime type tag is emitted.
func CanCast(from, to Type, parentOf ParentLookup) bool {
	if IsSubtype(to, from, parentOf) {
		return true
	}
	return from.Tag == Null && to.Tag == Class
}
