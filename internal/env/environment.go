// Package env implements the stack-of-scopes Environment threaded through
// semantic analysis (spec.md §3 "Environment"): function and class tables,
// the current variable scope, and the two pieces of state that must
// propagate outward through every clone — the string-literal intern table
// and the stack-slot counter.
//
// Grounded on original_source/compiler.py's discipline of deep-copying the
// environment dict on scope entry. spec.md §9's design notes call for the
// systems-language equivalent: a persistent map where class/function
// tables are shared (they are immutable after registration) and only the
// variable table is cloned per scope.
package env

import (
	"github.com/cwbudde/mjc/internal/asmloc"
	"github.com/cwbudde/mjc/internal/labels"
	"github.com/cwbudde/mjc/internal/types"
)

// FuncSignature is the {return type, parameter list} entry of env.fun.
type FuncSignature struct {
	Name       string
	ReturnType types.Type
	Params     []types.Type
}

// ClassInfo is the env.cls entry for a registered class. Fields beyond
// Name/ParentName are filled in by the layout resolver once the class has
// been fully checked; until then they carry zero values.
type ClassInfo struct {
	Name       string
	ParentName string // "" for a root class

	// Layout annotations, set by internal/layout once resolved.
	Size        int
	VTableLabel string
	Fields      []FieldInfo
	VTable      []VTableSlot
}

// FieldInfo is one entry of a class's flattened field list.
type FieldInfo struct {
	Name   string
	Type   types.Type
	Offset int
}

// VTableSlot is one entry of a class's vtable: the method name, the label
// of the most-derived implementation, the defining class, and the
// signature (used both to detect override mismatches and to type-check
// method calls without re-walking the AST).
type VTableSlot struct {
	Method        string
	Label         string
	DefiningClass string
	ReturnType    types.Type
	ParamTypes    []types.Type
}

// VarBinding is the {type, scope level, storage location} triple recorded
// for a declared variable, parameter, or installed attribute.
type VarBinding struct {
	Type     types.Type
	Level    int
	Location *asmloc.Location
}

// CurrentFunc names the enclosing function (or method) and its return
// type, absent (nil) outside any function body.
type CurrentFunc struct {
	Name       string
	ReturnType types.Type
}

// Environment is the full scope-stack mapping described in spec.md §3.
// Functions and Classes are shared by reference across clones (immutable
// post-registration); Vars is cloned per scope; Strings is a shared
// pointer so interning performed in a nested scope is visible to the
// caller once control returns, matching "mutations to strings and
// stack_counter propagate outward".
type Environment struct {
	Functions map[string]*FuncSignature
	Classes   map[string]*ClassInfo
	Vars      map[string]*VarBinding

	Level        int
	CurrentFunc  *CurrentFunc
	InClass      string
	Strings      *StringTable
	WasReturn    bool
	StackCounter int
}

// NewRootEnvironment returns the level-0 environment seeded with the
// runtime's five free functions (spec.md §6's Runtime ABI, minus the
// `top_` prefix which is a codegen-time label decoration, not part of the
// semantic name).
func NewRootEnvironment(counter *labels.Counter) *Environment {
	return &Environment{
		Functions: map[string]*FuncSignature{
			"printInt":    {Name: "printInt", ReturnType: types.VoidType, Params: []types.Type{types.IntType}},
			"printString": {Name: "printString", ReturnType: types.VoidType, Params: []types.Type{types.StringType}},
			"error":       {Name: "error", ReturnType: types.VoidType, Params: nil},
			"readInt":     {Name: "readInt", ReturnType: types.IntType, Params: nil},
			"readString":  {Name: "readString", ReturnType: types.StringType, Params: nil},
		},
		Classes:      map[string]*ClassInfo{},
		Vars:         map[string]*VarBinding{},
		Level:        0,
		Strings:      NewStringTable(counter),
		StackCounter: 0,
	}
}

// Clone returns a new Environment for a nested scope: Functions, Classes
// and Strings are shared; Vars is a shallow copy so declarations in the
// new scope never leak back to the caller.
func (e *Environment) Clone() *Environment {
	vars := make(map[string]*VarBinding, len(e.Vars))
	for name, binding := range e.Vars {
		vars[name] = binding
	}
	return &Environment{
		Functions:    e.Functions,
		Classes:      e.Classes,
		Vars:         vars,
		Level:        e.Level,
		CurrentFunc:  e.CurrentFunc,
		InClass:      e.InClass,
		Strings:      e.Strings,
		WasReturn:    e.WasReturn,
		StackCounter: e.StackCounter,
	}
}

// EnterScope clones the environment and bumps the nesting level, the
// operation a Block performs on entry (spec.md §4.6).
func (e *Environment) EnterScope() *Environment {
	child := e.Clone()
	child.Level++
	return child
}

// LookupVar resolves name in the variable table.
func (e *Environment) LookupVar(name string) (*VarBinding, bool) {
	v, ok := e.Vars[name]
	return v, ok
}

// DeclareVar installs name at the current scope level. Callers are
// responsible for rejecting same-level redeclaration first (spec.md
// §4.6's Decl rule).
func (e *Environment) DeclareVar(name string, binding *VarBinding) {
	e.Vars[name] = binding
}

// LookupFunc resolves name in the function table.
func (e *Environment) LookupFunc(name string) (*FuncSignature, bool) {
	f, ok := e.Functions[name]
	return f, ok
}

// LookupClass resolves name in the class table.
func (e *Environment) LookupClass(name string) (*ClassInfo, bool) {
	c, ok := e.Classes[name]
	return c, ok
}

// ParentOf implements types.ParentLookup against the class table, letting
// internal/types walk inheritance chains without importing env.
func (e *Environment) ParentOf(className string) (string, bool) {
	c, ok := e.Classes[className]
	if !ok || c.ParentName == "" {
		return "", false
	}
	return c.ParentName, true
}
