// This file contains the AST nodes for single-inheritance classes: class
// definitions, fields, and (via FunctionDecl) methods.
package ast

import (
	"strings"

	"github.com/cwbudde/mjc/internal/source"
	"github.com/cwbudde/mjc/internal/types"
)

// Field is a class attribute declaration. ResolvedType and Offset are
// annotations: Offset is filled in by the layout resolver (spec.md §4,
// "Class layout"), 8 + 8*index(name) in the flattened field list.
type Field struct {
	Name         string
	Type         *TypeName
	Position     source.Position
	ResolvedType types.Type
	Offset       int
}

func (f *Field) Pos() source.Position { return f.Position }
func (f *Field) String() string       { return f.Name + ": " + f.Type.String() }

// ClassDefinition is a user-defined class: an optional single parent, its
// own fields, and its own methods. Inherited fields/methods are not
// duplicated here — the class checker (spec.md §4.4) walks ParentName
// through the environment to build the full inheritance chain.
type ClassDefinition struct {
	Name       string
	ParentName string // "" if the class has no explicit parent
	Fields     []*Field
	Methods    []*FunctionDecl
	Position   source.Position

	// Size and VTableLabel are annotations filled in by the layout
	// resolver: Size = 8 + 8*len(flattened fields); VTableLabel is
	// "vtable_<name>", the label of the emitted vtable data.
	Size        int
	VTableLabel string
}

func (c *ClassDefinition) Pos() source.Position { return c.Position }
func (c *ClassDefinition) String() string {
	var sb strings.Builder
	sb.WriteString("class " + c.Name)
	if c.ParentName != "" {
		sb.WriteString(" extends " + c.ParentName)
	}
	sb.WriteString(" {\n")
	for _, f := range c.Fields {
		sb.WriteString("  " + f.String() + "\n")
	}
	for _, m := range c.Methods {
		sb.WriteString("  " + m.String() + "\n")
	}
	sb.WriteString("}")
	return sb.String()
}
