package ast

import (
	"strings"

	"github.com/cwbudde/mjc/internal/asmloc"
	"github.com/cwbudde/mjc/internal/source"
	"github.com/cwbudde/mjc/internal/types"
)

// Parameter is a single formal parameter of a function or method.
// ResolvedType and Location are annotations: nil until the function
// checker (spec.md §4.3) assigns the parameter a memory location.
type Parameter struct {
	Name         string
	Type         *TypeName
	Position     source.Position
	ResolvedType types.Type
	Location     *asmloc.Location
}

func (p *Parameter) Pos() source.Position { return p.Position }
func (p *Parameter) String() string       { return p.Name + ": " + p.Type.String() }

// Params is an ordered parameter list.
type Params []*Parameter

func (ps Params) String() string {
	parts := make([]string, len(ps))
	for i, p := range ps {
		parts[i] = p.String()
	}
	return strings.Join(parts, ", ")
}

// Block is an ordered sequence of statements opening a new lexical scope
// (spec.md §4.6 "Block: enters level+1").
type Block struct {
	Statements []Stmt
	Position   source.Position
}

func (b *Block) stmtNode()               {}
func (b *Block) Pos() source.Position    { return b.Position }
func (b *Block) String() string {
	var sb strings.Builder
	sb.WriteString("{\n")
	for _, s := range b.Statements {
		sb.WriteString("  " + strings.ReplaceAll(s.String(), "\n", "\n  ") + "\n")
	}
	sb.WriteString("}")
	return sb.String()
}

// FunctionDecl is shared by top-level functions and class methods. A
// method is a FunctionDecl owned by a ClassDefinition; spec.md §4.4
// installs an implicit `self` parameter for methods at analysis time
// rather than in the AST, so this struct is identical for both.
//
// ReturnResolvedType, Label and StackSize are annotations filled in by
// the function checker (spec.md §4.3): Label is "top_<name>" for free
// functions or "cls_<class>_<method>" for methods; StackSize is the
// function's most-negative stack_counter value, used verbatim in the
// prologue's `add rsp, <StackSize>`.
type FunctionDecl struct {
	Name               string
	ReturnType         *TypeName
	Params             Params
	Body               *Block
	Position           source.Position
	ReturnResolvedType types.Type
	Label              string
	StackSize          int
	// OwnerClass is the defining class's name for a method, "" for a
	// top-level function. Set by the class checker (spec.md §4.4).
	OwnerClass string
}

func (f *FunctionDecl) Pos() source.Position { return f.Position }
func (f *FunctionDecl) String() string {
	recv := ""
	if f.OwnerClass != "" {
		recv = f.OwnerClass + "."
	}
	ret := "void"
	if f.ReturnType != nil {
		ret = f.ReturnType.String()
	}
	return ret + " " + recv + f.Name + "(" + f.Params.String() + ") " + f.Body.String()
}

// IsMethod reports whether this FunctionDecl is a class method.
func (f *FunctionDecl) IsMethod() bool { return f.OwnerClass != "" }
