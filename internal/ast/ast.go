// Package ast defines the immutable tree handed to the compiler core by
// the (out-of-scope) parser, and the annotation fields the semantic
// analyzer, layout resolver and code generator fill in as they walk it.
//
// The node shape follows the teacher repo's internal/ast package: a small
// Node interface (Pos + String) with Expr/Stmt sub-interfaces implemented
// by concrete structs, one file per concern. Unlike the teacher's AST,
// nodes carry no lexer.Token — lexing/parsing is out of scope here, so a
// node only needs the (line, column) pair spec.md §3 requires.
package ast

import "github.com/cwbudde/mjc/internal/source"

// Node is the base interface every AST node implements.
type Node interface {
	// Pos returns the node's source position, used to anchor every error
	// the compiler reports (spec.md §3, "source-position invariant").
	Pos() source.Position
	// String renders the node for debugging and test failure messages.
	String() string
}

// Expr is any node that produces a value.
type Expr interface {
	Node
	exprNode()
}

// Stmt is any node that performs an action without producing a value.
type Stmt interface {
	Node
	stmtNode()
}

// TypeName is the AST-level, unresolved spelling of a type: a primitive
// keyword ("int", "boolean", "string", "void") or a class name, as the
// parser saw it. The semantic analyzer resolves it to a types.Type.
type TypeName struct {
	Name     string
	Position source.Position
}

func (t *TypeName) Pos() source.Position { return t.Position }
func (t *TypeName) String() string       { return t.Name }

// Program is the root node: a set of top-level functions and class
// definitions, in declaration order.
type Program struct {
	Functions []*FunctionDecl
	Classes   []*ClassDefinition
	Position  source.Position
}

func (p *Program) Pos() source.Position { return p.Position }
func (p *Program) String() string {
	s := ""
	for _, c := range p.Classes {
		s += c.String() + "\n"
	}
	for _, f := range p.Functions {
		s += f.String() + "\n"
	}
	return s
}
