// This file contains the control-flow statement nodes: If, IfElse and
// While (spec.md §3, §4.6).
package ast

import "github.com/cwbudde/mjc/internal/source"

// IfStmt is `if (cond) then`. Then may not be a lone DeclStmt — spec.md
// §4.6 requires the analyzer to reject a bare declaration there since no
// new scope would otherwise be opened.
type IfStmt struct {
	Cond     Expr
	Then     Stmt
	Position source.Position
}

func (s *IfStmt) stmtNode()            {}
func (s *IfStmt) Pos() source.Position { return s.Position }
func (s *IfStmt) String() string       { return "if (" + s.Cond.String() + ") " + s.Then.String() }

// IfElseStmt is `if (cond) then else`.
type IfElseStmt struct {
	Cond     Expr
	Then     Stmt
	Else     Stmt
	Position source.Position
}

func (s *IfElseStmt) stmtNode()            {}
func (s *IfElseStmt) Pos() source.Position { return s.Position }
func (s *IfElseStmt) String() string {
	return "if (" + s.Cond.String() + ") " + s.Then.String() + " else " + s.Else.String()
}

// WhileStmt is `while (cond) body`.
type WhileStmt struct {
	Cond     Expr
	Body     Stmt
	Position source.Position
}

func (s *WhileStmt) stmtNode()            {}
func (s *WhileStmt) Pos() source.Position { return s.Position }
func (s *WhileStmt) String() string       { return "while (" + s.Cond.String() + ") " + s.Body.String() }
