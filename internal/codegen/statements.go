package codegen

import (
	"github.com/cwbudde/mjc/internal/ast"
	"github.com/cwbudde/mjc/internal/types"
)

// generateStmt lowers one statement, dispatching on its concrete type —
// the same shape as the teacher's bytecode.Compiler.compileExpression
// switch, generalized to statements and to emitted text instead of
// bytecode ops.
func (g *Generator) generateStmt(stmt ast.Stmt) error {
	switch s := stmt.(type) {
	case *ast.EmptyStmt:
		return nil
	case *ast.DeclStmt:
		return g.generateDecl(s)
	case *ast.AssignStmt:
		return g.generateAssign(s)
	case *ast.IncDecStmt:
		return g.generateIncDec(s)
	case *ast.ReturnVoidStmt:
		g.emit("jmp %s", g.currentEpilogue)
		return nil
	case *ast.ReturnValueStmt:
		return g.generateReturnValue(s)
	case *ast.ExprStmt:
		g.evalInto(s.Value, regPair("eax", "rax", types.Size(exprType(s.Value))))
		return nil
	case *ast.BlockStmt:
		for _, inner := range s.Body.Statements {
			if err := g.generateStmt(inner); err != nil {
				return err
			}
		}
		return nil
	case *ast.IfStmt:
		return g.generateIf(s)
	case *ast.IfElseStmt:
		return g.generateIfElse(s)
	case *ast.WhileStmt:
		return g.generateWhile(s)
	default:
		return errorf(stmt, "codegen: unknown statement node %T", stmt)
	}
}

func (g *Generator) generateDecl(s *ast.DeclStmt) error {
	if s.Init == nil {
		return nil
	}
	dest := regPair("eax", "rax", s.Location.Size)
	g.evalInto(s.Init, dest)
	g.emitLines(dest.MovToMemory(s.Location))
	return nil
}

func (g *Generator) generateAssign(s *ast.AssignStmt) error {
	loc, err := g.referenceLocation(s.Target)
	if err != nil {
		return err
	}
	dest := regPair("eax", "rax", loc.Size)
	g.evalInto(s.Value, dest)
	g.emitLines(dest.MovToMemory(loc))
	return nil
}

func (g *Generator) generateIncDec(s *ast.IncDecStmt) error {
	loc, err := g.referenceLocation(s.Operand)
	if err != nil {
		return err
	}
	mnemonic := "inc"
	if s.Op == ast.Decrement {
		mnemonic = "dec"
	}
	g.emit("%s %s", mnemonic, loc.Text())
	return nil
}

func (g *Generator) generateReturnValue(s *ast.ReturnValueStmt) error {
	dest := regPair("eax", "rax", types.Size(exprType(s.Value)))
	g.evalInto(s.Value, dest)
	g.emit("jmp %s", g.currentEpilogue)
	return nil
}

// generateIf emits a true label before the then-branch and an end label
// after it; a false condition jumps straight to the end label.
// generateIfElse below emits the corrected if/else label form (spec.md
// §9's open question, resolved in favor of the fixed rather than the
// historical buggy variant): a distinct false/end label pair, with a jmp
// over the else branch so control never falls through into it.
func (g *Generator) generateIf(s *ast.IfStmt) error {
	lTrue := g.newLabel()
	lEnd := g.newLabel()
	g.booleanJump(s.Cond, lTrue, lEnd)
	g.label(lTrue)
	if err := g.generateStmt(s.Then); err != nil {
		return err
	}
	g.label(lEnd)
	return nil
}

func (g *Generator) generateIfElse(s *ast.IfElseStmt) error {
	lTrue := g.newLabel()
	lFalse := g.newLabel()
	lEnd := g.newLabel()
	g.booleanJump(s.Cond, lTrue, lFalse)
	g.label(lTrue)
	if err := g.generateStmt(s.Then); err != nil {
		return err
	}
	g.emit("jmp %s", lEnd)
	g.label(lFalse)
	if err := g.generateStmt(s.Else); err != nil {
		return err
	}
	g.label(lEnd)
	return nil
}

func (g *Generator) generateWhile(s *ast.WhileStmt) error {
	lStart := g.newLabel()
	lBody := g.newLabel()
	lEnd := g.newLabel()
	g.label(lStart)
	g.booleanJump(s.Cond, lBody, lEnd)
	g.label(lBody)
	if err := g.generateStmt(s.Body); err != nil {
		return err
	}
	g.emit("jmp %s", lStart)
	g.label(lEnd)
	return nil
}
