package codegen

import (
	"github.com/cwbudde/mjc/internal/asmloc"
	"github.com/cwbudde/mjc/internal/ast"
	"github.com/cwbudde/mjc/internal/types"
)

// evalBinaryOp routes to the boolean-jump protocol for anything that
// produces a boolean (comparisons, &&/||), to the runtime string
// concatenation call for overloaded `+`, and otherwise to direct integer
// arithmetic (spec.md §4.5).
func (g *Generator) evalBinaryOp(b *ast.BinaryOp, dest *asmloc.Location) {
	switch {
	case b.Op.IsLogical(), b.Op.IsComparison(), b.Op == ast.Eq, b.Op == ast.Ne:
		g.materializeBool(b, dest)
	case b.Op == ast.Add && b.ResolvedType.Tag == types.String:
		g.evalStrConcat(b, dest)
	default:
		g.evalArith(b, dest)
	}
}

func (g *Generator) evalStrConcat(b *ast.BinaryOp, dest *asmloc.Location) {
	g.emitCallFrame("top_strConcat", 2, func() {
		g.evalInto(b.Right, regPair("eax", "rax", 8))
		g.emit("push rax")
		g.evalInto(b.Left, regPair("eax", "rax", 8))
		g.emit("push rax")
	}, dest)
}

func (g *Generator) evalArith(b *ast.BinaryOp, dest *asmloc.Location) {
	g.evalInto(b.Left, eax4)
	g.emit("push rax")
	g.evalInto(b.Right, eax4)
	g.emit("mov ebx, eax")
	g.emit("pop rax")
	switch b.Op {
	case ast.Add:
		g.emit("add eax, ebx")
	case ast.Sub:
		g.emit("sub eax, ebx")
	case ast.Mul:
		g.emit("imul eax, ebx")
	case ast.Div:
		g.emit("push rdx")
		g.emit("cdq")
		g.emit("idiv ebx")
		g.emit("pop rdx")
	case ast.Mod:
		g.emit("push rdx")
		g.emit("cdq")
		g.emit("idiv ebx")
		g.emit("mov eax, edx")
		g.emit("pop rdx")
	}
	if dest.Narrow != "eax" {
		g.emit("mov %s, eax", dest.Narrow)
	}
}

// booleanJump emits code that jumps to trueLabel or falseLabel without
// ever materializing a 0/1 value, the short-circuit protocol from
// spec.md §4.5/§9. Every expression kind falls back to evaluating itself
// into a register and testing it against zero when it has no cheaper
// jump form of its own.
func (g *Generator) booleanJump(expr ast.Expr, trueLabel, falseLabel string) {
	switch e := expr.(type) {
	case *ast.LitTrue:
		g.emit("jmp %s", trueLabel)
	case *ast.LitFalse:
		g.emit("jmp %s", falseLabel)
	case *ast.UnaryOp:
		if e.Op == ast.Not {
			g.booleanJump(e.Operand, falseLabel, trueLabel)
			return
		}
		g.fallbackBooleanJump(expr, trueLabel, falseLabel)
	case *ast.BinaryOp:
		switch {
		case e.Op == ast.And:
			mid := g.newLabel()
			g.booleanJump(e.Left, mid, falseLabel)
			g.label(mid)
			g.booleanJump(e.Right, trueLabel, falseLabel)
		case e.Op == ast.Or:
			mid := g.newLabel()
			g.booleanJump(e.Left, trueLabel, mid)
			g.label(mid)
			g.booleanJump(e.Right, trueLabel, falseLabel)
		case e.Op.IsComparison():
			g.emitComparisonJump(e, trueLabel, falseLabel)
		case e.Op == ast.Eq || e.Op == ast.Ne:
			g.emitEqualityJump(e, trueLabel, falseLabel)
		default:
			g.fallbackBooleanJump(expr, trueLabel, falseLabel)
		}
	default:
		g.fallbackBooleanJump(expr, trueLabel, falseLabel)
	}
}

// fallbackBooleanJump materializes expr into rax, saving and restoring
// the caller's rax around it since cmp/pop never disturb the flags the
// jump below reads.
func (g *Generator) fallbackBooleanJump(expr ast.Expr, trueLabel, falseLabel string) {
	g.emit("push rax")
	g.evalInto(expr, eax4)
	g.emit("cmp rax, 0")
	g.emit("pop rax")
	g.emit("je %s", falseLabel)
	g.emit("jmp %s", trueLabel)
}

func (g *Generator) emitComparisonJump(b *ast.BinaryOp, trueLabel, falseLabel string) {
	g.evalInto(b.Left, eax4)
	g.emit("push rax")
	g.evalInto(b.Right, eax4)
	g.emit("mov ebx, eax")
	g.emit("pop rax")
	g.emit("cmp eax, ebx")
	var cc string
	switch b.Op {
	case ast.Lt:
		cc = "jl"
	case ast.Le:
		cc = "jle"
	case ast.Gt:
		cc = "jg"
	case ast.Ge:
		cc = "jge"
	}
	g.emit("%s %s", cc, trueLabel)
	g.emit("jmp %s", falseLabel)
}

// emitEqualityJump compares at the wider of the two operand sizes — safe
// because every value-producing instruction in this generator writes
// its 32-bit half through eax/ebx, which the processor zero-extends
// into the full 64-bit register.
func (g *Generator) emitEqualityJump(b *ast.BinaryOp, trueLabel, falseLabel string) {
	size := types.Size(exprType(b.Left))
	if rsize := types.Size(exprType(b.Right)); rsize > size {
		size = rsize
	}
	l := regPair("eax", "rax", size)
	r := regPair("ebx", "rbx", size)
	g.evalInto(b.Left, l)
	g.emit("push rax")
	g.evalInto(b.Right, l)
	g.emit("mov %s, %s", r.Text(), l.Text())
	g.emit("pop rax")
	g.emit("cmp %s, %s", l.Text(), r.Text())
	if b.Op == ast.Eq {
		g.emit("je %s", trueLabel)
	} else {
		g.emit("jne %s", trueLabel)
	}
	g.emit("jmp %s", falseLabel)
}

// materializeBool wraps booleanJump into a value (spec.md §9): the
// jmp-to-mov protocol that lets any condition also be used where a
// plain boolean value is required (an assignment, a return, an operand
// of another expression).
func (g *Generator) materializeBool(expr ast.Expr, dest *asmloc.Location) {
	lTrue := g.newLabel()
	lFalse := g.newLabel()
	lEnd := g.newLabel()
	g.booleanJump(expr, lTrue, lFalse)
	g.label(lFalse)
	g.emit("mov %s, 0", dest.Text())
	g.emit("jmp %s", lEnd)
	g.label(lTrue)
	g.emit("mov %s, 1", dest.Text())
	g.label(lEnd)
}
