package codegen

import (
	"fmt"

	"github.com/cwbudde/mjc/internal/asmloc"
	"github.com/cwbudde/mjc/internal/ast"
	"github.com/cwbudde/mjc/internal/types"
)

// evalInto emits code that leaves expr's value in dest, a Register
// location. This is the value-producing half of the protocol described
// in spec.md §9 — every expression also supports booleanJump for use
// directly in a condition, bypassing materialization entirely.
func (g *Generator) evalInto(expr ast.Expr, dest *asmloc.Location) {
	switch e := expr.(type) {
	case *ast.Var:
		g.emitLines(e.Location.MovToRegister(dest))
	case *ast.LitInt:
		g.emit("mov %s, %d", dest.Text(), e.Value)
	case *ast.LitTrue:
		g.emit("mov %s, 1", dest.Text())
	case *ast.LitFalse:
		g.emit("mov %s, 0", dest.Text())
	case *ast.LitString:
		g.emit("lea %s, [rel %s]", dest.FullName(), e.Label)
	case *ast.LitNull:
		g.emit("mov %s, 0", dest.FullName())
	case *ast.Call:
		g.evalCall(e, dest)
	case *ast.MethodCall:
		g.evalMethodCall(e, dest)
	case *ast.Attribute:
		g.evalAttribute(e, dest)
	case *ast.New:
		g.evalNew(e, dest)
	case *ast.Cast:
		g.evalInto(e.Value, dest)
	case *ast.UnaryOp:
		g.evalUnaryOp(e, dest)
	case *ast.BinaryOp:
		g.evalBinaryOp(e, dest)
	}
}

// emitCallFrame implements the calling convention (spec.md §3, §6): save
// and 16-byte-align rsp via r12, run pushArgs (which must push exactly
// argCount 8-byte slots, right-to-left), call calleeOperand, restore the
// frame, and land the result in dest.
func (g *Generator) emitCallFrame(calleeOperand string, argCount int, pushArgs func(), dest *asmloc.Location) {
	g.emit("push r12")
	g.emit("mov r12, rsp")
	g.emit("and rsp, 0xFFFFFFFFFFFFFFF0")
	if argCount%2 == 0 {
		g.emit("sub rsp, 8")
	}
	pushArgs()
	g.emit("call %s", calleeOperand)
	g.emit("mov rsp, r12")
	g.emit("pop r12")
	if dest.FullName() != "rax" {
		g.emit("push rax")
		if dest.Size == 8 {
			g.emit("mov %s, rax", dest.Full)
		} else {
			g.emit("mov %s, eax", dest.Narrow)
		}
		g.emit("pop rax")
	}
}

func (g *Generator) evalCall(call *ast.Call, dest *asmloc.Location) {
	g.emitCallFrame("top_"+call.Name, len(call.Args), func() {
		for i := len(call.Args) - 1; i >= 0; i-- {
			argReg := regPair("eax", "rax", types.Size(exprType(call.Args[i])))
			g.evalInto(call.Args[i], argReg)
			g.emit("push rax")
		}
	}, dest)
}

// evalMethodCall dispatches through the receiver's vtable: r14 holds the
// receiver while its arguments are evaluated, then is repointed to the
// vtable itself (with the receiver preserved in r13) right before the
// indirect call, matching the virtual-dispatch protocol of spec.md §4.4.
func (g *Generator) evalMethodCall(mc *ast.MethodCall, dest *asmloc.Location) {
	g.emit("push r14")
	g.emit("push r13")

	g.evalInto(mc.Receiver, asmloc.NewWideRegister("r14"))

	argCount := len(mc.Args) + 1 // + implicit self
	g.emit("push r12")
	g.emit("mov r12, rsp")
	g.emit("and rsp, 0xFFFFFFFFFFFFFFF0")
	if argCount%2 == 0 {
		g.emit("sub rsp, 8")
	}

	for i := len(mc.Args) - 1; i >= 0; i-- {
		argReg := regPair("eax", "rax", types.Size(exprType(mc.Args[i])))
		g.evalInto(mc.Args[i], argReg)
		g.emit("push rax")
	}
	g.emit("mov rax, r14")
	g.emit("push rax")

	g.emit("mov r13, r14")
	g.emit("mov r14, QWORD [r14]")
	g.emit("call [r14 + %d]", mc.MethodOffset)
	g.emit("mov rsp, r12")
	g.emit("pop r12")
	if dest.FullName() != "rax" {
		g.emit("push rax")
		if dest.Size == 8 {
			g.emit("mov %s, rax", dest.Full)
		} else {
			g.emit("mov %s, eax", dest.Narrow)
		}
		g.emit("pop rax")
	}

	g.emit("pop r13")
	g.emit("pop r14")
}

// evalNew allocates cls's instance via malloc, installs its vtable
// pointer, and zero-initializes every field (spec.md §4.5).
func (g *Generator) evalNew(n *ast.New, dest *asmloc.Location) {
	g.emit("push rdi")
	g.emit("mov rdi, %d", n.Size)
	g.emit("call malloc")
	g.emit("mov QWORD [rax], %s", n.VTableLabel)
	for offset := 8; offset < n.Size; offset += 8 {
		g.emit("mov QWORD [rax + %d], 0", offset)
	}
	g.emit("pop rdi")
	if dest.FullName() != "rax" {
		g.emit("push rax")
		g.emit("mov %s, rax", dest.FullName())
		g.emit("pop rax")
	}
}

// evalAttribute evaluates the receiver into dest and then overwrites
// dest with the field's value loaded through it.
func (g *Generator) evalAttribute(a *ast.Attribute, dest *asmloc.Location) {
	g.evalInto(a.Receiver, dest)
	size := types.Size(a.ResolvedType)
	word := "DWORD"
	reg := dest.Narrow
	if size == 8 || reg == "" {
		word = "QWORD"
		reg = dest.Full
	}
	g.emit("mov %s, %s [%s+%d]", reg, word, dest.FullName(), a.Offset)
}

func (g *Generator) evalUnaryOp(u *ast.UnaryOp, dest *asmloc.Location) {
	switch u.Op {
	case ast.Neg:
		g.evalInto(u.Operand, dest)
		g.emit("neg %s", dest.Text())
	case ast.Not:
		g.materializeBool(u, dest)
	}
}

// referenceLocation resolves an lvalue expression to the storage
// location assignment/++/-- write through. An Attribute receiver is
// evaluated into r14 first since its offset is only meaningful relative
// to the object pointer.
func (g *Generator) referenceLocation(expr ast.Expr) (*asmloc.Location, error) {
	switch e := expr.(type) {
	case *ast.Var:
		return e.Location, nil
	case *ast.Attribute:
		g.evalInto(e.Receiver, asmloc.NewWideRegister("r14"))
		return asmloc.NewPointer("r14", e.Offset, types.Size(e.ResolvedType)), nil
	default:
		return nil, fmt.Errorf("expression of type %T is not a reference", expr)
	}
}
