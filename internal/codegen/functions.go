package codegen

import (
	"github.com/cwbudde/mjc/internal/ast"
	"github.com/cwbudde/mjc/internal/env"
)

// generateFunction emits one function or method's prologue, body and
// epilogue. Parameters and locals already carry their final Memory
// locations from the semantic pass (spec.md §4.3); this stage only has
// to reserve the frame and walk the body.
func (g *Generator) generateFunction(fn *ast.FunctionDecl, e *env.Environment) error {
	g.raw(fn.Label + ":")
	g.emit("push rbp")
	g.emit("mov rbp, rsp")
	// fn.StackSize is the function's most-negative stack_counter value;
	// adding it to rsp reserves exactly that many bytes of locals.
	g.emit("add rsp, %d", fn.StackSize)

	prevEpilogue := g.currentEpilogue
	g.currentEpilogue = fn.Label + "_epilogue"
	defer func() { g.currentEpilogue = prevEpilogue }()

	for _, stmt := range fn.Body.Statements {
		if err := g.generateStmt(stmt); err != nil {
			return err
		}
	}

	g.label(g.currentEpilogue)
	g.emit("mov rsp, rbp")
	g.emit("pop rbp")
	g.emit("ret")
	g.raw("")
	return nil
}
