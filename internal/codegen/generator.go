// Package codegen lowers an analyzed program into x86-64 NASM assembly
// (spec.md §4.7, §6). It is grounded on the teacher's internal/bytecode
// compiler: one Generator walking the AST and appending emitted
// instructions to a growing buffer, the same switch-dispatch-per-node-
// type shape as bytecode.Compiler.compileExpression/compileStatement,
// generalized from bytecode opcodes to NASM instruction text.
package codegen

import (
	"fmt"
	"strings"

	"github.com/cwbudde/mjc/internal/ast"
	"github.com/cwbudde/mjc/internal/env"
	"github.com/cwbudde/mjc/internal/labels"
	"github.com/cwbudde/mjc/internal/semantic"
)

// Generator accumulates emitted NASM lines. Unlike the teacher's
// bytecode.Compiler it carries no local/global slot bookkeeping of its
// own — the semantic pass already annotated every node with its final
// storage location, so code generation is a pure lowering step.
type Generator struct {
	counter *labels.Counter
	lines   []string

	// currentEpilogue is the label every return in the function presently
	// being generated jumps to, so every exit path runs the same
	// mov rsp,rbp / pop rbp / ret sequence exactly once.
	currentEpilogue string
}

// NewGenerator returns a Generator sharing counter with whatever
// process already minted labels for interned strings, so control-flow
// labels continue the same sequence (spec.md §4.7, §9).
func NewGenerator(counter *labels.Counter) *Generator {
	return &Generator{counter: counter}
}

func (g *Generator) emit(format string, args ...interface{}) {
	g.lines = append(g.lines, "    "+fmt.Sprintf(format, args...))
}

func (g *Generator) emitLines(lines []string) {
	for _, l := range lines {
		g.emit("%s", l)
	}
}

func (g *Generator) label(name string) {
	g.lines = append(g.lines, name+":")
}

func (g *Generator) raw(line string) {
	g.lines = append(g.lines, line)
}

func (g *Generator) newLabel() string {
	return g.counter.Next()
}

// Generate lowers prog, using the environment and label counter an
// earlier semantic.Analyze pass produced, into a complete NASM source
// file (spec.md §6 "Emitted file layout").
func Generate(prog *ast.Program, result *semantic.Result) (string, error) {
	g := NewGenerator(result.Counter)
	if err := g.generateProgram(prog, result.Env); err != nil {
		return "", err
	}
	return strings.Join(g.lines, "\n") + "\n", nil
}

func (g *Generator) generateProgram(prog *ast.Program, e *env.Environment) error {
	g.raw("global top_main")
	g.raw("extern top_printInt")
	g.raw("extern top_printString")
	g.raw("extern top_error")
	g.raw("extern top_readInt")
	g.raw("extern top_readString")
	g.raw("extern top_strConcat")
	g.raw("extern malloc")
	g.raw("")

	g.raw("section .data")
	g.generateStringData(e)
	g.generateVTables(prog, e)
	g.raw("")

	g.raw("section .text")

	for _, fn := range prog.Functions {
		if err := g.generateFunction(fn, e); err != nil {
			return err
		}
	}
	for _, cls := range prog.Classes {
		for _, m := range cls.Methods {
			if err := g.generateFunction(m, e); err != nil {
				return err
			}
		}
	}
	return nil
}

// generateVTables emits one `vtable_<class> dq <label>,...,0` entry per
// class (spec.md §6), in class-declaration order, after the interned
// strings and still inside .data — the layout §6 prescribes.
func (g *Generator) generateVTables(prog *ast.Program, e *env.Environment) {
	for _, cls := range prog.Classes {
		info, ok := e.LookupClass(cls.Name)
		if !ok {
			continue
		}
		var labelsStr []string
		for _, slot := range info.VTable {
			labelsStr = append(labelsStr, slot.Label)
		}
		labelsStr = append(labelsStr, "0")
		g.raw(fmt.Sprintf("%s dq %s", info.VTableLabel, strings.Join(labelsStr, ",")))
	}
}

func (g *Generator) generateStringData(e *env.Environment) {
	for _, ent := range e.Strings.Entries() {
		g.raw(fmt.Sprintf("%s db %s", ent.Label, encodeStringBytes(ent.Value)))
	}
}

// encodeStringBytes renders value as a comma-separated NASM byte list
// (spec.md §6): every character is emitted as its numeric byte value —
// the uniform encoding that automatically covers the escape set
// (\n \t \" \\ \r) and non-ASCII bytes alike — followed by a
// terminating 0.
func encodeStringBytes(value string) string {
	bytes := []byte(value)
	parts := make([]string, 0, len(bytes)+1)
	for _, b := range bytes {
		parts = append(parts, fmt.Sprintf("%d", b))
	}
	parts = append(parts, "0")
	return strings.Join(parts, ",")
}
