// Package semantic implements the compiler's semantic analysis pass
// (spec.md §4.2-§4.6): name resolution, type checking, class layout
// orchestration, and definite-return tracking. Every error is fatal — the
// first one raised aborts the pass and is returned to the caller.
package semantic

import (
	"github.com/cwbudde/mjc/internal/ast"
	"github.com/cwbudde/mjc/internal/env"
	"github.com/cwbudde/mjc/internal/labels"
)

// Result is the fully-annotated program handed to the codegen stage
// (class layouts are already built during analysis): the root environment (carrying the final class/function tables
// and the interned string table) plus the label counter it shares with
// code generation, so control-flow labels continue the same sequence
// string interning started (spec.md §4.7, §9).
type Result struct {
	Env     *env.Environment
	Counter *labels.Counter
}

// Analyze runs the full semantic pass over prog and returns the resulting
// environment, or the first SemanticError encountered.
func Analyze(prog *ast.Program) (*Result, error) {
	counter := labels.NewCounter()
	root := env.NewRootEnvironment(counter)

	if err := analyzeProgram(prog, root); err != nil {
		return nil, err
	}

	return &Result{Env: root, Counter: counter}, nil
}
