package semantic

import (
	"github.com/cwbudde/mjc/internal/asmloc"
	"github.com/cwbudde/mjc/internal/ast"
	"github.com/cwbudde/mjc/internal/env"
	"github.com/cwbudde/mjc/internal/types"
)

// analyzeBlock opens a new scope (spec.md §4.6 "Block: enters level+1"),
// checks every statement in order, and returns the environment as it
// stood right before the scope closed — callers that need WasReturn/
// StackCounter to propagate outward read them off this returned value,
// then fold it back into their own (unscoped) environment themselves.
func analyzeBlock(b *ast.Block, e *env.Environment) (*env.Environment, error) {
	cur := e.EnterScope()
	for _, stmt := range b.Statements {
		next, err := analyzeStatement(stmt, cur)
		if err != nil {
			return nil, err
		}
		cur = next
	}
	return cur, nil
}

// analyzeStatement dispatches on statement kind and returns the
// environment to use for whatever statement follows.
func analyzeStatement(stmt ast.Stmt, e *env.Environment) (*env.Environment, error) {
	switch s := stmt.(type) {
	case *ast.EmptyStmt:
		return e, nil
	case *ast.DeclStmt:
		return analyzeDecl(s, e)
	case *ast.AssignStmt:
		return analyzeAssign(s, e)
	case *ast.IncDecStmt:
		return analyzeIncDec(s, e)
	case *ast.ReturnVoidStmt:
		return analyzeReturnVoid(s, e)
	case *ast.ReturnValueStmt:
		return analyzeReturnValue(s, e)
	case *ast.ExprStmt:
		if _, err := analyzeExpr(s.Value, e); err != nil {
			return nil, err
		}
		return e, nil
	case *ast.BlockStmt:
		inner, err := analyzeBlock(s.Body, e)
		if err != nil {
			return nil, err
		}
		next := e.Clone()
		next.WasReturn = inner.WasReturn
		next.StackCounter = inner.StackCounter
		return next, nil
	case *ast.IfStmt:
		return analyzeIf(s, e)
	case *ast.IfElseStmt:
		return analyzeIfElse(s, e)
	case *ast.WhileStmt:
		return analyzeWhile(s, e)
	default:
		return nil, NewCompileError(stmt.Pos(), "unknown statement node %T", stmt)
	}
}

// analyzeDecl rejects same-level redeclaration, type-checks an optional
// initializer against the declared type, and assigns the new local a
// stack slot below every slot handed out so far in this function (spec.md
// §4.6 "Decl").
func analyzeDecl(s *ast.DeclStmt, e *env.Environment) (*env.Environment, error) {
	if existing, ok := e.LookupVar(s.Name); ok && existing.Level == e.Level {
		return nil, NewRedefinitionError(s.Position, "%q is already declared in this scope", s.Name)
	}

	declType, err := resolveType(s.Type, e.Classes)
	if err != nil {
		return nil, err
	}
	if declType.IsVoid() {
		return nil, NewTypeError(s.Position, "variable %q cannot have type void", s.Name)
	}

	if s.Init != nil {
		initType, err := analyzeExpr(s.Init, e)
		if err != nil {
			return nil, err
		}
		if !types.IsSubtype(initType, declType, e.ParentOf) {
			return nil, NewTypeError(s.Init.Pos(), "cannot initialize %q of type %s with %s", s.Name, declType, initType)
		}
	}

	next := e.Clone()
	next.StackCounter -= 8
	loc := asmloc.NewMemory("rbp", next.StackCounter, types.Size(declType))
	s.Location = loc
	next.DeclareVar(s.Name, &env.VarBinding{Type: declType, Level: next.Level, Location: loc})
	return next, nil
}

func analyzeAssign(s *ast.AssignStmt, e *env.Environment) (*env.Environment, error) {
	if !isReference(s.Target) {
		return nil, NewTypeError(s.Position, "assignment target must be a variable or attribute")
	}
	targetType, err := analyzeExpr(s.Target, e)
	if err != nil {
		return nil, err
	}
	valueType, err := analyzeExpr(s.Value, e)
	if err != nil {
		return nil, err
	}
	if !types.IsSubtype(valueType, targetType, e.ParentOf) {
		return nil, NewTypeError(s.Position, "cannot assign %s to %s", valueType, targetType)
	}
	return e, nil
}

func analyzeIncDec(s *ast.IncDecStmt, e *env.Environment) (*env.Environment, error) {
	if !isReference(s.Operand) {
		return nil, NewTypeError(s.Position, "++/-- operand must be a variable or attribute")
	}
	t, err := analyzeExpr(s.Operand, e)
	if err != nil {
		return nil, err
	}
	if t.Tag != types.Int {
		return nil, NewTypeError(s.Position, "++/-- requires int, got %s", t)
	}
	return e, nil
}

func analyzeReturnVoid(s *ast.ReturnVoidStmt, e *env.Environment) (*env.Environment, error) {
	if e.CurrentFunc == nil || !e.CurrentFunc.ReturnType.IsVoid() {
		return nil, NewTypeError(s.Position, "bare return is only valid inside a void function")
	}
	next := e.Clone()
	next.WasReturn = true
	return next, nil
}

func analyzeReturnValue(s *ast.ReturnValueStmt, e *env.Environment) (*env.Environment, error) {
	if e.CurrentFunc == nil {
		return nil, NewTypeError(s.Position, "return outside a function")
	}
	if e.CurrentFunc.ReturnType.IsVoid() {
		return nil, NewTypeError(s.Position, "void function cannot return a value")
	}
	valueType, err := analyzeExpr(s.Value, e)
	if err != nil {
		return nil, err
	}
	if !types.IsSubtype(valueType, e.CurrentFunc.ReturnType, e.ParentOf) {
		return nil, NewTypeError(s.Position, "cannot return %s from a function returning %s", valueType, e.CurrentFunc.ReturnType)
	}
	next := e.Clone()
	next.WasReturn = true
	return next, nil
}

// analyzeIf implements spec.md §4.6/§9's reachability fold: without an
// else branch, the merge point is only definitely-returning when the
// condition provably always takes the then-branch.
func analyzeIf(s *ast.IfStmt, e *env.Environment) (*env.Environment, error) {
	condType, err := analyzeExpr(s.Cond, e)
	if err != nil {
		return nil, err
	}
	if condType.Tag != types.Bool {
		return nil, NewTypeError(s.Cond.Pos(), "if condition must be boolean, got %s", condType)
	}
	if err := rejectBareDecl(s.Then); err != nil {
		return nil, err
	}

	thenEnv, err := analyzeStatement(s.Then, e.Clone())
	if err != nil {
		return nil, err
	}

	next := e.Clone()
	next.StackCounter = thenEnv.StackCounter
	if condValue, ok := foldConstBool(s.Cond); ok && condValue {
		next.WasReturn = e.WasReturn || thenEnv.WasReturn
	} else {
		next.WasReturn = e.WasReturn
	}
	return next, nil
}

// analyzeIfElse folds the condition when possible; otherwise the merge
// point is only definite when BOTH branches definitely return.
func analyzeIfElse(s *ast.IfElseStmt, e *env.Environment) (*env.Environment, error) {
	condType, err := analyzeExpr(s.Cond, e)
	if err != nil {
		return nil, err
	}
	if condType.Tag != types.Bool {
		return nil, NewTypeError(s.Cond.Pos(), "if condition must be boolean, got %s", condType)
	}
	if err := rejectBareDecl(s.Then); err != nil {
		return nil, err
	}
	if err := rejectBareDecl(s.Else); err != nil {
		return nil, err
	}

	thenEnv, err := analyzeStatement(s.Then, e.Clone())
	if err != nil {
		return nil, err
	}
	elseEnv, err := analyzeStatement(s.Else, thenEnv.Clone())
	if err != nil {
		return nil, err
	}

	next := e.Clone()
	next.StackCounter = elseEnv.StackCounter

	if condValue, ok := foldConstBool(s.Cond); ok {
		if condValue {
			next.WasReturn = e.WasReturn || thenEnv.WasReturn
		} else {
			next.WasReturn = e.WasReturn || elseEnv.WasReturn
		}
	} else {
		next.WasReturn = e.WasReturn || (thenEnv.WasReturn && elseEnv.WasReturn)
	}
	return next, nil
}

// analyzeWhile: a condition that folds to constant true makes the loop
// body's exit unreachable, so code after the loop is vacuously
// definitely-returning; otherwise the body may run zero times and
// WasReturn can only come from before the loop.
func analyzeWhile(s *ast.WhileStmt, e *env.Environment) (*env.Environment, error) {
	condType, err := analyzeExpr(s.Cond, e)
	if err != nil {
		return nil, err
	}
	if condType.Tag != types.Bool {
		return nil, NewTypeError(s.Cond.Pos(), "while condition must be boolean, got %s", condType)
	}
	if err := rejectBareDecl(s.Body); err != nil {
		return nil, err
	}

	bodyEnv, err := analyzeStatement(s.Body, e.Clone())
	if err != nil {
		return nil, err
	}

	next := e.Clone()
	next.StackCounter = bodyEnv.StackCounter
	if condValue, ok := foldConstBool(s.Cond); ok && condValue {
		next.WasReturn = true
	} else {
		next.WasReturn = e.WasReturn
	}
	return next, nil
}
