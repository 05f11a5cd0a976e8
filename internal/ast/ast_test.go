package ast_test

import (
	"testing"

	"github.com/cwbudde/mjc/internal/ast"
)

func TestExprStringRendering(t *testing.T) {
	tests := []struct {
		name string
		expr ast.Expr
		want string
	}{
		{"var", &ast.Var{Name: "x"}, "x"},
		{"binary", &ast.BinaryOp{Op: ast.Add, Left: &ast.Var{Name: "a"}, Right: &ast.Var{Name: "b"}}, "(a + b)"},
		{"unary neg", &ast.UnaryOp{Op: ast.Neg, Operand: &ast.Var{Name: "x"}}, "-x"},
		{"unary not", &ast.UnaryOp{Op: ast.Not, Operand: &ast.Var{Name: "x"}}, "!x"},
		{"new", &ast.New{ClassName: "Animal"}, "new Animal()"},
		{"attribute", &ast.Attribute{Receiver: &ast.Var{Name: "a"}, Name: "age"}, "a.age"},
		{"method call", &ast.MethodCall{Receiver: &ast.Var{Name: "a"}, Method: "speak"}, "a.speak()"},
		{"cast", &ast.Cast{Target: &ast.TypeName{Name: "Dog"}, Value: &ast.Var{Name: "a"}}, "(Dog) a"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.expr.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStmtStringRendering(t *testing.T) {
	decl := &ast.DeclStmt{Name: "x", Type: &ast.TypeName{Name: "int"}, Init: &ast.LitInt{Value: 3}}
	if got, want := decl.String(), "int x = 3;"; got != want {
		t.Errorf("DeclStmt.String() = %q, want %q", got, want)
	}

	assign := &ast.AssignStmt{Target: &ast.Var{Name: "x"}, Value: &ast.LitInt{Value: 4}}
	if got, want := assign.String(), "x = 4;"; got != want {
		t.Errorf("AssignStmt.String() = %q, want %q", got, want)
	}

	inc := &ast.IncDecStmt{Op: ast.Increment, Operand: &ast.Var{Name: "x"}}
	if got, want := inc.String(), "++x;"; got != want {
		t.Errorf("IncDecStmt.String() = %q, want %q", got, want)
	}
}

func TestBinaryOperatorHelpers(t *testing.T) {
	comparisons := []ast.BinaryOperator{ast.Lt, ast.Le, ast.Gt, ast.Ge}
	for _, op := range comparisons {
		if !op.IsComparison() {
			t.Errorf("%v.IsComparison() = false, want true", op)
		}
		if op.IsLogical() {
			t.Errorf("%v.IsLogical() = true, want false", op)
		}
	}

	logical := []ast.BinaryOperator{ast.And, ast.Or}
	for _, op := range logical {
		if !op.IsLogical() {
			t.Errorf("%v.IsLogical() = false, want true", op)
		}
		if op.IsComparison() {
			t.Errorf("%v.IsComparison() = true, want false", op)
		}
	}

	if ast.Add.IsComparison() || ast.Add.IsLogical() {
		t.Error("Add should be neither a comparison nor a logical operator")
	}
}

func TestFunctionDeclIsMethod(t *testing.T) {
	fn := &ast.FunctionDecl{Name: "f"}
	if fn.IsMethod() {
		t.Error("a top-level function must not report IsMethod()")
	}
	fn.OwnerClass = "Animal"
	if !fn.IsMethod() {
		t.Error("a function with OwnerClass set must report IsMethod()")
	}
}
