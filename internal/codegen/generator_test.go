package codegen_test

import (
	"testing"

	"github.com/cwbudde/mjc/internal/ast"
	"github.com/cwbudde/mjc/internal/codegen"
	"github.com/cwbudde/mjc/internal/semantic"
	"github.com/gkampitakis/go-snaps/snaps"
)

func typeName(name string) *ast.TypeName { return &ast.TypeName{Name: name} }

// TestGenerateEndToEnd lowers a small hand-built program — a free
// function, a class with one method, and a main that exercises
// both — through the full semantic.Analyze -> codegen.Generate pipeline
// and snapshots the resulting NASM, the same go-snaps pattern the
// interpreter's fixture suite used for expected script output.
func TestGenerateEndToEnd(t *testing.T) {
	add := &ast.FunctionDecl{
		Name:       "add",
		ReturnType: typeName("int"),
		Params: ast.Params{
			{Name: "a", Type: typeName("int")},
			{Name: "b", Type: typeName("int")},
		},
		Body: &ast.Block{Statements: []ast.Stmt{
			&ast.ReturnValueStmt{Value: &ast.BinaryOp{
				Op:    ast.Add,
				Left:  &ast.Var{Name: "a"},
				Right: &ast.Var{Name: "b"},
			}},
		}},
	}

	animal := &ast.ClassDefinition{
		Name: "Animal",
		Fields: []*ast.Field{
			{Name: "age", Type: typeName("int")},
		},
		Methods: []*ast.FunctionDecl{
			{
				Name:       "speak",
				ReturnType: typeName("void"),
				Body: &ast.Block{Statements: []ast.Stmt{
					&ast.ExprStmt{Value: &ast.Call{
						Name: "printString",
						Args: []ast.Expr{&ast.LitString{Value: "..."}},
					}},
					&ast.ReturnVoidStmt{},
				}},
			},
		},
	}

	main := &ast.FunctionDecl{
		Name:       "main",
		ReturnType: typeName("void"),
		Body: &ast.Block{Statements: []ast.Stmt{
			&ast.DeclStmt{
				Name: "sum",
				Type: typeName("int"),
				Init: &ast.Call{
					Name: "add",
					Args: []ast.Expr{&ast.LitInt{Value: 2}, &ast.LitInt{Value: 3}},
				},
			},
			&ast.ExprStmt{Value: &ast.Call{
				Name: "printInt",
				Args: []ast.Expr{&ast.Var{Name: "sum"}},
			}},
			&ast.DeclStmt{
				Name: "a",
				Type: typeName("Animal"),
				Init: &ast.New{ClassName: "Animal"},
			},
			&ast.ExprStmt{Value: &ast.MethodCall{
				Receiver: &ast.Var{Name: "a"},
				Method:   "speak",
			}},
			&ast.ReturnVoidStmt{},
		}},
	}

	prog := &ast.Program{
		Classes:   []*ast.ClassDefinition{animal},
		Functions: []*ast.FunctionDecl{add, main},
	}

	result, err := semantic.Analyze(prog)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	out, err := codegen.Generate(prog, result)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	snaps.MatchSnapshot(t, "end_to_end_asm", out)
}

func TestGenerateEmptyMainProducesRunnableSkeleton(t *testing.T) {
	main := &ast.FunctionDecl{
		Name:       "main",
		ReturnType: typeName("void"),
		Body:       &ast.Block{},
	}
	prog := &ast.Program{Functions: []*ast.FunctionDecl{main}}

	result, err := semantic.Analyze(prog)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	out, err := codegen.Generate(prog, result)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	snaps.MatchSnapshot(t, "empty_main_asm", out)
}
