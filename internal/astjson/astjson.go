// Package astjson decodes the JSON-serialized AST the cmd/mjc driver
// reads from disk into the real internal/ast tree the compiler core
// operates on. The Expr/Stmt interfaces in internal/ast can't be
// unmarshaled directly by encoding/json, so this package defines a flat,
// Kind-discriminated wire shape for every node and converts it.
package astjson

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/cwbudde/mjc/internal/ast"
	"github.com/cwbudde/mjc/internal/source"
)

// Decode reads a JSON-encoded program from r and builds the ast.Program
// the compiler core consumes.
func Decode(r io.Reader) (*ast.Program, error) {
	var wp wireProgram
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&wp); err != nil {
		return nil, fmt.Errorf("decoding AST JSON: %w", err)
	}
	return wp.toAST()
}

type wirePosition struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

func (p wirePosition) toSource() source.Position {
	return source.Position{Line: p.Line, Column: p.Column}
}

type wireTypeName struct {
	Name     string       `json:"name"`
	Position wirePosition `json:"position"`
}

func (t *wireTypeName) toAST() *ast.TypeName {
	if t == nil {
		return nil
	}
	return &ast.TypeName{Name: t.Name, Position: t.Position.toSource()}
}

type wireProgram struct {
	Functions []wireFunction `json:"functions"`
	Classes   []wireClass    `json:"classes"`
	Position  wirePosition   `json:"position"`
}

func (p *wireProgram) toAST() (*ast.Program, error) {
	prog := &ast.Program{Position: p.Position.toSource()}
	for i := range p.Functions {
		fn, err := p.Functions[i].toAST()
		if err != nil {
			return nil, err
		}
		prog.Functions = append(prog.Functions, fn)
	}
	for i := range p.Classes {
		cls, err := p.Classes[i].toAST()
		if err != nil {
			return nil, err
		}
		prog.Classes = append(prog.Classes, cls)
	}
	return prog, nil
}

type wireClass struct {
	Name     string        `json:"name"`
	Parent   string        `json:"parent"`
	Fields   []wireField   `json:"fields"`
	Methods  []wireFunction `json:"methods"`
	Position wirePosition  `json:"position"`
}

func (c *wireClass) toAST() (*ast.ClassDefinition, error) {
	cls := &ast.ClassDefinition{
		Name:       c.Name,
		ParentName: c.Parent,
		Position:   c.Position.toSource(),
	}
	for i := range c.Fields {
		cls.Fields = append(cls.Fields, c.Fields[i].toAST())
	}
	for i := range c.Methods {
		m, err := c.Methods[i].toAST()
		if err != nil {
			return nil, err
		}
		m.OwnerClass = c.Name
		cls.Methods = append(cls.Methods, m)
	}
	return cls, nil
}

type wireField struct {
	Name     string       `json:"name"`
	Type     wireTypeName `json:"type"`
	Position wirePosition `json:"position"`
}

func (f *wireField) toAST() *ast.Field {
	return &ast.Field{
		Name:     f.Name,
		Type:     f.Type.toAST(),
		Position: f.Position.toSource(),
	}
}

type wireParam struct {
	Name     string       `json:"name"`
	Type     wireTypeName `json:"type"`
	Position wirePosition `json:"position"`
}

func (p *wireParam) toAST() *ast.Parameter {
	return &ast.Parameter{
		Name:     p.Name,
		Type:     p.Type.toAST(),
		Position: p.Position.toSource(),
	}
}

type wireFunction struct {
	Name       string        `json:"name"`
	ReturnType *wireTypeName `json:"return_type"`
	Params     []wireParam   `json:"params"`
	Body       wireBlock     `json:"body"`
	Position   wirePosition  `json:"position"`
}

func (f *wireFunction) toAST() (*ast.FunctionDecl, error) {
	body, err := f.Body.toAST()
	if err != nil {
		return nil, fmt.Errorf("function %q: %w", f.Name, err)
	}
	fn := &ast.FunctionDecl{
		Name:       f.Name,
		ReturnType: f.ReturnType.toAST(),
		Body:       body,
		Position:   f.Position.toSource(),
	}
	for i := range f.Params {
		fn.Params = append(fn.Params, f.Params[i].toAST())
	}
	return fn, nil
}

type wireBlock struct {
	Statements []wireStmt   `json:"statements"`
	Position   wirePosition `json:"position"`
}

func (b *wireBlock) toAST() (*ast.Block, error) {
	blk := &ast.Block{Position: b.Position.toSource()}
	for i := range b.Statements {
		s, err := b.Statements[i].toAST()
		if err != nil {
			return nil, err
		}
		blk.Statements = append(blk.Statements, s)
	}
	return blk, nil
}

// wireStmt is the flat, Kind-discriminated wire shape for every
// statement node in internal/ast/statements.go and control_flow.go.
type wireStmt struct {
	Kind     string       `json:"kind"`
	Position wirePosition `json:"position"`

	// Decl
	Name string        `json:"name,omitempty"`
	Type *wireTypeName `json:"type,omitempty"`
	Init *wireExpr     `json:"init,omitempty"`

	// Assign
	Target *wireExpr `json:"target,omitempty"`
	Value  *wireExpr `json:"value,omitempty"`

	// IncDec: Op is "++" or "--"
	Op      string    `json:"op,omitempty"`
	Operand *wireExpr `json:"operand,omitempty"`

	// If / IfElse / While
	Cond *wireExpr `json:"cond,omitempty"`
	Then *wireStmt `json:"then,omitempty"`
	Else *wireStmt `json:"else,omitempty"`
	Body *wireStmt `json:"body,omitempty"`

	// Block
	Block *wireBlock `json:"block,omitempty"`
}

func (s *wireStmt) toAST() (ast.Stmt, error) {
	if s == nil {
		return nil, nil
	}
	pos := s.Position.toSource()
	switch s.Kind {
	case "Empty":
		return &ast.EmptyStmt{Position: pos}, nil
	case "Decl":
		init, err := s.Init.toAST()
		if err != nil {
			return nil, err
		}
		return &ast.DeclStmt{Name: s.Name, Type: s.Type.toAST(), Init: init, Position: pos}, nil
	case "Assign":
		target, err := s.Target.toAST()
		if err != nil {
			return nil, err
		}
		value, err := s.Value.toAST()
		if err != nil {
			return nil, err
		}
		return &ast.AssignStmt{Target: target, Value: value, Position: pos}, nil
	case "IncDec":
		operand, err := s.Operand.toAST()
		if err != nil {
			return nil, err
		}
		op := ast.Increment
		if s.Op == "--" {
			op = ast.Decrement
		}
		return &ast.IncDecStmt{Op: op, Operand: operand, Position: pos}, nil
	case "ReturnVoid":
		return &ast.ReturnVoidStmt{Position: pos}, nil
	case "ReturnValue":
		value, err := s.Value.toAST()
		if err != nil {
			return nil, err
		}
		return &ast.ReturnValueStmt{Value: value, Position: pos}, nil
	case "ExprStmt":
		value, err := s.Value.toAST()
		if err != nil {
			return nil, err
		}
		return &ast.ExprStmt{Value: value, Position: pos}, nil
	case "Block":
		blk, err := s.Block.toAST()
		if err != nil {
			return nil, err
		}
		return &ast.BlockStmt{Body: blk, Position: pos}, nil
	case "If":
		cond, err := s.Cond.toAST()
		if err != nil {
			return nil, err
		}
		then, err := s.Then.toAST()
		if err != nil {
			return nil, err
		}
		return &ast.IfStmt{Cond: cond, Then: then, Position: pos}, nil
	case "IfElse":
		cond, err := s.Cond.toAST()
		if err != nil {
			return nil, err
		}
		then, err := s.Then.toAST()
		if err != nil {
			return nil, err
		}
		els, err := s.Else.toAST()
		if err != nil {
			return nil, err
		}
		return &ast.IfElseStmt{Cond: cond, Then: then, Else: els, Position: pos}, nil
	case "While":
		cond, err := s.Cond.toAST()
		if err != nil {
			return nil, err
		}
		body, err := s.Body.toAST()
		if err != nil {
			return nil, err
		}
		return &ast.WhileStmt{Cond: cond, Body: body, Position: pos}, nil
	default:
		return nil, fmt.Errorf("unknown statement kind %q at %s", s.Kind, pos)
	}
}

// wireExpr is the flat, Kind-discriminated wire shape for every
// expression node in internal/ast/expressions.go.
type wireExpr struct {
	Kind     string       `json:"kind"`
	Position wirePosition `json:"position"`

	Name  string `json:"name,omitempty"`  // Var, Call
	Value int64  `json:"value,omitempty"` // LitInt
	Text  string `json:"text,omitempty"`  // LitString

	Args []wireExpr `json:"args,omitempty"` // Call, MethodCall

	Receiver *wireExpr     `json:"receiver,omitempty"` // MethodCall, Attribute
	Method   string        `json:"method,omitempty"`   // MethodCall
	Field    string        `json:"field,omitempty"`    // Attribute
	Class    string        `json:"class,omitempty"`    // New
	Target   *wireTypeName `json:"target,omitempty"`   // Cast

	Op      string    `json:"op,omitempty"` // UnaryOp, BinaryOp
	Operand *wireExpr `json:"operand,omitempty"`
	Left    *wireExpr `json:"left,omitempty"`
	Right   *wireExpr `json:"right,omitempty"`
}

func (e *wireExpr) toAST() (ast.Expr, error) {
	if e == nil {
		return nil, nil
	}
	pos := e.Position.toSource()
	switch e.Kind {
	case "Var":
		return &ast.Var{Name: e.Name, Position: pos}, nil
	case "LitInt":
		return &ast.LitInt{Value: e.Value, Position: pos}, nil
	case "LitTrue":
		return &ast.LitTrue{Position: pos}, nil
	case "LitFalse":
		return &ast.LitFalse{Position: pos}, nil
	case "LitString":
		return &ast.LitString{Value: e.Text, Position: pos}, nil
	case "LitNull":
		return &ast.LitNull{Position: pos}, nil
	case "Call":
		args, err := toExprSlice(e.Args)
		if err != nil {
			return nil, err
		}
		return &ast.Call{Name: e.Name, Args: args, Position: pos}, nil
	case "MethodCall":
		receiver, err := e.Receiver.toAST()
		if err != nil {
			return nil, err
		}
		args, err := toExprSlice(e.Args)
		if err != nil {
			return nil, err
		}
		return &ast.MethodCall{Receiver: receiver, Method: e.Method, Args: args, Position: pos}, nil
	case "Attribute":
		receiver, err := e.Receiver.toAST()
		if err != nil {
			return nil, err
		}
		return &ast.Attribute{Receiver: receiver, Name: e.Field, Position: pos}, nil
	case "New":
		return &ast.New{ClassName: e.Class, Position: pos}, nil
	case "Cast":
		value, err := e.Operand.toAST()
		if err != nil {
			return nil, err
		}
		return &ast.Cast{Target: e.Target.toAST(), Value: value, Position: pos}, nil
	case "UnaryOp":
		operand, err := e.Operand.toAST()
		if err != nil {
			return nil, err
		}
		op, err := unaryOpFromText(e.Op, pos)
		if err != nil {
			return nil, err
		}
		return &ast.UnaryOp{Op: op, Operand: operand, Position: pos}, nil
	case "BinaryOp":
		left, err := e.Left.toAST()
		if err != nil {
			return nil, err
		}
		right, err := e.Right.toAST()
		if err != nil {
			return nil, err
		}
		op, err := binaryOpFromText(e.Op, pos)
		if err != nil {
			return nil, err
		}
		return &ast.BinaryOp{Op: op, Left: left, Right: right, Position: pos}, nil
	default:
		return nil, fmt.Errorf("unknown expression kind %q at %s", e.Kind, pos)
	}
}

func toExprSlice(wes []wireExpr) ([]ast.Expr, error) {
	out := make([]ast.Expr, len(wes))
	for i := range wes {
		e, err := wes[i].toAST()
		if err != nil {
			return nil, err
		}
		out[i] = e
	}
	return out, nil
}

func unaryOpFromText(text string, pos source.Position) (ast.UnaryOperator, error) {
	switch text {
	case "-":
		return ast.Neg, nil
	case "!":
		return ast.Not, nil
	default:
		return 0, fmt.Errorf("unknown unary operator %q at %s", text, pos)
	}
}

func binaryOpFromText(text string, pos source.Position) (ast.BinaryOperator, error) {
	switch text {
	case "+":
		return ast.Add, nil
	case "-":
		return ast.Sub, nil
	case "*":
		return ast.Mul, nil
	case "/":
		return ast.Div, nil
	case "%":
		return ast.Mod, nil
	case "<":
		return ast.Lt, nil
	case "<=":
		return ast.Le, nil
	case ">":
		return ast.Gt, nil
	case ">=":
		return ast.Ge, nil
	case "==":
		return ast.Eq, nil
	case "!=":
		return ast.Ne, nil
	case "&&":
		return ast.And, nil
	case "||":
		return ast.Or, nil
	default:
		return 0, fmt.Errorf("unknown binary operator %q at %s", text, pos)
	}
}
