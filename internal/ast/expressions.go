// This file contains every expression node from spec.md §3: Var, the
// literal forms, Call, MethodCall, Attribute, New, Cast, UnaryOp and
// BinaryOp (with its operator sub-tag).
package ast

import (
	"strconv"
	"strings"

	"github.com/cwbudde/mjc/internal/asmloc"
	"github.com/cwbudde/mjc/internal/source"
	"github.com/cwbudde/mjc/internal/types"
)

// Var is a reference to a local variable, parameter, or (inside a method
// body) an attribute installed as a level-1 variable (spec.md §4.4).
// Location is the annotation the variable checker resolves it to.
type Var struct {
	Name         string
	Position     source.Position
	ResolvedType types.Type
	Location     *asmloc.Location
}

func (e *Var) exprNode()               {}
func (e *Var) Pos() source.Position    { return e.Position }
func (e *Var) String() string          { return e.Name }

// LitInt is an integer literal. spec.md §4.5 requires the value to lie in
// (-2^31, 2^31-1); out-of-range values are a Compile error raised by the
// analyzer, not by this node.
type LitInt struct {
	Value    int64
	Position source.Position
}

func (e *LitInt) exprNode()            {}
func (e *LitInt) Pos() source.Position { return e.Position }
func (e *LitInt) String() string       { return strconv.FormatInt(e.Value, 10) }

// LitTrue / LitFalse are the boolean literals.
type LitTrue struct{ Position source.Position }

func (e *LitTrue) exprNode()            {}
func (e *LitTrue) Pos() source.Position { return e.Position }
func (e *LitTrue) String() string       { return "true" }

type LitFalse struct{ Position source.Position }

func (e *LitFalse) exprNode()            {}
func (e *LitFalse) Pos() source.Position { return e.Position }
func (e *LitFalse) String() string       { return "false" }

// LitString is a string literal. Label is the interned data-section label
// ("L<n>") the analyzer assigns on first occurrence of this exact text.
type LitString struct {
	Value    string
	Position source.Position
	Label    string
}

func (e *LitString) exprNode()            {}
func (e *LitString) Pos() source.Position { return e.Position }
func (e *LitString) String() string       { return strconv.Quote(e.Value) }

// LitNull is the null literal, of type null (spec.md §3).
type LitNull struct{ Position source.Position }

func (e *LitNull) exprNode()            {}
func (e *LitNull) Pos() source.Position { return e.Position }
func (e *LitNull) String() string       { return "null" }

// Call is a top-level function call. ResolvedType is the callee's return
// type, annotated after arity/argument-type checking (spec.md §4.5).
type Call struct {
	Name         string
	Args         []Expr
	Position     source.Position
	ResolvedType types.Type
}

func (e *Call) exprNode()            {}
func (e *Call) Pos() source.Position { return e.Position }
func (e *Call) String() string {
	parts := make([]string, len(e.Args))
	for i, a := range e.Args {
		parts[i] = a.String()
	}
	return e.Name + "(" + strings.Join(parts, ", ") + ")"
}

// MethodCall is `receiver.method(args)`, dispatched virtually through the
// receiver's vtable. ReceiverClass and MethodOffset are annotations: the
// receiver's static class and the method's slot offset in its vtable.
type MethodCall struct {
	Receiver      Expr
	Method        string
	Args          []Expr
	Position      source.Position
	ResolvedType  types.Type
	ReceiverClass string
	MethodOffset  int
}

func (e *MethodCall) exprNode()            {}
func (e *MethodCall) Pos() source.Position { return e.Position }
func (e *MethodCall) String() string {
	parts := make([]string, len(e.Args))
	for i, a := range e.Args {
		parts[i] = a.String()
	}
	return e.Receiver.String() + "." + e.Method + "(" + strings.Join(parts, ", ") + ")"
}

// Attribute is `receiver.field`, a reference expression. Offset is the
// field's byte offset within the object, annotated by the layout lookup.
type Attribute struct {
	Receiver     Expr
	Name         string
	Position     source.Position
	ResolvedType types.Type
	Offset       int
}

func (e *Attribute) exprNode()            {}
func (e *Attribute) Pos() source.Position { return e.Position }
func (e *Attribute) String() string       { return e.Receiver.String() + "." + e.Name }

// New is `new ClassName()`: allocates and zero-initializes an instance.
// Size and VTableLabel are annotations copied from the class's layout.
type New struct {
	ClassName   string
	Position    source.Position
	Size        int
	VTableLabel string
}

func (e *New) exprNode()            {}
func (e *New) Pos() source.Position { return e.Position }
func (e *New) String() string       { return "new " + e.ClassName + "()" }

// Cast is an explicit downcast `(ClassName) expr`, checked only
// statically (spec.md §4.5) — no code is emitted beyond Value's.
type Cast struct {
	Target       *TypeName
	Value        Expr
	Position     source.Position
	ResolvedType types.Type
}

func (e *Cast) exprNode()            {}
func (e *Cast) Pos() source.Position { return e.Position }
func (e *Cast) String() string       { return "(" + e.Target.String() + ") " + e.Value.String() }

// UnaryOperator is the sub-tag of a UnaryOp node.
type UnaryOperator int

const (
	Neg UnaryOperator = iota // -x, int -> int
	Not                      // !x, bool -> bool
)

func (op UnaryOperator) String() string {
	if op == Neg {
		return "-"
	}
	return "!"
}

// UnaryOp is a unary `-` or `!` expression.
type UnaryOp struct {
	Op           UnaryOperator
	Operand      Expr
	Position     source.Position
	ResolvedType types.Type
}

func (e *UnaryOp) exprNode()            {}
func (e *UnaryOp) Pos() source.Position { return e.Position }
func (e *UnaryOp) String() string       { return e.Op.String() + e.Operand.String() }

// BinaryOperator is the sub-tag of a BinaryOp node, one per spec.md §4.5
// operator family.
type BinaryOperator int

const (
	Add BinaryOperator = iota // int+int or string+string (strConcat)
	Sub
	Mul
	Div
	Mod
	Lt
	Le
	Gt
	Ge
	Eq
	Ne
	And
	Or
)

func (op BinaryOperator) String() string {
	switch op {
	case Add:
		return "+"
	case Sub:
		return "-"
	case Mul:
		return "*"
	case Div:
		return "/"
	case Mod:
		return "%"
	case Lt:
		return "<"
	case Le:
		return "<="
	case Gt:
		return ">"
	case Ge:
		return ">="
	case Eq:
		return "=="
	case Ne:
		return "!="
	case And:
		return "&&"
	case Or:
		return "||"
	default:
		return "?"
	}
}

// IsComparison reports whether op is one of <, <=, >, >=.
func (op BinaryOperator) IsComparison() bool {
	return op == Lt || op == Le || op == Gt || op == Ge
}

// IsLogical reports whether op is && or ||, the short-circuit operators
// implemented via the boolean-jump protocol (spec.md §4.5, §9).
func (op BinaryOperator) IsLogical() bool {
	return op == And || op == Or
}

// BinaryOp is a binary expression with an explicit operator sub-tag,
// matching the AST data model's "BinaryOp with a sub-tag for the
// operator" (spec.md §3).
type BinaryOp struct {
	Op           BinaryOperator
	Left, Right  Expr
	Position     source.Position
	ResolvedType types.Type
}

func (e *BinaryOp) exprNode()            {}
func (e *BinaryOp) Pos() source.Position { return e.Position }
func (e *BinaryOp) String() string {
	return "(" + e.Left.String() + " " + e.Op.String() + " " + e.Right.String() + ")"
}
