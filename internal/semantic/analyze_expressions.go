package semantic

import (
	"github.com/cwbudde/mjc/internal/ast"
	"github.com/cwbudde/mjc/internal/env"
	"github.com/cwbudde/mjc/internal/types"
)

// The open interval spec.md §4.5 requires integer literals to fit in:
// strictly greater than -2^31, strictly less than 2^31-1.
const (
	litIntMin = -(1 << 31)
	litIntMax = (1 << 31) - 1
)

// analyzeExpr is get_type from spec.md §4.5: it returns the expression's
// semantic type and annotates the node with whatever later stages need
// (a resolved storage location, an interned string label, a field/method
// offset, …).
func analyzeExpr(expr ast.Expr, e *env.Environment) (types.Type, error) {
	switch ex := expr.(type) {
	case *ast.Var:
		return analyzeVar(ex, e)
	case *ast.LitInt:
		return analyzeLitInt(ex)
	case *ast.LitTrue:
		return types.BoolType, nil
	case *ast.LitFalse:
		return types.BoolType, nil
	case *ast.LitString:
		ex.Label = e.Strings.Intern(ex.Value)
		return types.StringType, nil
	case *ast.LitNull:
		return types.NullType, nil
	case *ast.Call:
		return analyzeCall(ex, e)
	case *ast.MethodCall:
		return analyzeMethodCall(ex, e)
	case *ast.Attribute:
		return analyzeAttribute(ex, e)
	case *ast.New:
		return analyzeNew(ex, e)
	case *ast.Cast:
		return analyzeCast(ex, e)
	case *ast.UnaryOp:
		return analyzeUnaryOp(ex, e)
	case *ast.BinaryOp:
		return analyzeBinaryOp(ex, e)
	default:
		return types.Type{}, NewCompileError(expr.Pos(), "unknown expression node %T", expr)
	}
}

func analyzeVar(v *ast.Var, e *env.Environment) (types.Type, error) {
	binding, ok := e.LookupVar(v.Name)
	if !ok {
		return types.Type{}, NewUndefinedVariableError(v.Position, "variable %q is undefined", v.Name)
	}
	v.ResolvedType = binding.Type
	v.Location = binding.Location
	return binding.Type, nil
}

func analyzeLitInt(lit *ast.LitInt) (types.Type, error) {
	if lit.Value <= litIntMin || lit.Value >= litIntMax {
		return types.Type{}, NewCompileError(lit.Position, "integer literal %d does not fit in a 32-bit signed int", lit.Value)
	}
	return types.IntType, nil
}

func analyzeCall(call *ast.Call, e *env.Environment) (types.Type, error) {
	sig, ok := e.LookupFunc(call.Name)
	if !ok {
		return types.Type{}, NewUndefinedVariableError(call.Position, "function %q is undefined", call.Name)
	}
	if len(call.Args) != len(sig.Params) {
		return types.Type{}, NewTypeError(call.Position, "function %q expects %d argument(s), got %d", call.Name, len(sig.Params), len(call.Args))
	}
	for i, arg := range call.Args {
		argType, err := analyzeExpr(arg, e)
		if err != nil {
			return types.Type{}, err
		}
		if !types.IsSubtype(argType, sig.Params[i], e.ParentOf) {
			return types.Type{}, NewTypeError(arg.Pos(), "argument %d of %q: cannot pass %s as %s", i+1, call.Name, argType, sig.Params[i])
		}
	}
	call.ResolvedType = sig.ReturnType
	return sig.ReturnType, nil
}

func analyzeMethodCall(mc *ast.MethodCall, e *env.Environment) (types.Type, error) {
	receiverType, err := analyzeExpr(mc.Receiver, e)
	if err != nil {
		return types.Type{}, err
	}
	if !receiverType.IsClass() {
		return types.Type{}, NewTypeError(mc.Position, "method call on non-class type %s", receiverType)
	}
	info, slot, ok := lookupMethod(e, receiverType.ClassName, mc.Method)
	if !ok {
		return types.Type{}, NewNoAttributeError(mc.Position, "class %q has no method %q", receiverType.ClassName, mc.Method)
	}
	if len(mc.Args) != len(slot.ParamTypes) {
		return types.Type{}, NewTypeError(mc.Position, "method %q expects %d argument(s), got %d", mc.Method, len(slot.ParamTypes), len(mc.Args))
	}
	for i, arg := range mc.Args {
		argType, err := analyzeExpr(arg, e)
		if err != nil {
			return types.Type{}, err
		}
		if !types.IsSubtype(argType, slot.ParamTypes[i], e.ParentOf) {
			return types.Type{}, NewTypeError(arg.Pos(), "argument %d of %q: cannot pass %s as %s", i+1, mc.Method, argType, slot.ParamTypes[i])
		}
	}
	mc.ReceiverClass = receiverType.ClassName
	mc.MethodOffset = 8 * slotPosition(info, mc.Method)
	mc.ResolvedType = slot.ReturnType
	return slot.ReturnType, nil
}

func lookupMethod(e *env.Environment, className, method string) (*env.ClassInfo, env.VTableSlot, bool) {
	info, ok := e.LookupClass(className)
	if !ok {
		return nil, env.VTableSlot{}, false
	}
	for _, slot := range info.VTable {
		if slot.Method == method {
			return info, slot, true
		}
	}
	return nil, env.VTableSlot{}, false
}

func slotPosition(info *env.ClassInfo, method string) int {
	for i, slot := range info.VTable {
		if slot.Method == method {
			return i
		}
	}
	return -1
}

func analyzeAttribute(a *ast.Attribute, e *env.Environment) (types.Type, error) {
	receiverType, err := analyzeExpr(a.Receiver, e)
	if err != nil {
		return types.Type{}, err
	}
	if !receiverType.IsClass() {
		return types.Type{}, NewTypeError(a.Position, "attribute access on non-class type %s", receiverType)
	}
	info, ok := e.LookupClass(receiverType.ClassName)
	if !ok {
		return types.Type{}, NewUndefinedVariableError(a.Position, "class %q is undefined", receiverType.ClassName)
	}
	for _, f := range info.Fields {
		if f.Name == a.Name {
			a.ResolvedType = f.Type
			a.Offset = f.Offset
			return f.Type, nil
		}
	}
	return types.Type{}, NewNoAttributeError(a.Position, "class %q has no attribute %q", receiverType.ClassName, a.Name)
}

func analyzeNew(n *ast.New, e *env.Environment) (types.Type, error) {
	info, ok := e.LookupClass(n.ClassName)
	if !ok {
		return types.Type{}, NewUndefinedVariableError(n.Position, "class %q is undefined", n.ClassName)
	}
	n.Size = info.Size
	n.VTableLabel = info.VTableLabel
	return types.ClassType(n.ClassName), nil
}

func analyzeCast(c *ast.Cast, e *env.Environment) (types.Type, error) {
	fromType, err := analyzeExpr(c.Value, e)
	if err != nil {
		return types.Type{}, err
	}
	toType, err := resolveType(c.Target, e.Classes)
	if err != nil {
		return types.Type{}, err
	}
	if !types.CanCast(fromType, toType, e.ParentOf) {
		return types.Type{}, NewInvalidCastError(c.Position, "cannot cast %s to %s", fromType, toType)
	}
	c.ResolvedType = toType
	return toType, nil
}

func analyzeUnaryOp(u *ast.UnaryOp, e *env.Environment) (types.Type, error) {
	t, err := analyzeExpr(u.Operand, e)
	if err != nil {
		return types.Type{}, err
	}
	switch u.Op {
	case ast.Neg:
		if t.Tag != types.Int {
			return types.Type{}, NewTypeError(u.Position, "unary - requires int, got %s", t)
		}
		u.ResolvedType = types.IntType
	case ast.Not:
		if t.Tag != types.Bool {
			return types.Type{}, NewTypeError(u.Position, "unary ! requires boolean, got %s", t)
		}
		u.ResolvedType = types.BoolType
	}
	return u.ResolvedType, nil
}
