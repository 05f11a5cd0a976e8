package semantic

import (
	"fmt"

	"github.com/cwbudde/mjc/internal/errors"
	"github.com/cwbudde/mjc/internal/source"
	"github.com/cwbudde/mjc/internal/types"
)

// ErrorKind classifies a SemanticError per spec.md §7's eight-entry
// taxonomy.
type ErrorKind string

const (
	Redefinition    ErrorKind = "redefinition"
	TypeError       ErrorKind = "type"
	UndefinedSymbol ErrorKind = "undefined_variable"
	NoReturn        ErrorKind = "no_return"
	NoAttribute     ErrorKind = "no_attribute"
	Cycle           ErrorKind = "cycle"
	InvalidCast     ErrorKind = "invalid_cast"
	Compile         ErrorKind = "compile"
)

// SemanticError is a structured compile-time error: every error is fatal
// (spec.md §7 — "the first error terminates the compile pass"), so the
// analyzer returns the first one it raises rather than collecting a list.
type SemanticError struct {
	Kind    ErrorKind
	Message string
	Pos     source.Position
}

func (e *SemanticError) Error() string {
	return fmt.Sprintf("%s: %s at %s", e.Kind, e.Message, e.Pos.String())
}

// ToCompilerError bridges to internal/errors.CompilerError for display.
func (e *SemanticError) ToCompilerError(src, filename string) *errors.CompilerError {
	return errors.NewCompilerError(e.Pos, e.Message, src, filename)
}

func newError(kind ErrorKind, pos source.Position, format string, args ...interface{}) *SemanticError {
	return &SemanticError{Kind: kind, Message: fmt.Sprintf(format, args...), Pos: pos}
}

// NewRedefinitionError reports a name clash: same-scope variable
// redeclaration, function/class redefinition, an override signature
// mismatch, or a duplicate field in an inheritance chain.
func NewRedefinitionError(pos source.Position, format string, args ...interface{}) *SemanticError {
	return newError(Redefinition, pos, format, args...)
}

// NewTypeError reports a type mismatch, a void-typed value where one is
// forbidden, a non-int arithmetic operand, or a non-bool condition.
func NewTypeError(pos source.Position, format string, args ...interface{}) *SemanticError {
	return newError(TypeError, pos, format, args...)
}

// NewUndefinedVariableError reports a missing variable, function, or
// class reference.
func NewUndefinedVariableError(pos source.Position, format string, args ...interface{}) *SemanticError {
	return newError(UndefinedSymbol, pos, format, args...)
}

// NewNoReturnError reports a non-void function lacking a definite return
// on every path.
func NewNoReturnError(pos source.Position, format string, args ...interface{}) *SemanticError {
	return newError(NoReturn, pos, format, args...)
}

// NewNoAttributeError reports a missing attribute or method on a class.
func NewNoAttributeError(pos source.Position, format string, args ...interface{}) *SemanticError {
	return newError(NoAttribute, pos, format, args...)
}

// NewCycleError reports an inheritance cycle.
func NewCycleError(pos source.Position, format string, args ...interface{}) *SemanticError {
	return newError(Cycle, pos, format, args...)
}

// NewInvalidCastError reports a cast that is neither a downcast to an
// ancestor nor null-to-class.
func NewInvalidCastError(pos source.Position, format string, args ...interface{}) *SemanticError {
	return newError(InvalidCast, pos, format, args...)
}

// NewCompileError reports any other compile-time violation, notably an
// integer literal outside the 32-bit signed range.
func NewCompileError(pos source.Position, format string, args ...interface{}) *SemanticError {
	return newError(Compile, pos, format, args...)
}

// describeType renders a type for an error message via Type.String; a
// zero-value Type has Tag Int and therefore renders as "int".
func describeType(t types.Type) string {
	return t.String()
}
