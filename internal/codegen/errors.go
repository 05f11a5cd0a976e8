package codegen

import (
	"fmt"

	"github.com/cwbudde/mjc/internal/ast"
)

// errorf reports an internal code-generation inconsistency: every node
// reaching this stage should already have been validated by the
// semantic pass, so this only fires on a defect in the compiler itself.
func errorf(node ast.Node, format string, args ...interface{}) error {
	pos := node.Pos()
	return fmt.Errorf("%s: %s", pos.String(), fmt.Sprintf(format, args...))
}
