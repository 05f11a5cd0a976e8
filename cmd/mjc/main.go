// Command mjc is the driver for the compiler core: it reads a
// JSON-serialized AST, runs semantic analysis, layout resolution and
// code generation, and writes the resulting NASM source.
package main

import (
	"os"

	"github.com/cwbudde/mjc/cmd/mjc/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
