package cmd

import (
	"fmt"
	"os"

	"github.com/cwbudde/mjc/internal/semantic"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check [file.ast.json]",
	Short: "Run semantic analysis only and report diagnostics",
	Long: `Run semantic analysis over a JSON-serialized AST without generating
assembly, useful for editor tooling that only needs diagnostics.`,
	Args: cobra.ExactArgs(1),
	RunE: checkAST,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func checkAST(_ *cobra.Command, args []string) error {
	filename := args[0]

	prog, err := readProgram(filename)
	if err != nil {
		return err
	}

	if _, err := semantic.Analyze(prog); err != nil {
		return reportSemanticError(err, filename)
	}

	fmt.Fprintln(os.Stdout, "OK")
	return nil
}
