package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cwbudde/mjc/internal/ast"
	"github.com/cwbudde/mjc/internal/astjson"
	"github.com/cwbudde/mjc/internal/codegen"
	"github.com/cwbudde/mjc/internal/errors"
	"github.com/cwbudde/mjc/internal/semantic"
	"github.com/spf13/cobra"
)

var (
	compileOutput  string
	compileVerbose bool
)

var compileCmd = &cobra.Command{
	Use:   "compile [file.ast.json]",
	Short: "Compile a JSON-serialized AST to NASM assembly",
	Long: `Run semantic analysis, layout resolution and code generation over a
JSON-serialized AST and write the resulting NASM source next to the
input, with its extension replaced by .s.

Examples:
  # Compile an AST file to assembly
  mjc compile program.ast.json

  # Compile with a custom output file
  mjc compile program.ast.json -o out.s`,
	Args: cobra.ExactArgs(1),
	RunE: compileAST,
}

func init() {
	rootCmd.AddCommand(compileCmd)

	compileCmd.Flags().StringVarP(&compileOutput, "output", "o", "", "output file (default: <input> with .ast.json replaced by .s)")
	compileCmd.Flags().BoolVarP(&compileVerbose, "verbose", "v", false, "verbose output")
}

func compileAST(_ *cobra.Command, args []string) error {
	filename := args[0]

	prog, err := readProgram(filename)
	if err != nil {
		return err
	}

	result, err := semantic.Analyze(prog)
	if err != nil {
		return reportSemanticError(err, filename)
	}
	if compileVerbose {
		fmt.Fprintln(os.Stderr, "Semantic analysis successful")
	}

	asm, err := codegen.Generate(prog, result)
	if err != nil {
		return fmt.Errorf("code generation failed: %w", err)
	}

	outFile := compileOutput
	if outFile == "" {
		outFile = defaultOutputPath(filename)
	}

	if err := os.WriteFile(outFile, []byte(asm), 0o644); err != nil {
		return fmt.Errorf("failed to write output file %s: %w", outFile, err)
	}

	if compileVerbose {
		fmt.Fprintf(os.Stderr, "Assembly written to %s (%d bytes)\n", outFile, len(asm))
	} else {
		fmt.Printf("Compiled %s -> %s\n", filename, outFile)
	}
	return nil
}

func readProgram(filename string) (*ast.Program, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	defer f.Close()

	prog, err := astjson.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse AST from %s: %w", filename, err)
	}
	return prog, nil
}

// reportSemanticError prints err (a *semantic.SemanticError, per spec's
// fail-fast taxonomy) through the same CompilerError formatting the
// teacher uses, and returns a summary error for the exit code.
func reportSemanticError(err error, filename string) error {
	semErr, ok := err.(*semantic.SemanticError)
	if !ok {
		return fmt.Errorf("semantic analysis failed: %w", err)
	}
	compilerErr := semErr.ToCompilerError("", filename)
	fmt.Fprint(os.Stderr, errors.FormatErrors([]*errors.CompilerError{compilerErr}, true))
	fmt.Fprintln(os.Stderr)
	return fmt.Errorf("semantic analysis failed: %s", semErr.Kind)
}

func defaultOutputPath(filename string) string {
	if strings.HasSuffix(filename, ".ast.json") {
		return strings.TrimSuffix(filename, ".ast.json") + ".s"
	}
	ext := filepath.Ext(filename)
	if ext != "" {
		return strings.TrimSuffix(filename, ext) + ".s"
	}
	return filename + ".s"
}
