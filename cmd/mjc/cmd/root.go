package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "mjc",
	Short: "A statically-typed class-based language compiler core",
	Long: `mjc is the semantic analyzer, layout resolver and x86-64 NASM code
generator for a small, statically-typed imperative language with single
inheritance. It takes a JSON-serialized AST (the lexer/parser stage is an
external collaborator) and lowers it to assembly ready for NASM and a
linker.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
}
