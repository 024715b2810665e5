package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/fmzchao/studio-sub005/cmd/studio/internal"
	"github.com/fmzchao/studio-sub005/internal/compiler"
	"github.com/fmzchao/studio-sub005/internal/graph"
)

// validateCmd runs compilation for diagnostics only
var validateCmd = &cobra.Command{
	Use:   "validate <graph-file>",
	Short: "Validate a workflow graph without emitting a definition",
	Long: `Run the full compilation pipeline for diagnostics only: the graph is
checked against the component manifest and every error and warning is
reported, but no definition is produced.

The command exits non-zero when the graph is invalid, which makes it
suitable for CI checks on graph documents.`,
	Example: `  # Validate a graph
  studio validate scan.yaml --manifest components.yaml

  # Machine-readable report
  studio validate scan.yaml -m components.yaml --json`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().Bool("json", false, "Emit the validation report as JSON")
}

func runValidate(cmd *cobra.Command, args []string) error {
	reg, err := loadRegistry()
	if err != nil {
		return err
	}

	g, err := graph.LoadFile(args[0])
	if err != nil {
		return err
	}

	result := compiler.New(compiler.WithLogger(logger)).Validate(g, reg)

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		raw, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return internal.WrapError(internal.ExitError, "failed to encode validation report", err)
		}
		cmd.Println(string(raw))
	} else {
		printValidationReport(cmd, result)
	}

	if !result.IsValid {
		return internal.NewCLIError(internal.ExitCompileError, "graph validation failed")
	}
	return nil
}

// printValidationReport renders the human-readable validation report.
func printValidationReport(cmd *cobra.Command, result compiler.ValidationResult) {
	if result.IsValid {
		cmd.Println("Graph is valid")
	} else {
		cmd.Printf("Graph is invalid: %d error(s)\n", len(result.Errors))
	}

	for _, issue := range result.Errors {
		cmd.Println("  error:", issue.String())
	}
	for _, issue := range result.Warnings {
		cmd.Println("  warning:", issue.String())
	}
}
