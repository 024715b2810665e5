package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fmzchao/studio-sub005/cmd/studio/internal"
	"github.com/fmzchao/studio-sub005/internal/compiler"
	"github.com/fmzchao/studio-sub005/internal/graph"
	"github.com/fmzchao/studio-sub005/internal/registry"
)

// compileCmd compiles a graph document into a workflow definition
var compileCmd = &cobra.Command{
	Use:   "compile <graph-file>",
	Short: "Compile a workflow graph into a definition",
	Long: `Compile a workflow graph document (YAML or JSON) against a component
manifest and emit the resulting workflow definition as JSON.

The definition is written to stdout (or --output); warnings go to
stderr so the definition stream stays machine-readable. Compilation
fails on the first structural error or on any semantic validation
error.`,
	Example: `  # Compile a graph to stdout
  studio compile scan.yaml --manifest components.yaml

  # Write the definition to a file
  studio compile scan.yaml -m components.yaml -o scan.definition.json

  # Manifest path from the environment
  STUDIO_MANIFEST=components.yaml studio compile scan.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runCompile,
}

func init() {
	compileCmd.Flags().StringP("output", "o", "", "Write the definition to a file instead of stdout")
	compileCmd.Flags().Bool("compact", false, "Emit compact JSON without indentation")
}

func runCompile(cmd *cobra.Command, args []string) error {
	reg, err := loadRegistry()
	if err != nil {
		return err
	}

	g, err := graph.LoadFile(args[0])
	if err != nil {
		return err
	}

	result, err := compiler.New(compiler.WithLogger(logger)).Compile(g, reg)
	if err != nil {
		return err
	}

	for _, warning := range result.Warnings {
		cmd.PrintErrln("warning:", warning.String())
	}

	var raw []byte
	if compact, _ := cmd.Flags().GetBool("compact"); compact {
		raw, err = json.Marshal(result.Definition)
	} else {
		raw, err = json.MarshalIndent(result.Definition, "", "  ")
	}
	if err != nil {
		return internal.WrapError(internal.ExitError, "failed to encode definition", err)
	}

	if output, _ := cmd.Flags().GetString("output"); output != "" {
		if err := os.WriteFile(output, append(raw, '\n'), 0o644); err != nil {
			return internal.WrapError(internal.ExitError,
				fmt.Sprintf("failed to write definition to %s", output), err)
		}
		cmd.PrintErrf("Wrote definition to %s\n", output)
		return nil
	}

	cmd.Println(string(raw))
	return nil
}

// loadRegistry builds the component registry from the manifest named by the
// --manifest flag or STUDIO_MANIFEST.
func loadRegistry() (*registry.StaticRegistry, error) {
	manifest := viper.GetString("manifest")
	if manifest == "" {
		return nil, internal.NewCLIError(internal.ExitConfigError,
			"no component manifest: pass --manifest or set STUDIO_MANIFEST")
	}

	reg := registry.NewStaticRegistry()
	if err := reg.LoadFromManifest(manifest); err != nil {
		return nil, err
	}
	return reg, nil
}
