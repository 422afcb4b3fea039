package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/ecsdisco/cmd/ecsdisco/handlers"
)

// Plan returns the command that builds and prints the declaration plan.
//
// Optional flags:
//
//	--config, -c: Path to configuration file (default: auto-detect ecsdisco.yaml)
//	--output: Output format, one of auto, yaml, table (default "auto")
//	--diff: Compare against a previously saved manifest
//	--save: Write the manifest to a file
func Plan() *cobra.Command {
	opts := handlers.PlanOptions{}

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Show the declarations of the stack",
		Long: `Build and check the declaration plan and print it.

The plan lists every declaration in the order it is handed to the
deployment engine, with the declarations each one depends on. On a
terminal it is rendered as a table, otherwise as a YAML manifest.

Examples:
  # Show the plan
  ecsdisco plan

  # Save the manifest and compare against it later
  ecsdisco plan --save plan.yaml
  ecsdisco plan --diff plan.yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Plan(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "Path to configuration file (default: ecsdisco.yaml)")
	cmd.Flags().StringVar(&opts.Output, "output", handlers.OutputAuto, "Output format: auto, yaml, table")
	cmd.Flags().StringVar(&opts.DiffPath, "diff", "", "Compare against a saved manifest")
	cmd.Flags().StringVar(&opts.SavePath, "save", "", "Write the manifest to a file")

	return cmd
}
