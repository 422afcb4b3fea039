package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/ecsdisco/cmd/ecsdisco/handlers"
	"github.com/imamik/ecsdisco/internal/config"
)

// Init returns the command for creating a stack configuration.
//
// On a terminal it runs an interactive wizard. Otherwise, or with
// --defaults, it writes the reference configuration unchanged.
//
// Flags:
//
//	--output, -o: Path to output file (default "ecsdisco.yaml")
//	--defaults: Skip the wizard and write the defaults
func Init() *cobra.Command {
	var (
		outputPath string
		defaults   bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a stack configuration",
		Long: `Create a stack configuration file.

On an interactive terminal a short wizard asks for the values worth
changing: stack name, VPC block, container image and port, replica count,
namespace, record TTL, and whether to associate the namespace zone with
the validation VPC. Everything else keeps the reference defaults.

Use --defaults to write the reference configuration without prompting.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Init(cmd.Context(), outputPath, defaults)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", config.DefaultConfigFilename, "Output file path")
	cmd.Flags().BoolVar(&defaults, "defaults", false, "Write the default configuration without prompting")

	return cmd
}
