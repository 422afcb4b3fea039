package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/ecsdisco/cmd/ecsdisco/handlers"
)

// Synth returns the command that synthesizes the CDK cloud assembly.
//
// This is the app command cdk.json runs, so 'cdk deploy' and 'cdk diff'
// work against it directly.
//
// Optional flags:
//
//	--config, -c: Path to configuration file (default: auto-detect ecsdisco.yaml)
//	--output, -o: Cloud assembly directory (default: CDK_OUTDIR or cdk.out)
//	--metrics-file: Write Prometheus metrics to a textfile
func Synth() *cobra.Command {
	opts := handlers.SynthOptions{}

	cmd := &cobra.Command{
		Use:   "synth",
		Short: "Synthesize the CloudFormation template",
		Long: `Synthesize the stack into a CDK cloud assembly.

When run by the cdk CLI the assembly is written to the directory the CLI
passes in CDK_OUTDIR. Run directly, it defaults to cdk.out.

Examples:
  # Synthesize into cdk.out
  ecsdisco synth

  # Deploy through the cdk CLI (cdk.json runs 'ecsdisco synth')
  cdk deploy`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Synth(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "Path to configuration file (default: ecsdisco.yaml)")
	cmd.Flags().StringVarP(&opts.Outdir, "output", "o", "", "Cloud assembly directory (default: CDK_OUTDIR or cdk.out)")
	cmd.Flags().StringVar(&opts.MetricsFile, "metrics-file", "", "Write Prometheus metrics to this textfile")

	return cmd
}
