// Package commands defines the CLI command structure and flag bindings.
//
// This package contains cobra command definitions that handle argument parsing,
// flag binding, and validation. Command execution is delegated to handler
// functions in the handlers package.
package commands

import (
	"github.com/go-logr/logr"
	"github.com/spf13/cobra"

	"github.com/imamik/ecsdisco/internal/logging"
)

// Root returns the root command for the ecsdisco CLI.
//
// The root command owns the logging flags. Its persistent pre-run builds the
// logger and stores it in the command context for the handlers.
func Root() *cobra.Command {
	var (
		verbosity int
		jsonLogs  bool
	)

	cmd := &cobra.Command{
		Use:           "ecsdisco",
		Short:         "Declare and synthesize an ECS service discovery topology",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			log, err := logging.New(logging.Options{
				Verbosity: verbosity,
				JSON:      jsonLogs,
				Output:    cmd.ErrOrStderr(),
			})
			if err != nil {
				return err
			}
			cmd.SetContext(logr.NewContext(cmd.Context(), log))
			return nil
		},
	}

	cmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase log verbosity (repeatable)")
	cmd.PersistentFlags().BoolVar(&jsonLogs, "log-json", false, "Write logs as JSON")

	// Core commands
	cmd.AddCommand(Init())
	cmd.AddCommand(Plan())
	cmd.AddCommand(Validate())
	cmd.AddCommand(Synth())

	// Operational commands
	cmd.AddCommand(Associate())
	cmd.AddCommand(Publish())

	// Utility commands
	cmd.AddCommand(Version())
	cmd.AddCommand(Completion())

	return cmd
}
