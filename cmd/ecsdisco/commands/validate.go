package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/ecsdisco/cmd/ecsdisco/handlers"
)

// Validate returns the command that checks configuration and plan invariants.
func Validate() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate the configuration and plan",
		Long: `Validate the configuration file and the plan built from it.

Checks that every network carries exactly the public and isolated subnet
tags in every zone, that the service registers in a namespace of its
cluster's network, that the task role grants each action once, and that
every declaration only depends on earlier ones. Exits non-zero and lists
every violation when a check fails.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Validate(cmd.Context(), configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: ecsdisco.yaml)")

	return cmd
}
