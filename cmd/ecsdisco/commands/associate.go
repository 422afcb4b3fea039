package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/ecsdisco/cmd/ecsdisco/handlers"
)

// Associate returns the command that associates the namespace's hosted
// zone with a VPC outside of a deployment.
//
// Required flags:
//
//	--vpc-id: ID of the VPC to associate
//
// Optional flags:
//
//	--config, -c: Path to configuration file (default: auto-detect ecsdisco.yaml)
//	--namespace: Namespace name (default: namespace.name from the configuration)
//	--region: AWS region of the VPC (default: configuration or SDK default)
//	--profile: Shared config profile
//	--metrics-file: Write Prometheus metrics to a textfile
func Associate() *cobra.Command {
	opts := handlers.AssociateOptions{}

	cmd := &cobra.Command{
		Use:   "associate",
		Short: "Associate the namespace's hosted zone with a VPC",
		Long: `Associate the hosted zone behind the private DNS namespace with a VPC
against live AWS.

The namespace is looked up by name, its hosted zone ID is read from Cloud
Map, and the VPC is associated with that zone in Route 53. The command
waits until the change is in sync. A VPC that is already associated is
reported and left alone.

Use this for stacks deployed with the association disabled, or to attach
further VPCs.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Associate(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "Path to configuration file (default: ecsdisco.yaml)")
	cmd.Flags().StringVar(&opts.VPCID, "vpc-id", "", "ID of the VPC to associate")
	cmd.Flags().StringVar(&opts.Namespace, "namespace", "", "Namespace name (default: from configuration)")
	cmd.Flags().StringVar(&opts.Region, "region", "", "AWS region of the VPC")
	cmd.Flags().StringVar(&opts.Profile, "profile", "", "Shared config profile")
	cmd.Flags().StringVar(&opts.MetricsFile, "metrics-file", "", "Write Prometheus metrics to this textfile")
	_ = cmd.MarkFlagRequired("vpc-id")

	return cmd
}
