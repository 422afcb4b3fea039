package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/ecsdisco/cmd/ecsdisco/handlers"
)

// Publish returns the command that uploads the synthesized template to S3.
//
// Required flags:
//
//	--bucket: Target bucket, created if missing
//
// Optional flags:
//
//	--config, -c: Path to configuration file (default: auto-detect ecsdisco.yaml)
//	--prefix: Key prefix
//	--template: Upload an existing template instead of synthesizing
//	--region, --profile, --endpoint, --path-style: S3 connection settings
func Publish() *cobra.Command {
	opts := handlers.PublishOptions{}

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Upload the synthesized template to S3",
		Long: `Upload the synthesized CloudFormation template to an S3 bucket.

The template is synthesized into a temporary directory unless --template
points at an existing one. The bucket is created when missing. An upload
is skipped when the stored object is identical.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Publish(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "Path to configuration file (default: ecsdisco.yaml)")
	cmd.Flags().StringVar(&opts.Bucket, "bucket", "", "Target bucket")
	cmd.Flags().StringVar(&opts.Prefix, "prefix", "", "Key prefix")
	cmd.Flags().StringVar(&opts.TemplateFile, "template", "", "Existing template file to upload")
	cmd.Flags().StringVar(&opts.Region, "region", "", "AWS region")
	cmd.Flags().StringVar(&opts.Profile, "profile", "", "Shared config profile")
	cmd.Flags().StringVar(&opts.Endpoint, "endpoint", "", "Custom S3 endpoint")
	cmd.Flags().BoolVar(&opts.PathStyle, "path-style", false, "Use path-style addressing")
	_ = cmd.MarkFlagRequired("bucket")

	return cmd
}
