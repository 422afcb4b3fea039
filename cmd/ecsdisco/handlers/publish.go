package handlers

import (
	"context"
	"fmt"
	"os"

	"github.com/imamik/ecsdisco/internal/config"
	"github.com/imamik/ecsdisco/internal/platform/s3"
	"github.com/imamik/ecsdisco/internal/stack"
	"github.com/imamik/ecsdisco/internal/topology"
	"github.com/imamik/ecsdisco/internal/util/naming"
)

// PublishOptions configures Publish.
type PublishOptions struct {
	ConfigPath   string
	Bucket       string
	Prefix       string
	TemplateFile string
	Region       string
	Profile      string
	Endpoint     string
	PathStyle    bool
}

type publisher interface {
	Publish(ctx context.Context, bucket, key, contentType string, data []byte) (bool, error)
}

// newPublisher creates the S3 publisher - can be replaced in tests.
var newPublisher = func(ctx context.Context, opts s3.Options) (publisher, error) {
	return s3.NewClient(ctx, opts)
}

// Publish uploads the stack template to S3.
func Publish(ctx context.Context, opts PublishOptions) error {
	log := logger(ctx)

	cfg, err := resolveConfig(ctx, opts.ConfigPath)
	if err != nil {
		return err
	}

	template, err := publishedTemplate(ctx, cfg, opts)
	if err != nil {
		return err
	}

	region := opts.Region
	if region == "" {
		region = cfg.Environment.Region
	}
	client, err := newPublisher(ctx, s3.Options{
		Region:    region,
		Profile:   opts.Profile,
		Endpoint:  opts.Endpoint,
		PathStyle: opts.PathStyle,
	})
	if err != nil {
		return err
	}

	key := naming.ManifestKey(opts.Prefix, cfg.StackName)
	uploaded, err := client.Publish(ctx, opts.Bucket, key, "application/json", template)
	if err != nil {
		return fmt.Errorf("publish failed: %w", err)
	}

	if !uploaded {
		fmt.Printf("s3://%s/%s is up to date\n", opts.Bucket, key)
		return nil
	}
	log.V(1).Info("template uploaded", "bucket", opts.Bucket, "key", key, "bytes", len(template))
	fmt.Printf("Published s3://%s/%s\n", opts.Bucket, key)
	return nil
}

// publishedTemplate reads opts.TemplateFile or synthesizes into a
// temporary directory.
func publishedTemplate(ctx context.Context, cfg *config.Config, opts PublishOptions) ([]byte, error) {
	if opts.TemplateFile != "" {
		// #nosec G304
		data, err := os.ReadFile(opts.TemplateFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read template: %w", err)
		}
		if _, err := stack.Summarize(data); err != nil {
			return nil, fmt.Errorf("invalid template %s: %w", opts.TemplateFile, err)
		}
		return data, nil
	}

	plan, err := buildPlan(cfg, topology.WithLogger(logger(ctx)))
	if err != nil {
		return nil, err
	}

	dir, err := os.MkdirTemp("", "ecsdisco-publish-")
	if err != nil {
		return nil, fmt.Errorf("failed to create assembly directory: %w", err)
	}
	defer os.RemoveAll(dir)

	res, err := synthesize(plan, stack.SynthOptions{
		Outdir: dir,
		Props: stack.Props{
			Account: cfg.Environment.Account,
			Region:  cfg.Environment.Region,
			Tags:    cfg.Tags,
		},
		Log: logger(ctx),
	})
	if err != nil {
		return nil, err
	}
	return res.Template, nil
}
