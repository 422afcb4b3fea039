package cloudmap

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/route53"
	"github.com/aws/aws-sdk-go-v2/service/servicediscovery"
	"github.com/go-logr/logr"

	"github.com/imamik/ecsdisco/internal/util/retry"
)

// ServiceDiscoveryAPI is the subset of the Cloud Map client used here.
type ServiceDiscoveryAPI interface {
	ListNamespaces(ctx context.Context, in *servicediscovery.ListNamespacesInput, optFns ...func(*servicediscovery.Options)) (*servicediscovery.ListNamespacesOutput, error)
	GetNamespace(ctx context.Context, in *servicediscovery.GetNamespaceInput, optFns ...func(*servicediscovery.Options)) (*servicediscovery.GetNamespaceOutput, error)
}

// Route53API is the subset of the Route 53 client used here.
type Route53API interface {
	GetHostedZone(ctx context.Context, in *route53.GetHostedZoneInput, optFns ...func(*route53.Options)) (*route53.GetHostedZoneOutput, error)
	AssociateVPCWithHostedZone(ctx context.Context, in *route53.AssociateVPCWithHostedZoneInput, optFns ...func(*route53.Options)) (*route53.AssociateVPCWithHostedZoneOutput, error)
	GetChange(ctx context.Context, in *route53.GetChangeInput, optFns ...func(*route53.Options)) (*route53.GetChangeOutput, error)
}

// Options configures NewFromConfig. Empty fields fall back to the SDK's
// default credential and region chain.
type Options struct {
	Region    string
	Profile   string
	AccessKey string
	SecretKey string
}

// Associator runs zone associations.
type Associator struct {
	sd       ServiceDiscoveryAPI
	r53      Route53API
	log      logr.Logger
	region   string
	waitOpts []retry.Option
}

// Option configures an Associator.
type Option func(*Associator)

// WithLogger sets the logger.
func WithLogger(log logr.Logger) Option {
	return func(a *Associator) {
		a.log = log
	}
}

// WithRegion sets the default VPC region of association requests.
func WithRegion(region string) Option {
	return func(a *Associator) {
		a.region = region
	}
}

// WithWaitOptions overrides the polling schedule of WaitForChange.
func WithWaitOptions(opts ...retry.Option) Option {
	return func(a *Associator) {
		a.waitOpts = opts
	}
}

// New creates an Associator over the given clients.
func New(sd ServiceDiscoveryAPI, r53 Route53API, opts ...Option) *Associator {
	a := &Associator{
		sd:  sd,
		r53: r53,
		log: logr.Discard(),
		// Route 53 changes usually reach INSYNC within a minute.
		waitOpts: []retry.Option{
			retry.WithMaxRetries(20),
			retry.WithInitialDelay(2 * time.Second),
			retry.WithMaxDelay(15 * time.Second),
		},
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// NewFromConfig creates an Associator with SDK clients built from the
// default config chain.
func NewFromConfig(ctx context.Context, opts Options, assocOpts ...Option) (*Associator, error) {
	var loadOpts []func(*config.LoadOptions) error
	if opts.Region != "" {
		loadOpts = append(loadOpts, config.WithRegion(opts.Region))
	}
	if opts.Profile != "" {
		loadOpts = append(loadOpts, config.WithSharedConfigProfile(opts.Profile))
	}
	if opts.AccessKey != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, "")))
	}

	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	if cfg.Region == "" {
		return nil, fmt.Errorf("no AWS region configured")
	}

	assocOpts = append([]Option{WithRegion(cfg.Region)}, assocOpts...)
	return New(servicediscovery.NewFromConfig(cfg), route53.NewFromConfig(cfg), assocOpts...), nil
}
