package handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/go-logr/logr"

	"github.com/imamik/ecsdisco/internal/metrics"
	"github.com/imamik/ecsdisco/internal/platform/cloudmap"
)

// AssociateOptions configures Associate.
type AssociateOptions struct {
	ConfigPath  string
	VPCID       string
	Namespace   string
	Region      string
	Profile     string
	MetricsFile string
}

// Association results recorded in metrics.
const (
	resultAssociated = "associated"
	resultUnchanged  = "unchanged"
	resultFailed     = "failed"
)

type associator interface {
	Associate(ctx context.Context, req cloudmap.Request) (*cloudmap.Result, error)
}

// newAssociator creates the live associator - can be replaced in tests.
var newAssociator = func(ctx context.Context, opts cloudmap.Options, log logr.Logger) (associator, error) {
	return cloudmap.NewFromConfig(ctx, opts, cloudmap.WithLogger(log))
}

// Associate associates the namespace's hosted zone with a VPC.
func Associate(ctx context.Context, opts AssociateOptions) error {
	log := logger(ctx)

	cfg, err := resolveConfig(ctx, opts.ConfigPath)
	if err != nil {
		return err
	}

	namespace := opts.Namespace
	if namespace == "" {
		namespace = cfg.Namespace.Name
	}
	region := opts.Region
	if region == "" {
		region = cfg.Environment.Region
	}

	a, err := newAssociator(ctx, cloudmap.Options{Region: region, Profile: opts.Profile}, log)
	if err != nil {
		return err
	}

	recorder := metrics.NewRecorder()
	start := time.Now()
	res, err := a.Associate(ctx, cloudmap.Request{
		NamespaceName: namespace,
		VPCID:         opts.VPCID,
		VPCRegion:     region,
	})

	result := resultAssociated
	switch {
	case err != nil:
		result = resultFailed
	case res.AlreadyAssociated:
		result = resultUnchanged
	}
	recorder.RecordAssociation(result, time.Since(start))

	if opts.MetricsFile != "" {
		if werr := recorder.WriteTextfile(opts.MetricsFile); werr != nil {
			log.Error(werr, "failed to write metrics")
		}
	}
	if err != nil {
		return fmt.Errorf("association failed: %w", err)
	}

	if res.AlreadyAssociated {
		fmt.Printf("VPC %s is already associated with zone %s (namespace %s)\n",
			opts.VPCID, res.HostedZoneID, namespace)
		return nil
	}
	fmt.Printf("Associated VPC %s with zone %s (namespace %s, change %s)\n",
		opts.VPCID, res.HostedZoneID, namespace, res.ChangeID)
	return nil
}
