package handlers

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-logr/logr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/ecsdisco/internal/config"
	"github.com/imamik/ecsdisco/internal/platform/cloudmap"
)

type fakeAssociator struct {
	req    cloudmap.Request
	result *cloudmap.Result
	err    error
}

func (f *fakeAssociator) Associate(_ context.Context, req cloudmap.Request) (*cloudmap.Result, error) {
	f.req = req
	return f.result, f.err
}

func useAssociator(t *testing.T, fake *fakeAssociator) *cloudmap.Options {
	t.Helper()
	var got cloudmap.Options
	newAssociator = func(_ context.Context, opts cloudmap.Options, _ logr.Logger) (associator, error) {
		got = opts
		return fake, nil
	}
	return &got
}

func TestAssociate(t *testing.T) {
	cfg := config.Default()
	cfg.Environment.Region = "eu-west-1"

	tests := []struct {
		name       string
		opts       AssociateOptions
		result     *cloudmap.Result
		wantReq    cloudmap.Request
		wantRegion string
		wantOutput string
		wantMetric string
	}{
		{
			name:   "associates with config defaults",
			opts:   AssociateOptions{VPCID: "vpc-0abc"},
			result: &cloudmap.Result{NamespaceID: "ns-1", HostedZoneID: "Z123", ChangeID: "C456"},
			wantReq: cloudmap.Request{
				NamespaceName: "service",
				VPCID:         "vpc-0abc",
				VPCRegion:     "eu-west-1",
			},
			wantRegion: "eu-west-1",
			wantOutput: "Associated VPC vpc-0abc with zone Z123 (namespace service, change C456)",
			wantMetric: `ecsdisco_association_runs_total{result="associated"} 1`,
		},
		{
			name:   "flags override config",
			opts:   AssociateOptions{VPCID: "vpc-0def", Namespace: "internal", Region: "us-east-1", Profile: "ops"},
			result: &cloudmap.Result{HostedZoneID: "Z999", AlreadyAssociated: true},
			wantReq: cloudmap.Request{
				NamespaceName: "internal",
				VPCID:         "vpc-0def",
				VPCRegion:     "us-east-1",
			},
			wantRegion: "us-east-1",
			wantOutput: "VPC vpc-0def is already associated with zone Z999",
			wantMetric: `ecsdisco_association_runs_total{result="unchanged"} 1`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			useConfig(t, cfg)
			fake := &fakeAssociator{result: tt.result}
			gotOpts := useAssociator(t, fake)

			tt.opts.MetricsFile = filepath.Join(t.TempDir(), "assoc.prom")

			var err error
			output := captureOutput(func() {
				err = Associate(context.Background(), tt.opts)
			})
			require.NoError(t, err)

			assert.Equal(t, tt.wantReq, fake.req)
			assert.Equal(t, tt.wantRegion, gotOpts.Region)
			assert.Equal(t, tt.opts.Profile, gotOpts.Profile)
			assert.Contains(t, output, tt.wantOutput)

			data, err := os.ReadFile(tt.opts.MetricsFile)
			require.NoError(t, err)
			assert.Contains(t, string(data), tt.wantMetric)
		})
	}
}

func TestAssociate_Failure(t *testing.T) {
	useConfig(t, config.Default())
	fake := &fakeAssociator{err: cloudmap.ErrNamespaceNotFound}
	useAssociator(t, fake)
	metricsFile := filepath.Join(t.TempDir(), "assoc.prom")

	var err error
	captureOutput(func() {
		err = Associate(context.Background(), AssociateOptions{VPCID: "vpc-1", MetricsFile: metricsFile})
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, cloudmap.ErrNamespaceNotFound)

	data, err := os.ReadFile(metricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), `ecsdisco_association_runs_total{result="failed"} 1`)
}

func TestAssociate_ClientError(t *testing.T) {
	useConfig(t, config.Default())
	newAssociator = func(context.Context, cloudmap.Options, logr.Logger) (associator, error) {
		return nil, errors.New("no credentials")
	}

	err := Associate(context.Background(), AssociateOptions{VPCID: "vpc-1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no credentials")
}
