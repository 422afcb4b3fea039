package handlers

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/ecsdisco/internal/config"
	"github.com/imamik/ecsdisco/internal/stack"
	"github.com/imamik/ecsdisco/internal/topology"
)

const fakeTemplate = `{
  "Resources": {
    "ECSVPC": {"Type": "AWS::EC2::VPC"},
    "TestVPC": {"Type": "AWS::EC2::VPC"},
    "Cluster": {"Type": "AWS::ECS::Cluster"}
  }
}`

// fakeSynth returns a synthesizer that records its inputs and counts the
// fake template into rec when one is set.
func fakeSynth(t *testing.T, got *stack.SynthOptions) func(*topology.Plan, stack.SynthOptions) (*stack.Result, error) {
	t.Helper()
	return func(plan *topology.Plan, opts stack.SynthOptions) (*stack.Result, error) {
		*got = opts
		summary, err := stack.Summarize([]byte(fakeTemplate))
		require.NoError(t, err)
		if opts.Recorder != nil {
			opts.Recorder.RecordTemplate(plan.StackName, summary.ByType)
		}
		return &stack.Result{
			Directory:    opts.Outdir,
			TemplateFile: filepath.Join(opts.Outdir, plan.StackName+".template.json"),
			Template:     []byte(fakeTemplate),
			Summary:      summary,
		}, nil
	}
}

func TestSynth(t *testing.T) {
	cfg := config.Default()
	cfg.Environment = config.EnvironmentConfig{Account: "123456789012", Region: "eu-central-1"}
	cfg.Tags = map[string]string{"team": "platform"}
	useConfig(t, cfg)

	var got stack.SynthOptions
	synthesize = fakeSynth(t, &got)
	metricsFile := filepath.Join(t.TempDir(), "ecsdisco.prom")

	var err error
	output := captureOutput(func() {
		err = Synth(context.Background(), SynthOptions{Outdir: "cdk.out", MetricsFile: metricsFile})
	})
	require.NoError(t, err)

	assert.Equal(t, "cdk.out", got.Outdir)
	assert.Equal(t, "123456789012", got.Props.Account)
	assert.Equal(t, "eu-central-1", got.Props.Region)
	assert.Equal(t, map[string]string{"team": "platform"}, got.Props.Tags)
	assert.NotNil(t, got.Recorder)
	assert.Contains(t, output, "(3 resources)")

	data, err := os.ReadFile(metricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), `ecsdisco_synth_template_resources{stack="EcsServicediscoveryStack",type="AWS::EC2::VPC"} 2`)
	assert.Contains(t, string(data), "ecsdisco_topology_declarations_total")
}

func TestSynth_Summary(t *testing.T) {
	useConfig(t, config.Default())
	isInteractiveTTY = func() bool { return true }

	var got stack.SynthOptions
	synthesize = fakeSynth(t, &got)

	var err error
	output := captureOutput(func() {
		err = Synth(context.Background(), SynthOptions{})
	})
	require.NoError(t, err)
	assert.Contains(t, output, "ecsdisco synth: EcsServicediscoveryStack")
	assert.Contains(t, output, "AWS::ECS::Cluster")
	assert.Contains(t, output, "Total")
}

func TestSynth_Error(t *testing.T) {
	useConfig(t, config.Default())
	synthesize = func(*topology.Plan, stack.SynthOptions) (*stack.Result, error) {
		return nil, errors.New("jsii: node not found")
	}

	var err error
	captureOutput(func() {
		err = Synth(context.Background(), SynthOptions{})
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "node not found")
}

func TestSynthOutdir(t *testing.T) {
	tests := []struct {
		name   string
		flag   string
		envDir string
		want   string
	}{
		{name: "flag wins", flag: "out", envDir: "/tmp/cdk", want: "out"},
		{name: "cdk cli sets the directory", envDir: "/tmp/cdk", want: ""},
		{name: "default", want: "cdk.out"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("CDK_OUTDIR", tt.envDir)
			assert.Equal(t, tt.want, synthOutdir(tt.flag))
		})
	}
}
