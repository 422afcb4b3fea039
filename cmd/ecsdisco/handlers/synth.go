package handlers

import (
	"context"
	"fmt"
	"os"

	"github.com/imamik/ecsdisco/internal/metrics"
	"github.com/imamik/ecsdisco/internal/stack"
	"github.com/imamik/ecsdisco/internal/topology"
)

const defaultOutdir = "cdk.out"

// SynthOptions configures Synth.
type SynthOptions struct {
	ConfigPath  string
	Outdir      string
	MetricsFile string
}

// synthesize renders and synthesizes a plan - can be replaced in tests.
var synthesize = stack.Synth

// Synth builds the plan and synthesizes the cloud assembly.
func Synth(ctx context.Context, opts SynthOptions) error {
	log := logger(ctx)

	cfg, err := resolveConfig(ctx, opts.ConfigPath)
	if err != nil {
		return err
	}

	recorder := metrics.NewRecorder()
	plan, err := buildPlan(cfg, topology.WithLogger(log), topology.WithRecorder(recorder))
	if err != nil {
		return err
	}

	res, err := synthesize(plan, stack.SynthOptions{
		Outdir: synthOutdir(opts.Outdir),
		Props: stack.Props{
			Account: cfg.Environment.Account,
			Region:  cfg.Environment.Region,
			Tags:    cfg.Tags,
		},
		Log:      log,
		Recorder: recorder,
	})
	if err != nil {
		return err
	}

	if opts.MetricsFile != "" {
		if err := recorder.WriteTextfile(opts.MetricsFile); err != nil {
			return err
		}
	}

	if isInteractiveTTY() {
		fmt.Print(renderSummary(plan.StackName, res.Summary))
	} else {
		fmt.Printf("Synthesized %s (%d resources)\n", res.TemplateFile, res.Summary.Total)
	}
	log.V(1).Info("cloud assembly written", "directory", res.Directory)
	return nil
}

// synthOutdir leaves the directory to the cdk CLI when it set CDK_OUTDIR.
func synthOutdir(flag string) string {
	if flag != "" || os.Getenv("CDK_OUTDIR") != "" {
		return flag
	}
	return defaultOutdir
}
