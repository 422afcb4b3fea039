package stack

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/go-logr/logr"

	"github.com/imamik/ecsdisco/internal/topology"
	"github.com/imamik/ecsdisco/internal/util/naming"
)

// TemplateRecorder receives resource counts of synthesized templates.
type TemplateRecorder interface {
	RecordTemplate(stack string, counts map[string]int)
}

// SynthOptions configures Synth.
type SynthOptions struct {
	// Outdir is the cloud assembly directory. Empty defers to CDK_OUTDIR
	// when run by the cdk CLI, or a temporary directory otherwise.
	Outdir string

	Props    Props
	Log      logr.Logger
	Recorder TemplateRecorder
}

// Result describes a synthesized cloud assembly.
type Result struct {
	Directory    string
	TemplateFile string
	Template     []byte
	Summary      *Summary
}

// Synth renders plan into a new app and synthesizes its cloud assembly.
func Synth(plan *topology.Plan, opts SynthOptions) (res *Result, err error) {
	log := opts.Log

	// The construct library reports validation failures by panicking.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("synthesis failed: %v", r)
		}
	}()

	app := awscdk.NewApp(&awscdk.AppProps{
		Outdir: optionalString(opts.Outdir),
	})
	if _, err := New(app, plan.StackName, plan, opts.Props); err != nil {
		return nil, err
	}

	log.V(1).Info("synthesizing cloud assembly", "stack", plan.StackName)
	asm := app.Synth(nil)
	dir := *asm.Directory()

	path := filepath.Join(dir, naming.TemplateFile(plan.StackName))
	// #nosec G304
	template, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read synthesized template: %w", err)
	}

	summary, err := Summarize(template)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize template: %w", err)
	}
	if opts.Recorder != nil {
		opts.Recorder.RecordTemplate(plan.StackName, summary.ByType)
	}

	log.Info("synthesized", "stack", plan.StackName, "template", path, "resources", summary.Total)
	return &Result{
		Directory:    dir,
		TemplateFile: path,
		Template:     template,
		Summary:      summary,
	}, nil
}
