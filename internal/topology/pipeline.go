package topology

import (
	"fmt"
	"time"

	"github.com/go-logr/logr"

	"github.com/imamik/ecsdisco/internal/config"
)

// Phase declares one step of the stack.
type Phase interface {
	// Name returns the human-readable name of this phase.
	Name() string

	// Declare adds this phase's entities and declarations to ctx.Plan.
	Declare(ctx *Context) error
}

// Recorder receives declaration metrics.
type Recorder interface {
	RecordDeclaration(stack, kind string)
	RecordPhase(stack, phase string, d time.Duration)
}

// Context carries the configuration and the plan under construction.
type Context struct {
	Config   *config.Config
	Plan     *Plan
	Log      logr.Logger
	Recorder Recorder
}

// declare adds d to the plan's graph and reports it.
func (c *Context) declare(d Declaration) error {
	if err := c.Plan.Graph.Declare(d); err != nil {
		return err
	}
	c.Log.V(1).Info("declared", "id", d.ID, "kind", string(d.Kind), "dependsOn", d.DependsOn)
	if c.Recorder != nil {
		c.Recorder.RecordDeclaration(c.Plan.StackName, string(d.Kind))
	}
	return nil
}

// Option configures Build.
type Option func(*Context)

// WithLogger sets the logger phases report to.
func WithLogger(log logr.Logger) Option {
	return func(c *Context) {
		c.Log = log
	}
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r Recorder) Option {
	return func(c *Context) {
		c.Recorder = r
	}
}

// DefaultPhases returns the declaration phases in dependency order.
func DefaultPhases() []Phase {
	return []Phase{
		networkPhase{},
		clusterPhase{},
		namespacePhase{},
		identityPhase{},
		taskPhase{},
		servicePhase{},
		zonePhase{},
	}
}

// Build runs the default phases against cfg and checks the result.
func Build(cfg *config.Config, opts ...Option) (*Plan, error) {
	ctx := &Context{
		Config: cfg,
		Plan: &Plan{
			StackName: cfg.StackName,
			Graph:     NewGraph(),
		},
		Log: logr.Discard(),
	}
	for _, opt := range opts {
		opt(ctx)
	}

	if err := RunPhases(ctx, DefaultPhases()); err != nil {
		return nil, err
	}
	if err := Check(ctx.Plan); err != nil {
		return nil, fmt.Errorf("plan check failed: %w", err)
	}
	return ctx.Plan, nil
}

// RunPhases executes phases sequentially.
func RunPhases(ctx *Context, phases []Phase) error {
	start := time.Now()
	ctx.Log.Info("declaring stack", "stack", ctx.Plan.StackName, "phases", len(phases))

	for i, phase := range phases {
		phaseStart := time.Now()
		log := ctx.Log.WithValues("phase", phase.Name(), "step", fmt.Sprintf("%d/%d", i+1, len(phases)))

		log.V(1).Info("starting")
		if err := phase.Declare(ctx); err != nil {
			log.Error(err, "failed")
			return fmt.Errorf("%s phase failed: %w", phase.Name(), err)
		}

		elapsed := time.Since(phaseStart)
		if ctx.Recorder != nil {
			ctx.Recorder.RecordPhase(ctx.Plan.StackName, phase.Name(), elapsed)
		}
		log.V(1).Info("completed", "elapsed", elapsed.Round(time.Microsecond))
	}

	ctx.Log.Info("stack declared", "stack", ctx.Plan.StackName,
		"declarations", ctx.Plan.Graph.Len(), "elapsed", time.Since(start).Round(time.Microsecond))
	return nil
}
