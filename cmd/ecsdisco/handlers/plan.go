package handlers

import (
	"context"
	"fmt"
	"os"

	"github.com/imamik/ecsdisco/internal/topology"
)

// Output formats of the plan command.
const (
	OutputAuto  = "auto"
	OutputYAML  = "yaml"
	OutputTable = "table"
)

// PlanOptions configures Plan.
type PlanOptions struct {
	ConfigPath string
	Output     string
	DiffPath   string
	SavePath   string
}

// buildPlan builds and checks a plan - can be replaced in tests.
var buildPlan = topology.Build

// Plan builds the declaration plan and prints it.
func Plan(ctx context.Context, opts PlanOptions) error {
	cfg, err := resolveConfig(ctx, opts.ConfigPath)
	if err != nil {
		return err
	}

	plan, err := buildPlan(cfg, topology.WithLogger(logger(ctx)))
	if err != nil {
		return err
	}

	manifest, err := topology.Render(plan)
	if err != nil {
		return err
	}

	format, err := resolveFormat(opts.Output)
	if err != nil {
		return err
	}

	// The diff is read before saving so --diff and --save may name the same file.
	var changes []topology.Change
	if opts.DiffPath != "" {
		if changes, err = diffAgainst(opts.DiffPath, manifest); err != nil {
			return err
		}
	}

	if opts.SavePath != "" {
		if err := os.WriteFile(opts.SavePath, manifest, 0o600); err != nil {
			return fmt.Errorf("failed to write manifest: %w", err)
		}
		logger(ctx).Info("manifest saved", "path", opts.SavePath)
	}

	if opts.DiffPath != "" {
		if format == OutputTable {
			fmt.Print(renderChanges(changes))
			return nil
		}
		for _, c := range changes {
			fmt.Printf("%s %s (%s)\n", changeSymbol(c.Type), c.ID, c.Kind)
		}
		return nil
	}

	if format == OutputTable {
		fmt.Print(renderPlan(plan))
		return nil
	}
	fmt.Print(string(manifest))
	return nil
}

func resolveFormat(output string) (string, error) {
	switch output {
	case "", OutputAuto:
		if isInteractiveTTY() {
			return OutputTable, nil
		}
		return OutputYAML, nil
	case OutputYAML, OutputTable:
		return output, nil
	default:
		return "", fmt.Errorf("unknown output format %q: must be one of auto, yaml, table", output)
	}
}

// diffAgainst compares a saved manifest with a freshly rendered one. Both
// are parsed so property values compare in the same representation.
func diffAgainst(path string, rendered []byte) ([]topology.Change, error) {
	// #nosec G304
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	old, err := topology.ParseManifest(data)
	if err != nil {
		return nil, err
	}
	current, err := topology.ParseManifest(rendered)
	if err != nil {
		return nil, err
	}
	return topology.Diff(old, current), nil
}
