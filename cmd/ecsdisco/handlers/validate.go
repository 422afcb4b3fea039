package handlers

import (
	"context"
	"fmt"

	"github.com/imamik/ecsdisco/internal/topology"
)

// Validate loads the configuration, builds the plan, and reports the result.
func Validate(ctx context.Context, configPath string) error {
	cfg, err := resolveConfig(ctx, configPath)
	if err != nil {
		return err
	}

	plan, err := buildPlan(cfg, topology.WithLogger(logger(ctx)))
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	fmt.Printf("Configuration valid: %d declarations across %d networks\n",
		plan.Graph.Len(), len(plan.Partitions))
	return nil
}
