// Package handlers implements the CLI command logic.
//
// Collaborators are held in package-level function variables so tests can
// replace them without touching AWS or the jsii runtime.
package handlers

import (
	"context"
	"fmt"
	"os"

	"github.com/go-logr/logr"
	"github.com/mattn/go-isatty"

	"github.com/imamik/ecsdisco/internal/config"
)

var (
	// loadConfig resolves the configuration file, falling back to defaults.
	loadConfig = config.Resolve

	// isInteractiveTTY reports whether stdout is a terminal.
	isInteractiveTTY = func() bool {
		return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	}
)

// logger returns the logger the root command stored in ctx.
func logger(ctx context.Context) logr.Logger {
	return logr.FromContextOrDiscard(ctx)
}

func resolveConfig(ctx context.Context, path string) (*config.Config, error) {
	cfg, err := loadConfig(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	logger(ctx).V(1).Info("configuration loaded", "path", path, "stack", cfg.StackName)
	return cfg, nil
}
