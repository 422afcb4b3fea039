package handlers

import (
	"context"
	"fmt"
	"os"

	"github.com/imamik/ecsdisco/internal/config"
	"github.com/imamik/ecsdisco/internal/util/naming"
)

// Factory function variables for init - can be replaced in tests.
var (
	// fileExists checks if a file exists.
	fileExists = func(path string) bool {
		_, err := os.Stat(path)
		return err == nil
	}

	// runWizard runs the interactive wizard.
	runWizard = config.RunWizard

	// writeConfig writes the config to a file.
	writeConfig = config.WriteYAML
)

// Init writes a configuration file, from the wizard on a terminal or from
// the defaults otherwise.
func Init(ctx context.Context, outputPath string, defaults bool) error {
	if fileExists(outputPath) {
		fmt.Printf("Warning: %s already exists and will be overwritten.\n\n", outputPath)
	}

	cfg := config.Default()
	if !defaults && isInteractiveTTY() {
		printWelcome()

		result, err := runWizard(ctx)
		if err != nil {
			return fmt.Errorf("wizard canceled: %w", err)
		}
		if cfg, err = result.ToConfig(); err != nil {
			return fmt.Errorf("invalid answers: %w", err)
		}
	}

	if err := writeConfig(cfg, outputPath); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	printInitSuccess(outputPath, cfg)
	return nil
}

// printWelcome prints the welcome message.
func printWelcome() {
	fmt.Println()
	fmt.Println("ecsdisco - ECS service discovery stack")
	fmt.Println("======================================")
	fmt.Println()
	fmt.Println("This wizard creates a stack configuration with sensible defaults.")
	fmt.Println()
}

// printInitSuccess prints the success message with summary and next steps.
func printInitSuccess(outputPath string, cfg *config.Config) {
	fmt.Println()
	fmt.Println("Configuration saved!")
	fmt.Println()
	fmt.Printf("  File: %s\n", outputPath)
	fmt.Println()

	fmt.Println("Stack Summary")
	fmt.Println("-------------")
	fmt.Printf("  Name:        %s\n", cfg.StackName)
	fmt.Printf("  Networks:    %s, %s (%s, %d zones)\n",
		cfg.Network.Name, cfg.ValidationNetwork.Name, cfg.Network.IPv4CIDR, cfg.Network.MaxAZs)
	fmt.Printf("  Service:     %d x %s\n", cfg.Service.DesiredCount, cfg.Task.Image)
	fmt.Printf("  Discovery:   %s (%s, TTL %ds)\n",
		naming.ServiceFQDN(cfg.Service.Discovery.Name, cfg.Namespace.Name),
		cfg.Service.Discovery.RecordType, cfg.Service.Discovery.TTLSeconds)
	if cfg.Association.Enabled {
		fmt.Printf("  Association: %s zone -> %s\n", cfg.Namespace.Name, cfg.ValidationNetwork.Name)
	}
	fmt.Println()

	fmt.Println("Next Steps")
	fmt.Println("----------")
	fmt.Printf("  1. Review %s if needed\n", outputPath)
	fmt.Println()
	fmt.Println("  2. Check the plan:")
	fmt.Println("     ecsdisco plan")
	fmt.Println()
	fmt.Println("  3. Deploy:")
	fmt.Println("     cdk deploy")
	fmt.Println()
}
