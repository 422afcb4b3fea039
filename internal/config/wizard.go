package config

import (
	"context"
	"fmt"
	"net"
	"strconv"

	"github.com/charmbracelet/huh"
)

// WizardResult holds the answers collected by RunWizard.
type WizardResult struct {
	StackName     string
	IPv4CIDR      string
	Image         string
	ContainerPort string
	DesiredCount  string
	NamespaceName string
	TTLSeconds    string
	Associate     bool
}

// RunWizard prompts for the handful of values worth changing from the
// defaults and returns the answers.
func RunWizard(ctx context.Context) (*WizardResult, error) {
	d := Default()
	result := &WizardResult{
		StackName:     d.StackName,
		IPv4CIDR:      d.Network.IPv4CIDR,
		Image:         d.Task.Image,
		ContainerPort: strconv.Itoa(d.Task.ContainerPort),
		DesiredCount:  strconv.Itoa(d.Service.DesiredCount),
		NamespaceName: d.Namespace.Name,
		TTLSeconds:    strconv.Itoa(d.Service.Discovery.TTLSeconds),
		Associate:     d.Association.Enabled,
	}

	err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Stack Name").
				Value(&result.StackName).
				Validate(validateConstructID),
			huh.NewInput().
				Title("VPC CIDR").
				Description("Used for both the operational and the validation VPC").
				Value(&result.IPv4CIDR).
				Validate(validateCIDR),
		).Title("Network"),
		huh.NewGroup(
			huh.NewInput().
				Title("Container Image").
				Value(&result.Image),
			huh.NewInput().
				Title("Container Port").
				Value(&result.ContainerPort).
				Validate(validatePositiveInt),
			huh.NewInput().
				Title("Desired Count").
				Value(&result.DesiredCount).
				Validate(validatePositiveInt),
		).Title("Service"),
		huh.NewGroup(
			huh.NewInput().
				Title("Namespace").
				Description("Private DNS namespace the service registers in").
				Value(&result.NamespaceName).
				Validate(validateNamespaceName),
			huh.NewInput().
				Title("Record TTL (seconds)").
				Value(&result.TTLSeconds).
				Validate(validatePositiveInt),
			huh.NewConfirm().
				Title("Associate the namespace zone with the validation VPC?").
				Value(&result.Associate),
		).Title("Service Discovery"),
	).RunWithContext(ctx)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ToConfig converts wizard answers into a full configuration.
func (r *WizardResult) ToConfig() (*Config, error) {
	cfg := Default()
	cfg.StackName = r.StackName
	cfg.Network.IPv4CIDR = r.IPv4CIDR
	cfg.ValidationNetwork.IPv4CIDR = r.IPv4CIDR
	cfg.Task.Image = r.Image
	cfg.Namespace.Name = r.NamespaceName
	cfg.Association.Enabled = r.Associate

	var err error
	if cfg.Task.ContainerPort, err = strconv.Atoi(r.ContainerPort); err != nil {
		return nil, fmt.Errorf("invalid container port: %w", err)
	}
	if cfg.Service.DesiredCount, err = strconv.Atoi(r.DesiredCount); err != nil {
		return nil, fmt.Errorf("invalid desired count: %w", err)
	}
	if cfg.Service.Discovery.TTLSeconds, err = strconv.Atoi(r.TTLSeconds); err != nil {
		return nil, fmt.Errorf("invalid ttl: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validateConstructID(s string) error {
	if !constructIDRegex.MatchString(s) {
		return fmt.Errorf("must start with a letter and contain only letters, digits and hyphens")
	}
	return nil
}

func validateCIDR(s string) error {
	_, network, err := net.ParseCIDR(s)
	if err != nil {
		return err
	}
	if network.IP.To4() == nil {
		return fmt.Errorf("only IPv4 is supported")
	}
	return nil
}

func validatePositiveInt(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("must be a number")
	}
	if n < 0 {
		return fmt.Errorf("must not be negative")
	}
	return nil
}
