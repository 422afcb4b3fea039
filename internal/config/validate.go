package config

import (
	"fmt"
	"net"
	"regexp"
	"slices"
	"strings"
)

// constructIDRegex matches identifiers usable as construct IDs and logical ID prefixes.
var constructIDRegex = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9-]{0,62}$`)

// dnsLabelRegex matches a single DNS label.
var dnsLabelRegex = regexp.MustCompile(`^[a-z0-9](?:[a-z0-9-]{0,61}[a-z0-9])?$`)

// ValidSubnetTypes contains the subnet types a group may declare.
var ValidSubnetTypes = map[string]bool{
	SubnetTypePublic:   true,
	SubnetTypeIsolated: true,
}

// ValidRecordTypes contains the DNS record types a service may register.
var ValidRecordTypes = map[string]bool{
	RecordTypeA:    true,
	RecordTypeAAAA: true,
	RecordTypeSRV:  true,
}

// Validate checks the configuration for common errors and returns a detailed error if validation fails.
func (c *Config) Validate() error {
	if c.StackName == "" {
		return fmt.Errorf("stack_name is required")
	}
	if !constructIDRegex.MatchString(c.StackName) {
		return fmt.Errorf("invalid stack_name %q: must start with a letter and contain only letters, digits and hyphens", c.StackName)
	}

	if err := c.Network.validate("network"); err != nil {
		return fmt.Errorf("network validation failed: %w", err)
	}
	if err := c.ValidationNetwork.validate("validation_network"); err != nil {
		return fmt.Errorf("network validation failed: %w", err)
	}
	if c.Network.Name == c.ValidationNetwork.Name {
		return fmt.Errorf("network validation failed: network.name and validation_network.name must differ, both are %q", c.Network.Name)
	}

	if err := c.validateCluster(); err != nil {
		return fmt.Errorf("cluster validation failed: %w", err)
	}
	if err := c.validateIdentity(); err != nil {
		return fmt.Errorf("identity validation failed: %w", err)
	}
	if err := c.validateTask(); err != nil {
		return fmt.Errorf("task validation failed: %w", err)
	}
	if err := c.validateService(); err != nil {
		return fmt.Errorf("service validation failed: %w", err)
	}

	return nil
}

// validate validates a single network partition.
func (n NetworkConfig) validate(field string) error {
	if !constructIDRegex.MatchString(n.Name) {
		return fmt.Errorf("invalid %s.name %q", field, n.Name)
	}
	if n.IPv4CIDR == "" {
		return fmt.Errorf("%s.ipv4_cidr is required", field)
	}
	_, network, err := net.ParseCIDR(n.IPv4CIDR)
	if err != nil {
		return fmt.Errorf("invalid %s.ipv4_cidr: %w", field, err)
	}
	if network.IP.To4() == nil {
		return fmt.Errorf("invalid %s.ipv4_cidr %q: only IPv4 is supported", field, n.IPv4CIDR)
	}
	if n.MaxAZs < 1 {
		return fmt.Errorf("%s.max_azs must be at least 1, got %d", field, n.MaxAZs)
	}
	if len(n.SubnetGroups) == 0 {
		return fmt.Errorf("%s.subnet_groups must not be empty", field)
	}

	prefix, _ := network.Mask.Size()
	seenNames := make(map[string]bool)
	seenTypes := make(map[string]bool)
	var addressSpace uint64
	for i, g := range n.SubnetGroups {
		if g.Name == "" {
			return fmt.Errorf("%s.subnet_groups[%d]: name is required", field, i)
		}
		if seenNames[g.Name] {
			return fmt.Errorf("%s.subnet_groups[%d]: duplicate name %q", field, i, g.Name)
		}
		seenNames[g.Name] = true

		if !ValidSubnetTypes[g.Type] {
			return fmt.Errorf("%s.subnet_groups[%d]: invalid type %q: must be one of %v", field, i, g.Type, getMapKeys(ValidSubnetTypes))
		}
		if seenTypes[g.Type] {
			return fmt.Errorf("%s.subnet_groups[%d]: type %q declared twice", field, i, g.Type)
		}
		seenTypes[g.Type] = true

		if g.CIDRMask <= prefix || g.CIDRMask > 28 {
			return fmt.Errorf("%s.subnet_groups[%d]: cidr_mask %d must be between %d and 28", field, i, g.CIDRMask, prefix+1)
		}
		addressSpace += uint64(n.MaxAZs) << (32 - g.CIDRMask)
	}

	if addressSpace > uint64(1)<<(32-prefix) {
		return fmt.Errorf("%s: %d zones of %d subnet groups do not fit in %s", field, n.MaxAZs, len(n.SubnetGroups), n.IPv4CIDR)
	}

	return nil
}

// validateCluster validates the cluster and explicit namespace configuration.
func (c *Config) validateCluster() error {
	if !constructIDRegex.MatchString(c.Cluster.Name) {
		return fmt.Errorf("invalid cluster.name %q", c.Cluster.Name)
	}
	if c.Cluster.DefaultNamespace.Enabled {
		if err := validateNamespaceName(c.Cluster.DefaultNamespace.Name); err != nil {
			return fmt.Errorf("cluster.default_namespace.name: %w", err)
		}
	}
	if !constructIDRegex.MatchString(c.Namespace.ID) {
		return fmt.Errorf("invalid namespace.id %q", c.Namespace.ID)
	}
	if err := validateNamespaceName(c.Namespace.Name); err != nil {
		return fmt.Errorf("namespace.name: %w", err)
	}
	return nil
}

// validateNamespaceName validates a dotted private DNS namespace name.
func validateNamespaceName(name string) error {
	if name == "" {
		return fmt.Errorf("is required")
	}
	for _, label := range strings.Split(name, ".") {
		if !dnsLabelRegex.MatchString(label) {
			return fmt.Errorf("invalid DNS name %q", name)
		}
	}
	return nil
}

// validateIdentity validates the task role configuration.
func (c *Config) validateIdentity() error {
	if !constructIDRegex.MatchString(c.Identity.Name) {
		return fmt.Errorf("invalid identity.name %q", c.Identity.Name)
	}
	if c.Identity.Principal == "" {
		return fmt.Errorf("identity.principal is required")
	}
	if len(c.Identity.Actions) == 0 {
		return fmt.Errorf("identity.actions must not be empty")
	}
	seen := make(map[string]bool, len(c.Identity.Actions))
	for _, action := range c.Identity.Actions {
		service, verb, ok := strings.Cut(action, ":")
		if !ok || service == "" || verb == "" {
			return fmt.Errorf("invalid identity action %q: expected service:Action", action)
		}
		if seen[action] {
			return fmt.Errorf("duplicate identity action %q", action)
		}
		seen[action] = true
	}
	if len(c.Identity.Resources) == 0 {
		return fmt.Errorf("identity.resources must not be empty")
	}
	return nil
}

// validateTask validates the task template and container.
func (c *Config) validateTask() error {
	t := c.Task
	if !constructIDRegex.MatchString(t.Name) {
		return fmt.Errorf("invalid task.name %q", t.Name)
	}
	memory, ok := validFargateMemory[t.CPU]
	if !ok {
		return fmt.Errorf("invalid task.cpu %d: must be one of 256, 512, 1024, 2048, 4096", t.CPU)
	}
	if !slices.Contains(memory, t.MemoryLimitMiB) {
		return fmt.Errorf("invalid task.memory_limit_mib %d for cpu %d: must be one of %v", t.MemoryLimitMiB, t.CPU, memory)
	}
	if t.ContainerName == "" {
		return fmt.Errorf("task.container_name is required")
	}
	if t.Image == "" {
		return fmt.Errorf("task.image is required")
	}
	if t.ContainerPort < 1 || t.ContainerPort > 65535 {
		return fmt.Errorf("invalid task.container_port %d", t.ContainerPort)
	}
	return nil
}

// validateService validates the running service and its registration.
func (c *Config) validateService() error {
	s := c.Service
	if !constructIDRegex.MatchString(s.Name) {
		return fmt.Errorf("invalid service.name %q", s.Name)
	}
	if s.DesiredCount < 0 {
		return fmt.Errorf("service.desired_count must not be negative, got %d", s.DesiredCount)
	}
	if !ValidSubnetTypes[s.SubnetType] {
		return fmt.Errorf("invalid service.subnet_type %q: must be one of %v", s.SubnetType, getMapKeys(ValidSubnetTypes))
	}
	if !c.Network.hasSubnetType(s.SubnetType) {
		return fmt.Errorf("service.subnet_type %q is not declared in network %q", s.SubnetType, c.Network.Name)
	}
	if s.AssignPublicIP && s.SubnetType != SubnetTypePublic {
		return fmt.Errorf("service.assign_public_ip requires subnet_type %q", SubnetTypePublic)
	}

	d := s.Discovery
	if !dnsLabelRegex.MatchString(d.Name) {
		return fmt.Errorf("invalid service.discovery.name %q", d.Name)
	}
	if !ValidRecordTypes[d.RecordType] {
		return fmt.Errorf("invalid service.discovery.record_type %q: must be one of %v", d.RecordType, getMapKeys(ValidRecordTypes))
	}
	if d.TTLSeconds < 0 || d.TTLSeconds > 2147483647 {
		return fmt.Errorf("invalid service.discovery.ttl_seconds %d", d.TTLSeconds)
	}
	return nil
}

func (n NetworkConfig) hasSubnetType(subnetType string) bool {
	for _, g := range n.SubnetGroups {
		if g.Type == subnetType {
			return true
		}
	}
	return false
}

// getMapKeys returns the keys of a map as a sorted slice for error messages.
func getMapKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
