package config

// Config holds the declared topology of a service discovery stack.
type Config struct {
	StackName string `yaml:"stack_name"`

	// Environment pins the stack to an account and region. Both empty
	// produces an environment-agnostic stack.
	Environment EnvironmentConfig `yaml:"environment"`

	// Tags are applied to every taggable resource in the stack.
	Tags map[string]string `yaml:"tags,omitempty"`

	// Network is the operational partition hosting the cluster.
	Network NetworkConfig `yaml:"network"`

	// ValidationNetwork is the isolated partition used to validate name
	// resolution through the zone association.
	ValidationNetwork NetworkConfig `yaml:"validation_network"`

	Cluster     ClusterConfig     `yaml:"cluster"`
	Namespace   NamespaceConfig   `yaml:"namespace"`
	Identity    IdentityConfig    `yaml:"identity"`
	Task        TaskConfig        `yaml:"task"`
	Service     ServiceConfig     `yaml:"service"`
	Association AssociationConfig `yaml:"association"`
}

// EnvironmentConfig selects the deployment target.
type EnvironmentConfig struct {
	Account string `yaml:"account,omitempty"`
	Region  string `yaml:"region,omitempty"`
}

// NetworkConfig describes one network partition.
type NetworkConfig struct {
	// Name is the construct ID of the VPC (e.g. ECSVPC).
	Name string `yaml:"name"`

	// IPv4CIDR is the address block of the partition.
	// Default: 10.0.0.0/16
	IPv4CIDR string `yaml:"ipv4_cidr"`

	// MaxAZs is the number of availability zones subnets are replicated across.
	// Default: 2
	MaxAZs int `yaml:"max_azs"`

	// SubnetGroups are allocated in order, one subnet per zone each.
	SubnetGroups []SubnetGroupConfig `yaml:"subnet_groups"`
}

// SubnetGroupConfig is one tagged subnet group replicated per zone.
type SubnetGroupConfig struct {
	Name string `yaml:"name"`

	// Type is "public" or "isolated".
	Type string `yaml:"type"`

	// CIDRMask is the prefix length of each subnet in the group.
	// Default: 24
	CIDRMask int `yaml:"cidr_mask"`
}

// ClusterConfig describes the container cluster.
type ClusterConfig struct {
	Name                     string `yaml:"name"`
	ContainerInsights        bool   `yaml:"container_insights"`
	FargateCapacityProviders bool   `yaml:"fargate_capacity_providers"`

	DefaultNamespace DefaultNamespaceConfig `yaml:"default_namespace"`
}

// DefaultNamespaceConfig controls the cluster's default naming namespace.
// It is only constructed when Enabled is set.
type DefaultNamespaceConfig struct {
	Enabled bool   `yaml:"enabled"`
	Name    string `yaml:"name"`
}

// NamespaceConfig describes the explicit private DNS namespace.
type NamespaceConfig struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

// IdentityConfig describes the task role.
type IdentityConfig struct {
	Name      string   `yaml:"name"`
	Principal string   `yaml:"principal"`
	Actions   []string `yaml:"actions"`
	Resources []string `yaml:"resources"`
}

// TaskConfig describes the task template and its single container.
type TaskConfig struct {
	Name           string `yaml:"name"`
	CPU            int    `yaml:"cpu"`
	MemoryLimitMiB int    `yaml:"memory_limit_mib"`
	ContainerName  string `yaml:"container_name"`
	Image          string `yaml:"image"`
	ContainerPort  int    `yaml:"container_port"`
}

// ServiceConfig describes the running service.
type ServiceConfig struct {
	Name           string          `yaml:"name"`
	DesiredCount   int             `yaml:"desired_count"`
	AssignPublicIP bool            `yaml:"assign_public_ip"`
	SubnetType     string          `yaml:"subnet_type"`
	Discovery      DiscoveryConfig `yaml:"discovery"`
}

// DiscoveryConfig describes how replicas register in the namespace.
type DiscoveryConfig struct {
	Name       string `yaml:"name"`
	RecordType string `yaml:"record_type"`
	TTLSeconds int    `yaml:"ttl_seconds"`
}

// AssociationConfig controls the association of the namespace's hosted
// zone with the validation network.
type AssociationConfig struct {
	Enabled bool   `yaml:"enabled"`
	Name    string `yaml:"name"`
}
