package config

// Default returns the configuration of the reference topology: two
// 10.0.0.0/16 partitions over two zones, one nginx service registered
// as nginx.service with an A record of 30s.
func Default() *Config {
	return &Config{
		StackName:         DefaultStackName,
		Network:           defaultNetwork(DefaultNetworkName),
		ValidationNetwork: defaultNetwork(DefaultValidationNetworkName),
		Cluster: ClusterConfig{
			Name:                     DefaultClusterName,
			ContainerInsights:        true,
			FargateCapacityProviders: true,
			DefaultNamespace: DefaultNamespaceConfig{
				Enabled: true,
				Name:    DefaultClusterNamespaceName,
			},
		},
		Namespace: NamespaceConfig{
			ID:   DefaultNamespaceID,
			Name: DefaultNamespaceName,
		},
		Identity: IdentityConfig{
			Name:      DefaultIdentityName,
			Principal: DefaultIdentityPrincipal,
			Actions:   append([]string(nil), DefaultIdentityActions...),
			Resources: []string{WildcardResource},
		},
		Task: TaskConfig{
			Name:           DefaultTaskName,
			CPU:            DefaultTaskCPU,
			MemoryLimitMiB: DefaultMemoryLimitMiB,
			ContainerName:  DefaultContainerName,
			Image:          DefaultImage,
			ContainerPort:  DefaultContainerPort,
		},
		Service: ServiceConfig{
			Name:           DefaultServiceName,
			DesiredCount:   DefaultDesiredCount,
			AssignPublicIP: true,
			SubnetType:     SubnetTypePublic,
			Discovery: DiscoveryConfig{
				Name:       DefaultDiscoveryName,
				RecordType: DefaultRecordType,
				TTLSeconds: DefaultTTLSeconds,
			},
		},
		Association: AssociationConfig{
			Enabled: true,
			Name:    DefaultAssociationName,
		},
	}
}

func defaultNetwork(name string) NetworkConfig {
	return NetworkConfig{
		Name:     name,
		IPv4CIDR: DefaultIPv4CIDR,
		MaxAZs:   DefaultMaxAZs,
		SubnetGroups: []SubnetGroupConfig{
			{Name: DefaultPublicGroupName, Type: SubnetTypePublic, CIDRMask: DefaultSubnetCIDRMask},
			{Name: DefaultIsolatedGroupName, Type: SubnetTypeIsolated, CIDRMask: DefaultSubnetCIDRMask},
		},
	}
}

// ApplyDefaults fills fields a config file set to their zero value.
// Omitted fields never reach it: LoadFromBytes decodes on top of Default,
// so they keep their defaults. Booleans are left alone, so an explicit
// false survives.
func (c *Config) ApplyDefaults() {
	d := Default()

	if c.StackName == "" {
		c.StackName = d.StackName
	}
	c.Network.applyDefaults(DefaultNetworkName)
	c.ValidationNetwork.applyDefaults(DefaultValidationNetworkName)

	if c.Cluster.Name == "" {
		c.Cluster.Name = d.Cluster.Name
	}
	if c.Cluster.DefaultNamespace.Enabled && c.Cluster.DefaultNamespace.Name == "" {
		c.Cluster.DefaultNamespace.Name = DefaultClusterNamespaceName
	}

	if c.Namespace.ID == "" {
		c.Namespace.ID = d.Namespace.ID
	}
	if c.Namespace.Name == "" {
		c.Namespace.Name = d.Namespace.Name
	}

	if c.Identity.Name == "" {
		c.Identity.Name = d.Identity.Name
	}
	if c.Identity.Principal == "" {
		c.Identity.Principal = d.Identity.Principal
	}
	if len(c.Identity.Actions) == 0 {
		c.Identity.Actions = d.Identity.Actions
	}
	if len(c.Identity.Resources) == 0 {
		c.Identity.Resources = d.Identity.Resources
	}

	c.Task.applyDefaults(d.Task)
	c.Service.applyDefaults(d.Service)

	if c.Association.Name == "" {
		c.Association.Name = d.Association.Name
	}
}

func (n *NetworkConfig) applyDefaults(name string) {
	if n.Name == "" {
		n.Name = name
	}
	if n.IPv4CIDR == "" {
		n.IPv4CIDR = DefaultIPv4CIDR
	}
	if n.MaxAZs == 0 {
		n.MaxAZs = DefaultMaxAZs
	}
	if len(n.SubnetGroups) == 0 {
		n.SubnetGroups = defaultNetwork(name).SubnetGroups
	}
	for i := range n.SubnetGroups {
		if n.SubnetGroups[i].CIDRMask == 0 {
			n.SubnetGroups[i].CIDRMask = DefaultSubnetCIDRMask
		}
	}
}

func (t *TaskConfig) applyDefaults(d TaskConfig) {
	if t.Name == "" {
		t.Name = d.Name
	}
	if t.CPU == 0 {
		t.CPU = d.CPU
	}
	if t.MemoryLimitMiB == 0 {
		t.MemoryLimitMiB = d.MemoryLimitMiB
	}
	if t.ContainerName == "" {
		t.ContainerName = d.ContainerName
	}
	if t.Image == "" {
		t.Image = d.Image
	}
	if t.ContainerPort == 0 {
		t.ContainerPort = d.ContainerPort
	}
}

func (s *ServiceConfig) applyDefaults(d ServiceConfig) {
	if s.Name == "" {
		s.Name = d.Name
	}
	if s.SubnetType == "" {
		s.SubnetType = d.SubnetType
	}
	if s.Discovery.Name == "" {
		s.Discovery.Name = d.Discovery.Name
	}
	if s.Discovery.RecordType == "" {
		s.Discovery.RecordType = d.Discovery.RecordType
	}
	if s.Discovery.TTLSeconds == 0 {
		s.Discovery.TTLSeconds = d.Discovery.TTLSeconds
	}
}
