package topology

import (
	"fmt"
	"slices"
	"time"

	"github.com/imamik/ecsdisco/internal/config"
	"github.com/imamik/ecsdisco/internal/util/naming"
)

// networkPhase declares both partitions and their subnets.
type networkPhase struct{}

func (networkPhase) Name() string { return "network" }

func (networkPhase) Declare(ctx *Context) error {
	for _, n := range []struct {
		cfg  config.NetworkConfig
		role string
	}{
		{ctx.Config.Network, RoleOperational},
		{ctx.Config.ValidationNetwork, RoleValidation},
	} {
		part, err := buildPartition(n.cfg, n.role)
		if err != nil {
			return fmt.Errorf("partition %s: %w", n.cfg.Name, err)
		}

		if err := ctx.declare(Declaration{
			ID:   part.ID,
			Kind: KindNetwork,
			Properties: map[string]any{
				"role":  part.Role,
				"cidr":  part.CIDR,
				"zones": part.Zones,
			},
		}); err != nil {
			return err
		}

		for _, s := range part.Subnets {
			if err := ctx.declare(Declaration{
				ID:        s.ID,
				Kind:      KindSubnet,
				DependsOn: []string{part.ID},
				Properties: map[string]any{
					"group": s.Group,
					"tag":   string(s.Tag),
					"zone":  s.Zone,
					"cidr":  s.CIDR,
				},
			}); err != nil {
				return err
			}
		}

		ctx.Plan.Partitions = append(ctx.Plan.Partitions, part)
	}
	return nil
}

// buildPartition allocates subnets group by group, zone by zone, which is
// the order the provider allocates them in.
func buildPartition(cfg config.NetworkConfig, role string) (*Partition, error) {
	alloc, err := config.NewSubnetAllocator(cfg.IPv4CIDR)
	if err != nil {
		return nil, err
	}

	part := &Partition{
		ID:    cfg.Name,
		Role:  role,
		CIDR:  cfg.IPv4CIDR,
		Zones: cfg.MaxAZs,
	}
	for _, g := range cfg.SubnetGroups {
		for zone := 0; zone < cfg.MaxAZs; zone++ {
			cidr, err := alloc.Next(g.CIDRMask)
			if err != nil {
				return nil, fmt.Errorf("subnet group %s: %w", g.Name, err)
			}
			name := naming.Subnet(g.Name, zone)
			part.Subnets = append(part.Subnets, Subnet{
				ID:    cfg.Name + "/" + name,
				Name:  name,
				Group: g.Name,
				Tag:   SubnetTag(g.Type),
				Zone:  zone,
				CIDR:  cidr,
			})
		}
	}
	return part, nil
}

// clusterPhase declares the cluster and, when enabled, its default namespace.
type clusterPhase struct{}

func (clusterPhase) Name() string { return "cluster" }

func (clusterPhase) Declare(ctx *Context) error {
	cfg := ctx.Config.Cluster
	part := ctx.Plan.PartitionByRole(RoleOperational)
	if part == nil {
		return fmt.Errorf("no operational partition declared")
	}

	cluster := &Cluster{
		ID:                       cfg.Name,
		PartitionID:              part.ID,
		ContainerInsights:        cfg.ContainerInsights,
		FargateCapacityProviders: cfg.FargateCapacityProviders,
	}
	if err := ctx.declare(Declaration{
		ID:        cluster.ID,
		Kind:      KindCluster,
		DependsOn: []string{part.ID},
		Properties: map[string]any{
			"containerInsights":        cluster.ContainerInsights,
			"fargateCapacityProviders": cluster.FargateCapacityProviders,
		},
	}); err != nil {
		return err
	}

	if cfg.DefaultNamespace.Enabled {
		ns := &Namespace{
			ID:          naming.DefaultNamespace(cluster.ID),
			Name:        cfg.DefaultNamespace.Name,
			PartitionID: part.ID,
		}
		if err := ctx.declare(Declaration{
			ID:         ns.ID,
			Kind:       KindDefaultNamespace,
			DependsOn:  []string{cluster.ID, part.ID},
			Properties: map[string]any{"name": ns.Name},
		}); err != nil {
			return err
		}
		cluster.DefaultNamespace = ns
	}

	ctx.Plan.Cluster = cluster
	return nil
}

// namespacePhase declares the explicit private DNS namespace in the
// cluster's partition.
type namespacePhase struct{}

func (namespacePhase) Name() string { return "namespace" }

func (namespacePhase) Declare(ctx *Context) error {
	if ctx.Plan.Cluster == nil {
		return fmt.Errorf("cluster not declared")
	}
	ns := &Namespace{
		ID:          ctx.Config.Namespace.ID,
		Name:        ctx.Config.Namespace.Name,
		PartitionID: ctx.Plan.Cluster.PartitionID,
	}
	if err := ctx.declare(Declaration{
		ID:         ns.ID,
		Kind:       KindNamespace,
		DependsOn:  []string{ns.PartitionID},
		Properties: map[string]any{"name": ns.Name},
	}); err != nil {
		return err
	}
	ctx.Plan.Namespace = ns
	return nil
}

// identityPhase declares the task role.
type identityPhase struct{}

func (identityPhase) Name() string { return "identity" }

func (identityPhase) Declare(ctx *Context) error {
	cfg := ctx.Config.Identity
	id := &Identity{
		ID:        cfg.Name,
		Principal: cfg.Principal,
		Actions:   slices.Clone(cfg.Actions),
		Resources: slices.Clone(cfg.Resources),
	}
	if err := ctx.declare(Declaration{
		ID:   id.ID,
		Kind: KindIdentity,
		Properties: map[string]any{
			"principal": id.Principal,
			"actions":   id.Actions,
			"resources": id.Resources,
		},
	}); err != nil {
		return err
	}
	ctx.Plan.Identity = id
	return nil
}

// taskPhase declares the task template.
type taskPhase struct{}

func (taskPhase) Name() string { return "task" }

func (taskPhase) Declare(ctx *Context) error {
	if ctx.Plan.Identity == nil {
		return fmt.Errorf("identity not declared")
	}
	cfg := ctx.Config.Task
	task := &TaskTemplate{
		ID:             cfg.Name,
		IdentityID:     ctx.Plan.Identity.ID,
		CPU:            cfg.CPU,
		MemoryLimitMiB: cfg.MemoryLimitMiB,
		Container: Container{
			ID:    naming.Container(cfg.Name, cfg.ContainerName),
			Name:  cfg.ContainerName,
			Image: cfg.Image,
			Port:  cfg.ContainerPort,
		},
	}
	if err := ctx.declare(Declaration{
		ID:        task.ID,
		Kind:      KindTaskTemplate,
		DependsOn: []string{task.IdentityID},
		Properties: map[string]any{
			"cpu":            task.CPU,
			"memoryLimitMiB": task.MemoryLimitMiB,
		},
	}); err != nil {
		return err
	}
	if err := ctx.declare(Declaration{
		ID:        task.Container.ID,
		Kind:      KindContainer,
		DependsOn: []string{task.ID},
		Properties: map[string]any{
			"name":  task.Container.Name,
			"image": task.Container.Image,
			"port":  task.Container.Port,
		},
	}); err != nil {
		return err
	}
	ctx.Plan.TaskTemplate = task
	return nil
}

// servicePhase declares the running service registered in the explicit namespace.
type servicePhase struct{}

func (servicePhase) Name() string { return "service" }

func (servicePhase) Declare(ctx *Context) error {
	p := ctx.Plan
	if p.Cluster == nil || p.TaskTemplate == nil || p.Namespace == nil {
		return fmt.Errorf("cluster, task template and namespace must be declared first")
	}
	cfg := ctx.Config.Service

	svc := &Service{
		ID:             cfg.Name,
		ClusterID:      p.Cluster.ID,
		TaskTemplateID: p.TaskTemplate.ID,
		DesiredCount:   cfg.DesiredCount,
		AssignPublicIP: cfg.AssignPublicIP,
		SubnetTag:      SubnetTag(cfg.SubnetType),
		Registration: &Registration{
			Name:        cfg.Discovery.Name,
			NamespaceID: p.Namespace.ID,
			RecordType:  cfg.Discovery.RecordType,
			TTL:         time.Duration(cfg.Discovery.TTLSeconds) * time.Second,
		},
	}
	if err := ctx.declare(Declaration{
		ID:        svc.ID,
		Kind:      KindService,
		DependsOn: []string{svc.ClusterID, svc.TaskTemplateID, svc.Registration.NamespaceID},
		Properties: map[string]any{
			"desiredCount":   svc.DesiredCount,
			"assignPublicIp": svc.AssignPublicIP,
			"subnetTag":      string(svc.SubnetTag),
			"registration": map[string]any{
				"name":       svc.Registration.Name,
				"fqdn":       naming.ServiceFQDN(svc.Registration.Name, p.Namespace.Name),
				"recordType": svc.Registration.RecordType,
				"ttlSeconds": int(svc.Registration.TTL / time.Second),
			},
		},
	}); err != nil {
		return err
	}
	p.Service = svc
	return nil
}

// zonePhase declares the two-step association of the namespace's hosted
// zone with the validation partition. The namespace exposes no way to
// attach another network, so the zone is first resolved by reference from
// the provisioned namespace and then associated at the zone level.
type zonePhase struct{}

func (zonePhase) Name() string { return "zone" }

func (zonePhase) Declare(ctx *Context) error {
	cfg := ctx.Config.Association
	if !cfg.Enabled {
		ctx.Log.V(1).Info("zone association disabled")
		return nil
	}
	p := ctx.Plan
	if p.Namespace == nil {
		return fmt.Errorf("namespace not declared")
	}
	target := p.PartitionByRole(RoleValidation)
	if target == nil {
		return fmt.Errorf("no validation partition declared")
	}

	lookup := &ZoneLookup{
		ID:          naming.ZoneLookup(cfg.Name),
		NamespaceID: p.Namespace.ID,
	}
	if err := ctx.declare(Declaration{
		ID:         lookup.ID,
		Kind:       KindZoneLookup,
		DependsOn:  []string{lookup.NamespaceID},
		Properties: map[string]any{"source": "namespaceHostedZoneId"},
	}); err != nil {
		return err
	}

	assoc := &ZoneAssociation{
		ID:           naming.ZoneAssociation(cfg.Name, target.ID),
		ZoneLookupID: lookup.ID,
		PartitionID:  target.ID,
	}
	if err := ctx.declare(Declaration{
		ID:        assoc.ID,
		Kind:      KindZoneAssociation,
		DependsOn: []string{assoc.ZoneLookupID, assoc.PartitionID},
	}); err != nil {
		return err
	}

	p.ZoneLookup = lookup
	p.ZoneAssociation = assoc
	return nil
}
