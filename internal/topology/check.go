package topology

import (
	"errors"
	"fmt"
	"slices"
)

// Violation is one broken plan invariant.
type Violation struct {
	Subject string // Declaration ID the violation is about
	Message string
}

// Error implements the error interface.
func (v Violation) Error() string {
	return fmt.Sprintf("%s: %s", v.Subject, v.Message)
}

// Check verifies the structural invariants of a finished plan and returns
// every violation joined into one error.
func Check(p *Plan) error {
	var errs []error
	for _, check := range []func(*Plan) []error{
		checkPartitions,
		checkRegistration,
		checkIdentity,
		checkAssociation,
		checkOrder,
	} {
		errs = append(errs, check(p)...)
	}
	return errors.Join(errs...)
}

// checkPartitions requires every partition to carry exactly the required
// tag set, with one subnet per zone and tag.
func checkPartitions(p *Plan) []error {
	var errs []error
	if len(p.Partitions) == 0 {
		return []error{Violation{Subject: p.StackName, Message: "no partitions declared"}}
	}
	for _, part := range p.Partitions {
		tags := part.Tags()
		if len(tags) != len(RequiredTags) {
			errs = append(errs, Violation{part.ID, fmt.Sprintf("subnet tags %v, want exactly %v", sortedTags(tags), RequiredTags)})
		} else {
			for _, tag := range RequiredTags {
				if !tags[tag] {
					errs = append(errs, Violation{part.ID, fmt.Sprintf("missing %s subnets", tag)})
				}
			}
		}

		if want := part.Zones * len(tags); len(part.Subnets) != want {
			errs = append(errs, Violation{part.ID, fmt.Sprintf("%d subnets, want %d zones x %d tags = %d", len(part.Subnets), part.Zones, len(tags), want)})
		}
	}
	return errs
}

// checkRegistration requires the service's namespace to live in the
// cluster's partition; registration fails at deploy time otherwise.
func checkRegistration(p *Plan) []error {
	if p.Service == nil || p.Cluster == nil {
		return []error{Violation{p.StackName, "service or cluster not declared"}}
	}
	svc := p.Service
	var errs []error

	if svc.ClusterID != p.Cluster.ID {
		errs = append(errs, Violation{svc.ID, fmt.Sprintf("runs in unknown cluster %s", svc.ClusterID)})
	}

	part := p.Partition(p.Cluster.PartitionID)
	if part == nil {
		errs = append(errs, Violation{p.Cluster.ID, fmt.Sprintf("bound to unknown partition %s", p.Cluster.PartitionID)})
	} else if len(part.SubnetsTagged(svc.SubnetTag)) == 0 {
		errs = append(errs, Violation{svc.ID, fmt.Sprintf("partition %s has no %s subnets", part.ID, svc.SubnetTag)})
	}

	if svc.Registration == nil {
		return errs
	}
	ns := namespaceByID(p, svc.Registration.NamespaceID)
	switch {
	case ns == nil:
		errs = append(errs, Violation{svc.ID, fmt.Sprintf("registers in unknown namespace %s", svc.Registration.NamespaceID)})
	case ns.PartitionID != p.Cluster.PartitionID:
		errs = append(errs, Violation{svc.ID, fmt.Sprintf("namespace %s is bound to %s but cluster %s is bound to %s",
			ns.ID, ns.PartitionID, p.Cluster.ID, p.Cluster.PartitionID)})
	}
	if svc.Registration.TTL < 0 {
		errs = append(errs, Violation{svc.ID, "negative record TTL"})
	}
	return errs
}

func checkIdentity(p *Plan) []error {
	id := p.Identity
	if id == nil {
		return []error{Violation{p.StackName, "identity not declared"}}
	}
	var errs []error
	if len(id.Actions) == 0 {
		errs = append(errs, Violation{id.ID, "no actions granted"})
	}
	seen := make(map[string]bool, len(id.Actions))
	for _, a := range id.Actions {
		if seen[a] {
			errs = append(errs, Violation{id.ID, fmt.Sprintf("action %s granted twice", a)})
		}
		seen[a] = true
	}
	if len(id.Resources) == 0 {
		errs = append(errs, Violation{id.ID, "no resources"})
	}
	if p.TaskTemplate != nil && p.TaskTemplate.IdentityID != id.ID {
		errs = append(errs, Violation{p.TaskTemplate.ID, fmt.Sprintf("references unknown identity %s", p.TaskTemplate.IdentityID)})
	}
	return errs
}

// checkAssociation requires the association target to be a partition other
// than the one the namespace already serves.
func checkAssociation(p *Plan) []error {
	a := p.ZoneAssociation
	if a == nil {
		return nil
	}
	if p.ZoneLookup == nil || a.ZoneLookupID != p.ZoneLookup.ID {
		return []error{Violation{a.ID, "association without a zone lookup"}}
	}
	if p.Partition(a.PartitionID) == nil {
		return []error{Violation{a.ID, fmt.Sprintf("targets unknown partition %s", a.PartitionID)}}
	}
	if ns := namespaceByID(p, p.ZoneLookup.NamespaceID); ns != nil && ns.PartitionID == a.PartitionID {
		return []error{Violation{a.ID, fmt.Sprintf("partition %s is already served by namespace %s", a.PartitionID, ns.ID)}}
	}
	return nil
}

// checkOrder re-verifies that every declaration only references earlier ones.
func checkOrder(p *Plan) []error {
	var errs []error
	declared := make(map[string]bool)
	for _, d := range p.Graph.Declarations() {
		for _, dep := range d.DependsOn {
			if !declared[dep] {
				errs = append(errs, Violation{d.ID, fmt.Sprintf("references %s before it is declared", dep)})
			}
		}
		declared[d.ID] = true
	}
	return errs
}

func namespaceByID(p *Plan, id string) *Namespace {
	if p.Namespace != nil && p.Namespace.ID == id {
		return p.Namespace
	}
	if p.Cluster != nil && p.Cluster.DefaultNamespace != nil && p.Cluster.DefaultNamespace.ID == id {
		return p.Cluster.DefaultNamespace
	}
	return nil
}

func sortedTags(tags map[SubnetTag]bool) []SubnetTag {
	out := make([]SubnetTag, 0, len(tags))
	for t := range tags {
		out = append(out, t)
	}
	slices.Sort(out)
	return out
}
