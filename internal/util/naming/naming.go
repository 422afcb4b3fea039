package naming

import (
	"fmt"
	"strings"
)

// Naming functions for stack constructs and discovery names.
// Construct IDs feed CloudFormation logical IDs, so they must stay stable
// between synthesis runs for the provider to diff in place.

// Subnet returns the construct ID of the subnet of group in zone (zero-based).
func Subnet(group string, zone int) string {
	return fmt.Sprintf("%sSubnet%d", group, zone+1)
}

// DefaultNamespace returns the declaration ID of a cluster's default namespace.
func DefaultNamespace(cluster string) string {
	return cluster + "DefaultNamespace"
}

// Container returns the declaration ID of a container inside a task template.
func Container(task, container string) string {
	return fmt.Sprintf("%s/%s", task, container)
}

// ZoneLookup returns the declaration ID of the hosted zone handle resolved
// from a namespace.
func ZoneLookup(association string) string {
	return association
}

// ZoneAssociation returns the construct ID of the association between a
// resolved zone and a network.
func ZoneAssociation(association, network string) string {
	return fmt.Sprintf("%s%sAssociation", association, network)
}

// AssociationPhysicalID returns the physical ID of a zone association.
// It is derived from the stack and network only, since the zone ID is a
// deploy-time token.
func AssociationPhysicalID(stack, network string) string {
	return strings.ToLower(fmt.Sprintf("%s-%s-zone-association", stack, network))
}

// ServiceFQDN returns the DNS name replicas of a service resolve under.
func ServiceFQDN(service, namespace string) string {
	return fmt.Sprintf("%s.%s", service, namespace)
}

// TemplateFile returns the file name of a synthesized stack template.
func TemplateFile(stack string) string {
	return stack + ".template.json"
}

// ManifestKey returns the object key a published template is stored under.
func ManifestKey(prefix, stack string) string {
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		return TemplateFile(stack)
	}
	return prefix + "/" + TemplateFile(stack)
}
