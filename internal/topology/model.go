package topology

import "time"

// Partition roles.
const (
	RoleOperational = "operational"
	RoleValidation  = "validation"
)

// SubnetTag classifies a subnet's reachability.
type SubnetTag string

// Subnet tags.
const (
	TagPublic   SubnetTag = "public"
	TagIsolated SubnetTag = "isolated"
)

// RequiredTags is the exact tag set every partition carries.
var RequiredTags = []SubnetTag{TagPublic, TagIsolated}

// Partition is a network address space subdivided into zone-replicated subnets.
type Partition struct {
	ID      string
	Role    string
	CIDR    string
	Zones   int
	Subnets []Subnet
}

// Subnet is one subnet of a partition.
type Subnet struct {
	ID    string
	Name  string
	Group string
	Tag   SubnetTag
	Zone  int
	CIDR  string
}

// Tags returns the distinct subnet tags of the partition.
func (p *Partition) Tags() map[SubnetTag]bool {
	tags := make(map[SubnetTag]bool)
	for _, s := range p.Subnets {
		tags[s.Tag] = true
	}
	return tags
}

// SubnetsTagged returns the subnets carrying tag in allocation order.
func (p *Partition) SubnetsTagged(tag SubnetTag) []Subnet {
	var out []Subnet
	for _, s := range p.Subnets {
		if s.Tag == tag {
			out = append(out, s)
		}
	}
	return out
}

// Cluster schedules workloads inside one partition.
type Cluster struct {
	ID                       string
	PartitionID              string
	ContainerInsights        bool
	FargateCapacityProviders bool

	// DefaultNamespace is nil unless explicitly enabled.
	DefaultNamespace *Namespace
}

// Namespace is a private DNS service registry scoped to one partition.
type Namespace struct {
	ID          string
	Name        string
	PartitionID string
}

// Identity is the permission set assumed by the task at runtime.
type Identity struct {
	ID        string
	Principal string
	Actions   []string
	Resources []string
}

// Container is the single container of a task template.
type Container struct {
	ID    string
	Name  string
	Image string
	Port  int
}

// TaskTemplate is an immutable workload definition.
type TaskTemplate struct {
	ID             string
	IdentityID     string
	CPU            int
	MemoryLimitMiB int
	Container      Container
}

// Registration describes how replicas register in a namespace.
type Registration struct {
	Name        string
	NamespaceID string
	RecordType  string
	TTL         time.Duration
}

// Service is a replica-counted instantiation of a task template.
type Service struct {
	ID             string
	ClusterID      string
	TaskTemplateID string
	DesiredCount   int
	AssignPublicIP bool
	SubnetTag      SubnetTag
	Registration   *Registration
}

// ZoneLookup resolves the hosted zone behind a namespace by reference.
// The zone ID only exists once the namespace has been provisioned.
type ZoneLookup struct {
	ID          string
	NamespaceID string
}

// ZoneAssociation attaches a resolved zone to a partition.
type ZoneAssociation struct {
	ID           string
	ZoneLookupID string
	PartitionID  string
}

// Plan is the complete, checked declaration of a stack.
type Plan struct {
	StackName string

	Partitions   []*Partition
	Cluster      *Cluster
	Namespace    *Namespace
	Identity     *Identity
	TaskTemplate *TaskTemplate
	Service      *Service

	// ZoneLookup and ZoneAssociation are nil when the association is disabled.
	ZoneLookup      *ZoneLookup
	ZoneAssociation *ZoneAssociation

	Graph *Graph
}

// Partition returns the partition with id, or nil.
func (p *Plan) Partition(id string) *Partition {
	for _, part := range p.Partitions {
		if part.ID == id {
			return part
		}
	}
	return nil
}

// PartitionByRole returns the first partition with role, or nil.
func (p *Plan) PartitionByRole(role string) *Partition {
	for _, part := range p.Partitions {
		if part.Role == role {
			return part
		}
	}
	return nil
}
