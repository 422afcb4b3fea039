package config

// Subnet types a subnet group may carry.
const (
	SubnetTypePublic   = "public"
	SubnetTypeIsolated = "isolated"
)

// DNS record types supported for service registration.
const (
	RecordTypeA    = "A"
	RecordTypeAAAA = "AAAA"
	RecordTypeSRV  = "SRV"
)

// Default literal values of the declared topology.
const (
	DefaultStackName      = "EcsServicediscoveryStack"
	DefaultIPv4CIDR       = "10.0.0.0/16"
	DefaultMaxAZs         = 2
	DefaultSubnetCIDRMask = 24

	DefaultNetworkName           = "ECSVPC"
	DefaultValidationNetworkName = "TestVPC"
	DefaultPublicGroupName       = "Public"
	DefaultIsolatedGroupName     = "isolatedSubnet"

	DefaultClusterName          = "Cluster"
	DefaultClusterNamespaceName = "local"

	DefaultNamespaceID   = "ServiceDiscovery"
	DefaultNamespaceName = "service"

	DefaultIdentityName      = "TaskRole"
	DefaultIdentityPrincipal = "ecs-tasks.amazonaws.com"
	WildcardResource         = "*"

	DefaultTaskName       = "nginx"
	DefaultTaskCPU        = 256
	DefaultMemoryLimitMiB = 512
	DefaultContainerName  = "nginx"
	DefaultImage          = "nginx:latest"
	DefaultContainerPort  = 80

	DefaultServiceName  = "FargateService"
	DefaultDesiredCount = 2

	DefaultDiscoveryName = "nginx"
	DefaultRecordType    = RecordTypeA
	DefaultTTLSeconds    = 30

	DefaultAssociationName = "HostZone"
)

// DefaultIdentityActions are the remote-control and filesystem actions
// granted to the task role.
var DefaultIdentityActions = []string{
	"ssmmessages:CreateControlChannel",
	"ssmmessages:CreateDataChannel",
	"ssmmessages:OpenControlChannel",
	"ssmmessages:OpenDataChannel",
	"elasticfilesystem:*",
}

// validFargateMemory lists the accepted memory values (MiB) per CPU unit value.
var validFargateMemory = map[int][]int{
	256:  {512, 1024, 2048},
	512:  {1024, 2048, 3072, 4096},
	1024: {2048, 3072, 4096, 5120, 6144, 7168, 8192},
	2048: rangeMiB(4096, 16384, 1024),
	4096: rangeMiB(8192, 30720, 1024),
}

func rangeMiB(from, to, step int) []int {
	var out []int
	for v := from; v <= to; v += step {
		out = append(out, v)
	}
	return out
}
