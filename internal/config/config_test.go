package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_IsValid(t *testing.T) {
	t.Parallel()
	require.NoError(t, Default().Validate())
}

func TestDefault_Literals(t *testing.T) {
	t.Parallel()
	cfg := Default()

	assert.Equal(t, "10.0.0.0/16", cfg.Network.IPv4CIDR)
	assert.Equal(t, "10.0.0.0/16", cfg.ValidationNetwork.IPv4CIDR)
	assert.Equal(t, 2, cfg.Network.MaxAZs)
	assert.Equal(t, []SubnetGroupConfig{
		{Name: "Public", Type: SubnetTypePublic, CIDRMask: 24},
		{Name: "isolatedSubnet", Type: SubnetTypeIsolated, CIDRMask: 24},
	}, cfg.Network.SubnetGroups)
	assert.Equal(t, "service", cfg.Namespace.Name)
	assert.Equal(t, "local", cfg.Cluster.DefaultNamespace.Name)
	assert.Len(t, cfg.Identity.Actions, 5)
	assert.Equal(t, []string{"*"}, cfg.Identity.Resources)
	assert.Equal(t, 512, cfg.Task.MemoryLimitMiB)
	assert.Equal(t, "nginx:latest", cfg.Task.Image)
	assert.Equal(t, 80, cfg.Task.ContainerPort)
	assert.Equal(t, 2, cfg.Service.DesiredCount)
	assert.Equal(t, "A", cfg.Service.Discovery.RecordType)
	assert.Equal(t, 30, cfg.Service.Discovery.TTLSeconds)
}

func TestDefault_ActionsAreCopied(t *testing.T) {
	t.Parallel()
	cfg := Default()
	cfg.Identity.Actions[0] = "mutated:*"

	assert.Equal(t, "ssmmessages:CreateControlChannel", DefaultIdentityActions[0])
}

func TestApplyDefaults_FillsZeroValues(t *testing.T) {
	t.Parallel()
	cfg := &Config{
		Network: NetworkConfig{
			SubnetGroups: []SubnetGroupConfig{{Name: "Public", Type: SubnetTypePublic}},
		},
	}
	cfg.ApplyDefaults()

	assert.Equal(t, DefaultStackName, cfg.StackName)
	assert.Equal(t, DefaultNetworkName, cfg.Network.Name)
	assert.Equal(t, DefaultSubnetCIDRMask, cfg.Network.SubnetGroups[0].CIDRMask)
	assert.Len(t, cfg.ValidationNetwork.SubnetGroups, 2)
	assert.Equal(t, DefaultImage, cfg.Task.Image)
	assert.Equal(t, DefaultTTLSeconds, cfg.Service.Discovery.TTLSeconds)
	assert.False(t, cfg.Cluster.DefaultNamespace.Enabled)
}
