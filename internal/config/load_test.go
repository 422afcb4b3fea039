package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromBytes_Empty(t *testing.T) {
	t.Parallel()
	cfg, err := LoadFromBytes([]byte(""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFromBytes_Overrides(t *testing.T) {
	t.Parallel()
	cfg, err := LoadFromBytes([]byte(`
stack_name: Discovery
tags:
  team: platform
network:
  ipv4_cidr: 10.1.0.0/16
  max_azs: 3
cluster:
  default_namespace:
    enabled: false
service:
  desired_count: 4
  discovery:
    ttl_seconds: 60
`))
	require.NoError(t, err)

	assert.Equal(t, "Discovery", cfg.StackName)
	assert.Equal(t, map[string]string{"team": "platform"}, cfg.Tags)
	assert.Equal(t, "10.1.0.0/16", cfg.Network.IPv4CIDR)
	assert.Equal(t, 3, cfg.Network.MaxAZs)
	assert.Equal(t, DefaultNetworkName, cfg.Network.Name)
	assert.Len(t, cfg.Network.SubnetGroups, 2)
	assert.False(t, cfg.Cluster.DefaultNamespace.Enabled)
	assert.True(t, cfg.Cluster.ContainerInsights, "untouched booleans keep their defaults")
	assert.Equal(t, 4, cfg.Service.DesiredCount)
	assert.Equal(t, 60, cfg.Service.Discovery.TTLSeconds)
	assert.Equal(t, "A", cfg.Service.Discovery.RecordType)
}

func TestLoadFromBytes_OmittedBooleansKeepDefaults(t *testing.T) {
	t.Parallel()
	cfg, err := LoadFromBytes([]byte(`
cluster:
  name: Cluster
service:
  desired_count: 3
association:
  name: HostZone
`))
	require.NoError(t, err)

	assert.True(t, cfg.Cluster.ContainerInsights)
	assert.True(t, cfg.Cluster.FargateCapacityProviders)
	assert.True(t, cfg.Cluster.DefaultNamespace.Enabled)
	assert.True(t, cfg.Service.AssignPublicIP)
	assert.True(t, cfg.Association.Enabled)

	explicit, err := LoadFromBytes([]byte("association:\n  enabled: false\n"))
	require.NoError(t, err)
	explicit.ApplyDefaults()
	assert.False(t, explicit.Association.Enabled, "an explicit false survives ApplyDefaults")
}

func TestLoadFromBytes_Invalid(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{"malformed yaml", "stack_name: [", "failed to unmarshal yaml"},
		{"bad cidr", "network:\n  ipv4_cidr: 10.0.0.0/33\n", "invalid network.ipv4_cidr"},
		{"bad record type", "service:\n  discovery:\n    record_type: CNAME\n", "invalid service.discovery.record_type"},
		{"bad memory", "task:\n  memory_limit_mib: 100\n", "invalid task.memory_limit_mib"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := LoadFromBytes([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadFile(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), DefaultConfigFilename)
	require.NoError(t, os.WriteFile(path, []byte("stack_name: FromFile\n"), 0o600))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "FromFile", cfg.StackName)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read config file")
}

func TestWriteYAML_RoundTrip(t *testing.T) {
	t.Parallel()
	cfg := Default()
	cfg.Service.DesiredCount = 3
	cfg.Tags = map[string]string{"env": "test"}

	path := filepath.Join(t.TempDir(), DefaultConfigFilename)
	require.NoError(t, WriteYAML(cfg, path))

	loaded, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
