package topology

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/ecsdisco/internal/config"
)

func TestRender_Deterministic(t *testing.T) {
	t.Parallel()
	first, err := Render(buildDefault(t))
	require.NoError(t, err)
	second, err := Render(buildDefault(t))
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRender_Content(t *testing.T) {
	t.Parallel()
	out, err := Render(buildDefault(t))
	require.NoError(t, err)

	m, err := ParseManifest(out)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultStackName, m.Stack)
	require.Len(t, m.Declarations, 19)

	var service ManifestEntry
	for _, d := range m.Declarations {
		if d.Kind == KindService {
			service = d
		}
	}
	assert.Equal(t, []string{"Cluster", "nginx", "ServiceDiscovery"}, service.DependsOn)
	assert.EqualValues(t, 2, service.Properties["desiredCount"])

	reg, ok := service.Properties["registration"].(map[string]any)
	require.True(t, ok)
	assert.EqualValues(t, 30, reg["ttlSeconds"])
	assert.Equal(t, "nginx.service", reg["fqdn"])
}

func TestParseManifest_RejectsUnknownVersion(t *testing.T) {
	t.Parallel()
	_, err := ParseManifest([]byte("apiVersion: other/v9\nstack: s\ndeclarations: []\n"))
	assert.Error(t, err)
}

func TestDiff(t *testing.T) {
	t.Parallel()
	render := func(cfg *config.Config) *Manifest {
		plan, err := Build(cfg)
		require.NoError(t, err)
		out, err := Render(plan)
		require.NoError(t, err)
		m, err := ParseManifest(out)
		require.NoError(t, err)
		return m
	}

	base := render(config.Default())
	assert.Empty(t, Diff(base, render(config.Default())))

	scaled := config.Default()
	scaled.Service.DesiredCount = 4
	scaled.Association.Enabled = false

	changes := Diff(base, render(scaled))
	assert.Equal(t, []Change{
		{ID: "HostZone", Kind: KindZoneLookup, Type: ChangeRemoved},
		{ID: "HostZoneTestVPCAssociation", Kind: KindZoneAssociation, Type: ChangeRemoved},
		{ID: "FargateService", Kind: KindService, Type: ChangeUpdated},
	}, changes)

	added := Diff(render(scaled), base)
	assert.Contains(t, added, Change{ID: "HostZone", Kind: KindZoneLookup, Type: ChangeAdded})
}
