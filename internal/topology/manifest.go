package topology

import (
	"fmt"

	"sigs.k8s.io/yaml"
)

// ManifestVersion is the schema version written into rendered manifests.
const ManifestVersion = "ecsdisco.io/v1"

// Manifest is the serializable form of a plan's declaration graph.
type Manifest struct {
	APIVersion   string          `json:"apiVersion"`
	Stack        string          `json:"stack"`
	Declarations []ManifestEntry `json:"declarations"`
}

// ManifestEntry is one serialized declaration.
type ManifestEntry struct {
	ID         string         `json:"id"`
	Kind       Kind           `json:"kind"`
	DependsOn  []string       `json:"dependsOn,omitempty"`
	Properties map[string]any `json:"properties,omitempty"`
}

// NewManifest converts the plan's graph into a manifest in declaration order.
func NewManifest(p *Plan) *Manifest {
	m := &Manifest{
		APIVersion: ManifestVersion,
		Stack:      p.StackName,
	}
	for _, d := range p.Graph.Declarations() {
		m.Declarations = append(m.Declarations, ManifestEntry{
			ID:         d.ID,
			Kind:       d.Kind,
			DependsOn:  d.DependsOn,
			Properties: d.Properties,
		})
	}
	return m
}

// Render serializes the plan as YAML. Map keys are sorted by the encoder
// and declarations keep graph order, so equal plans render to equal bytes.
func Render(p *Plan) ([]byte, error) {
	out, err := yaml.Marshal(NewManifest(p))
	if err != nil {
		return nil, fmt.Errorf("failed to render manifest: %w", err)
	}
	return out, nil
}

// ParseManifest reads a rendered manifest back.
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.UnmarshalStrict(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	if m.APIVersion != ManifestVersion {
		return nil, fmt.Errorf("unsupported manifest version %q", m.APIVersion)
	}
	return &m, nil
}
