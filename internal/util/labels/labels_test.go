package labels

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewTagBuilder(t *testing.T) {
	t.Parallel()
	tags := NewTagBuilder("my-stack").Build()

	assert.Equal(t, "my-stack", tags[KeyStack])
	assert.Equal(t, ManagedByEcsdisco, tags[KeyManagedBy])
	assert.Len(t, tags, 2)
}

func TestTagBuilder_Chaining(t *testing.T) {
	t.Parallel()
	tags := NewTagBuilder("s").
		WithComponent("network").
		WithPartition("validation").
		Build()

	assert.Equal(t, "network", tags[KeyComponent])
	assert.Equal(t, "validation", tags[KeyPartition])
}

func TestTagBuilder_MergeKeepsReservedKeys(t *testing.T) {
	t.Parallel()
	tags := NewTagBuilder("s").Merge(map[string]string{
		KeyStack:     "other",
		KeyManagedBy: "someone",
		"team":       "platform",
	}).Build()

	assert.Equal(t, "s", tags[KeyStack])
	assert.Equal(t, ManagedByEcsdisco, tags[KeyManagedBy])
	assert.Equal(t, "platform", tags["team"])
}

func TestTagBuilder_BuildReturnsCopy(t *testing.T) {
	t.Parallel()
	tb := NewTagBuilder("s")
	tags := tb.Build()
	tags["mutated"] = "yes"

	assert.NotContains(t, tb.Build(), "mutated")
}

func TestTagBuilder_Sorted(t *testing.T) {
	t.Parallel()
	sorted := NewTagBuilder("s").Merge(map[string]string{"b": "2", "a": "1"}).Sorted()

	keys := make([]string, 0, len(sorted))
	for _, tag := range sorted {
		keys = append(keys, tag.Key)
	}
	assert.Equal(t, []string{"a", "b", KeyManagedBy, KeyStack}, keys)
}
