package labels

import "sort"

// Standard tag keys applied to every taggable stack resource.
const (
	// KeyStack identifies which stack a resource belongs to
	KeyStack = "ecsdisco.io/stack"

	// KeyComponent identifies the declaration a resource was rendered from
	KeyComponent = "ecsdisco.io/component"

	// KeyPartition identifies the network partition role (operational, validation)
	KeyPartition = "ecsdisco.io/partition"

	// KeyManagedBy identifies the management system
	KeyManagedBy = "ecsdisco.io/managed-by"
)

// ManagedByEcsdisco is the KeyManagedBy value of resources declared by this tool.
const ManagedByEcsdisco = "ecsdisco"

// TagBuilder provides a fluent interface for building resource tags.
type TagBuilder struct {
	tags map[string]string
}

// NewTagBuilder creates a new tag builder with the stack name pre-set.
func NewTagBuilder(stackName string) *TagBuilder {
	return &TagBuilder{
		tags: map[string]string{
			KeyStack:     stackName,
			KeyManagedBy: ManagedByEcsdisco,
		},
	}
}

// WithComponent adds a component tag (e.g. "network", "service").
func (tb *TagBuilder) WithComponent(component string) *TagBuilder {
	tb.tags[KeyComponent] = component
	return tb
}

// WithPartition adds a partition role tag.
func (tb *TagBuilder) WithPartition(role string) *TagBuilder {
	tb.tags[KeyPartition] = role
	return tb
}

// Merge adds all tags from the provided map. User tags never override the
// stack and managed-by keys.
func (tb *TagBuilder) Merge(extra map[string]string) *TagBuilder {
	for k, v := range extra {
		if k == KeyStack || k == KeyManagedBy {
			continue
		}
		tb.tags[k] = v
	}
	return tb
}

// Build returns a copy of the tags map.
func (tb *TagBuilder) Build() map[string]string {
	result := make(map[string]string, len(tb.tags))
	for k, v := range tb.tags {
		result[k] = v
	}
	return result
}

// Tag is one key/value pair.
type Tag struct {
	Key   string
	Value string
}

// Sorted returns the tags ordered by key, so they can be applied in a
// deterministic order.
func (tb *TagBuilder) Sorted() []Tag {
	out := make([]Tag, 0, len(tb.tags))
	for k, v := range tb.tags {
		out = append(out, Tag{Key: k, Value: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}
