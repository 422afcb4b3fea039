package topology

import (
	"errors"
	"fmt"
	"slices"
)

// Kind identifies what a declaration stands for.
type Kind string

// Declaration kinds, listed in the order the pipeline declares them.
const (
	KindNetwork          Kind = "network"
	KindSubnet           Kind = "subnet"
	KindCluster          Kind = "cluster"
	KindDefaultNamespace Kind = "default-namespace"
	KindNamespace        Kind = "namespace"
	KindIdentity         Kind = "identity"
	KindTaskTemplate     Kind = "task-template"
	KindContainer        Kind = "container"
	KindService          Kind = "service"
	KindZoneLookup       Kind = "zone-lookup"
	KindZoneAssociation  Kind = "zone-association"
)

var (
	// ErrDuplicateDeclaration is returned when an ID is declared twice.
	ErrDuplicateDeclaration = errors.New("duplicate declaration")

	// ErrUndeclaredDependency is returned when a declaration references an
	// ID that has not been declared yet.
	ErrUndeclaredDependency = errors.New("dependency not declared")
)

// Declaration is one node of the resource graph.
type Declaration struct {
	ID         string
	Kind       Kind
	DependsOn  []string
	Properties map[string]any
}

// Graph is an append-only DAG of declarations. A declaration may only
// reference declarations added before it, so insertion order is always a
// valid topological order.
type Graph struct {
	decls []*Declaration
	index map[string]*Declaration
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{index: make(map[string]*Declaration)}
}

// Declare appends d to the graph.
func (g *Graph) Declare(d Declaration) error {
	if d.ID == "" {
		return fmt.Errorf("declaration of kind %q has no ID", d.Kind)
	}
	if _, exists := g.index[d.ID]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateDeclaration, d.ID)
	}
	for _, dep := range d.DependsOn {
		if _, ok := g.index[dep]; !ok {
			return fmt.Errorf("%w: %s references %s", ErrUndeclaredDependency, d.ID, dep)
		}
	}

	decl := &Declaration{
		ID:         d.ID,
		Kind:       d.Kind,
		DependsOn:  slices.Clone(d.DependsOn),
		Properties: d.Properties,
	}
	g.decls = append(g.decls, decl)
	g.index[d.ID] = decl
	return nil
}

// Get returns the declaration with id.
func (g *Graph) Get(id string) (*Declaration, bool) {
	d, ok := g.index[id]
	return d, ok
}

// Len returns the number of declarations.
func (g *Graph) Len() int {
	return len(g.decls)
}

// Declarations returns all declarations in declaration order.
func (g *Graph) Declarations() []*Declaration {
	return slices.Clone(g.decls)
}

// OfKind returns the declarations of kind in declaration order.
func (g *Graph) OfKind(kind Kind) []*Declaration {
	var out []*Declaration
	for _, d := range g.decls {
		if d.Kind == kind {
			out = append(out, d)
		}
	}
	return out
}

// Dependents returns the declarations that reference id directly.
func (g *Graph) Dependents(id string) []*Declaration {
	var out []*Declaration
	for _, d := range g.decls {
		if slices.Contains(d.DependsOn, id) {
			out = append(out, d)
		}
	}
	return out
}

// DependsOn reports whether from reaches to through dependency edges.
func (g *Graph) DependsOn(from, to string) bool {
	seen := make(map[string]bool)
	stack := []string{from}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		d, ok := g.index[id]
		if !ok || seen[id] {
			continue
		}
		seen[id] = true
		for _, dep := range d.DependsOn {
			if dep == to {
				return true
			}
			stack = append(stack, dep)
		}
	}
	return false
}
