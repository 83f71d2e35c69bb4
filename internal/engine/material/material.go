// Package material is a small registry of named surface materials and the
// texture names they are mapped to.
package material

import (
	"errors"
	"fmt"
	"sort"
)

// ErrExists is returned when registering a name already in use.
var ErrExists = errors.New("material already registered")

// Material describes how a surface is shaded.
type Material struct {
	Name string
	// MapTo is the texture name this material replaces on meshes.
	MapTo       string
	DiffuseMap  string
	Emissive    bool
	CastShadows bool
}

// Registry stores materials by name and by mapped texture name.
type Registry struct {
	byName map[string]*Material
	mapTo  map[string]string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byName: make(map[string]*Material),
		mapTo:  make(map[string]string),
	}
}

// Register adds m under m.Name. A non-empty MapTo also records the texture
// mapping.
func (r *Registry) Register(m *Material) error {
	if m.Name == "" {
		return fmt.Errorf("registering material: empty name")
	}
	if _, ok := r.byName[m.Name]; ok {
		return fmt.Errorf("registering %s: %w", m.Name, ErrExists)
	}
	r.byName[m.Name] = m
	if m.MapTo != "" {
		r.mapTo[m.MapTo] = m.Name
	}
	return nil
}

// MapEntry returns the name of the material mapped to a texture name, or ""
// when none is.
func (r *Registry) MapEntry(texture string) string {
	return r.mapTo[texture]
}

// Lookup returns a material by name.
func (r *Registry) Lookup(name string) (*Material, bool) {
	m, ok := r.byName[name]
	return m, ok
}

// Remove deletes a material and its texture mapping.
func (r *Registry) Remove(name string) {
	m, ok := r.byName[name]
	if !ok {
		return
	}
	delete(r.byName, name)
	if m.MapTo != "" && r.mapTo[m.MapTo] == name {
		delete(r.mapTo, m.MapTo)
	}
}

// Names returns registered material names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.byName))
	for n := range r.byName {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
