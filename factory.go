package arbor

import (
	"fmt"
	"sort"
)

// Capability is a bit set of optional behaviours a component type declares
// when it is registered.
type Capability uint8

const (
	// CapRenderer marks types whose instances implement Renderer and may
	// supply the node for their descriptor.
	CapRenderer Capability = 1 << iota
	// CapUpdater marks types whose instances implement Updater.
	CapUpdater
)

// Has reports whether all bits of other are set in c.
func (c Capability) Has(other Capability) bool {
	return c&other == other
}

// TypeInfo describes one registered component type.
type TypeInfo struct {
	Name string
	New  func() Component
	Caps Capability
}

// Factory maps component type names to constructors. It is populated before
// any document is read and is read-only afterwards.
type Factory struct {
	types   map[string]TypeInfo
	aliases map[string]string
}

// NewFactory returns an empty factory.
func NewFactory() *Factory {
	return &Factory{
		types:   make(map[string]TypeInfo),
		aliases: make(map[string]string),
	}
}

// Register adds a component type. A type registered under an existing
// alias replaces that alias. Panics if the name is empty, the constructor is
// nil, or the name is already taken by another type.
func (f *Factory) Register(info TypeInfo) {
	if info.Name == "" || info.New == nil {
		panic("arbor: component type needs a name and a constructor")
	}
	if _, exists := f.types[info.Name]; exists {
		panic(fmt.Sprintf("arbor: component type %q already registered", info.Name))
	}
	delete(f.aliases, info.Name)
	f.types[info.Name] = info
}

// RegisterAlias makes alias resolve to the already registered type target.
// Instances created through an alias keep the alias as their class name.
func (f *Factory) RegisterAlias(alias, target string) {
	if _, ok := f.types[target]; !ok {
		panic(fmt.Sprintf("arbor: alias %q targets unknown type %q", alias, target))
	}
	f.aliases[alias] = target
}

// Lookup returns the type info registered for name (directly or via alias).
func (f *Factory) Lookup(name string) (TypeInfo, bool) {
	if target, ok := f.aliases[name]; ok {
		name = target
	}
	info, ok := f.types[name]
	return info, ok
}

// Create returns a new instance of the named type along with the capability
// set it was registered with. Returns a nil component for unknown names.
func (f *Factory) Create(name string) (Component, Capability) {
	info, ok := f.Lookup(name)
	if !ok {
		return nil, 0
	}
	c := info.New()
	if c == nil {
		return nil, 0
	}
	c.base().className = name
	return c, info.Caps
}

// Names returns the registered type names and aliases in sorted order.
func (f *Factory) Names() []string {
	names := make([]string, 0, len(f.types)+len(f.aliases))
	for name := range f.types {
		names = append(names, name)
	}
	for alias := range f.aliases {
		names = append(names, alias)
	}
	sort.Strings(names)
	return names
}
