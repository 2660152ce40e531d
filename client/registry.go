package wl

import (
	"sync"

	"deedles.dev/wayland/wire"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Global is an object announced by the server's registry.
type Global struct {
	Name      uint32
	Interface string
	Version   uint32
}

// Globals tracks the globals announced by a registry. It is the
// Listener of the Registry returned by State.Registry.
type Globals struct {
	// OnGlobal and OnGlobalRemove, if not nil, are called after the
	// tracked set has been updated.
	OnGlobal       func(Global)
	OnGlobalRemove func(Global)

	m       sync.Mutex
	globals map[uint32]Global
}

func (g *Globals) Global(name uint32, inter string, version uint32) {
	global := Global{Name: name, Interface: inter, Version: version}

	g.m.Lock()
	if g.globals == nil {
		g.globals = make(map[uint32]Global)
	}
	g.globals[name] = global
	g.m.Unlock()

	if g.OnGlobal != nil {
		g.OnGlobal(global)
	}
}

func (g *Globals) GlobalRemove(name uint32) {
	g.m.Lock()
	global, ok := g.globals[name]
	delete(g.globals, name)
	g.m.Unlock()

	if ok && (g.OnGlobalRemove != nil) {
		g.OnGlobalRemove(global)
	}
}

// Map returns a copy of the currently announced globals keyed by name.
func (g *Globals) Map() map[uint32]Global {
	g.m.Lock()
	defer g.m.Unlock()

	return maps.Clone(g.globals)
}

// List returns the currently announced globals ordered by name.
func (g *Globals) List() []Global {
	g.m.Lock()
	defer g.m.Unlock()

	names := maps.Keys(g.globals)
	slices.Sort(names)

	list := make([]Global, 0, len(names))
	for _, name := range names {
		list = append(list, g.globals[name])
	}
	return list
}

// Find returns the first global, by name, that implements the given
// interface.
func (g *Globals) Find(inter string) (Global, bool) {
	for _, global := range g.List() {
		if global.Interface == inter {
			return global, true
		}
	}
	return Global{}, false
}

// Bind binds the global to obj, which must have been created for the
// global's interface, at the lower of the global's version and
// version. It returns the version that was bound.
func (state *State) Bind(global Global, obj wire.Object, version uint32) uint32 {
	version = min(version, global.Version)
	state.Add(obj)
	state.Registry().Bind(global.Name, wire.NewID{
		Interface: global.Interface,
		Version:   version,
		ID:        obj.ID(),
	})
	return version
}
