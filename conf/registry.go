package conf

import (
	"context"
	"fmt"
)

// Registry is the set of configuration modules, built once at process
// start and passed to loads through a context.
type Registry struct {
	mods       []Module
	byName     map[string]Module
	directives map[string]Module
}

// NewRegistry returns a registry holding mods, in order.
func NewRegistry(mods ...Module) (*Registry, error) {
	r := &Registry{
		byName:     make(map[string]Module),
		directives: make(map[string]Module),
	}
	for _, m := range mods {
		if err := r.Register(m); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register appends m. Module names and directive names must be unique.
func (r *Registry) Register(m Module) error {
	if m == nil {
		panic("conf: nil module")
	}
	name := m.Name()
	if _, ok := r.byName[name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateModule, name)
	}
	for _, d := range m.directives() {
		if prev, ok := r.directives[d]; ok {
			return fmt.Errorf("%w: directive %q declared by %q and %q", ErrDuplicateModule, d, prev.Name(), name)
		}
	}
	for _, d := range m.directives() {
		r.directives[d] = m
	}
	r.byName[name] = m
	r.mods = append(r.mods, m)
	return nil
}

// Modules returns the registered modules in registration order.
func (r *Registry) Modules() []Module {
	return r.mods
}

// Module returns the module named name.
func (r *Registry) Module(name string) (Module, bool) {
	m, ok := r.byName[name]
	return m, ok
}

type registryKey struct{}

// WithRegistry returns a copy of ctx carrying r.
func WithRegistry(ctx context.Context, r *Registry) context.Context {
	return context.WithValue(ctx, registryKey{}, r)
}

// RegistryFrom returns the registry carried by ctx.
func RegistryFrom(ctx context.Context) (*Registry, bool) {
	r, ok := ctx.Value(registryKey{}).(*Registry)
	return r, ok && r != nil
}
