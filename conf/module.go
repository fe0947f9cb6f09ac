package conf

import (
	"fmt"

	"github.com/pavanmanishd/ngxscope/arena"
)

// Config is the capability a module's configuration type provides: a zero
// value in which every field is unset, and Merge, which resolves every
// unset field from parent. parent is nil for the Main scope, where Merge
// must apply built-in defaults.
type Config[T any] interface {
	*T
	Merge(parent *T)
}

// Handle is the opaque reference to one module's node in one block. The
// host passes it back into Merge; Def resolves it to the typed node.
type Handle struct {
	Module   string
	Instance ID
}

// IsZero reports whether h refers to no node.
func (h Handle) IsZero() bool {
	return h == Handle{}
}

// Module is a configuration module as seen by the Registry and Cycle.
// Modules are created with Define.
type Module interface {
	Name() string
	// Create allocates the module's node for b with every field unset.
	Create(cy *Cycle, b *Block) (Handle, error)
	// Merge resolves child against parent, which must already be resolved.
	// parent is the zero Handle for the Main scope. Merge cannot fail.
	Merge(cy *Cycle, s Scope, child, parent Handle)

	directives() []string
	apply(cy *Cycle, b *Block, name string, args [][]byte) error
	postConfig(cy *Cycle) error
}

type node[T any] struct {
	h        arena.Handle[T]
	scope    Scope
	resolved bool
}

// Def is a module whose configuration type is T. A Def is immutable after
// Define and holds no per-load state; nodes live in the Cycle.
type Def[T any, P Config[T]] struct {
	name string
	cmds []Command[T]
	post func(cy *Cycle) error
}

// Define declares a module. post, if non-nil, runs once after the cascade
// resolved every block (the post-configuration hook).
func Define[T any, P Config[T]](name string, cmds []Command[T], post func(cy *Cycle) error) *Def[T, P] {
	if name == "" {
		panic("conf: empty module name")
	}
	return &Def[T, P]{name: name, cmds: cmds, post: post}
}

// Name returns the module name.
func (d *Def[T, P]) Name() string {
	return d.name
}

// Create implements Module.
func (d *Def[T, P]) Create(cy *Cycle, b *Block) (Handle, error) {
	var zero T
	h, err := arena.Alloc(cy.Pool(), zero)
	if err != nil {
		return Handle{}, fmt.Errorf("%w: %s %s conf: %w", ErrLoad, d.name, b.scope, err)
	}
	key := Handle{Module: d.name, Instance: b.id}
	cy.nodes[key] = &node[T]{h: h, scope: b.scope}
	return key, nil
}

// Merge implements Module.
func (d *Def[T, P]) Merge(cy *Cycle, s Scope, child, parent Handle) {
	c := d.node(cy, child)
	if c.scope != s {
		panic(fmt.Sprintf("conf: %s: merging %s node as %s", d.name, c.scope, s))
	}
	var prev *T
	if !parent.IsZero() {
		p := d.node(cy, parent)
		if !p.resolved {
			panic(fmt.Sprintf("conf: %s: %s merged before its parent was resolved", d.name, s))
		}
		if p.scope >= c.scope {
			panic(fmt.Sprintf("conf: %s: parent scope %s is not broader than %s", d.name, p.scope, c.scope))
		}
		prev = p.h.Get()
	} else if s != Main {
		panic(fmt.Sprintf("conf: %s: %s node has no parent", d.name, s))
	}
	P(c.h.Get()).Merge(prev)
	c.resolved = true
}

// Get returns the module's node for b in cy. Before Resolve, fields hold
// only what directives set.
func (d *Def[T, P]) Get(cy *Cycle, b *Block) *T {
	return d.node(cy, Handle{Module: d.name, Instance: b.id}).h.Get()
}

// Lookup resolves an opaque handle to the typed node.
func (d *Def[T, P]) Lookup(cy *Cycle, h Handle) *T {
	return d.node(cy, h).h.Get()
}

// Resolved reports whether b's node has been merged.
func (d *Def[T, P]) Resolved(cy *Cycle, b *Block) bool {
	n, ok := cy.nodes[Handle{Module: d.name, Instance: b.id}]
	if !ok {
		return false
	}
	return n.(*node[T]).resolved
}

func (d *Def[T, P]) node(cy *Cycle, h Handle) *node[T] {
	if h.Module != d.name {
		panic(fmt.Sprintf("conf: handle for module %q passed to %q", h.Module, d.name))
	}
	n, ok := cy.nodes[h]
	if !ok {
		panic(fmt.Sprintf("conf: %s: no node for block %d", d.name, h.Instance))
	}
	tn, ok := n.(*node[T])
	if !ok {
		panic(fmt.Sprintf("conf: %s: node for block %d has a different type", d.name, h.Instance))
	}
	return tn
}

func (d *Def[T, P]) directives() []string {
	names := make([]string, len(d.cmds))
	for i, c := range d.cmds {
		names[i] = c.Name
	}
	return names
}

func (d *Def[T, P]) apply(cy *Cycle, b *Block, name string, args [][]byte) error {
	for i := range d.cmds {
		c := &d.cmds[i]
		if c.Name != name {
			continue
		}
		if !c.Scopes.Has(b.scope) {
			return fmt.Errorf("%w: %q in %s", ErrNotAllowed, name, b.scope)
		}
		if !c.Args.accepts(len(args)) {
			return fmt.Errorf("%w: %q got %d", ErrArgs, name, len(args))
		}
		if err := c.Set(cy, d.Get(cy, b), args); err != nil {
			return fmt.Errorf("%q directive: %w", name, err)
		}
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnknownDirective, name)
}

func (d *Def[T, P]) postConfig(cy *Cycle) error {
	if d.post == nil {
		return nil
	}
	return d.post(cy)
}
