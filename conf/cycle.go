package conf

import (
	"context"
	"fmt"
	"log/slog"
	"unsafe"

	"github.com/pavanmanishd/ngxscope/arena"
)

type cycleState uint8

const (
	stateNew cycleState = iota
	stateCreated
	stateResolved
)

// Cycle is one configuration load. The host drives it in order:
// Create (or Open per block), Apply for every parsed directive, Resolve.
// A Cycle is used by a single goroutine during load and is read-only after
// Resolve returns.
type Cycle struct {
	ctx   context.Context
	reg   *Registry
	tree  *Tree
	pool  *arena.Arena
	temp  *arena.Arena
	nodes map[Handle]any
	open  map[ID]bool
	cur   *Block
	state cycleState
	log   *slog.Logger
}

type options struct {
	pool   *arena.Arena
	temp   *arena.Arena
	logger *slog.Logger
}

// Option configures NewCycle.
type Option func(*options)

// WithPool sets the long-lived arena that holds nodes and retained
// directive values. By default NewCycle creates one.
func WithPool(a *arena.Arena) Option {
	return func(o *options) { o.pool = a }
}

// WithTemp sets the transient arena the host parses tokens into.
// By default NewCycle creates one.
func WithTemp(a *arena.Arena) Option {
	return func(o *options) { o.temp = a }
}

// WithLogger sets the cycle logger. Default: slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// NewCycle prepares a load of tree using the Registry carried by ctx.
func NewCycle(ctx context.Context, tree *Tree, opts ...Option) (*Cycle, error) {
	reg, ok := RegistryFrom(ctx)
	if !ok {
		return nil, ErrNoRegistry
	}
	if tree == nil {
		panic("conf: nil tree")
	}
	o := options{logger: slog.Default()}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if o.pool == nil {
		o.pool = arena.New(arena.WithLogger(o.logger))
	}
	if o.temp == nil {
		o.temp = arena.New(arena.WithChunkSize(4096), arena.WithLogger(o.logger))
	}
	return &Cycle{
		ctx:   ctx,
		reg:   reg,
		tree:  tree,
		pool:  o.pool,
		temp:  o.temp,
		nodes: make(map[Handle]any),
		open:  make(map[ID]bool),
		log:   o.logger,
	}, nil
}

// Context returns the context the cycle was created with.
func (cy *Cycle) Context() context.Context { return cy.ctx }

// Registry returns the modules being loaded.
func (cy *Cycle) Registry() *Registry { return cy.reg }

// Tree returns the scope tree being loaded.
func (cy *Cycle) Tree() *Tree { return cy.tree }

// Pool returns the long-lived arena.
func (cy *Cycle) Pool() *arena.Arena { return cy.pool }

// Temp returns the transient parse arena. The host recycles it between
// directives.
func (cy *Cycle) Temp() *arena.Arena { return cy.temp }

// Logger returns the cycle logger.
func (cy *Cycle) Logger() *slog.Logger { return cy.log }

// Resolved reports whether Resolve completed.
func (cy *Cycle) Resolved() bool { return cy.state == stateResolved }

// Create opens every block of the tree, parents first. Any failure aborts
// the load.
func (cy *Cycle) Create() error {
	var err error
	cy.tree.Walk(func(b *Block) {
		if err == nil {
			err = cy.Open(b)
		}
	})
	return err
}

// Open creates every module's node for b. A block's parent must be opened
// first, and a block is opened once.
func (cy *Cycle) Open(b *Block) error {
	if cy.state == stateResolved {
		panic("conf: open after resolve")
	}
	if b.tree != cy.tree {
		panic("conf: block from another tree")
	}
	if cy.open[b.id] {
		panic(fmt.Sprintf("conf: %s %q opened twice", b.scope, b.name))
	}
	if b.parent != nil && !cy.open[b.parent.id] {
		panic(fmt.Sprintf("conf: %s %q opened before its parent", b.scope, b.name))
	}
	for _, m := range cy.reg.mods {
		if _, err := m.Create(cy, b); err != nil {
			cy.log.Error("conf: create failed", "module", m.Name(), "scope", b.scope.String(), "block", b.name, "error", err)
			return err
		}
	}
	cy.open[b.id] = true
	cy.state = stateCreated
	return nil
}

// Apply runs directive name with args against block b.
func (cy *Cycle) Apply(b *Block, name string, args ...[]byte) error {
	if cy.state != stateCreated {
		panic("conf: apply outside of load")
	}
	m, ok := cy.reg.directives[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownDirective, name)
	}
	cy.cur = b
	defer func() { cy.cur = nil }()
	if err := m.apply(cy, b, name, args); err != nil {
		return fmt.Errorf("conf: %s %s: %w", b.scope, b.name, err)
	}
	return nil
}

// Block returns the block whose directive is being applied, or nil outside
// of Apply.
func (cy *Cycle) Block() *Block { return cy.cur }

// String copies tok into the long-lived arena.
func (cy *Cycle) String(tok []byte) (string, error) {
	b, err := cy.Bytes(tok)
	if err != nil || len(b) == 0 {
		return "", err
	}
	return unsafe.String(unsafe.SliceData(b), len(b)), nil
}

// Bytes copies tok into the long-lived arena.
func (cy *Cycle) Bytes(tok []byte) ([]byte, error) {
	b := cy.pool.Copy(tok)
	if b == nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, arena.ErrExhausted)
	}
	return b, nil
}

// Handle returns m's handle for b.
func (cy *Cycle) Handle(m Module, b *Block) Handle {
	return Handle{Module: m.Name(), Instance: b.id}
}

// Release tears down both arenas. Nodes must not be used afterwards.
func (cy *Cycle) Release() {
	cy.temp.Release()
	cy.pool.Release()
}
