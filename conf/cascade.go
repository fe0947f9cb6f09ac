package conf

import "fmt"

// Resolve runs the merge cascade for every module, then every module's
// post-configuration hook. Blocks are resolved broad to narrow: Main, then
// each Server against Main, then each Location against its Server.
func (cy *Cycle) Resolve() error {
	switch cy.state {
	case stateNew:
		panic("conf: resolve before create")
	case stateResolved:
		panic("conf: resolve twice")
	}
	for _, m := range cy.reg.mods {
		cy.cascade(m)
	}
	cy.state = stateResolved

	for _, m := range cy.reg.mods {
		if err := m.postConfig(cy); err != nil {
			return fmt.Errorf("%w: %s post-configuration: %w", ErrLoad, m.Name(), err)
		}
	}
	return nil
}

func (cy *Cycle) cascade(m Module) {
	main := cy.tree.main
	m.Merge(cy, Main, cy.Handle(m, main), Handle{})
	for _, srv := range main.children {
		cy.mergeBlock(m, srv)
		for _, loc := range srv.children {
			cy.mergeBlock(m, loc)
		}
	}
}

func (cy *Cycle) mergeBlock(m Module, b *Block) {
	m.Merge(cy, b.scope, cy.Handle(m, b), cy.Handle(m, b.parent))
	cy.log.Debug("conf: merged", "module", m.Name(), "scope", b.scope.String(), "block", b.name)
}

// MergeInto resolves child against parent with P's Merge, outside of a
// Cycle. It is the single-node step of the cascade.
func MergeInto[T any, P Config[T]](child, parent *T) {
	P(child).Merge(parent)
}
