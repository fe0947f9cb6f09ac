// Package conf creates, stores and cascades per-module configuration at
// three nested scopes: Main, Server and Location.
//
// # Model
//
// A module declares one configuration type T whose fields are Value[T] or
// Bytes. Their zero value is unset, which is distinct from any configured
// value. The host builds a Tree of blocks and drives a Cycle:
//
//	ctx := conf.WithRegistry(context.Background(), reg)
//	cy, err := conf.NewCycle(ctx, tree)
//	err = cy.Create()                                     // one node per (module, block)
//	err = cy.Apply(loc, "hello_world_text", []byte("hi")) // per parsed directive
//	err = cy.Resolve()                                    // merge cascade + post hooks
//
// # Cascade
//
// Resolve walks every module Main → Server → Location. Each node's Merge
// copies every still-unset field from its already resolved parent; fields
// set in the node win. Main has no parent and applies defaults. Merge is a
// structural copy: it cannot fail and applying it twice changes nothing.
//
//	func (c *LocConf) Merge(p *LocConf) {
//		if p == nil {
//			p = &LocConf{} // Main: fall through to defaults
//		}
//		c.Text.Merge(&p.Text, "")
//		c.Timeout.Merge(&p.Timeout, 60*time.Second)
//	}
//
// # Memory
//
// Nodes live in the cycle's long-lived arena. Directive arguments arrive as
// tokens in a transient arena the host recycles; setters copy what they keep
// with Cycle.String or Cycle.Bytes. After Resolve the cycle is read-only and
// may be shared by any number of request goroutines.
package conf
