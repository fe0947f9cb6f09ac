package ngxhttp

import (
	"github.com/pavanmanishd/ngxscope"
	"github.com/pavanmanishd/ngxscope/conf"
)

// Handler processes a request and returns its status. OK and Declined
// pass control on; any other status finishes the phase.
type Handler func(r *Request) ngxscope.Status

// CoreConf is the Core module's node. The content handler belongs to the
// location it was set in and is not inherited. Access handlers live in the
// Main node only.
type CoreConf struct {
	content Handler
	access  []Handler
}

// Merge implements conf.Config. Nothing in CoreConf is inherited.
func (c *CoreConf) Merge(p *CoreConf) {}

// Content returns the location's content handler, or nil.
func (c *CoreConf) Content() Handler { return c.content }

// Core is the module that attaches handlers to locations. It must be
// registered before any module whose directives install handlers.
var Core = conf.Define[CoreConf]("http_core", nil, nil)

// SetContentHandler installs h as the content handler of location b. It is
// meant to be called from a directive's SetFunc. A location has at most one
// content handler.
func SetContentHandler(cy *conf.Cycle, b *conf.Block, h Handler) error {
	if h == nil {
		panic("ngxhttp: nil content handler")
	}
	if b.Scope() != conf.Location {
		return conf.ErrNotAllowed
	}
	c := Core.Get(cy, b)
	if c.content != nil {
		return conf.ErrDuplicate
	}
	c.content = h
	return nil
}

// AddAccessHandler appends h to the handlers run before content for every
// request. It is meant to be called from a post-configuration hook.
func AddAccessHandler(cy *conf.Cycle, h Handler) {
	if h == nil {
		panic("ngxhttp: nil access handler")
	}
	c := Core.Get(cy, cy.Tree().Main())
	c.access = append(c.access, h)
}

// LocConf returns module d's resolved node for r's location.
func LocConf[T any, P conf.Config[T]](r *Request, d *conf.Def[T, P]) *T {
	return d.Get(r.cy, r.loc)
}

// MainConf returns module d's resolved Main node.
func MainConf[T any, P conf.Config[T]](r *Request, d *conf.Def[T, P]) *T {
	return d.Get(r.cy, r.cy.Tree().Main())
}
