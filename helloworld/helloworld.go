// Package helloworld is a handler module that greets the client.
//
//	location /hello {
//	    hello_world;
//	    hello_world_text "gopher";
//	}
//
// hello_world installs the greeting handler for a location; it answers
// "Hello, <text>!" where text comes from hello_world_text (set in the
// location or inherited from its server or main block) or, when unset,
// the client's User-Agent. hello_world_static answers a fixed "Hello, world!" without
// copying. Loading the module also installs an access handler that rejects
// curl clients with 403.
package helloworld

import (
	"strings"

	"github.com/pavanmanishd/ngxscope"
	"github.com/pavanmanishd/ngxscope/buf"
	"github.com/pavanmanishd/ngxscope/conf"
	"github.com/pavanmanishd/ngxscope/ngxhttp"
)

// LocConf is the module's per-location configuration.
type LocConf struct {
	Text conf.Value[string]
}

// Merge implements conf.Config.
func (c *LocConf) Merge(p *LocConf) {
	if p == nil {
		p = &LocConf{}
	}
	c.Text.Merge(&p.Text, "")
}

// Module is the hello-world configuration module. Register it after
// ngxhttp.Core.
var Module *conf.Def[LocConf, *LocConf]

func init() {
	Module = conf.Define[LocConf]("hello_world", []conf.Command[LocConf]{
		{Name: "hello_world", Scopes: conf.LocationConf, Args: conf.NoArgs, Set: setHandler(Handler)},
		{Name: "hello_world_text", Scopes: conf.AnyConf, Args: conf.Take1,
			Set: conf.StrSlot(func(c *LocConf) *conf.Value[string] { return &c.Text })},
		{Name: "hello_world_static", Scopes: conf.LocationConf, Args: conf.NoArgs, Set: setHandler(StaticHandler)},
	}, postConfiguration)
}

func setHandler(h ngxhttp.Handler) conf.SetFunc[LocConf] {
	return func(cy *conf.Cycle, _ *LocConf, _ [][]byte) error {
		return ngxhttp.SetContentHandler(cy, cy.Block(), h)
	}
}

func postConfiguration(cy *conf.Cycle) error {
	ngxhttp.AddAccessHandler(cy, AccessHandler)
	return nil
}

// AccessHandler rejects requests whose User-Agent starts with "curl".
func AccessHandler(r *ngxhttp.Request) ngxscope.Status {
	if strings.HasPrefix(r.UserAgent(), "curl") {
		return ngxscope.HTTPForbidden.Status()
	}
	return ngxscope.OK
}

const (
	greeting = "Hello, "
	bang     = "!\n"
	world    = "Hello, world!\n"
)

// Handler answers "Hello, <name>!\n". It may be re-invoked after returning
// Again and then only resubmits the body.
func Handler(r *ngxhttp.Request) ngxscope.Status {
	r.Logger().Debug("http hello_world handler")

	if st := r.DiscardBody(); st != ngxscope.OK {
		return ngxscope.HTTPInternalServerError.Status()
	}

	name := ngxhttp.LocConf(r, Module).Text.Get()
	if name == "" {
		name = r.UserAgent()
	}

	if !r.HeaderSent() {
		r.SetStatus(ngxscope.HTTPOK)
		r.SetContentLength(int64(len(greeting) + len(name) + len(bang)))
		if st := r.SendHeader(); st.Failed() || r.HeaderOnly() {
			return st
		}
	}

	var c buf.Chain
	c.Append(buf.Static(greeting))
	if name != "" {
		b, err := buf.FromString(r.Arena(), name)
		if err != nil {
			r.Logger().Error("hello_world: body allocation failed", "error", err)
			return ngxscope.HTTPInternalServerError.Status()
		}
		c.Append(b)
	}
	c.Append(buf.Static(bang))
	if err := c.Close(r.IsMain()); err != nil {
		return ngxscope.Error
	}
	return r.Submit(&c)
}

// StaticHandler answers "Hello, world!\n" from static memory.
func StaticHandler(r *ngxhttp.Request) ngxscope.Status {
	if st := r.DiscardBody(); st != ngxscope.OK {
		return ngxscope.HTTPInternalServerError.Status()
	}
	if !r.HeaderSent() {
		r.SetStatus(ngxscope.HTTPOK)
		r.SetContentLength(int64(len(world)))
		if st := r.SendHeader(); st.Failed() || r.HeaderOnly() {
			return st
		}
	}
	var c buf.Chain
	c.Append(buf.Static(world))
	if err := c.Close(r.IsMain()); err != nil {
		return ngxscope.Error
	}
	return r.Submit(&c)
}
