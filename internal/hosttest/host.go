// Package hosttest is an in-process stand-in for the host server, used by
// module tests. It loads configuration the way the host's parser does and
// serves requests against a recording output sink.
package hosttest

import (
	"bytes"
	"context"
	"log/slog"

	"github.com/pavanmanishd/ngxscope"
	"github.com/pavanmanishd/ngxscope/arena"
	"github.com/pavanmanishd/ngxscope/buf"
	"github.com/pavanmanishd/ngxscope/conf"
	"github.com/pavanmanishd/ngxscope/ngxhttp"
)

// maxCalls bounds handler re-invocation after Again.
const maxCalls = 16

// Header is a recorded SendHeader call.
type Header struct {
	Status        ngxscope.HTTPStatus
	ContentLength int64
}

// Result is what one served request produced.
type Result struct {
	Status  ngxscope.Status
	Calls   int
	Headers []Header
	Body    []byte
	Ended   bool
	Submits int
}

// Host implements ngxhttp.Host and records what handlers send.
type Host struct {
	again         int
	headerStatus  ngxscope.Status
	discardStatus ngxscope.Status
	chunkSize     int
	log           *slog.Logger

	cur *Result
}

// Option configures a Host.
type Option func(*Host)

// WithAgain makes the first n Submit calls of every request return Again.
func WithAgain(n int) Option {
	return func(h *Host) { h.again = n }
}

// WithHeaderStatus sets the status SendHeader returns.
func WithHeaderStatus(st ngxscope.Status) Option {
	return func(h *Host) { h.headerStatus = st }
}

// WithDiscardStatus sets the status DiscardBody returns.
func WithDiscardStatus(st ngxscope.Status) Option {
	return func(h *Host) { h.discardStatus = st }
}

// WithChunkSize sets the chunk size of per-request arenas.
func WithChunkSize(n int) Option {
	return func(h *Host) { h.chunkSize = n }
}

// WithLogger sets the logger handed to arenas and requests.
func WithLogger(l *slog.Logger) Option {
	return func(h *Host) {
		if l != nil {
			h.log = l
		}
	}
}

// New returns a Host that accepts everything unless configured otherwise.
func New(opts ...Option) *Host {
	h := &Host{chunkSize: 4096, log: slog.Default()}
	for _, o := range opts {
		o(h)
	}
	return h
}

// Serve runs one request for location loc through ngxhttp.Dispatch on a
// fresh arena, re-invoking it while it returns Again, and releases the
// arena before returning.
func (h *Host) Serve(cy *conf.Cycle, loc *conf.Block, opts ...ngxhttp.RequestOption) Result {
	var res Result
	h.cur = &res
	defer func() { h.cur = nil }()

	a := arena.New(arena.WithChunkSize(h.chunkSize), arena.WithLogger(h.log))
	defer a.Release()

	opts = append([]ngxhttp.RequestOption{ngxhttp.WithLogger(h.log)}, opts...)
	r := ngxhttp.NewRequest(h, a, cy, loc, opts...)
	for res.Calls < maxCalls {
		res.Calls++
		res.Status = ngxhttp.Dispatch(r)
		if res.Status != ngxscope.Again {
			break
		}
	}
	return res
}

// DiscardBody implements ngxhttp.Host.
func (h *Host) DiscardBody(r *ngxhttp.Request) ngxscope.Status {
	return h.discardStatus
}

// SendHeader implements ngxhttp.Host.
func (h *Host) SendHeader(r *ngxhttp.Request) ngxscope.Status {
	h.cur.Headers = append(h.cur.Headers, Header{Status: r.Status(), ContentLength: r.ContentLength()})
	return h.headerStatus
}

// Submit implements ngxhttp.Host. Accepted bytes are copied out of the
// request arena.
func (h *Host) Submit(r *ngxhttp.Request, head *buf.Link) ngxscope.Status {
	h.cur.Submits++
	if h.cur.Submits <= h.again {
		return ngxscope.Again
	}
	var out bytes.Buffer
	if _, err := buf.WriteTo(&out, head); err != nil {
		return ngxscope.Error
	}
	h.cur.Body = append(h.cur.Body, out.Bytes()...)
	if buf.HasLastOfBody(head) {
		h.cur.Ended = true
	}
	return ngxscope.OK
}

// Directive is one parsed configuration directive.
type Directive struct {
	Block *conf.Block
	Name  string
	Args  []string
}

// Load runs a configuration load over tree with mods registered in order.
// Every directive's tokens are copied into the cycle's parse arena, which
// is reset after each directive, as the host's parser does.
func Load(ctx context.Context, tree *conf.Tree, mods []conf.Module, dirs []Directive, opts ...conf.Option) (*conf.Cycle, error) {
	reg, err := conf.NewRegistry(mods...)
	if err != nil {
		return nil, err
	}
	cy, err := conf.NewCycle(conf.WithRegistry(ctx, reg), tree, opts...)
	if err != nil {
		return nil, err
	}
	if err := cy.Create(); err != nil {
		cy.Release()
		return nil, err
	}
	for _, d := range dirs {
		toks := make([][]byte, len(d.Args))
		for i, s := range d.Args {
			toks[i] = cy.Temp().Copy([]byte(s))
		}
		err := cy.Apply(d.Block, d.Name, toks...)
		cy.Temp().Reset()
		if err != nil {
			cy.Release()
			return nil, err
		}
	}
	if err := cy.Resolve(); err != nil {
		cy.Release()
		return nil, err
	}
	return cy, nil
}
