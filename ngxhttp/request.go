package ngxhttp

import (
	"log/slog"

	"github.com/pavanmanishd/ngxscope"
	"github.com/pavanmanishd/ngxscope/arena"
	"github.com/pavanmanishd/ngxscope/buf"
	"github.com/pavanmanishd/ngxscope/conf"
)

// Request is one processing scope as seen by handlers. It is owned by a
// single goroutine and is not safe for concurrent use.
type Request struct {
	host Host
	pool *arena.Arena
	cy   *conf.Cycle
	loc  *conf.Block

	main      bool
	method    string
	userAgent string

	status        ngxscope.HTTPStatus
	contentLength int64
	headerSent    bool
	discarded     bool
	bodyDone      bool

	log *slog.Logger
}

// NewRequest binds a request to host, to the arena a that lives exactly as
// long as the request, and to the location block loc of a resolved cycle.
// The host owns a and tears it down after the request completes.
func NewRequest(host Host, a *arena.Arena, cy *conf.Cycle, loc *conf.Block, opts ...RequestOption) *Request {
	if host == nil || a == nil {
		panic("ngxhttp: nil host or arena")
	}
	if cy == nil || !cy.Resolved() {
		panic("ngxhttp: request on unresolved configuration")
	}
	if loc == nil || loc.Scope() != conf.Location || loc.Tree() != cy.Tree() {
		panic("ngxhttp: request needs a location block of the cycle's tree")
	}
	cfg := requestConfig{method: "GET", logger: slog.Default()}
	for _, o := range opts {
		if o != nil {
			o(&cfg)
		}
	}
	r := &Request{
		host:          host,
		pool:          a,
		cy:            cy,
		loc:           loc,
		main:          !cfg.subrequest,
		method:        cfg.method,
		userAgent:     cfg.userAgent,
		contentLength: -1,
	}
	r.log = cfg.logger.With(
		slog.String("method", r.method),
		slog.String("location", loc.Name()),
		slog.Bool("main", r.main),
	)
	return r
}

// Arena returns the request's arena. Memory from it is valid until the host
// finishes the request.
func (r *Request) Arena() *arena.Arena { return r.pool }

// IsMain reports whether r is the main request rather than a subrequest.
func (r *Request) IsMain() bool { return r.main }

// Method returns the request method.
func (r *Request) Method() string { return r.method }

// UserAgent returns the User-Agent header, or "" if absent.
func (r *Request) UserAgent() string { return r.userAgent }

// Cycle returns the configuration the request runs under.
func (r *Request) Cycle() *conf.Cycle { return r.cy }

// Location returns the matched location block.
func (r *Request) Location() *conf.Block { return r.loc }

// Logger returns a logger carrying the request's attributes.
func (r *Request) Logger() *slog.Logger { return r.log }

// SetStatus sets the response status sent by SendHeader.
func (r *Request) SetStatus(s ngxscope.HTTPStatus) { r.status = s }

// Status returns the response status.
func (r *Request) Status() ngxscope.HTTPStatus { return r.status }

// SetContentLength sets the response body length; -1 means unknown.
func (r *Request) SetContentLength(n int64) { r.contentLength = n }

// ContentLength returns the response body length, -1 if unknown.
func (r *Request) ContentLength() int64 { return r.contentLength }

// HeaderOnly reports whether the response must not carry a body.
func (r *Request) HeaderOnly() bool {
	return r.method == "HEAD" || r.status == ngxscope.HTTPNoContent
}

// HeaderSent reports whether SendHeader was called.
func (r *Request) HeaderSent() bool { return r.headerSent }

// BodyDone reports whether the host accepted the end of the body.
func (r *Request) BodyDone() bool { return r.bodyDone }

// DiscardBody asks the host to read and drop the request body. Once the
// host has returned OK, later calls return OK without asking again.
func (r *Request) DiscardBody() ngxscope.Status {
	if r.discarded {
		return ngxscope.OK
	}
	st := r.host.DiscardBody(r)
	r.discarded = st == ngxscope.OK
	return st
}

// SendHeader sends the response header. Sending it twice is an error. The
// header counts as sent only if the host did not fail it; Again counts as
// sent since the host holds the header.
func (r *Request) SendHeader() ngxscope.Status {
	if r.headerSent {
		r.log.Error("ngxhttp: header already sent", "status", int(r.status))
		return ngxscope.Error
	}
	if r.status == 0 {
		r.status = ngxscope.HTTPOK
	}
	st := r.host.SendHeader(r)
	r.headerSent = !st.Failed()
	return st
}

// Submit hands a closed chain to the host.
//
// It returns ngxscope.Error without calling the host if the chain is
// malformed, if the header was not sent, or if the body already ended.
// ngxscope.Again is returned unchanged: the chain was not taken and the
// caller is expected to return Again and be re-invoked.
func (r *Request) Submit(c *buf.Chain) ngxscope.Status {
	if c == nil {
		r.log.Error("ngxhttp: submit of nil chain")
		return ngxscope.Error
	}
	head := c.Head()
	if err := buf.Validate(head); err != nil {
		r.log.Error("ngxhttp: invalid chain", "error", err)
		return ngxscope.Error
	}
	if !r.headerSent {
		r.log.Error("ngxhttp: body submitted before header")
		return ngxscope.Error
	}
	if r.bodyDone {
		r.log.Error("ngxhttp: body submitted after it ended")
		return ngxscope.Error
	}
	last := buf.HasLastOfBody(head)
	if last && !r.main {
		r.log.Error("ngxhttp: subrequest ended the response body")
		return ngxscope.Error
	}

	st := r.host.Submit(r, head)
	if st == ngxscope.OK && last {
		r.bodyDone = true
	}
	if st == ngxscope.Again {
		r.log.Debug("ngxhttp: host busy", "bytes", buf.Size(head))
	}
	return st
}
