package ngxhttp

import (
	"github.com/pavanmanishd/ngxscope"
	"github.com/pavanmanishd/ngxscope/buf"
)

// Host is the server a Request belongs to. Its methods are called from the
// goroutine that owns the request and must not block; a host that cannot
// make progress returns ngxscope.Again.
type Host interface {
	// DiscardBody arranges for the client request body to be read and
	// dropped.
	DiscardBody(r *Request) ngxscope.Status
	// SendHeader emits the response header from r's status and content
	// length.
	SendHeader(r *Request) ngxscope.Status
	// Submit takes a validated chain for transmission. Buffers stay owned by
	// r's arena; the host must be done with them before the arena is torn
	// down.
	Submit(r *Request, head *buf.Link) ngxscope.Status
}
