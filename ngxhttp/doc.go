// Package ngxhttp is the boundary between handler modules and the host
// server that owns connections.
//
// A host creates one Request per processing scope, bound to a per-request
// arena and to the resolved configuration of the location that matched.
// Handlers build their body as a buf.Chain from that arena and hand it to
// the host with Submit:
//
//	func handle(r *ngxhttp.Request) ngxscope.Status {
//		r.SetStatus(ngxscope.HTTPOK)
//		r.SetContentLength(int64(len(body)))
//		if st := r.SendHeader(); st.Failed() || r.HeaderOnly() {
//			return st
//		}
//		var c buf.Chain
//		c.Append(buf.Static(body))
//		c.Close(r.IsMain())
//		return r.Submit(&c)
//	}
//
// Submit returns ngxscope.Again when the host cannot accept the chain now.
// The handler returns it unchanged; the host re-invokes the handler later.
// Nothing in this package waits or retries.
//
// Handlers are attached through the Core configuration module: a content
// handler per location (SetContentHandler, from a directive) and access
// handlers for every request (AddAccessHandler, from a post-configuration
// hook). Dispatch runs them in that order.
package ngxhttp
