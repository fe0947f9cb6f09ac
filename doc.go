// Package ngxscope is the memory and configuration core for handler modules
// that run inside an external host server.
//
// # Overview
//
// The host owns the event loop, connections and configuration parsing. This
// module gives handler code three things on top of that:
//
//   - [github.com/pavanmanishd/ngxscope/arena]: memory whose lifetime is one
//     processing scope, with cleanups that run exactly once at teardown
//   - [github.com/pavanmanishd/ngxscope/buf]: response bodies built as chains
//     of buffers, copying only what the handler produced itself
//   - [github.com/pavanmanishd/ngxscope/conf]: per-module configuration at
//     Main, Server and Location scope, cascaded from broad to narrow
//
// [github.com/pavanmanishd/ngxscope/ngxhttp] is the request facade that ties
// them together, and [github.com/pavanmanishd/ngxscope/helloworld] is a
// complete module built on it.
//
// # Status
//
// Every operation that talks to the host reports a [Status]. Call sites
// branch on ordering, not only equality:
//
//	st := r.SendHeader()
//	if st.Failed() || r.HeaderOnly() {
//		return st
//	}
//
// [Again] is a signal, not a wait: the handler returns it unchanged and the
// host re-invokes the handler when it can make progress.
package ngxscope
