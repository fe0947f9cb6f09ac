// Package buf builds response bodies as chains of byte buffers.
//
// A Buffer is a view [pos, last) over a backing range [start, end) and is
// one of two kinds:
//
//   - Temporary: arena memory the handler wrote itself; mutable, and
//     reclaimed with the arena
//   - Memory: bytes owned by someone else, typically a process-lifetime
//     literal; wrapped without copying and never written through
//
// Buffers are linked into a Chain in emission order. Role flags live on the
// Link, not the Buffer: exactly one link, the final one, is last-in-chain,
// and at most one link in a request's output is last-of-body.
//
//	c := new(buf.Chain)
//	c.Append(buf.Static("Hello, "))
//	name, err := buf.FromBytes(r.Arena(), userAgent)
//	if err != nil {
//		return ngxscope.Error
//	}
//	c.Append(name)
//	c.Close(r.IsMain())
//	return r.Submit(c)
//
// Only the designated end-of-body sentinel may be empty. Any other empty
// buffer is rejected by Append and Validate.
package buf
