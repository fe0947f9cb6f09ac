package buf

import "io"

// Link is one element of a response body chain.
type Link struct {
	Buf  *Buffer
	Next *Link

	lastOfBody  bool
	lastInChain bool
}

// SetLastOfBody marks the link as the end of the (sub)request's content.
func (l *Link) SetLastOfBody(v bool) { l.lastOfBody = v }

// LastOfBody reports whether the link ends the response content.
func (l *Link) LastOfBody() bool { return l.lastOfBody }

// SetLastInChain marks the link as the final link of its chain.
func (l *Link) SetLastInChain(v bool) { l.lastInChain = v }

// LastInChain reports whether the link is the final link of its chain.
func (l *Link) LastInChain() bool { return l.lastInChain }

// Chain assembles links in emission order. The zero value is an empty,
// open chain.
type Chain struct {
	head   *Link
	tail   *Link
	n      int
	closed bool
}

// Append links b after the current tail and returns its link.
// Empty buffers other than the sentinel are rejected with ErrEmpty, and
// nothing may follow the sentinel.
func (c *Chain) Append(b *Buffer) (*Link, error) {
	if b == nil {
		panic("buf: nil buffer")
	}
	if c.closed {
		return nil, ErrClosed
	}
	if c.tail != nil && c.tail.Buf.IsSentinel() {
		return nil, ErrMisplacedSentinel
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	l := &Link{Buf: b}
	if c.tail == nil {
		c.head = l
	} else {
		c.tail.Next = l
	}
	c.tail = l
	c.n++
	return l, nil
}

// Close marks the tail link last-in-chain and, if lastOfBody, last-of-body.
// Closing an empty chain with lastOfBody appends the end-of-body sentinel;
// closing it without is ErrEmptyChain. A chain ending in the sentinel must
// be closed with lastOfBody. No links may be appended afterwards.
func (c *Chain) Close(lastOfBody bool) error {
	if c.closed {
		return ErrClosed
	}
	if c.tail == nil {
		if !lastOfBody {
			return ErrEmptyChain
		}
		c.Append(EndOfBody())
	}
	if c.tail.Buf.IsSentinel() && !lastOfBody {
		return ErrMisplacedSentinel
	}
	c.tail.SetLastInChain(true)
	c.tail.SetLastOfBody(lastOfBody)
	c.closed = true
	return nil
}

// Closed reports whether Close succeeded.
func (c *Chain) Closed() bool { return c.closed }

// Head returns the first link, or nil for an empty chain.
func (c *Chain) Head() *Link { return c.head }

// Count returns the number of links.
func (c *Chain) Count() int { return c.n }

// Len returns the total number of data bytes in the chain.
func (c *Chain) Len() int64 { return Size(c.head) }

// Bytes returns the concatenated contents of every buffer in the chain.
func (c *Chain) Bytes() []byte {
	out := make([]byte, 0, c.Len())
	for l := c.head; l != nil; l = l.Next {
		out = append(out, l.Buf.Bytes()...)
	}
	return out
}

// WriteTo writes every buffer in order to w.
func (c *Chain) WriteTo(w io.Writer) (int64, error) {
	return WriteTo(w, c.head)
}

// Size returns the total number of data bytes from head to the end.
func Size(head *Link) int64 {
	var n int64
	for l := head; l != nil; l = l.Next {
		n += int64(l.Buf.Len())
	}
	return n
}

// WriteTo writes the buffers from head to the end to w.
func WriteTo(w io.Writer, head *Link) (int64, error) {
	var total int64
	for l := head; l != nil; l = l.Next {
		n, err := w.Write(l.Buf.Bytes())
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// Validate checks a fully built chain: every buffer non-empty unless it is
// the sentinel, the sentinel only on the final last-of-body link, exactly one
// last-in-chain link and it is the final one, and at most one last-of-body
// link.
func Validate(head *Link) error {
	if head == nil {
		return ErrEmptyChain
	}
	lastOfBody := 0
	for l := head; l != nil; l = l.Next {
		if err := l.Buf.Validate(); err != nil {
			return err
		}
		if l.Buf.IsSentinel() && (l.Next != nil || !l.lastOfBody) {
			return ErrMisplacedSentinel
		}
		if l.lastOfBody {
			lastOfBody++
		}
		if l.lastInChain && l.Next != nil {
			return ErrMisplacedLast
		}
		if l.Next == nil && !l.lastInChain {
			return ErrUnterminated
		}
	}
	if lastOfBody > 1 {
		return ErrDuplicateLastOfBody
	}
	return nil
}

// HasLastOfBody reports whether any link from head on ends the body.
func HasLastOfBody(head *Link) bool {
	for l := head; l != nil; l = l.Next {
		if l.lastOfBody {
			return true
		}
	}
	return false
}
