package buf

import (
	"io"
	"unsafe"

	"github.com/pavanmanishd/ngxscope/arena"
)

// Kind classifies who owns a buffer's bytes.
type Kind uint8

const (
	// Temporary buffers hold arena memory and may be written.
	Temporary Kind = iota
	// Memory buffers reference externally owned, immutable bytes.
	Memory
)

func (k Kind) String() string {
	switch k {
	case Temporary:
		return "temporary"
	case Memory:
		return "memory"
	default:
		return "unknown"
	}
}

// Buffer is a view [pos, last) over the backing range [start, end).
// start is index 0 of mem and end is len(mem).
type Buffer struct {
	kind     Kind
	mem      []byte
	pos      int
	last     int
	sentinel bool

	a   *arena.Arena
	gen uint64
}

// NewTemporary allocates size bytes from a. The buffer starts empty
// (pos == last == start); write into it with Write or Writable and Advance.
// It returns arena.ErrExhausted if a has no room.
func NewTemporary(a *arena.Arena, size int) (*Buffer, error) {
	if a == nil {
		panic("buf: nil arena")
	}
	mem := a.Alloc(size)
	if mem == nil {
		return nil, arena.ErrExhausted
	}
	return &Buffer{kind: Temporary, mem: mem, a: a, gen: a.Generation()}, nil
}

// FromBytes copies p into a new temporary buffer; Bytes returns exactly p.
func FromBytes(a *arena.Arena, p []byte) (*Buffer, error) {
	b, err := NewTemporary(a, len(p))
	if err != nil {
		return nil, err
	}
	b.last = copy(b.mem, p)
	return b, nil
}

// FromString is FromBytes for a string.
func FromString(a *arena.Arena, s string) (*Buffer, error) {
	return FromBytes(a, unsafe.Slice(unsafe.StringData(s), len(s)))
}

// FromStatic wraps p without copying. The caller guarantees p outlives
// every consumer of the buffer and is never modified.
func FromStatic(p []byte) *Buffer {
	return &Buffer{kind: Memory, mem: p[:len(p):len(p)], last: len(p)}
}

// Static wraps a string without copying. String data is immutable, which
// makes it the natural source of Memory buffers.
func Static(s string) *Buffer {
	return FromStatic(unsafe.Slice(unsafe.StringData(s), len(s)))
}

// EndOfBody returns the empty sentinel that terminates a body when the last
// data buffer was already sent.
func EndOfBody() *Buffer {
	return &Buffer{kind: Memory, sentinel: true}
}

// Kind returns the ownership kind of b.
func (b *Buffer) Kind() Kind {
	return b.kind
}

// IsSentinel reports whether b is the end-of-body sentinel.
func (b *Buffer) IsSentinel() bool {
	return b.sentinel
}

// Len returns last - pos.
func (b *Buffer) Len() int {
	b.checkLive()
	return b.last - b.pos
}

// Cap returns end - start.
func (b *Buffer) Cap() int {
	return len(b.mem)
}

// Free returns the number of writable bytes after last.
func (b *Buffer) Free() int {
	b.checkLive()
	return len(b.mem) - b.last
}

// Bytes returns the valid data [pos, last). The slice must not be retained
// past the processing scope and must not be modified for Memory buffers.
func (b *Buffer) Bytes() []byte {
	b.checkLive()
	return b.mem[b.pos:b.last:b.last]
}

// Writable returns the unused range [last, end) of a temporary buffer.
// Call Advance after writing into it.
func (b *Buffer) Writable() []byte {
	b.checkWritable()
	return b.mem[b.last:]
}

// Advance marks n more bytes after last as valid data.
func (b *Buffer) Advance(n int) {
	b.checkWritable()
	if n < 0 || b.last+n > len(b.mem) {
		panic("buf: advance past end")
	}
	b.last += n
}

// Write appends p to the valid data. It returns io.ErrShortWrite if the
// buffer cannot hold all of p.
func (b *Buffer) Write(p []byte) (int, error) {
	n := copy(b.Writable(), p)
	b.last += n
	if n < len(p) {
		return n, io.ErrShortWrite
	}
	return n, nil
}

// WriteString is Write for a string.
func (b *Buffer) WriteString(s string) (int, error) {
	return b.Write(unsafe.Slice(unsafe.StringData(s), len(s)))
}

// Consume marks n bytes at pos as processed, as the host does while
// transmitting.
func (b *Buffer) Consume(n int) {
	b.checkLive()
	if n < 0 || b.pos+n > b.last {
		panic("buf: consume past last")
	}
	b.pos += n
}

// Validate reports ErrEmpty for an empty buffer that is not the sentinel.
func (b *Buffer) Validate() error {
	if b.sentinel {
		return nil
	}
	if b.Len() == 0 {
		return ErrEmpty
	}
	return nil
}

func (b *Buffer) checkLive() {
	if b.kind == Temporary && !b.a.Live(b.gen) {
		panic("buf: buffer used after its arena was torn down")
	}
}

func (b *Buffer) checkWritable() {
	if b.kind != Temporary {
		panic("buf: write to memory buffer")
	}
	b.checkLive()
}
