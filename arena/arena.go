package arena

import (
	"log/slog"
	"unsafe"
)

// DefaultChunkSize is the default chunk size for new arenas (64 KiB).
const DefaultChunkSize = 1 << 16

// align is the alignment of every allocation; it satisfies any scalar type.
const align = unsafe.Alignof(complex128(0))

// chunk represents a single memory chunk within an arena.
type chunk struct {
	buf    []byte  // backing memory
	offset uintptr // allocation offset within buf
}

// Arena is a chunked bump allocator with a cleanup registry.
// It is owned by exactly one logical call chain and is not goroutine-safe.
type Arena struct {
	chunks    []chunk
	cur       int // index of the chunk allocations are served from
	chunkSize int
	capacity  int
	limit     int

	cleanups []func()
	tearing  bool
	released bool
	gen      uint64

	log *slog.Logger
}

// New creates an Arena configured by opts.
func New(opts ...Option) *Arena {
	cfg := defaultConfig()
	for _, o := range opts {
		if o != nil {
			o(&cfg)
		}
	}
	a := &Arena{
		chunkSize: cfg.chunkSize,
		limit:     cfg.limit,
		log:       cfg.logger,
	}
	if a.limit > 0 && a.limit < int(align) {
		a.limit = int(align)
	}
	if a.limit > 0 && a.chunkSize > a.limit {
		a.chunkSize = a.limit
	}
	a.grow(a.chunkSize)
	return a
}

// NewArena creates a new Arena with the specified chunk size.
// If chunkSize <= 0, DefaultChunkSize is used.
func NewArena(chunkSize int) *Arena {
	return New(WithChunkSize(chunkSize))
}

// Alloc returns n bytes of arena memory. The contents are unspecified:
// memory recycled by Reset is not cleared.
//
// Alloc returns nil if the arena's limit does not leave room for n bytes.
// Alloc(0) returns a non-nil empty slice. A negative n panics.
func (a *Arena) Alloc(n int) []byte {
	a.panicIfReleased()
	if n < 0 {
		panic("arena: negative allocation size")
	}

	if n == 0 {
		return a.chunks[a.cur].buf[:0:0]
	}

	// Fast path: current chunk
	if b := a.chunks[a.cur].take(n); b != nil {
		return b
	}
	return a.allocSlow(n)
}

// allocSlow handles allocation when the current chunk is full. Chunks kept
// by Reset are reused before a new one is requested.
func (a *Arena) allocSlow(n int) []byte {
	for i := a.cur + 1; i < len(a.chunks); i++ {
		if b := a.chunks[i].take(n); b != nil {
			a.cur = i
			return b
		}
	}
	if !a.grow(n) {
		return nil
	}
	return a.chunks[a.cur].take(n)
}

// AllocZeroed is Alloc with the returned memory cleared.
func (a *Arena) AllocZeroed(n int) []byte {
	b := a.Alloc(n)
	if b != nil {
		clear(b)
	}
	return b
}

// Copy allocates len(src) bytes and copies src into them.
// It returns nil if the arena is exhausted.
func (a *Arena) Copy(src []byte) []byte {
	b := a.Alloc(len(src))
	if b == nil {
		return nil
	}
	copy(b, src)
	return b
}

// Reset runs every registered cleanup, then rewinds allocation offsets to
// zero while keeping the chunks for reuse. Handles and buffers issued
// before Reset become invalid.
func (a *Arena) Reset() {
	a.panicIfReleased()
	a.runCleanups()
	for i := range a.chunks {
		a.chunks[i].offset = 0
	}
	a.cur = 0
	a.gen++
}

// Release runs every registered cleanup exactly once and drops all chunks.
// Any subsequent allocation panics. Releasing twice is a no-op.
func (a *Arena) Release() {
	if a == nil {
		panic("arena: nil arena")
	}
	if a.released {
		return
	}
	a.runCleanups()
	a.released = true
	a.chunks = nil
	a.cur = 0
	a.capacity = 0
	a.gen++
}

// Released reports whether Release has been called.
func (a *Arena) Released() bool {
	return a.released
}

// Generation identifies the current lifetime of the arena's memory. It
// advances on Reset and Release.
func (a *Arena) Generation() uint64 {
	return a.gen
}

// Live reports whether memory handed out during generation gen is still
// valid.
func (a *Arena) Live(gen uint64) bool {
	return a != nil && !a.released && a.gen == gen
}

// take bump-allocates n bytes from c, or returns nil if they do not fit.
func (c *chunk) take(n int) []byte {
	base := uintptr(unsafe.Pointer(unsafe.SliceData(c.buf)))
	off := alignPtr(base+c.offset) - base
	if off+uintptr(n) > uintptr(len(c.buf)) {
		return nil
	}
	start := int(off)
	c.offset = off + uintptr(n)
	return c.buf[start : start+n : start+n]
}

// grow appends a new chunk of at least min bytes and makes it current.
// It reports false if the arena limit leaves no room for min bytes.
// Chunks are never smaller than align, so their base address is aligned.
func (a *Arena) grow(min int) bool {
	if min < int(align) {
		min = int(align)
	}
	size := a.chunkSize
	if min > size {
		size = min
	}
	if a.limit > 0 {
		room := a.limit - a.capacity
		if room < min {
			return false
		}
		if size > room {
			size = room
		}
	}
	buf := make([]byte, size)
	a.chunks = append(a.chunks, chunk{buf: buf})
	a.cur = len(a.chunks) - 1
	a.capacity += size
	return true
}

// panicIfReleased panics if the arena is nil or has been released.
func (a *Arena) panicIfReleased() {
	if a == nil {
		panic("arena: nil arena")
	}
	if a.released {
		panic("arena: use after Release()")
	}
}

// alignPtr aligns the address up to the arena alignment.
func alignPtr(off uintptr) uintptr {
	mask := align - 1
	return (off + mask) & ^mask
}
