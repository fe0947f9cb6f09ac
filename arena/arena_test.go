package arena

import (
	"fmt"
	"testing"
	"unsafe"
)

func TestNewArena(t *testing.T) {
	tests := []struct {
		name      string
		chunkSize int
		expected  int
	}{
		{"default chunk size", 0, DefaultChunkSize},
		{"negative chunk size", -1, DefaultChunkSize},
		{"custom chunk size", 8192, 8192},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewArena(tt.chunkSize)
			if a.chunkSize != tt.expected {
				t.Errorf("NewArena(%d) chunk size = %d, want %d", tt.chunkSize, a.chunkSize, tt.expected)
			}
			if len(a.chunks) != 1 {
				t.Errorf("NewArena(%d) chunks = %d, want 1", tt.chunkSize, len(a.chunks))
			}
		})
	}
}

func TestNewArenaLimitClampsChunkSize(t *testing.T) {
	a := New(WithChunkSize(4096), WithLimit(1024))
	if a.ChunkSize() != 1024 {
		t.Errorf("ChunkSize = %d, want 1024", a.ChunkSize())
	}
	if a.Capacity() != 1024 {
		t.Errorf("Capacity = %d, want 1024", a.Capacity())
	}
}

func TestArenaAlloc(t *testing.T) {
	a := NewArena(1024)

	// Test normal allocation
	b1 := a.Alloc(100)
	if len(b1) != 100 {
		t.Errorf("Alloc(100) length = %d, want 100", len(b1))
	}

	// Zero-length allocations are valid, not failures
	b2 := a.Alloc(0)
	if b2 == nil {
		t.Error("Alloc(0) = nil, want non-nil empty slice")
	}
	if len(b2) != 0 {
		t.Errorf("Alloc(0) length = %d, want 0", len(b2))
	}

	// Test allocation that forces chunk growth
	b4 := a.Alloc(2000) // Larger than initial chunk
	if len(b4) != 2000 {
		t.Errorf("Alloc(2000) length = %d, want 2000", len(b4))
	}
	if a.NumChunks() != 2 {
		t.Errorf("NumChunks after large allocation = %d, want 2", a.NumChunks())
	}
}

func TestArenaAllocDoesNotOverlap(t *testing.T) {
	a := NewArena(256)
	b1 := a.Alloc(10)
	b2 := a.Alloc(10)
	for i := range b1 {
		b1[i] = 'a'
	}
	for i := range b2 {
		b2[i] = 'b'
	}
	if string(b1) != "aaaaaaaaaa" {
		t.Errorf("b1 = %q, overwritten by b2", b1)
	}
	if cap(b1) != 10 {
		t.Errorf("cap(b1) = %d, want 10", cap(b1))
	}
}

func TestArenaAllocNegativePanics(t *testing.T) {
	a := NewArena(1024)
	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic on negative size")
		}
	}()
	a.Alloc(-1)
}

func TestArenaAllocExhausted(t *testing.T) {
	a := New(WithChunkSize(256), WithLimit(512))

	if b := a.Alloc(200); len(b) != 200 {
		t.Fatalf("first Alloc(200) length = %d, want 200", len(b))
	}
	if b := a.Alloc(200); len(b) != 200 {
		t.Fatalf("second Alloc(200) length = %d, want 200", len(b))
	}
	if b := a.Alloc(200); b != nil {
		t.Errorf("Alloc(200) past limit = %d bytes, want nil", len(b))
	}
	if b := a.AllocZeroed(200); b != nil {
		t.Errorf("AllocZeroed(200) past limit = %d bytes, want nil", len(b))
	}
	if b := a.Copy(make([]byte, 200)); b != nil {
		t.Errorf("Copy past limit = %d bytes, want nil", len(b))
	}
	if b := a.Alloc(0); b == nil {
		t.Error("Alloc(0) on exhausted arena = nil, want non-nil")
	}
	if a.Capacity() > a.Limit() {
		t.Errorf("Capacity = %d exceeds limit %d", a.Capacity(), a.Limit())
	}
}

func TestArenaAllocZeroed(t *testing.T) {
	a := NewArena(1024)
	b := a.Alloc(64)
	for i := range b {
		b[i] = 0xff
	}

	a.Reset()
	z := a.AllocZeroed(64)
	if &z[0] != &b[0] {
		t.Fatal("expected Reset to recycle the same memory")
	}
	for i, v := range z {
		if v != 0 {
			t.Fatalf("AllocZeroed()[%d] = %#x, want 0", i, v)
		}
	}
}

func TestArenaCopy(t *testing.T) {
	a := NewArena(1024)
	src := []byte("Hello, world!\n")
	b := a.Copy(src)
	if string(b) != string(src) {
		t.Errorf("Copy = %q, want %q", b, src)
	}
	src[0] = 'J'
	if b[0] != 'H' {
		t.Error("Copy shares memory with its source")
	}
}

func TestArenaReset(t *testing.T) {
	a := NewArena(1024)

	// Allocate some data
	a.Alloc(100)
	a.Alloc(200)

	initialSizeInUse := a.SizeInUse()
	if initialSizeInUse == 0 {
		t.Error("Expected non-zero size in use after allocations")
	}
	gen := a.Generation()

	// Reset and check
	a.Reset()
	if a.SizeInUse() != 0 {
		t.Errorf("SizeInUse after Reset() = %d, want 0", a.SizeInUse())
	}
	if a.Generation() == gen {
		t.Error("Generation did not advance on Reset()")
	}

	// Verify chunks are still there
	if a.NumChunks() == 0 {
		t.Error("Expected chunks to remain after Reset()")
	}
}

func TestArenaResetReusesChunks(t *testing.T) {
	a := NewArena(1024)
	a.Alloc(800)
	a.Alloc(800)
	if a.NumChunks() != 2 {
		t.Fatalf("NumChunks = %d, want 2", a.NumChunks())
	}

	a.Reset()
	a.Alloc(800)
	a.Alloc(800)
	if a.NumChunks() != 2 {
		t.Errorf("NumChunks after Reset and refill = %d, want 2", a.NumChunks())
	}
}

func TestArenaRelease(t *testing.T) {
	a := NewArena(1024)
	a.Alloc(100)

	a.Release()

	if a.chunks != nil {
		t.Error("Expected chunks to be nil after Release()")
	}
	if !a.Released() {
		t.Error("Released() = false after Release()")
	}

	// Releasing twice is harmless
	a.Release()

	// Test panic on use after release
	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic on use after Release()")
		}
	}()
	a.Alloc(100)
}

func TestNilArenaPanics(t *testing.T) {
	var a *Arena
	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic on nil arena")
		}
	}()
	a.Alloc(1)
}

func TestAlignPtr(t *testing.T) {
	tests := []struct {
		input    uintptr
		expected uintptr
	}{
		{0, 0},
		{1, align},
		{align, align},
		{align + 1, align * 2},
	}

	for _, tt := range tests {
		result := alignPtr(tt.input)
		if result != tt.expected {
			t.Errorf("alignPtr(%d) = %d, want %d", tt.input, result, tt.expected)
		}
	}
}

func TestAllocAlignment(t *testing.T) {
	a := NewArena(1024)

	for _, n := range []int{1, 3, 7, 8, 13, 64, 5} {
		b := a.Alloc(n)
		addr := uintptr(unsafe.Pointer(&b[0]))
		if addr%unsafe.Alignof(complex128(0)) != 0 {
			t.Errorf("Alloc(%d) not properly aligned: %x", n, addr)
		}
		if addr%unsafe.Alignof(int64(0)) != 0 {
			t.Errorf("Alloc(%d) not aligned for int64: %x", n, addr)
		}
	}
}

func BenchmarkArenaAlloc(b *testing.B) {
	a := NewArena(1024 * 1024) // 1MB chunks
	sizes := []int{8, 64, 256, 1024}

	for _, size := range sizes {
		b.Run(fmt.Sprintf("size-%d", size), func(b *testing.B) {
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				a.Alloc(size)
				if i%1000 == 999 { // Reset periodically to avoid growing too much
					a.Reset()
				}
			}
		})
	}
}

func BenchmarkArenaVsBuiltin(b *testing.B) {
	b.Run("arena", func(b *testing.B) {
		a := NewArena(1024 * 1024)
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			a.Alloc(64)
			if i%1000 == 999 {
				a.Reset()
			}
		}
	})

	b.Run("builtin", func(b *testing.B) {
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			_ = make([]byte, 64)
		}
	})
}

func TestArenaExactChunkSizeAllocation(t *testing.T) {
	a := NewArena(1024)
	b := a.Alloc(1024)
	if len(b) != 1024 {
		t.Fatalf("Alloc(1024) length = %d, want 1024", len(b))
	}
	if a.NumChunks() != 1 {
		t.Errorf("NumChunks = %d, want 1 (exact fit)", a.NumChunks())
	}

	a.Alloc(1)
	if a.NumChunks() != 2 {
		t.Errorf("NumChunks after overflow = %d, want 2", a.NumChunks())
	}
}
