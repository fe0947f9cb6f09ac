package arena

import (
	"errors"
	"testing"
	"unsafe"
)

type testStruct struct {
	a int64
	b int32
	c int16
	d int8
}

type resource struct {
	name  string
	drops *int
}

func (r *resource) Drop() { *r.drops++ }

func TestAllocTyped(t *testing.T) {
	a := NewArena(1024)

	h, err := Alloc(a, testStruct{a: 1, b: 2, c: 3, d: 4})
	if err != nil {
		t.Fatalf("Alloc[testStruct] error = %v", err)
	}
	s := h.Get()
	if s.a != 1 || s.b != 2 || s.c != 3 || s.d != 4 {
		t.Errorf("Alloc[testStruct] = %+v, want copy of input", *s)
	}

	// Verify we can write through the handle
	s.a = 100
	if h.Get().a != 100 {
		t.Error("Could not write to allocated value")
	}
	if a.NumCleanups() != 0 {
		t.Errorf("NumCleanups = %d, want 0 for a type without Drop", a.NumCleanups())
	}
	if h.Arena() != a {
		t.Error("Handle.Arena() does not return the issuing arena")
	}
}

func TestAllocTypedCopiesValue(t *testing.T) {
	a := NewArena(1024)
	v := testStruct{a: 7}
	h, err := Alloc(a, v)
	if err != nil {
		t.Fatal(err)
	}
	v.a = 8
	if h.Get().a != 7 {
		t.Errorf("stored value = %d, want 7", h.Get().a)
	}
}

func TestAllocTypedDropRunsOnceAtRelease(t *testing.T) {
	a := NewArena(1024)
	drops := 0

	h, err := Alloc(a, resource{name: "conn", drops: &drops})
	if err != nil {
		t.Fatalf("Alloc[resource] error = %v", err)
	}
	if h.Get().name != "conn" {
		t.Errorf("name = %q, want conn", h.Get().name)
	}
	if drops != 0 {
		t.Fatalf("drops before teardown = %d, want 0", drops)
	}

	a.Release()
	if drops != 1 {
		t.Fatalf("drops after Release = %d, want 1", drops)
	}

	a.Release()
	if drops != 1 {
		t.Errorf("drops after second Release = %d, want 1", drops)
	}
}

func TestAllocTypedExhaustedRunsDrop(t *testing.T) {
	a := New(WithChunkSize(64), WithLimit(64))
	if b := a.Alloc(64); len(b) != 64 {
		t.Fatalf("Alloc(64) length = %d, want 64", len(b))
	}

	drops := 0
	h, err := Alloc(a, resource{drops: &drops})
	if !errors.Is(err, ErrExhausted) {
		t.Fatalf("error = %v, want ErrExhausted", err)
	}
	if !h.IsZero() {
		t.Error("expected zero handle on failure")
	}
	if drops != 1 {
		t.Errorf("drops = %d, want 1 (run immediately on failure)", drops)
	}
}

func TestAllocTypedCleanupRegistrationFails(t *testing.T) {
	a := New(WithChunkSize(64), WithLimit(64))
	// leave room for the value but not for its cleanup entry
	a.Alloc(64 - int(alignPtr(unsafe.Sizeof(resource{}))))

	drops := 0
	_, err := Alloc(a, resource{drops: &drops})
	if !errors.Is(err, ErrExhausted) {
		t.Fatalf("error = %v, want ErrExhausted", err)
	}
	if drops != 1 {
		t.Fatalf("drops = %d, want 1", drops)
	}
	if a.NumCleanups() != 0 {
		t.Errorf("NumCleanups = %d, want 0", a.NumCleanups())
	}

	a.Release()
	if drops != 1 {
		t.Errorf("drops after Release = %d, want 1 (never twice)", drops)
	}
}

func TestHandleInvalidAfterReset(t *testing.T) {
	a := NewArena(1024)
	h, err := Alloc(a, 42)
	if err != nil {
		t.Fatal(err)
	}
	if !h.Valid() {
		t.Fatal("handle invalid before Reset")
	}

	a.Reset()
	if h.Valid() {
		t.Error("handle still valid after Reset")
	}

	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic on stale handle")
		}
	}()
	h.Get()
}

func TestHandleInvalidAfterRelease(t *testing.T) {
	a := NewArena(1024)
	h, _ := Alloc(a, "value")
	a.Release()
	if h.Valid() {
		t.Error("handle still valid after Release")
	}
}

func TestZeroHandle(t *testing.T) {
	var h Handle[int]
	if !h.IsZero() || h.Valid() {
		t.Fatal("zero handle reported as usable")
	}
	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic on zero handle")
		}
	}()
	h.Get()
}

func BenchmarkAllocTyped(b *testing.B) {
	a := NewArena(1024 * 1024)

	b.Run("Alloc[int]", func(b *testing.B) {
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			Alloc(a, i)
			if i%1000 == 999 {
				a.Reset()
			}
		}
	})

	b.Run("Alloc[resource]", func(b *testing.B) {
		drops := 0
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			Alloc(a, resource{drops: &drops})
			if i%1000 == 999 {
				a.Reset()
			}
		}
	})
}
