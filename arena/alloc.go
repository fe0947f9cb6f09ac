package arena

import "unsafe"

// Dropper is implemented by values that own resources which must be freed
// when the arena holding them is torn down.
type Dropper interface {
	Drop()
}

// Handle is a non-owning reference to a value allocated by Alloc. It is valid
// until the arena that issued it is reset or released.
type Handle[T any] struct {
	a   *Arena
	gen uint64
	p   *T
}

// Alloc copies v into the arena and returns a handle to the copy.
//
// If *T implements Dropper, Drop is registered as a cleanup and runs exactly
// once at teardown. If the value cannot be stored or its cleanup cannot be
// registered, Drop runs immediately and ErrExhausted is returned.
//
// The copy lives in a GC-visible cell, so T may hold Go pointers; its size
// is charged against the arena like any other allocation.
func Alloc[T any](a *Arena, v T) (Handle[T], error) {
	a.panicIfReleased()
	p := new(T)
	*p = v
	d, drops := any(p).(Dropper)

	if a.Alloc(int(unsafe.Sizeof(v))) == nil {
		if drops {
			d.Drop()
		}
		return Handle[T]{}, ErrExhausted
	}
	if drops {
		if err := a.AddCleanup(d.Drop); err != nil {
			d.Drop()
			return Handle[T]{}, err
		}
	}
	return Handle[T]{a: a, gen: a.gen, p: p}, nil
}

// Get returns the referenced value. It panics if the handle is zero or its
// arena generation has ended.
func (h Handle[T]) Get() *T {
	if h.p == nil {
		panic("arena: zero handle")
	}
	if !h.a.Live(h.gen) {
		panic("arena: handle used after teardown")
	}
	return h.p
}

// Valid reports whether Get would succeed.
func (h Handle[T]) Valid() bool {
	return h.p != nil && h.a.Live(h.gen)
}

// IsZero reports whether h is the zero Handle.
func (h Handle[T]) IsZero() bool {
	return h.p == nil
}

// Arena returns the arena that issued h.
func (h Handle[T]) Arena() *Arena {
	return h.a
}
