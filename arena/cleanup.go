package arena

import (
	"fmt"
	"unsafe"
)

// cleanupCost is the number of arena bytes charged per registered cleanup.
const cleanupCost = int(unsafe.Sizeof(func() {})) * 2

// AddCleanup registers fn to run exactly once when the arena is reset or
// released. Cleanups run in LIFO order (like defer).
//
// Registration is charged against the arena limit; ErrExhausted is returned
// when it does not fit, and fn is not registered. ErrReleased is returned
// when called from a running cleanup.
func (a *Arena) AddCleanup(fn func()) error {
	a.panicIfReleased()
	if fn == nil {
		panic("arena: nil cleanup")
	}
	if a.tearing {
		return ErrReleased
	}
	if a.Alloc(cleanupCost) == nil {
		return ErrExhausted
	}
	a.cleanups = append(a.cleanups, fn)
	return nil
}

// NumCleanups returns the number of cleanups waiting for teardown.
func (a *Arena) NumCleanups() int {
	return len(a.cleanups)
}

// runCleanups runs and forgets every registered cleanup. A panicking cleanup
// is recovered and logged; the remaining cleanups still run.
func (a *Arena) runCleanups() {
	if len(a.cleanups) == 0 {
		return
	}
	a.tearing = true
	defer func() { a.tearing = false }()

	fns := a.cleanups
	a.cleanups = nil
	for i := len(fns) - 1; i >= 0; i-- {
		a.runCleanup(fns[i], i)
	}
}

func (a *Arena) runCleanup(fn func(), idx int) {
	defer func() {
		if r := recover(); r != nil {
			a.log.Error("arena: cleanup panicked",
				"cleanup", idx,
				"generation", a.gen,
				"panic", fmt.Sprint(r),
			)
		}
	}()
	fn()
}
