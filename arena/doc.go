// Package arena implements a chunked bump allocator for memory whose
// lifetime is one processing scope: one request, or one configuration load.
//
// # Overview
//
// The host creates an Arena when a scope begins and releases it when the
// scope ends. Everything handed out in between is reclaimed together, and
// every cleanup registered on the arena runs exactly once at that point.
// Handler code never decides when the arena goes away.
//
// # Basic Usage
//
//	a := arena.New(arena.WithChunkSize(4096))
//	defer a.Release() // done by the host, runs cleanups
//
//	// Raw bytes, pointer-free
//	buf := a.Alloc(1024)
//	if buf == nil {
//		// exhausted: report the failure, do not panic
//	}
//
//	// Typed values with teardown logic
//	h, err := arena.Alloc(a, conn) // conn's Drop runs at Release
//	c := h.Get()
//
// # Failure
//
// Running out of room (see WithLimit) is a runtime condition: the Alloc
// method returns nil, the generic Alloc and AddCleanup return ErrExhausted.
// Misuse is a defect in calling code and panics: a nil arena, a negative size, allocating after Release,
// or dereferencing a Handle whose arena generation has ended.
//
// # Teardown Order
//
// Cleanups run in reverse registration order, like deferred calls. A
// panicking cleanup is recovered and logged through the arena's slog.Logger
// and the remaining cleanups still run.
//
// # Thread Safety
//
// An Arena belongs to one logical call chain. Sharing one across scopes or
// goroutines is not supported and there is no internal locking.
//
// # Metrics and Monitoring
//
//	m := a.Metrics()
//	fmt.Printf("Utilization: %.2f%%\n", m.Utilization*100)
//	fmt.Printf("Memory in use: %d bytes\n", m.SizeInUse)
//	fmt.Printf("Pending cleanups: %d\n", m.NumCleanups)
package arena
