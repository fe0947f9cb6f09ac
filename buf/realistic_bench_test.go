package buf

import (
	"runtime"
	"testing"

	"github.com/pavanmanishd/ngxscope/arena"
)

// BenchmarkRequestBody builds a three-link body per simulated request
func BenchmarkRequestBody(b *testing.B) {
	ua := []byte("Mozilla/5.0 (X11; Linux x86_64)")

	b.Run("Arena", func(b *testing.B) {
		a := arena.NewArena(64 * 1024)
		b.ResetTimer()

		for i := 0; i < b.N; i++ {
			name, _ := FromBytes(a, ua)
			var c Chain
			c.Append(Static("Hello, "))
			c.Append(name)
			c.Append(Static("!\n"))
			c.Close(true)
			// Simulates request teardown
			a.Reset()
		}
	})

	b.Run("Builtin", func(b *testing.B) {
		b.ResetTimer()

		for i := 0; i < b.N; i++ {
			body := make([]byte, 0, len(ua)+9)
			body = append(body, "Hello, "...)
			body = append(body, ua...)
			body = append(body, "!\n"...)
			_ = body
			if i%10 == 0 {
				runtime.GC()
			}
		}
	})

	// Many small buffers per request
	b.Run("ManyLinks/Arena", func(b *testing.B) {
		a := arena.NewArena(64 * 1024)
		b.ResetTimer()

		for i := 0; i < b.N; i++ {
			var c Chain
			for j := 0; j < 100; j++ {
				t, _ := NewTemporary(a, 64)
				t.Advance(64)
				c.Append(t)
			}
			c.Close(true)
			a.Reset()
		}
	})
}
