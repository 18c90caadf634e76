package chain

// Guard defers a chain flush until it is released.
//
// A guard is active from creation until the first call to Release, which
// flushes the chain exactly once. Release it with defer so every exit path
// flushes:
//
//	g := h.Guard()
//	defer g.Release()
//	*g.Ref() |= 0x01
type Guard[T any] struct {
	ref      T
	token    Token
	released bool
}

func newGuard[T any](ref T, token Token) *Guard[T] {
	return &Guard[T]{ref: ref, token: token}
}

// Ref returns the guarded alias. Writes through it reach the shadow store
// immediately and the hardware on Release.
func (g *Guard[T]) Ref() T {
	return g.ref
}

// Released reports whether Release has been called.
func (g *Guard[T]) Released() bool {
	return g.released
}

// Release flushes the chain. Only the first call has any effect.
func (g *Guard[T]) Release() {
	if g.released {
		return
	}
	g.released = true
	g.token.Invoke()
}
