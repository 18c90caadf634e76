package chain

// Token is a capability to flush the device that issued it.
//
// A token does not expose the device. Handles carry a copy so they can push
// the shadow store to hardware without knowing the register count or the
// concrete line types. The zero Token is valid and does nothing.
type Token struct {
	flush func()
}

// NewToken returns a token that calls flush on Invoke.
func NewToken(flush func()) Token {
	return Token{flush: flush}
}

// Invoke runs the bound flush.
func (t Token) Invoke() {
	if t.flush != nil {
		t.flush()
	}
}

// Valid reports whether a flush is bound to t.
func (t Token) Valid() bool {
	return t.flush != nil
}
