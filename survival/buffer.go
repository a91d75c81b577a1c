package survival

// Buffer is an append-only write side / consume-from-front read side
// byte stream, with peek-by-absolute-offset. It is the sole owner of
// its bytes: one Buffer per direction per proxy session.
//
// Invariants: Len() == len(buf) - consumed; PeekAt(k, n) succeeds iff
// k+n <= Len(); PeekAt never advances consumed.
type Buffer struct {
	buf      []byte
	consumed int
}

// NewBuffer returns an empty Buffer.
func NewBuffer() *Buffer {
	return &Buffer{}
}

// Append adds bytes to the write side. It never reallocates in a way
// that invalidates offsets already returned by PeekAt, since PeekAt
// offsets are always relative to the current consumed cursor.
func (b *Buffer) Append(p []byte) {
	b.buf = append(b.buf, p...)
}

// Len reports the number of unconsumed bytes.
func (b *Buffer) Len() int {
	return len(b.buf) - b.consumed
}

// Reclaim drops already-consumed bytes from the front of the backing
// slice so it does not grow without bound across a long-lived
// session. Safe to call at any point between packets.
func (b *Buffer) Reclaim() {
	if b.consumed == 0 {
		return
	}
	n := copy(b.buf, b.buf[b.consumed:])
	b.buf = b.buf[:n]
	b.consumed = 0
}

// PeekAt returns a view of n bytes starting at offset (relative to the
// first unconsumed byte) without consuming anything. ok is false when
// fewer than n bytes are available at that offset.
func (b *Buffer) PeekAt(offset, n int) (p []byte, ok bool) {
	start := b.consumed + offset
	end := start + n
	if offset < 0 || n < 0 || end > len(b.buf) {
		return nil, false
	}
	return b.buf[start:end], true
}

// Take consumes exactly n leading bytes and returns them. The caller
// must have already verified Len() >= n; Take panics otherwise, since
// silently returning a short slice would corrupt every caller that
// assumes exact-length framing.
func (b *Buffer) Take(n int) []byte {
	if n < 0 || n > b.Len() {
		panic("survival: Take beyond available length")
	}
	start := b.consumed
	b.consumed += n
	return b.buf[start:b.consumed]
}
