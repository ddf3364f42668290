package core

// Trail is a fixed-capacity history of world positions, newest first.
// Pushing onto a full trail evicts the oldest entry.
type Trail struct {
	buf   []Vec
	head  int // Index of the newest entry
	count int
}

// NewTrail creates an empty trail holding at most capacity positions.
func NewTrail(capacity int) *Trail {
	if capacity < 1 {
		capacity = 1
	}
	return &Trail{buf: make([]Vec, capacity)}
}

// Cap returns the maximum number of positions kept.
func (t *Trail) Cap() int {
	return len(t.buf)
}

// Len returns the number of stored positions.
func (t *Trail) Len() int {
	return t.count
}

// Push records p as the newest position.
func (t *Trail) Push(p Vec) {
	t.head = (t.head - 1 + len(t.buf)) % len(t.buf)
	t.buf[t.head] = p
	if t.count < len(t.buf) {
		t.count++
	}
}

// Fill replaces the history with n copies of p.
func (t *Trail) Fill(p Vec, n int) {
	t.head = 0
	t.count = 0
	for i := 0; i < n && i < len(t.buf); i++ {
		t.buf[i] = p
		t.count++
	}
}

// At returns the i-th newest position; At(0) is the most recent.
func (t *Trail) At(i int) Vec {
	if i < 0 || i >= t.count {
		return Vec{}
	}
	return t.buf[(t.head+i)%len(t.buf)]
}

// Points returns a copy of the history, newest first.
func (t *Trail) Points() []Vec {
	out := make([]Vec, t.count)
	for i := range out {
		out[i] = t.At(i)
	}
	return out
}
