// ABOUTME: Interleaved sample backlog
// ABOUTME: Growable ring buffer with O(1) amortized append and trim-from-front
package cadence

// Backlog holds interleaved float32 samples not yet handed to the sink.
// Implemented as a growable ring so append and trim-from-front never
// reallocate in steady state.
type Backlog struct {
	buf  []float32
	head int
	n    int
}

const backlogMinCap = 1024

// NewBacklog creates an empty backlog
func NewBacklog() *Backlog {
	return &Backlog{}
}

// Len returns the number of buffered samples
func (b *Backlog) Len() int {
	return b.n
}

// Append adds samples to the back of the backlog, growing if needed
func (b *Backlog) Append(samples []float32) {
	if len(samples) == 0 {
		return
	}

	b.grow(b.n + len(samples))

	tail := (b.head + b.n) % len(b.buf)
	copied := copy(b.buf[tail:], samples)
	if copied < len(samples) {
		copy(b.buf, samples[copied:])
	}
	b.n += len(samples)
}

// Take removes and returns exactly n samples from the front. It panics if
// n exceeds Len; callers size their reads from Len.
func (b *Backlog) Take(n int) []float32 {
	if n > b.n {
		panic("cadence: Take beyond backlog length")
	}
	if n == 0 {
		return nil
	}

	out := make([]float32, n)
	copied := copy(out, b.buf[b.head:min(b.head+n, len(b.buf))])
	if copied < n {
		copy(out[copied:], b.buf[:n-copied])
	}

	b.head = (b.head + n) % len(b.buf)
	b.n -= n
	if b.n == 0 {
		b.head = 0
	}
	return out
}

// Reset discards all buffered samples and releases backing storage
func (b *Backlog) Reset() {
	b.buf = nil
	b.head = 0
	b.n = 0
}

// grow ensures capacity for at least need samples, unwrapping on resize
func (b *Backlog) grow(need int) {
	if need <= len(b.buf) {
		return
	}

	capacity := len(b.buf)
	if capacity < backlogMinCap {
		capacity = backlogMinCap
	}
	for capacity < need {
		capacity *= 2
	}

	next := make([]float32, capacity)
	if b.n > 0 {
		copied := copy(next, b.buf[b.head:])
		if copied < b.n {
			copy(next[copied:], b.buf[:b.n-copied])
		}
	}
	b.buf = next
	b.head = 0
}
