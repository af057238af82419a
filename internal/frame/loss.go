package frame

// LossTracker counts received frames and sequence gaps on the receiving end.
//
// The first frame only seeds the tracker. Afterwards a frame whose sequence
// is ahead of the expected one adds the difference to Lost; a frame that is
// behind (sender restart) resets the expectation without counting loss.
type LossTracker struct {
	Received uint64
	Lost     uint64

	last   uint32
	seeded bool
}

// Observe records one received sequence number and returns how many frames
// were missed immediately before it.
func (t *LossTracker) Observe(seq uint32) uint32 {
	t.Received++

	if !t.seeded {
		t.seeded = true
		t.last = seq
		return 0
	}

	expected := t.last + 1 // wraps at 2^32
	t.last = seq

	// Forward distance modulo 2^32; anything in the upper half is treated
	// as a restart or reordering rather than loss.
	gap := seq - expected
	if gap == 0 || gap >= 1<<31 {
		return 0
	}
	t.Lost += uint64(gap)
	return gap
}

// LossPercent is lost / (received + lost) * 100, or 0 before any traffic.
func (t *LossTracker) LossPercent() float64 {
	total := t.Received + t.Lost
	if total == 0 {
		return 0
	}
	return float64(t.Lost) * 100 / float64(total)
}
