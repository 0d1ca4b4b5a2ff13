package histogram

import (
	"fmt"
	"io"
)

// Records the distribution of a stream of small non-negative integer
// samples. Samples at or above the bucket count land in a single
// overflow bucket, so the histogram never grows after construction.
//
// The rewriting context carries two of these: one fed with the fan-out
// of every rule trie node, and one fed with the fan-out of trie roots.
// They exist purely for performance investigation and have no effect
// on rewriting itself.
type Histogram struct {
	buckets  []uint64
	overflow uint64
}

// Create a histogram with the given number of exact buckets.
func New(size int) *Histogram {
	return &Histogram{buckets: make([]uint64, size)}
}

// Record a single sample.
func (h *Histogram) Add(value int) {
	if value < 0 {
		panic("histogram: negative sample")
	}
	if value < len(h.buckets) {
		h.buckets[value]++
		return
	}
	h.overflow++
}

// The total number of samples recorded so far.
func (h *Histogram) Samples() uint64 {
	total := h.overflow
	for _, n := range h.buckets {
		total += n
	}
	return total
}

// The number of samples recorded with exactly the given value. Values
// beyond the exact buckets are folded together and not recoverable
// individually.
func (h *Histogram) Count(value int) uint64 {
	if value < len(h.buckets) {
		return h.buckets[value]
	}
	return h.overflow
}

// Write the distribution in a fixed two-column text form, one line per
// non-empty bucket.
func (h *Histogram) Dump(w io.Writer) {
	for value, count := range h.buckets {
		if count == 0 {
			continue
		}
		fmt.Fprintf(w, "%4d | %d\n", value, count)
	}
	if h.overflow > 0 {
		fmt.Fprintf(w, ">=%2d | %d\n", len(h.buckets), h.overflow)
	}
}
