// Package labels implements the process-wide monotonically increasing
// label counter described in spec.md §4.7 and §5: a single sequence
// producing "L1", "L2", … that is shared between string-literal interning
// during semantic analysis and control-flow label emission during code
// generation, so that output is deterministic under a fixed traversal
// order.
package labels

import "fmt"

// Counter hands out labels "L<n>" in increasing order. The zero value is
// not usable; construct with NewCounter.
type Counter struct {
	next int
}

// NewCounter returns a fresh counter starting at L1.
func NewCounter() *Counter {
	return &Counter{next: 1}
}

// Next returns the next label in the sequence and advances the counter.
func (c *Counter) Next() string {
	n := c.next
	c.next++
	return fmt.Sprintf("L%d", n)
}
