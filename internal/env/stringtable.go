package env

import "github.com/cwbudde/mjc/internal/labels"

// StringTable interns string-literal text to a data-section label
// (spec.md §4.5: "the first occurrence assigns a fresh label L<n> in the
// strings table; subsequent occurrences reuse it"). It shares the
// program's label counter so string labels and control-flow labels never
// collide, and accumulates across the whole program regardless of which
// scope first saw a given literal.
type StringTable struct {
	counter *labels.Counter
	labels  map[string]string
	order   []string // insertion order, for deterministic .data emission
}

// NewStringTable returns an empty table backed by counter.
func NewStringTable(counter *labels.Counter) *StringTable {
	return &StringTable{counter: counter, labels: map[string]string{}}
}

// Intern returns the label for value, assigning a fresh one on first
// occurrence.
func (t *StringTable) Intern(value string) string {
	if label, ok := t.labels[value]; ok {
		return label
	}
	label := t.counter.Next()
	t.labels[value] = label
	t.order = append(t.order, value)
	return label
}

// Entries returns the interned (value, label) pairs in first-occurrence
// order, the order the .data section lists them in.
func (t *StringTable) Entries() []StringEntry {
	entries := make([]StringEntry, len(t.order))
	for i, value := range t.order {
		entries[i] = StringEntry{Value: value, Label: t.labels[value]}
	}
	return entries
}

// StringEntry is one interned literal and its assigned label.
type StringEntry struct {
	Value string
	Label string
}
