package compass

import (
	"github.com/matzehuels/clevacompass/pkg/errors"
)

// List is the ordered, mutable collection of entries behind one diagram.
// A List is not safe for concurrent use.
type List struct {
	entries []Entry
}

// NewList creates a list holding a copy of entries.
func NewList(entries ...Entry) *List {
	l := &List{}
	l.Append(entries...)
	return l
}

// Len returns the number of entries.
func (l *List) Len() int { return len(l.entries) }

// Add appends e and returns its index.
func (l *List) Add(e Entry) int {
	l.entries = append(l.entries, e)
	return len(l.entries) - 1
}

// Append adds entries in order, e.g. after importing a document.
func (l *List) Append(entries ...Entry) {
	l.entries = append(l.entries, entries...)
}

// At returns the entry at index i.
func (l *List) At(i int) (Entry, error) {
	if err := l.check(i); err != nil {
		return Entry{}, err
	}
	return l.entries[i], nil
}

// Update replaces the entry at index i.
func (l *List) Update(i int, e Entry) error {
	if err := l.check(i); err != nil {
		return err
	}
	l.entries[i] = e
	return nil
}

// Delete removes the entry at index i and returns it. Later entries move up
// by one position.
func (l *List) Delete(i int) (Entry, error) {
	if err := l.check(i); err != nil {
		return Entry{}, err
	}
	e := l.entries[i]
	l.entries = append(l.entries[:i], l.entries[i+1:]...)
	return e, nil
}

// Entries returns a copy of the entries in list order.
func (l *List) Entries() []Entry {
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

func (l *List) check(i int) error {
	if i < 0 || i >= len(l.entries) {
		return errors.New(errors.ErrCodeInvalidIndex, "entry index %d out of range (have %d entries)", i, len(l.entries))
	}
	return nil
}
