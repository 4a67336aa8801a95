package strtable

import (
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

func New() *Table {
	return &Table{strings: map[uint32]string{}}
}

func (t *Table) Get(id uint32) (string, bool) {
	if t == nil {
		return "", false
	}
	s, ok := t.strings[id]
	return s, ok
}

func (t *Table) Put(id uint32, s string) {
	if t.strings == nil {
		t.strings = map[uint32]string{}
	}
	t.strings[id] = s
}

func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.strings)
}

// Merge copies every string of other into t; ids present in both take the
// value from other.
func (t *Table) Merge(other *Table) {
	if other == nil {
		return
	}
	if t.strings == nil {
		t.strings = make(map[uint32]string, other.Len())
	}
	for id, s := range other.strings {
		t.strings[id] = s
	}
}

// IDs returns the known ids in ascending order.
func (t *Table) IDs() []uint32 {
	if t == nil {
		return nil
	}
	ids := maps.Keys(t.strings)
	slices.Sort(ids)
	return ids
}
