package styling

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

// lruList is a small fixed-capacity LRU over a slice. Index 0 is the
// most recently used entry. At the sizes the sharing cache works with
// (8 entries) a slice beats any linked structure.
type lruList[T any] struct {
	entries  []T
	capacity int
}

func newLRUList[T any](capacity int) lruList[T] {
	return lruList[T]{
		entries:  make([]T, 0, capacity),
		capacity: capacity,
	}
}

func (l *lruList[T]) len() int {
	return len(l.entries)
}

// at returns a pointer into the list; it is invalidated by insert and
// touch.
func (l *lruList[T]) at(i int) *T {
	return &l.entries[i]
}

// insert prepends v as the most recently used entry, evicting the least
// recently used one if the list is full.
func (l *lruList[T]) insert(v T) {
	if l.capacity == 0 {
		return
	}
	if len(l.entries) < l.capacity {
		l.entries = append(l.entries, v)
	}
	copy(l.entries[1:], l.entries)
	l.entries[0] = v
}

// touch moves entry i to the front.
func (l *lruList[T]) touch(i int) {
	if i == 0 {
		return
	}
	v := l.entries[i]
	copy(l.entries[1:i+1], l.entries[:i])
	l.entries[0] = v
}

func (l *lruList[T]) clear() {
	var zero T
	for i := range l.entries {
		l.entries[i] = zero
	}
	l.entries = l.entries[:0]
}
