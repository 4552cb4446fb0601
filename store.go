package vscroll

// storeEntry wraps a value with generation tracking for staleness detection.
type storeEntry[V any] struct {
	value   V
	lastGen uint64
}

// recordStore is the side table that keeps per-item bookkeeping outside the
// caller's items. Each rebuild pass starts a new generation; entries that were
// not touched during the pass are removed by Sweep.
//
// Usage:
//
//	gen := store.Begin()
//	for i, item := range items {
//	    rec, _ := store.Get(key(item), newRecord)
//	    // update rec
//	}
//	store.Sweep(gen)
//
// recordStore is not safe for concurrent use; the engine owns it.
type recordStore[K comparable, V any] struct {
	entries map[K]*storeEntry[V]
	gen     uint64
}

// newRecordStore creates an empty store.
func newRecordStore[K comparable, V any]() *recordStore[K, V] {
	return &recordStore[K, V]{entries: make(map[K]*storeEntry[V])}
}

// Begin starts a new generation and returns it.
func (s *recordStore[K, V]) Begin() uint64 {
	s.gen++
	return s.gen
}

// Get retrieves the value for key, creating it with init if missing.
// The entry is marked as used in the current generation.
// Returns a pointer to the stored value and whether it already existed.
func (s *recordStore[K, V]) Get(key K, init func() V) (*V, bool) {
	if entry, ok := s.entries[key]; ok {
		entry.lastGen = s.gen
		return &entry.value, true
	}
	entry := &storeEntry[V]{value: init(), lastGen: s.gen}
	s.entries[key] = entry
	return &entry.value, false
}

// Lookup returns the value for key without creating or marking it.
// Returns nil if no entry exists.
func (s *recordStore[K, V]) Lookup(key K) *V {
	if entry, ok := s.entries[key]; ok {
		return &entry.value
	}
	return nil
}

// Sweep removes all entries not used in generation gen and returns how many
// were removed.
func (s *recordStore[K, V]) Sweep(gen uint64) int {
	removed := 0
	for key, entry := range s.entries {
		if entry.lastGen < gen {
			delete(s.entries, key)
			removed++
		}
	}
	return removed
}

// Len returns the number of stored entries.
func (s *recordStore[K, V]) Len() int {
	return len(s.entries)
}

// Clear removes all entries immediately.
func (s *recordStore[K, V]) Clear() {
	s.entries = make(map[K]*storeEntry[V])
}
