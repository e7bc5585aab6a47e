package routetable

import "sync/atomic"

// Store holds the current table and swaps it atomically.
// The zero value is not usable; create stores with NewStore.
type Store struct {
	current atomic.Pointer[Table]
}

// NewStore creates a store serving t. A nil table is replaced by Empty().
func NewStore(t *Table) *Store {
	s := &Store{}
	s.Replace(t)
	return s
}

// Snapshot returns the table current at the time of the call.
func (s *Store) Snapshot() *Table {
	return s.current.Load()
}

// Replace publishes a new table. In-flight readers keep their old snapshot.
func (s *Store) Replace(t *Table) {
	if t == nil {
		t = Empty()
	}
	s.current.Store(t)
}
