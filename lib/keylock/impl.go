package keylock

import (
	"sync"

	"github.com/puzpuzpuz/xsync/v3"
)

// NewLockTable creates an empty lock table.
func NewLockTable() ILockTable {
	return &lockTableImpl{
		locks: xsync.NewMapOf[string, *lockEntry](),
	}
}

// lockEntry is one per-key mutex plus the number of goroutines that hold or
// wait for it. The count is only ever touched inside Compute, which the map
// serializes per key.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// lockTableImpl implements the ILockTable interface with a concurrent map of
// reference-counted mutexes. Entries are created on first use and removed
// when the last holder releases, so the table never grows beyond the number
// of keys under active write.
type lockTableImpl struct {
	locks *xsync.MapOf[string, *lockEntry]
}

// --------------------------------------------------------------------------
// Interface Methods (docu see keylock.ILockTable)
// --------------------------------------------------------------------------

func (t *lockTableImpl) Lock(key string) {
	var e *lockEntry

	// Use Compute for atomic get-or-create plus reference count update
	t.locks.Compute(key, func(old *lockEntry, loaded bool) (*lockEntry, bool) {
		if !loaded {
			old = &lockEntry{}
		}
		old.refs++
		e = old
		return old, false
	})

	e.mu.Lock()
}

func (t *lockTableImpl) Unlock(key string) {
	var e *lockEntry

	t.locks.Compute(key, func(old *lockEntry, loaded bool) (*lockEntry, bool) {
		if !loaded {
			return old, true
		}
		e = old
		old.refs--
		// Drop the entry once nobody holds or waits for it
		return old, old.refs == 0
	})

	if e == nil {
		panic("keylock: unlock of unlocked key: " + key)
	}
	e.mu.Unlock()
}

func (t *lockTableImpl) Len() int {
	return t.locks.Size()
}
