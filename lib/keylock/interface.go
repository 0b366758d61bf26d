package keylock

// ILockTable serializes writers per key. A writer takes the lock for the key
// it is about to modify, performs its read-modify-write against the storage
// engine and releases the lock. Locks for different keys never contend.
type ILockTable interface {
	// Lock blocks until the lock for the given key is held by the caller.
	Lock(key string)
	// Unlock releases the lock for the given key. Unlocking a key that is
	// not locked is a programming error and panics, mirroring sync.Mutex.
	Unlock(key string)
	// Len returns the number of keys that currently have a lock entry.
	// Entries are removed as soon as the last holder releases, so a idle
	// table reports zero regardless of how many keys were ever locked.
	Len() int
}
