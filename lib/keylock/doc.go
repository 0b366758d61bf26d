// Package keylock implements an in-process lock table that serializes
// writers per key. It provides the per-key atomicity of the dictionary:
// read-modify-write sequences (such as updating metadata while keeping the
// original creation timestamp) take the key lock, while plain reads go
// straight to the storage engine.
//
// Implementation Approach:
//
//	The table keeps one reference-counted mutex per active key in a
//	concurrent map. Lock atomically gets-or-creates the entry and bumps its
//	count before blocking on the mutex, Unlock decrements and removes the
//	entry when the count reaches zero. The map's per-key Compute guarantees
//	that count updates never race, so the table stays exact: after all
//	holders release, no memory is retained for the key.
//
// Thread Safety:
//
//	All methods are safe for concurrent use. Locks are not reentrant, a
//	goroutine that locks the same key twice deadlocks just like with a
//	plain sync.Mutex.
package keylock
