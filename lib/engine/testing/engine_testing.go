package testing

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/pdictdb/pdict/lib/engine"
	"github.com/pdictdb/pdict/lib/errs"
)

// RunEngineTests runs a comprehensive test suite for an IEngine implementation.
// The factory must return a fresh, empty engine on every call.
func RunEngineTests(t *testing.T, name string, factory engine.Factory) {
	t.Run(name, func(t *testing.T) {
		t.Run("Put&Get", func(t *testing.T) {
			testPutGet(t, open(t, factory))
		})

		t.Run("Delete", func(t *testing.T) {
			testDelete(t, open(t, factory))
		})

		t.Run("Has", func(t *testing.T) {
			testHas(t, open(t, factory))
		})

		t.Run("Keys&Len", func(t *testing.T) {
			testKeysLen(t, open(t, factory))
		})

		t.Run("Clear", func(t *testing.T) {
			testClear(t, open(t, factory))
		})

		t.Run("Compact", func(t *testing.T) {
			testCompact(t, open(t, factory))
		})

		t.Run("GetInfo", func(t *testing.T) {
			testGetInfo(t, open(t, factory))
		})

		t.Run("EdgeCases", func(t *testing.T) {
			testEdgeCases(t, open(t, factory))
		})

		t.Run("CollisionHandling", func(t *testing.T) {
			testCollisionHandling(t, open(t, factory))
		})

		t.Run("RealisticUsage", func(t *testing.T) {
			testRealisticUsage(t, open(t, factory))
		})

		t.Run("CloseSemantics", func(t *testing.T) {
			testCloseSemantics(t, open(t, factory))
		})
	})
}

// --------------------------------------------------------------------------
// Helper functions
// --------------------------------------------------------------------------

// Creates a new engine instance via the factory, fails the test if the
// factory errors
func open(tb testing.TB, factory engine.Factory) engine.IEngine {
	tb.Helper()

	e, err := factory()
	if err != nil {
		tb.Fatalf("Factory failed to open engine: %v", err)
	}
	return e
}

// Checks if the engine supports the specified feature
// Skip the test if it is not supported
func requireFeature(t testing.TB, e engine.IEngine, feature engine.Feature) {
	if !e.SupportsFeature(feature) {
		t.Skip()
	}
}

// --------------------------------------------------------------------------
// Test functions
// --------------------------------------------------------------------------

func testPutGet(t *testing.T, e engine.IEngine) {
	defer e.Close()

	testKey := "test-key"
	testBlob1 := []byte("test-blob1")
	testBlob2 := []byte("test-blob2")

	if err := e.Put(testKey, testBlob1); err != nil {
		t.Fatalf("Unexpected error during Put: %v", err)
	}

	result, loaded, err := e.Get(testKey)
	if err != nil {
		t.Fatalf("Unexpected error during Get: %v", err)
	}
	if !loaded {
		t.Errorf("Expected key %s to exist after Put", testKey)
	}
	if !bytes.Equal(result, testBlob1) {
		t.Errorf("Expected blob %s, got %s", testBlob1, result)
	}

	if err := e.Put(testKey, testBlob2); err != nil {
		t.Fatalf("Unexpected error during Put: %v", err)
	}

	result, loaded, err = e.Get(testKey)
	if err != nil {
		t.Fatalf("Unexpected error during Get: %v", err)
	}
	if !loaded {
		t.Errorf("Expected key %s to exist after overwrite", testKey)
	}
	if !bytes.Equal(result, testBlob2) {
		t.Errorf("Expected blob %s, got %s", testBlob2, result)
	}

	// A missing key is reported through the boolean, never as an error
	_, loaded, err = e.Get("nonexistent-key")
	if err != nil {
		t.Errorf("Expected no error for nonexistent key, got %v", err)
	}
	if loaded {
		t.Errorf("Expected nonexistent key to return loaded=false")
	}

	retrievedBlob, _, _ := e.Get(testKey)
	retrievedBlob[0] = 'X'

	originalBlob, _, _ := e.Get(testKey)
	if bytes.Equal(retrievedBlob, originalBlob) {
		t.Errorf("Get should return a copy, not a reference to the stored blob")
	}

	inputBlob := []byte("input-blob")
	if err := e.Put("input-key", inputBlob); err != nil {
		t.Fatalf("Unexpected error during Put: %v", err)
	}
	inputBlob[0] = 'X'

	storedBlob, _, _ := e.Get("input-key")
	if bytes.Equal(storedBlob, inputBlob) {
		t.Errorf("Put should store a copy, not a reference to the caller's blob")
	}
}

func testDelete(t *testing.T, e engine.IEngine) {
	defer e.Close()

	testKey := "delete-test-key"
	testBlob := []byte("delete-test-blob")

	if err := e.Put(testKey, testBlob); err != nil {
		t.Fatalf("Unexpected error during Put: %v", err)
	}

	removed, err := e.Delete(testKey)
	if err != nil {
		t.Fatalf("Unexpected error during Delete: %v", err)
	}
	if !removed {
		t.Errorf("Expected Delete to report removed=true for existing key")
	}

	_, loaded, err := e.Get(testKey)
	if err != nil {
		t.Fatalf("Unexpected error during Get: %v", err)
	}
	if loaded {
		t.Errorf("Expected key %s to not exist after Delete", testKey)
	}

	// Deleting a missing key is not an error
	removed, err = e.Delete("nonexistent-key")
	if err != nil {
		t.Errorf("Expected no error when deleting nonexistent key, got %v", err)
	}
	if removed {
		t.Errorf("Expected Delete to report removed=false for nonexistent key")
	}
}

func testHas(t *testing.T, e engine.IEngine) {
	defer e.Close()

	testKey := "has-test-key"
	testBlob := []byte("has-test-blob")

	loaded, err := e.Has(testKey)
	if err != nil {
		t.Fatalf("Unexpected error during Has: %v", err)
	}
	if loaded {
		t.Errorf("Expected Has to return false for nonexistent key")
	}

	if err := e.Put(testKey, testBlob); err != nil {
		t.Fatalf("Unexpected error during Put: %v", err)
	}

	loaded, err = e.Has(testKey)
	if err != nil {
		t.Fatalf("Unexpected error during Has: %v", err)
	}
	if !loaded {
		t.Errorf("Expected Has to return true after Put")
	}

	if _, err := e.Delete(testKey); err != nil {
		t.Fatalf("Unexpected error during Delete: %v", err)
	}

	loaded, err = e.Has(testKey)
	if err != nil {
		t.Fatalf("Unexpected error during Has: %v", err)
	}
	if loaded {
		t.Errorf("Expected Has to return false after Delete")
	}
}

func testKeysLen(t *testing.T, e engine.IEngine) {
	defer e.Close()

	n, err := e.Len()
	if err != nil {
		t.Fatalf("Unexpected error during Len: %v", err)
	}
	if n != 0 {
		t.Errorf("Expected empty engine to have Len 0, got %d", n)
	}

	numKeys := 100
	want := make([]string, 0, numKeys)

	for i := 0; i < numKeys; i++ {
		key := fmt.Sprintf("keys-test-%03d", i)
		want = append(want, key)

		if err := e.Put(key, []byte(fmt.Sprintf("blob-%d", i))); err != nil {
			t.Fatalf("Unexpected error during Put: %v", err)
		}
	}

	n, err = e.Len()
	if err != nil {
		t.Fatalf("Unexpected error during Len: %v", err)
	}
	if n != int64(numKeys) {
		t.Errorf("Expected Len %d, got %d", numKeys, n)
	}

	got, err := e.Keys()
	if err != nil {
		t.Fatalf("Unexpected error during Keys: %v", err)
	}
	if len(got) != numKeys {
		t.Fatalf("Expected %d keys, got %d", numKeys, len(got))
	}

	// Key order is not part of the contract
	sort.Strings(got)
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Expected key %s at position %d, got %s", want[i], i, got[i])
		}
	}

	// Overwriting must not create a second entry
	if err := e.Put("keys-test-000", []byte("overwritten")); err != nil {
		t.Fatalf("Unexpected error during Put: %v", err)
	}

	n, err = e.Len()
	if err != nil {
		t.Fatalf("Unexpected error during Len: %v", err)
	}
	if n != int64(numKeys) {
		t.Errorf("Expected Len to stay %d after overwrite, got %d", numKeys, n)
	}
}

func testClear(t *testing.T, e engine.IEngine) {
	defer e.Close()

	numKeys := 50
	for i := 0; i < numKeys; i++ {
		if err := e.Put(fmt.Sprintf("clear-test-%d", i), []byte("clear-test-blob")); err != nil {
			t.Fatalf("Unexpected error during Put: %v", err)
		}
	}

	removed, err := e.Clear()
	if err != nil {
		t.Fatalf("Unexpected error during Clear: %v", err)
	}
	if removed != int64(numKeys) {
		t.Errorf("Expected Clear to remove %d entries, got %d", numKeys, removed)
	}

	n, err := e.Len()
	if err != nil {
		t.Fatalf("Unexpected error during Len: %v", err)
	}
	if n != 0 {
		t.Errorf("Expected Len 0 after Clear, got %d", n)
	}

	// Clearing an empty engine is not an error
	removed, err = e.Clear()
	if err != nil {
		t.Errorf("Expected no error when clearing empty engine, got %v", err)
	}
	if removed != 0 {
		t.Errorf("Expected Clear on empty engine to remove 0 entries, got %d", removed)
	}
}

func testCompact(t *testing.T, e engine.IEngine) {
	defer e.Close()

	requireFeature(t, e, engine.FeatureCompaction)

	// Create and remove entries so there is something to reclaim
	numKeys := 200
	for i := 0; i < numKeys; i++ {
		if err := e.Put(fmt.Sprintf("compact-test-%d", i), make([]byte, 1024)); err != nil {
			t.Fatalf("Unexpected error during Put: %v", err)
		}
	}

	for i := 0; i < numKeys; i += 2 {
		if _, err := e.Delete(fmt.Sprintf("compact-test-%d", i)); err != nil {
			t.Fatalf("Unexpected error during Delete: %v", err)
		}
	}

	if err := e.Compact(); err != nil {
		t.Fatalf("Unexpected error during Compact: %v", err)
	}

	// Compaction must not lose surviving entries
	for i := 1; i < numKeys; i += 2 {
		key := fmt.Sprintf("compact-test-%d", i)

		loaded, err := e.Has(key)
		if err != nil {
			t.Fatalf("Unexpected error during Has: %v", err)
		}
		if !loaded {
			t.Errorf("Key %s missing after Compact", key)
		}
	}
}

func testGetInfo(t *testing.T, e engine.IEngine) {
	defer e.Close()

	numKeys := 25
	for i := 0; i < numKeys; i++ {
		if err := e.Put(fmt.Sprintf("info-test-%d", i), []byte("info-test-blob")); err != nil {
			t.Fatalf("Unexpected error during Put: %v", err)
		}
	}

	info, err := e.GetInfo()
	if err != nil {
		t.Fatalf("Unexpected error during GetInfo: %v", err)
	}

	if info.Type == "" {
		t.Errorf("Expected Info.Type to be set")
	}

	if info.Keys != int64(numKeys) {
		t.Errorf("Expected Info.Keys %d, got %d", numKeys, info.Keys)
	}

	// The advertised features must agree with SupportsFeature
	for _, feature := range info.SupportedFeatures {
		if !e.SupportsFeature(feature) {
			t.Errorf("Info advertises feature %s but SupportsFeature denies it", feature)
		}
	}
}

func testEdgeCases(t *testing.T, e engine.IEngine) {
	defer e.Close()

	emptyKey := ""
	emptyKeyBlob := []byte("blob for empty key")

	if err := e.Put(emptyKey, emptyKeyBlob); err != nil {
		t.Fatalf("Unexpected error during Put: %v", err)
	}

	result, loaded, err := e.Get(emptyKey)
	if err != nil {
		t.Fatalf("Unexpected error during Get: %v", err)
	}
	if !loaded {
		t.Errorf("Empty key not found after Put")
	} else if !bytes.Equal(result, emptyKeyBlob) {
		t.Errorf("Blob mismatch for empty key")
	}

	emptyBlobKey := "empty-blob-key"
	emptyBlob := []byte{}

	if err := e.Put(emptyBlobKey, emptyBlob); err != nil {
		t.Fatalf("Unexpected error during Put: %v", err)
	}

	result, loaded, err = e.Get(emptyBlobKey)
	if err != nil {
		t.Fatalf("Unexpected error during Get: %v", err)
	}
	if !loaded {
		t.Errorf("Key for empty blob not found after Put")
	} else if len(result) != 0 {
		t.Errorf("Empty blob resulted in non-empty blob: %v", result)
	}

	nilBlobKey := "nil-blob-key"
	var nilBlob []byte = nil

	if err := e.Put(nilBlobKey, nilBlob); err != nil {
		t.Fatalf("Unexpected error during Put: %v", err)
	}

	result, loaded, err = e.Get(nilBlobKey)
	if err != nil {
		t.Fatalf("Unexpected error during Get: %v", err)
	}
	if !loaded {
		t.Errorf("Key for nil blob not found after Put")
	} else if len(result) != 0 {
		t.Errorf("Nil blob resulted in non-empty blob: %v", result)
	}

	if !t.Failed() {

		largeKey := strings.Repeat("k", 1000)
		largeKeyBlob := []byte("blob for large key")

		if err := e.Put(largeKey, largeKeyBlob); err != nil {
			t.Fatalf("Unexpected error during Put: %v", err)
		}

		result, loaded, err = e.Get(largeKey)
		if err != nil {
			t.Fatalf("Unexpected error during Get: %v", err)
		}
		if !loaded {
			t.Errorf("Large key not found after Put")
		} else if !bytes.Equal(result, largeKeyBlob) {
			t.Errorf("Blob mismatch for large key")
		}

		largeBlobKey := "large-blob-key"
		largeBlob := make([]byte, 8*1024*1024)

		for i := range largeBlob {
			largeBlob[i] = byte(i % 256)
		}

		if err := e.Put(largeBlobKey, largeBlob); err != nil {
			t.Fatalf("Unexpected error during Put: %v", err)
		}

		result, loaded, err = e.Get(largeBlobKey)
		if err != nil {
			t.Fatalf("Unexpected error during Get: %v", err)
		}
		if !loaded {
			t.Errorf("Key for large blob not found after Put")
		} else if !bytes.Equal(result, largeBlob) {

			headMismatch := !bytes.Equal(result[:10], largeBlob[:10])
			tailMismatch := !bytes.Equal(result[len(result)-10:], largeBlob[len(largeBlob)-10:])
			if headMismatch || tailMismatch || len(result) != len(largeBlob) {
				t.Errorf("Large blob mismatch: Head mismatch=%v, Tail mismatch=%v, Size mismatch=%v",
					headMismatch, tailMismatch, len(result) != len(largeBlob))
			}
		}
	}
}

func testCollisionHandling(t *testing.T, e engine.IEngine) {
	defer e.Close()

	prefix := "collision-test-"
	numKeys := 1000

	for i := 0; i < numKeys; i++ {
		key := fmt.Sprintf("%s%d", prefix, i)
		blob := []byte(fmt.Sprintf("blob-%d", i))

		if err := e.Put(key, blob); err != nil {
			t.Fatalf("Unexpected error during Put: %v", err)
		}
	}

	for i := 0; i < numKeys; i++ {
		key := fmt.Sprintf("%s%d", prefix, i)
		expectedBlob := []byte(fmt.Sprintf("blob-%d", i))

		actualBlob, loaded, err := e.Get(key)
		if err != nil {
			t.Fatalf("Unexpected error during Get: %v", err)
		}
		if !loaded {
			t.Errorf("Key %s not found", key)
			continue
		}

		if !bytes.Equal(actualBlob, expectedBlob) {
			t.Errorf("Blob for key %s does not match: expected %s, got %s",
				key, expectedBlob, actualBlob)
		}
	}

	for i := 0; i < numKeys; i += 2 {
		key := fmt.Sprintf("%s%d", prefix, i)
		if _, err := e.Delete(key); err != nil {
			t.Fatalf("Unexpected error during Delete: %v", err)
		}
	}

	for i := 0; i < numKeys; i++ {
		key := fmt.Sprintf("%s%d", prefix, i)
		_, loaded, err := e.Get(key)
		if err != nil {
			t.Fatalf("Unexpected error during Get: %v", err)
		}

		if i%2 == 0 {
			if loaded {
				t.Errorf("Key %s should be deleted", key)
			}
		} else {
			if !loaded {
				t.Errorf("Key %s should still exist", key)
			}
		}
	}
}

func testRealisticUsage(t *testing.T, e engine.IEngine) {
	defer e.Close()

	type operation struct {
		op   string
		key  string
		blob []byte
	}

	numOperations := 10_000
	operations := make([]operation, numOperations)

	for i := 0; i < numOperations; i++ {
		var op string
		switch i % 10 {
		case 0, 1, 2, 3, 4, 5, 6:
			op = "put"
		case 7, 8:
			op = "get"
		case 9:
			op = "delete"
		}

		var key string
		if i%5 == 0 {

			key = fmt.Sprintf("hot-key-%d", i%50)
		} else {

			key = fmt.Sprintf("key-%d", i)
		}

		var blob []byte
		if op == "put" {
			blobSize := 64
			if i%10 == 0 {

				blobSize = 1024
			}
			blob = make([]byte, blobSize)

			for j := 0; j < blobSize; j++ {
				blob[j] = byte((i + j) % 256)
			}
		}

		operations[i] = operation{op, key, blob}
	}

	allKeys := make(map[string]bool)
	for _, op := range operations {
		allKeys[op.key] = true
	}

	numWorkers := 8
	var wg sync.WaitGroup
	wg.Add(numWorkers)

	var errorCount int32

	opsPerWorker := numOperations / numWorkers

	for w := 0; w < numWorkers; w++ {
		go func(workerId int) {
			defer wg.Done()

			start := workerId * opsPerWorker
			end := start + opsPerWorker

			for i := start; i < end; i++ {
				op := operations[i]

				var err error
				switch op.op {
				case "put":
					err = e.Put(op.key, op.blob)
				case "get":
					_, _, err = e.Get(op.key)
				case "delete":
					_, err = e.Delete(op.key)
				}

				if err != nil {
					atomic.AddInt32(&errorCount, 1)
				}
			}
		}(w)
	}

	wg.Wait()

	if atomic.LoadInt32(&errorCount) > 0 {
		t.Fatalf("Test had %d errors during parallel operations", errorCount)
		return
	}

	var (
		verifyMutex sync.Mutex
		keyStatus   = make(map[string]bool)
		keyBlobs    = make(map[string][]byte)
		errorKeys   = make(map[string]string)
	)

	var verifyWg sync.WaitGroup
	verifyWg.Add(len(allKeys))

	for key := range allKeys {
		go func(k string) {
			defer verifyWg.Done()

			_, loaded, err := e.Get(k)

			verifyMutex.Lock()
			defer verifyMutex.Unlock()

			if err != nil {
				errorKeys[k] = fmt.Sprintf("Unexpected error during Get: %v", err)
				return
			}

			keyStatus[k] = loaded

			if loaded {

				blob, ok, err := e.Get(k)
				if err != nil || !ok {

					errorKeys[k] = "Key exists but Get returned no blob"
					return
				}

				keyBlobs[k] = blob
			}
		}(key)
	}

	verifyWg.Wait()

	for key := range allKeys {
		_, loaded, err := e.Get(key)
		if err != nil {
			t.Errorf("Unexpected error during Get: %v", err)
			continue
		}

		if loaded != keyStatus[key] {
			t.Errorf("Consistency error: Key %s existence changed during verification", key)
			continue
		}

		if loaded {
			blob, ok, err := e.Get(key)
			if err != nil || !ok {
				t.Errorf("Consistency error: Key %s exists but could not be retrieved", key)
				continue
			}

			if !bytes.Equal(blob, keyBlobs[key]) {
				t.Errorf("Blob mismatch for key %s between verification passes", key)
			}
		}
	}

	for key, errMsg := range errorKeys {
		t.Errorf("Error for key %s: %s", key, errMsg)
	}
}

func testCloseSemantics(t *testing.T, e engine.IEngine) {
	testKey := "close-test-key"

	if err := e.Put(testKey, []byte("close-test-blob")); err != nil {
		t.Fatalf("Unexpected error during Put: %v", err)
	}

	if err := e.Close(); err != nil {
		t.Fatalf("Unexpected error during Close: %v", err)
	}

	// Every operation after Close must fail with a closed error
	if err := e.Put(testKey, []byte("blob")); !errs.IsClosed(err) {
		t.Errorf("Expected closed error from Put after Close, got %v", err)
	}

	if _, _, err := e.Get(testKey); !errs.IsClosed(err) {
		t.Errorf("Expected closed error from Get after Close, got %v", err)
	}

	if _, err := e.Has(testKey); !errs.IsClosed(err) {
		t.Errorf("Expected closed error from Has after Close, got %v", err)
	}

	if _, err := e.Delete(testKey); !errs.IsClosed(err) {
		t.Errorf("Expected closed error from Delete after Close, got %v", err)
	}

	if _, err := e.Keys(); !errs.IsClosed(err) {
		t.Errorf("Expected closed error from Keys after Close, got %v", err)
	}

	if _, err := e.Len(); !errs.IsClosed(err) {
		t.Errorf("Expected closed error from Len after Close, got %v", err)
	}

	if _, err := e.Clear(); !errs.IsClosed(err) {
		t.Errorf("Expected closed error from Clear after Close, got %v", err)
	}

	if err := e.Compact(); !errs.IsClosed(err) {
		t.Errorf("Expected closed error from Compact after Close, got %v", err)
	}

	if _, err := e.GetInfo(); !errs.IsClosed(err) {
		t.Errorf("Expected closed error from GetInfo after Close, got %v", err)
	}

	// Close is idempotent
	if err := e.Close(); err != nil {
		t.Errorf("Expected second Close to return nil, got %v", err)
	}
}
