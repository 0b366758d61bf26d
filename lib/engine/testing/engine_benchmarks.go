package testing

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/pdictdb/pdict/lib/engine"
	"github.com/rcrowley/go-metrics"
)

// RunEngineBenchmarks runs all benchmarks for an IEngine implementation
func RunEngineBenchmarks(b *testing.B, name string, factory engine.Factory) {
	b.Run(name, func(b *testing.B) {

		b.Run("Put", func(b *testing.B) {
			benchmarkPut(b, open(b, factory))
		})

		b.Run("PutExisting", func(b *testing.B) {
			benchmarkPutExisting(b, open(b, factory))
		})

		b.Run("PutLargeBlob", func(b *testing.B) {
			benchmarkPutLargeBlob(b, open(b, factory))
		})

		b.Run("Get", func(b *testing.B) {
			benchmarkGet(b, open(b, factory))
		})

		b.Run("Get(miss)", func(b *testing.B) {
			benchmarkGetMiss(b, open(b, factory))
		})

		b.Run("Has", func(b *testing.B) {
			benchmarkHas(b, open(b, factory))
		})

		b.Run("Delete", func(b *testing.B) {
			benchmarkDelete(b, open(b, factory))
		})

		b.Run("Keys", func(b *testing.B) {
			benchmarkKeys(b, open(b, factory))
		})

		b.Run("MixedUsage", func(b *testing.B) {
			benchmarkMixedUsage(b, open(b, factory))
		})
	})
}

// --------------------------------------------------------------------------
// Benchmark functions
// --------------------------------------------------------------------------

// Benchmark for Put operation
func benchmarkPut(b *testing.B, e engine.IEngine) {

	b.Cleanup(func() {
		e.Close()
	})

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		counter := 0
		for pb.Next() {
			key := fmt.Sprintf("test-key-%d", counter)
			blob := []byte(fmt.Sprintf("test-blob-%d", counter))
			e.Put(key, blob)
			counter++
		}
	})
}

// Benchmark for Put operation with existing keys
func benchmarkPutExisting(b *testing.B, e engine.IEngine) {

	b.Cleanup(func() {
		e.Close()
	})

	// Prepare data
	numKeys := b.N
	for i := 0; i < numKeys; i++ {
		key := fmt.Sprintf("test-key-%d", i)
		blob := []byte(fmt.Sprintf("test-blob-%d", i))
		e.Put(key, blob)
	}

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		counter := 0
		for pb.Next() {
			key := fmt.Sprintf("test-key-%d", counter%numKeys)
			blob := []byte(fmt.Sprintf("test-blob-%d", counter))
			e.Put(key, blob)
			counter++
		}
	})
}

// Benchmark for Put operation with large blobs
func benchmarkPutLargeBlob(b *testing.B, e engine.IEngine) {

	b.Cleanup(func() {
		e.Close()
	})

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		counter := 0
		for pb.Next() {
			key := fmt.Sprintf("test-key-%d", counter)
			largeBlob := make([]byte, 1*1024*1024) // 1MB
			e.Put(key, largeBlob)
			counter++
		}
	})
}

// Parallel benchmarking for Get operation
func benchmarkGet(b *testing.B, e engine.IEngine) {

	b.Cleanup(func() {
		e.Close()
	})

	// Prepare data
	numKeys := 10000
	for i := 0; i < numKeys; i++ {
		key := fmt.Sprintf("test-key-%d", i)
		blob := []byte(fmt.Sprintf("test-blob-%d", i))
		e.Put(key, blob)
	}

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		counter := 0
		for pb.Next() {
			key := fmt.Sprintf("test-key-%d", counter%numKeys)
			e.Get(key)
			counter++
		}
	})
}

// Parallel benchmarking for Get operation (with key miss)
func benchmarkGetMiss(b *testing.B, e engine.IEngine) {

	b.Cleanup(func() {
		e.Close()
	})

	const key = "test-key"

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			e.Get(key)
		}
	})
}

// Parallel benchmarking for Has operation
func benchmarkHas(b *testing.B, e engine.IEngine) {

	b.Cleanup(func() {
		e.Close()
	})

	// Prepare data
	numKeys := 10000
	for i := 0; i < numKeys; i++ {
		key := fmt.Sprintf("test-key-%d", i)
		blob := []byte(fmt.Sprintf("test-blob-%d", i))
		e.Put(key, blob)
	}

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		counter := 0
		for pb.Next() {
			key := fmt.Sprintf("test-key-%d", counter%numKeys)
			e.Has(key)
			counter++
		}
	})
}

// Parallel benchmarking for Delete operation
func benchmarkDelete(b *testing.B, e engine.IEngine) {

	b.Cleanup(func() {
		e.Close()
	})

	numKeys := 100000
	if b.N < numKeys {
		numKeys = b.N
	}

	// Prepare data
	keys := make([]string, numKeys)
	for i := 0; i < numKeys; i++ {
		keys[i] = fmt.Sprintf("test-key-%d", i)
		blob := []byte(fmt.Sprintf("test-blob-%d", i))
		e.Put(keys[i], blob)
	}

	// Counter for atomic access
	var counter int64

	// Reset timer since we were doing setup
	b.ResetTimer()

	// Run parallel delete operations
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			idx := int(atomic.AddInt64(&counter, 1)-1) % numKeys
			e.Delete(keys[idx])
		}
	})
}

// Benchmark for the Keys snapshot
// Parallelization is not meaningful here since every call scans the whole
// key space anyway
func benchmarkKeys(b *testing.B, e engine.IEngine) {

	b.Cleanup(func() {
		e.Close()
	})

	// Prepare data
	numKeys := 10000
	for i := 0; i < numKeys; i++ {
		key := fmt.Sprintf("test-key-%d", i)
		blob := []byte(fmt.Sprintf("test-blob-%d", i))
		e.Put(key, blob)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		e.Keys()
	}
}

// Benchmark for mixed usage patterns. Besides the usual ns/op average this
// benchmark records every operation in a timer and reports the p99 latency
// per operation type, which is where lock contention and busy waits show up.
func benchmarkMixedUsage(b *testing.B, e engine.IEngine) {
	b.Cleanup(func() {
		e.Close()
	})

	// Number of pre-populated keys
	numKeys := 100000
	if b.N < numKeys {
		numKeys = b.N
	}

	// Prepare initial data
	keys := make([]string, numKeys)
	for i := 0; i < numKeys; i++ {
		keys[i] = fmt.Sprintf("test-key-%d", i)
		blob := []byte(fmt.Sprintf("test-blob-%d", i))
		e.Put(keys[i], blob)
	}

	registry := metrics.NewRegistry()
	putTimer := metrics.GetOrRegisterTimer("engine.put", registry)
	getTimer := metrics.GetOrRegisterTimer("engine.get", registry)
	deleteTimer := metrics.GetOrRegisterTimer("engine.delete", registry)

	// Counter for atomic access
	var counter int64

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		// Local counter for each goroutine
		localCounter := 0

		for pb.Next() {
			// Get a somewhat random index
			idx := int(atomic.AddInt64(&counter, 1)-1) % numKeys

			// Select operation (0-4: get, get, put, delete, has)
			op := localCounter % 5

			// For every 10th operation, use a completely new key
			var key string
			if localCounter%10 == 0 {
				key = fmt.Sprintf("new-key-%d", localCounter)
			} else {
				key = keys[idx]
			}

			// Perform the selected operation
			switch op {
			case 0, 1: // Get
				getTimer.Time(func() {
					e.Get(key)
				})
			case 2: // Put
				blob := []byte(fmt.Sprintf("mixed-blob-%d", localCounter))
				putTimer.Time(func() {
					e.Put(key, blob)
				})
			case 3: // Delete
				deleteTimer.Time(func() {
					e.Delete(key)
				})
			case 4: // Has
				e.Has(key)
			}

			localCounter++
		}
	})
	b.StopTimer()

	if getTimer.Count() > 0 {
		b.ReportMetric(getTimer.Percentile(0.99), "get-p99-ns")
	}
	if putTimer.Count() > 0 {
		b.ReportMetric(putTimer.Percentile(0.99), "put-p99-ns")
	}
	if deleteTimer.Count() > 0 {
		b.ReportMetric(deleteTimer.Percentile(0.99), "delete-p99-ns")
	}
}
