// Package testing provides standardised tests and benchmarks for storage
// engines that satisfy the engine.IEngine interface.
//
// The package contains:
//   - testing: A comprehensive test suite for validating conformance to the IEngine interface contract
//   - benchmark: Performance tests for measuring throughput and tail latency of common engine operations
//
// This package is particularly useful for:
//   - Applications that need to select the most appropriate engine implementation
//     based on performance characteristics
//   - Engine developers implementing the IEngine interface
//
// Example usage:
//
//	// Creating a factory function for your implementation
//	factory := func() (engine.IEngine, error) {
//		return NewMyEngine()
//	}
//
//	// Running the standard test suite
//	enginetesting.RunEngineTests(t, "MyEngine", factory)
//
//	// Running performance benchmarks
//	enginetesting.RunEngineBenchmarks(b, "MyEngine", factory)
package testing
