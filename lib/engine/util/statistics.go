// Package util provides shared statistics helpers for engine
// implementations. Engines use the size histogram to report blob size
// distributions through GetInfo without scanning their full data set, and
// the sharded memory engine uses the distribution stats to judge how evenly
// its hash spreads keys across shards.
package util

import (
	"math"
	"sync"
)

// ----------------------------------------------------------------------------
// Basic statistics
// ----------------------------------------------------------------------------

type Stats struct {
	StdDeviation float64 `json:"std_deviation"`
	Min          float64 `json:"min"`
	Max          float64 `json:"max"`
	Mean         float64 `json:"mean"`
	MinMaxRatio  float64 `json:"min_max_ratio"`
}

// NewStats computes mean, extrema and the population standard deviation of
// the given values.
func NewStats(values []float64) Stats {
	if len(values) == 0 {
		return Stats{}
	}

	minV, maxV := values[0], values[0]
	var sum float64
	for _, v := range values {
		sum += v
		if v < minV {
			minV = v
		}
		if v > maxV {
			maxV = v
		}
	}
	mean := sum / float64(len(values))

	var squared float64
	for _, v := range values {
		d := v - mean
		squared += d * d
	}

	ratio := 1.0
	if maxV > 0 {
		ratio = minV / maxV
	}

	return Stats{
		StdDeviation: math.Sqrt(squared / float64(len(values))),
		Min:          minV,
		Max:          maxV,
		Mean:         mean,
		MinMaxRatio:  ratio,
	}
}

type DistributionStats struct {
	Stats
	DistributionQuality float64 `json:"distribution_quality"`
}

// NewDistributionStats scores how evenly values are spread. A quality of 1.0
// means perfectly uniform, values near 0 mean most data sits in few buckets.
func NewDistributionStats(values []float64) DistributionStats {
	stats := NewStats(values)

	var cv float64
	if stats.Mean > 0 {
		cv = stats.StdDeviation / stats.Mean
	}

	// Combine the coefficient of variation with the min/max ratio, both
	// normalized so that higher is better.
	quality := (1.0-math.Min(1.0, cv))*0.5 + stats.MinMaxRatio*0.5

	return DistributionStats{
		Stats:               stats,
		DistributionQuality: quality,
	}
}

// ----------------------------------------------------------------------------
// SizeHistogram
// ----------------------------------------------------------------------------

const (
	histogramBase    = 16 // smallest boundary in bytes
	histogramBuckets = 14 // boundaries grow by 4x up to 1GB
)

// SizeHistogram tracks the distribution of blob sizes in exponential
// buckets. Adding a sample is cheap and the memory footprint is constant,
// which makes it suitable for per-write bookkeeping inside engines.
// Estimators return bucket midpoints, not exact values.
type SizeHistogram struct {
	mutex      sync.RWMutex
	boundaries []int   // exponential boundaries, 16B up to 1GB
	buckets    []int64 // sample count per bucket, one extra for oversized blobs
	count      int64   // total number of samples
	sum        int64   // sum of all sampled sizes
}

// NewSizeHistogram creates a histogram with boundaries from 16 bytes to 1GB,
// each 4x the previous. Blobs above the top boundary land in an overflow
// bucket.
func NewSizeHistogram() *SizeHistogram {
	boundaries := make([]int, histogramBuckets)
	b := histogramBase
	for i := range boundaries {
		boundaries[i] = b
		b *= 4
	}
	return &SizeHistogram{
		boundaries: boundaries,
		buckets:    make([]int64, histogramBuckets+1),
	}
}

// Observe adds one size sample.
//
// Thread-safe: This method is safe for concurrent use
func (h *SizeHistogram) Observe(size int) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	idx := len(h.boundaries) // overflow bucket by default
	for i, boundary := range h.boundaries {
		if size <= boundary {
			idx = i
			break
		}
	}

	h.buckets[idx]++
	h.count++
	h.sum += int64(size)
}

// Count returns the total number of samples.
//
// Thread-safe: This method is safe for concurrent use
func (h *SizeHistogram) Count() int64 {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return h.count
}

// Average returns the exact mean size across all samples.
//
// Thread-safe: This method is safe for concurrent use
func (h *SizeHistogram) Average() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	if h.count == 0 {
		return 0
	}
	return int(h.sum / h.count)
}

// Median estimates the median sample size.
//
// Thread-safe: This method is safe for concurrent use
func (h *SizeHistogram) Median() int {
	return h.Percentile(50)
}

// Percentile estimates the given percentile (0-100) from the buckets. The
// estimate is the midpoint of the bucket the percentile falls into.
//
// Thread-safe: This method is safe for concurrent use
func (h *SizeHistogram) Percentile(p int) int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	if h.count == 0 || p < 0 || p > 100 {
		return 0
	}

	target := int64(math.Ceil(float64(h.count) * float64(p) / 100.0))
	var cumulative int64

	for i, count := range h.buckets {
		cumulative += count
		if cumulative < target {
			continue
		}
		switch {
		case i == 0:
			return h.boundaries[0] / 2
		case i < len(h.boundaries):
			return (h.boundaries[i-1] + h.boundaries[i]) / 2
		default:
			// overflow bucket, report twice the top boundary
			return h.boundaries[len(h.boundaries)-1] * 2
		}
	}

	return int(h.sum / h.count)
}

// Distribution returns the bucket boundaries and the percentage of samples
// in each bucket.
//
// Thread-safe: This method is safe for concurrent use
func (h *SizeHistogram) Distribution() ([]int, []float64) {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	percentages := make([]float64, len(h.buckets))
	if h.count == 0 {
		return h.boundaries, percentages
	}
	for i, count := range h.buckets {
		percentages[i] = float64(count) * 100.0 / float64(h.count)
	}
	return h.boundaries, percentages
}

// Reset clears all samples.
//
// Thread-safe: This method is safe for concurrent use
func (h *SizeHistogram) Reset() {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	h.count = 0
	h.sum = 0
	for i := range h.buckets {
		h.buckets[i] = 0
	}
}
