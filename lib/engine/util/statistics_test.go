package util

import (
	"sync"
	"testing"
)

// TestNewStats tests mean, extrema and standard deviation on known values
func TestNewStats(t *testing.T) {
	stats := NewStats([]float64{2, 4, 4, 4, 5, 5, 7, 9})

	if stats.Mean != 5 {
		t.Errorf("Expected mean 5, got %f", stats.Mean)
	}
	if stats.StdDeviation != 2 {
		t.Errorf("Expected population standard deviation 2, got %f", stats.StdDeviation)
	}
	if stats.Min != 2 {
		t.Errorf("Expected min 2, got %f", stats.Min)
	}
	if stats.Max != 9 {
		t.Errorf("Expected max 9, got %f", stats.Max)
	}
	if stats.MinMaxRatio != 2.0/9.0 {
		t.Errorf("Expected min/max ratio %f, got %f", 2.0/9.0, stats.MinMaxRatio)
	}
}

// TestNewStatsEmpty tests that no values produce the zero Stats
func TestNewStatsEmpty(t *testing.T) {
	stats := NewStats(nil)

	if stats != (Stats{}) {
		t.Errorf("Expected zero stats for empty input, got %+v", stats)
	}
}

// TestDistributionQuality tests the quality score for uniform and skewed data
func TestDistributionQuality(t *testing.T) {
	uniform := NewDistributionStats([]float64{10, 10, 10, 10})
	if uniform.DistributionQuality < 0.99 {
		t.Errorf("Expected quality near 1.0 for uniform values, got %f",
			uniform.DistributionQuality)
	}

	skewed := NewDistributionStats([]float64{0, 0, 0, 100})
	if skewed.DistributionQuality > 0.5 {
		t.Errorf("Expected low quality for skewed values, got %f",
			skewed.DistributionQuality)
	}

	if uniform.DistributionQuality <= skewed.DistributionQuality {
		t.Errorf("Uniform values must score higher than skewed values: %f <= %f",
			uniform.DistributionQuality, skewed.DistributionQuality)
	}
}

// TestSizeHistogramCounters tests the exact counters of the histogram
func TestSizeHistogramCounters(t *testing.T) {
	h := NewSizeHistogram()

	if h.Count() != 0 {
		t.Errorf("New histogram should have count 0, got %d", h.Count())
	}
	if h.Average() != 0 {
		t.Errorf("New histogram should have average 0, got %d", h.Average())
	}
	if h.Median() != 0 {
		t.Errorf("New histogram should have median 0, got %d", h.Median())
	}

	h.Observe(10)
	h.Observe(20)
	h.Observe(30)

	if h.Count() != 3 {
		t.Errorf("Expected count 3, got %d", h.Count())
	}
	if h.Average() != 20 {
		t.Errorf("Expected average 20, got %d", h.Average())
	}
}

// TestSizeHistogramPercentile tests the bucket midpoint estimates
func TestSizeHistogramPercentile(t *testing.T) {
	h := NewSizeHistogram()

	// 50 small blobs in the first bucket (<= 16B), 50 large ones in the
	// fourth bucket (256B < size <= 1KB)
	for i := 0; i < 50; i++ {
		h.Observe(10)
	}
	for i := 0; i < 50; i++ {
		h.Observe(1000)
	}

	// The median falls exactly on the last small sample, so the estimate is
	// the midpoint of the first bucket
	if got := h.Median(); got != 8 {
		t.Errorf("Expected median estimate 8, got %d", got)
	}

	// The 90th percentile falls into the large bucket, midpoint of 256..1024
	if got := h.Percentile(90); got != 640 {
		t.Errorf("Expected p90 estimate 640, got %d", got)
	}

	// The average stays exact regardless of bucketing
	if got := h.Average(); got != 505 {
		t.Errorf("Expected exact average 505, got %d", got)
	}

	// Out-of-range percentiles are rejected
	if got := h.Percentile(101); got != 0 {
		t.Errorf("Expected 0 for invalid percentile, got %d", got)
	}
	if got := h.Percentile(-1); got != 0 {
		t.Errorf("Expected 0 for negative percentile, got %d", got)
	}
}

// TestSizeHistogramOverflow tests that oversized blobs land in the overflow
// bucket and report twice the top boundary
func TestSizeHistogramOverflow(t *testing.T) {
	h := NewSizeHistogram()

	top := h.boundaries[len(h.boundaries)-1]

	h.Observe(top)     // exactly the top boundary, still a regular bucket
	h.Observe(top + 1) // one byte more lands in the overflow bucket

	if got := h.Percentile(100); got != top*2 {
		t.Errorf("Expected overflow estimate %d, got %d", top*2, got)
	}
}

// TestSizeHistogramDistribution tests the per-bucket percentages
func TestSizeHistogramDistribution(t *testing.T) {
	h := NewSizeHistogram()

	h.Observe(10)   // first bucket
	h.Observe(10)   // first bucket
	h.Observe(100)  // third bucket (64B < size <= 256B)
	h.Observe(1000) // fourth bucket (256B < size <= 1KB)

	boundaries, percentages := h.Distribution()

	if len(percentages) != len(boundaries)+1 {
		t.Fatalf("Expected %d percentage buckets (one extra for overflow), got %d",
			len(boundaries)+1, len(percentages))
	}

	if percentages[0] != 50 {
		t.Errorf("Expected 50%% in first bucket, got %f", percentages[0])
	}
	if percentages[2] != 25 {
		t.Errorf("Expected 25%% in third bucket, got %f", percentages[2])
	}
	if percentages[3] != 25 {
		t.Errorf("Expected 25%% in fourth bucket, got %f", percentages[3])
	}
}

// TestSizeHistogramReset tests that Reset clears all samples
func TestSizeHistogramReset(t *testing.T) {
	h := NewSizeHistogram()

	h.Observe(10)
	h.Observe(100)
	h.Reset()

	if h.Count() != 0 {
		t.Errorf("Expected count 0 after Reset, got %d", h.Count())
	}
	if h.Average() != 0 {
		t.Errorf("Expected average 0 after Reset, got %d", h.Average())
	}
	if h.Median() != 0 {
		t.Errorf("Expected median 0 after Reset, got %d", h.Median())
	}
}

// TestSizeHistogramConcurrent tests concurrent observation
func TestSizeHistogramConcurrent(t *testing.T) {
	h := NewSizeHistogram()

	numWorkers := 8
	samplesPerWorker := 1000

	var wg sync.WaitGroup
	wg.Add(numWorkers)

	for w := 0; w < numWorkers; w++ {
		go func(workerId int) {
			defer wg.Done()
			for i := 0; i < samplesPerWorker; i++ {
				h.Observe(workerId*100 + i%100)
			}
		}(w)
	}

	wg.Wait()

	if got := h.Count(); got != int64(numWorkers*samplesPerWorker) {
		t.Errorf("Expected %d samples, got %d", numWorkers*samplesPerWorker, got)
	}
}
