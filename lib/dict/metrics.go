package dict

import (
	"io"

	"github.com/VictoriaMetrics/metrics"
)

// --------------------------------------------------------------------------
// Usage Counters
// --------------------------------------------------------------------------

// dictStats bundles the usage counters of a single dictionary. Every
// dictionary owns a private metrics set, so two dictionaries in the same
// process never mix their counters.
//
// The errors counter only counts infrastructure failures (storage,
// corruption, serialization). Key-not-found results and calls on a closed
// dictionary are usage outcomes, not failures, and are left out. The deletes
// counter counts completed Delete calls, including no-ops on missing keys.
//
// The counters are cheap atomics and are maintained even when metrics are
// disabled, only WritePrometheus is gated on the flag.
type dictStats struct {
	enabled bool
	set     *metrics.Set

	gets       *metrics.Counter
	hits       *metrics.Counter
	misses     *metrics.Counter
	sets       *metrics.Counter
	deletes    *metrics.Counter
	metaReads  *metrics.Counter
	metaWrites *metrics.Counter
	errors     *metrics.Counter
}

func newDictStats(enabled bool) *dictStats {
	set := metrics.NewSet()
	return &dictStats{
		enabled:    enabled,
		set:        set,
		gets:       set.GetOrCreateCounter("pdict_gets_total"),
		hits:       set.GetOrCreateCounter("pdict_hits_total"),
		misses:     set.GetOrCreateCounter("pdict_misses_total"),
		sets:       set.GetOrCreateCounter("pdict_sets_total"),
		deletes:    set.GetOrCreateCounter("pdict_deletes_total"),
		metaReads:  set.GetOrCreateCounter("pdict_meta_reads_total"),
		metaWrites: set.GetOrCreateCounter("pdict_meta_writes_total"),
		errors:     set.GetOrCreateCounter("pdict_errors_total"),
	}
}

// WritePrometheus writes all counters in Prometheus text format, or nothing
// when metrics are disabled.
func (s *dictStats) WritePrometheus(w io.Writer) {
	if s.enabled {
		s.set.WritePrometheus(w)
	}
}
