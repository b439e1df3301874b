package observability

import (
	"sync"
	"sync/atomic"
)

// StatsSnapshot is a point-in-time view of the in-process counters,
// exposed at /api/stats.
type StatsSnapshot struct {
	Aggregations   uint64            `json:"aggregations"`
	CacheHits      uint64            `json:"cache_hits"`
	CacheMisses    uint64            `json:"cache_misses"`
	JobsCollected  uint64            `json:"jobs_collected"`
	ErrorsTotal    uint64            `json:"errors_total"`
	JobsBySource   map[string]uint64 `json:"jobs_by_source,omitempty"`
	ErrorsByType   map[string]uint64 `json:"errors_by_type,omitempty"`
	ErrorsBySource map[string]uint64 `json:"errors_by_source,omitempty"`
}

var (
	aggregations  uint64
	cacheHits     uint64
	cacheMisses   uint64
	jobsCollected uint64
	errorsTotal   uint64

	statsMu        sync.Mutex
	jobsBySource   = map[string]uint64{}
	errorsByType   = map[string]uint64{}
	errorsBySource = map[string]uint64{}
)

func IncAggregation() {
	atomic.AddUint64(&aggregations, 1)
}

func IncCacheHit() {
	atomic.AddUint64(&cacheHits, 1)
}

func IncCacheMiss() {
	atomic.AddUint64(&cacheMisses, 1)
}

func AddJobs(source string, n int) {
	if n <= 0 {
		return
	}
	atomic.AddUint64(&jobsCollected, uint64(n))
	statsMu.Lock()
	jobsBySource[source] += uint64(n)
	statsMu.Unlock()
}

func IncError(errType, source string) {
	if errType == "" {
		errType = "unknown"
	}
	if source == "" {
		source = "unknown"
	}
	atomic.AddUint64(&errorsTotal, 1)
	statsMu.Lock()
	errorsByType[errType]++
	errorsBySource[source]++
	statsMu.Unlock()
}

func Snapshot() StatsSnapshot {
	statsMu.Lock()
	jobsCopy := copyMap(jobsBySource)
	errTypeCopy := copyMap(errorsByType)
	errSourceCopy := copyMap(errorsBySource)
	statsMu.Unlock()

	return StatsSnapshot{
		Aggregations:   atomic.LoadUint64(&aggregations),
		CacheHits:      atomic.LoadUint64(&cacheHits),
		CacheMisses:    atomic.LoadUint64(&cacheMisses),
		JobsCollected:  atomic.LoadUint64(&jobsCollected),
		ErrorsTotal:    atomic.LoadUint64(&errorsTotal),
		JobsBySource:   jobsCopy,
		ErrorsByType:   errTypeCopy,
		ErrorsBySource: errSourceCopy,
	}
}

func copyMap(src map[string]uint64) map[string]uint64 {
	if len(src) == 0 {
		return map[string]uint64{}
	}
	out := make(map[string]uint64, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}
