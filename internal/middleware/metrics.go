package middleware

import (
	"encoding/json"
	"net/http"
	"runtime"
	"sync/atomic"
	"time"
)

// Metrics stores application counters
type Metrics struct {
	RequestsTotal   uint64
	RequestsFailed  uint64
	UploadsTotal    uint64
	AnalysesTotal   uint64
	AnalysesRunning uint64
	AnalysesFailed  uint64
	StartTime       time.Time
}

var globalMetrics = &Metrics{
	StartTime: time.Now(),
}

func IncrementRequests() {
	atomic.AddUint64(&globalMetrics.RequestsTotal, 1)
}

func IncrementRequestsFailed() {
	atomic.AddUint64(&globalMetrics.RequestsFailed, 1)
}

func IncrementUploads() {
	atomic.AddUint64(&globalMetrics.UploadsTotal, 1)
}

func IncrementAnalyses() {
	atomic.AddUint64(&globalMetrics.AnalysesTotal, 1)
}

func IncrementAnalysesRunning() {
	atomic.AddUint64(&globalMetrics.AnalysesRunning, 1)
}

func DecrementAnalysesRunning() {
	atomic.AddUint64(&globalMetrics.AnalysesRunning, ^uint64(0))
}

func IncrementAnalysesFailed() {
	atomic.AddUint64(&globalMetrics.AnalysesFailed, 1)
}

// MetricsHandler serves the counters as JSON
func MetricsHandler(w http.ResponseWriter, r *http.Request) {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	body := map[string]any{
		"requests_total":   atomic.LoadUint64(&globalMetrics.RequestsTotal),
		"requests_failed":  atomic.LoadUint64(&globalMetrics.RequestsFailed),
		"uploads_total":    atomic.LoadUint64(&globalMetrics.UploadsTotal),
		"analyses_total":   atomic.LoadUint64(&globalMetrics.AnalysesTotal),
		"analyses_running": atomic.LoadUint64(&globalMetrics.AnalysesRunning),
		"analyses_failed":  atomic.LoadUint64(&globalMetrics.AnalysesFailed),
		"uptime_seconds":   time.Since(globalMetrics.StartTime).Seconds(),
		"goroutines":       runtime.NumGoroutine(),
		"heap_alloc_bytes": mem.HeapAlloc,
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(body)
}
