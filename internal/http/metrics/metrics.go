package metrics

import (
	"sync"
	"time"
)

// Collector keeps cheap in-process counters exposed on /metrics.
type Collector struct {
	mu            sync.Mutex
	startedAt     time.Time
	requestsTotal int64
	byStatusClass map[string]int64
	errorsByCode  map[string]int64
	totalDuration time.Duration
}

func NewCollector() *Collector {
	return &Collector{
		startedAt:     time.Now().UTC(),
		byStatusClass: make(map[string]int64),
		errorsByCode:  make(map[string]int64),
	}
}

func (c *Collector) ObserveRequest(status int, duration time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.requestsTotal++
	c.totalDuration += duration
	c.byStatusClass[statusClass(status)]++
}

func (c *Collector) ObserveError(code string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.errorsByCode[code]++
}

type Snapshot struct {
	UptimeSeconds    int64            `json:"uptime_seconds"`
	RequestsTotal    int64            `json:"requests_total"`
	ByStatusClass    map[string]int64 `json:"requests_by_status_class"`
	ErrorsByCode     map[string]int64 `json:"errors_by_code"`
	AvgRequestMillis int64            `json:"avg_request_ms"`
}

func (c *Collector) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	snap := Snapshot{
		UptimeSeconds: int64(time.Since(c.startedAt).Seconds()),
		RequestsTotal: c.requestsTotal,
		ByStatusClass: make(map[string]int64, len(c.byStatusClass)),
		ErrorsByCode:  make(map[string]int64, len(c.errorsByCode)),
	}
	for k, v := range c.byStatusClass {
		snap.ByStatusClass[k] = v
	}
	for k, v := range c.errorsByCode {
		snap.ErrorsByCode[k] = v
	}
	if c.requestsTotal > 0 {
		snap.AvgRequestMillis = c.totalDuration.Milliseconds() / c.requestsTotal
	}
	return snap
}

func statusClass(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
