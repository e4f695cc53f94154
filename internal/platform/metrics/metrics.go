package metrics

import (
	"sync/atomic"
	"time"
)

// Collector keeps cheap in-process counters surfaced on the admin metrics
// endpoint.
type Collector struct {
	totalRequests     uint64
	errorRequests     uint64
	paystubsGenerated uint64
	pdfDownloads      uint64
	totalDurationMs   uint64
}

func New() *Collector {
	return &Collector{}
}

func (c *Collector) Record(status int, duration time.Duration) {
	atomic.AddUint64(&c.totalRequests, 1)
	if status >= 500 {
		atomic.AddUint64(&c.errorRequests, 1)
	}
	atomic.AddUint64(&c.totalDurationMs, uint64(duration.Milliseconds()))
}

func (c *Collector) RecordPaystubs(count int) {
	if count > 0 {
		atomic.AddUint64(&c.paystubsGenerated, uint64(count))
	}
}

func (c *Collector) RecordDownload() {
	atomic.AddUint64(&c.pdfDownloads, 1)
}

func (c *Collector) Snapshot() map[string]any {
	total := atomic.LoadUint64(&c.totalRequests)
	totalMs := atomic.LoadUint64(&c.totalDurationMs)
	avg := float64(0)
	if total > 0 {
		avg = float64(totalMs) / float64(total)
	}
	return map[string]any{
		"requestsTotal":     total,
		"errorsTotal":       atomic.LoadUint64(&c.errorRequests),
		"paystubsGenerated": atomic.LoadUint64(&c.paystubsGenerated),
		"pdfDownloads":      atomic.LoadUint64(&c.pdfDownloads),
		"avgDurationMs":     avg,
	}
}
