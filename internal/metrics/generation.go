// Package metrics collects in-process counters and latency histograms for party generation.
package metrics

import (
	"sync"
	"sync/atomic"
	"time"
)

// GenerationMetrics tracks party generation outcomes and latencies.
type GenerationMetrics struct {
	// Latency histograms (milliseconds)
	SuggestLatency  *Histogram
	EnrichLatency   *Histogram
	GuideLatency    *Histogram
	EndToEndLatency *Histogram

	Generations      atomic.Uint64
	Completed        atomic.Uint64
	Partial          atomic.Uint64
	Failed           atomic.Uint64
	RateLimited      atomic.Uint64
	CandidatesTried  atomic.Uint64
	CandidatesFailed atomic.Uint64
	GuideFallbacks   atomic.Uint64

	startTime time.Time
	mu        sync.RWMutex
}

// NewGenerationMetrics creates a collector.
func NewGenerationMetrics() *GenerationMetrics {
	return &GenerationMetrics{
		SuggestLatency:  NewHistogram(1000),
		EnrichLatency:   NewHistogram(5000),
		GuideLatency:    NewHistogram(1000),
		EndToEndLatency: NewHistogram(1000),
		startTime:       time.Now(),
	}
}

// RecordCandidate counts one enrichment attempt and its outcome.
func (m *GenerationMetrics) RecordCandidate(d time.Duration, ok bool) {
	m.CandidatesTried.Add(1)
	if !ok {
		m.CandidatesFailed.Add(1)
	}
	m.EnrichLatency.Record(d)
}

// LatencyStats summarises one histogram.
type LatencyStats struct {
	Mean  float64 `json:"mean"`
	P50   float64 `json:"p50"`
	P95   float64 `json:"p95"`
	P99   float64 `json:"p99"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Count int     `json:"count"`
}

// GenerationStats is a point-in-time snapshot.
type GenerationStats struct {
	SuggestLatency  LatencyStats `json:"suggestLatency"`
	EnrichLatency   LatencyStats `json:"enrichLatency"`
	GuideLatency    LatencyStats `json:"guideLatency"`
	EndToEndLatency LatencyStats `json:"endToEndLatency"`

	Generations      uint64  `json:"generations"`
	Completed        uint64  `json:"completed"`
	Partial          uint64  `json:"partial"`
	Failed           uint64  `json:"failed"`
	RateLimited      uint64  `json:"rateLimited"`
	CandidatesTried  uint64  `json:"candidatesTried"`
	CandidatesFailed uint64  `json:"candidatesFailed"`
	CandidateYield   float64 `json:"candidateYield"` // percentage of candidates that became members
	GuideFallbacks   uint64  `json:"guideFallbacks"`

	Uptime string `json:"uptime"`
}

// GetStats returns a snapshot of the current statistics.
func (m *GenerationMetrics) GetStats() *GenerationStats {
	m.mu.RLock()
	defer m.mu.RUnlock()

	tried := m.CandidatesTried.Load()
	failed := m.CandidatesFailed.Load()
	yield := 0.0
	if tried > 0 {
		yield = float64(tried-failed) / float64(tried) * 100
	}

	return &GenerationStats{
		SuggestLatency:   m.SuggestLatency.Snapshot(),
		EnrichLatency:    m.EnrichLatency.Snapshot(),
		GuideLatency:     m.GuideLatency.Snapshot(),
		EndToEndLatency:  m.EndToEndLatency.Snapshot(),
		Generations:      m.Generations.Load(),
		Completed:        m.Completed.Load(),
		Partial:          m.Partial.Load(),
		Failed:           m.Failed.Load(),
		RateLimited:      m.RateLimited.Load(),
		CandidatesTried:  tried,
		CandidatesFailed: failed,
		CandidateYield:   yield,
		GuideFallbacks:   m.GuideFallbacks.Load(),
		Uptime:           time.Since(m.startTime).Round(time.Second).String(),
	}
}

// Reset clears all metrics.
func (m *GenerationMetrics) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.SuggestLatency.Reset()
	m.EnrichLatency.Reset()
	m.GuideLatency.Reset()
	m.EndToEndLatency.Reset()

	for _, c := range []*atomic.Uint64{
		&m.Generations, &m.Completed, &m.Partial, &m.Failed, &m.RateLimited,
		&m.CandidatesTried, &m.CandidatesFailed, &m.GuideFallbacks,
	} {
		c.Store(0)
	}
	m.startTime = time.Now()
}
