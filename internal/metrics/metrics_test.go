package metrics

import (
	"math"
	"testing"
	"time"
)

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestHistogram_Snapshot(t *testing.T) {
	h := NewHistogram(10)
	for i := 1; i <= 5; i++ {
		h.Record(time.Duration(i) * time.Millisecond)
	}

	s := h.Snapshot()
	if s.Count != 5 {
		t.Errorf("Count = %d, want 5", s.Count)
	}
	if !approx(s.Mean, 3) || !approx(s.P50, 3) {
		t.Errorf("Mean = %v, P50 = %v, want 3 and 3", s.Mean, s.P50)
	}
	if !approx(s.Min, 1) || !approx(s.Max, 5) {
		t.Errorf("Min = %v, Max = %v, want 1 and 5", s.Min, s.Max)
	}
}

func TestHistogram_RingOverwritesOldest(t *testing.T) {
	h := NewHistogram(3)
	for i := 1; i <= 5; i++ {
		h.Record(time.Duration(i) * time.Millisecond)
	}

	s := h.Snapshot()
	if s.Count != 3 {
		t.Errorf("Count = %d, want 3", s.Count)
	}
	if !approx(s.Min, 3) || !approx(s.Max, 5) {
		t.Errorf("Min = %v, Max = %v, want 3 and 5", s.Min, s.Max)
	}

	h.Reset()
	if h.Count() != 0 {
		t.Errorf("Count() after Reset = %d, want 0", h.Count())
	}
	if got := h.Snapshot(); got != (LatencyStats{}) {
		t.Errorf("Snapshot() after Reset = %+v, want zero", got)
	}
}

func TestGenerationMetrics_Stats(t *testing.T) {
	m := NewGenerationMetrics()
	m.Generations.Add(2)
	m.Completed.Add(1)
	m.Partial.Add(1)
	m.RecordCandidate(10*time.Millisecond, true)
	m.RecordCandidate(20*time.Millisecond, true)
	m.RecordCandidate(30*time.Millisecond, true)
	m.RecordCandidate(40*time.Millisecond, false)

	stats := m.GetStats()
	if stats.Generations != 2 {
		t.Errorf("Generations = %d, want 2", stats.Generations)
	}
	if stats.CandidatesTried != 4 || stats.CandidatesFailed != 1 {
		t.Errorf("CandidatesTried = %d, CandidatesFailed = %d, want 4 and 1", stats.CandidatesTried, stats.CandidatesFailed)
	}
	if !approx(stats.CandidateYield, 75) {
		t.Errorf("CandidateYield = %v, want 75", stats.CandidateYield)
	}
	if stats.EnrichLatency.Count != 4 {
		t.Errorf("EnrichLatency.Count = %d, want 4", stats.EnrichLatency.Count)
	}

	m.Reset()
	stats = m.GetStats()
	if stats.Generations != 0 || stats.CandidateYield != 0 || stats.EnrichLatency.Count != 0 {
		t.Errorf("GetStats() after Reset = %+v, want zero counters", stats)
	}
}
