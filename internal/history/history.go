package history

import (
	"sync"
	"time"

	"goldwatch/internal/model"
)

// RetentionWindow is how far back price samples are kept.
const RetentionWindow = 7 * 24 * time.Hour

// Store keeps a rolling window of price samples per instrument.
// Samples are appended in fetch order, so each sequence stays ordered by
// timestamp ascending; pruning only ever removes a prefix.
type Store struct {
	mu      sync.RWMutex
	samples map[model.Instrument][]model.HistorySample
}

// NewStore creates a Store with an empty sequence for every supported instrument.
func NewStore() *Store {
	samples := make(map[model.Instrument][]model.HistorySample, len(model.Instruments))
	for _, inst := range model.Instruments {
		samples[inst] = nil
	}
	return &Store{samples: samples}
}

// Append records a price sample at the tail, then drops every sample older
// than the retention window relative to now.
func (s *Store) Append(inst model.Instrument, price float64, now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	seq := append(s.samples[inst], model.HistorySample{Price: price, Timestamp: now})

	cutoff := now.Add(-RetentionWindow)
	start := 0
	for start < len(seq) && seq[start].Timestamp.Before(cutoff) {
		start++
	}
	s.samples[inst] = seq[start:]
}

// Oldest returns the first retained sample for an instrument.
func (s *Store) Oldest(inst model.Instrument) (model.HistorySample, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	seq := s.samples[inst]
	if len(seq) == 0 {
		return model.HistorySample{}, false
	}
	return seq[0], true
}

// Newest returns the most recent sample for an instrument.
func (s *Store) Newest(inst model.Instrument) (model.HistorySample, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	seq := s.samples[inst]
	if len(seq) == 0 {
		return model.HistorySample{}, false
	}
	return seq[len(seq)-1], true
}

// Len returns the number of retained samples for an instrument.
func (s *Store) Len(inst model.Instrument) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.samples[inst])
}

// Recent returns up to n of the most recent samples, oldest first.
func (s *Store) Recent(inst model.Instrument, n int) []model.HistorySample {
	s.mu.RLock()
	defer s.mu.RUnlock()
	seq := s.samples[inst]
	if len(seq) > n {
		seq = seq[len(seq)-n:]
	}
	out := make([]model.HistorySample, len(seq))
	copy(out, seq)
	return out
}
