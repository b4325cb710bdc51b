package performance

import (
	"sync"
	"time"
)

// maxRetainedMarkers bounds the in-memory history consulted by the stats
// endpoint; older markers fall off the front.
const maxRetainedMarkers = 512

// Tracker records operation markers and keeps a bounded recent history.
type Tracker struct {
	mu      sync.Mutex
	markers []*Marker
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{}
}

// StartOperation begins tracking one operation and returns its marker.
// Callers pair this with `defer marker.Complete()`.
func (t *Tracker) StartOperation(operation string) *Marker {
	marker := &Marker{
		Operation: operation,
		StartTime: time.Now(),
	}

	t.mu.Lock()
	t.markers = append(t.markers, marker)
	if len(t.markers) > maxRetainedMarkers {
		t.markers = t.markers[len(t.markers)-maxRetainedMarkers:]
	}
	t.mu.Unlock()

	return marker
}

// RecentMarkers returns a copy of the retained marker history.
func (t *Tracker) RecentMarkers() []*Marker {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]*Marker, len(t.markers))
	copy(out, t.markers)
	return out
}

// Summary aggregates completed markers per operation.
func (t *Tracker) Summary() map[string]OperationSummary {
	t.mu.Lock()
	defer t.mu.Unlock()

	summary := make(map[string]OperationSummary)
	for _, m := range t.markers {
		if !m.Completed {
			continue
		}
		s := summary[m.Operation]
		s.Count++
		s.TotalDuration += m.Duration
		if m.Success {
			s.Successes++
		}
		if m.Duration > s.MaxDuration {
			s.MaxDuration = m.Duration
		}
		summary[m.Operation] = s
	}
	return summary
}

// OperationSummary is the aggregate view of one operation's markers.
type OperationSummary struct {
	Count         int           `json:"count"`
	Successes     int           `json:"successes"`
	TotalDuration time.Duration `json:"totalDuration"`
	MaxDuration   time.Duration `json:"maxDuration"`
}
