// Package stats keeps bounded rolling counters of engine activity, keyed by
// calendar day and route or airport. It is an operational-visibility aid:
// bucket eviction is oldest-inserted-first, so old history is approximate
// by design.
package stats

import (
	"sync"
	"time"
)

// Event summarizes one orchestrator invocation.
type Event struct {
	Day       string // 2006-01-02; filled from now() when empty
	Key       string // route or airport key
	Success   bool
	LatencyMS int64
	Source    string
	Action    string
}

type bucket struct {
	day            string
	key            string
	requests       int
	successes      int
	totalLatencyMS int64
	sources        map[string]int
	actions        map[string]int
}

// Aggregator holds at most maxBuckets (day, key) buckets.
type Aggregator struct {
	mu         sync.Mutex
	buckets    map[string]*bucket
	order      []string // insertion order, oldest first
	maxBuckets int

	now func() time.Time
}

// New creates an aggregator capped at maxBuckets (default 100).
func New(maxBuckets int) *Aggregator {
	if maxBuckets <= 0 {
		maxBuckets = 100
	}
	return &Aggregator{
		buckets:    make(map[string]*bucket),
		maxBuckets: maxBuckets,
		now:        time.Now,
	}
}

// Record folds an event into its (day, key) bucket, creating it lazily and
// evicting the oldest-inserted bucket past the ceiling. Never blocks beyond
// the map mutex and never fails.
func (a *Aggregator) Record(ev Event) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if ev.Day == "" {
		ev.Day = a.now().Format("2006-01-02")
	}
	id := ev.Day + "|" + ev.Key

	b, ok := a.buckets[id]
	if !ok {
		if len(a.buckets) >= a.maxBuckets {
			oldest := a.order[0]
			a.order = a.order[1:]
			delete(a.buckets, oldest)
		}
		b = &bucket{
			day:     ev.Day,
			key:     ev.Key,
			sources: make(map[string]int),
			actions: make(map[string]int),
		}
		a.buckets[id] = b
		a.order = append(a.order, id)
	}

	b.requests++
	if ev.Success {
		b.successes++
	}
	b.totalLatencyMS += ev.LatencyMS
	if ev.Source != "" {
		b.sources[ev.Source]++
	}
	if ev.Action != "" {
		b.actions[ev.Action]++
	}
}

// Summary is a counter roll-up; rates are derived, raw requests are never
// retained.
type Summary struct {
	Requests     int            `json:"requests"`
	SuccessRate  float64        `json:"success_rate"`
	AvgLatencyMS float64        `json:"avg_latency_ms"`
	Sources      map[string]int `json:"sources"`
	Actions      map[string]int `json:"actions"`
	Keys         int            `json:"keys"`
}

// Snapshot splits the aggregate view into today and everything older.
type Snapshot struct {
	Today      Summary `json:"today"`
	Historical Summary `json:"historical"`
	Buckets    int     `json:"buckets"`
}

func newSummary() Summary {
	return Summary{Sources: make(map[string]int), Actions: make(map[string]int)}
}

func (s *Summary) add(b *bucket) {
	s.Requests += b.requests
	s.Keys++
	for src, n := range b.sources {
		s.Sources[src] += n
	}
	for act, n := range b.actions {
		s.Actions[act] += n
	}
}

// Snapshot computes success rate and average latency from the counters.
func (a *Aggregator) Snapshot() Snapshot {
	a.mu.Lock()
	defer a.mu.Unlock()

	today := a.now().Format("2006-01-02")
	snap := Snapshot{Today: newSummary(), Historical: newSummary(), Buckets: len(a.buckets)}

	var todaySucc, histSucc int
	var todayLat, histLat int64
	for _, b := range a.buckets {
		if b.day == today {
			snap.Today.add(b)
			todaySucc += b.successes
			todayLat += b.totalLatencyMS
		} else {
			snap.Historical.add(b)
			histSucc += b.successes
			histLat += b.totalLatencyMS
		}
	}

	if snap.Today.Requests > 0 {
		snap.Today.SuccessRate = float64(todaySucc) / float64(snap.Today.Requests)
		snap.Today.AvgLatencyMS = float64(todayLat) / float64(snap.Today.Requests)
	}
	if snap.Historical.Requests > 0 {
		snap.Historical.SuccessRate = float64(histSucc) / float64(snap.Historical.Requests)
		snap.Historical.AvgLatencyMS = float64(histLat) / float64(snap.Historical.Requests)
	}

	return snap
}

// Size returns the current bucket count.
func (a *Aggregator) Size() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.buckets)
}

// Has reports whether a (day, key) bucket is present.
func (a *Aggregator) Has(day, key string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	_, ok := a.buckets[day+"|"+key]
	return ok
}
