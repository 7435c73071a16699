// Package telemetry records what the game engine does: cache hits, scoring
// paths taken, fallbacks and load durations.
package telemetry

import (
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

type (
	Counter string
	Timing  string
)

const (
	CacheHit          Counter = "cache_hit"
	CacheMiss         Counter = "cache_miss"
	ExactMatch        Counter = "exact_match"
	SemanticScore     Counter = "semantic_score"
	HeuristicFallback Counter = "heuristic_fallback"
	ComputeError      Counter = "compute_error"
	ResourceFallback  Counter = "resource_fallback"
	ModelFailure      Counter = "model_failure"
)

const (
	ModelLoad      Timing = "model_load"
	WarmUp         Timing = "warm_up"
	DictionaryLoad Timing = "dictionary_load"
)

// Observer receives engine events. Implementations must be safe for concurrent use.
type Observer interface {
	Inc(Counter)
	Observe(Timing, time.Duration)
}

// Nop discards every event.
type Nop struct{}

func (Nop) Inc(Counter)                   {}
func (Nop) Observe(Timing, time.Duration) {}

// OrNop returns o, or Nop when o is nil.
func OrNop(o Observer) Observer {
	if o == nil {
		return Nop{}
	}
	return o
}

// Multi passes every event to each of its observers, nil entries are skipped.
type Multi []Observer

func (m Multi) Inc(name Counter) {
	for _, o := range m {
		OrNop(o).Inc(name)
	}
}

func (m Multi) Observe(name Timing, d time.Duration) {
	for _, o := range m {
		OrNop(o).Observe(name, d)
	}
}

// Snapshot is a point in time copy of a Counters.
type Snapshot struct {
	Counters map[Counter]int64 `json:"counters"`
	Timings  map[Timing]string `json:"timings"`
}

// Counters keeps the total of every counter and the last duration of every timing.
type Counters struct {
	mu      sync.Mutex
	counts  map[Counter]int64
	timings map[Timing]time.Duration
}

func NewCounters() *Counters {
	return &Counters{
		counts:  make(map[Counter]int64),
		timings: make(map[Timing]time.Duration),
	}
}

func (c *Counters) Inc(name Counter) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.counts[name]++
}

func (c *Counters) Observe(name Timing, d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.timings[name] = d
}

// Count returns the current value of a counter.
func (c *Counters) Count(name Counter) int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.counts[name]
}

func (c *Counters) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := Snapshot{
		Counters: make(map[Counter]int64, len(c.counts)),
		Timings:  make(map[Timing]string, len(c.timings)),
	}
	for k, v := range c.counts {
		s.Counters[k] = v
	}
	for k, v := range c.timings {
		s.Timings[k] = v.String()
	}
	return s
}

// Logged writes every event to the global zerolog logger before passing it on.
type Logged struct {
	Next Observer
}

func (l Logged) Inc(name Counter) {
	log.Debug().Str("counter", string(name)).Msg("telemetry")
	OrNop(l.Next).Inc(name)
}

func (l Logged) Observe(name Timing, d time.Duration) {
	log.Info().Str("timing", string(name)).Dur("duration", d).Msg("telemetry")
	OrNop(l.Next).Observe(name, d)
}
