package embedding

import (
	"context"
	"errors"
	"io"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	"github.com/kodekulture/cemantix-server/game/word"
	"github.com/kodekulture/cemantix-server/internal/telemetry"
	"github.com/kodekulture/cemantix-server/repository"
)

const (
	// DefaultBatchSize is the number of words embedded per warm-up request.
	DefaultBatchSize = 32
	// EmbedTimeout bounds one on-demand embedding shared by concurrent callers.
	EmbedTimeout = 30 * time.Second
)

// State of the model lifecycle.
type State int

const (
	NotStarted State = iota
	Loading
	Ready
	// Failed is terminal, a failed or cancelled load is never retried.
	Failed
)

func (s State) String() string {
	switch s {
	case NotStarted:
		return "not_started"
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	}
	return "unknown"
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

type ProviderConfig struct {
	// Strategies are tried in order until one acquires a backend.
	Strategies []Strategy
	// Store persists vectors across restarts, optional.
	Store     repository.Vectors
	BatchSize int
	Observer  telemetry.Observer
}

// Provider acquires an embedding backend once and serves cached vectors.
type Provider struct {
	strategies []Strategy
	batch      int
	obs        telemetry.Observer
	cache      *Cache
	group      singleflight.Group

	mu      sync.RWMutex
	state   State
	backend Backend
	done    chan struct{}
}

func NewProvider(cfg ProviderConfig) *Provider {
	batch := cfg.BatchSize
	if batch <= 0 {
		batch = DefaultBatchSize
	}
	return &Provider{
		strategies: cfg.Strategies,
		batch:      batch,
		obs:        telemetry.OrNop(cfg.Observer),
		cache:      NewCache(cfg.Store),
		done:       make(chan struct{}),
	}
}

// Start begins loading in the background and returns immediately.
// Only the first call has an effect.
func (p *Provider) Start(ctx context.Context, words []string) {
	p.mu.Lock()
	if p.state != NotStarted {
		p.mu.Unlock()
		return
	}
	p.state = Loading
	p.mu.Unlock()

	go p.load(ctx, words)
}

func (p *Provider) load(ctx context.Context, words []string) {
	start := time.Now()
	b, err := p.acquire(ctx)
	if err != nil {
		log.Err(err).Caller().Msg("no embedding backend could be acquired, scoring stays heuristic")
		p.obs.Inc(telemetry.ModelFailure)
		p.finish(Failed)
		return
	}
	p.obs.Observe(telemetry.ModelLoad, time.Since(start))
	log.Info().Str("backend", b.Name()).Int("dimension", b.Dimension()).Dur("took", time.Since(start)).Msg("embedding backend acquired")

	p.mu.Lock()
	p.backend = b
	p.mu.Unlock()

	start = time.Now()
	p.warm(ctx, b, words)
	if ctx.Err() != nil {
		log.Warn().Err(ctx.Err()).Msg("embedding warm-up cancelled")
		p.finish(Failed)
		return
	}
	p.obs.Observe(telemetry.WarmUp, time.Since(start))
	p.finish(Ready)
}

func (p *Provider) acquire(ctx context.Context) (Backend, error) {
	if len(p.strategies) == 0 {
		return nil, ErrNoStrategy
	}
	var errList []error
	for _, s := range p.strategies {
		b, err := s.Acquire(ctx)
		if err == nil {
			return b, nil
		}
		log.Warn().Err(err).Str("strategy", s.Name).Msg("embedding strategy failed")
		errList = append(errList, err)
		if ctx.Err() != nil {
			break
		}
	}
	return nil, errors.Join(errList...)
}

// warm loads persisted vectors, then embeds the words still missing in batches.
// Batch failures are logged and skipped, those words are embedded on demand later.
func (p *Provider) warm(ctx context.Context, b Backend, words []string) {
	n, err := p.cache.Warm(ctx, b.Name(), b.Dimension())
	if err != nil {
		log.Warn().Err(err).Str("backend", b.Name()).Msg("failed to load persisted vectors")
	} else if n > 0 {
		log.Info().Int("count", n).Str("backend", b.Name()).Msg("persisted vectors loaded")
	}

	missing := make([]string, 0, len(words))
	seen := make(map[string]struct{}, len(words))
	for _, w := range words {
		key := word.Normalize(strings.TrimSpace(w))
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		if _, ok := p.cache.Get(key); !ok {
			missing = append(missing, key)
		}
	}

	for i := 0; i < len(missing); i += p.batch {
		if ctx.Err() != nil {
			return
		}
		batch := missing[i:min(i+p.batch, len(missing))]
		vecs, err := b.Embed(ctx, batch, DefaultOptions)
		if err == nil && len(vecs) != len(batch) {
			err = errors.New("backend returned a different number of vectors")
		}
		if err != nil {
			log.Warn().Err(err).Int("batch", len(batch)).Msg("warm-up batch failed")
			p.obs.Inc(telemetry.ComputeError)
		} else {
			m := make(map[string][]float32, len(batch))
			for j, w := range batch {
				m[w] = vecs[j]
			}
			p.cache.PutAll(ctx, m)
		}
		runtime.Gosched()
	}
}

func (p *Provider) finish(s State) {
	p.mu.Lock()
	p.state = s
	p.mu.Unlock()
	close(p.done)
}

// Embed returns the vector of w, computing it when it is not cached.
// Concurrent calls for the same word share one computation.
func (p *Provider) Embed(ctx context.Context, w string) ([]float32, error) {
	key := word.Normalize(strings.TrimSpace(w))
	if v, ok := p.cache.Get(key); ok {
		p.obs.Inc(telemetry.CacheHit)
		return v, nil
	}
	p.obs.Inc(telemetry.CacheMiss)

	p.mu.RLock()
	b := p.backend
	p.mu.RUnlock()
	if b == nil {
		return nil, ErrUnavailable
	}

	// The computation outlives the caller that started it, every caller
	// only stops waiting when its own ctx ends.
	ch := p.group.DoChan(key, func() (any, error) {
		if v, ok := p.cache.Get(key); ok {
			return v, nil
		}
		ectx, cancel := context.WithTimeout(context.WithoutCancel(ctx), EmbedTimeout)
		defer cancel()
		v, err := embedOne(ectx, b, key)
		if err != nil {
			return nil, err
		}
		p.cache.Put(ectx, key, v)
		return v, nil
	})
	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, &ComputeError{Word: key, Err: res.Err}
		}
		return res.Val.([]float32), nil
	case <-ctx.Done():
		return nil, &ComputeError{Word: key, Err: ctx.Err()}
	}
}

// Cached returns the vector of w without computing it.
func (p *Provider) Cached(w string) ([]float32, bool) {
	return p.cache.Get(word.Normalize(strings.TrimSpace(w)))
}

func (p *Provider) State() State {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.state
}

func (p *Provider) Ready() bool   { return p.State() == Ready }
func (p *Provider) Loading() bool { return p.State() == Loading }

// Backend returns the name of the acquired backend, or "" when there is none.
func (p *Provider) Backend() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.backend == nil {
		return ""
	}
	return p.backend.Name()
}

// CacheSize returns the number of cached vectors.
func (p *Provider) CacheSize() int {
	return p.cache.Len()
}

// Done is closed once the load resolves, whatever the outcome.
func (p *Provider) Done() <-chan struct{} {
	return p.done
}

// Wait blocks until the load resolves and reports whether the model is ready.
// It returns false immediately when Start was never called.
func (p *Provider) Wait(ctx context.Context) bool {
	if p.State() == NotStarted {
		return false
	}
	select {
	case <-p.done:
		return p.Ready()
	case <-ctx.Done():
		return false
	}
}

// Close releases the backend when it holds resources.
func (p *Provider) Close() error {
	p.mu.RLock()
	b := p.backend
	p.mu.RUnlock()
	if c, ok := b.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
