package word

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/kodekulture/cemantix-server/internal/telemetry"
)

// StoreOptions configures a Store.
type StoreOptions struct {
	// ChunkSize is the number of dictionary lines inserted between two yields.
	ChunkSize int
	Observer  telemetry.Observer
}

// Store holds the daily word list and the validation dictionary.
//
// The daily words are loaded first and seed the dictionary, so validation
// works (against the daily list only) while the full dictionary is still
// loading or when it failed to load.
type Store struct {
	mu    sync.RWMutex
	daily []string

	dict     *Dictionary
	chunk    int
	obs      telemetry.Observer
	loaded   atomic.Bool
	done     chan struct{}
	doneOnce sync.Once
}

func NewStore(opts StoreOptions) *Store {
	if opts.ChunkSize <= 0 {
		opts.ChunkSize = DefaultChunkSize
	}
	return &Store{
		dict:  NewDictionary(),
		chunk: opts.ChunkSize,
		obs:   telemetry.OrNop(opts.Observer),
		done:  make(chan struct{}),
	}
}

// LoadDailyWords loads the daily word list from src.
// When src is nil, unreadable, malformed or empty the embedded default list is
// used instead, the game stays playable either way.
func (s *Store) LoadDailyWords(ctx context.Context, src Source, f Format) []string {
	words, err := readWords(ctx, src, f)
	if err != nil {
		log.Warn().Err(err).Stringer("format", f).Msg("daily words unavailable, using default list")
		s.obs.Inc(telemetry.ResourceFallback)
		words = DefaultWords()
	}

	s.mu.Lock()
	s.daily = words
	s.mu.Unlock()
	s.dict.Add(words...)
	log.Info().Int("count", len(words)).Msg("daily words loaded")
	return words
}

func readWords(ctx context.Context, src Source, f Format) ([]string, error) {
	if src == nil {
		return nil, errors.New("no daily word source configured")
	}
	rc, err := src.Open(ctx)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	words, err := ParseWords(rc, f)
	if err != nil {
		return nil, err
	}
	if len(words) == 0 {
		return nil, ErrEmptyWordList
	}
	return words, nil
}

// LoadDictionary loads the validation dictionary from src in chunks.
// It blocks until the load completes and is meant to run on its own goroutine.
// A failure leaves validation working against whatever was loaded, at least
// the daily words; the returned error is informational.
func (s *Store) LoadDictionary(ctx context.Context, src Source) error {
	defer s.doneOnce.Do(func() { close(s.done) })
	if src == nil {
		log.Info().Msg("no dictionary source configured, validating against daily words only")
		return nil
	}

	start := time.Now()
	rc, err := src.Open(ctx)
	if err != nil {
		log.Warn().Err(err).Stringer("source", src).Msg("dictionary unavailable, validating against daily words only")
		s.obs.Inc(telemetry.ResourceFallback)
		return err
	}
	defer rc.Close()

	n, err := s.dict.Load(ctx, rc, s.chunk)
	if err != nil {
		log.Warn().Err(err).Int("loaded", n).Stringer("source", src).Msg("dictionary partially loaded")
		s.obs.Inc(telemetry.ResourceFallback)
		return err
	}
	s.loaded.Store(true)
	s.obs.Observe(telemetry.DictionaryLoad, time.Since(start))
	log.Info().Int("count", n).Dur("took", time.Since(start)).Msg("dictionary loaded")
	return nil
}

// Words returns the daily word list.
func (s *Store) Words() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.daily
}

// IsValidWord reports whether w, once normalized, is a known word.
func (s *Store) IsValidWord(w string) bool {
	return s.dict.Contains(w)
}

// DictionaryLoaded reports whether the full dictionary finished loading successfully.
func (s *Store) DictionaryLoaded() bool {
	return s.loaded.Load()
}

// DictionaryDone is closed once LoadDictionary returned, successfully or not.
func (s *Store) DictionaryDone() <-chan struct{} {
	return s.done
}
