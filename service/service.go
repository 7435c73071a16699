package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/lordvidex/errs/v2"
	"github.com/rs/zerolog/log"

	"github.com/kodekulture/cemantix-server/game"
	"github.com/kodekulture/cemantix-server/game/embedding"
	"github.com/kodekulture/cemantix-server/game/word"
	"github.com/kodekulture/cemantix-server/internal/telemetry"
	"github.com/kodekulture/cemantix-server/repository"
	"github.com/kodekulture/cemantix-server/service/hasher"
)

const (
	// DateLayout is the ISO layout of the dates the game is played on.
	DateLayout = "2006-01-02"
	// DisposeTimeout bounds how long Dispose waits for the model load to stop.
	DisposeTimeout = 5 * time.Second
)

var (
	ErrEmptyGuess   = errs.B().Code(errs.InvalidArgument).Msg("Escribe una palabra").Err()
	ErrInvalidWord  = errs.B().Code(errs.InvalidArgument).Msg("Palabra no válida").Err()
	ErrInvalidDate  = errs.B().Code(errs.InvalidArgument).Msg("invalid date, expected YYYY-MM-DD").Err()
	ErrDisposed     = errs.B().Code(errs.Internal).Msg("service disposed").Err()
	ErrAdminDisable = errs.B().Code(errs.Unauthenticated).Msg("admin access is disabled").Err()
)

// Options configures a Service. Every source is optional.
type Options struct {
	DailyWords  word.Source
	DailyFormat word.Format
	Dictionary  word.Source
	Strategies  []embedding.Strategy
	Vectors     repository.Vectors
	EmbedBatch  int
	DictChunk   int
	// AdminHash is the bcrypt hash of the admin password, empty disables admin access.
	AdminHash string
	// Observer receives every engine event next to the counters served by Stats.
	Observer telemetry.Observer
	Now      func() time.Time
}

// Hasher checks the admin password.
type Hasher interface {
	Compare(hashed, original string) error
}

// Service is the scoring and word selection engine.
type Service struct {
	opts     Options
	store    *word.Store
	provider *embedding.Provider
	counters *telemetry.Counters
	obs      telemetry.Observer
	hasher   Hasher
	now      func() time.Time

	// ctx bounds the background loads, it is cancelled by Dispose.
	ctx    context.Context
	cancel func()

	initOnce sync.Once
	mu       sync.Mutex
	daily    game.DailySelection
}

func New(opts Options) *Service {
	counters := telemetry.NewCounters()
	obs := telemetry.Logged{Next: telemetry.Multi{counters, opts.Observer}}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Service{
		opts: opts,
		store: word.NewStore(word.StoreOptions{
			ChunkSize: opts.DictChunk,
			Observer:  obs,
		}),
		provider: embedding.NewProvider(embedding.ProviderConfig{
			Strategies: opts.Strategies,
			Store:      opts.Vectors,
			BatchSize:  opts.EmbedBatch,
			Observer:   obs,
		}),
		counters: counters,
		obs:      obs,
		hasher:   &hasher.Bcrypt{},
		now:      now,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Init loads the daily word list and starts the dictionary and model loads in
// the background. It returns as soon as the daily words are known; scoring
// works from then on, lexically until the model is ready.
func (s *Service) Init(ctx context.Context) error {
	if s.ctx.Err() != nil {
		return ErrDisposed
	}
	s.initOnce.Do(func() {
		words := s.store.LoadDailyWords(ctx, s.opts.DailyWords, s.opts.DailyFormat)
		log.Info().Int("count", len(words)).Msg("daily words loaded")

		go func() {
			if err := s.store.LoadDictionary(s.ctx, s.opts.Dictionary); err != nil {
				log.Debug().Err(err).Msg("dictionary load ended with an error")
			}
		}()
		s.provider.Start(s.ctx, words)
	})
	return nil
}

// Dispose stops the background loads at their next yield point and releases
// the model. The model load gets DisposeTimeout to stop writing vectors.
func (s *Service) Dispose() error {
	s.cancel()
	ctx, cancel := context.WithTimeout(context.Background(), DisposeTimeout)
	defer cancel()
	s.provider.Wait(ctx)
	if ctx.Err() != nil {
		log.Warn().Msg("model load still running after dispose timeout")
	}
	return s.provider.Close()
}

// Today returns the current date in DateLayout.
func (s *Service) Today() string {
	return s.now().Format(DateLayout)
}

// WordOfDay returns the word selected for date. The last selection is cached.
func (s *Service) WordOfDay(date string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.daily.Date == date && s.daily.Word != "" {
		return s.daily.Word, nil
	}
	w, err := word.Select(date, s.store.Words())
	if err != nil {
		return "", errs.WrapCode(err, errs.Internal, "no word of the day available")
	}
	s.daily = game.DailySelection{Date: date, Word: w}
	log.Debug().Str("date", date).Msg("word of the day selected")
	return w, nil
}

// IsValidWord reports whether w is in the dictionary, or in the daily list
// while the dictionary is unavailable.
func (s *Service) IsValidWord(w string) bool {
	return s.store.IsValidWord(strings.TrimSpace(w))
}

// Guess validates and scores w against the word of date. An empty date means today.
func (s *Service) Guess(ctx context.Context, date, w string) (game.Guess, error) {
	w = strings.TrimSpace(w)
	if w == "" {
		return game.Guess{}, ErrEmptyGuess
	}
	if date == "" {
		date = s.Today()
	} else if _, err := time.Parse(DateLayout, date); err != nil {
		return game.Guess{}, ErrInvalidDate
	}
	if !s.IsValidWord(w) {
		return game.Guess{}, ErrInvalidWord
	}
	target, err := s.WordOfDay(date)
	if err != nil {
		return game.Guess{}, err
	}
	return game.NewGuess(w, s.Score(ctx, w, target)), nil
}

func (s *Service) IsModelReady() bool {
	return s.provider.Ready()
}

func (s *Service) IsModelLoading() bool {
	return s.provider.Loading()
}

func (s *Service) ModelState() embedding.State {
	return s.provider.State()
}

// ModelBackend returns the name of the embedding backend in use, if any.
func (s *Service) ModelBackend() string {
	return s.provider.Backend()
}

// ModelDone is closed once the model load resolved.
func (s *Service) ModelDone() <-chan struct{} {
	return s.provider.Done()
}

// WaitForModel blocks until the model load resolves or ctx ends and reports readiness.
func (s *Service) WaitForModel(ctx context.Context) bool {
	return s.provider.Wait(ctx)
}

// Stats returns the engine counters.
func (s *Service) Stats() telemetry.Snapshot {
	return s.counters.Snapshot()
}

// Login checks the admin password.
func (s *Service) Login(_ context.Context, password string) (game.Admin, error) {
	if s.opts.AdminHash == "" {
		return game.Admin{}, ErrAdminDisable
	}
	if err := s.hasher.Compare(s.opts.AdminHash, password); err != nil {
		return game.Admin{}, err
	}
	return game.Admin{Name: "admin", LoggedAt: s.now().Unix()}, nil
}
