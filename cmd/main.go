package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dgraph-io/badger"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/kodekulture/cemantix-server/game/embedding"
	"github.com/kodekulture/cemantix-server/game/word"
	"github.com/kodekulture/cemantix-server/handler"
	"github.com/kodekulture/cemantix-server/handler/token"
	"github.com/kodekulture/cemantix-server/internal/config"
	"github.com/kodekulture/cemantix-server/repository"
	"github.com/kodekulture/cemantix-server/repository/badgr"
	"github.com/kodekulture/cemantix-server/repository/postgres"
	"github.com/kodekulture/cemantix-server/repository/redis"
	"github.com/kodekulture/cemantix-server/service"
	"github.com/kodekulture/cemantix-server/service/hasher"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	lvl, err := zerolog.ParseLevel(config.GetOrDefault("LOG_LEVEL", "debug"))
	if err == nil {
		zerolog.SetGlobalLevel(lvl)
		log.WithLevel(lvl).Msgf("Setting log level to %v", lvl)
	}

	// `main hash <password>` prints the bcrypt hash to put in ADMIN_PASSWORD_HASH
	if len(os.Args) == 3 && os.Args[1] == "hash" {
		h, err := (&hasher.Bcrypt{}).Hash(os.Args[2])
		if err != nil {
			log.Fatal().Err(err).Msg("failed to hash password")
		}
		fmt.Println(h)
		return
	}

	done := make(chan struct{})
	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	closers := make([]func(), 0)
	defer func() {
		for _, c := range closers {
			c()
		}
	}()

	vectors, closeVectors, err := getVectors(appCtx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open vector store")
	}
	closers = append(closers, closeVectors)

	dict, closeDict, err := getDictionarySource(appCtx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open dictionary source")
	}
	closers = append(closers, closeDict)

	format, err := word.ParseFormat(config.GetOrDefault("DAILY_WORDS_FORMAT", "plain"))
	if err != nil {
		log.Fatal().Err(err).Msg("invalid DAILY_WORDS_FORMAT")
	}

	adminHash := config.Get("ADMIN_PASSWORD_HASH")
	if adminHash != "" {
		if err := (&hasher.Bcrypt{}).Check(adminHash); err != nil {
			log.Fatal().Err(err).Msg("invalid ADMIN_PASSWORD_HASH")
		}
	}

	srv := service.New(service.Options{
		DailyWords:  getSource("DAILY_WORDS_PATH", "DAILY_WORDS_URL"),
		DailyFormat: format,
		Dictionary:  dict,
		Strategies:  getStrategies(),
		Vectors:     vectors,
		EmbedBatch:  config.GetInt("EMBED_BATCH", embedding.DefaultBatchSize),
		DictChunk:   config.GetInt("DICT_CHUNK", word.DefaultChunkSize),
		AdminHash:   adminHash,
	})
	if err = srv.Init(appCtx); err != nil {
		log.Fatal().Err(err).Msg("failed to start game engine")
	}

	tokener, err := token.New([]byte(config.Get("PASETO_KEY")), "")
	if err != nil {
		log.Fatal().Err(err).Msg("invalid PASETO_KEY")
	}
	h := handler.New(srv, tokener)
	go shutdown(h, srv, done)

	port := config.GetOrDefault("PORT", "8080")
	log.Info().Str("port", port).Msg("server started")
	if err = h.Start(port); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("server stopped")
	}
	<-done
}

// getSource prefers a local file over a URL, nil means the built-in default.
func getSource(pathKey, urlKey string) word.Source {
	if p := config.Get(pathKey); p != "" {
		return word.FileSource(p)
	}
	if u := config.Get(urlKey); u != "" {
		return word.NewURLSource(u, config.GetDuration("SOURCE_TIMEOUT", 30*time.Second))
	}
	return nil
}

func getDictionarySource(ctx context.Context) (word.Source, func(), error) {
	if src := getSource("DICTIONARY_PATH", "DICTIONARY_URL"); src != nil {
		return src, func() {}, nil
	}
	url := config.Get("POSTGRES_URL")
	if url == "" {
		return nil, func() {}, nil
	}
	pool, err := getConnection(ctx, url)
	if err != nil {
		return nil, nil, err
	}
	return postgres.NewDictionarySource(pool, config.Get("DICTIONARY_TABLE")), pool.Close, nil
}

func getConnection(ctx context.Context, url string) (*pgxpool.Pool, error) {
	conn, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, err
	}
	err = conn.Ping(ctx)
	if err != nil {
		return nil, errors.Join(err, errors.New("failed to ping database"))
	}
	return conn, nil
}

// getStrategies lists the remote server first when configured, the local
// n-gram model is always the last resort.
func getStrategies() []embedding.Strategy {
	var strategies []embedding.Strategy
	if url := config.Get("EMBED_URL"); url != "" {
		strategies = append(strategies, embedding.RemoteStrategy(embedding.RemoteConfig{
			URL:     url,
			Model:   config.Get("EMBED_MODEL"),
			Token:   config.Get("EMBED_TOKEN"),
			Timeout: config.GetDuration("EMBED_TIMEOUT", 30*time.Second),
		}))
	}
	if config.GetBool("EMBED_LOCAL", true) {
		strategies = append(strategies, embedding.LocalStrategy(config.GetInt("EMBED_DIM", embedding.DefaultLocalDimension)))
	}
	return strategies
}

// getVectors opens redis when REDIS_URL is set, else badger when BADGER_PATH is set.
func getVectors(ctx context.Context) (repository.Vectors, func(), error) {
	if url := config.Get("REDIS_URL"); url != "" {
		cl, err := redis.NewClient(ctx, url)
		if err != nil {
			return nil, nil, err
		}
		return redis.NewVectorRepo(cl), func() { cl.Close() }, nil
	}
	if dir := config.Get("BADGER_PATH"); dir != "" {
		db, err := getCacher(dir)
		if err != nil {
			return nil, nil, err
		}
		return badgr.New(db), func() { db.Close() }, nil
	}
	return nil, func() {}, nil
}

func getCacher(dir string) (*badger.DB, error) {
	// It will be created if it doesn't exist.
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil
	return badger.Open(opts)
}

func shutdown(h *handler.Handler, srv *service.Service, done chan<- struct{}) {
	// Wait for interrupt signal to gracefully shutdown the server with
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	<-sig
	log.Info().Msg("shutdown started")
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()
	if err := h.Stop(ctx); err != nil {
		log.Err(err).Msg("failed to stop http server")
	}
	if err := srv.Dispose(); err != nil {
		log.Err(err).Msg("failed to dispose game engine")
	}
	log.Info().Msg("shutdown complete")
	close(done)
}
