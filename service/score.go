package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/kodekulture/cemantix-server/game/score"
	"github.com/kodekulture/cemantix-server/game/word"
	"github.com/kodekulture/cemantix-server/internal/telemetry"
)

// Score rates guess against target in [0, 1000]. It never fails: when the
// model is not ready, or anything on the semantic path goes wrong, the lexical
// heuristic answers instead. 1000 is returned for equal words only.
func (s *Service) Score(ctx context.Context, guess, target string) int {
	g := word.Normalize(strings.TrimSpace(guess))
	t := word.Normalize(strings.TrimSpace(target))
	if g == t {
		s.obs.Inc(telemetry.ExactMatch)
		return score.Perfect
	}
	if sc, ok := s.semantic(ctx, g, t); ok {
		s.obs.Inc(telemetry.SemanticScore)
		return sc
	}
	s.obs.Inc(telemetry.HeuristicFallback)
	return score.Heuristic(g, t)
}

// semantic scores with embeddings, it only runs once the model is ready and
// the target vector is cached.
func (s *Service) semantic(ctx context.Context, g, t string) (int, bool) {
	if !s.provider.Ready() {
		return 0, false
	}
	tv, ok := s.provider.Cached(t)
	if !ok {
		return 0, false
	}
	gv, err := s.provider.Embed(ctx, g)
	if err != nil {
		log.Warn().Err(err).Msg("guess embedding failed, scoring lexically")
		s.obs.Inc(telemetry.ComputeError)
		return 0, false
	}
	sim, err := score.Cosine(gv, tv)
	if err != nil {
		log.Err(err).Caller().Str("guess", g).Str("target", t).Msg("vectors cannot be compared")
		s.obs.Inc(telemetry.ComputeError)
		return 0, false
	}
	return score.Calibrate(sim), true
}
