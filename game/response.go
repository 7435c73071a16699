package game

import (
	"time"

	"github.com/google/uuid"
	"github.com/lordvidex/x/ptr"

	"github.com/kodekulture/cemantix-server/game/score"
)

type GuessResponse struct {
	PlayedAt time.Time `json:"played_at"`
	Word     string    `json:"word"`
	Bucket   string    `json:"bucket"`
	Color    string    `json:"color"`
	Emoji    string    `json:"emoji"`
	Label    string    `json:"label"`
	Score    int       `json:"score"`
	ID       uuid.UUID `json:"id"`
}

// PlayResponse is sent to the player after each guess.
type PlayResponse struct {
	Result GuessResponse `json:"result"`
	// Rank is the position of the guess among all guesses of the session, best first.
	Rank int `json:"rank"`
}

// SessionResponse is the data sent to the client when a new connection is established
type SessionResponse struct {
	Best     *GuessResponse  `json:"best,omitempty"`
	Date     string          `json:"date"`
	Guesses  []GuessResponse `json:"guesses"`
	Finished bool            `json:"finished"`
	// ModelReady tells the client whether scores are semantic or lexical.
	ModelReady bool `json:"model_ready"`
}

// ToGuess decorates a guess with its presentation.
func ToGuess(g Guess) GuessResponse {
	return GuessResponse{
		ID:       g.ID,
		Word:     g.Word,
		Score:    g.Score,
		Bucket:   score.BucketOf(g.Score).String(),
		Color:    score.Color(g.Score),
		Emoji:    score.Emoji(g.Score),
		Label:    score.Label(g.Score),
		PlayedAt: g.PlayedAt,
	}
}

func ToSessionResponse(s *Session, modelReady bool) SessionResponse {
	sorted := s.Sorted()
	guesses := make([]GuessResponse, len(sorted))
	for i, g := range sorted {
		guesses[i] = ToGuess(g)
	}
	resp := SessionResponse{
		Date:       s.Date,
		Guesses:    guesses,
		Finished:   s.Won(),
		ModelReady: modelReady,
	}
	if best, ok := s.Best(); ok {
		resp.Best = ptr.Obj(ToGuess(best))
	}
	return resp
}
