package game

import (
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/kodekulture/cemantix-server/game/score"
	"github.com/kodekulture/cemantix-server/game/word"
)

var (
	ErrRepeated = errors.New("Palabra repetida")
	ErrFinished = errors.New("Ya encontraste la palabra del día")
)

// Guess is one scored attempt.
type Guess struct {
	PlayedAt time.Time `json:"played_at"`
	Word     string    `json:"word"`
	Score    int       `json:"score"`
	ID       uuid.UUID `json:"id"`
}

// NewGuess stamps a scored word with a fresh ID and the current time.
func NewGuess(w string, s int) Guess {
	return Guess{
		ID:       uuid.New(),
		Word:     w,
		Score:    s,
		PlayedAt: time.Now(),
	}
}

// Found reports whether the guess is the word of the day.
func (g Guess) Found() bool {
	return g.Score == score.Perfect
}

// DailySelection is the word chosen for a date.
type DailySelection struct {
	Date string `json:"date"`
	Word string `json:"word"`
}

// Admin is the holder of an admin token.
type Admin struct {
	Name     string `json:"name"`
	LoggedAt int64  `json:"logged_at"`
}

// Session is the play of one player for one date.
// It is not safe for concurrent use, the owning Room serializes access.
type Session struct {
	Date    string
	Guesses []Guess
	played  map[string]struct{}
	won     bool
}

func NewSession(date string) *Session {
	return &Session{Date: date, played: make(map[string]struct{})}
}

// Played reports whether w, once normalized, has already been guessed.
func (s *Session) Played(w string) bool {
	_, ok := s.played[word.Normalize(w)]
	return ok
}

// Won returns true once the word of the day has been found.
func (s *Session) Won() bool {
	return s.won
}

// Add records a guess. Repeated words and guesses after a win are rejected.
func (s *Session) Add(g Guess) error {
	if s.won {
		return ErrFinished
	}
	key := word.Normalize(g.Word)
	if _, ok := s.played[key]; ok {
		return ErrRepeated
	}
	s.played[key] = struct{}{}
	s.Guesses = append(s.Guesses, g)
	if g.Found() {
		s.won = true
	}
	return nil
}

// Sorted returns the guesses best first, ties keep the order they were played in.
func (s *Session) Sorted() []Guess {
	out := make([]Guess, len(s.Guesses))
	copy(out, s.Guesses)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	return out
}

// Rank returns the 1 based position of the guess with id in Sorted.
func (s *Session) Rank(id uuid.UUID) int {
	for i, g := range s.Sorted() {
		if g.ID == id {
			return i + 1
		}
	}
	return 0
}

// Best returns the highest scored guess.
func (s *Session) Best() (Guess, bool) {
	if len(s.Guesses) == 0 {
		return Guess{}, false
	}
	return s.Sorted()[0], true
}
