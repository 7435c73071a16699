package game

import (
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kodekulture/cemantix-server/game/score"
)

func TestSession_Add(t *testing.T) {
	s := NewSession("2024-01-01")

	require.NoError(t, s.Add(NewGuess("perro", 300)))
	require.NoError(t, s.Add(NewGuess("árbol", 120)))
	assert.True(t, s.Played("Perro"))
	assert.True(t, s.Played("ARBOL"))
	assert.False(t, s.Played("gato"))

	assert.ErrorIs(t, s.Add(NewGuess("PERRO", 300)), ErrRepeated)
	assert.Len(t, s.Guesses, 2)
	assert.False(t, s.Won())

	require.NoError(t, s.Add(NewGuess("gato", score.Perfect)))
	assert.True(t, s.Won())
	assert.ErrorIs(t, s.Add(NewGuess("agua", 10)), ErrFinished)
}

func TestSession_Sorted(t *testing.T) {
	s := NewSession("2024-01-01")
	first := NewGuess("sol", 400)
	scores := []int{100, 700, 400, 999}
	require.NoError(t, s.Add(first))
	for _, sc := range scores {
		require.NoError(t, s.Add(NewGuess(gofakeit.LetterN(10), sc)))
	}
	// same score as first, played later
	tie := NewGuess("luna", 400)
	require.NoError(t, s.Add(tie))

	sorted := s.Sorted()
	got := make([]int, len(sorted))
	for i, g := range sorted {
		got[i] = g.Score
	}
	assert.Equal(t, []int{999, 700, 400, 400, 400, 100}, got)
	assert.Equal(t, 3, s.Rank(first.ID))
	assert.Equal(t, 6, s.Rank(sorted[5].ID))
	assert.Equal(t, 0, s.Rank(NewGuess("x", 1).ID))

	best, ok := s.Best()
	require.True(t, ok)
	assert.Equal(t, 999, best.Score)

	// played order is kept
	assert.Equal(t, "sol", s.Guesses[0].Word)
}

func TestSession_BestEmpty(t *testing.T) {
	_, ok := NewSession("2024-01-01").Best()
	assert.False(t, ok)
}
