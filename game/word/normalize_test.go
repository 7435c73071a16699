package word

import (
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	testCases := []struct {
		in, expected string
	}{
		{"ÁRBOL", "arbol"},
		{"arbol", "arbol"},
		{"Pingüino", "pinguino"},
		{"canción", "cancion"},
		{"Ñandú", "nandu"},
		{"", ""},
		{"CORAZÓN", "corazon"},
	}
	for _, tt := range testCases {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.in))
		})
	}
}

func TestNormalize_CaseAndAccentInsensitive(t *testing.T) {
	assert.Equal(t, Normalize("arbol"), Normalize("ÁRBOL"))
	assert.Equal(t, Normalize("Árbol"), Normalize("árbol"))
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{"ÁRBOL", "Pingüino", "ÇA", "Ἀθῆναι", "İstanbul"}
	for i := 0; i < 50; i++ {
		inputs = append(inputs, gofakeit.Sentence(5))
	}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), in)
	}
}
