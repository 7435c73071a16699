package token

import (
	"context"
	"testing"
	"time"

	"github.com/lordvidex/x/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kodekulture/cemantix-server/game"
)

var testKey = []byte("12345678901234567890123456789012")

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		key     []byte
		footer  string
		wantErr bool
	}{
		{
			name:   "valid key len",
			key:    testKey,
			footer: "footer",
		},
		{
			name: "default footer",
			key:  testKey,
		},
		{
			name:    "invalid key len",
			key:     []byte("key"),
			footer:  "footer",
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.key, tt.footer)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrKeyLength)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestPaseto(t *testing.T) {
	p := newPasetoTest(t)
	admin := game.Admin{Name: "admin", LoggedAt: time.Now().Unix()}

	tests := []struct {
		name    string
		token   func(t *testing.T) auth.Token
		wantErr bool
	}{
		{
			name: "valid token",
			token: func(t *testing.T) auth.Token {
				tk, err := p.Generate(context.Background(), admin, time.Hour)
				require.NoError(t, err)
				return tk
			},
		},
		{
			name: "expired token",
			token: func(t *testing.T) auth.Token {
				tk, err := p.Generate(context.Background(), admin, -time.Minute)
				require.NoError(t, err)
				return tk
			},
			wantErr: true,
		},
		{
			name: "token of another issuer",
			token: func(t *testing.T) auth.Token {
				other, err := New(testKey, "someone-else")
				require.NoError(t, err)
				tk, err := other.Generate(context.Background(), admin, time.Hour)
				require.NoError(t, err)
				return tk
			},
			wantErr: true,
		},
		{
			name: "token of another key",
			token: func(t *testing.T) auth.Token {
				other, err := New([]byte("abcdefghijklmnopqrstuvwxyz123456"), "footer")
				require.NoError(t, err)
				tk, err := other.Generate(context.Background(), admin, time.Hour)
				require.NoError(t, err)
				return tk
			},
			wantErr: true,
		},
		{
			name:    "garbage",
			token:   func(*testing.T) auth.Token { return "v2.local.garbage" },
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := p.Validate(context.Background(), tt.token(t))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, admin, got)
		})
	}
}

// newPasetoTest creates a new paseto instance for testing purposes
func newPasetoTest(t *testing.T) *Paseto {
	p, err := New(testKey, "footer")
	require.NoError(t, err)
	return p
}
