// Package token is responsible for generating and validating admin tokens
package token

import (
	"context"
	"time"

	"github.com/lordvidex/x/auth"

	"github.com/kodekulture/cemantix-server/game"
)

//go:generate mockgen -destination=../../internal/mocks/token.go -package=mocks -mock_names=Handler=MockTokenHandler . Handler

type Handler interface {
	// Generate creates a token for admin, valid for ttl
	Generate(ctx context.Context, admin game.Admin, ttl time.Duration) (auth.Token, error)
	// Validate validates the given token and returns the admin it was issued to
	Validate(ctx context.Context, token auth.Token) (game.Admin, error)
}
