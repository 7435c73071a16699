package token

import (
	"context"
	"errors"
	"time"

	"github.com/lordvidex/x/auth"
	"github.com/o1egl/paseto/v2"

	"github.com/kodekulture/cemantix-server/game"
)

var (
	defaultFooter = "cemantix"

	ErrKeyLength = errors.New("invalid key length, key must be 32 bytes long")
)

const adminClaim = "admin"

var _ Handler = (*Paseto)(nil)

type Paseto struct {
	footer       string
	symmetricKey []byte
}

func New(key []byte, footer string) (*Paseto, error) {
	if len(key) != 32 {
		return nil, ErrKeyLength
	}
	if footer == "" {
		footer = defaultFooter
	}
	return &Paseto{
		symmetricKey: key,
		footer:       footer,
	}, nil
}

func (p *Paseto) Generate(_ context.Context, admin game.Admin, ttl time.Duration) (auth.Token, error) {
	now := time.Now()
	payload := paseto.JSONToken{
		Subject:    admin.Name,
		IssuedAt:   now,
		NotBefore:  now,
		Expiration: now.Add(ttl),
		Issuer:     p.footer,
	}
	payload.Set(adminClaim, admin)
	str, err := paseto.Encrypt(p.symmetricKey, payload, p.footer)
	if err != nil {
		return "", err
	}
	return auth.Token(str), nil
}

func (p *Paseto) Validate(_ context.Context, token auth.Token) (game.Admin, error) {
	var (
		payload paseto.JSONToken
		footer  string
	)
	if err := paseto.Decrypt(string(token), p.symmetricKey, &payload, &footer); err != nil {
		return game.Admin{}, err
	}
	if err := payload.Validate(paseto.IssuedBy(p.footer), paseto.ValidAt(time.Now())); err != nil {
		return game.Admin{}, err
	}
	var admin game.Admin
	if err := payload.Get(adminClaim, &admin); err != nil {
		return game.Admin{}, err
	}
	return admin, nil
}
