// Package hasher protects the admin password.
package hasher

import (
	"github.com/lordvidex/errs/v2"
	"golang.org/x/crypto/bcrypt"
)

var ErrBadHash = errs.B().Code(errs.InvalidArgument).Msg("not a bcrypt hash").Err()

// Bcrypt hashes with Cost, or bcrypt.DefaultCost when Cost is zero.
type Bcrypt struct {
	Cost int
}

func (b *Bcrypt) Hash(password string) (string, error) {
	cost := b.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func (b *Bcrypt) Compare(hashed, original string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(original))
	if err != nil {
		return errs.WrapCode(err, errs.Unauthenticated, "passwords do not match")
	}
	return nil
}

// Check verifies that hashed was produced by bcrypt, so a misconfigured
// admin hash is reported at startup instead of on every login.
func (b *Bcrypt) Check(hashed string) error {
	if _, err := bcrypt.Cost([]byte(hashed)); err != nil {
		return ErrBadHash
	}
	return nil
}
