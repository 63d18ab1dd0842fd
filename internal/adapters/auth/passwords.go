package auth

import (
	"fmt"

	"github.com/alexedwards/argon2id"
)

// Passwords hashes credentials with argon2id.
type Passwords struct {
	params *argon2id.Params
}

func NewPasswords() Passwords { return Passwords{params: argon2id.DefaultParams} }

func (p Passwords) Hash(plain string) (string, error) {
	params := p.params
	if params == nil {
		params = argon2id.DefaultParams
	}
	h, err := argon2id.CreateHash(plain, params)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return h, nil
}

// Verify reports whether plain matches hash. A malformed hash is an error.
func (p Passwords) Verify(plain, hash string) (bool, error) {
	ok, err := argon2id.ComparePasswordAndHash(plain, hash)
	if err != nil {
		return false, fmt.Errorf("verify password: %w", err)
	}
	return ok, nil
}
