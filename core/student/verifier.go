package student

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

var ErrPasswordMismatch = errors.New("password mismatch")

// Verifier abstracts the credential scheme so call sites never compare
// passwords themselves.
type Verifier interface {
	Hash(pwd string) (string, error)
	Verify(stored, given string) error
}

// PlainVerifier stores and compares passwords verbatim. This reproduces the
// legacy behavior and is a known defect; swap in BcryptVerifier to fix it
// without touching call sites.
type PlainVerifier struct{}

func (PlainVerifier) Hash(pwd string) (string, error) { return pwd, nil }

func (PlainVerifier) Verify(stored, given string) error {
	if stored != given {
		return ErrPasswordMismatch
	}
	return nil
}

// BcryptVerifier stores bcrypt hashes.
type BcryptVerifier struct{}

func (BcryptVerifier) Hash(pwd string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (BcryptVerifier) Verify(stored, given string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(stored), []byte(given)); err != nil {
		return ErrPasswordMismatch
	}
	return nil
}
