package services

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const (
	HasherSHA256 = "sha256"
	HasherBcrypt = "bcrypt"
)

type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(hash, password string) bool
}

func NewPasswordHasher(name string, bcryptCost int) (PasswordHasher, error) {
	switch name {
	case HasherSHA256, "":
		return SHA256Hasher{}, nil
	case HasherBcrypt:
		return BcryptHasher{Cost: bcryptCost}, nil
	default:
		return nil, fmt.Errorf("unknown password hasher %q", name)
	}
}

// SHA256Hasher is the unsalted hex digest existing accounts were stored with.
// The same password always hashes to the same string.
type SHA256Hasher struct{}

func (SHA256Hasher) Hash(password string) (string, error) {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:]), nil
}

func (h SHA256Hasher) Verify(hash, password string) bool {
	candidate, _ := h.Hash(password)
	return subtle.ConstantTimeCompare([]byte(candidate), []byte(hash)) == 1
}

type BcryptHasher struct {
	Cost int
}

func (h BcryptHasher) Hash(password string) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hashPass, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hashPass), nil
}

func (BcryptHasher) Verify(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
