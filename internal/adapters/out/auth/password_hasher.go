package auth

import (
	"errors"

	"orderdesk/internal/core/ports"

	"golang.org/x/crypto/bcrypt"
)

var _ ports.PasswordHasher = BcryptPasswordHasher{}

var (
	ErrPasswordIsEmpty     = errors.New("password is empty")
	ErrPasswordHashIsEmpty = errors.New("password hash is empty")
)

type BcryptPasswordHasher struct {
	cost int
}

// NewBcryptPasswordHasher uses bcrypt.DefaultCost when cost is out of bcrypt's range.
func NewBcryptPasswordHasher(cost int) BcryptPasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return BcryptPasswordHasher{cost: cost}
}

func (h BcryptPasswordHasher) Hash(password string) (string, error) {
	if password == "" {
		return "", ErrPasswordIsEmpty
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (h BcryptPasswordHasher) Compare(hash, password string) error {
	if hash == "" {
		return ErrPasswordHashIsEmpty
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
