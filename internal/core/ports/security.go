package ports

import (
	"time"

	"orderdesk/internal/core/domain/model/identity"
)

// PasswordHasher hashes and verifies login passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)

	// Compare returns nil when password matches hash.
	Compare(hash, password string) error
}

// TokenIssuer mints session tokens carrying the actor's id and role.
type TokenIssuer interface {
	Issue(actor *identity.Actor) (token string, expiresAt time.Time, err error)
}

// Clock supplies the current time to handlers.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time {
	return f()
}
