package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"orderdesk/internal/core/domain/model/identity"
	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/ports"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const issuer = "orderdesk"

var _ ports.TokenIssuer = (*JWTTokenIssuer)(nil)

var (
	ErrInvalidToken  = errors.New("invalid token")
	ErrMissingSecret = errors.New("auth secret is not configured")
	ErrInvalidTTL    = errors.New("token ttl must be greater than zero")
)

// Claims is the session payload. Subject holds the user id.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// JWTTokenIssuer signs and verifies HS256 session tokens.
type JWTTokenIssuer struct {
	secret []byte
	ttl    time.Duration
	clock  ports.Clock
}

func NewJWTTokenIssuer(secret string, ttl time.Duration, clock ports.Clock) (*JWTTokenIssuer, error) {
	secret = strings.TrimSpace(secret)
	if secret == "" {
		return nil, ErrMissingSecret
	}
	if ttl <= 0 {
		return nil, ErrInvalidTTL
	}
	if clock == nil {
		clock = ports.ClockFunc(time.Now)
	}
	return &JWTTokenIssuer{secret: []byte(secret), ttl: ttl, clock: clock}, nil
}

func (i *JWTTokenIssuer) Issue(actor *identity.Actor) (string, time.Time, error) {
	if err := actor.Validate(); err != nil {
		return "", time.Time{}, err
	}

	now := i.clock.Now().UTC().Truncate(time.Second)
	expiresAt := now.Add(i.ttl)
	claims := Claims{
		Role: actor.Role().String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   actor.ID().String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			ID:        uuid.NewString(),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// Parse verifies the token and rebuilds the actor it was issued for. Every failure is
// reported as ErrInvalidToken.
func (i *JWTTokenIssuer) Parse(token string) (*identity.Actor, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrInvalidToken
	}

	parsed, err := jwt.ParseWithClaims(
		token,
		&Claims{},
		func(*jwt.Token) (any, error) { return i.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.clock.Now),
	)
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok {
		return nil, ErrInvalidToken
	}

	actor, err := actorFromClaims(claims)
	if err != nil {
		return nil, ErrInvalidToken
	}
	return actor, nil
}

func actorFromClaims(claims *Claims) (*identity.Actor, error) {
	id, err := kernel.IDFromString(claims.Subject)
	if err != nil {
		return nil, err
	}
	role, err := identity.ParseRole(claims.Role)
	if err != nil {
		return nil, err
	}
	return identity.NewActor(id, role)
}
