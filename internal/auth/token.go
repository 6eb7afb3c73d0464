// Package auth issues and checks the HS256 bearer tokens shared by the
// tango client and server. The token subject is the user id.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// MinSecretLength is the shortest accepted signing secret.
const MinSecretLength = 32

// DefaultLifetime is how long issued tokens stay valid.
const DefaultLifetime = time.Hour

var (
	ErrInvalidToken = errors.New("auth: invalid token")
	ErrExpiredToken = errors.New("auth: token expired")
	ErrShortSecret  = fmt.Errorf("auth: secret must be at least %d characters", MinSecretLength)
)

// Signer issues and verifies tokens with one shared secret.
type Signer struct {
	key       []byte
	lifetime  time.Duration
	clockSkew time.Duration
	now       func() time.Time
}

// NewSigner returns a signer for secret.
func NewSigner(secret string) (*Signer, error) {
	if len(secret) < MinSecretLength {
		return nil, ErrShortSecret
	}
	return &Signer{
		key:       []byte(secret),
		lifetime:  DefaultLifetime,
		clockSkew: 2 * time.Minute,
		now:       time.Now,
	}, nil
}

// Issue returns a signed token for userID.
func (s *Signer) Issue(userID string) (string, error) {
	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.lifetime)),
		ID:        uuid.New().String(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks token and returns its user id.
func (s *Signer) Verify(token string) (string, error) {
	now := s.now()
	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{},
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return s.key, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithLeeway(s.clockSkew),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrExpiredToken
		}
		return "", ErrInvalidToken
	}
	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || !parsed.Valid || claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}
