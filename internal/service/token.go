package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	appErrors "github.com/unclebandit/brandplay-backend/internal/errors"
)

const (
	audienceSession    = "session"
	audienceOAuthState = "oauth_state"
	oauthStateTTL      = 10 * time.Minute
)

// TokenIssuer signs session tokens and OAuth state values with HS256.
type TokenIssuer struct {
	Secret []byte
	TTL    time.Duration
	Now    func() time.Time
}

// Principal identifies the session behind a verified token.
type Principal struct {
	UserID    string
	TokenID   string
	ExpiresAt time.Time
}

func (t *TokenIssuer) now() time.Time {
	if t.Now != nil {
		return t.Now()
	}
	return time.Now()
}

func (t *TokenIssuer) sign(subject, audience string, ttl time.Duration) (string, Principal, error) {
	now := t.now()
	p := Principal{UserID: subject, TokenID: uuid.NewString(), ExpiresAt: now.Add(ttl)}
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		ID:        p.TokenID,
		Audience:  jwt.ClaimStrings{audience},
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(p.ExpiresAt),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.Secret)
	if err != nil {
		return "", Principal{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, p, nil
}

func (t *TokenIssuer) verify(raw, audience string) (Principal, error) {
	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return t.Secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithAudience(audience),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Principal{}, fmt.Errorf("%w: token expired", appErrors.ErrUnauthenticated)
		}
		return Principal{}, fmt.Errorf("%w: %v", appErrors.ErrUnauthenticated, err)
	}
	p := Principal{UserID: claims.Subject, TokenID: claims.ID}
	if claims.ExpiresAt != nil {
		p.ExpiresAt = claims.ExpiresAt.Time
	}
	return p, nil
}

// Issue creates a session token for userID.
func (t *TokenIssuer) Issue(userID string) (string, Principal, error) {
	return t.sign(userID, audienceSession, t.TTL)
}

// Verify checks signature, audience and expiry of a session token.
func (t *TokenIssuer) Verify(raw string) (Principal, error) {
	return t.verify(raw, audienceSession)
}

// State returns a short-lived value to round-trip through the identity
// provider; returnTo is carried as the subject.
func (t *TokenIssuer) State(returnTo string) (string, error) {
	s, _, err := t.sign(returnTo, audienceOAuthState, oauthStateTTL)
	return s, err
}

// CheckState validates a state value and returns its returnTo path.
func (t *TokenIssuer) CheckState(raw string) (string, error) {
	p, err := t.verify(raw, audienceOAuthState)
	if err != nil {
		return "", err
	}
	return p.UserID, nil
}
