package auth

import (
	"crypto/sha256"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// resetTokenTTL bounds how long a password-reset link stays valid.
const resetTokenTTL = time.Hour

// ErrInvalidToken covers every reset-token failure: bad signature, wrong
// salt, malformed input, or elapsed expiry. Callers show one generic
// message for all of them.
var ErrInvalidToken = errors.New("invalid or expired token")

// ResetTokens issues and verifies stateless password-reset tokens. A token
// is an HS256 JWT whose subject is the email address it proves control of.
// Nothing is stored server-side: validity is purely signature plus expiry,
// so a token remains replayable within its window.
type ResetTokens struct {
	key []byte
}

// NewResetTokens derives the signing key from the application secret and a
// reset-specific salt, so reset tokens can never be confused with anything
// else signed by the secret alone.
func NewResetTokens(secretKey, salt string) *ResetTokens {
	h := sha256.New()
	h.Write([]byte(secretKey))
	h.Write([]byte{0})
	h.Write([]byte(salt))
	return &ResetTokens{key: h.Sum(nil)}
}

// Issue signs a token binding email for the next hour.
func (rt *ResetTokens) Issue(email string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   email,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(resetTokenTTL)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(rt.key)
}

// Verify checks signature and expiry and returns the bound email address.
func (rt *ResetTokens) Verify(tokenStr string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims,
		func(*jwt.Token) (any, error) { return rt.key, nil },
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid || claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}
