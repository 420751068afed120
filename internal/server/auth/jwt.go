// Package auth implements the two credential primitives of the server:
// signed session tokens (HS256 JWTs) and bcrypt password hashing.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/sparks/noteapp/internal/common"
)

// GenerateToken mints a signed token asserting the given subject (the user's
// email). The token carries the subject and issuance time only; no expiry
// claim is set, so tokens stay valid until the signing key changes.
func GenerateToken(subject string, secretKey []byte, issuedAt time.Time) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:  subject,
		IssuedAt: jwt.NewNumericDate(issuedAt),
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// GetSubjectFromToken verifies the token signature against secretKey and
// returns the embedded subject. Malformed tokens and signature mismatches are
// indistinguishable to the caller; both yield common.ErrInvalidToken.
func GetSubjectFromToken(tokenString string, secretKey []byte) (string, error) {
	claims := &jwt.RegisteredClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", common.ErrInvalidToken
	}

	if !token.Valid {
		return "", common.ErrInvalidToken
	}

	return claims.Subject, nil
}
