package middleware

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	id "partnerhub/pkg/domain"
)

// JWTValidator validates HMAC-signed tokens issued by the identity
// collaborator. Only the subject claim is consumed here.
type JWTValidator struct {
	signingKey []byte
}

// NewJWTValidator constructs a validator for the shared signing key.
func NewJWTValidator(signingKey string) *JWTValidator {
	return &JWTValidator{signingKey: []byte(signingKey)}
}

// ValidateToken parses and verifies the token, returning the claims.
func (v *JWTValidator) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return v.signingKey, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	subject, err := token.Claims.GetSubject()
	if err != nil {
		return nil, fmt.Errorf("token subject: %w", err)
	}
	userID, err := id.ParseUserID(subject)
	if err != nil {
		return nil, fmt.Errorf("token subject is not a user ID: %w", err)
	}

	return &Claims{UserID: userID}, nil
}
