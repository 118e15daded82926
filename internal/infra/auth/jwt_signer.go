package auth

import (
	"errors"
	"time"

	"twinpersona/internal/domain"
	"twinpersona/internal/domain/ports/adapter"

	"github.com/golang-jwt/jwt/v5"
)

var _ adapter.TokenSigner = (*JWTSigner)(nil)

// JWTSigner mints the premium access tokens handed out after a confirmed
// payment. The token carries only identifiers; the authoritative record
// lives in the shared store keyed by JTI.
type JWTSigner struct {
	secret []byte
}

func NewJWTSigner(secret string) (*JWTSigner, error) {
	if secret == "" {
		return nil, errors.New("jwt secret empty")
	}
	return &JWTSigner{secret: []byte(secret)}, nil
}

type premiumClaims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

func (s *JWTSigner) Sign(jti, paymentIntentID, email string, expiresAt time.Time) (string, error) {
	claims := premiumClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			Subject:   paymentIntentID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "twinpersona",
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *JWTSigner) Verify(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &premiumClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return "", domain.ErrTokenInvalid
	}
	claims, ok := token.Claims.(*premiumClaims)
	if !ok || claims.ID == "" {
		return "", domain.ErrTokenInvalid
	}
	return claims.ID, nil
}
