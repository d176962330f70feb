package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func generateExpired(secret string) (string, *Claims, error) {
	claims := &Claims{
		UserID:   1,
		Username: "bob",
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        "expired",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	return signed, claims, err
}
