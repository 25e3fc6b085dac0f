package auth

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Admin sessions are time-boxed to 24 hours regardless of provider.
const SessionTTL = 24 * time.Hour

type claims struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Provider string `json:"provider"`
	jwt.RegisteredClaims
}

func jwtSecret() []byte {
	return []byte(os.Getenv("JWT_SECRET"))
}

// IssueToken signs a session token for a principal.
func IssueToken(p *Principal) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Name:     p.Name,
		Email:    p.Email,
		Role:     p.Role,
		Provider: p.Provider,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(SessionTTL)),
		},
	})
	return token.SignedString(jwtSecret())
}

// ParseToken validates a session token and rebuilds the principal.
func ParseToken(tokenString string) (*Principal, error) {
	var c claims
	token, err := jwt.ParseWithClaims(tokenString, &c, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid token signing method")
		}
		return jwtSecret(), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid or expired token")
	}
	return &Principal{
		ID:       c.Subject,
		Name:     c.Name,
		Email:    c.Email,
		Role:     c.Role,
		Provider: c.Provider,
	}, nil
}
