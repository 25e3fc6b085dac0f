package auth

import (
	"context"
	"errors"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Principal is the single identity representation consumed by all
// admin-gated routes, whatever provider produced it.
type Principal struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Provider string `json:"provider"` // "static" or "database"
}

type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Provider authenticates credentials against one credential store. Two
// implementations exist: the static admin list (username + password) and
// the user-store role check (email of an already-verified identity). Both
// yield the same Principal, so admin-gated routes never care which store
// vouched for the session.
type Provider interface {
	Authenticate(ctx context.Context, creds Credentials) (*Principal, error)
}
