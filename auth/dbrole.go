package auth

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/meaculpadesigns-sketch/meaculpa-ecommerce-sub001/models"
)

// DBRoleProvider authorizes against the user store: the credential username
// is an email, and the account must carry role "admin". The password check
// belongs to the upstream identity provider; this provider is used to
// promote an already-authenticated user identity to an admin principal.
type DBRoleProvider struct {
	DB *gorm.DB
}

func (p *DBRoleProvider) Authenticate(ctx context.Context, creds Credentials) (*Principal, error) {
	var user models.User
	err := p.DB.WithContext(ctx).Where("email = ?", creds.Username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if user.Role != RoleAdmin {
		return nil, ErrInvalidCredentials
	}
	return &Principal{
		ID:       user.ID,
		Name:     user.Name,
		Email:    user.Email,
		Role:     RoleAdmin,
		Provider: "database",
	}, nil
}

// PrincipalForUser builds a principal for a signed-in storefront user.
func PrincipalForUser(user models.User) *Principal {
	role := user.Role
	if role == "" {
		role = RoleUser
	}
	return &Principal{
		ID:       user.ID,
		Name:     user.Name,
		Email:    user.Email,
		Role:     role,
		Provider: "database",
	}
}
