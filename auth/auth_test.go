package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/meaculpadesigns-sketch/meaculpa-ecommerce-sub001/models"
)

func sha256hex(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

func TestStaticProvider(t *testing.T) {
	p := NewStaticProvider("ayse:" + sha256hex("s3cret") + ",deniz:" + sha256hex("other"))

	principal, err := p.Authenticate(context.Background(), Credentials{Username: "ayse", Password: "s3cret"})
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, principal.Role)
	assert.Equal(t, "static", principal.Provider)

	_, err = p.Authenticate(context.Background(), Credentials{Username: "ayse", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = p.Authenticate(context.Background(), Credentials{Username: "nobody", Password: "s3cret"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestDBRoleProvider(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}))

	require.NoError(t, db.Create(&models.User{ID: "u1", Email: "admin@meaculpa.com", Name: "Ece", Role: "admin"}).Error)
	require.NoError(t, db.Create(&models.User{ID: "u2", Email: "user@meaculpa.com", Name: "Can", Role: "user"}).Error)

	p := &DBRoleProvider{DB: db}

	principal, err := p.Authenticate(context.Background(), Credentials{Username: "admin@meaculpa.com"})
	require.NoError(t, err)
	assert.Equal(t, "u1", principal.ID)
	assert.Equal(t, RoleAdmin, principal.Role)

	_, err = p.Authenticate(context.Background(), Credentials{Username: "user@meaculpa.com"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestTokenRoundTrip(t *testing.T) {
	os.Setenv("JWT_SECRET", "test-secret")
	defer os.Unsetenv("JWT_SECRET")

	token, err := IssueToken(&Principal{ID: "u1", Name: "Ece", Role: RoleAdmin, Provider: "static"})
	require.NoError(t, err)

	principal, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", principal.ID)
	assert.Equal(t, RoleAdmin, principal.Role)

	_, err = ParseToken(token + "tampered")
	assert.Error(t, err)
}
