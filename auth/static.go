package auth

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"os"
	"strings"
)

// StaticProvider checks a fixed admin credential list. Entries are
// "username:sha256hex" pairs, comma-separated, loaded from ADMIN_CREDENTIALS.
type StaticProvider struct {
	hashes map[string]string // username -> sha256 hex of password
}

func NewStaticProviderFromEnv() *StaticProvider {
	return NewStaticProvider(os.Getenv("ADMIN_CREDENTIALS"))
}

func NewStaticProvider(spec string) *StaticProvider {
	hashes := make(map[string]string)
	for _, entry := range strings.Split(spec, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, ":", 2)
		if len(parts) != 2 {
			continue
		}
		hashes[parts[0]] = strings.ToLower(parts[1])
	}
	return &StaticProvider{hashes: hashes}
}

func (p *StaticProvider) Authenticate(_ context.Context, creds Credentials) (*Principal, error) {
	want, ok := p.hashes[creds.Username]
	if !ok {
		return nil, ErrInvalidCredentials
	}
	sum := sha256.Sum256([]byte(creds.Password))
	got := hex.EncodeToString(sum[:])
	if subtle.ConstantTimeCompare([]byte(got), []byte(want)) != 1 {
		return nil, ErrInvalidCredentials
	}
	return &Principal{
		ID:       "static:" + creds.Username,
		Name:     creds.Username,
		Role:     RoleAdmin,
		Provider: "static",
	}, nil
}
