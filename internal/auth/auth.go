// Package auth validates API keys against configured SHA-256 digests.
package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"net/http"
	"strings"
)

// Authenticator validates API keys. Keys are never stored; only their SHA-256
// hex digests are configured.
type Authenticator struct {
	hashes []string
}

// NewAuthenticator creates an authenticator from configured key hashes.
// Returns nil when no hashes are configured, which callers treat as an open
// API.
func NewAuthenticator(hashes []string) *Authenticator {
	if len(hashes) == 0 {
		return nil
	}
	normalized := make([]string, len(hashes))
	for i, h := range hashes {
		normalized[i] = strings.ToLower(h)
	}
	return &Authenticator{hashes: normalized}
}

// ValidateAPIKey checks a presented key against the configured digests.
func (a *Authenticator) ValidateAPIKey(apiKey string) error {
	keyHash := HashAPIKey(apiKey)
	for _, h := range a.hashes {
		if subtle.ConstantTimeCompare([]byte(keyHash), []byte(h)) == 1 {
			return nil
		}
	}
	return fmt.Errorf("invalid API key")
}

// ExtractAPIKey pulls the bearer token from the Authorization header.
func ExtractAPIKey(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", fmt.Errorf("missing Authorization header")
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 {
		return "", fmt.Errorf("invalid Authorization header format")
	}
	if strings.ToLower(parts[0]) != "bearer" {
		return "", fmt.Errorf("unsupported authorization scheme")
	}
	return parts[1], nil
}

// HashAPIKey returns the SHA-256 hex digest of an API key.
func HashAPIKey(apiKey string) string {
	hash := sha256.Sum256([]byte(apiKey))
	return hex.EncodeToString(hash[:])
}
