package domain

import (
	"crypto/sha256"
	"encoding/hex"
)

// Credential carries the API key used for a run. An empty key means the
// provider should use the stored OAuth token instead.
type Credential struct {
	APIKey string
}

func (c Credential) IsZero() bool {
	return c.APIKey == ""
}

// Fingerprint identifies the credential without exposing it.
func (c Credential) Fingerprint() string {
	if c.APIKey == "" {
		return "token"
	}
	sum := sha256.Sum256([]byte(c.APIKey))
	return hex.EncodeToString(sum[:6])
}

func (c Credential) String() string {
	if c.APIKey == "" {
		return "Credential(token)"
	}
	return "Credential(api-key:" + c.Fingerprint() + ")"
}
