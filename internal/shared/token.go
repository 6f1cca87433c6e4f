package shared

import (
	"crypto/rand"
	"encoding/base64"
)

const tokenBytes = 24

// NewToken mints an opaque bearer token. Tokens are compared by exact
// match against the stored user record; they carry no claims and never
// expire.
func NewToken() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
