// Package token generates the relay's shared authentication secret.
package token

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
)

// Bytes is the entropy of a generated token.  Rendered as hex, the
// token is twice this many characters.
const Bytes = 16

// New returns a fresh random token: Bytes random bytes rendered as
// uppercase hex.  The token is printed once to the operator's console
// at startup and is the only credential the relay knows.
func New() (string, error) {
	buf := make([]byte, Bytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return strings.ToUpper(hex.EncodeToString(buf)), nil
}
