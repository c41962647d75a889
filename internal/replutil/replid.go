package replutil

import (
	"crypto/rand"
	"fmt"
)

// GenerateReplID returns a fresh 40-character hex replication ID, matching
// the length and randomness source real Redis uses.
func GenerateReplID() string {
	b := make([]byte, 20)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("%040x", b)
	}
	return fmt.Sprintf("%x", b)
}
