// Package id issues the opaque public identifiers stamped on loans and
// loan requests.
package id

import (
	"crypto/rand"
	"encoding/hex"
)

// NewID32 returns 32 lowercase hex characters from 16 random bytes. The
// format matches the hex32 validation tag on the API side.
func NewID32() string {
	var b [16]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
