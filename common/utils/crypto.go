package utils

import (
	"crypto/sha256"
)

// Hash returns the single SHA-256 digest used for message signing
func Hash(data []byte) [32]byte {
	return sha256.Sum256(data)
}
