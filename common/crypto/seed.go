package crypto

import (
	"crypto/sha512"

	"golang.org/x/crypto/pbkdf2"
)

// SeedParams fixes the BIP-39 stretching parameters.
type SeedParams struct {
	SaltPrefix string
	Rounds     int
	Size       int
}

// DefaultSeedParams are the BIP-39 values.
func DefaultSeedParams() SeedParams {
	return SeedParams{
		SaltPrefix: "mnemonic",
		Rounds:     2048,
		Size:       64,
	}
}

// SeedFromMnemonic stretches phrase into a binary seed with PBKDF2-HMAC-SHA512, salted with
// SaltPrefix followed by passphrase. The phrase is used as given, so callers pass the
// canonical form returned by ParseMnemonic.
func SeedFromMnemonic(phrase, passphrase string, params SeedParams) []byte {
	salt := params.SaltPrefix + passphrase
	return pbkdf2.Key([]byte(phrase), []byte(salt), params.Rounds, params.Size, sha512.New)
}
