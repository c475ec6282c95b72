package crypto

import (
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/freewebmovement/zz-account/common/utils"
)

// SignMessage signs the SHA-256 digest of msg with RFC6979 deterministic ECDSA and returns
// the DER encoded signature.
func SignMessage(priv *btcec.PrivateKey, msg []byte) []byte {
	hash := utils.Hash(msg)
	return ecdsa.Sign(priv, hash[:]).Serialize()
}

// VerifyMessage checks a DER signature over the SHA-256 digest of msg. Malformed signatures
// and wrong keys both yield false.
func VerifyMessage(pub *btcec.PublicKey, msg, sig []byte) bool {
	if pub == nil {
		return false
	}

	s, err := ecdsa.ParseDERSignature(sig)
	if err != nil {
		return false
	}

	hash := utils.Hash(msg)
	return s.Verify(hash[:], pub)
}

// VerifyMessageHex is VerifyMessage over hex inputs. Only an unparsable public key is an
// error; a malformed signature is simply invalid.
func VerifyMessageHex(pubHex string, msg []byte, sigHex string) (bool, error) {
	pub, err := ParsePublicKeyHex(pubHex)
	if err != nil {
		return false, err
	}

	sig, err := utils.HexToBytes(sigHex)
	if err != nil {
		return false, nil
	}
	return VerifyMessage(pub, msg, sig), nil
}
