package crypto

import (
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/freewebmovement/zz-account/common/utils"
)

// PublicKeyToHex returns the compressed SEC encoding of pub in hex.
func PublicKeyToHex(pub *btcec.PublicKey) string {
	return utils.BytesToHex(pub.SerializeCompressed())
}

// ParsePublicKeyHex accepts compressed or uncompressed SEC encodings.
func ParsePublicKeyHex(s string) (*btcec.PublicKey, error) {
	b, err := utils.HexToBytes(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPublicKey, err)
	}
	pub, err := btcec.ParsePubKey(b)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPublicKey, err)
	}
	return pub, nil
}

// EncodeWIF exports priv in wallet import format for net, flagged as compressed.
func EncodeWIF(priv *btcec.PrivateKey, net *chaincfg.Params) (string, error) {
	wif, err := btcutil.NewWIF(priv, net, true)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidPrivateKey, err)
	}
	return wif.String(), nil
}

// DecodeWIF parses s and requires it to belong to net.
func DecodeWIF(s string, net *chaincfg.Params) (*btcutil.WIF, error) {
	wif, err := btcutil.DecodeWIF(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPrivateKey, err)
	}
	if !wif.IsForNet(net) {
		return nil, fmt.Errorf("%w: private key is not for %s", ErrNetworkMismatch, net.Name)
	}
	return wif, nil
}
