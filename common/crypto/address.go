package crypto

import (
	"errors"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/txscript"
)

// AddressType selects the script an address commits to.
type AddressType string

const (
	// P2PKH is the legacy base58check pay-to-pubkey-hash address (1...).
	P2PKH AddressType = "p2pkh"
	// P2WPKH is the native segwit v0 bech32 address (bc1q...).
	P2WPKH AddressType = "p2wpkh"
	// P2SHP2WPKH is a segwit v0 program wrapped in a pay-to-script-hash address (3...).
	P2SHP2WPKH AddressType = "p2sh"
	// P2TR is recognised but not supported by this wallet.
	P2TR AddressType = "p2tr"
)

// ParseAddressType maps a selector onto an AddressType. Known but unsupported selectors
// (taproot) parse successfully and fail at EncodeAddress.
func ParseAddressType(name string) (AddressType, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "p2pkh", "legacy":
		return P2PKH, nil
	case "p2wpkh", "segwit", "bech32":
		return P2WPKH, nil
	case "p2sh", "p2sh-p2wpkh", "p2shwpkh", "nested-segwit":
		return P2SHP2WPKH, nil
	case "p2tr", "taproot":
		return P2TR, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedAddressType, name)
	}
}

// Supported reports whether EncodeAddress can produce this type.
func (t AddressType) Supported() bool {
	return t == P2PKH || t == P2WPKH || t == P2SHP2WPKH
}

// EncodeAddress derives the address of pub under typ on net. The public key is always
// hashed in its compressed form.
func EncodeAddress(pub *btcec.PublicKey, net *chaincfg.Params, typ AddressType) (btcutil.Address, error) {
	if pub == nil {
		return nil, ErrInvalidPublicKey
	}
	hash := btcutil.Hash160(pub.SerializeCompressed())

	switch typ {
	case P2PKH:
		return btcutil.NewAddressPubKeyHash(hash, net)
	case P2WPKH:
		return btcutil.NewAddressWitnessPubKeyHash(hash, net)
	case P2SHP2WPKH:
		program, err := txscript.NewScriptBuilder().
			AddOp(txscript.OP_0).
			AddData(hash).
			Script()
		if err != nil {
			return nil, fmt.Errorf("build witness program: %w", err)
		}
		return btcutil.NewAddressScriptHash(program, net)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedAddressType, typ)
	}
}

// DecodeAddress parses s for net and reports the address type it implies. An address that is
// well formed for another known network yields ErrNetworkMismatch.
func DecodeAddress(s string, net *chaincfg.Params) (btcutil.Address, AddressType, error) {
	addr, err := btcutil.DecodeAddress(s, net)
	if err != nil {
		if foreignNetwork(s, net) != nil {
			return nil, "", fmt.Errorf("%w: %s is not a %s address", ErrNetworkMismatch, s, net.Name)
		}
		return nil, "", fmt.Errorf("%w: %v", ErrInvalidAddress, err)
	}
	if !addr.IsForNet(net) {
		return nil, "", fmt.Errorf("%w: %s is not a %s address", ErrNetworkMismatch, s, net.Name)
	}

	typ, err := addressTypeOf(addr)
	if err != nil {
		return nil, "", err
	}
	return addr, typ, nil
}

func foreignNetwork(s string, net *chaincfg.Params) *chaincfg.Params {
	for _, other := range knownNetworks {
		if other == net {
			continue
		}
		if addr, err := btcutil.DecodeAddress(s, other); err == nil && addr.IsForNet(other) {
			return other
		}
	}
	return nil
}

func addressTypeOf(addr btcutil.Address) (AddressType, error) {
	switch addr.(type) {
	case *btcutil.AddressPubKeyHash:
		return P2PKH, nil
	case *btcutil.AddressWitnessPubKeyHash:
		return P2WPKH, nil
	case *btcutil.AddressScriptHash:
		return P2SHP2WPKH, nil
	case *btcutil.AddressTaproot:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedAddressType, P2TR)
	default:
		return "", fmt.Errorf("%w: %T", ErrUnsupportedAddressType, addr)
	}
}

// IsUnsupportedAddressType is a convenience for errors.Is(err, ErrUnsupportedAddressType).
func IsUnsupportedAddressType(err error) bool {
	return errors.Is(err, ErrUnsupportedAddressType)
}
