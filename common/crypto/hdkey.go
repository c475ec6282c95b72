package crypto

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
)

// DerivationPath is a parsed BIP-32 path. Hardened steps carry hdkeychain.HardenedKeyStart.
type DerivationPath []uint32

// ParseDerivationPath parses paths of the form m/44'/0'/0'/0/0. Hardened steps may be
// marked with ', h or H. A bare "m" denotes the master key.
func ParseDerivationPath(path string) (DerivationPath, error) {
	path = strings.TrimSpace(path)
	if path == "m" || path == "M" {
		return DerivationPath{}, nil
	}
	if !strings.HasPrefix(path, "m/") && !strings.HasPrefix(path, "M/") {
		return nil, fmt.Errorf("%w: %q must start with m/", ErrInvalidDerivationPath, path)
	}

	segments := strings.Split(path[2:], "/")
	dp := make(DerivationPath, 0, len(segments))
	for _, seg := range segments {
		hardened := false
		if n := len(seg); n > 0 && (seg[n-1] == '\'' || seg[n-1] == 'h' || seg[n-1] == 'H') {
			hardened = true
			seg = seg[:n-1]
		}
		if seg == "" {
			return nil, fmt.Errorf("%w: empty segment in %q", ErrInvalidDerivationPath, path)
		}

		idx, err := strconv.ParseUint(seg, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("%w: segment %q: %v", ErrInvalidDerivationPath, seg, err)
		}
		if idx >= hdkeychain.HardenedKeyStart {
			return nil, fmt.Errorf("%w: index %d out of range", ErrInvalidDerivationPath, idx)
		}

		child := uint32(idx)
		if hardened {
			child += hdkeychain.HardenedKeyStart
		}
		dp = append(dp, child)
	}
	return dp, nil
}

func (dp DerivationPath) String() string {
	var b strings.Builder
	b.WriteString("m")
	for _, idx := range dp {
		b.WriteByte('/')
		if idx >= hdkeychain.HardenedKeyStart {
			b.WriteString(strconv.FormatUint(uint64(idx-hdkeychain.HardenedKeyStart), 10))
			b.WriteByte('\'')
		} else {
			b.WriteString(strconv.FormatUint(uint64(idx), 10))
		}
	}
	return b.String()
}

// DeriveExtendedKey walks path from the master key of seed, one child per step, in order.
func DeriveExtendedKey(seed []byte, path DerivationPath, net *chaincfg.Params) (*hdkeychain.ExtendedKey, error) {
	master, err := hdkeychain.NewMaster(seed, net)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMasterKey, err)
	}

	key := master
	for i, idx := range path {
		key, err = key.Derive(idx)
		if err != nil {
			return nil, fmt.Errorf("derive step %d of %s: %w", i, path, err)
		}
	}
	return key, nil
}

// DeriveKeyPair derives the secp256k1 key pair at path for seed on net.
func DeriveKeyPair(seed []byte, path string, net *chaincfg.Params) (*btcec.PublicKey, *btcec.PrivateKey, error) {
	dp, err := ParseDerivationPath(path)
	if err != nil {
		return nil, nil, err
	}

	key, err := DeriveExtendedKey(seed, dp, net)
	if err != nil {
		return nil, nil, err
	}

	priv, err := key.ECPrivKey()
	if err != nil {
		return nil, nil, fmt.Errorf("extract private key: %w", err)
	}
	return priv.PubKey(), priv, nil
}

var networks = map[string]*chaincfg.Params{
	"mainnet":  &chaincfg.MainNetParams,
	"bitcoin":  &chaincfg.MainNetParams,
	"main":     &chaincfg.MainNetParams,
	"testnet":  &chaincfg.TestNet3Params,
	"testnet3": &chaincfg.TestNet3Params,
	"regtest":  &chaincfg.RegressionNetParams,
	"signet":   &chaincfg.SigNetParams,
	"simnet":   &chaincfg.SimNetParams,
}

// knownNetworks is the probe order used to tell a foreign-network address from garbage.
var knownNetworks = []*chaincfg.Params{
	&chaincfg.MainNetParams,
	&chaincfg.TestNet3Params,
	&chaincfg.RegressionNetParams,
	&chaincfg.SigNetParams,
	&chaincfg.SimNetParams,
}

// ParseNetwork resolves a network tag. Empty means mainnet.
func ParseNetwork(name string) (*chaincfg.Params, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return &chaincfg.MainNetParams, nil
	}
	net, ok := networks[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownNetwork, name)
	}
	return net, nil
}
