package wallet

import (
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/freewebmovement/zz-account/common/crypto"
	"github.com/freewebmovement/zz-account/config"
)

// MnemonicSpec describes the phrase a credential is built from. An empty Phrase generates
// a new one with WordCount words.
type MnemonicSpec struct {
	Language   crypto.Language
	WordCount  int
	Phrase     string
	Passphrase string
}

// AddressSpec selects where in the key tree the credential lives and how its address is shown.
type AddressSpec struct {
	DerivationPath string
	Network        *chaincfg.Params
	AddressType    crypto.AddressType
	Prefix         string
}

// DefaultMnemonicSpec returns a spec for a freshly generated phrase.
func DefaultMnemonicSpec(cfg *config.Config) (MnemonicSpec, error) {
	lang, err := crypto.ParseLanguage(cfg.Mnemonic.Language)
	if err != nil {
		return MnemonicSpec{}, err
	}
	return MnemonicSpec{
		Language:  lang,
		WordCount: cfg.Mnemonic.WordCount,
	}, nil
}

// DefaultAddressSpec returns the configured derivation path, network, address type and prefix.
func DefaultAddressSpec(cfg *config.Config) (AddressSpec, error) {
	net, err := crypto.ParseNetwork(cfg.Address.Network)
	if err != nil {
		return AddressSpec{}, err
	}
	typ, err := crypto.ParseAddressType(cfg.Address.AddressType)
	if err != nil {
		return AddressSpec{}, err
	}

	path := cfg.Address.DerivationPath
	if path == "" {
		path = config.DefaultDerivationPath
	}
	return AddressSpec{
		DerivationPath: path,
		Network:        net,
		AddressType:    typ,
		Prefix:         cfg.Address.Prefix,
	}, nil
}

func seedParams(cfg *config.Config) crypto.SeedParams {
	p := crypto.DefaultSeedParams()
	if cfg.Mnemonic.SaltPrefix != "" {
		p.SaltPrefix = cfg.Mnemonic.SaltPrefix
	}
	if cfg.Mnemonic.SeedRounds > 0 {
		p.Rounds = cfg.Mnemonic.SeedRounds
	}
	if cfg.Mnemonic.SeedSize > 0 {
		p.Size = cfg.Mnemonic.SeedSize
	}
	return p
}
