package wallet

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/freewebmovement/zz-account/common/crypto"
	"github.com/freewebmovement/zz-account/common/utils"
	"github.com/freewebmovement/zz-account/config"
)

// Credential is the derived identity: phrase, key pair and the address of the public key.
// The address is always the encoding of publicKey under addrType on net.
type Credential struct {
	prefix     string
	mnemonic   string
	address    btcutil.Address
	addrType   crypto.AddressType
	publicKey  *btcec.PublicKey
	privateKey *btcec.PrivateKey
	wif        string
	net        *chaincfg.Params
}

// credentialJSON is the persisted form. Every field is a string.
type credentialJSON struct {
	Prefix     string `json:"prefix"`
	Mnemonic   string `json:"mnemonic"`
	Address    string `json:"address"`
	PublicKey  string `json:"public_key"`
	PrivateKey string `json:"private_key"` // WIF, compressed
}

// NewCredential derives a credential from ms. A nil as uses the configured defaults.
func NewCredential(cfg *config.Config, ms MnemonicSpec, as *AddressSpec) (*Credential, error) {
	var spec AddressSpec
	if as == nil {
		def, err := DefaultAddressSpec(cfg)
		if err != nil {
			return nil, err
		}
		spec = def
	} else {
		spec = *as
	}
	if spec.Network == nil {
		spec.Network = &chaincfg.MainNetParams
	}
	if !spec.AddressType.Supported() {
		return nil, fmt.Errorf("%w: %s", crypto.ErrUnsupportedAddressType, spec.AddressType)
	}

	lang := ms.Language
	if lang == "" {
		lang = crypto.English
	}

	var phrase string
	var err error
	if ms.Phrase == "" {
		phrase, err = crypto.GenerateMnemonic(lang, ms.WordCount)
	} else {
		phrase, err = crypto.ParseMnemonic(lang, ms.Phrase)
	}
	if err != nil {
		return nil, err
	}

	seed := crypto.SeedFromMnemonic(phrase, ms.Passphrase, seedParams(cfg))
	defer clear(seed)

	pub, priv, err := crypto.DeriveKeyPair(seed, spec.DerivationPath, spec.Network)
	if err != nil {
		return nil, err
	}

	addr, err := crypto.EncodeAddress(pub, spec.Network, spec.AddressType)
	if err != nil {
		return nil, err
	}

	wif, err := crypto.EncodeWIF(priv, spec.Network)
	if err != nil {
		return nil, err
	}

	return &Credential{
		prefix:     spec.Prefix,
		mnemonic:   phrase,
		address:    addr,
		addrType:   spec.AddressType,
		publicKey:  pub,
		privateKey: priv,
		wif:        wif,
		net:        spec.Network,
	}, nil
}

// RandomCredential generates a credential from a fresh phrase with the configured defaults.
func RandomCredential(cfg *config.Config) (*Credential, error) {
	ms, err := DefaultMnemonicSpec(cfg)
	if err != nil {
		return nil, err
	}
	return NewCredential(cfg, ms, nil)
}

func (c *Credential) Prefix() string                  { return c.prefix }
func (c *Credential) Mnemonic() string                { return c.mnemonic }
func (c *Credential) Address() string                 { return c.address.EncodeAddress() }
func (c *Credential) AddressType() crypto.AddressType { return c.addrType }
func (c *Credential) Network() *chaincfg.Params       { return c.net }

// PublicKey returns the 33-byte compressed public key.
func (c *Credential) PublicKey() []byte {
	return c.publicKey.SerializeCompressed()
}

func (c *Credential) PublicKeyHex() string {
	return crypto.PublicKeyToHex(c.publicKey)
}

// PrivateKey returns the raw 32-byte private scalar.
func (c *Credential) PrivateKey() []byte {
	return c.privateKey.Serialize()
}

func (c *Credential) PrivateKeyHex() string {
	return utils.BytesToHex(c.privateKey.Serialize())
}

// PrivateKeyWIF returns the private key in wallet import format.
func (c *Credential) PrivateKeyWIF() string {
	return c.wif
}

// Sign returns a DER signature over the SHA-256 digest of msg.
func (c *Credential) Sign(msg []byte) []byte {
	return crypto.SignMessage(c.privateKey, msg)
}

// Verify checks sig against this credential's public key.
func (c *Credential) Verify(msg, sig []byte) bool {
	return crypto.VerifyMessage(c.publicKey, msg, sig)
}

// String is the display form <prefix>:<address>.
func (c *Credential) String() string {
	return c.prefix + ":" + c.Address()
}

// Equal compares every persisted field.
func (c *Credential) Equal(o *Credential) bool {
	if c == nil || o == nil {
		return c == o
	}
	return c.prefix == o.prefix &&
		c.mnemonic == o.mnemonic &&
		c.Address() == o.Address() &&
		bytes.Equal(c.PublicKey(), o.PublicKey()) &&
		c.wif == o.wif
}

// Wipe zeroes the private scalar. The credential must not be used for signing afterwards.
func (c *Credential) Wipe() {
	if c.privateKey != nil {
		c.privateKey.Zero()
	}
	c.wif = ""
}

func (c *Credential) MarshalJSON() ([]byte, error) {
	return json.Marshal(credentialJSON{
		Prefix:     c.prefix,
		Mnemonic:   c.mnemonic,
		Address:    c.Address(),
		PublicKey:  c.PublicKeyHex(),
		PrivateKey: c.wif,
	})
}

// ToJSON serializes the credential, indented when pretty is set.
func (c *Credential) ToJSON(pretty bool) ([]byte, error) {
	format := utils.SerializationFormatJSON
	if pretty {
		format = utils.SerializationFormatPrettyJSON
	}
	return utils.SerializeData(c, format)
}

// FromJSON decodes and validates a persisted credential for the configured network and
// mnemonic language. Schema and consistency failures wrap ErrCorruptWalletFile; an address or
// key from another network wraps crypto.ErrNetworkMismatch.
func FromJSON(data []byte, cfg *config.Config) (*Credential, error) {
	net, err := crypto.ParseNetwork(cfg.Address.Network)
	if err != nil {
		return nil, err
	}
	lang, err := crypto.ParseLanguage(cfg.Mnemonic.Language)
	if err != nil {
		return nil, err
	}

	var raw credentialJSON
	if err := utils.DeserializeData(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptWalletFile, err)
	}
	if raw.Mnemonic == "" || raw.Address == "" || raw.PublicKey == "" || raw.PrivateKey == "" {
		return nil, fmt.Errorf("%w: missing field", ErrCorruptWalletFile)
	}

	phrase, err := crypto.ParseMnemonic(lang, raw.Mnemonic)
	if err != nil {
		return nil, corrupt(err)
	}
	if phrase != raw.Mnemonic {
		return nil, fmt.Errorf("%w: mnemonic is not in canonical form", ErrCorruptWalletFile)
	}

	addr, typ, err := crypto.DecodeAddress(raw.Address, net)
	if err != nil {
		return nil, corrupt(err)
	}

	pub, err := crypto.ParsePublicKeyHex(raw.PublicKey)
	if err != nil {
		return nil, corrupt(err)
	}
	if crypto.PublicKeyToHex(pub) != raw.PublicKey {
		return nil, fmt.Errorf("%w: only compressed public keys are supported", ErrCorruptWalletFile)
	}

	wif, err := crypto.DecodeWIF(raw.PrivateKey, net)
	if err != nil {
		return nil, corrupt(err)
	}
	if !wif.CompressPubKey {
		return nil, fmt.Errorf("%w: only compressed private keys are supported", ErrCorruptWalletFile)
	}
	if !wif.PrivKey.PubKey().IsEqual(pub) {
		return nil, fmt.Errorf("%w: private key does not match public key", ErrCorruptWalletFile)
	}

	want, err := crypto.EncodeAddress(pub, net, typ)
	if err != nil {
		return nil, corrupt(err)
	}
	if want.EncodeAddress() != addr.EncodeAddress() {
		return nil, fmt.Errorf("%w: address does not belong to public key", ErrCorruptWalletFile)
	}

	return &Credential{
		prefix:     raw.Prefix,
		mnemonic:   phrase,
		address:    addr,
		addrType:   typ,
		publicKey:  pub,
		privateKey: wif.PrivKey,
		wif:        raw.PrivateKey,
		net:        net,
	}, nil
}

// corrupt tags decode failures as file corruption, except network mismatches which callers
// need to tell apart.
func corrupt(err error) error {
	if errors.Is(err, crypto.ErrNetworkMismatch) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrCorruptWalletFile, err)
}
