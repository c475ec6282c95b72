package wallet

import (
	"encoding/json"
	"testing"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/freewebmovement/zz-account/common/crypto"
	"github.com/freewebmovement/zz-account/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const legalWinner = "legal winner thank year wave sausage worth useful legal winner thank yellow"

func phraseSpec(phrase string) MnemonicSpec {
	return MnemonicSpec{Language: crypto.English, WordCount: 12, Phrase: phrase}
}

func TestNewCredential_Deterministic(t *testing.T) {
	cfg := config.DefaultConfig()

	a, err := NewCredential(cfg, phraseSpec(legalWinner), nil)
	require.NoError(t, err)
	b, err := NewCredential(cfg, phraseSpec(legalWinner), nil)
	require.NoError(t, err)

	assert.Equal(t, a.String(), b.String())
	assert.Equal(t, a.PublicKey(), b.PublicKey())
	assert.Equal(t, a.PrivateKey(), b.PrivateKey())
	assert.True(t, a.Equal(b))

	assert.Equal(t, config.DefaultPrefix+":"+a.Address(), a.String())
	assert.Equal(t, crypto.P2PKH, a.AddressType())
	assert.Equal(t, legalWinner, a.Mnemonic())
	assert.Len(t, a.PublicKey(), 33)
	assert.Len(t, a.PrivateKey(), 32)

	other, err := NewCredential(cfg, phraseSpec("public refuse price sadness winter nose finger bomb damage corn expect marble"), nil)
	require.NoError(t, err)
	assert.NotEqual(t, a.String(), other.String())
}

func TestNewCredential_PassphraseChangesIdentity(t *testing.T) {
	cfg := config.DefaultConfig()
	spec := phraseSpec(legalWinner)

	plain, err := NewCredential(cfg, spec, nil)
	require.NoError(t, err)

	spec.Passphrase = "TREZOR"
	salted, err := NewCredential(cfg, spec, nil)
	require.NoError(t, err)

	assert.NotEqual(t, plain.Address(), salted.Address())
}

func TestNewCredential_AddressTypes(t *testing.T) {
	cfg := config.DefaultConfig()
	seen := map[string]bool{}

	for _, typ := range []crypto.AddressType{crypto.P2PKH, crypto.P2WPKH, crypto.P2SHP2WPKH} {
		as := AddressSpec{
			DerivationPath: config.DefaultDerivationPath,
			Network:        &chaincfg.MainNetParams,
			AddressType:    typ,
			Prefix:         "test",
		}
		c, err := NewCredential(cfg, phraseSpec(legalWinner), &as)
		require.NoError(t, err)
		assert.False(t, seen[c.Address()], "duplicate address for %s", typ)
		seen[c.Address()] = true
	}
	assert.Len(t, seen, 3)

	as := AddressSpec{
		DerivationPath: config.DefaultDerivationPath,
		Network:        &chaincfg.MainNetParams,
		AddressType:    crypto.P2TR,
	}
	c, err := NewCredential(cfg, phraseSpec(legalWinner), &as)
	require.ErrorIs(t, err, crypto.ErrUnsupportedAddressType)
	assert.Nil(t, c)
}

func TestNewCredential_Errors(t *testing.T) {
	cfg := config.DefaultConfig()

	_, err := NewCredential(cfg, phraseSpec("legal winner thank"), nil)
	require.ErrorIs(t, err, crypto.ErrInvalidMnemonic)

	as := AddressSpec{DerivationPath: "m/44'/x", AddressType: crypto.P2PKH}
	_, err = NewCredential(cfg, phraseSpec(legalWinner), &as)
	require.ErrorIs(t, err, crypto.ErrInvalidDerivationPath)
}

func TestCredentialJSON_RoundTrip(t *testing.T) {
	cfg := config.DefaultConfig()
	c, err := RandomCredential(cfg)
	require.NoError(t, err)

	for _, pretty := range []bool{false, true} {
		data, err := c.ToJSON(pretty)
		require.NoError(t, err)

		decoded, err := FromJSON(data, cfg)
		require.NoError(t, err)

		assert.True(t, c.Equal(decoded))
		assert.Equal(t, c.String(), decoded.String())
		assert.Equal(t, c.PublicKeyHex(), decoded.PublicKeyHex())
		assert.Equal(t, c.PrivateKeyWIF(), decoded.PrivateKeyWIF())
		assert.Equal(t, c.Mnemonic(), decoded.Mnemonic())

		again, err := decoded.ToJSON(pretty)
		require.NoError(t, err)
		assert.Equal(t, data, again)
	}
}

func TestCredentialJSON_Fields(t *testing.T) {
	cfg := config.DefaultConfig()
	c, err := NewCredential(cfg, phraseSpec(legalWinner), nil)
	require.NoError(t, err)

	data, err := c.ToJSON(false)
	require.NoError(t, err)

	var fields map[string]string
	require.NoError(t, json.Unmarshal(data, &fields))
	assert.Equal(t, map[string]string{
		"prefix":      config.DefaultPrefix,
		"mnemonic":    legalWinner,
		"address":     c.Address(),
		"public_key":  c.PublicKeyHex(),
		"private_key": c.PrivateKeyWIF(),
	}, fields)
}

func mutate(t *testing.T, data []byte, field, value string) []byte {
	t.Helper()
	var fields map[string]string
	require.NoError(t, json.Unmarshal(data, &fields))
	fields[field] = value
	out, err := json.Marshal(fields)
	require.NoError(t, err)
	return out
}

func TestFromJSON_Rejects(t *testing.T) {
	cfg := config.DefaultConfig()
	c, err := NewCredential(cfg, phraseSpec(legalWinner), nil)
	require.NoError(t, err)
	other, err := RandomCredential(cfg)
	require.NoError(t, err)

	data, err := c.ToJSON(false)
	require.NoError(t, err)

	_, err = FromJSON([]byte("{not json"), cfg)
	require.ErrorIs(t, err, ErrCorruptWalletFile)

	_, err = FromJSON([]byte(`{"prefix":"x"}`), cfg)
	require.ErrorIs(t, err, ErrCorruptWalletFile)

	_, err = FromJSON(mutate(t, data, "mnemonic", "legal winner thank"), cfg)
	require.ErrorIs(t, err, ErrCorruptWalletFile)
	require.ErrorIs(t, err, crypto.ErrInvalidMnemonic)

	_, err = FromJSON(mutate(t, data, "address", other.Address()), cfg)
	require.ErrorIs(t, err, ErrCorruptWalletFile)

	_, err = FromJSON(mutate(t, data, "public_key", other.PublicKeyHex()), cfg)
	require.ErrorIs(t, err, ErrCorruptWalletFile)

	_, err = FromJSON(mutate(t, data, "private_key", other.PrivateKeyWIF()), cfg)
	require.ErrorIs(t, err, ErrCorruptWalletFile)
}

func TestFromJSON_NetworkMismatch(t *testing.T) {
	testnet := config.DefaultConfig()
	testnet.Address.Network = "testnet"

	c, err := RandomCredential(testnet)
	require.NoError(t, err)
	data, err := c.ToJSON(false)
	require.NoError(t, err)

	decoded, err := FromJSON(data, testnet)
	require.NoError(t, err)
	assert.True(t, c.Equal(decoded))

	_, err = FromJSON(data, config.DefaultConfig())
	require.ErrorIs(t, err, crypto.ErrNetworkMismatch)
	assert.NotErrorIs(t, err, ErrCorruptWalletFile)
}

func TestCredential_SignVerify(t *testing.T) {
	cfg := config.DefaultConfig()
	c, err := NewCredential(cfg, phraseSpec(legalWinner), nil)
	require.NoError(t, err)
	other, err := RandomCredential(cfg)
	require.NoError(t, err)

	msg := []byte("Hello, FWM!")
	sig := c.Sign(msg)
	assert.True(t, c.Verify(msg, sig))
	assert.False(t, c.Verify([]byte("Hello, FWM?"), sig))
	assert.False(t, other.Verify(msg, sig))

	ok, err := crypto.VerifyMessageHex(c.PublicKeyHex(), msg, bytesHex(sig))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCredential_Wipe(t *testing.T) {
	c, err := RandomCredential(config.DefaultConfig())
	require.NoError(t, err)

	c.Wipe()
	assert.Equal(t, make([]byte, 32), c.PrivateKey())
	assert.Empty(t, c.PrivateKeyWIF())
}
