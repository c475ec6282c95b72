package crypto

import "errors"

// Derivation and encoding failures are structural: callers must not retry them or fall back
// to another encoding.
var (
	ErrInvalidMnemonic        = errors.New("invalid mnemonic")
	ErrInvalidDerivationPath  = errors.New("invalid derivation path")
	ErrMasterKey              = errors.New("cannot create master key from seed")
	ErrUnsupportedAddressType = errors.New("unsupported address type")
	ErrNetworkMismatch        = errors.New("network mismatch")
	ErrUnknownNetwork         = errors.New("unknown network")
	ErrInvalidAddress         = errors.New("invalid address")
	ErrInvalidPublicKey       = errors.New("invalid public key")
	ErrInvalidPrivateKey      = errors.New("invalid private key")
)
