package wallet

import (
	"testing"

	"github.com/freewebmovement/zz-account/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_Lifecycle(t *testing.T) {
	r := NewRegistry(nil)

	h, err := r.Create()
	require.NoError(t, err)
	assert.NotZero(t, h)
	assert.Equal(t, 1, r.Len())

	prefix, err := r.Prefix(h)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultPrefix, prefix)

	display, err := r.String(h)
	require.NoError(t, err)
	assert.Contains(t, display, config.DefaultPrefix+":")

	pub, err := r.PublicKeyHex(h)
	require.NoError(t, err)
	assert.Len(t, pub, 66)

	priv, err := r.PrivateKeyHex(h)
	require.NoError(t, err)
	assert.Len(t, priv, 64)

	js, err := r.ToJSON(h)
	require.NoError(t, err)

	clone, err := r.CreateFromJSON(js)
	require.NoError(t, err)
	assert.NotEqual(t, h, clone)

	cloneDisplay, err := r.String(clone)
	require.NoError(t, err)
	assert.Equal(t, display, cloneDisplay)

	c, err := r.Get(h)
	require.NoError(t, err)

	require.NoError(t, r.Destroy(h))
	assert.Equal(t, make([]byte, 32), c.PrivateKey())
	require.ErrorIs(t, r.Destroy(h), ErrUnknownHandle)

	_, err = r.String(h)
	require.ErrorIs(t, err, ErrUnknownHandle)

	require.NoError(t, r.Destroy(clone))
	assert.Zero(t, r.Len())
}

func TestRegistry_BadInput(t *testing.T) {
	r := NewRegistry(config.DefaultConfig())

	_, err := r.CreateFromJSON("not json")
	require.ErrorIs(t, err, ErrCorruptWalletFile)
	assert.Zero(t, r.Len())

	require.ErrorIs(t, r.Destroy(0), ErrUnknownHandle)
	require.ErrorIs(t, r.Destroy(42), ErrUnknownHandle)
}
