package wallet

import (
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"

	"github.com/freewebmovement/zz-account/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bytesHex(b []byte) string {
	return hex.EncodeToString(b)
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Wallet.BaseDir = t.TempDir()
	return cfg
}

func countFiles(t *testing.T, dir string) int {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	n := 0
	for _, e := range entries {
		if !e.IsDir() {
			n++
		}
	}
	return n
}

func TestOpen_CreatesWallet(t *testing.T) {
	cfg := testConfig(t)
	dir := filepath.Join(t.TempDir(), "nested", "wallets")

	w, err := Open(cfg, dir, "test_wallet.json")
	require.NoError(t, err)

	assert.Equal(t, StateCreated, w.State())
	assert.Equal(t, dir, w.Directory())
	assert.Equal(t, "test_wallet.json", w.Filename())
	assert.Equal(t, 1, countFiles(t, dir))

	data, err := os.ReadFile(w.Path())
	require.NoError(t, err)
	decoded, err := FromJSON(data, cfg)
	require.NoError(t, err)
	assert.True(t, w.Credential().Equal(decoded))
}

func TestOpen_LoadsWithoutOverwriting(t *testing.T) {
	cfg := testConfig(t)
	dir := t.TempDir()

	first, err := Open(cfg, dir, "")
	require.NoError(t, err)
	before, err := os.ReadFile(first.Path())
	require.NoError(t, err)

	second, err := Open(cfg, dir, "")
	require.NoError(t, err)
	after, err := os.ReadFile(second.Path())
	require.NoError(t, err)

	assert.Equal(t, StateLoaded, second.State())
	assert.Equal(t, before, after)
	assert.Equal(t, first.Show(), second.Show())
	assert.Equal(t, config.DefaultWalletFile, second.Filename())
}

func TestSave_ReopenShowsSameAddress(t *testing.T) {
	cfg := testConfig(t)
	dir := t.TempDir()

	w, err := Open(cfg, dir, "wallet.json")
	require.NoError(t, err)

	replacement, err := RandomCredential(cfg)
	require.NoError(t, err)
	data, err := replacement.ToJSON(false)
	require.NoError(t, err)
	require.NoError(t, w.ImportJSON(data))
	require.NoError(t, w.Save())

	reopened, err := Open(cfg, dir, "wallet.json")
	require.NoError(t, err)
	assert.Equal(t, replacement.String(), reopened.Show())

	saved, err := os.ReadFile(w.Path())
	require.NoError(t, err)
	assert.Equal(t, data, saved, "save writes the compact form")
}

func TestLoad_ReplacesCredential(t *testing.T) {
	cfg := testConfig(t)
	dir := t.TempDir()

	a, err := Open(cfg, dir, "")
	require.NoError(t, err)
	b, err := Open(cfg, dir, "")
	require.NoError(t, err)

	replacement, err := RandomCredential(cfg)
	require.NoError(t, err)
	data, err := replacement.ToJSON(false)
	require.NoError(t, err)
	require.NoError(t, a.ImportJSON(data))
	require.NoError(t, a.Save())

	assert.NotEqual(t, a.Show(), b.Show())
	require.NoError(t, b.Load())
	assert.Equal(t, a.Show(), b.Show())
}

func TestOpen_CorruptFile(t *testing.T) {
	cfg := testConfig(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "wallet.json"), []byte("garbage"), 0o600))

	_, err := Open(cfg, dir, "")
	require.ErrorIs(t, err, ErrCorruptWalletFile)

	var opErr *OpError
	require.ErrorAs(t, err, &opErr)
	assert.Equal(t, "open", opErr.Op)
}

func TestOpen_UnwritableDirectory(t *testing.T) {
	cfg := testConfig(t)
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	_, err := Open(cfg, filepath.Join(blocker, "wallets"), "")
	require.ErrorIs(t, err, ErrPersist)
}

func TestResolveDirectory(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Wallet.BaseDir = "/base"

	dir, err := ResolveDirectory(cfg, "/abs/wallets")
	require.NoError(t, err)
	assert.Equal(t, "/abs/wallets", dir)

	dir, err = ResolveDirectory(cfg, "rel/wallets")
	require.NoError(t, err)
	assert.Equal(t, "/base/rel/wallets", dir)

	dir, err = ResolveDirectory(cfg, "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/base", config.DefaultWalletDir), dir)
}

func TestOpen_DefaultDirectory(t *testing.T) {
	cfg := testConfig(t)

	w, err := Open(cfg, "", "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(cfg.Wallet.BaseDir, config.DefaultWalletDir, config.DefaultWalletFile), w.Path())
}

func TestExportImportJSON(t *testing.T) {
	cfg := testConfig(t)
	w, err := Open(cfg, t.TempDir(), "")
	require.NoError(t, err)

	data, err := w.ExportJSON()
	require.NoError(t, err)

	decoded, err := FromJSON(data, cfg)
	require.NoError(t, err)
	assert.True(t, w.Credential().Equal(decoded))

	require.ErrorIs(t, w.ImportJSON([]byte("{}")), ErrCorruptWalletFile)
	assert.True(t, w.Credential().Equal(decoded), "failed import keeps the credential")
}
