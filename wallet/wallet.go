package wallet

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/freewebmovement/zz-account/common/logger"
	"github.com/freewebmovement/zz-account/common/utils"
	"github.com/freewebmovement/zz-account/config"
	"go.uber.org/zap"
)

// State tracks how the wallet's credential was obtained.
type State int

const (
	StateUninitialized State = iota
	StateResolved
	StateLoaded
	StateCreated
)

func (s State) String() string {
	switch s {
	case StateResolved:
		return "resolved"
	case StateLoaded:
		return "loaded"
	case StateCreated:
		return "created"
	default:
		return "uninitialized"
	}
}

// Wallet owns one credential and the file it is persisted to. Directory and filename are
// fixed at Open; the credential is replaced by Load and Recovery.
//
// There is no locking: two processes opening the same path race on create and write.
type Wallet struct {
	cfg        *config.Config
	credential *Credential
	directory  string
	filename   string
	state      State
	now        func() time.Time
}

// Open resolves the wallet file and loads it, or creates and persists a new random credential
// when the file does not exist. Empty directory or filename select the configured defaults.
func Open(cfg *config.Config, directory, filename string) (*Wallet, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	dir, err := ResolveDirectory(cfg, directory)
	if err != nil {
		return nil, &OpError{Op: "open", Path: directory, Err: err}
	}
	if filename == "" {
		filename = cfg.Wallet.FileName
	}

	w := &Wallet{
		cfg:       cfg,
		directory: dir,
		filename:  filename,
		state:     StateUninitialized,
		now:       time.Now,
	}

	if err := utils.EnsureDir(dir); err != nil {
		return nil, persistErr("open", dir, err)
	}
	w.state = StateResolved

	path := w.Path()
	if utils.FileExists(path) {
		cred, err := readCredential(path, cfg)
		if err != nil {
			return nil, &OpError{Op: "open", Path: path, Err: err}
		}
		w.credential = cred
		w.state = StateLoaded
		logger.L().Info("wallet loaded", zap.String("path", path), zap.String("address", cred.Address()))
		return w, nil
	} else if _, err := os.Stat(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, persistErr("open", path, err)
	}

	cred, err := RandomCredential(cfg)
	if err != nil {
		return nil, &OpError{Op: "open", Path: path, Err: err}
	}
	if err := writeCredential(path, cred, true); err != nil {
		return nil, persistErr("open", path, err)
	}
	w.credential = cred
	w.state = StateCreated
	logger.L().Info("wallet created", zap.String("path", path), zap.String("address", cred.Address()))
	return w, nil
}

// ResolveDirectory turns the directory argument into an absolute path: absolute paths are
// kept, relative ones are joined to the base directory, and an empty one selects the default
// wallet directory under the base directory.
func ResolveDirectory(cfg *config.Config, directory string) (string, error) {
	var dir string
	switch {
	case directory == "":
		dir = cfg.Wallet.DefaultDir
		if dir == "" {
			dir = config.DefaultWalletDir
		}
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(cfg.Wallet.ResolveBaseDir(), dir)
		}
	case filepath.IsAbs(directory):
		dir = directory
	default:
		dir = filepath.Join(cfg.Wallet.ResolveBaseDir(), directory)
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve wallet directory: %w", err)
	}
	return abs, nil
}

func (w *Wallet) Directory() string       { return w.directory }
func (w *Wallet) Filename() string        { return w.filename }
func (w *Wallet) State() State            { return w.state }
func (w *Wallet) Credential() *Credential { return w.credential }
func (w *Wallet) Config() *config.Config  { return w.cfg }
func (w *Wallet) Path() string            { return filepath.Join(w.directory, w.filename) }

// Show returns the display form of the held credential.
func (w *Wallet) Show() string {
	return w.credential.String()
}

// SetClock replaces the time source used to stamp backups.
func (w *Wallet) SetClock(now func() time.Time) {
	w.now = now
}

// Save overwrites the wallet file with the compact JSON form of the current credential.
func (w *Wallet) Save() error {
	path := w.Path()
	if err := writeCredential(path, w.credential, false); err != nil {
		return persistErr("save", path, err)
	}
	logger.L().Info("wallet saved", zap.String("path", path))
	return nil
}

// Load replaces the in-memory credential with the one in the wallet file.
func (w *Wallet) Load() error {
	path := w.Path()
	cred, err := readCredential(path, w.cfg)
	if err != nil {
		return &OpError{Op: "load", Path: path, Err: err}
	}
	w.credential = cred
	logger.L().Info("wallet reloaded", zap.String("path", path), zap.String("address", cred.Address()))
	return nil
}

// ExportJSON returns the pretty-printed credential.
func (w *Wallet) ExportJSON() ([]byte, error) {
	return w.credential.ToJSON(true)
}

// ImportJSON validates data and replaces the in-memory credential. The file is untouched
// until Save.
func (w *Wallet) ImportJSON(data []byte) error {
	cred, err := FromJSON(data, w.cfg)
	if err != nil {
		return err
	}
	w.credential = cred
	return nil
}

func readCredential(path string, cfg *config.Config) (*Credential, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPersist, err)
	}
	return FromJSON(data, cfg)
}

func writeCredential(path string, cred *Credential, pretty bool) error {
	data, err := cred.ToJSON(pretty)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}
