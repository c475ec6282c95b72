package wallet

import (
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"sort"

	"github.com/freewebmovement/zz-account/common/logger"
	"github.com/freewebmovement/zz-account/common/utils"
	"go.uber.org/zap"
)

// BackupTimeLayout is fixed width so lexicographic order of backup names is chronological.
const BackupTimeLayout = "20060102_150405"

// backupName stamps the current local time into the configured backup prefix. Two backups in
// the same second share a name and the later one overwrites the earlier.
func (w *Wallet) backupName() string {
	return w.cfg.Wallet.BackupPrefix + w.now().Format(BackupTimeLayout) + ".json"
}

func (w *Wallet) backupPattern() *regexp.Regexp {
	return regexp.MustCompile(`^` + regexp.QuoteMeta(w.cfg.Wallet.BackupPrefix) + `\d{8}_\d{6}\.json$`)
}

// Backup writes a pretty-printed snapshot of the credential and returns its path. A directory
// target (existing, or ending in a separator) receives a timestamped file; any other target is
// written as given; an empty target stamps into the wallet directory.
func (w *Wallet) Backup(target string) (string, error) {
	var dest string
	switch {
	case target == "":
		dest = filepath.Join(w.directory, w.backupName())
	case utils.IsDirTarget(target):
		dest = filepath.Join(target, w.backupName())
	default:
		dest = target
	}

	abs, err := filepath.Abs(dest)
	if err != nil {
		return "", persistErr("backup", dest, err)
	}
	if err := utils.EnsureDir(filepath.Dir(abs)); err != nil {
		return "", persistErr("backup", abs, err)
	}
	if err := writeCredential(abs, w.credential, true); err != nil {
		return "", persistErr("backup", abs, err)
	}

	logger.L().Info("wallet backup written", zap.String("path", abs))
	return abs, nil
}

// ListBackups returns the backup files in dir, oldest first. An empty dir lists the wallet
// directory.
func (w *Wallet) ListBackups(dir string) ([]string, error) {
	if dir == "" {
		dir = w.directory
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, persistErr("recovery", dir, err)
	}

	pattern := w.backupPattern()
	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !pattern.MatchString(entry.Name()) {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	paths := make([]string, len(names))
	for i, name := range names {
		paths[i] = filepath.Join(dir, name)
	}
	return paths, nil
}

// LatestBackup returns the newest backup in dir.
func (w *Wallet) LatestBackup(dir string) (string, error) {
	backups, err := w.ListBackups(dir)
	if err != nil {
		return "", err
	}
	if len(backups) == 0 {
		if dir == "" {
			dir = w.directory
		}
		return "", &OpError{Op: "recovery", Path: dir, Err: ErrNoBackupFound}
	}
	return backups[len(backups)-1], nil
}

// Recovery replaces the in-memory credential with a backup. A file path is loaded directly; a
// directory, or an empty path for the wallet directory, is searched for the newest backup. The
// wallet file itself is only rewritten by a later Save.
func (w *Wallet) Recovery(path string) error {
	src := path
	if path == "" || utils.IsDirTarget(path) {
		latest, err := w.LatestBackup(path)
		if err != nil {
			return err
		}
		src = latest
	}

	cred, err := readCredential(src, w.cfg)
	if err != nil {
		return &OpError{Op: "recovery", Path: src, Err: err}
	}
	w.credential = cred

	logger.L().Info("wallet recovered", zap.String("from", src), zap.String("address", cred.Address()))
	return nil
}
