package wallet

import (
	"errors"
	"fmt"
)

var (
	ErrCorruptWalletFile = errors.New("corrupt wallet file")
	ErrNoBackupFound     = errors.New("no backup found")
	ErrPersist           = errors.New("wallet persistence failed")
	ErrUnknownHandle     = errors.New("unknown credential handle")
)

// OpError records the wallet operation and file that failed.
type OpError struct {
	Op   string // "open", "save", "load", "backup", "recovery"
	Path string
	Err  error
}

func (e *OpError) Error() string {
	return fmt.Sprintf("wallet %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *OpError) Unwrap() error {
	return e.Err
}

func persistErr(op, path string, err error) error {
	return &OpError{Op: op, Path: path, Err: fmt.Errorf("%w: %w", ErrPersist, err)}
}
