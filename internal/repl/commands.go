package repl

import (
	"errors"
	"fmt"
	"strings"

	"github.com/freewebmovement/zz-account/common/utils"
	"github.com/freewebmovement/zz-account/wallet"
)

// ErrUnknownCommand is returned for input that names no command.
var ErrUnknownCommand = errors.New("unknown command")

type command struct {
	name  string
	args  string
	usage string
}

var commands = []command{
	{"show", "", "print <prefix>:<address>"},
	{"save", "", "write the credential to the wallet file"},
	{"load", "", "reload the credential from the wallet file"},
	{"backup", "[path]", "write a timestamped backup"},
	{"recovery", "[path]", "restore the latest backup, or the given file"},
	{"backups", "[dir]", "list backup files"},
	{"sign", "<message>", "sign a message, print the hex DER signature"},
	{"pubkey", "", "print the compressed public key"},
	{"help", "", "show this list"},
	{"exit", "", "leave the shell"},
}

// Result is what one line of input produced.
type Result struct {
	Output string
	Quit   bool
}

// Execute runs a single command line against w.
func Execute(w *wallet.Wallet, line string) (Result, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return Result{}, nil
	}

	name, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)

	switch strings.ToLower(name) {
	case "show":
		return Result{Output: w.Show()}, nil

	case "save":
		if err := w.Save(); err != nil {
			return Result{}, err
		}
		return Result{Output: "saved to " + w.Path()}, nil

	case "load":
		if err := w.Load(); err != nil {
			return Result{}, err
		}
		return Result{Output: w.Show()}, nil

	case "backup":
		path, err := w.Backup(rest)
		if err != nil {
			return Result{}, err
		}
		return Result{Output: "backup written to " + path}, nil

	case "recovery", "recover":
		if err := w.Recovery(rest); err != nil {
			return Result{}, err
		}
		return Result{Output: "recovered " + w.Show()}, nil

	case "backups":
		paths, err := w.ListBackups(rest)
		if err != nil {
			return Result{}, err
		}
		if len(paths) == 0 {
			return Result{Output: "no backups"}, nil
		}
		return Result{Output: strings.Join(paths, "\n")}, nil

	case "sign":
		if rest == "" {
			return Result{}, fmt.Errorf("usage: sign <message>")
		}
		sig := w.Credential().Sign([]byte(rest))
		return Result{Output: utils.BytesToHex(sig)}, nil

	case "pubkey":
		return Result{Output: w.Credential().PublicKeyHex()}, nil

	case "help", "?":
		return Result{Output: Help()}, nil

	case "exit", "quit":
		return Result{Quit: true}, nil
	}

	return Result{}, fmt.Errorf("%w: %s (try help)", ErrUnknownCommand, name)
}

// Help lists the commands one per line.
func Help() string {
	var b strings.Builder
	for i, c := range commands {
		if i > 0 {
			b.WriteByte('\n')
		}
		usage := c.name
		if c.args != "" {
			usage += " " + c.args
		}
		fmt.Fprintf(&b, "%-18s %s", usage, c.usage)
	}
	return b.String()
}
