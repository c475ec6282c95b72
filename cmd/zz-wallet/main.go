package main

import (
	"fmt"
	"os"

	"github.com/freewebmovement/zz-account/common/logger"
	"github.com/freewebmovement/zz-account/config"
	"github.com/freewebmovement/zz-account/internal/repl"
	"github.com/freewebmovement/zz-account/wallet"
	"github.com/spf13/cobra"
)

// Version info (Injected from Makefile)
var (
	Version   = "dev"
	BuildTime = "unknown"
)

var (
	configFile string
	walletDir  string
	walletFile string
	debug      bool
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		logger.Sync()
		os.Exit(1)
	}
	logger.Sync()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "zz-wallet",
		Short:         "Free Web Movement Coin wallet",
		Long:          `Single-credential wallet: mnemonic, HD key derivation, addresses, signing and JSON persistence with backups.`,
		Version:       fmt.Sprintf("%s (built %s)", Version, BuildTime),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Register global flags
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Path to config file")
	rootCmd.PersistentFlags().StringVar(&walletDir, "dir", "", "Wallet directory (relative paths are joined to the base directory)")
	rootCmd.PersistentFlags().StringVar(&walletFile, "file", "", "Wallet file name")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Log debug output to stderr")

	rootCmd.AddCommand(newCmd())
	rootCmd.AddCommand(showCmd())
	rootCmd.AddCommand(saveCmd())
	rootCmd.AddCommand(loadCmd())
	rootCmd.AddCommand(backupCmd())
	rootCmd.AddCommand(recoveryCmd())
	rootCmd.AddCommand(backupsCmd())
	rootCmd.AddCommand(signCmd())
	rootCmd.AddCommand(verifyCmd())
	rootCmd.AddCommand(infoCmd())
	rootCmd.AddCommand(replCmd())

	return rootCmd
}

// loadConfig reads the config file and starts logging.
func loadConfig() (*config.Config, error) {
	cfg, err := config.NewConfig(configFile)
	if err != nil {
		return nil, err
	}
	if debug {
		cfg.Common.Level = "alpha"
	}
	if err := logger.InitLogger(cfg); err != nil {
		return nil, fmt.Errorf("failed to init logger: %w", err)
	}
	return cfg, nil
}

// openWallet opens the wallet selected by --dir and --file, creating it when missing.
func openWallet() (*wallet.Wallet, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return wallet.Open(cfg, walletDir, walletFile)
}

func replCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Start the interactive wallet shell",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := openWallet()
			if err != nil {
				return err
			}
			return repl.Run(w)
		},
	}
}
