package main

import (
	"fmt"

	"github.com/freewebmovement/zz-account/common/crypto"
	"github.com/freewebmovement/zz-account/common/utils"
	"github.com/freewebmovement/zz-account/wallet"
	"github.com/spf13/cobra"
)

func newCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "new",
		Short: "Create the wallet if missing and print its address",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := openWallet()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, w.Show())
			if w.State() == wallet.StateCreated {
				fmt.Fprintln(out, "")
				fmt.Fprintln(out, "IMPORTANT: Write down your mnemonic phrase and keep it safe!")
				fmt.Fprintf(out, "Mnemonic: %s\n", w.Credential().Mnemonic())
				fmt.Fprintf(out, "Wallet saved to: %s\n", w.Path())
			}
			return nil
		},
	}
}

func showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print <prefix>:<address>",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := openWallet()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), w.Show())
			return nil
		},
	}
}

func saveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "save",
		Short: "Rewrite the wallet file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := openWallet()
			if err != nil {
				return err
			}
			if err := w.Save(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "saved: %s\n", w.Path())
			return nil
		},
	}
}

func loadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "load",
		Short: "Reload the wallet file and print its address",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := openWallet()
			if err != nil {
				return err
			}
			if err := w.Load(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), w.Show())
			return nil
		},
	}
}

func backupCmd() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Write a timestamped backup of the wallet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := openWallet()
			if err != nil {
				return err
			}
			dest, err := w.Backup(path)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "backup: %s\n", dest)
			return nil
		},
	}
	cmd.Flags().StringVar(&path, "path", "", "Backup file, or directory for a timestamped file")
	return cmd
}

func recoveryCmd() *cobra.Command {
	var (
		path string
		save bool
	)

	cmd := &cobra.Command{
		Use:   "recovery",
		Short: "Restore the latest backup, or the given file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := openWallet()
			if err != nil {
				return err
			}
			if err := w.Recovery(path); err != nil {
				return err
			}
			if save {
				if err := w.Save(); err != nil {
					return err
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), w.Show())
			return nil
		},
	}
	cmd.Flags().StringVar(&path, "path", "", "Backup file, or directory to search")
	cmd.Flags().BoolVar(&save, "save", false, "Also overwrite the wallet file with the recovered credential")
	return cmd
}

func backupsCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "backups",
		Short: "List backup files, oldest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := openWallet()
			if err != nil {
				return err
			}
			paths, err := w.ListBackups(dir)
			if err != nil {
				return err
			}
			for _, p := range paths {
				fmt.Fprintln(cmd.OutOrStdout(), p)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "path", "", "Directory to list")
	return cmd
}

func signCmd() *cobra.Command {
	var message string

	cmd := &cobra.Command{
		Use:   "sign",
		Short: "Sign a message, print the hex DER signature",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := openWallet()
			if err != nil {
				return err
			}
			sig := w.Credential().Sign([]byte(message))
			fmt.Fprintln(cmd.OutOrStdout(), utils.BytesToHex(sig))
			return nil
		},
	}
	cmd.Flags().StringVarP(&message, "message", "m", "", "Message to sign")
	_ = cmd.MarkFlagRequired("message")
	return cmd
}

func verifyCmd() *cobra.Command {
	var message, signature, pubkey string

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Verify a hex DER signature",
		Long:  `Verify a signature against --pubkey, or against the wallet's own key when --pubkey is omitted.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if pubkey == "" {
				w, err := openWallet()
				if err != nil {
					return err
				}
				pubkey = w.Credential().PublicKeyHex()
			}

			ok, err := crypto.VerifyMessageHex(pubkey, []byte(message), signature)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("signature is not valid")
			}
			fmt.Fprintln(cmd.OutOrStdout(), "signature is valid")
			return nil
		},
	}
	cmd.Flags().StringVarP(&message, "message", "m", "", "Signed message")
	cmd.Flags().StringVarP(&signature, "signature", "s", "", "Hex DER signature")
	cmd.Flags().StringVar(&pubkey, "pubkey", "", "Compressed public key hex")
	_ = cmd.MarkFlagRequired("message")
	_ = cmd.MarkFlagRequired("signature")
	return cmd
}

func infoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show coin constants and the active key settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Coin:            %s (%s)\n", cfg.Coin.Name, cfg.Coin.Symbol)
			fmt.Fprintf(out, "Decimals:        %d\n", cfg.Coin.Decimals)
			fmt.Fprintf(out, "Max supply:      %d\n", cfg.Coin.MaxSupply())
			fmt.Fprintf(out, "Derivation path: %s\n", cfg.Address.DerivationPath)
			fmt.Fprintf(out, "Network:         %s\n", cfg.Address.Network)
			fmt.Fprintf(out, "Address type:    %s\n", cfg.Address.AddressType)
			fmt.Fprintf(out, "Prefix:          %s\n", cfg.Address.Prefix)
			return nil
		},
	}
}
