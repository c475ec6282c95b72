package config

import (
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/freewebmovement/zz-account/common/utils"
	"github.com/naoina/toml"
)

type Common struct {
	Level       string // local, dev, prod
	ServiceName string
}

type LogInfo struct {
	Path       string
	MaxAgeHour int
	RotateHour int
}

// Coin holds the process-wide coin constants.
type Coin struct {
	Name                 string
	Symbol               string
	Decimals             uint8
	MaxHumanPopulation   uint64
	AverageAssetsPerUser uint64 // in USD
}

type Mnemonic struct {
	Language   string
	WordCount  int
	SaltPrefix string // BIP-39 salt prefix, passphrase is appended
	SeedSize   int
	SeedRounds int
}

type Address struct {
	DerivationPath string
	Network        string // mainnet, testnet, regtest, signet, simnet
	AddressType    string // p2pkh, p2wpkh, p2sh
	Prefix         string
}

type Wallet struct {
	BaseDir      string // empty: user home directory
	DefaultDir   string // joined to BaseDir when no directory is given
	FileName     string
	BackupPrefix string
}

type Config struct {
	Common   Common
	LogInfo  LogInfo
	Coin     Coin
	Mnemonic Mnemonic
	Address  Address
	Wallet   Wallet
}

const (
	DefaultDerivationPath = "m/44'/1010086'/0'/0/0"
	DefaultPrefix         = "FreeWebMovementCoin:ZeroTrustZeroGovernance"
	DefaultWalletDir      = ".free-web-coin/wallets"
	DefaultWalletFile     = "wallet.json"
	DefaultBackupPrefix   = "wallet_backup_"
)

// DefaultConfig returns the built-in configuration. Every call returns a fresh value.
func DefaultConfig() *Config {
	return &Config{
		Common: Common{
			Level:       "prod",
			ServiceName: "zz-wallet",
		},
		LogInfo: LogInfo{
			Path:       "",
			MaxAgeHour: 24 * 7,
			RotateHour: 24,
		},
		Coin: Coin{
			Name:                 "Free Web Movement Coin",
			Symbol:               "FreeWebMovementCoin",
			Decimals:             8,
			MaxHumanPopulation:   10_000_000_000,
			AverageAssetsPerUser: 1_000_000,
		},
		Mnemonic: Mnemonic{
			Language:   "english",
			WordCount:  24,
			SaltPrefix: "mnemonic",
			SeedSize:   64,
			SeedRounds: 2048,
		},
		Address: Address{
			DerivationPath: DefaultDerivationPath,
			Network:        "mainnet",
			AddressType:    "p2pkh",
			Prefix:         DefaultPrefix,
		},
		Wallet: Wallet{
			BaseDir:      "",
			DefaultDir:   DefaultWalletDir,
			FileName:     DefaultWalletFile,
			BackupPrefix: DefaultBackupPrefix,
		},
	}
}

// NewConfig overlays the TOML file at filepath onto DefaultConfig. An empty filepath looks for
// config/config.toml under the project root and falls back to the defaults when it is missing.
func NewConfig(filepath string) (*Config, error) {
	c := DefaultConfig()

	if filepath == "" {
		workDir, _ := os.Getwd()
		rootDir := utils.FindProjectRoot(workDir)
		filepath = path.Join(rootDir, "config", "config.toml")
		if _, err := os.Stat(filepath); err != nil {
			c.sanitize()
			return c, nil
		}
	}

	file, err := os.Open(filepath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	if err := toml.NewDecoder(file).Decode(c); err != nil {
		return nil, fmt.Errorf("failed to decode config %s: %w", filepath, err)
	}
	c.sanitize()
	return c, nil
}

func (p *Config) sanitize() {
	p.LogInfo.Path = expandHome(p.LogInfo.Path)
	p.Wallet.BaseDir = expandHome(p.Wallet.BaseDir)
	p.Mnemonic.Language = strings.ToLower(strings.TrimSpace(p.Mnemonic.Language))
	p.Address.Network = strings.ToLower(strings.TrimSpace(p.Address.Network))
	p.Address.AddressType = strings.ToLower(strings.TrimSpace(p.Address.AddressType))
	if p.Wallet.FileName == "" {
		p.Wallet.FileName = DefaultWalletFile
	}
	if p.Wallet.BackupPrefix == "" {
		p.Wallet.BackupPrefix = DefaultBackupPrefix
	}
}

func expandHome(p string) string {
	if p != "" && p[0] == byte('~') {
		return path.Join(utils.HomeDir(), p[1:])
	}
	return p
}

// MaxSupply is the coin supply cap in the smallest unit of account.
func (c Coin) MaxSupply() uint64 {
	return c.MaxHumanPopulation * c.AverageAssetsPerUser * 100
}

// ResolveBaseDir returns the directory relative wallet directories are joined to.
func (w Wallet) ResolveBaseDir() string {
	if w.BaseDir != "" {
		return w.BaseDir
	}
	return utils.HomeDir()
}

func (p *Config) GetConfig() *Config {
	return p
}

func (p *Config) GetLogInfoConfig() *LogInfo {
	return &p.LogInfo
}
