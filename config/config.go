// Package config handles hdkeys configuration.
//
// Values are layered: built-in defaults, then the .conf file in the data
// directory, then global command-line flags. Subcommand flags are applied
// on top by the command itself.
package config

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/DeFiFoFum/cryptography-resources/pkg/types"
)

// Config holds runtime configuration.
type Config struct {
	// Core
	Network types.Network `conf:"network"`
	DataDir string        `conf:"datadir"`

	// Account derivation
	Derive DeriveConfig

	// Mnemonic generation
	Mnemonic MnemonicConfig

	// Per-chain encoding variants
	Bitcoin BitcoinConfig
	Solana  SolanaConfig

	// Output rendering
	Output OutputConfig

	// Encrypted mnemonic storage
	Keystore KeystoreConfig

	// Logging
	Log LogConfig
}

// DeriveConfig holds account enumeration settings.
type DeriveConfig struct {
	Chain   string `conf:"derive.chain"`
	Count   int    `conf:"derive.count"`
	Workers int    `conf:"derive.workers"` // 0 or 1 derives sequentially
}

// MnemonicConfig holds mnemonic generation settings.
type MnemonicConfig struct {
	Strength int `conf:"mnemonic.strength"` // entropy bits
}

// BitcoinConfig holds Bitcoin encoding settings.
type BitcoinConfig struct {
	Address string `conf:"bitcoin.address"` // p2pkh or p2wpkh
}

// SolanaConfig holds Solana derivation settings.
type SolanaConfig struct {
	Scheme string `conf:"solana.scheme"` // bip32 or slip10
}

// OutputConfig holds output settings.
type OutputConfig struct {
	Format   string `conf:"output.format"` // table or json
	ShowKeys bool   `conf:"output.showkeys"`
}

// KeystoreConfig holds keystore settings.
type KeystoreConfig struct {
	Enabled bool `conf:"keystore.enabled"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `conf:"log.level"`
	File  string `conf:"log.file"`
	JSON  bool   `conf:"log.json"`
}

// =============================================================================
// Directory helpers
// =============================================================================

// DefaultDataDir returns the platform-specific default data directory.
//
//	Linux:   ~/.hdkeys
//	macOS:   ~/Library/Application Support/HDKeys
//	Windows: %APPDATA%\HDKeys
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".hdkeys"
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "HDKeys")
	case "windows":
		appData := os.Getenv("APPDATA")
		if appData != "" {
			return filepath.Join(appData, "HDKeys")
		}
		return filepath.Join(home, "AppData", "Roaming", "HDKeys")
	default:
		return filepath.Join(home, ".hdkeys")
	}
}

// NetworkDataDir returns the network-specific data directory.
func (c *Config) NetworkDataDir() string {
	return filepath.Join(c.DataDir, string(c.Network))
}

// KeystoreDir returns the keystore database directory.
func (c *Config) KeystoreDir() string {
	return filepath.Join(c.NetworkDataDir(), "keystore")
}

// LogsDir returns the logs directory.
func (c *Config) LogsDir() string {
	return filepath.Join(c.DataDir, "logs")
}

// LogFilePath resolves Log.File. A bare file name lives in LogsDir; any
// other path is used as given. Empty means no log file.
func (c *Config) LogFilePath() string {
	if c.Log.File == "" || filepath.Base(c.Log.File) != c.Log.File {
		return c.Log.File
	}
	return filepath.Join(c.LogsDir(), c.Log.File)
}

// ConfigFile returns the config file path.
func (c *Config) ConfigFile() string {
	return filepath.Join(c.DataDir, "hdkeys.conf")
}
