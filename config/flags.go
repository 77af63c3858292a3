package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/DeFiFoFum/cryptography-resources/pkg/types"
)

// Flags holds parsed global command-line flags.
type Flags struct {
	// Commands
	Help    bool
	Version bool

	// Core
	Network string
	Testnet bool
	DataDir string
	Config  string

	// Logging
	LogLevel string
	LogFile  string
	LogJSON  bool

	// Remaining args: the subcommand and its flags.
	Args []string

	// Explicitly-set bool flags (for true/false overrides).
	SetLogJSON bool
}

// ParseFlags parses the global flags that precede the subcommand. Parsing
// stops at the first non-flag argument.
func ParseFlags(args []string) (*Flags, error) {
	f := &Flags{}
	fs := flag.NewFlagSet("hdkeys", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	// Commands
	fs.BoolVar(&f.Help, "help", false, "Show help message")
	fs.BoolVar(&f.Help, "h", false, "Show help message (shorthand)")
	fs.BoolVar(&f.Version, "version", false, "Show version information")

	// Core
	fs.StringVar(&f.Network, "network", "", "Network type (mainnet or testnet)")
	fs.BoolVar(&f.Testnet, "testnet", false, "Use testnet (shorthand for --network=testnet)")
	fs.StringVar(&f.DataDir, "datadir", "", "Data directory path")
	fs.StringVar(&f.Config, "config", "", "Config file path")
	fs.StringVar(&f.Config, "c", "", "Config file path (shorthand)")

	// Logging
	fs.StringVar(&f.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.StringVar(&f.LogFile, "log-file", "", "Log file path")
	fs.BoolVar(&f.LogJSON, "log-json", false, "Output logs as JSON")

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			f.Help = true
			return f, nil
		}
		return nil, err
	}

	if f.Testnet {
		f.Network = string(types.Testnet)
	}
	f.SetLogJSON = isFlagSet(fs, "log-json")
	f.Args = fs.Args()
	return f, nil
}

// ApplyFlags applies global command-line flags to a Config struct.
func ApplyFlags(cfg *Config, f *Flags) error {
	if f.Network != "" {
		n, err := types.ParseNetwork(f.Network)
		if err != nil {
			return err
		}
		cfg.Network = n
	}
	if f.DataDir != "" {
		cfg.DataDir = f.DataDir
	}

	if f.LogLevel != "" {
		cfg.Log.Level = f.LogLevel
	}
	if f.LogFile != "" {
		cfg.Log.File = f.LogFile
	}
	if f.SetLogJSON {
		cfg.Log.JSON = f.LogJSON
	}
	return nil
}

// isFlagSet checks if a flag was explicitly set.
func isFlagSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

// Load loads configuration with the following precedence:
// 1. Default values
// 2. Config file (<datadir>/hdkeys.conf or --config)
// 3. Global command-line flags
func Load(args []string) (*Config, *Flags, error) {
	flags, err := ParseFlags(args)
	if err != nil {
		return nil, nil, err
	}

	network := types.Mainnet
	if flags.Network != "" {
		network, err = types.ParseNetwork(flags.Network)
		if err != nil {
			return nil, nil, err
		}
	}

	cfg := Default(network)
	if flags.DataDir != "" {
		cfg.DataDir = flags.DataDir
	}

	configPath := flags.Config
	if configPath == "" {
		configPath = cfg.ConfigFile()
	}
	fileValues, err := LoadFile(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config file: %w", err)
	}
	if err := ApplyFileConfig(cfg, fileValues); err != nil {
		return nil, nil, fmt.Errorf("applying config file: %w", err)
	}

	// Flags take precedence over the file.
	if err := ApplyFlags(cfg, flags); err != nil {
		return nil, nil, err
	}
	if err := Validate(cfg); err != nil {
		return nil, nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, flags, nil
}

// EnsureDataDirs creates the data directory structure and a default config
// file if they don't already exist. It is idempotent.
func EnsureDataDirs(cfg *Config) error {
	dirs := []string{
		cfg.DataDir,
		cfg.NetworkDataDir(),
		cfg.KeystoreDir(),
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}

	configPath := cfg.ConfigFile()
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := WriteDefaultConfig(configPath, cfg.Network); err != nil {
			return fmt.Errorf("writing config file: %w", err)
		}
	}
	return nil
}

// Usage is the global help text.
func Usage() string {
	return strings.TrimLeft(usage, "\n")
}

const usage = `
hdkeys - BIP-39 mnemonics and multi-chain HD key derivation

Usage:
  hdkeys [global options] <command> [command options]

Commands:
  mnemonic        Generate a new mnemonic (--strength bits or --words n)
  validate        Validate a mnemonic's words and checksum
  entropy         Print the entropy encoded in a mnemonic
  from-entropy    Encode hex entropy as a mnemonic
  seed            Print the 64-byte BIP-39 seed of a mnemonic
  derive          Derive account addresses and keys for a chain
  path            Derive the extended key at an arbitrary path
  keystore        Store mnemonics encrypted (create, import, list, show, derive, delete)
  version         Show version information

Global Options:
  --network       Network type: mainnet (default) or testnet
  --testnet       Shorthand for --network=testnet
  --datadir       Data directory (default: ~/.hdkeys)
  --config, -c    Config file path (default: <datadir>/hdkeys.conf)
  --log-level     Log level: debug, info, warn (default), error
  --log-file      Log file; a bare name is placed in <datadir>/logs (default: stderr only)
  --log-json      Output logs as JSON

Examples:
  hdkeys mnemonic --words 12
  hdkeys derive --chain ethereum --count 5
  hdkeys --testnet derive --chain bitcoin --format json --show-keys
  hdkeys path --path "m/84'/0'/0'" --neuter

The mnemonic is read from --mnemonic or, when omitted, prompted for
without echo. Private keys are hidden unless --show-keys is given.
`
