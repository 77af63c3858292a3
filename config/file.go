package config

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/DeFiFoFum/cryptography-resources/pkg/types"
)

// LoadFile loads configuration from a .conf file.
// Format: key = value (one per line, # for comments). A missing file
// yields an empty map.
func LoadFile(path string) (map[string]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return make(map[string]string), nil
		}
		return nil, err
	}
	defer file.Close()

	values := make(map[string]string)
	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("line %d: invalid format (expected key = value)", lineNum)
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		// Remove quotes if present
		if len(value) >= 2 {
			if (value[0] == '"' && value[len(value)-1] == '"') ||
				(value[0] == '\'' && value[len(value)-1] == '\'') {
				value = value[1 : len(value)-1]
			}
		}

		values[key] = value
	}

	return values, scanner.Err()
}

// ApplyFileConfig applies file configuration to a Config struct.
func ApplyFileConfig(cfg *Config, values map[string]string) error {
	for key, value := range values {
		if err := setConfigValue(cfg, key, value); err != nil {
			return fmt.Errorf("config key %q: %w", key, err)
		}
	}
	return nil
}

// setConfigValue sets a config value by key. Unknown keys are ignored.
func setConfigValue(cfg *Config, key, value string) error {
	switch key {
	// Core
	case "network":
		n, err := types.ParseNetwork(value)
		if err != nil {
			return err
		}
		cfg.Network = n
	case "datadir":
		cfg.DataDir = value

	// Derivation
	case "derive.chain":
		cfg.Derive.Chain = value
	case "derive.count":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid count: %w", err)
		}
		cfg.Derive.Count = n
	case "derive.workers":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid workers: %w", err)
		}
		cfg.Derive.Workers = n

	// Mnemonic
	case "mnemonic.strength":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid strength: %w", err)
		}
		cfg.Mnemonic.Strength = n

	// Chains
	case "bitcoin.address":
		cfg.Bitcoin.Address = strings.ToLower(value)
	case "solana.scheme":
		cfg.Solana.Scheme = strings.ToLower(value)

	// Output
	case "output.format":
		cfg.Output.Format = strings.ToLower(value)
	case "output.showkeys":
		cfg.Output.ShowKeys = parseBool(value)

	// Keystore
	case "keystore.enabled":
		cfg.Keystore.Enabled = parseBool(value)

	// Logging
	case "log.level":
		cfg.Log.Level = value
	case "log.file":
		cfg.Log.File = value
	case "log.json":
		cfg.Log.JSON = parseBool(value)

	default:
		// Unknown keys are ignored
	}
	return nil
}

// parseBool parses a boolean value.
func parseBool(s string) bool {
	s = strings.ToLower(s)
	return s == "true" || s == "1" || s == "yes" || s == "on"
}

// WriteDefaultConfig writes a default configuration file.
func WriteDefaultConfig(path string, network types.Network) error {
	content := `# hdkeys configuration
#
# Command-line flags override every value in this file.

# Network: mainnet or testnet
network = ` + string(network) + `

# Data directory (default: ~/.hdkeys)
# datadir = ~/.hdkeys

# ============================================================================
# Derivation
# ============================================================================

# Chain: bitcoin, ethereum or solana
derive.chain = bitcoin
derive.count = 10

# Parallel workers (1 = sequential)
derive.workers = 1

# ============================================================================
# Mnemonic
# ============================================================================

# Entropy bits: 128, 160, 192, 224 or 256
mnemonic.strength = 256

# ============================================================================
# Chains
# ============================================================================

# Bitcoin address type: p2pkh (BIP-44) or p2wpkh (BIP-84)
bitcoin.address = p2pkh

# Solana scheme: bip32 or slip10 (Phantom, solana-keygen)
solana.scheme = bip32

# ============================================================================
# Output
# ============================================================================

# Format: table or json
output.format = table

# Print private keys
output.showkeys = false

# ============================================================================
# Keystore
# ============================================================================

keystore.enabled = true

# ============================================================================
# Logging
# ============================================================================

log.level = warn
# log.file =
log.json = false
`
	return os.WriteFile(path, []byte(content), 0600)
}
