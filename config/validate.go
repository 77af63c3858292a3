package config

import (
	"fmt"

	"github.com/DeFiFoFum/cryptography-resources/internal/chain"
	"github.com/DeFiFoFum/cryptography-resources/internal/log"
	"github.com/DeFiFoFum/cryptography-resources/internal/report"
	"github.com/DeFiFoFum/cryptography-resources/internal/wallet"
	"github.com/DeFiFoFum/cryptography-resources/pkg/types"
)

// MaxWorkers caps derive.workers.
const MaxWorkers = 256

// Validate checks the config for operator mistakes and canonicalizes the
// chain name.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}
	if cfg.Network != types.Mainnet && cfg.Network != types.Testnet {
		return fmt.Errorf("network must be %q or %q", types.Mainnet, types.Testnet)
	}
	if cfg.DataDir == "" {
		return fmt.Errorf("datadir must not be empty")
	}

	c, err := types.ParseChain(cfg.Derive.Chain)
	if err != nil {
		return fmt.Errorf("derive.chain: %w", err)
	}
	cfg.Derive.Chain = c.String()
	if cfg.Derive.Count < 0 {
		return fmt.Errorf("derive.count must not be negative")
	}
	if cfg.Derive.Workers < 0 || cfg.Derive.Workers > MaxWorkers {
		return fmt.Errorf("derive.workers must be in range [0, %d]", MaxWorkers)
	}

	if _, err := wallet.WordCount(cfg.Mnemonic.Strength); err != nil {
		return fmt.Errorf("mnemonic.strength: %w", err)
	}

	switch cfg.Bitcoin.Address {
	case chain.BitcoinP2PKH, chain.BitcoinP2WPKH:
	default:
		return fmt.Errorf("bitcoin.address must be %s or %s", chain.BitcoinP2PKH, chain.BitcoinP2WPKH)
	}
	switch cfg.Solana.Scheme {
	case chain.SolanaBIP32, chain.SolanaSLIP10:
	default:
		return fmt.Errorf("solana.scheme must be %s or %s", chain.SolanaBIP32, chain.SolanaSLIP10)
	}

	if !report.ValidFormat(cfg.Output.Format) {
		return fmt.Errorf("output.format must be %s or %s", report.FormatTable, report.FormatJSON)
	}
	if !log.ValidLevel(cfg.Log.Level) {
		return fmt.Errorf("log.level must be debug, info, warn, error or disabled")
	}
	return nil
}
