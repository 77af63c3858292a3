package config

import (
	"github.com/DeFiFoFum/cryptography-resources/internal/chain"
	"github.com/DeFiFoFum/cryptography-resources/internal/report"
	"github.com/DeFiFoFum/cryptography-resources/internal/wallet"
	"github.com/DeFiFoFum/cryptography-resources/pkg/types"
)

// DefaultCount is the number of accounts derived when none is given.
const DefaultCount = 10

// DefaultMainnet returns the default configuration for mainnet.
func DefaultMainnet() *Config {
	return &Config{
		Network: types.Mainnet,
		DataDir: DefaultDataDir(),
		Derive: DeriveConfig{
			Chain:   string(types.Bitcoin),
			Count:   DefaultCount,
			Workers: 1,
		},
		Mnemonic: MnemonicConfig{
			Strength: wallet.DefaultStrength,
		},
		Bitcoin: BitcoinConfig{
			Address: chain.BitcoinP2PKH,
		},
		Solana: SolanaConfig{
			Scheme: chain.SolanaBIP32,
		},
		Output: OutputConfig{
			Format: report.FormatTable,
		},
		Keystore: KeystoreConfig{
			Enabled: true,
		},
		Log: LogConfig{
			Level: "warn",
		},
	}
}

// DefaultTestnet returns the default configuration for testnet.
func DefaultTestnet() *Config {
	cfg := DefaultMainnet()
	cfg.Network = types.Testnet
	return cfg
}

// Default returns the default configuration for the given network.
func Default(network types.Network) *Config {
	switch network {
	case types.Testnet:
		return DefaultTestnet()
	default:
		return DefaultMainnet()
	}
}
