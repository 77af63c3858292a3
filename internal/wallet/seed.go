package wallet

import (
	"fmt"
	"strings"

	"github.com/DeFiFoFum/cryptography-resources/internal/log"
	"github.com/tyler-smith/go-bip39"
	"golang.org/x/text/unicode/norm"
)

// SeedSize is the length of a derived seed in bytes (512 bits).
const SeedSize = 64

// ToSeed stretches a mnemonic sentence and passphrase into a 64-byte seed
// with PBKDF2-HMAC-SHA512, 2048 iterations and salt "mnemonic"+passphrase.
// Both inputs are NFKD-normalized first. The sentence is not validated:
// BIP-39 defines a seed for any string.
func ToSeed(mnemonic, passphrase string) []byte {
	return bip39.NewSeed(norm.NFKD.String(mnemonic), norm.NFKD.String(passphrase))
}

// SeedFromMnemonic validates the mnemonic and derives its 512-bit seed.
func SeedFromMnemonic(mnemonic, passphrase string) ([]byte, error) {
	if err := CheckMnemonic(mnemonic); err != nil {
		return nil, fmt.Errorf("derive seed: %w", err)
	}
	canonical := NormalizeMnemonic(mnemonic)
	log.Wallet.Debug().
		Int("words", len(strings.Fields(canonical))).
		Bool("passphrase", passphrase != "").
		Msg("Derived seed")
	return ToSeed(canonical, passphrase), nil
}
