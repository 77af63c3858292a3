// Package wallet implements BIP-39 mnemonics, BIP-39 seeds and BIP-32
// hierarchical deterministic key derivation.
package wallet

import (
	"errors"
	"fmt"
	"strings"

	"github.com/DeFiFoFum/cryptography-resources/internal/log"
	"github.com/tyler-smith/go-bip39"
	"golang.org/x/text/unicode/norm"
)

// Supported entropy sizes in bits.
const (
	Strength128 = 128 // 12 words
	Strength160 = 160 // 15 words
	Strength192 = 192 // 18 words
	Strength224 = 224 // 21 words
	Strength256 = 256 // 24 words

	// DefaultStrength is used when the caller does not pick one.
	DefaultStrength = Strength256
)

// WordlistSize is the number of entries in a BIP-39 wordlist.
const WordlistSize = 2048

// Strengths lists every accepted entropy size, smallest first.
var Strengths = []int{Strength128, Strength160, Strength192, Strength224, Strength256}

// validStrength reports whether bits is an accepted entropy size.
func validStrength(bits int) bool {
	for _, s := range Strengths {
		if s == bits {
			return true
		}
	}
	return false
}

// WordCount returns the number of mnemonic words for an entropy size:
// (bits + bits/32) / 11.
func WordCount(strengthBits int) (int, error) {
	if !validStrength(strengthBits) {
		return 0, fmt.Errorf("%w: %d bits", ErrInvalidStrength, strengthBits)
	}
	return (strengthBits + strengthBits/32) / 11, nil
}

// StrengthForWords is the inverse of WordCount.
func StrengthForWords(words int) (int, error) {
	for _, s := range Strengths {
		if n, _ := WordCount(s); n == words {
			return s, nil
		}
	}
	return 0, fmt.Errorf("%w: no entropy size yields %d words", ErrInvalidStrength, words)
}

// GenerateMnemonic creates a new English BIP-39 mnemonic from strengthBits
// of fresh entropy read from the operating system CSPRNG.
func GenerateMnemonic(strengthBits int) (string, error) {
	if !validStrength(strengthBits) {
		return "", fmt.Errorf("%w: %d bits", ErrInvalidStrength, strengthBits)
	}
	entropy, err := bip39.NewEntropy(strengthBits)
	if err != nil {
		return "", fmt.Errorf("generate entropy: %w", err)
	}
	defer Zero(entropy)

	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return "", fmt.Errorf("generate mnemonic: %w", err)
	}
	words, _ := WordCount(strengthBits)
	log.Wallet.Debug().Int("bits", strengthBits).Int("words", words).Msg("Generated mnemonic")
	return mnemonic, nil
}

// ValidateMnemonic checks if a mnemonic is valid per BIP-39
// (correct word count, valid words, valid checksum).
func ValidateMnemonic(mnemonic string) bool {
	return CheckMnemonic(mnemonic) == nil
}

// CheckMnemonic is ValidateMnemonic with a reason. It returns an error
// wrapping ErrInvalidMnemonic for structural problems and
// ErrChecksumMismatch when only the checksum is wrong.
func CheckMnemonic(mnemonic string) error {
	words := splitWords(mnemonic)
	if len(words) == 0 || len(words)%3 != 0 {
		return fmt.Errorf("%w: word count %d is not a multiple of 3", ErrInvalidMnemonic, len(words))
	}
	if _, err := StrengthForWords(len(words)); err != nil {
		return fmt.Errorf("%w: unsupported word count %d", ErrInvalidMnemonic, len(words))
	}
	for i, w := range words {
		if _, ok := bip39.GetWordIndex(w); !ok {
			return fmt.Errorf("%w: word %d is not in the wordlist", ErrInvalidMnemonic, i+1)
		}
	}

	entropy, err := bip39.EntropyFromMnemonic(strings.Join(words, " "))
	if err != nil {
		if errors.Is(err, bip39.ErrChecksumIncorrect) {
			return ErrChecksumMismatch
		}
		return fmt.Errorf("%w: %v", ErrInvalidMnemonic, err)
	}
	Zero(entropy)
	return nil
}

// MnemonicToEntropy recovers the entropy encoded by a mnemonic, with the
// checksum bits stripped.
func MnemonicToEntropy(mnemonic string) ([]byte, error) {
	if err := CheckMnemonic(mnemonic); err != nil {
		return nil, err
	}
	entropy, err := bip39.EntropyFromMnemonic(NormalizeMnemonic(mnemonic))
	if err != nil {
		return nil, fmt.Errorf("decode mnemonic: %w", err)
	}
	return entropy, nil
}

// MnemonicFromEntropy encodes entropy as an English mnemonic.
func MnemonicFromEntropy(entropy []byte) (string, error) {
	if !validStrength(len(entropy) * 8) {
		return "", fmt.Errorf("%w: %d bytes of entropy", ErrInvalidStrength, len(entropy))
	}
	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return "", fmt.Errorf("encode mnemonic: %w", err)
	}
	return mnemonic, nil
}

// NormalizeMnemonic returns the canonical form of a mnemonic: NFKD,
// lowercase words joined by single spaces.
func NormalizeMnemonic(mnemonic string) string {
	return strings.Join(splitWords(mnemonic), " ")
}

// Wordlist returns a copy of the English BIP-39 wordlist.
func Wordlist() []string {
	src := bip39.GetWordList()
	out := make([]string, len(src))
	copy(out, src)
	return out
}

func splitWords(mnemonic string) []string {
	return strings.Fields(strings.ToLower(norm.NFKD.String(mnemonic)))
}
