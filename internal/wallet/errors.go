package wallet

import "errors"

// Derivation and mnemonic errors. Callers match them with errors.Is; every
// function in this package wraps them with call-site context.
var (
	// ErrInvalidStrength is returned when the requested entropy size is not
	// one of 128, 160, 192, 224 or 256 bits.
	ErrInvalidStrength = errors.New("invalid mnemonic strength")

	// ErrInvalidMnemonic is returned for a wrong word count or a word that is
	// not in the wordlist.
	ErrInvalidMnemonic = errors.New("invalid mnemonic")

	// ErrChecksumMismatch is returned when the mnemonic words are valid but
	// the embedded checksum does not match the entropy.
	ErrChecksumMismatch = errors.New("mnemonic checksum mismatch")

	// ErrInvalidSeed is returned when a seed is outside the BIP-32 bounds.
	ErrInvalidSeed = errors.New("invalid seed")

	// ErrInvalidPath is returned for malformed derivation path syntax.
	ErrInvalidPath = errors.New("invalid derivation path")

	// ErrHardenedFromPublic is returned when a hardened child is requested
	// from a key that holds only public material.
	ErrHardenedFromPublic = errors.New("cannot derive hardened child from public key")

	// ErrInvalidChildKey is returned when the derived scalar is zero or not
	// below the curve order. BIP-32 says to continue with the next index.
	ErrInvalidChildKey = errors.New("invalid child key")
)
