package chain

import (
	"crypto/ed25519"
	"fmt"

	"github.com/DeFiFoFum/cryptography-resources/internal/wallet"
	"github.com/DeFiFoFum/cryptography-resources/pkg/types"
	"github.com/mr-tron/base58"
)

// solanaTemplate hardens every segment so SLIP-0010 can walk it too.
var solanaTemplate = PathTemplate{
	Prefix:   mustPath("m/44'/501'"),
	Hardened: true,
	Suffix:   mustPath("m/0'"),
}

// Solana encodes Ed25519 keys in Base58. Under the bip32 scheme the
// BIP-32 secp256k1 scalar seeds the Ed25519 key; under slip10 the key
// comes from SLIP-0010 derivation on the seed.
type Solana struct{}

func newSolana(scheme string) (Encoder, error) {
	switch scheme {
	case "", SolanaBIP32:
		return &Solana{}, nil
	case SolanaSLIP10:
		return &SolanaSLIP10Encoder{}, nil
	}
	return nil, fmt.Errorf("%w: solana scheme %q", ErrUnsupported, scheme)
}

func (s *Solana) Chain() types.Chain { return types.Solana }
func (s *Solana) Template() PathTemplate { return solanaTemplate }

// PrivateKey returns Base58 of the 64-byte keypair (seed || public key),
// the format Solana wallets import.
func (s *Solana) PrivateKey(key *wallet.HDKey) (string, error) {
	raw, err := requirePrivate(key)
	if err != nil {
		return "", err
	}
	defer wallet.Zero(raw)
	priv := ed25519.NewKeyFromSeed(raw)
	defer wallet.Zero(priv)
	return base58.Encode(priv), nil
}

// PublicKey returns the 32-byte Ed25519 public key seeded by key's scalar.
func (s *Solana) PublicKey(key *wallet.HDKey) ([]byte, error) {
	raw, err := requirePrivate(key)
	if err != nil {
		return nil, err
	}
	defer wallet.Zero(raw)
	priv := ed25519.NewKeyFromSeed(raw)
	defer wallet.Zero(priv)
	return append([]byte(nil), priv[ed25519.SeedSize:]...), nil
}

// Address returns Base58 of the 32-byte public key.
func (s *Solana) Address(pub []byte) (string, error) {
	if len(pub) != ed25519.PublicKeySize {
		return "", fmt.Errorf("solana public key must be %d bytes, got %d", ed25519.PublicKeySize, len(pub))
	}
	return base58.Encode(pub), nil
}

func (s *Solana) EncodePublicKey(pub []byte) string {
	return base58.Encode(pub)
}

// SolanaSLIP10Encoder derives Solana keys with SLIP-0010 from the seed,
// matching Phantom and solana-keygen.
type SolanaSLIP10Encoder struct {
	Solana
}

// RecordFromSeed derives the SLIP-0010 key at path and encodes it.
func (s *SolanaSLIP10Encoder) RecordFromSeed(seed []byte, account uint32, path wallet.DerivationPath) (types.AccountKeyRecord, error) {
	key, err := wallet.DeriveEd25519Path(seed, path)
	if err != nil {
		return types.AccountKeyRecord{}, err
	}
	defer key.Zero()

	priv := key.PrivateKey()
	defer wallet.Zero(priv)
	pub := priv.Public().(ed25519.PublicKey)
	addr, err := s.Address(pub)
	if err != nil {
		return types.AccountKeyRecord{}, err
	}
	return types.AccountKeyRecord{
		Chain:      types.Solana,
		Account:    account,
		Path:       path.String(),
		Address:    addr,
		PublicKey:  s.EncodePublicKey(pub),
		PrivateKey: base58.Encode(priv),
	}, nil
}

// DecodeKeypair parses a Base58 64-byte keypair and checks that its public
// half matches its seed.
func DecodeKeypair(s string) (ed25519.PrivateKey, error) {
	raw, err := base58.Decode(s)
	if err != nil {
		return nil, fmt.Errorf("decode keypair: %w", err)
	}
	if len(raw) != ed25519.PrivateKeySize {
		return nil, fmt.Errorf("keypair must be %d bytes, got %d", ed25519.PrivateKeySize, len(raw))
	}
	priv := ed25519.NewKeyFromSeed(raw[:ed25519.SeedSize])
	for i := range priv {
		if priv[i] != raw[i] {
			wallet.Zero(priv)
			return nil, fmt.Errorf("keypair public key does not match seed")
		}
	}
	return priv, nil
}
