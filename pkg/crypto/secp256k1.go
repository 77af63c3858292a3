package crypto

import (
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// Public key sizes in bytes.
const (
	CompressedPubKeySize   = 33
	UncompressedPubKeySize = 65
)

// PrivateKey wraps a secp256k1 private key.
type PrivateKey struct {
	key *secp256k1.PrivateKey
}

// PrivateKeyFromBytes creates a PrivateKey from a 32-byte secret.
func PrivateKeyFromBytes(b []byte) (*PrivateKey, error) {
	if len(b) != 32 {
		return nil, fmt.Errorf("private key must be 32 bytes, got %d", len(b))
	}
	var scalar secp256k1.ModNScalar
	if overflow := scalar.SetByteSlice(b); overflow || scalar.IsZero() {
		scalar.Zero()
		return nil, fmt.Errorf("private key is zero or not below the curve order")
	}
	return &PrivateKey{key: secp256k1.NewPrivateKey(&scalar)}, nil
}

// PublicKey returns the compressed 33-byte public key.
func (pk *PrivateKey) PublicKey() []byte {
	return pk.key.PubKey().SerializeCompressed()
}

// Zero securely zeroes the private key memory.
func (pk *PrivateKey) Zero() {
	pk.key.Zero()
}

// DecompressPubKey parses a compressed or uncompressed public key and
// returns its 65-byte uncompressed form.
func DecompressPubKey(pub []byte) ([]byte, error) {
	key, err := secp256k1.ParsePubKey(pub)
	if err != nil {
		return nil, fmt.Errorf("parse public key: %w", err)
	}
	return key.SerializeUncompressed(), nil
}

// CompressPubKey parses a public key and returns its 33-byte compressed form.
func CompressPubKey(pub []byte) ([]byte, error) {
	key, err := secp256k1.ParsePubKey(pub)
	if err != nil {
		return nil, fmt.Errorf("parse public key: %w", err)
	}
	return key.SerializeCompressed(), nil
}
