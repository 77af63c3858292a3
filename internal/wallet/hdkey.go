package wallet

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/DeFiFoFum/cryptography-resources/pkg/crypto"
	"github.com/tyler-smith/go-bip32"
)

// BIP-32 seed bounds in bytes.
const (
	MinSeedSize = 16
	MaxSeedSize = 64
)

// HDKey is a BIP-32 extended key: key material, chain code, depth, parent
// fingerprint and child index. It is never persisted.
type HDKey struct {
	key *bip32.Key
}

// NewMasterKey creates the depth-0 extended key for a seed
// (HMAC-SHA512 keyed with "Bitcoin seed").
func NewMasterKey(seed []byte) (*HDKey, error) {
	if len(seed) < MinSeedSize || len(seed) > MaxSeedSize {
		return nil, fmt.Errorf("%w: seed must be %d-%d bytes, got %d", ErrInvalidSeed, MinSeedSize, MaxSeedSize, len(seed))
	}
	master, err := bip32.NewMasterKey(seed)
	if err != nil {
		if errors.Is(err, bip32.ErrInvalidPrivateKey) {
			return nil, fmt.Errorf("create master key: %w", ErrInvalidSeed)
		}
		return nil, fmt.Errorf("create master key: %w", err)
	}
	return &HDKey{key: master}, nil
}

// DerivePath derives the key at path (e.g. "m/44'/0'/0'/0/0") from seed.
func DerivePath(seed []byte, path string) (*HDKey, error) {
	p, err := ParsePath(path)
	if err != nil {
		return nil, err
	}
	master, err := NewMasterKey(seed)
	if err != nil {
		return nil, err
	}
	child, err := master.DerivePath(p)
	master.Zero()
	return child, err
}

// DeriveChild derives the child key at index. Hardened indices
// (>= HardenedOffset) need a private key.
func (k *HDKey) DeriveChild(index uint32) (*HDKey, error) {
	if !k.key.IsPrivate && IsHardened(index) {
		return nil, fmt.Errorf("derive child %d: %w", index, ErrHardenedFromPublic)
	}
	child, err := k.key.NewChildKey(index)
	if err != nil {
		switch {
		case errors.Is(err, bip32.ErrHardnedChildPublicKey):
			return nil, fmt.Errorf("derive child %d: %w", index, ErrHardenedFromPublic)
		case errors.Is(err, bip32.ErrInvalidPrivateKey), errors.Is(err, bip32.ErrInvalidPublicKey):
			return nil, fmt.Errorf("derive child %d: %w", index, ErrInvalidChildKey)
		}
		return nil, fmt.Errorf("derive child %d: %w", index, err)
	}
	return &HDKey{key: child}, nil
}

// DeriveNextChild derives the child at index, moving on to the next index
// while the derivation yields ErrInvalidChildKey. It never crosses the
// hardened boundary and returns the index actually used.
func (k *HDKey) DeriveNextChild(index uint32) (*HDKey, uint32, error) {
	hardened := IsHardened(index)
	for {
		child, err := k.DeriveChild(index)
		if err == nil {
			return child, index, nil
		}
		if !errors.Is(err, ErrInvalidChildKey) {
			return nil, 0, err
		}
		next := index + 1
		if IsHardened(next) != hardened || next == 0 {
			return nil, 0, err
		}
		index = next
	}
}

// DerivePath walks path from k, one child per segment, left to right.
// Intermediate keys are zeroed once the next level exists.
func (k *HDKey) DerivePath(path DerivationPath) (*HDKey, error) {
	current := k
	for _, idx := range path {
		child, err := current.DeriveChild(idx)
		if current != k {
			current.Zero()
		}
		if err != nil {
			return nil, err
		}
		current = child
	}
	if current == k {
		return k.clone(), nil
	}
	return current, nil
}

// PrivateKeyBytes returns a copy of the 32-byte private key scalar.
// Returns nil if this is a public-only key.
func (k *HDKey) PrivateKeyBytes() []byte {
	if !k.key.IsPrivate {
		return nil
	}
	raw := k.key.Key
	if len(raw) == 33 && raw[0] == 0 {
		raw = raw[1:]
	}
	out := make([]byte, 32)
	copy(out[32-len(raw):], raw)
	return out
}

// PublicKeyBytes returns the compressed 33-byte public key.
func (k *HDKey) PublicKeyBytes() []byte {
	if !k.key.IsPrivate {
		return append([]byte(nil), k.key.Key...)
	}
	return k.key.PublicKey().Key
}

// ChainCode returns a copy of the 32-byte chain code.
func (k *HDKey) ChainCode() []byte {
	return append([]byte(nil), k.key.ChainCode...)
}

// IsPrivate returns true if this key contains a private key.
func (k *HDKey) IsPrivate() bool {
	return k.key.IsPrivate
}

// Depth returns the derivation depth (0 for master).
func (k *HDKey) Depth() uint8 {
	return k.key.Depth
}

// ChildIndex returns the index this key was derived at (0 for master).
func (k *HDKey) ChildIndex() uint32 {
	return binary.BigEndian.Uint32(k.key.ChildNumber)
}

// ParentFingerprint returns the first four bytes of HASH160 of the parent
// public key, or 0 for the master key.
func (k *HDKey) ParentFingerprint() uint32 {
	return binary.BigEndian.Uint32(k.key.FingerPrint)
}

// Fingerprint returns this key's own fingerprint, the value its children
// carry as ParentFingerprint.
func (k *HDKey) Fingerprint() uint32 {
	h := crypto.Hash160(k.PublicKeyBytes())
	return binary.BigEndian.Uint32(h[:4])
}

// Neuter returns a public-key-only copy (for watch-only derivation).
func (k *HDKey) Neuter() *HDKey {
	pub := k.key.PublicKey()
	pub.ChainCode = append([]byte(nil), pub.ChainCode...)
	return &HDKey{key: pub}
}

// String returns the Base58Check xprv / xpub serialization.
func (k *HDKey) String() string {
	return k.key.B58Serialize()
}

// Zero wipes the key material and chain code. See Zero for the limits of
// wiping memory under a garbage collector.
func (k *HDKey) Zero() {
	if k == nil || k.key == nil {
		return
	}
	Zero(k.key.Key)
	Zero(k.key.ChainCode)
}

func (k *HDKey) clone() *HDKey {
	c := *k.key
	c.Key = append([]byte(nil), k.key.Key...)
	c.ChainCode = append([]byte(nil), k.key.ChainCode...)
	return &HDKey{key: &c}
}
