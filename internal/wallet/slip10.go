package wallet

import (
	"crypto/ed25519"
	"fmt"

	"github.com/anyproto/go-slip10"
)

// Ed25519Key is a SLIP-0010 extended key on Ed25519. Only hardened
// derivation exists for this curve.
type Ed25519Key struct {
	node  slip10.Node
	seed  [ed25519.SeedSize]byte
	depth uint8
	index uint32
}

// NewEd25519MasterKey creates the SLIP-0010 master key for seed.
func NewEd25519MasterKey(seed []byte) (*Ed25519Key, error) {
	if len(seed) < MinSeedSize || len(seed) > MaxSeedSize {
		return nil, fmt.Errorf("%w: seed must be %d-%d bytes, got %d", ErrInvalidSeed, MinSeedSize, MaxSeedSize, len(seed))
	}
	node, err := slip10.NewMasterNode(seed)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSeed, err)
	}
	return newEd25519Key(node, 0, 0), nil
}

// DeriveEd25519Path derives the SLIP-0010 key at path from seed. Every
// segment must be hardened.
func DeriveEd25519Path(seed []byte, path DerivationPath) (*Ed25519Key, error) {
	if !path.AllHardened() {
		return nil, fmt.Errorf("%w: %s: ed25519 supports hardened segments only", ErrInvalidPath, path)
	}
	if len(seed) < MinSeedSize || len(seed) > MaxSeedSize {
		return nil, fmt.Errorf("%w: seed must be %d-%d bytes, got %d", ErrInvalidSeed, MinSeedSize, MaxSeedSize, len(seed))
	}
	node, err := slip10.DeriveForPath(path.String(), seed)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidPath, path, err)
	}
	var index uint32
	if len(path) > 0 {
		index = path[len(path)-1]
	}
	return newEd25519Key(node, uint8(len(path)), index), nil
}

// DeriveHardened derives the hardened child at index.
func (k *Ed25519Key) DeriveHardened(index uint32) (*Ed25519Key, error) {
	if !IsHardened(index) {
		return nil, fmt.Errorf("%w: ed25519 child %d is not hardened", ErrInvalidPath, index)
	}
	if k.node == nil {
		return nil, fmt.Errorf("%w: key has been zeroed", ErrInvalidSeed)
	}
	child, err := k.node.Derive(index)
	if err != nil {
		return nil, fmt.Errorf("derive ed25519 child %d: %w", index, err)
	}
	return newEd25519Key(child, k.depth+1, index), nil
}

func newEd25519Key(node slip10.Node, depth uint8, index uint32) *Ed25519Key {
	k := &Ed25519Key{node: node, depth: depth, index: index}
	_, priv := node.Keypair()
	copy(k.seed[:], priv.Seed())
	Zero(priv)
	return k
}

// Seed returns a copy of the 32-byte private key, usable as an Ed25519 seed.
func (k *Ed25519Key) Seed() []byte {
	return append([]byte(nil), k.seed[:]...)
}

// Depth returns the derivation depth (0 for master).
func (k *Ed25519Key) Depth() uint8 { return k.depth }

// ChildIndex returns the index this key was derived at.
func (k *Ed25519Key) ChildIndex() uint32 { return k.index }

// PrivateKey expands the seed into an Ed25519 private key (seed || public).
func (k *Ed25519Key) PrivateKey() ed25519.PrivateKey {
	return ed25519.NewKeyFromSeed(k.seed[:])
}

// PublicKey returns the 32-byte Ed25519 public key.
func (k *Ed25519Key) PublicKey() ed25519.PublicKey {
	priv := k.PrivateKey()
	pub := append(ed25519.PublicKey(nil), priv[ed25519.SeedSize:]...)
	Zero(priv)
	return pub
}

// Zero wipes the seed copy and drops the derivation node. Memory held by
// the node itself is left to the garbage collector.
func (k *Ed25519Key) Zero() {
	Zero(k.seed[:])
	k.node = nil
}
