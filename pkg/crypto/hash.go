// Package crypto provides the hash and secp256k1 helpers shared by the
// chain encoders.
package crypto

import (
	"github.com/btcsuite/btcd/btcutil"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
)

// Hash160 computes RIPEMD160(SHA256(data)), the Bitcoin public key hash.
func Hash160(data []byte) []byte {
	return btcutil.Hash160(data)
}

// Keccak256 computes the legacy Keccak-256 hash used by Ethereum.
func Keccak256(data ...[]byte) []byte {
	return ethcrypto.Keccak256(data...)
}
