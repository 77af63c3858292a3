// derive_key.go prints the public key and addresses for a hex-encoded secp256k1 private key file.
// Usage: go run scripts/derive_key.go <keyfile> [--testnet]
package main

import (
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/DeFiFoFum/cryptography-resources/internal/chain"
	"github.com/DeFiFoFum/cryptography-resources/pkg/crypto"
	"github.com/DeFiFoFum/cryptography-resources/pkg/types"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: derive_key <keyfile> [--testnet]")
		os.Exit(1)
	}
	network := types.Mainnet
	if len(os.Args) > 2 && os.Args[2] == "--testnet" {
		network = types.Testnet
	}
	data, err := os.ReadFile(os.Args[1])
	if err != nil {
		fatal(err)
	}
	keyBytes, err := hex.DecodeString(strings.TrimPrefix(strings.TrimSpace(string(data)), "0x"))
	if err != nil {
		fatal(err)
	}
	key, err := crypto.PrivateKeyFromBytes(keyBytes)
	if err != nil {
		fatal(err)
	}
	defer key.Zero()

	pub := key.PublicKey()
	fmt.Printf("pubkey=%s\n", hex.EncodeToString(pub))

	for _, kind := range []string{chain.BitcoinP2PKH, chain.BitcoinP2WPKH} {
		enc, err := chain.Lookup(types.Bitcoin, chain.Options{Network: network, BitcoinAddress: kind})
		if err != nil {
			fatal(err)
		}
		addr, err := enc.Address(pub)
		if err != nil {
			fatal(err)
		}
		fmt.Printf("bitcoin_%s=%s\n", kind, addr)
	}

	eth, err := chain.Lookup(types.Ethereum, chain.Options{Network: network})
	if err != nil {
		fatal(err)
	}
	addr, err := eth.Address(pub)
	if err != nil {
		fatal(err)
	}
	fmt.Printf("ethereum=%s\n", addr)
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
