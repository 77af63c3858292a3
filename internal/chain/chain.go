// Package chain turns BIP-32 keys into chain-native key and address
// encodings for Bitcoin, Ethereum and Solana, and knows each chain's
// account path template.
package chain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/DeFiFoFum/cryptography-resources/internal/log"
	"github.com/DeFiFoFum/cryptography-resources/internal/wallet"
	"github.com/DeFiFoFum/cryptography-resources/pkg/types"
)

// Chain layer errors.
var (
	ErrUnknownChain = errors.New("unknown chain")
	ErrUnsupported  = errors.New("unsupported")
)

// Bitcoin address kinds.
const (
	BitcoinP2PKH  = "p2pkh"
	BitcoinP2WPKH = "p2wpkh"
)

// Solana derivation schemes.
const (
	// SolanaBIP32 derives a secp256k1 key along the path and uses its
	// scalar as the Ed25519 seed.
	SolanaBIP32 = "bip32"
	// SolanaSLIP10 derives along the path with SLIP-0010 Ed25519.
	SolanaSLIP10 = "slip10"
)

// Options select per-chain encoding variants. The zero value means
// mainnet, P2PKH and the bip32 Solana scheme.
type Options struct {
	Network        types.Network
	BitcoinAddress string
	SolanaScheme   string
}

// Encoder renders keys derived along Template into chain-native strings.
type Encoder interface {
	Chain() types.Chain
	Template() PathTemplate
	// PrivateKey encodes the key's private material.
	PrivateKey(key *wallet.HDKey) (string, error)
	// PublicKey returns the chain's public key bytes for key.
	PublicKey(key *wallet.HDKey) ([]byte, error)
	// Address renders the address for pub as returned by PublicKey.
	Address(pub []byte) (string, error)
	// EncodePublicKey renders pub for display.
	EncodePublicKey(pub []byte) string
}

// SeedEncoder is implemented by encoders that derive directly from the
// seed with a non-BIP-32 scheme.
type SeedEncoder interface {
	Encoder
	RecordFromSeed(seed []byte, account uint32, path wallet.DerivationPath) (types.AccountKeyRecord, error)
}

// Lookup returns the encoder for c configured by opts.
func Lookup(c types.Chain, opts Options) (Encoder, error) {
	network := opts.Network
	if network == "" {
		network = types.Mainnet
	}
	var (
		enc Encoder
		err error
	)
	switch c {
	case types.Bitcoin:
		enc, err = newBitcoin(network, opts.BitcoinAddress)
	case types.Ethereum:
		enc = Ethereum{}
	case types.Solana:
		enc, err = newSolana(opts.SolanaScheme)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownChain, string(c))
	}
	if err != nil {
		return nil, err
	}
	log.Chain.Debug().
		Str("chain", string(c)).
		Str("network", string(network)).
		Str("bitcoin_address", opts.BitcoinAddress).
		Str("solana_scheme", opts.SolanaScheme).
		Str("template", enc.Template().String()).
		Msg("Encoder selected")
	return enc, nil
}

// Record encodes key into an AccountKeyRecord for account at path.
func Record(enc Encoder, key *wallet.HDKey, account uint32, path wallet.DerivationPath) (types.AccountKeyRecord, error) {
	pub, err := enc.PublicKey(key)
	if err != nil {
		return types.AccountKeyRecord{}, fmt.Errorf("%s public key: %w", enc.Chain(), err)
	}
	addr, err := enc.Address(pub)
	if err != nil {
		return types.AccountKeyRecord{}, fmt.Errorf("%s address: %w", enc.Chain(), err)
	}
	priv, err := enc.PrivateKey(key)
	if err != nil {
		return types.AccountKeyRecord{}, fmt.Errorf("%s private key: %w", enc.Chain(), err)
	}
	return types.AccountKeyRecord{
		Chain:      enc.Chain(),
		Account:    account,
		Path:       path.String(),
		Address:    addr,
		PublicKey:  enc.EncodePublicKey(pub),
		PrivateKey: priv,
	}, nil
}

// PathTemplate is a derivation path in which exactly one segment varies
// with the account index: Prefix / index / Suffix.
type PathTemplate struct {
	Prefix   wallet.DerivationPath
	Hardened bool
	Suffix   wallet.DerivationPath
}

// Path returns the derivation path for account index.
func (t PathTemplate) Path(index uint32) (wallet.DerivationPath, error) {
	if wallet.IsHardened(index) {
		return nil, fmt.Errorf("%w: account index %d out of range", wallet.ErrInvalidPath, index)
	}
	if t.Hardened {
		index = wallet.Hardened(index)
	}
	p := make(wallet.DerivationPath, 0, len(t.Prefix)+1+len(t.Suffix))
	p = append(p, t.Prefix...)
	p = append(p, index)
	return append(p, t.Suffix...), nil
}

// String renders the template with {i} marking the account segment,
// e.g. m/44'/0'/{i}'/0/0.
func (t PathTemplate) String() string {
	var b strings.Builder
	b.WriteString(t.Prefix.String())
	b.WriteString("/{i}")
	if t.Hardened {
		b.WriteByte('\'')
	}
	b.WriteString(strings.TrimPrefix(t.Suffix.String(), "m"))
	return b.String()
}

func mustPath(s string) wallet.DerivationPath {
	p, err := wallet.ParsePath(s)
	if err != nil {
		panic(err)
	}
	return p
}

func requirePrivate(key *wallet.HDKey) ([]byte, error) {
	priv := key.PrivateKeyBytes()
	if priv == nil {
		return nil, fmt.Errorf("%w: public-only key has no private key", ErrUnsupported)
	}
	return priv, nil
}
