package chain

import (
	"encoding/hex"
	"fmt"

	"github.com/DeFiFoFum/cryptography-resources/internal/wallet"
	"github.com/DeFiFoFum/cryptography-resources/pkg/crypto"
	"github.com/DeFiFoFum/cryptography-resources/pkg/types"
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
)

// Bitcoin account templates: BIP-44 legacy and BIP-84 native segwit.
var (
	bip44BitcoinTemplate = PathTemplate{
		Prefix:   mustPath("m/44'/0'"),
		Hardened: true,
		Suffix:   mustPath("m/0/0"),
	}
	bip84BitcoinTemplate = PathTemplate{
		Prefix:   mustPath("m/84'/0'"),
		Hardened: true,
		Suffix:   mustPath("m/0/0"),
	}
)

// Bitcoin encodes compressed WIF private keys and P2PKH or P2WPKH addresses.
type Bitcoin struct {
	params *chaincfg.Params
	segwit bool
}

func newBitcoin(network types.Network, kind string) (*Bitcoin, error) {
	b := &Bitcoin{}
	switch network {
	case types.Mainnet:
		b.params = &chaincfg.MainNetParams
	case types.Testnet:
		b.params = &chaincfg.TestNet3Params
	default:
		return nil, fmt.Errorf("%w: bitcoin network %q", ErrUnsupported, network)
	}
	switch kind {
	case "", BitcoinP2PKH:
	case BitcoinP2WPKH:
		b.segwit = true
	default:
		return nil, fmt.Errorf("%w: bitcoin address type %q", ErrUnsupported, kind)
	}
	return b, nil
}

func (b *Bitcoin) Chain() types.Chain { return types.Bitcoin }

func (b *Bitcoin) Template() PathTemplate {
	if b.segwit {
		return bip84BitcoinTemplate
	}
	return bip44BitcoinTemplate
}

// PrivateKey returns the compressed WIF encoding (0x80 || key || 0x01 on
// mainnet).
func (b *Bitcoin) PrivateKey(key *wallet.HDKey) (string, error) {
	raw, err := requirePrivate(key)
	if err != nil {
		return "", err
	}
	defer wallet.Zero(raw)

	priv, _ := btcec.PrivKeyFromBytes(raw)
	defer priv.Zero()
	wif, err := btcutil.NewWIF(priv, b.params, true)
	if err != nil {
		return "", fmt.Errorf("encode wif: %w", err)
	}
	return wif.String(), nil
}

// PublicKey returns the 33-byte compressed public key.
func (b *Bitcoin) PublicKey(key *wallet.HDKey) ([]byte, error) {
	return key.PublicKeyBytes(), nil
}

// Address returns Base58Check(version || HASH160(pub)) or the bech32
// witness v0 address for segwit.
func (b *Bitcoin) Address(pub []byte) (string, error) {
	compressed, err := crypto.CompressPubKey(pub)
	if err != nil {
		return "", err
	}
	hash := crypto.Hash160(compressed)
	if b.segwit {
		addr, err := btcutil.NewAddressWitnessPubKeyHash(hash, b.params)
		if err != nil {
			return "", fmt.Errorf("p2wpkh address: %w", err)
		}
		return addr.EncodeAddress(), nil
	}
	addr, err := btcutil.NewAddressPubKeyHash(hash, b.params)
	if err != nil {
		return "", fmt.Errorf("p2pkh address: %w", err)
	}
	return addr.EncodeAddress(), nil
}

func (b *Bitcoin) EncodePublicKey(pub []byte) string {
	return hex.EncodeToString(pub)
}
