package chain

import (
	"fmt"

	"github.com/DeFiFoFum/cryptography-resources/internal/wallet"
	"github.com/DeFiFoFum/cryptography-resources/pkg/crypto"
	"github.com/DeFiFoFum/cryptography-resources/pkg/types"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// ethereumTemplate varies the address index, as MetaMask does.
var ethereumTemplate = PathTemplate{
	Prefix: mustPath("m/44'/60'/0'/0"),
}

// Ethereum encodes 0x-hex private keys and EIP-55 checksummed addresses.
type Ethereum struct{}

func (Ethereum) Chain() types.Chain { return types.Ethereum }
func (Ethereum) Template() PathTemplate { return ethereumTemplate }

// PrivateKey returns the 32-byte scalar as 0x-prefixed hex.
func (Ethereum) PrivateKey(key *wallet.HDKey) (string, error) {
	raw, err := requirePrivate(key)
	if err != nil {
		return "", err
	}
	defer wallet.Zero(raw)
	priv, err := crypto.PrivateKeyFromBytes(raw)
	if err != nil {
		return "", err
	}
	priv.Zero()
	return hexutil.Encode(raw), nil
}

// PublicKey returns the 64-byte uncompressed point without the 0x04 prefix.
func (Ethereum) PublicKey(key *wallet.HDKey) ([]byte, error) {
	full, err := crypto.DecompressPubKey(key.PublicKeyBytes())
	if err != nil {
		return nil, err
	}
	return full[1:], nil
}

// Address returns the last 20 bytes of Keccak-256(pub) in EIP-55 form. pub
// may be the 64-byte form PublicKey returns or any SEC1 encoding.
func (Ethereum) Address(pub []byte) (string, error) {
	if len(pub) != crypto.UncompressedPubKeySize-1 {
		full, err := crypto.DecompressPubKey(pub)
		if err != nil {
			return "", err
		}
		pub = full[1:]
	}
	hash := crypto.Keccak256(pub)
	return common.BytesToAddress(hash[12:]).Hex(), nil
}

func (Ethereum) EncodePublicKey(pub []byte) string {
	return hexutil.Encode(pub)
}

// ChecksumAddress validates a hex address and returns its EIP-55 form.
func ChecksumAddress(addr string) (string, error) {
	if !common.IsHexAddress(addr) {
		return "", fmt.Errorf("invalid ethereum address %q", addr)
	}
	return common.HexToAddress(addr).Hex(), nil
}
