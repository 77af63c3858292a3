package chain

import (
	"testing"

	"github.com/DeFiFoFum/cryptography-resources/pkg/types"
	"github.com/ethereum/go-ethereum/common/hexutil"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
)

func TestEthereum_Vector(t *testing.T) {
	enc, err := Lookup(types.Ethereum, Options{})
	if err != nil {
		t.Fatalf("Lookup() error: %v", err)
	}
	key, path := accountKey(t, enc, 0)
	rec, err := Record(enc, key, 0, path)
	if err != nil {
		t.Fatalf("Record() error: %v", err)
	}

	if rec.Address != "0x9858EfFD232B4033E47d90003D41EC34EcaEda94" {
		t.Errorf("Address = %s, want 0x9858EfFD232B4033E47d90003D41EC34EcaEda94", rec.Address)
	}
	if rec.PrivateKey != "0x1ab42cc412b618bdea3a599e3c9bae199ebf030895b039e9db1e30dafb12b727" {
		t.Errorf("PrivateKey = %s", rec.PrivateKey)
	}
	if len(rec.PublicKey) != 2+128 {
		t.Errorf("PublicKey length = %d, want 130", len(rec.PublicKey))
	}
}

func TestEthereum_MatchesGoEthereum(t *testing.T) {
	enc := Ethereum{}
	for i := uint32(0); i < 5; i++ {
		key, path := accountKey(t, enc, i)
		rec, err := Record(enc, key, i, path)
		if err != nil {
			t.Fatalf("Record(%d) error: %v", i, err)
		}

		raw, err := hexutil.Decode(rec.PrivateKey)
		if err != nil {
			t.Fatalf("decode private key: %v", err)
		}
		ecdsaKey, err := ethcrypto.ToECDSA(raw)
		if err != nil {
			t.Fatalf("ToECDSA() error: %v", err)
		}
		want := ethcrypto.PubkeyToAddress(ecdsaKey.PublicKey).Hex()
		if rec.Address != want {
			t.Errorf("account %d address = %s, want %s", i, rec.Address, want)
		}
	}
}

func TestEthereum_AddressAcceptsCompressed(t *testing.T) {
	key, _ := accountKey(t, Ethereum{}, 0)
	addr, err := Ethereum{}.Address(key.PublicKeyBytes())
	if err != nil {
		t.Fatalf("Address() error: %v", err)
	}
	if addr != "0x9858EfFD232B4033E47d90003D41EC34EcaEda94" {
		t.Errorf("Address(compressed) = %s", addr)
	}
}

func TestChecksumAddress(t *testing.T) {
	got, err := ChecksumAddress("0x9858effd232b4033e47d90003d41ec34ecaeda94")
	if err != nil {
		t.Fatalf("ChecksumAddress() error: %v", err)
	}
	if got != "0x9858EfFD232B4033E47d90003D41EC34EcaEda94" {
		t.Errorf("ChecksumAddress() = %s", got)
	}
	if _, err := ChecksumAddress("0x1234"); err == nil {
		t.Error("expected error for short address")
	}
}
