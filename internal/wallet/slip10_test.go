package wallet

import (
	"encoding/hex"
	"errors"
	"testing"
)

func TestSLIP10Vector1(t *testing.T) {
	seed := bip32Vector1Seed(t)
	tests := []struct {
		path    string
		private string
		public  string
	}{
		{"m", "2b4be7f19ee27bbf30c667b642d5f4aa69fd169872f8fc3059c08ebae2eb19e7", "a4b2856bfec510abab89753fac1ac0e1112364e7d250545963f135f2a33188ed"},
		{"m/0'", "68e0fe46dfb67e368c75379acec591dad19df3cde26e63b93a8e704f1dade7a3", "8c8a13df77a28f3445213a0f432fde644acaa215fc72dcdf300d5efaa85d350c"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			p, err := ParsePath(tt.path)
			if err != nil {
				t.Fatalf("ParsePath() error: %v", err)
			}
			key, err := DeriveEd25519Path(seed, p)
			if err != nil {
				t.Fatalf("DeriveEd25519Path() error: %v", err)
			}
			if got := hex.EncodeToString(key.Seed()); got != tt.private {
				t.Errorf("private = %s, want %s", got, tt.private)
			}
			if got := hex.EncodeToString(key.PublicKey()); got != tt.public {
				t.Errorf("public = %s, want %s", got, tt.public)
			}
			if key.Depth() != uint8(len(p)) {
				t.Errorf("depth = %d, want %d", key.Depth(), len(p))
			}
		})
	}
}

func TestEd25519Key_PublicMatchesPrivate(t *testing.T) {
	p, _ := ParsePath("m/44'/501'/0'/0'")
	key, err := DeriveEd25519Path(testSeed(t), p)
	if err != nil {
		t.Fatalf("DeriveEd25519Path() error: %v", err)
	}
	priv := key.PrivateKey()
	if string(priv[32:]) != string(key.PublicKey()) {
		t.Error("PublicKey() should equal the public half of PrivateKey()")
	}
	if key.ChildIndex() != Hardened(0) {
		t.Errorf("ChildIndex() = %d", key.ChildIndex())
	}
}

func TestEd25519_NonHardenedRejected(t *testing.T) {
	p, _ := ParsePath("m/44'/501'/0'/0")
	if _, err := DeriveEd25519Path(testSeed(t), p); !errors.Is(err, ErrInvalidPath) {
		t.Errorf("DeriveEd25519Path(non-hardened) error = %v, want ErrInvalidPath", err)
	}

	master, err := NewEd25519MasterKey(testSeed(t))
	if err != nil {
		t.Fatalf("NewEd25519MasterKey() error: %v", err)
	}
	if _, err := master.DeriveHardened(1); !errors.Is(err, ErrInvalidPath) {
		t.Errorf("DeriveHardened(1) error = %v, want ErrInvalidPath", err)
	}
}

func TestEd25519_DeriveHardenedMatchesPath(t *testing.T) {
	seed := bip32Vector1Seed(t)
	p, _ := ParsePath("m/0'/1'/2'")
	want, err := DeriveEd25519Path(seed, p)
	if err != nil {
		t.Fatalf("DeriveEd25519Path() error: %v", err)
	}

	current, err := NewEd25519MasterKey(seed)
	if err != nil {
		t.Fatalf("NewEd25519MasterKey() error: %v", err)
	}
	for _, idx := range p {
		if current, err = current.DeriveHardened(idx); err != nil {
			t.Fatalf("DeriveHardened(%d) error: %v", idx, err)
		}
	}
	if hex.EncodeToString(current.Seed()) != hex.EncodeToString(want.Seed()) {
		t.Error("stepwise DeriveHardened differs from DeriveEd25519Path")
	}
	if current.Depth() != 3 || current.ChildIndex() != Hardened(2) {
		t.Errorf("depth/index = %d/%d", current.Depth(), current.ChildIndex())
	}
	// m/0'/1'/2' from SLIP-0010 ed25519 test vector 1.
	if got := hex.EncodeToString(current.Seed()); got != "92a5b23c0b8a99e37d07df3fb9966917f5d06e02ddbd909c7e184371463e9fc9" {
		t.Errorf("m/0'/1'/2' private = %s", got)
	}
}

func TestEd25519_InvalidSeed(t *testing.T) {
	if _, err := NewEd25519MasterKey(make([]byte, 8)); !errors.Is(err, ErrInvalidSeed) {
		t.Errorf("NewEd25519MasterKey(8 bytes) error = %v, want ErrInvalidSeed", err)
	}
}

func TestEd25519Key_Zero(t *testing.T) {
	key, _ := NewEd25519MasterKey(testSeed(t))
	key.Zero()
	if hex.EncodeToString(key.Seed()) != hex.EncodeToString(make([]byte, 32)) {
		t.Error("seed should be zero after Zero()")
	}
	if _, err := key.DeriveHardened(Hardened(0)); err == nil {
		t.Error("DeriveHardened() on a zeroed key should fail")
	}
}
