package wallet

import (
	"bytes"
	"encoding/hex"
	"errors"
	"testing"
)

// testSeed returns the BIP-39 seed of "abandon" x11 + "about" with
// passphrase "TREZOR".
func testSeed(t *testing.T) []byte {
	t.Helper()
	seed, err := SeedFromMnemonic(abandonAbout, "TREZOR")
	if err != nil {
		t.Fatalf("SeedFromMnemonic() error: %v", err)
	}
	return seed
}

// bip32Vector1Seed is the seed of BIP-32 test vector 1.
func bip32Vector1Seed(t *testing.T) []byte {
	t.Helper()
	seed, err := hex.DecodeString("000102030405060708090a0b0c0d0e0f")
	if err != nil {
		t.Fatalf("decode seed: %v", err)
	}
	return seed
}

func TestNewMasterKey(t *testing.T) {
	master, err := NewMasterKey(testSeed(t))
	if err != nil {
		t.Fatalf("NewMasterKey() error: %v", err)
	}
	if !master.IsPrivate() {
		t.Error("master key should be private")
	}
	if master.Depth() != 0 || master.ChildIndex() != 0 || master.ParentFingerprint() != 0 {
		t.Errorf("master depth/index/parent = %d/%d/%x, want zeros", master.Depth(), master.ChildIndex(), master.ParentFingerprint())
	}
	if len(master.PrivateKeyBytes()) != 32 {
		t.Errorf("private key length = %d, want 32", len(master.PrivateKeyBytes()))
	}
	if len(master.PublicKeyBytes()) != 33 {
		t.Errorf("public key length = %d, want 33", len(master.PublicKeyBytes()))
	}
	if len(master.ChainCode()) != 32 {
		t.Errorf("chain code length = %d, want 32", len(master.ChainCode()))
	}
}

func TestNewMasterKey_InvalidSeedLength(t *testing.T) {
	tests := []struct {
		name string
		seed []byte
	}{
		{"empty", []byte{}},
		{"too short", make([]byte, MinSeedSize-1)},
		{"too long", make([]byte, MaxSeedSize+1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewMasterKey(tt.seed); !errors.Is(err, ErrInvalidSeed) {
				t.Errorf("NewMasterKey() error = %v, want ErrInvalidSeed", err)
			}
		})
	}
}

func TestBIP32Vector1(t *testing.T) {
	tests := []struct {
		path string
		xprv string
		xpub string
	}{
		{
			path: "m",
			xprv: "xprv9s21ZrQH143K3QTDL4LXw2F7HEK3wJUD2nW2nRk4stbPy6cq3jPPqjiChkVvvNKmPGJxWUtg6LnF5kejMRNNU3TGtRBeJgk33yuGBxrMPHi",
			xpub: "xpub661MyMwAqRbcFtXgS5sYJABqqG9YLmC4Q1Rdap9gSE8NqtwybGhePY2gZ29ESFjqJoCu1Rupje8YtGqsefD265TMg7usUDFdp6W1EGMcet8",
		},
		{
			path: "m/0'",
			xprv: "xprv9uHRZZhk6KAJC1avXpDAp4MDc3sQKNxDiPvvkX8Br5ngLNv1TxvUxt4cV1rGL5hj6KCesnDYUhd7oWgT11eZG7XnxHrnYeSvkzY7d2bhkJ7",
			xpub: "xpub68Gmy5EdvgibQVfPdqkBBCHxA5htiqg55crXYuXoQRKfDBFA1WEjWgP6LHhwBZeNK1VTsfTFUHCdrfp1bgwQ9xv5ski8PX9rL2dZXvgGDnw",
		},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			key, err := DerivePath(bip32Vector1Seed(t), tt.path)
			if err != nil {
				t.Fatalf("DerivePath(%s) error: %v", tt.path, err)
			}
			if got := key.String(); got != tt.xprv {
				t.Errorf("xprv = %s, want %s", got, tt.xprv)
			}
			if got := key.Neuter().String(); got != tt.xpub {
				t.Errorf("xpub = %s, want %s", got, tt.xpub)
			}
		})
	}
}

func TestFingerprint(t *testing.T) {
	master, err := NewMasterKey(bip32Vector1Seed(t))
	if err != nil {
		t.Fatalf("NewMasterKey() error: %v", err)
	}
	if master.Fingerprint() != 0x3442193e {
		t.Errorf("Fingerprint() = %08x, want 3442193e", master.Fingerprint())
	}
	child, err := master.DeriveChild(Hardened(0))
	if err != nil {
		t.Fatalf("DeriveChild() error: %v", err)
	}
	if child.ParentFingerprint() != master.Fingerprint() {
		t.Errorf("child ParentFingerprint() = %08x, want %08x", child.ParentFingerprint(), master.Fingerprint())
	}
	if child.Depth() != 1 || child.ChildIndex() != Hardened(0) {
		t.Errorf("child depth/index = %d/%d", child.Depth(), child.ChildIndex())
	}
}

func TestDeriveChild_Deterministic(t *testing.T) {
	master, _ := NewMasterKey(testSeed(t))
	a, err := master.DeriveChild(7)
	if err != nil {
		t.Fatalf("DeriveChild() error: %v", err)
	}
	b, err := master.DeriveChild(7)
	if err != nil {
		t.Fatalf("DeriveChild() error: %v", err)
	}
	if a.String() != b.String() {
		t.Error("same index should give the same child")
	}
	c, _ := master.DeriveChild(8)
	if a.String() == c.String() {
		t.Error("different indices should give different children")
	}
}

func TestDerivePath_MatchesStepwise(t *testing.T) {
	seed := testSeed(t)
	full, err := DerivePath(seed, "m/44'/0'/0'/0/5")
	if err != nil {
		t.Fatalf("DerivePath() error: %v", err)
	}

	master, _ := NewMasterKey(seed)
	key := master
	for _, idx := range []uint32{Hardened(44), Hardened(0), Hardened(0), 0, 5} {
		key, err = key.DeriveChild(idx)
		if err != nil {
			t.Fatalf("DeriveChild(%d) error: %v", idx, err)
		}
	}
	if key.String() != full.String() {
		t.Error("DerivePath differs from step-by-step derivation")
	}
	if full.Depth() != 5 || full.ChildIndex() != 5 {
		t.Errorf("depth/index = %d/%d, want 5/5", full.Depth(), full.ChildIndex())
	}
}

func TestDerivePath_Empty(t *testing.T) {
	master, _ := NewMasterKey(testSeed(t))
	want := master.String()

	clone, err := master.DerivePath(DerivationPath{})
	if err != nil {
		t.Fatalf("DerivePath(m) error: %v", err)
	}
	clone.Zero()
	if master.String() != want {
		t.Error("zeroing the result of an empty path should not touch the receiver")
	}
}

func TestDerivePath_InvalidPath(t *testing.T) {
	if _, err := DerivePath(testSeed(t), "44'/0'"); !errors.Is(err, ErrInvalidPath) {
		t.Errorf("DerivePath() error = %v, want ErrInvalidPath", err)
	}
}

func TestNeuter(t *testing.T) {
	master, _ := NewMasterKey(testSeed(t))
	pub := master.Neuter()

	if pub.IsPrivate() {
		t.Error("neutered key should not be private")
	}
	if pub.PrivateKeyBytes() != nil {
		t.Error("neutered key should have no private bytes")
	}
	if !bytes.Equal(pub.PublicKeyBytes(), master.PublicKeyBytes()) {
		t.Error("public key should survive Neuter")
	}

	pub.Zero()
	if len(master.ChainCode()) != 32 || bytes.Equal(master.ChainCode(), make([]byte, 32)) {
		t.Error("zeroing the neutered key should not touch the private key's chain code")
	}
}

func TestNeuter_PublicDerivation(t *testing.T) {
	master, _ := NewMasterKey(testSeed(t))
	account, err := master.DeriveChild(Hardened(0))
	if err != nil {
		t.Fatalf("DeriveChild() error: %v", err)
	}

	privChild, err := account.DeriveChild(1)
	if err != nil {
		t.Fatalf("private DeriveChild() error: %v", err)
	}
	pubChild, err := account.Neuter().DeriveChild(1)
	if err != nil {
		t.Fatalf("public DeriveChild() error: %v", err)
	}
	if pubChild.String() != privChild.Neuter().String() {
		t.Error("public derivation should match neutered private derivation")
	}
}

func TestDeriveChild_HardenedBoundary(t *testing.T) {
	master, _ := NewMasterKey(testSeed(t))
	pub := master.Neuter()

	if _, err := pub.DeriveChild(HardenedOffset - 1); err != nil {
		t.Errorf("DeriveChild(2^31-1) on public key error: %v", err)
	}
	if _, err := pub.DeriveChild(HardenedOffset); !errors.Is(err, ErrHardenedFromPublic) {
		t.Errorf("DeriveChild(2^31) on public key error = %v, want ErrHardenedFromPublic", err)
	}
	if _, err := master.DeriveChild(HardenedOffset); err != nil {
		t.Errorf("DeriveChild(2^31) on private key error: %v", err)
	}
}

func TestDeriveNextChild(t *testing.T) {
	master, _ := NewMasterKey(testSeed(t))
	child, used, err := master.DeriveNextChild(3)
	if err != nil {
		t.Fatalf("DeriveNextChild() error: %v", err)
	}
	if used != 3 {
		t.Errorf("index used = %d, want 3", used)
	}
	direct, _ := master.DeriveChild(3)
	if child.String() != direct.String() {
		t.Error("DeriveNextChild should match DeriveChild for a valid index")
	}

	if _, _, err := master.Neuter().DeriveNextChild(HardenedOffset); !errors.Is(err, ErrHardenedFromPublic) {
		t.Errorf("DeriveNextChild(hardened) on public key error = %v, want ErrHardenedFromPublic", err)
	}
}

func TestHDKey_Zero(t *testing.T) {
	master, _ := NewMasterKey(testSeed(t))
	master.Zero()
	if !bytes.Equal(master.PrivateKeyBytes(), make([]byte, 32)) {
		t.Error("private key should be zero after Zero()")
	}
	if !bytes.Equal(master.ChainCode(), make([]byte, 32)) {
		t.Error("chain code should be zero after Zero()")
	}

	var nilKey *HDKey
	nilKey.Zero()
}
