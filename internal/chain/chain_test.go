package chain

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/DeFiFoFum/cryptography-resources/internal/log"
	"github.com/DeFiFoFum/cryptography-resources/internal/wallet"
	"github.com/DeFiFoFum/cryptography-resources/pkg/types"
)

const testMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

func testSeed(t *testing.T) []byte {
	t.Helper()
	seed, err := wallet.SeedFromMnemonic(testMnemonic, "")
	if err != nil {
		t.Fatalf("SeedFromMnemonic() error: %v", err)
	}
	return seed
}

// accountKey derives the key for account index along enc's template.
func accountKey(t *testing.T, enc Encoder, index uint32) (*wallet.HDKey, wallet.DerivationPath) {
	t.Helper()
	path, err := enc.Template().Path(index)
	if err != nil {
		t.Fatalf("Path(%d) error: %v", index, err)
	}
	master, err := wallet.NewMasterKey(testSeed(t))
	if err != nil {
		t.Fatalf("NewMasterKey() error: %v", err)
	}
	key, err := master.DerivePath(path)
	if err != nil {
		t.Fatalf("DerivePath(%s) error: %v", path, err)
	}
	return key, path
}

func TestLookup(t *testing.T) {
	for _, c := range types.Chains {
		enc, err := Lookup(c, Options{})
		if err != nil {
			t.Fatalf("Lookup(%s) error: %v", c, err)
		}
		if enc.Chain() != c {
			t.Errorf("Lookup(%s).Chain() = %s", c, enc.Chain())
		}
	}

	if _, err := Lookup(types.Chain("dogecoin"), Options{}); !errors.Is(err, ErrUnknownChain) {
		t.Errorf("Lookup(dogecoin) error = %v, want ErrUnknownChain", err)
	}
	if _, err := Lookup(types.Bitcoin, Options{BitcoinAddress: "p2tr"}); !errors.Is(err, ErrUnsupported) {
		t.Errorf("Lookup(bitcoin, p2tr) error = %v, want ErrUnsupported", err)
	}
	if _, err := Lookup(types.Solana, Options{SolanaScheme: "ed25519-bip32"}); !errors.Is(err, ErrUnsupported) {
		t.Errorf("Lookup(solana, bad scheme) error = %v, want ErrUnsupported", err)
	}
}

func TestPathTemplate(t *testing.T) {
	tests := []struct {
		chain types.Chain
		opts  Options
		tmpl  string
		path3 string
	}{
		{types.Bitcoin, Options{}, "m/44'/0'/{i}'/0/0", "m/44'/0'/3'/0/0"},
		{types.Bitcoin, Options{BitcoinAddress: BitcoinP2WPKH}, "m/84'/0'/{i}'/0/0", "m/84'/0'/3'/0/0"},
		{types.Ethereum, Options{}, "m/44'/60'/0'/0/{i}", "m/44'/60'/0'/0/3"},
		{types.Solana, Options{}, "m/44'/501'/{i}'/0'", "m/44'/501'/3'/0'"},
	}
	for _, tt := range tests {
		t.Run(tt.tmpl, func(t *testing.T) {
			enc, err := Lookup(tt.chain, tt.opts)
			if err != nil {
				t.Fatalf("Lookup() error: %v", err)
			}
			if got := enc.Template().String(); got != tt.tmpl {
				t.Errorf("Template() = %s, want %s", got, tt.tmpl)
			}
			p, err := enc.Template().Path(3)
			if err != nil {
				t.Fatalf("Path(3) error: %v", err)
			}
			if p.String() != tt.path3 {
				t.Errorf("Path(3) = %s, want %s", p, tt.path3)
			}
		})
	}
}

func TestPathTemplate_IndexOutOfRange(t *testing.T) {
	_, err := ethereumTemplate.Path(wallet.HardenedOffset)
	if !errors.Is(err, wallet.ErrInvalidPath) {
		t.Errorf("Path(2^31) error = %v, want ErrInvalidPath", err)
	}
}

func TestRecord_PublicOnlyKey(t *testing.T) {
	enc, _ := Lookup(types.Ethereum, Options{})
	key, path := accountKey(t, enc, 0)

	_, err := Record(enc, key.Neuter(), 0, path)
	if !errors.Is(err, ErrUnsupported) {
		t.Errorf("Record(public-only) error = %v, want ErrUnsupported", err)
	}
}

func TestRecord_Fields(t *testing.T) {
	enc, _ := Lookup(types.Bitcoin, Options{})
	key, path := accountKey(t, enc, 2)

	rec, err := Record(enc, key, 2, path)
	if err != nil {
		t.Fatalf("Record() error: %v", err)
	}
	if rec.Chain != types.Bitcoin || rec.Account != 2 {
		t.Errorf("record = %+v", rec)
	}
	if rec.Path != "m/44'/0'/2'/0/0" {
		t.Errorf("Path = %s", rec.Path)
	}
	if rec.Address == "" || rec.PublicKey == "" || rec.PrivateKey == "" {
		t.Errorf("record has empty fields: %+v", rec)
	}
	if !strings.HasPrefix(rec.PrivateKey, "K") && !strings.HasPrefix(rec.PrivateKey, "L") {
		t.Errorf("mainnet compressed WIF %s should start with K or L", rec.PrivateKey)
	}
}

func TestLookup_LogsSelection(t *testing.T) {
	var buf bytes.Buffer
	if err := log.InitWriter(&buf, "debug", true, ""); err != nil {
		t.Fatalf("InitWriter() error: %v", err)
	}
	t.Cleanup(func() { log.InitWriter(os.Stderr, "warn", false, "") })

	if _, err := Lookup(types.Solana, Options{SolanaScheme: SolanaSLIP10}); err != nil {
		t.Fatalf("Lookup() error: %v", err)
	}
	out := buf.String()
	for _, want := range []string{`"component":"chain"`, `"chain":"solana"`, `"solana_scheme":"slip10"`, `"network":"mainnet"`} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %s: %s", want, out)
		}
	}
}
