package types

import (
	"encoding/json"
	"testing"
)

func TestParseChain(t *testing.T) {
	tests := []struct {
		in      string
		want    Chain
		wantErr bool
	}{
		{"bitcoin", Bitcoin, false},
		{"BTC", Bitcoin, false},
		{" eth ", Ethereum, false},
		{"Ethereum", Ethereum, false},
		{"sol", Solana, false},
		{"dogecoin", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseChain(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseChain(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseChain(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestChain_UnmarshalJSON(t *testing.T) {
	var c Chain
	if err := json.Unmarshal([]byte(`"ETH"`), &c); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}
	if c != Ethereum {
		t.Errorf("chain = %q, want %q", c, Ethereum)
	}
	if err := json.Unmarshal([]byte(`"xrp"`), &c); err == nil {
		t.Error("expected error for unknown chain")
	}
}

func TestParseNetwork(t *testing.T) {
	if n, err := ParseNetwork(""); err != nil || n != Mainnet {
		t.Errorf("ParseNetwork(\"\") = %q, %v; want mainnet", n, err)
	}
	if n, err := ParseNetwork("TESTNET"); err != nil || n != Testnet {
		t.Errorf("ParseNetwork(TESTNET) = %q, %v; want testnet", n, err)
	}
	if _, err := ParseNetwork("regtest"); err == nil {
		t.Error("expected error for regtest")
	}
}

func TestRedactAll(t *testing.T) {
	recs := []AccountKeyRecord{
		{Account: 0, PrivateKey: "secret0"},
		{Account: 1, PrivateKey: "secret1"},
	}
	RedactAll(recs)
	for _, r := range recs {
		if r.PrivateKey != "" {
			t.Errorf("account %d still has a private key", r.Account)
		}
	}

	data, err := json.Marshal(recs[0])
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}
	var m map[string]any
	json.Unmarshal(data, &m)
	if _, ok := m["private_key"]; ok {
		t.Error("redacted record should omit private_key")
	}
}
