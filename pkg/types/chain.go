// Package types defines the value types shared by the deriver, the chain
// encoders and the command-line front end.
package types

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Chain identifies a target blockchain.
type Chain string

// Supported chains.
const (
	Bitcoin  Chain = "bitcoin"
	Ethereum Chain = "ethereum"
	Solana   Chain = "solana"
)

// Chains lists every supported chain in display order.
var Chains = []Chain{Bitcoin, Ethereum, Solana}

// chainAliases maps accepted spellings to chains.
var chainAliases = map[string]Chain{
	"bitcoin":  Bitcoin,
	"btc":      Bitcoin,
	"ethereum": Ethereum,
	"eth":      Ethereum,
	"solana":   Solana,
	"sol":      Solana,
}

// ParseChain parses a chain name or ticker, case-insensitively.
func ParseChain(s string) (Chain, error) {
	c, ok := chainAliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return "", fmt.Errorf("unknown chain %q (want bitcoin, ethereum or solana)", s)
	}
	return c, nil
}

// String returns the canonical chain name.
func (c Chain) String() string {
	return string(c)
}

// UnmarshalJSON accepts any spelling ParseChain accepts.
func (c *Chain) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseChain(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Network selects mainnet or testnet encodings where a chain has both.
type Network string

const (
	Mainnet Network = "mainnet"
	Testnet Network = "testnet"
)

// ParseNetwork parses "mainnet" or "testnet". Empty means mainnet.
func ParseNetwork(s string) (Network, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "mainnet", "main":
		return Mainnet, nil
	case "testnet", "test":
		return Testnet, nil
	}
	return "", fmt.Errorf("unknown network %q (want mainnet or testnet)", s)
}
