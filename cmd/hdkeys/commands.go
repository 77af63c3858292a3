package main

import (
	"context"
	"encoding/hex"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/DeFiFoFum/cryptography-resources/internal/accounts"
	"github.com/DeFiFoFum/cryptography-resources/internal/report"
	"github.com/DeFiFoFum/cryptography-resources/internal/wallet"
	"github.com/DeFiFoFum/cryptography-resources/pkg/types"
)

func (a *app) newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	return fs
}

// ── mnemonic ────────────────────────────────────────────────────────────

func (a *app) cmdMnemonic(args []string) error {
	fs := a.newFlagSet("mnemonic")
	strength := fs.Int("strength", a.cfg.Mnemonic.Strength, "Entropy bits: 128, 160, 192, 224 or 256")
	words := fs.Int("words", 0, "Word count: 12, 15, 18, 21 or 24 (overrides --strength)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	bits := *strength
	if *words != 0 {
		var err error
		if bits, err = wallet.StrengthForWords(*words); err != nil {
			return err
		}
	}
	mnemonic, err := wallet.GenerateMnemonic(bits)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.stdout, mnemonic)
	return nil
}

// ── validate ────────────────────────────────────────────────────────────

func (a *app) cmdValidate(args []string) error {
	fs := a.newFlagSet("validate")
	mnemonicFlag := fs.String("mnemonic", "", "BIP-39 mnemonic (prompted when omitted)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	mnemonic, err := a.mnemonicInput(*mnemonicFlag)
	if err != nil {
		return err
	}
	if err := wallet.CheckMnemonic(mnemonic); err != nil {
		return err
	}
	n := len(strings.Fields(wallet.NormalizeMnemonic(mnemonic)))
	bits, _ := wallet.StrengthForWords(n)
	fmt.Fprintf(a.stdout, "valid (%d words, %d-bit entropy)\n", n, bits)
	return nil
}

// ── entropy / from-entropy ──────────────────────────────────────────────

func (a *app) cmdEntropy(args []string) error {
	fs := a.newFlagSet("entropy")
	mnemonicFlag := fs.String("mnemonic", "", "BIP-39 mnemonic (prompted when omitted)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	mnemonic, err := a.mnemonicInput(*mnemonicFlag)
	if err != nil {
		return err
	}
	entropy, err := wallet.MnemonicToEntropy(mnemonic)
	if err != nil {
		return err
	}
	defer wallet.Zero(entropy)
	fmt.Fprintln(a.stdout, hex.EncodeToString(entropy))
	return nil
}

func (a *app) cmdFromEntropy(args []string) error {
	fs := a.newFlagSet("from-entropy")
	hexFlag := fs.String("hex", "", "Entropy as hex (16, 20, 24, 28 or 32 bytes)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *hexFlag == "" {
		return fmt.Errorf("usage: hdkeys from-entropy --hex <entropy>")
	}

	entropy, err := hex.DecodeString(strings.TrimPrefix(strings.TrimSpace(*hexFlag), "0x"))
	if err != nil {
		return fmt.Errorf("decode entropy: %w", err)
	}
	defer wallet.Zero(entropy)
	mnemonic, err := wallet.MnemonicFromEntropy(entropy)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.stdout, mnemonic)
	return nil
}

// ── seed ────────────────────────────────────────────────────────────────

func (a *app) cmdSeed(args []string) error {
	fs := a.newFlagSet("seed")
	mnemonicFlag := fs.String("mnemonic", "", "BIP-39 mnemonic (prompted when omitted)")
	passphrase := fs.Bool("passphrase", false, "Prompt for a BIP-39 passphrase")
	if err := fs.Parse(args); err != nil {
		return err
	}

	mnemonic, err := a.mnemonicInput(*mnemonicFlag)
	if err != nil {
		return err
	}
	pass, err := a.passphraseInput(*passphrase)
	if err != nil {
		return err
	}
	seed, err := wallet.SeedFromMnemonic(mnemonic, pass)
	if err != nil {
		return err
	}
	defer wallet.Zero(seed)
	fmt.Fprintln(a.stdout, hex.EncodeToString(seed))
	return nil
}

// ── derive ──────────────────────────────────────────────────────────────

// deriveFlags are shared by derive and keystore derive.
type deriveFlags struct {
	chain          *string
	count          *int
	start          *uint
	workers        *int
	format         *string
	showKeys       *bool
	passphrase     *bool
	bitcoinAddress *string
	solanaScheme   *string
}

func (a *app) addDeriveFlags(fs *flag.FlagSet) *deriveFlags {
	return &deriveFlags{
		chain:          fs.String("chain", a.cfg.Derive.Chain, "Chain: bitcoin, ethereum or solana"),
		count:          fs.Int("count", a.cfg.Derive.Count, "Number of accounts"),
		start:          fs.Uint("start", 0, "First account index"),
		workers:        fs.Int("workers", a.cfg.Derive.Workers, "Parallel derivation workers"),
		format:         fs.String("format", a.cfg.Output.Format, "Output format: table or json"),
		showKeys:       fs.Bool("show-keys", a.cfg.Output.ShowKeys, "Print private keys"),
		passphrase:     fs.Bool("passphrase", false, "Prompt for a BIP-39 passphrase"),
		bitcoinAddress: fs.String("bitcoin-address", a.cfg.Bitcoin.Address, "Bitcoin address type: p2pkh or p2wpkh"),
		solanaScheme:   fs.String("solana-scheme", a.cfg.Solana.Scheme, "Solana derivation: bip32 or slip10"),
	}
}

func (a *app) cmdDerive(args []string) error {
	fs := a.newFlagSet("derive")
	mnemonicFlag := fs.String("mnemonic", "", "BIP-39 mnemonic (prompted when omitted)")
	df := a.addDeriveFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	mnemonic, err := a.mnemonicInput(*mnemonicFlag)
	if err != nil {
		return err
	}
	return a.deriveAndWrite(mnemonic, df)
}

func (a *app) deriveAndWrite(mnemonic string, df *deriveFlags) error {
	c, err := types.ParseChain(*df.chain)
	if err != nil {
		return err
	}
	if !report.ValidFormat(*df.format) {
		return fmt.Errorf("unknown output format %q", *df.format)
	}
	if *df.start >= uint(wallet.HardenedOffset) {
		return fmt.Errorf("start index %d out of range", *df.start)
	}
	pass, err := a.passphraseInput(*df.passphrase)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	records, err := accounts.Derive(ctx, mnemonic, pass, c, *df.count, accounts.Options{
		Network:        a.cfg.Network,
		Workers:        *df.workers,
		BitcoinAddress: strings.ToLower(*df.bitcoinAddress),
		SolanaScheme:   strings.ToLower(*df.solanaScheme),
		Start:          uint32(*df.start),
	})
	if err != nil {
		return err
	}
	defer types.RedactAll(records)

	return report.Write(a.stdout, records, report.Options{
		Format:   *df.format,
		ShowKeys: *df.showKeys,
	})
}

// ── path ────────────────────────────────────────────────────────────────

func (a *app) cmdPath(args []string) error {
	fs := a.newFlagSet("path")
	mnemonicFlag := fs.String("mnemonic", "", "BIP-39 mnemonic (prompted when omitted)")
	pathFlag := fs.String("path", "", "Derivation path, e.g. m/44'/0'/0'")
	neuter := fs.Bool("neuter", false, "Show the public extended key only")
	showKeys := fs.Bool("show-keys", a.cfg.Output.ShowKeys, "Print the extended private key")
	passphrase := fs.Bool("passphrase", false, "Prompt for a BIP-39 passphrase")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *pathFlag == "" {
		return fmt.Errorf("usage: hdkeys path --path <m/...> [--neuter]")
	}
	path, err := wallet.ParsePath(*pathFlag)
	if err != nil {
		return err
	}

	mnemonic, err := a.mnemonicInput(*mnemonicFlag)
	if err != nil {
		return err
	}
	pass, err := a.passphraseInput(*passphrase)
	if err != nil {
		return err
	}
	seed, err := wallet.SeedFromMnemonic(mnemonic, pass)
	if err != nil {
		return err
	}
	defer wallet.Zero(seed)

	master, err := wallet.NewMasterKey(seed)
	if err != nil {
		return err
	}
	key, err := master.DerivePath(path)
	master.Zero()
	if err != nil {
		return err
	}
	defer key.Zero()

	pub := key.Neuter()
	fmt.Fprintf(a.stdout, "Path:               %s\n", path)
	fmt.Fprintf(a.stdout, "Depth:              %d\n", key.Depth())
	fmt.Fprintf(a.stdout, "Child index:        %d\n", key.ChildIndex())
	fmt.Fprintf(a.stdout, "Parent fingerprint: %08x\n", key.ParentFingerprint())
	fmt.Fprintf(a.stdout, "Fingerprint:        %08x\n", key.Fingerprint())
	fmt.Fprintf(a.stdout, "Public key:         %s\n", hex.EncodeToString(key.PublicKeyBytes()))
	fmt.Fprintf(a.stdout, "Extended public:    %s\n", pub.String())
	if !*neuter && *showKeys {
		fmt.Fprintf(a.stdout, "Extended private:   %s\n", key.String())
	}

	if a.cfg.Network == types.Testnet {
		fmt.Fprintln(a.stderr, "Note: extended keys use mainnet version bytes")
	}
	return nil
}

// defaultAccount derives account 0 on the configured chain, for display.
func (a *app) defaultAccount(mnemonic string) (types.AccountKeyRecord, error) {
	c, err := types.ParseChain(a.cfg.Derive.Chain)
	if err != nil {
		return types.AccountKeyRecord{}, err
	}
	recs, err := accounts.Derive(context.Background(), mnemonic, "", c, 1, accounts.Options{
		Network:        a.cfg.Network,
		BitcoinAddress: a.cfg.Bitcoin.Address,
		SolanaScheme:   a.cfg.Solana.Scheme,
	})
	if err != nil {
		return types.AccountKeyRecord{}, err
	}
	rec := recs[0]
	rec.Redact()
	return rec, nil
}
