package main

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/DeFiFoFum/cryptography-resources/config"
	"github.com/DeFiFoFum/cryptography-resources/internal/log"
	"github.com/DeFiFoFum/cryptography-resources/internal/storage"
	"github.com/DeFiFoFum/cryptography-resources/internal/wallet"
)

const keystoreUsage = "usage: hdkeys keystore <create|import|list|show|derive|delete> [flags]"

func (a *app) cmdKeystore(args []string) error {
	if len(args) < 1 {
		return errors.New(keystoreUsage)
	}
	if !a.cfg.Keystore.Enabled {
		return fmt.Errorf("keystore is disabled (keystore.enabled = false)")
	}

	switch args[0] {
	case "create":
		return a.withKeystore(func(ks *wallet.Keystore) error { return a.cmdKeystoreCreate(ks, args[1:]) })
	case "import":
		return a.withKeystore(func(ks *wallet.Keystore) error { return a.cmdKeystoreImport(ks, args[1:]) })
	case "list":
		return a.withKeystore(a.cmdKeystoreList)
	case "show":
		return a.withKeystore(func(ks *wallet.Keystore) error { return a.cmdKeystoreShow(ks, args[1:]) })
	case "derive":
		return a.withKeystore(func(ks *wallet.Keystore) error { return a.cmdKeystoreDerive(ks, args[1:]) })
	case "delete":
		return a.withKeystore(func(ks *wallet.Keystore) error { return a.cmdKeystoreDelete(ks, args[1:]) })
	default:
		return fmt.Errorf("unknown keystore command: %s\n%s", args[0], keystoreUsage)
	}
}

// withKeystore opens the keystore database for the duration of fn.
func (a *app) withKeystore(fn func(ks *wallet.Keystore) error) error {
	if err := config.EnsureDataDirs(a.cfg); err != nil {
		return err
	}
	db, err := storage.NewBadger(a.cfg.KeystoreDir())
	if err != nil {
		return err
	}
	defer db.Close()
	return fn(wallet.NewKeystore(db))
}

func (a *app) cmdKeystoreCreate(ks *wallet.Keystore, args []string) error {
	fs := a.newFlagSet("keystore create")
	name := fs.String("name", "", "Wallet name")
	words := fs.Int("words", 0, "Word count: 12, 15, 18, 21 or 24")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *name == "" {
		return fmt.Errorf("usage: hdkeys keystore create --name <name> [--words 24]")
	}

	bits := a.cfg.Mnemonic.Strength
	if *words != 0 {
		var err error
		if bits, err = wallet.StrengthForWords(*words); err != nil {
			return err
		}
	}

	// The phrase is only shown once it is safely stored.
	password, err := a.newPassword()
	if err != nil {
		return err
	}
	defer wallet.Zero(password)

	mnemonic, err := wallet.GenerateMnemonic(bits)
	if err != nil {
		return err
	}
	info, err := ks.Create(*name, mnemonic, password, wallet.DefaultParams())
	if err != nil {
		return err
	}

	fmt.Fprintln(a.stdout, "Mnemonic (write this down!):")
	fmt.Fprintf(a.stdout, "  %s\n\n", mnemonic)
	a.printWallet(info, mnemonic, "Wallet created")
	return nil
}

func (a *app) cmdKeystoreImport(ks *wallet.Keystore, args []string) error {
	fs := a.newFlagSet("keystore import")
	name := fs.String("name", "", "Wallet name")
	mnemonicFlag := fs.String("mnemonic", "", "BIP-39 mnemonic (prompted when omitted)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *name == "" {
		return fmt.Errorf("usage: hdkeys keystore import --name <name> [--mnemonic \"word1 word2 ...\"]")
	}

	mnemonic, err := a.mnemonicInput(*mnemonicFlag)
	if err != nil {
		return err
	}
	if err := wallet.CheckMnemonic(mnemonic); err != nil {
		return err
	}

	password, err := a.newPassword()
	if err != nil {
		return err
	}
	defer wallet.Zero(password)

	info, err := ks.Create(*name, mnemonic, password, wallet.DefaultParams())
	if err != nil {
		return err
	}
	a.printWallet(info, mnemonic, "Wallet imported")
	return nil
}

// printWallet shows a stored wallet's summary. The wallet is already saved,
// so failing to derive the display address only warns.
func (a *app) printWallet(info *wallet.WalletInfo, mnemonic, done string) {
	fmt.Fprintf(a.stdout, "%s: %s\n", done, info.Name)
	fmt.Fprintf(a.stdout, "Fingerprint: %08x\n", info.Fingerprint)

	rec, err := a.defaultAccount(mnemonic)
	if err != nil {
		log.CLI.Warn().Err(err).Str("wallet", info.Name).Msg("Could not derive display address")
		fmt.Fprintf(a.stderr, "Warning: wallet saved, but deriving its address failed: %v\n", err)
		return
	}
	fmt.Fprintf(a.stdout, "Address (%s, %s): %s\n", rec.Chain, rec.Path, rec.Address)
}

func (a *app) cmdKeystoreList(ks *wallet.Keystore) error {
	wallets, err := ks.List()
	if err != nil {
		return err
	}
	if len(wallets) == 0 {
		fmt.Fprintln(a.stdout, "No wallets found.")
		return nil
	}

	tw := tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tWORDS\tFINGERPRINT\tCREATED")
	for _, w := range wallets {
		fmt.Fprintf(tw, "%s\t%d\t%08x\t%s\n", w.Name, w.Words, w.Fingerprint, w.CreatedAt.Format("2006-01-02 15:04:05"))
	}
	return tw.Flush()
}

func (a *app) cmdKeystoreShow(ks *wallet.Keystore, args []string) error {
	fs := a.newFlagSet("keystore show")
	name := fs.String("name", "", "Wallet name")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *name == "" {
		return fmt.Errorf("usage: hdkeys keystore show --name <name>")
	}

	mnemonic, err := a.loadMnemonic(ks, *name)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.stdout, mnemonic)
	return nil
}

func (a *app) cmdKeystoreDerive(ks *wallet.Keystore, args []string) error {
	fs := a.newFlagSet("keystore derive")
	name := fs.String("name", "", "Wallet name")
	df := a.addDeriveFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *name == "" {
		return fmt.Errorf("usage: hdkeys keystore derive --name <name> [derive flags]")
	}

	mnemonic, err := a.loadMnemonic(ks, *name)
	if err != nil {
		return err
	}
	return a.deriveAndWrite(mnemonic, df)
}

func (a *app) cmdKeystoreDelete(ks *wallet.Keystore, args []string) error {
	fs := a.newFlagSet("keystore delete")
	name := fs.String("name", "", "Wallet name")
	yes := fs.Bool("yes", false, "Confirm deletion")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *name == "" {
		return fmt.Errorf("usage: hdkeys keystore delete --name <name> --yes")
	}
	if !*yes {
		return fmt.Errorf("refusing to delete %q without --yes", *name)
	}
	if err := ks.Delete(*name); err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "Wallet deleted: %s\n", *name)
	return nil
}

func (a *app) loadMnemonic(ks *wallet.Keystore, name string) (string, error) {
	if _, err := ks.Info(name); err != nil {
		return "", err
	}
	password, err := a.readSecret("Enter password: ")
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	defer wallet.Zero(password)
	return ks.Load(name, password)
}
