package wallet

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/DeFiFoFum/cryptography-resources/internal/log"
	"github.com/DeFiFoFum/cryptography-resources/internal/storage"
)

// Keystore errors.
var (
	ErrWalletExists   = errors.New("wallet already exists")
	ErrWalletNotFound = errors.New("wallet not found")
	ErrWalletName     = errors.New("invalid wallet name")
)

// keystoreVersion is the record format written by this package.
const keystoreVersion = 1

var walletPrefix = []byte("wallet/")

var walletNameRe = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_.-]{0,63}$`)

// keystoreRecord is the stored form of one wallet.
type keystoreRecord struct {
	Version           int       `json:"version"`
	Name              string    `json:"name"`
	CreatedAt         time.Time `json:"created_at"`
	Words             int       `json:"words"`
	Fingerprint       uint32    `json:"fingerprint"` // master key fingerprint, empty passphrase
	EncryptedMnemonic []byte    `json:"encrypted_mnemonic"`
}

// WalletInfo is the public metadata of a stored wallet. Listing wallets
// never needs the password.
type WalletInfo struct {
	Name        string
	CreatedAt   time.Time
	Words       int
	Fingerprint uint32
}

// Keystore keeps password-encrypted mnemonics in a key-value store.
// Derived keys are never stored; they are re-derived on demand.
type Keystore struct {
	db storage.DB
}

// NewKeystore creates a keystore over db. Records live under their own
// prefix so the database can be shared.
func NewKeystore(db storage.DB) *Keystore {
	return &Keystore{db: storage.NewPrefixDB(db, walletPrefix)}
}

// Create validates mnemonic, encrypts it under password and stores it as name.
func (ks *Keystore) Create(name, mnemonic string, password []byte, params EncryptionParams) (*WalletInfo, error) {
	if !walletNameRe.MatchString(name) {
		return nil, fmt.Errorf("%w: %q", ErrWalletName, name)
	}
	if err := CheckMnemonic(mnemonic); err != nil {
		return nil, err
	}
	exists, err := ks.db.Has([]byte(name))
	if err != nil {
		return nil, fmt.Errorf("check wallet: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("%w: %q", ErrWalletExists, name)
	}

	canonical := []byte(NormalizeMnemonic(mnemonic))
	defer Zero(canonical)

	fp, err := masterFingerprint(string(canonical))
	if err != nil {
		return nil, err
	}

	sealed, err := Encrypt(canonical, password, []byte(name), params)
	if err != nil {
		return nil, fmt.Errorf("encrypt mnemonic: %w", err)
	}

	rec := keystoreRecord{
		Version:           keystoreVersion,
		Name:              name,
		CreatedAt:         time.Now().UTC(),
		Words:             len(splitWords(string(canonical))),
		Fingerprint:       fp,
		EncryptedMnemonic: sealed,
	}
	data, err := json.Marshal(&rec)
	if err != nil {
		return nil, fmt.Errorf("marshal wallet: %w", err)
	}
	if err := ks.db.Insert([]byte(name), data); err != nil {
		if errors.Is(err, storage.ErrExists) {
			return nil, fmt.Errorf("%w: %q", ErrWalletExists, name)
		}
		return nil, fmt.Errorf("store wallet: %w", err)
	}
	log.Keystore.Info().
		Str("wallet", name).
		Str("fingerprint", fmt.Sprintf("%08x", fp)).
		Int("words", rec.Words).
		Msg("Wallet created")
	info := rec.info()
	return &info, nil
}

// Load decrypts and returns the mnemonic stored as name.
func (ks *Keystore) Load(name string, password []byte) (string, error) {
	rec, err := ks.read(name)
	if err != nil {
		return "", err
	}
	plain, err := Decrypt(rec.EncryptedMnemonic, password, []byte(rec.Name))
	if err != nil {
		return "", fmt.Errorf("decrypt wallet %q: %w", name, err)
	}
	defer Zero(plain)
	return string(plain), nil
}

// Info returns the metadata of one wallet.
func (ks *Keystore) Info(name string) (*WalletInfo, error) {
	rec, err := ks.read(name)
	if err != nil {
		return nil, err
	}
	info := rec.info()
	return &info, nil
}

// List returns metadata for all stored wallets, ordered by name.
func (ks *Keystore) List() ([]WalletInfo, error) {
	var out []WalletInfo
	err := ks.db.ForEach(nil, func(key, value []byte) error {
		var rec keystoreRecord
		if err := json.Unmarshal(value, &rec); err != nil {
			return fmt.Errorf("parse wallet %q: %w", key, err)
		}
		out = append(out, rec.info())
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list wallets: %w", err)
	}
	return out, nil
}

// Delete removes a wallet.
func (ks *Keystore) Delete(name string) error {
	exists, err := ks.db.Has([]byte(name))
	if err != nil {
		return fmt.Errorf("check wallet: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: %q", ErrWalletNotFound, name)
	}
	if err := ks.db.Delete([]byte(name)); err != nil {
		return fmt.Errorf("delete wallet: %w", err)
	}
	log.Keystore.Info().Str("wallet", name).Msg("Wallet deleted")
	return nil
}

func (ks *Keystore) read(name string) (*keystoreRecord, error) {
	data, err := ks.db.Get([]byte(name))
	if errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("%w: %q", ErrWalletNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("read wallet: %w", err)
	}
	var rec keystoreRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("parse wallet: %w", err)
	}
	if rec.Version != keystoreVersion {
		return nil, fmt.Errorf("unsupported wallet version: %d", rec.Version)
	}
	return &rec, nil
}

func (r *keystoreRecord) info() WalletInfo {
	return WalletInfo{
		Name:        r.Name,
		CreatedAt:   r.CreatedAt,
		Words:       r.Words,
		Fingerprint: r.Fingerprint,
	}
}

// masterFingerprint identifies a mnemonic without revealing it.
func masterFingerprint(mnemonic string) (uint32, error) {
	seed := ToSeed(mnemonic, "")
	defer Zero(seed)
	master, err := NewMasterKey(seed)
	if err != nil {
		return 0, err
	}
	defer master.Zero()
	return master.Fingerprint(), nil
}
