package wallet

import (
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/DeFiFoFum/cryptography-resources/internal/storage"
)

func testKeystore(t *testing.T) *Keystore {
	t.Helper()
	return NewKeystore(storage.NewMemory())
}

func TestKeystore_CreateAndLoad(t *testing.T) {
	ks := testKeystore(t)
	password := []byte("test-password")

	info, err := ks.Create("main", "  ABANDON abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about", password, fastParams())
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if info.Name != "main" || info.Words != 12 {
		t.Errorf("info = %+v", info)
	}

	master, _ := NewMasterKey(ToSeed(abandonAbout, ""))
	if info.Fingerprint != master.Fingerprint() {
		t.Errorf("Fingerprint = %08x, want %08x", info.Fingerprint, master.Fingerprint())
	}

	loaded, err := ks.Load("main", password)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if loaded != abandonAbout {
		t.Errorf("Load() = %q, want canonical mnemonic", loaded)
	}
}

func TestKeystore_CreateErrors(t *testing.T) {
	ks := testKeystore(t)
	pw := []byte("pw")

	if _, err := ks.Create("main", abandonAbout, pw, fastParams()); err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if _, err := ks.Create("main", abandonArt, pw, fastParams()); !errors.Is(err, ErrWalletExists) {
		t.Errorf("duplicate Create() error = %v, want ErrWalletExists", err)
	}
	if _, err := ks.Create("../etc", abandonAbout, pw, fastParams()); !errors.Is(err, ErrWalletName) {
		t.Errorf("Create(bad name) error = %v, want ErrWalletName", err)
	}
	if _, err := ks.Create("other", "abandon abandon abandon", pw, fastParams()); !errors.Is(err, ErrInvalidMnemonic) {
		t.Errorf("Create(bad mnemonic) error = %v, want ErrInvalidMnemonic", err)
	}
}

func TestKeystore_ConcurrentCreate(t *testing.T) {
	ks := testKeystore(t)

	var wg sync.WaitGroup
	errs := make([]error, 4)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = ks.Create("race", abandonAbout, []byte("pw"), fastParams())
		}(i)
	}
	wg.Wait()

	var created int
	for _, err := range errs {
		switch {
		case err == nil:
			created++
		case !errors.Is(err, ErrWalletExists):
			t.Errorf("Create() error = %v, want nil or ErrWalletExists", err)
		}
	}
	if created != 1 {
		t.Errorf("%d concurrent Create() calls succeeded, want 1", created)
	}
}

func TestKeystore_LoadErrors(t *testing.T) {
	ks := testKeystore(t)
	if _, err := ks.Create("main", abandonAbout, []byte("right"), fastParams()); err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if _, err := ks.Load("main", []byte("wrong")); !errors.Is(err, ErrDecrypt) {
		t.Errorf("Load(wrong password) error = %v, want ErrDecrypt", err)
	}
	if _, err := ks.Load("missing", []byte("right")); !errors.Is(err, ErrWalletNotFound) {
		t.Errorf("Load(missing) error = %v, want ErrWalletNotFound", err)
	}
}

func TestKeystore_ListAndDelete(t *testing.T) {
	ks := testKeystore(t)
	pw := []byte("pw")
	for _, name := range []string{"zeta", "alpha", "mid"} {
		if _, err := ks.Create(name, abandonAbout, pw, fastParams()); err != nil {
			t.Fatalf("Create(%s) error: %v", name, err)
		}
	}

	list, err := ks.List()
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(list) != 3 || list[0].Name != "alpha" || list[2].Name != "zeta" {
		t.Errorf("List() = %+v, want sorted alpha, mid, zeta", list)
	}

	if err := ks.Delete("mid"); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if _, err := ks.Info("mid"); !errors.Is(err, ErrWalletNotFound) {
		t.Errorf("Info(deleted) error = %v, want ErrWalletNotFound", err)
	}
	if err := ks.Delete("mid"); !errors.Is(err, ErrWalletNotFound) {
		t.Errorf("second Delete() error = %v, want ErrWalletNotFound", err)
	}

	list, _ = ks.List()
	if len(list) != 2 {
		t.Errorf("List() after delete has %d wallets, want 2", len(list))
	}
}

func TestKeystore_SharedDatabase(t *testing.T) {
	db := storage.NewMemory()
	if err := db.Put([]byte("other/key"), []byte("value")); err != nil {
		t.Fatalf("Put() error: %v", err)
	}
	ks := NewKeystore(db)
	if _, err := ks.Create("main", abandonAbout, []byte("pw"), fastParams()); err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	list, err := ks.List()
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(list) != 1 {
		t.Errorf("List() = %+v, want only the keystore entry", list)
	}
}

func TestKeystore_Badger(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "keystore")
	db, err := storage.NewBadger(dir)
	if err != nil {
		t.Fatalf("NewBadger() error: %v", err)
	}
	ks := NewKeystore(db)
	if _, err := ks.Create("main", abandonArt, []byte("pw"), fastParams()); err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	db.Close()

	db, err = storage.NewBadger(dir)
	if err != nil {
		t.Fatalf("reopen NewBadger() error: %v", err)
	}
	defer db.Close()

	got, err := NewKeystore(db).Load("main", []byte("pw"))
	if err != nil {
		t.Fatalf("Load() after reopen error: %v", err)
	}
	if got != abandonArt {
		t.Errorf("Load() = %q", got)
	}
}
