// Package accounts enumerates account key records for a chain from a
// mnemonic or seed, sequentially or on a bounded worker pool.
package accounts

import (
	"context"
	"errors"
	"fmt"

	"github.com/DeFiFoFum/cryptography-resources/internal/chain"
	"github.com/DeFiFoFum/cryptography-resources/internal/log"
	"github.com/DeFiFoFum/cryptography-resources/internal/wallet"
	"github.com/DeFiFoFum/cryptography-resources/pkg/types"
	"golang.org/x/sync/errgroup"
)

// ErrInvalidCount is returned for a negative count or a range that runs
// past the last non-hardened account index.
var ErrInvalidCount = errors.New("invalid account count")

// Options configure an enumeration. The zero value derives sequentially on
// mainnet starting at account 0.
type Options struct {
	Network        types.Network
	Workers        int
	BitcoinAddress string
	SolanaScheme   string
	Start          uint32
}

func (o Options) chainOptions() chain.Options {
	return chain.Options{
		Network:        o.Network,
		BitcoinAddress: o.BitcoinAddress,
		SolanaScheme:   o.SolanaScheme,
	}
}

// Derive validates mnemonic, stretches it with passphrase and derives
// count accounts for c. Records come back ordered by account index. On
// error no records are returned.
func Derive(ctx context.Context, mnemonic, passphrase string, c types.Chain, count int, opts Options) ([]types.AccountKeyRecord, error) {
	if count < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCount, count)
	}
	seed, err := wallet.SeedFromMnemonic(mnemonic, passphrase)
	if err != nil {
		return nil, err
	}
	defer wallet.Zero(seed)
	return DeriveFromSeed(ctx, seed, c, count, opts)
}

// DeriveFromSeed derives accounts [opts.Start, opts.Start+count) for c
// from a BIP-39 seed. The seed is not modified.
func DeriveFromSeed(ctx context.Context, seed []byte, c types.Chain, count int, opts Options) ([]types.AccountKeyRecord, error) {
	if count < 0 || uint64(opts.Start)+uint64(count) > uint64(wallet.HardenedOffset) {
		return nil, fmt.Errorf("%w: start %d count %d", ErrInvalidCount, opts.Start, count)
	}
	enc, err := chain.Lookup(c, opts.chainOptions())
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return []types.AccountKeyRecord{}, nil
	}

	d, err := newDeriver(seed, enc)
	if err != nil {
		return nil, err
	}
	defer d.zero()

	workers := opts.Workers
	if workers > count {
		workers = count
	}
	log.Accounts.Debug().
		Str("chain", c.String()).
		Uint32("start", opts.Start).
		Int("count", count).
		Int("workers", workers).
		Msg("Deriving accounts")
	defer log.Benchmark("derive " + c.String())()

	records := make([]types.AccountKeyRecord, count)
	if workers <= 1 {
		for i := range records {
			if err := ctx.Err(); err != nil {
				types.RedactAll(records)
				return nil, err
			}
			rec, err := d.account(opts.Start + uint32(i))
			if err != nil {
				types.RedactAll(records)
				return nil, err
			}
			records[i] = rec
		}
		return records, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range records {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			rec, err := d.account(opts.Start + uint32(i))
			if err != nil {
				return err
			}
			records[i] = rec
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		types.RedactAll(records)
		return nil, err
	}
	return records, nil
}

// DeriveOne derives the single account at index for c from seed.
func DeriveOne(seed []byte, c types.Chain, index uint32, opts Options) (types.AccountKeyRecord, error) {
	opts.Start = index
	opts.Workers = 1
	recs, err := DeriveFromSeed(context.Background(), seed, c, 1, opts)
	if err != nil {
		return types.AccountKeyRecord{}, err
	}
	return recs[0], nil
}

// deriver holds the key at the template prefix so each account only walks
// its own segments. It is read-only once built and safe for concurrent use.
type deriver struct {
	enc    chain.Encoder
	seedFn chain.SeedEncoder
	seed   []byte
	tmpl   chain.PathTemplate
	prefix *wallet.HDKey
}

func newDeriver(seed []byte, enc chain.Encoder) (*deriver, error) {
	d := &deriver{enc: enc, tmpl: enc.Template()}
	if se, ok := enc.(chain.SeedEncoder); ok {
		if len(seed) < wallet.MinSeedSize || len(seed) > wallet.MaxSeedSize {
			return nil, fmt.Errorf("%w: seed must be %d-%d bytes, got %d", wallet.ErrInvalidSeed, wallet.MinSeedSize, wallet.MaxSeedSize, len(seed))
		}
		d.seedFn = se
		d.seed = seed
		return d, nil
	}

	master, err := wallet.NewMasterKey(seed)
	if err != nil {
		return nil, err
	}
	d.prefix, err = master.DerivePath(d.tmpl.Prefix)
	master.Zero()
	if err != nil {
		return nil, fmt.Errorf("derive %s prefix: %w", d.tmpl.Prefix, err)
	}
	return d, nil
}

func (d *deriver) account(index uint32) (types.AccountKeyRecord, error) {
	path, err := d.tmpl.Path(index)
	if err != nil {
		return types.AccountKeyRecord{}, fmt.Errorf("account %d: %w", index, err)
	}
	if d.seedFn != nil {
		rec, err := d.seedFn.RecordFromSeed(d.seed, index, path)
		if err != nil {
			return types.AccountKeyRecord{}, fmt.Errorf("account %d: %w", index, err)
		}
		return rec, nil
	}

	key, err := d.prefix.DerivePath(path[len(d.tmpl.Prefix):])
	if err != nil {
		return types.AccountKeyRecord{}, fmt.Errorf("account %d: %w", index, err)
	}
	defer key.Zero()
	rec, err := chain.Record(d.enc, key, index, path)
	if err != nil {
		return types.AccountKeyRecord{}, fmt.Errorf("account %d: %w", index, err)
	}
	return rec, nil
}

func (d *deriver) zero() {
	if d.prefix != nil {
		d.prefix.Zero()
	}
}
