// Package report renders account key records as an aligned table or JSON.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/DeFiFoFum/cryptography-resources/pkg/types"
)

// Output formats.
const (
	FormatTable = "table"
	FormatJSON  = "json"
)

// hiddenKey replaces private keys in table output when keys are not shown.
const hiddenKey = "(hidden, use --show-keys)"

// Options control rendering.
type Options struct {
	Format   string
	ShowKeys bool
}

// ValidFormat reports whether format is a known output format.
func ValidFormat(format string) bool {
	return format == FormatTable || format == FormatJSON
}

// Write renders records to w. Private keys are only written when
// opts.ShowKeys is set; records are never modified.
func Write(w io.Writer, records []types.AccountKeyRecord, opts Options) error {
	switch opts.Format {
	case "", FormatTable:
		return writeTable(w, records, opts.ShowKeys)
	case FormatJSON:
		return writeJSON(w, records, opts.ShowKeys)
	}
	return fmt.Errorf("unknown output format %q", opts.Format)
}

func writeTable(w io.Writer, records []types.AccountKeyRecord, showKeys bool) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	header := []string{"ACCOUNT", "PATH", "ADDRESS", "PUBLIC KEY"}
	if showKeys {
		header = append(header, "PRIVATE KEY")
	}
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	for _, r := range records {
		row := []string{fmt.Sprint(r.Account), r.Path, r.Address, r.PublicKey}
		if showKeys {
			row = append(row, r.PrivateKey)
		}
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if !showKeys && len(records) > 0 {
		_, err := fmt.Fprintf(w, "\nprivate keys %s\n", hiddenKey)
		return err
	}
	return nil
}

func writeJSON(w io.Writer, records []types.AccountKeyRecord, showKeys bool) error {
	out := records
	if !showKeys {
		out = make([]types.AccountKeyRecord, len(records))
		copy(out, records)
		types.RedactAll(out)
	}
	if out == nil {
		out = []types.AccountKeyRecord{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
