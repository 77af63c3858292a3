package wallet

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tyler-smith/go-bip32"
)

// HardenedOffset is the first hardened child index (2^31).
const HardenedOffset = bip32.FirstHardenedChild

// BIP-44 purpose values.
const (
	PurposeBIP44 = HardenedOffset + 44
	PurposeBIP84 = HardenedOffset + 84
)

// DerivationPath is an ordered list of child indices below the master key.
// Hardened indices carry HardenedOffset.
type DerivationPath []uint32

// Hardened returns i as a hardened index.
func Hardened(i uint32) uint32 {
	return i | HardenedOffset
}

// IsHardened reports whether index is a hardened child index.
func IsHardened(index uint32) bool {
	return index >= HardenedOffset
}

// ParsePath parses a path such as "m/44'/60'/0'/0/0". A trailing ', h or H
// marks a hardened segment. "m" alone is the empty path.
func ParsePath(path string) (DerivationPath, error) {
	p := strings.TrimSpace(path)
	if p == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidPath)
	}
	if p[0] != 'm' && p[0] != 'M' {
		return nil, fmt.Errorf("%w: %q must start with m", ErrInvalidPath, path)
	}
	p = p[1:]
	if p == "" {
		return DerivationPath{}, nil
	}
	if p[0] != '/' {
		return nil, fmt.Errorf("%w: %q: expected / after m", ErrInvalidPath, path)
	}

	parts := strings.Split(p[1:], "/")
	out := make(DerivationPath, 0, len(parts))
	for i, part := range parts {
		idx, err := parseSegment(part)
		if err != nil {
			return nil, fmt.Errorf("%w: segment %d %q: %v", ErrInvalidPath, i+1, part, err)
		}
		out = append(out, idx)
	}
	return out, nil
}

func parseSegment(s string) (uint32, error) {
	if s == "" {
		return 0, fmt.Errorf("empty segment")
	}
	hardened := false
	switch s[len(s)-1] {
	case '\'', 'h', 'H':
		hardened = true
		s = s[:len(s)-1]
	}
	// Reject signs, spaces and leading zeros so every path has one spelling.
	if s == "" || s[0] < '0' || s[0] > '9' || (len(s) > 1 && s[0] == '0') {
		return 0, fmt.Errorf("not a decimal index")
	}
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("not a decimal index")
	}
	if v >= uint64(HardenedOffset) {
		return 0, fmt.Errorf("index %d out of range", v)
	}
	idx := uint32(v)
	if hardened {
		idx = Hardened(idx)
	}
	return idx, nil
}

// String renders the path with apostrophes for hardened segments.
func (p DerivationPath) String() string {
	var b strings.Builder
	b.WriteString("m")
	for _, idx := range p {
		b.WriteByte('/')
		if IsHardened(idx) {
			b.WriteString(strconv.FormatUint(uint64(idx-HardenedOffset), 10))
			b.WriteByte('\'')
		} else {
			b.WriteString(strconv.FormatUint(uint64(idx), 10))
		}
	}
	return b.String()
}

// Child returns a copy of p extended with idx.
func (p DerivationPath) Child(idx uint32) DerivationPath {
	out := make(DerivationPath, len(p), len(p)+1)
	copy(out, p)
	return append(out, idx)
}

// AllHardened reports whether every segment is hardened.
func (p DerivationPath) AllHardened() bool {
	for _, idx := range p {
		if !IsHardened(idx) {
			return false
		}
	}
	return true
}
