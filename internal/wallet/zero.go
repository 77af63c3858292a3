package wallet

// Zero overwrites b with zeros.
//
// This is best effort only. The Go runtime uses a moving, tracing garbage
// collector and may have copied the buffer (slice growth, string
// conversions, stack moves) before Zero runs. Strings such as the mnemonic
// cannot be wiped at all. Treat zeroing as hygiene, not as a security
// boundary.
func Zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
