package types

// AccountKeyRecord is one derived account: its index, chain-native address
// and key material. The caller owns the private key string and should drop
// the record (or call Redact) as soon as it is no longer needed.
type AccountKeyRecord struct {
	Chain      Chain  `json:"chain"`
	Account    uint32 `json:"account"`
	Path       string `json:"path"`
	Address    string `json:"address"`
	PublicKey  string `json:"public_key"`
	PrivateKey string `json:"private_key,omitempty"`
}

// Redact drops the private key from the record.
func (r *AccountKeyRecord) Redact() {
	r.PrivateKey = ""
}

// RedactAll drops the private keys from every record.
func RedactAll(records []AccountKeyRecord) {
	for i := range records {
		records[i].Redact()
	}
}
