package wallet

import (
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"
)

// Encryption constants.
const (
	SaltSize = 32

	// sealVersion tags the envelope layout below.
	sealVersion = 1

	// Envelope: [version(1)][salt(32)][memory(4)][iterations(4)][parallelism(1)][nonce(24)][ciphertext...]
	headerSize = 1 + SaltSize + 4 + 4 + 1
)

// ErrDecrypt is returned when the password is wrong or the envelope was
// tampered with.
var ErrDecrypt = errors.New("decryption failed (wrong password or corrupted data)")

// EncryptionParams holds Argon2id parameters.
type EncryptionParams struct {
	Memory      uint32 // in KiB
	Iterations  uint32
	Parallelism uint8
}

// DefaultParams returns recommended Argon2id parameters.
func DefaultParams() EncryptionParams {
	return EncryptionParams{
		Memory:      64 * 1024, // 64 MB
		Iterations:  3,
		Parallelism: 4,
	}
}

// deriveKey uses Argon2id to derive a 32-byte encryption key from password and salt.
func deriveKey(password, salt []byte, params EncryptionParams) []byte {
	return argon2.IDKey(
		password,
		salt,
		params.Iterations,
		params.Memory,
		params.Parallelism,
		chacha20poly1305.KeySize,
	)
}

// Encrypt seals data with password using Argon2id + XChaCha20-Poly1305.
// associatedData is authenticated but not stored; Decrypt must be given the
// same bytes (the keystore binds the wallet name this way).
func Encrypt(data, password, associatedData []byte, params EncryptionParams) ([]byte, error) {
	if params.Iterations == 0 || params.Parallelism == 0 || params.Memory == 0 {
		return nil, fmt.Errorf("invalid argon2 params %+v", params)
	}

	salt := make([]byte, SaltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("generate salt: %w", err)
	}

	key := deriveKey(password, salt, params)
	defer Zero(key)

	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}

	out := make([]byte, 0, headerSize+len(nonce)+len(data)+aead.Overhead())
	out = append(out, sealVersion)
	out = append(out, salt...)
	out = binary.LittleEndian.AppendUint32(out, params.Memory)
	out = binary.LittleEndian.AppendUint32(out, params.Iterations)
	out = append(out, params.Parallelism)
	out = append(out, nonce...)

	// The header is authenticated too, so KDF params cannot be downgraded.
	ad := append(append([]byte(nil), out[:headerSize]...), associatedData...)
	return aead.Seal(out, nonce, data, ad), nil
}

// Decrypt opens an envelope produced by Encrypt.
func Decrypt(encrypted, password, associatedData []byte) ([]byte, error) {
	nonceSize := chacha20poly1305.NonceSizeX
	minSize := headerSize + nonceSize + chacha20poly1305.Overhead
	if len(encrypted) < minSize {
		return nil, fmt.Errorf("encrypted data too short: %d bytes, need at least %d", len(encrypted), minSize)
	}
	if encrypted[0] != sealVersion {
		return nil, fmt.Errorf("unsupported envelope version %d", encrypted[0])
	}

	salt := encrypted[1 : 1+SaltSize]
	params := EncryptionParams{
		Memory:      binary.LittleEndian.Uint32(encrypted[1+SaltSize:]),
		Iterations:  binary.LittleEndian.Uint32(encrypted[1+SaltSize+4:]),
		Parallelism: encrypted[1+SaltSize+8],
	}
	if params.Iterations == 0 || params.Parallelism == 0 || params.Memory == 0 {
		return nil, ErrDecrypt
	}

	nonce := encrypted[headerSize : headerSize+nonceSize]
	ciphertext := encrypted[headerSize+nonceSize:]

	key := deriveKey(password, salt, params)
	defer Zero(key)

	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}

	ad := append(append([]byte(nil), encrypted[:headerSize]...), associatedData...)
	plaintext, err := aead.Open(nil, nonce, ciphertext, ad)
	if err != nil {
		return nil, ErrDecrypt
	}
	return plaintext, nil
}
