// Package crypto provides the cryptographic primitives for pwkeep.
//
// This package implements AES-128-GCM-SIV authenticated encryption and
// scrypt key derivation with fixed, non-configurable cost parameters.
//
// # Security Features
//
//   - AES-128-GCM-SIV authenticated encryption (nonce-misuse resistant)
//   - scrypt key derivation (N=2^14, r=8, p=1)
//   - A fresh random salt and nonce for every encryption
//   - Secure memory wiping for sensitive data
//
// # Example Usage
//
//	// Derive a key from a master password (fresh salt)
//	key, salt, err := crypto.DeriveKey("master password", nil)
//
//	// Encrypt data
//	nonce, ciphertext, err := crypto.Seal(key, plaintext)
//
//	// Decrypt data
//	plaintext, err := crypto.Open(key, nonce, ciphertext)
//
//	// Securely wipe sensitive data
//	crypto.SecureWipe(key)
package crypto

import (
	"crypto/rand"
	"errors"
	"fmt"
	"runtime"

	"github.com/tink-crypto/tink-go/v2/aead/subtle"
	"golang.org/x/crypto/scrypt"
)

// scrypt cost parameters. These are deliberately constants: the on-disk
// format stores no cost metadata, so every build must derive identical
// keys for a given (password, salt) pair.
const (
	scryptN = 1 << 14 // CPU/memory cost
	scryptR = 8       // block size
	scryptP = 1       // parallelism

	// KeyLength is the length of derived encryption keys in bytes (128 bits).
	KeyLength = 16

	// SaltLength is the length of KDF salts in bytes.
	SaltLength = 22

	// NonceLength is the length of GCM-SIV nonces in bytes (96 bits).
	NonceLength = 12
)

// Sentinel errors returned by crypto functions.
var (
	// ErrInvalidKeyLength indicates the key is not 16 bytes.
	ErrInvalidKeyLength = errors.New("crypto: invalid key length, must be 16 bytes")

	// ErrInvalidSaltLength indicates a supplied salt is not 22 bytes.
	ErrInvalidSaltLength = errors.New("crypto: invalid salt length, must be 22 bytes")

	// ErrInvalidNonceLength indicates the nonce is not 12 bytes.
	ErrInvalidNonceLength = errors.New("crypto: invalid nonce length, must be 12 bytes")

	// ErrDecryptionFailed indicates decryption or authentication tag verification failed.
	ErrDecryptionFailed = errors.New("crypto: decryption failed, authentication tag verification failed")
)

// NewSalt returns a fresh cryptographically random 22-byte salt.
func NewSalt() ([]byte, error) {
	salt := make([]byte, SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("crypto: failed to generate salt: %w", err)
	}
	return salt, nil
}

// DeriveKey derives a 128-bit encryption key from a master password using
// scrypt with fixed cost parameters (N=2^14, r=8, p=1).
//
// If salt is nil a fresh random 22-byte salt is generated; this is the
// path used when encrypting a new record. If salt is non-nil it is reused
// unchanged, which re-derives the key for an existing record.
//
// Returns the 16-byte key and the salt that produced it. The derivation
// is deterministic for a given (password, salt) pair and intentionally
// slow (hundreds of milliseconds on typical hardware).
func DeriveKey(password string, salt []byte) (key, outSalt []byte, err error) {
	if salt == nil {
		salt, err = NewSalt()
		if err != nil {
			return nil, nil, err
		}
	} else if len(salt) != SaltLength {
		return nil, nil, ErrInvalidSaltLength
	}

	// The cost parameters are compile-time constants, so scrypt can only
	// fail on a programming error.
	key, err = scrypt.Key([]byte(password), salt, scryptN, scryptR, scryptP, KeyLength)
	if err != nil {
		return nil, nil, fmt.Errorf("crypto: scrypt derivation failed: %w", err)
	}
	return key, salt, nil
}

// Seal encrypts plaintext using AES-128-GCM-SIV authenticated encryption
// with no associated data.
//
// A cryptographically secure random 12-byte nonce is generated for every
// call. The authentication tag is appended to the ciphertext.
//
// Parameters:
//   - key: 16-byte encryption key (use DeriveKey to generate)
//   - plaintext: data to encrypt (can be any length)
//
// Returns:
//   - nonce: 12-byte nonce (must be stored with ciphertext for decryption)
//   - ciphertext: encrypted data with authentication tag
//   - err: ErrInvalidKeyLength if key is not 16 bytes
func Seal(key, plaintext []byte) (nonce, ciphertext []byte, err error) {
	if len(key) != KeyLength {
		return nil, nil, ErrInvalidKeyLength
	}

	aead, err := subtle.NewAESGCMSIV(key)
	if err != nil {
		return nil, nil, fmt.Errorf("crypto: failed to create cipher: %w", err)
	}

	// Tink prepends its randomly generated nonce to the sealed output;
	// split it off so the caller controls where the nonce is stored.
	sealed, err := aead.Encrypt(plaintext, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("crypto: encryption failed: %w", err)
	}
	return sealed[:NonceLength], sealed[NonceLength:], nil
}

// Open decrypts ciphertext using AES-128-GCM-SIV authenticated encryption.
//
// The authentication tag is verified before any plaintext is returned.
// When verification fails (wrong key, tampering, or corruption) the result
// is ErrDecryptionFailed, never incorrect plaintext.
func Open(key, nonce, ciphertext []byte) ([]byte, error) {
	if len(key) != KeyLength {
		return nil, ErrInvalidKeyLength
	}
	if len(nonce) != NonceLength {
		return nil, ErrInvalidNonceLength
	}

	aead, err := subtle.NewAESGCMSIV(key)
	if err != nil {
		return nil, fmt.Errorf("crypto: failed to create cipher: %w", err)
	}

	sealed := make([]byte, 0, len(nonce)+len(ciphertext))
	sealed = append(sealed, nonce...)
	sealed = append(sealed, ciphertext...)

	plaintext, err := aead.Decrypt(sealed, nil)
	if err != nil {
		return nil, ErrDecryptionFailed
	}
	return plaintext, nil
}

// SecureWipe overwrites a byte slice with zeros in a way that prevents
// compiler optimization from removing the operation.
// This is used to destroy derived keys once they are no longer needed.
func SecureWipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
	// runtime.KeepAlive ensures the write operations are not optimized away
	// by the compiler since b is still "in use" after the loop.
	runtime.KeepAlive(b)
}
