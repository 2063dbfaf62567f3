package crypto

import (
	"bytes"
	"testing"
)

// TestDeriveKeyDeterministic verifies that the same password and salt
// always produce the same key.
func TestDeriveKeyDeterministic(t *testing.T) {
	key1, salt, err := DeriveKey("correct horse battery staple", nil)
	if err != nil {
		t.Fatalf("DeriveKey() error = %v", err)
	}
	if len(key1) != KeyLength {
		t.Errorf("DeriveKey() returned key of length %d, want %d", len(key1), KeyLength)
	}
	if len(salt) != SaltLength {
		t.Errorf("DeriveKey() returned salt of length %d, want %d", len(salt), SaltLength)
	}

	key2, salt2, err := DeriveKey("correct horse battery staple", salt)
	if err != nil {
		t.Fatalf("DeriveKey() with existing salt error = %v", err)
	}
	if !bytes.Equal(salt, salt2) {
		t.Error("DeriveKey() must reuse a supplied salt unchanged")
	}
	if !bytes.Equal(key1, key2) {
		t.Error("DeriveKey() with same password and salt should produce identical keys")
	}
}

// TestDeriveKeyDistinct verifies that different passwords or salts yield
// different keys.
func TestDeriveKeyDistinct(t *testing.T) {
	key1, salt1, err := DeriveKey("password-one", nil)
	if err != nil {
		t.Fatalf("DeriveKey() error = %v", err)
	}

	key2, _, err := DeriveKey("password-two", salt1)
	if err != nil {
		t.Fatalf("DeriveKey() error = %v", err)
	}
	if bytes.Equal(key1, key2) {
		t.Error("DeriveKey() with different passwords should produce different keys")
	}

	key3, salt3, err := DeriveKey("password-one", nil)
	if err != nil {
		t.Fatalf("DeriveKey() error = %v", err)
	}
	if bytes.Equal(salt1, salt3) {
		t.Error("DeriveKey() should generate a fresh salt per call")
	}
	if bytes.Equal(key1, key3) {
		t.Error("DeriveKey() with different salts should produce different keys")
	}
}

// TestDeriveKeyInvalidSalt verifies salt length validation.
func TestDeriveKeyInvalidSalt(t *testing.T) {
	tests := []struct {
		name    string
		saltLen int
	}{
		{"too short", 16},
		{"too long", 32},
		{"single byte", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := DeriveKey("pw", make([]byte, tt.saltLen))
			if err != ErrInvalidSaltLength {
				t.Errorf("DeriveKey() error = %v, want %v", err, ErrInvalidSaltLength)
			}
		})
	}
}

// TestSealOpenRoundTrip verifies encrypt/decrypt with the correct key.
func TestSealOpenRoundTrip(t *testing.T) {
	key, _, err := DeriveKey("master", nil)
	if err != nil {
		t.Fatalf("DeriveKey() error = %v", err)
	}

	plaintext := []byte("example.com hunter2")
	nonce, ciphertext, err := Seal(key, plaintext)
	if err != nil {
		t.Fatalf("Seal() error = %v", err)
	}
	if len(nonce) != NonceLength {
		t.Errorf("Seal() nonce length = %d, want %d", len(nonce), NonceLength)
	}
	if bytes.Equal(ciphertext, plaintext) {
		t.Error("Seal() ciphertext should not equal plaintext")
	}
	// GCM-SIV appends a 16-byte authentication tag.
	if len(ciphertext) != len(plaintext)+16 {
		t.Errorf("Seal() ciphertext length = %d, want %d", len(ciphertext), len(plaintext)+16)
	}

	got, err := Open(key, nonce, ciphertext)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if !bytes.Equal(got, plaintext) {
		t.Errorf("Open() = %q, want %q", got, plaintext)
	}
}

// TestOpenWrongKey verifies that decrypting with a key derived from a
// different password fails authentication instead of returning garbage.
func TestOpenWrongKey(t *testing.T) {
	key, salt, err := DeriveKey("right password", nil)
	if err != nil {
		t.Fatalf("DeriveKey() error = %v", err)
	}
	nonce, ciphertext, err := Seal(key, []byte("secret payload"))
	if err != nil {
		t.Fatalf("Seal() error = %v", err)
	}

	wrongKey, _, err := DeriveKey("wrong password", salt)
	if err != nil {
		t.Fatalf("DeriveKey() error = %v", err)
	}
	if _, err := Open(wrongKey, nonce, ciphertext); err != ErrDecryptionFailed {
		t.Errorf("Open() with wrong key error = %v, want %v", err, ErrDecryptionFailed)
	}
}

// TestOpenCorruptCiphertext verifies that a single flipped bit is detected.
func TestOpenCorruptCiphertext(t *testing.T) {
	key, _, err := DeriveKey("master", nil)
	if err != nil {
		t.Fatalf("DeriveKey() error = %v", err)
	}
	nonce, ciphertext, err := Seal(key, []byte("secret payload"))
	if err != nil {
		t.Fatalf("Seal() error = %v", err)
	}

	ciphertext[0] ^= 0x01
	if _, err := Open(key, nonce, ciphertext); err != ErrDecryptionFailed {
		t.Errorf("Open() with corrupt ciphertext error = %v, want %v", err, ErrDecryptionFailed)
	}
}

// TestSealInvalidKeyLength tests that Seal rejects invalid key lengths.
func TestSealInvalidKeyLength(t *testing.T) {
	tests := []struct {
		name   string
		keyLen int
	}{
		{"empty key", 0},
		{"too short (8 bytes)", 8},
		{"too long (32 bytes)", 32},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Seal(make([]byte, tt.keyLen), []byte("data"))
			if err != ErrInvalidKeyLength {
				t.Errorf("Seal() error = %v, want %v", err, ErrInvalidKeyLength)
			}
		})
	}
}

// TestOpenInvalidNonceLength tests nonce length validation.
func TestOpenInvalidNonceLength(t *testing.T) {
	key := make([]byte, KeyLength)
	_, err := Open(key, make([]byte, 8), []byte("ciphertext"))
	if err != ErrInvalidNonceLength {
		t.Errorf("Open() error = %v, want %v", err, ErrInvalidNonceLength)
	}
}

// TestSealEmptyPlaintext tests encryption of empty data.
func TestSealEmptyPlaintext(t *testing.T) {
	key := make([]byte, KeyLength)
	nonce, ciphertext, err := Seal(key, []byte{})
	if err != nil {
		t.Fatalf("Seal() error = %v", err)
	}
	if len(ciphertext) != 16 { // tag only
		t.Errorf("Seal() empty plaintext ciphertext length = %d, want 16", len(ciphertext))
	}

	got, err := Open(key, nonce, ciphertext)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Open() = %q, want empty", got)
	}
}

// TestSecureWipe verifies the buffer is zeroed.
func TestSecureWipe(t *testing.T) {
	b := []byte{1, 2, 3, 4, 5}
	SecureWipe(b)
	for i, v := range b {
		if v != 0 {
			t.Errorf("SecureWipe() byte %d = %d, want 0", i, v)
		}
	}
}
