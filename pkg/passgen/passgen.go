// Package passgen generates cryptographically secure random passwords
// from a composable character set.
package passgen

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
)

// Character set constants
const (
	charsetLowercase = "abcdefghijklmnopqrstuvwxyz"
	charsetUppercase = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	charsetDigits    = "0123456789"
	charsetSymbols   = "!@#$%^&*()_+-=[]{}|;:,.<>?"

	// MinLength, MaxLength bound the accepted password length.
	MinLength = 4
	MaxLength = 256

	// DefaultLength is used when no length is configured.
	DefaultLength = 16
)

// Errors
var (
	ErrLengthOutOfRange = errors.New("passgen: length out of range")
	ErrEmptyCharset     = errors.New("passgen: no characters available after exclusions")
)

// Options controls password generation. The zero value plus DefaultLength
// produces passwords drawn from all four character classes.
type Options struct {
	Length      int
	NoLowercase bool
	NoUppercase bool
	NoDigits    bool
	NoSymbols   bool
	Exclude     string // individual characters to leave out
}

// Charset builds the effective character set for opts.
func (o Options) Charset() (string, error) {
	var b strings.Builder
	if !o.NoLowercase {
		b.WriteString(charsetLowercase)
	}
	if !o.NoUppercase {
		b.WriteString(charsetUppercase)
	}
	if !o.NoDigits {
		b.WriteString(charsetDigits)
	}
	if !o.NoSymbols {
		b.WriteString(charsetSymbols)
	}

	charset := b.String()
	if o.Exclude != "" {
		var kept strings.Builder
		for _, c := range charset {
			if !strings.ContainsRune(o.Exclude, c) {
				kept.WriteRune(c)
			}
		}
		charset = kept.String()
	}
	if charset == "" {
		return "", ErrEmptyCharset
	}
	return charset, nil
}

// Generate returns one random password for opts, using crypto/rand for
// every character draw.
func Generate(opts Options) (string, error) {
	length := opts.Length
	if length == 0 {
		length = DefaultLength
	}
	if length < MinLength || length > MaxLength {
		return "", fmt.Errorf("%w: %d (want %d-%d)", ErrLengthOutOfRange, length, MinLength, MaxLength)
	}

	charset, err := opts.Charset()
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.Grow(length)
	max := big.NewInt(int64(len(charset)))
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("passgen: random draw failed: %w", err)
		}
		b.WriteByte(charset[n.Int64()])
	}
	return b.String(), nil
}
