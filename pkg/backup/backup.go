// Package backup exports and restores a user's encrypted record log as a
// single portable file. The log bytes are copied verbatim, so a backup
// stays decryptable only with the master password that produced it.
package backup

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"
)

// MagicNumber identifies backup files: "PWKPBKP1"
var MagicNumber = [8]byte{'P', 'W', 'K', 'P', 'B', 'K', 'P', '1'}

// FormatVersion is the current backup format version.
const FormatVersion = 1

// maxHeaderSize bounds the JSON header during parsing.
const maxHeaderSize = 1024 * 1024

// Errors
var (
	ErrInvalidMagic       = errors.New("backup: invalid magic number")
	ErrUnsupportedVersion = errors.New("backup: unsupported format version")
	ErrChecksumMismatch   = errors.New("backup: checksum mismatch")
	ErrTruncated          = errors.New("backup: file truncated")
)

// Header contains backup file metadata. It precedes the raw log bytes on
// disk as length-prefixed JSON.
type Header struct {
	Version   int       `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	UserFile  string    `json:"user_file"`
	Size      int64     `json:"size"`
	SHA256    []byte    `json:"sha256"`
}

// Write emits a complete backup to w: magic number, length-prefixed JSON
// header, then the raw log bytes.
func Write(w io.Writer, userFile string, log []byte) error {
	sum := sha256.Sum256(log)
	header := Header{
		Version:   FormatVersion,
		CreatedAt: time.Now().UTC(),
		UserFile:  userFile,
		Size:      int64(len(log)),
		SHA256:    sum[:],
	}

	if _, err := w.Write(MagicNumber[:]); err != nil {
		return fmt.Errorf("failed to write magic number: %w", err)
	}

	headerJSON, err := json.Marshal(header)
	if err != nil {
		return fmt.Errorf("failed to marshal header: %w", err)
	}
	if err := binary.Write(w, binary.BigEndian, uint32(len(headerJSON))); err != nil {
		return fmt.Errorf("failed to write header length: %w", err)
	}
	if _, err := w.Write(headerJSON); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	if _, err := w.Write(log); err != nil {
		return fmt.Errorf("failed to write log bytes: %w", err)
	}
	return nil
}

// Read parses a backup from r and verifies the log checksum.
func Read(r io.Reader) (*Header, []byte, error) {
	var magic [8]byte
	if _, err := io.ReadFull(r, magic[:]); err != nil {
		return nil, nil, fmt.Errorf("failed to read magic number: %w", err)
	}
	if magic != MagicNumber {
		return nil, nil, ErrInvalidMagic
	}

	var headerLen uint32
	if err := binary.Read(r, binary.BigEndian, &headerLen); err != nil {
		return nil, nil, fmt.Errorf("failed to read header length: %w", err)
	}
	if headerLen > maxHeaderSize {
		return nil, nil, fmt.Errorf("header too large: %d bytes", headerLen)
	}

	headerJSON := make([]byte, headerLen)
	if _, err := io.ReadFull(r, headerJSON); err != nil {
		return nil, nil, fmt.Errorf("failed to read header: %w", err)
	}

	var header Header
	if err := json.Unmarshal(headerJSON, &header); err != nil {
		return nil, nil, fmt.Errorf("failed to unmarshal header: %w", err)
	}
	if header.Version > FormatVersion {
		return nil, nil, fmt.Errorf("%w: got %d, max supported %d",
			ErrUnsupportedVersion, header.Version, FormatVersion)
	}
	if header.Size < 0 {
		return nil, nil, fmt.Errorf("invalid log size: %d", header.Size)
	}

	log := make([]byte, header.Size)
	if _, err := io.ReadFull(r, log); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrTruncated, err)
	}

	sum := sha256.Sum256(log)
	if subtle.ConstantTimeCompare(sum[:], header.SHA256) != 1 {
		return nil, nil, ErrChecksumMismatch
	}

	return &header, log, nil
}
