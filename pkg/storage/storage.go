// Package storage provides the thin file and path primitives backing the
// record store: exclusive creation, whole-file rewrite, raw append,
// truncation, and application data directory resolution.
//
// Every function opens, uses, and closes its file handle within the call;
// no descriptor is held across calls.
package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Constants
const (
	FileMode = 0600 // Owner read/write only
	DirMode  = 0700 // Owner read/write/execute only

	// MinDiskSpaceBytes is the minimum free space required before a write.
	MinDiskSpaceBytes = 10 * 1024 * 1024 // 10 MB

	// DataDirEnv overrides the default application data directory.
	DataDirEnv = "PWKEEP_DIR"

	// defaultDirName is the data directory created under the user's home.
	defaultDirName = ".pwkeep"
)

// Errors
var (
	ErrFileExists       = errors.New("storage: file already exists")
	ErrFileNotFound     = errors.New("storage: file does not exist")
	ErrInsufficientDisk = errors.New("storage: insufficient disk space")
)

// DiskSpaceInfo describes the filesystem holding the data directory.
type DiskSpaceInfo struct {
	Total     uint64
	Free      uint64
	Available uint64
	UsedPct   int
}

// Exists reports whether path exists.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// CreateFile creates an empty file named name under dir with exclusive
// semantics: if the file already exists it returns ErrFileExists. This is
// the sole uniqueness check for user registration.
func CreateFile(dir, name string) (string, error) {
	path := filepath.Join(dir, name)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, FileMode)
	if err != nil {
		if os.IsExist(err) {
			return "", ErrFileExists
		}
		return "", fmt.Errorf("storage: failed to create %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("storage: failed to close %s: %w", path, err)
	}
	return path, nil
}

// WriteFile replaces the entire content of an existing file with data.
// The file must already exist; use CreateFile first.
func WriteFile(path string, data []byte) error {
	if !Exists(path) {
		return ErrFileNotFound
	}
	if err := os.WriteFile(path, data, FileMode); err != nil {
		return fmt.Errorf("storage: failed to write %s: %w", path, err)
	}
	return nil
}

// AppendFile appends data to the end of an existing file without touching
// its current content.
func AppendFile(path string, data []byte) error {
	if !Exists(path) {
		return ErrFileNotFound
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, FileMode)
	if err != nil {
		return fmt.Errorf("storage: failed to open %s for append: %w", path, err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("storage: failed to append to %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("storage: failed to close %s: %w", path, err)
	}
	return nil
}

// ClearFile truncates an existing file to zero length.
func ClearFile(path string) error {
	if !Exists(path) {
		return ErrFileNotFound
	}
	if err := os.Truncate(path, 0); err != nil {
		return fmt.Errorf("storage: failed to truncate %s: %w", path, err)
	}
	return nil
}

// DataDir resolves the application data directory and creates it if
// necessary. The PWKEEP_DIR environment variable takes precedence;
// otherwise ~/.pwkeep is used.
func DataDir() (string, error) {
	if dir := os.Getenv(DataDirEnv); dir != "" {
		if err := os.MkdirAll(dir, DirMode); err != nil {
			return "", fmt.Errorf("storage: failed to create data directory: %w", err)
		}
		return dir, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("storage: failed to get user home directory: %w", err)
	}
	dir := filepath.Join(home, defaultDirName)
	if err := os.MkdirAll(dir, DirMode); err != nil {
		return "", fmt.Errorf("storage: failed to create data directory: %w", err)
	}
	return dir, nil
}

// EnsureDiskSpace fails with ErrInsufficientDisk when the filesystem
// holding path has less than MinDiskSpaceBytes available beyond the
// requested write size.
func EnsureDiskSpace(path string, writeSize uint64) error {
	info, err := CheckDiskSpace(path)
	if err != nil {
		// Disk stats are advisory; never block a write because the probe
		// itself failed.
		return nil
	}
	if info.Available < MinDiskSpaceBytes+writeSize {
		return fmt.Errorf("%w: %d bytes available", ErrInsufficientDisk, info.Available)
	}
	return nil
}
