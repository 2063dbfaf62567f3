package vault

import (
	"crypto/sha256"
	"encoding/hex"
	"path/filepath"

	"golang.org/x/text/unicode/norm"

	"github.com/pwkeep/pwkeep/pkg/storage"
)

// UserFileName maps a username to its backing file name: the lowercase
// hex SHA-256 digest of the NFC-normalized username. This is a
// deterministic filename mapping, not a security boundary.
func UserFileName(username string) string {
	sum := sha256.Sum256([]byte(norm.NFC.String(username)))
	return hex.EncodeToString(sum[:])
}

// userPath returns the full path of a username's backing file under dir.
func userPath(dir, username string) string {
	return filepath.Join(dir, UserFileName(username))
}

// UserExists reports whether a backing file exists for username under dir.
// File existence is the definition of user existence.
func UserExists(dir, username string) bool {
	return storage.Exists(userPath(dir, username))
}
