// Package vault implements the encrypted record engine of pwkeep: the
// binary frame codec, the file-backed sequential record log, and the user
// aggregate that orchestrates key derivation and authenticated encryption
// with strict failure semantics.
//
// Every stored secret is one frame, encrypted under a key derived from the
// master password and a per-frame salt. A user's backing file is the plain
// concatenation of frames. Every mutating operation re-reads and fully
// re-decrypts the file first (the integrity gate); nothing is written when
// that gate fails, so a bad password can never corrupt stored state.
package vault

import (
	"fmt"
	"path/filepath"

	"github.com/pwkeep/pwkeep/pkg/audit"
	"github.com/pwkeep/pwkeep/pkg/storage"
)

// auditDirName is the subdirectory of the data directory holding audit logs.
const auditDirName = "audit"

// Config carries the parameters of a record operation. Dir is the data
// directory holding the backing files; MasterPassword is supplied per
// operation and never persisted.
type Config struct {
	Username       string
	MasterPassword string
	Domain         string
	Password       string
	Dir            string
}

// Credential is one decrypted (domain, password) pair.
type Credential struct {
	Domain   string
	Password string
}

// ReadOnlyRecords is an immutable projection of a user's decrypted
// records, decoupled from cipher state: mutating the returned slice never
// affects what is stored on disk.
type ReadOnlyRecords struct {
	creds []Credential
}

// Records returns a copy of the projected (domain, password) pairs in
// storage order.
func (r ReadOnlyRecords) Records() []Credential {
	out := make([]Credential, len(r.creds))
	copy(out, r.creds)
	return out
}

// Len returns the number of projected records.
func (r ReadOnlyRecords) Len() int { return len(r.creds) }

// projection builds a ReadOnlyRecords from decrypted records.
func projection(records []record) ReadOnlyRecords {
	creds := make([]Credential, len(records))
	for i, rec := range records {
		creds[i] = Credential{Domain: rec.domain, Password: rec.password}
	}
	return ReadOnlyRecords{creds: creds}
}

// User aggregates a username, its backing file path, and the most
// recently validated record sequence. It is not safe for concurrent use;
// the caller is expected to serialize all operations.
type User struct {
	records  []record
	path     string
	username string
	auditor  *audit.Logger
}

// newAuditor builds the per-user audit logger and keys it from the first
// validated record, when one exists. Audit logging is best-effort and
// never fails an operation.
func newAuditor(dir, username string, records []record) *audit.Logger {
	l := audit.NewLogger(filepath.Join(dir, auditDirName), UserFileName(username))
	if len(records) > 0 {
		if err := l.SetKey(records[0].key); err != nil {
			return nil
		}
	}
	return l
}

// CreateUser registers a new user and stores their first record in one
// step; there is no standalone empty user. The exclusive file creation is
// the sole enforcement of username uniqueness.
//
// Returns ErrUserExists when the backing file is already present. The
// payload is encrypted before any file is touched, so an encryption
// failure leaves no trace on disk.
func CreateUser(cfg Config) error {
	fileName := UserFileName(cfg.Username)
	if storage.Exists(filepath.Join(cfg.Dir, fileName)) {
		return ErrUserExists
	}

	rec, err := encryptPair(cfg.MasterPassword, cfg.Domain, cfg.Password)
	if err != nil {
		return err
	}

	buf := rec.frame.Encode()
	if err := storage.EnsureDiskSpace(cfg.Dir, uint64(len(buf))); err != nil {
		return err
	}
	path, err := storage.CreateFile(cfg.Dir, fileName)
	if err != nil {
		if err == storage.ErrFileExists {
			return ErrUserExists
		}
		return err
	}
	if err := storage.WriteFile(path, buf); err != nil {
		return err
	}

	auditor := newAuditor(cfg.Dir, cfg.Username, []record{rec})
	_ = auditor.Log(audit.OpUserCreate, cfg.Username, "", audit.ResultSuccess)
	return nil
}

// Open loads and fully decrypts an existing user; this is the login
// operation. It returns ErrUserNotFound when no backing file exists and
// ErrIntegrity for every other gate failure (wrong master password and
// file corruption are intentionally not distinguished).
func Open(dir, username, masterPassword string) (*User, ReadOnlyRecords, error) {
	records, err := loadRecords(dir, username, masterPassword)
	if err != nil {
		if err == ErrUserNotFound {
			return nil, ReadOnlyRecords{}, ErrUserNotFound
		}
		return nil, ReadOnlyRecords{}, ErrIntegrity
	}

	u := &User{
		records:  records,
		path:     userPath(dir, username),
		username: username,
		auditor:  newAuditor(dir, username, records),
	}
	_ = u.auditor.Log(audit.OpUserOpen, username, "", audit.ResultSuccess)
	return u, projection(records), nil
}

// Username returns the username this aggregate was opened for.
func (u *User) Username() string { return u.username }

// Auditor exposes the per-user audit logger, keyed after a successful
// integrity gate. It may be nil when auditing is unavailable.
func (u *User) Auditor() *audit.Logger { return u.auditor }

// gate re-derives the full decrypted state from disk instead of trusting
// the cached records. Any failure collapses to ErrIntegrity: no mutation
// may proceed, and nothing has been written.
func (u *User) gate(cfg Config) ([]record, error) {
	records, err := loadRecords(cfg.Dir, cfg.Username, cfg.MasterPassword)
	if err != nil {
		return nil, ErrIntegrity
	}
	return records, nil
}

// AddRecord stores a new (domain, password) record. The domain must not
// already exist; duplicates fail with ErrDuplicateRecord and leave the
// stored set unchanged. Persistence is a single append, so existing bytes
// are never rewritten.
func (u *User) AddRecord(cfg Config) (ReadOnlyRecords, error) {
	records, err := u.gate(cfg)
	if err != nil {
		return ReadOnlyRecords{}, err
	}

	for _, rec := range records {
		if rec.domain == cfg.Domain {
			return ReadOnlyRecords{}, fmt.Errorf("%w: %q", ErrDuplicateRecord, cfg.Domain)
		}
	}

	rec, err := encryptPair(cfg.MasterPassword, cfg.Domain, cfg.Password)
	if err != nil {
		return ReadOnlyRecords{}, err
	}

	path := userPath(cfg.Dir, cfg.Username)
	buf := rec.frame.Encode()
	if err := storage.EnsureDiskSpace(path, uint64(len(buf))); err != nil {
		return ReadOnlyRecords{}, err
	}
	if err := storage.AppendFile(path, buf); err != nil {
		return ReadOnlyRecords{}, err
	}

	u.records = append(records, rec)
	u.path = path
	_ = u.auditor.Log(audit.OpRecordAdd, cfg.Username, cfg.Domain, audit.ResultSuccess)
	return projection(u.records), nil
}

// RemoveRecord deletes the record for cfg.Domain. The log format has no
// tombstones, so the surviving records are rewritten as a whole. A missing
// domain fails with ErrRecordNotFound and leaves the file untouched.
func (u *User) RemoveRecord(cfg Config) (ReadOnlyRecords, error) {
	records, err := u.gate(cfg)
	if err != nil {
		return ReadOnlyRecords{}, err
	}

	kept := make([]record, 0, len(records))
	found := false
	for _, rec := range records {
		if rec.domain == cfg.Domain {
			found = true
			continue
		}
		kept = append(kept, rec)
	}
	if !found {
		return ReadOnlyRecords{}, fmt.Errorf("%w: %q", ErrRecordNotFound, cfg.Domain)
	}

	path := userPath(cfg.Dir, cfg.Username)
	if err := rewriteRecords(path, kept); err != nil {
		return ReadOnlyRecords{}, err
	}

	u.records = kept
	u.path = path
	_ = u.auditor.Log(audit.OpRecordRemove, cfg.Username, cfg.Domain, audit.ResultSuccess)
	return projection(u.records), nil
}

// ModifyRecord replaces the password stored for cfg.Domain: the existing
// frame is dropped, a freshly encrypted replacement is appended, and the
// whole file is rewritten. A missing domain fails with ErrRecordNotFound.
func (u *User) ModifyRecord(cfg Config) (ReadOnlyRecords, error) {
	records, err := u.gate(cfg)
	if err != nil {
		return ReadOnlyRecords{}, err
	}

	kept := make([]record, 0, len(records))
	found := false
	for _, rec := range records {
		if rec.domain == cfg.Domain {
			found = true
			continue
		}
		kept = append(kept, rec)
	}
	if !found {
		return ReadOnlyRecords{}, fmt.Errorf("%w: %q", ErrRecordNotFound, cfg.Domain)
	}

	rec, err := encryptPair(cfg.MasterPassword, cfg.Domain, cfg.Password)
	if err != nil {
		return ReadOnlyRecords{}, err
	}
	kept = append(kept, rec)

	path := userPath(cfg.Dir, cfg.Username)
	if err := rewriteRecords(path, kept); err != nil {
		return ReadOnlyRecords{}, err
	}

	u.records = kept
	u.path = path
	_ = u.auditor.Log(audit.OpRecordModify, cfg.Username, cfg.Domain, audit.ResultSuccess)
	return projection(u.records), nil
}
