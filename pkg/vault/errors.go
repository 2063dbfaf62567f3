package vault

import "errors"

// Sentinel errors returned by vault operations.
var (
	// ErrUserNotFound indicates no backing file exists for the username.
	ErrUserNotFound = errors.New("vault: user not found")

	// ErrUserExists indicates a backing file already exists for the username.
	ErrUserExists = errors.New("vault: user already exists")

	// ErrIntegrity indicates the stored record sequence could not be read
	// and decrypted with the supplied master password. A wrong password and
	// a corrupted file are deliberately indistinguishable at this level so
	// that error messages cannot be used as a password-validity oracle.
	ErrIntegrity = errors.New("vault: integrity check failed")

	// ErrFrameCorrupt indicates a malformed record frame or payload.
	ErrFrameCorrupt = errors.New("vault: corrupted record frame")

	// ErrDuplicateRecord indicates a record already exists for the domain.
	ErrDuplicateRecord = errors.New("vault: record already exists for domain")

	// ErrRecordNotFound indicates no record exists for the domain.
	ErrRecordNotFound = errors.New("vault: no record for domain")
)
