package vault

import (
	"fmt"
	"os"

	"github.com/pwkeep/pwkeep/pkg/crypto"
	"github.com/pwkeep/pwkeep/pkg/storage"
)

// record is an in-memory frame plus the key re-derived from its salt and,
// once decrypted, its (domain, password) pair.
type record struct {
	frame    Frame
	key      []byte
	domain   string
	password string
}

// readFrames reads the whole backing file at path and parses it into
// records, re-deriving each frame's key from its embedded salt and the
// supplied master password. Any parse failure aborts the whole read.
func readFrames(path, masterPassword string) ([]record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("vault: failed to read user file: %w", err)
	}

	var records []record
	for len(data) > 0 {
		frame, rest, err := decodeFrame(data)
		if err != nil {
			return nil, err
		}
		key, _, err := crypto.DeriveKey(masterPassword, frame.Salt)
		if err != nil {
			return nil, err
		}
		records = append(records, record{frame: frame, key: key})
		data = rest
	}
	return records, nil
}

// loadRecords reads and fully decrypts a user's record sequence. This is
// the integrity gate: every frame must authenticate under the supplied
// master password, and every payload must unmarshal, or the load fails as
// a whole. Absent file fails with ErrUserNotFound.
func loadRecords(dir, username, masterPassword string) ([]record, error) {
	path := userPath(dir, username)
	if !storage.Exists(path) {
		return nil, ErrUserNotFound
	}

	records, err := readFrames(path, masterPassword)
	if err != nil {
		return nil, err
	}
	for i := range records {
		payload, err := crypto.Open(records[i].key, records[i].frame.Nonce, records[i].frame.Ciphertext)
		if err != nil {
			return nil, err
		}
		records[i].domain, records[i].password, err = unmarshalPair(string(payload))
		if err != nil {
			return nil, err
		}
	}
	return records, nil
}

// encryptPair derives a fresh (key, salt) pair from the master password
// and seals the marshaled (domain, password) payload into a new record.
func encryptPair(masterPassword, domain, password string) (record, error) {
	key, salt, err := crypto.DeriveKey(masterPassword, nil)
	if err != nil {
		return record{}, err
	}
	nonce, ciphertext, err := crypto.Seal(key, []byte(marshalPair(domain, password)))
	if err != nil {
		return record{}, err
	}
	return record{
		frame:    Frame{Salt: salt, Nonce: nonce, Ciphertext: ciphertext},
		key:      key,
		domain:   domain,
		password: password,
	}, nil
}

// encodeRecords concatenates the serialized frames of records in order.
func encodeRecords(records []record) []byte {
	size := 0
	for _, r := range records {
		size += r.frame.encodedLen()
	}
	buf := make([]byte, 0, size)
	for _, r := range records {
		buf = append(buf, r.frame.Encode()...)
	}
	return buf
}

// rewriteRecords truncates the backing file and writes the full frame
// concatenation for records. The log format has no tombstones, so remove
// and modify always reconstruct the whole file.
func rewriteRecords(path string, records []record) error {
	buf := encodeRecords(records)
	if err := storage.EnsureDiskSpace(path, uint64(len(buf))); err != nil {
		return err
	}
	if err := storage.ClearFile(path); err != nil {
		return err
	}
	return storage.AppendFile(path, buf)
}
