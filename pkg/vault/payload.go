package vault

import (
	"fmt"
	"strings"
)

// Record plaintext is "domain password" with both parts escaped so that
// the single separating space stays unambiguous: backslash becomes `\\`
// and a literal space becomes `\s`.

// escapePart escapes backslashes and spaces in a payload component.
func escapePart(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\':
			b.WriteString(`\\`)
		case ' ':
			b.WriteString(`\s`)
		default:
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

// unescapePart reverses escapePart. A trailing lone backslash or an
// unknown escape sequence marks the payload as corrupt.
func unescapePart(s string) (string, error) {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' {
			b.WriteByte(s[i])
			continue
		}
		i++
		if i >= len(s) {
			return "", fmt.Errorf("%w: trailing escape in payload", ErrFrameCorrupt)
		}
		switch s[i] {
		case '\\':
			b.WriteByte('\\')
		case 's':
			b.WriteByte(' ')
		default:
			return "", fmt.Errorf("%w: unknown escape sequence in payload", ErrFrameCorrupt)
		}
	}
	return b.String(), nil
}

// marshalPair encodes a (domain, password) pair into the plaintext payload
// stored inside a frame.
func marshalPair(domain, password string) string {
	return escapePart(domain) + " " + escapePart(password)
}

// unmarshalPair decodes a plaintext payload back into its (domain,
// password) pair. A payload without exactly one unescaped space is corrupt.
func unmarshalPair(payload string) (domain, password string, err error) {
	idx := strings.IndexByte(payload, ' ')
	if idx < 0 {
		return "", "", fmt.Errorf("%w: payload has no separator", ErrFrameCorrupt)
	}
	if strings.IndexByte(payload[idx+1:], ' ') >= 0 {
		return "", "", fmt.Errorf("%w: payload has multiple separators", ErrFrameCorrupt)
	}

	domain, err = unescapePart(payload[:idx])
	if err != nil {
		return "", "", err
	}
	password, err = unescapePart(payload[idx+1:])
	if err != nil {
		return "", "", err
	}
	return domain, password, nil
}
