package object

import "fmt"

// HashLength is the length of a hex-encoded SHA-1 object name.
const HashLength = 40

// Hash is a hex-encoded Git object name.
// It is always lowercase and exactly HashLength characters long once parsed.
type Hash string

// ParseHash validates and normalizes a hex object name.
// It returns ErrInvalidHash for anything that is not 40 hex characters.
func ParseHash(s string) (Hash, error) {
	if len(s) != HashLength {
		return "", fmt.Errorf("%w: %q (want %d hex characters, got %d)", ErrInvalidHash, s, HashLength, len(s))
	}
	out := make([]byte, HashLength)
	for i := 0; i < HashLength; i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9', c >= 'a' && c <= 'f':
			out[i] = c
		case c >= 'A' && c <= 'F':
			out[i] = c + ('a' - 'A')
		default:
			return "", fmt.Errorf("%w: %q (non-hex character %q)", ErrInvalidHash, s, c)
		}
	}
	return Hash(out), nil
}

// String returns the full hex object name.
func (h Hash) String() string {
	return string(h)
}

// Short returns the abbreviated object name used in diagnostics.
func (h Hash) Short() string {
	if len(h) < 7 {
		return string(h)
	}
	return string(h[:7])
}
