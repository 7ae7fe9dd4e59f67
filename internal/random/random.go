// Package random provides crypto/rand backed random strings.
package random

import (
	"crypto/rand"
	"encoding/hex"
)

// SecretKeyChars is the character set used for generated secret keys.
const SecretKeyChars = "abcdefghijklmnopqrstuvwxyz0123456789!@#$%^&*(-_=+)"

// SecretKeyLen is the length of generated secret keys.
const SecretKeyLen = 50

// maxByteValue is the maximum value of a byte.
const maxByteValue = 255

// String returns a new random string of the provided length, consisting of
// the provided character set (maximum 256 characters). Bytes outside the
// usable range are rejected to avoid modulo bias.
func String(length int, chars string) string {
	if length == 0 {
		return ""
	}

	clen := len(chars)
	if clen < 2 || clen > 256 {
		panic("random: wrong charset length for String")
	}

	// Largest byte value that maps onto the charset without bias.
	maxRb := maxByteValue - (256 % clen)

	out := make([]byte, 0, length)
	buf := make([]byte, length)

	for {
		if _, err := rand.Read(buf); err != nil {
			panic("random: error reading random bytes: " + err.Error())
		}

		for _, rb := range buf {
			if int(rb) > maxRb {
				continue
			}

			out = append(out, chars[int(rb)%clen])
			if len(out) == length {
				return string(out)
			}
		}
	}
}

// SecretKey returns a new random secret key.
func SecretKey() string {
	return String(SecretKeyLen, SecretKeyChars)
}

// SessionID generates a new secure random session ID.
func SessionID() (string, error) {
	// 32 bytes = 256 bits
	b := make([]byte, 32) //nolint:mnd
	if _, err := rand.Read(b); err != nil {
		return "", err
	}

	return hex.EncodeToString(b), nil
}
