package random

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
)

const alphanumeric = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// maxUnbiasedByte is the largest multiple of len(alphanumeric) that fits in a byte.
// Bytes at or above it are rejected to keep the distribution uniform.
const maxUnbiasedByte = 256 - 256%len(alphanumeric)

var errInvalidLength = errors.New("bastion: random string length must be positive")

// secureBytes returns a securely random byte slice of length l.
func secureBytes(l int) ([]byte, error) {
	bytes := make([]byte, l)

	_, err := rand.Read(bytes)
	if err != nil {
		return bytes, fmt.Errorf(
			"bastion: error reading random bytes: %w",
			err,
		)
	}

	return bytes, nil
}

// SecureHexString returns a securely random hex string of length 2*l.
func SecureHexString(l int) (string, error) {
	bytes, err := secureBytes(l)
	if err != nil {
		return "", err
	}

	return hex.EncodeToString(bytes), nil
}

// SecureAlphanumericString returns a securely random string of exactly l
// characters drawn uniformly from [A-Za-z0-9].
func SecureAlphanumericString(l int) (string, error) {
	if l <= 0 {
		return "", errInvalidLength
	}

	result := make([]byte, 0, l)
	for len(result) < l {
		// Over-read so that a single round usually suffices despite rejections.
		bytes, err := secureBytes(l - len(result) + l/4 + 1)
		if err != nil {
			return "", err
		}

		for _, b := range bytes {
			if int(b) >= maxUnbiasedByte {
				continue
			}

			result = append(result, alphanumeric[int(b)%len(alphanumeric)])
			if len(result) == l {
				break
			}
		}
	}

	return string(result), nil
}
