package config

import (
	"crypto/rand"
	"fmt"
)

const secretAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// SecretLength is the fixed length of the generated application secret.
const SecretLength = 32

// GenerateSecret produces a uniform-random alphanumeric string of length n
// from a cryptographic source. Rejection sampling keeps the distribution
// uniform over the 62-character alphabet.
func GenerateSecret(n int) (string, error) {
	out := make([]byte, 0, n)
	buf := make([]byte, n)

	// 248 = 62*4: the largest multiple of the alphabet size below 256.
	const limit = 248

	for len(out) < n {
		if _, err := rand.Read(buf); err != nil {
			return "", fmt.Errorf("failed to read random bytes: %w", err)
		}
		for _, b := range buf {
			if b >= limit {
				continue
			}
			out = append(out, secretAlphabet[int(b)%len(secretAlphabet)])
			if len(out) == n {
				break
			}
		}
	}

	return string(out), nil
}
