package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"math/big"
)

const codeDigits = 6

// generateCode produces a zero-padded numeric verification code.
func generateCode() (string, error) {
	limit := big.NewInt(1)
	for range codeDigits {
		limit.Mul(limit, big.NewInt(10))
	}

	n, err := rand.Int(rand.Reader, limit)
	if err != nil {
		return "", fmt.Errorf("generate code: %w", err)
	}

	return fmt.Sprintf("%0*d", codeDigits, n), nil
}

// hashCode digests a code bound to the phone it was issued for, so a
// code leaked for one number cannot be replayed against another.
func hashCode(phoneHash, code string) string {
	sum := sha256.Sum256([]byte(phoneHash + ":" + code))
	return hex.EncodeToString(sum[:])
}

// matchCode compares a submitted code against a stored hash in constant time.
func matchCode(phoneHash, code, storedHash string) bool {
	return subtle.ConstantTimeCompare([]byte(hashCode(phoneHash, code)), []byte(storedHash)) == 1
}
