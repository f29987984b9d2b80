package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const (
	// BcryptCost is the cost factor for bcrypt hashing
	BcryptCost = 12

	recoveryKeyBytes = 16
)

// GenerateRecoveryKey returns a random key a guest can use to reclaim their
// account on another device
func GenerateRecoveryKey() (string, error) {
	bytes := make([]byte, recoveryKeyBytes)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate recovery key: %w", err)
	}
	return hex.EncodeToString(bytes), nil
}

// HashRecoveryKey generates a bcrypt hash of the key
func HashRecoveryKey(key string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(key), BcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash recovery key: %w", err)
	}
	return string(hashedBytes), nil
}

// VerifyRecoveryKey checks if the key matches the hash
func VerifyRecoveryKey(key, hash string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(key))
}
