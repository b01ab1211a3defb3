// Package utils holds small helpers shared across the feature packages.
package utils

import "golang.org/x/crypto/bcrypt"

// bcryptCost trades login latency for brute-force resistance. 14 keeps a
// single hash under a second on current hardware.
const bcryptCost = 14

// HashPassword returns the bcrypt hash of a plaintext password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether the plaintext password matches the stored hash.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
