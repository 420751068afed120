package auth

import "golang.org/x/crypto/bcrypt"

// HashPassword returns the bcrypt hash of plaintext at the given cost. The
// salt is generated per call and embedded in the returned string.
func HashPassword(plaintext string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether plaintext matches the stored bcrypt hash.
// A malformed hash is treated as a mismatch, never an error.
func CheckPassword(plaintext string, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
