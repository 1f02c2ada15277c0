package auth

import "golang.org/x/crypto/bcrypt"

// Work factor for bcrypt. Fixed; not configurable at runtime.
const bcryptCost = bcrypt.DefaultCost

// HashPassword hashes a password using bcrypt.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	return string(hash), err
}

// VerifyPassword compares a plain password with a hashed password. A mismatch
// is false, not an error; bcrypt's own comparison handles timing safety.
func VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
