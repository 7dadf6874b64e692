package security

import "golang.org/x/crypto/bcrypt"

// bcryptCost matches the 10 rounds the rest of the stack has always used.
const bcryptCost = 10

// HashPassword derives a one-way salted hash of the plaintext. The random
// salt is embedded in the returned string.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	return string(bytes), err
}

// CheckPasswordHash reports whether the plaintext matches the stored hash.
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
