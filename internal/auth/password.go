package auth

import "golang.org/x/crypto/bcrypt"

// bcrypt silently ignores input past 72 bytes. The stored hashes were
// produced by an implementation that truncated at that boundary, so both
// hashing and verification truncate the same way to stay compatible.
const bcryptInputLimit = 72

// HashPassword hashes a plaintext password with configured cost.
func HashPassword(password string, cost int) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword(truncate(password), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// ComparePassword verifies a password against its hashed value.
func ComparePassword(hashed, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashed), truncate(plain))
}

func truncate(password string) []byte {
	b := []byte(password)
	if len(b) > bcryptInputLimit {
		b = b[:bcryptInputLimit]
	}
	return b
}
