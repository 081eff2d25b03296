package password

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// Cost 12 keeps hashing around 250ms on commodity hardware, which is slow
// enough to frustrate offline cracking without hurting login latency.
const hashCost = 12

// Hash returns a bcrypt hash of the given plaintext password.
func Hash(plain string) (string, error) {
	if plain == "" {
		return "", errors.New("password cannot be empty")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), hashCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Verify reports whether the plaintext password matches the stored hash.
func Verify(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
