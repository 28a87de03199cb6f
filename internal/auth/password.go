package auth

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/alexedwards/argon2id"
)

// MinPasswordLength applies to passwords set through the users CLI.
const MinPasswordLength = 12

var DefaultPasswordParams = &argon2id.Params{
	Memory:      19 * 1024,
	Iterations:  2,
	Parallelism: 1,
	SaltLength:  16,
	KeyLength:   32,
}

func HashPassword(password string) (string, error) {
	if err := ValidatePassword(password); err != nil {
		return "", err
	}
	return argon2id.CreateHash(password, DefaultPasswordParams)
}

// ComparePassword reports whether password matches an argon2id hash.
func ComparePassword(password, hash string) (bool, error) {
	if strings.TrimSpace(hash) == "" {
		return false, nil
	}
	return argon2id.ComparePasswordAndHash(password, hash)
}

func ValidatePassword(password string) error {
	if strings.TrimSpace(password) == "" {
		return fmt.Errorf("password is required")
	}
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return fmt.Errorf("password must be at least %d characters", MinPasswordLength)
	}
	return nil
}
