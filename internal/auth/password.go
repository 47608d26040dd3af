package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/erazemk/katalog/internal/model"
)

// dummyHash is compared against when the account does not exist so unknown
// usernames take as long as wrong passwords.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("katalog-no-such-user"), bcrypt.DefaultCost)

// HashPassword enforces the password policy and returns a bcrypt hash.
func HashPassword(password string) (string, error) {
	if err := model.ValidatePassword(password); err != nil {
		return "", err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches the user's hash. A nil user
// never matches.
func CheckPassword(user *model.User, password string) bool {
	if user == nil {
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) == nil
}
