package auth

import (
	"sync"

	"golang.org/x/crypto/bcrypt"
)

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

var placeholderHash = sync.OnceValue(func() string {
	hash, err := HashPassword("placeholder password for unknown accounts")
	if err != nil {
		panic(err)
	}
	return hash
})

// CheckPasswordForUnknownUser costs the same as CheckPasswordHash and always
// fails. Login uses it when no account matches the email.
func CheckPasswordForUnknownUser(password string) bool {
	CheckPasswordHash(password, placeholderHash())
	return false
}
