package fakeapi

import (
	"errors"
	"fmt"
	"net/http"

	"golang.org/x/crypto/bcrypt"
)

// passwordCost is the bcrypt work factor for stored passwords.
const passwordCost = bcrypt.MinCost

func hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), passwordCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hashed), nil
}

// passwordMatches reports whether password matches the stored hash. A user
// without a password never matches.
func passwordMatches(hash, password string) bool {
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// hashPasswordOrReject hashes password, writing 422 when bcrypt refuses it.
func hashPasswordOrReject(w http.ResponseWriter, field, password string) (string, bool) {
	hashed, err := hashPassword(password)
	if err == nil {
		return hashed, true
	}
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		writeValidationError(w, field, "password_too_long")
		return "", false
	}
	writeError(w, http.StatusInternalServerError, "server_error", err.Error())
	return "", false
}
