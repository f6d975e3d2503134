package utils

import (
	"crypto/rand"
	"errors"
	"math/big"
	"strconv"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

const tokenFragmentLen = 11

var base36Max = big.NewInt(36)

// GenerateToken mints an opaque session token: a random base-36 fragment
// followed by the given time in base-36 milliseconds.
func GenerateToken(now time.Time) (string, error) {
	var b strings.Builder
	for i := 0; i < tokenFragmentLen; i++ {
		n, err := rand.Int(rand.Reader, base36Max)
		if err != nil {
			return "", err
		}
		b.WriteString(strconv.FormatInt(n.Int64(), 36))
	}
	b.WriteString(strconv.FormatInt(now.UnixMilli(), 36))
	return b.String(), nil
}

// HashPassword returns the bcrypt hash used as ADMIN_PASSWORD_HASH
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", errors.New("password must not be empty")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// CheckPassword reports whether password matches hash
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// BearerToken extracts the session token from an Authorization header value.
// Both "Bearer <token>" and the bare token are accepted.
func BearerToken(header string) string {
	header = strings.TrimSpace(header)
	if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return header
}
