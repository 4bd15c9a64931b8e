// Package csrf implements double-submit tokens for cookie-authenticated writes.
package csrf

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
)

const TokenLength = 32 // bytes

const (
	CookieName = "csrf_token"
	HeaderName = "X-CSRF-Token"
)

// GenerateToken creates a cryptographically secure random token
func GenerateToken() (string, error) {
	bytes := make([]byte, TokenLength)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(bytes), nil
}

// ValidateToken compares the cookie token with the submitted one in constant time
func ValidateToken(cookieToken, submitted string) bool {
	if cookieToken == "" || submitted == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(cookieToken), []byte(submitted)) == 1
}
