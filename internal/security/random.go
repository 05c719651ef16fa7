package security

import (
	"crypto/rand"
	"encoding/base64"
)

// NewSessionKey возвращает случайный ключ сессии из sessionKeySize символов
// алфавита base64url. Ключ не содержит cookieSeparator.
func NewSessionKey() (string, error) {
	b := make([]byte, base64.RawURLEncoding.DecodedLen(sessionKeySize))
	if _, err := rand.Read(b); err != nil {
		return "", err
	}

	return base64.RawURLEncoding.EncodeToString(b), nil
}
