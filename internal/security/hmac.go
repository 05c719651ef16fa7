package security

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	inerr "github.com/ivanpodgorny/sprayweb/internal/errors"
	"strings"
)

const cookieSeparator = "."

// CookieSigner подписывает значение cookie сессии. Значение имеет вид
// "<ключ сессии>.<HMAC-SHA256 ключа в base64url>".
type CookieSigner struct {
	secret []byte
}

func NewCookieSigner(secret string) *CookieSigner {
	return &CookieSigner{secret: []byte(secret)}
}

func (s *CookieSigner) Sign(sessionKey string) string {
	return sessionKey + cookieSeparator + base64.RawURLEncoding.EncodeToString(s.mac(sessionKey))
}

// Parse возвращает ключ сессии из подписанного значения cookie. Если значение
// повреждено или подписано другим секретом, возвращается errors.ErrInvalidSessionCookie.
func (s *CookieSigner) Parse(value string) (string, error) {
	sessionKey, signature, ok := strings.Cut(value, cookieSeparator)
	if !ok || sessionKey == "" {
		return "", inerr.ErrInvalidSessionCookie
	}

	mac, err := base64.RawURLEncoding.DecodeString(signature)
	if err != nil || !hmac.Equal(s.mac(sessionKey), mac) {
		return "", inerr.ErrInvalidSessionCookie
	}

	return sessionKey, nil
}

func (s *CookieSigner) mac(sessionKey string) []byte {
	h := hmac.New(sha256.New, s.secret)
	h.Write([]byte(sessionKey))

	return h.Sum(nil)
}
