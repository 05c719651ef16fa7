package security

import (
	"context"
	"errors"
	"fmt"
	"github.com/ivanpodgorny/sprayweb/internal/entity"
	inerr "github.com/ivanpodgorny/sprayweb/internal/errors"
	"net/http"
	"time"
)

const (
	SessionCookie    = "sprayweb_session"
	sessionKeySize   = 32
	maxStartAttempts = 3
)

// SessionManager хранит сессии пользователей в SessionStorage и связывает их
// с запросами через подписанную cookie.
type SessionManager struct {
	signer  Signer
	storage SessionStorage
	now     func() time.Time
}

type SessionStorage interface {
	Save(ctx context.Context, s *entity.Session) error
	Find(ctx context.Context, key string) (*entity.Session, error)
	Delete(ctx context.Context, key string) error
}

type Signer interface {
	Sign(token string) string
	Parse(signed string) (string, error)
}

func NewSessionManager(sgn Signer, store SessionStorage) *SessionManager {
	return &SessionManager{
		signer:  sgn,
		storage: store,
		now:     time.Now,
	}
}

// Start создает сессию пользователя, сохраняет ее в SessionStorage и устанавливает
// cookie с ключом сессии, подписанным Signer.
func (m *SessionManager) Start(
	ctx context.Context,
	w http.ResponseWriter,
	user entity.User,
	accessToken string,
	expiresAt time.Time,
) (*entity.Session, error) {
	for attempt := 1; ; attempt++ {
		key, err := NewSessionKey()
		if err != nil {
			return nil, err
		}

		s := &entity.Session{
			Key:         key,
			AccessToken: accessToken,
			User:        user,
			ExpiresAt:   expiresAt,
		}
		err = m.storage.Save(ctx, s)
		if errors.Is(err, inerr.ErrSessionExists) && attempt < maxStartAttempts {
			continue
		}
		if err != nil {
			return nil, err
		}

		http.SetCookie(w, &http.Cookie{
			Name:     SessionCookie,
			Value:    m.signer.Sign(key),
			Path:     "/",
			Expires:  expiresAt,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})

		return s, nil
	}
}

// Resume проверяет подпись cookie сессии, получает сессию из SessionStorage
// и устанавливает ее в контекст запроса. Истекшая сессия удаляется, в этом
// случае возвращается ошибка errors.ErrSessionExpired. Cookie после ошибки
// остается у клиента, ее удаляет Forget.
func (m *SessionManager) Resume(r *http.Request) (*http.Request, error) {
	key, err := m.sessionKey(r)
	if err != nil {
		return r, err
	}

	s, err := m.storage.Find(r.Context(), key)
	if err != nil {
		return r, err
	}

	if s.Expired(m.now()) {
		if err := m.storage.Delete(r.Context(), key); err != nil {
			return r, err
		}

		return r, inerr.ErrSessionExpired
	}

	return r.WithContext(entity.WithSession(r.Context(), s)), nil
}

// End удаляет сессию текущего запроса и cookie. Запрос без действительной cookie
// ошибкой не считается.
func (m *SessionManager) End(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	m.Forget(w)

	key, err := m.sessionKey(r)
	if err != nil {
		return nil
	}

	return m.storage.Delete(ctx, key)
}

// Forget удаляет cookie сессии у клиента, не обращаясь к SessionStorage.
func (m *SessionManager) Forget(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (m *SessionManager) sessionKey(r *http.Request) (string, error) {
	c, err := r.Cookie(SessionCookie)
	if err != nil {
		return "", inerr.ErrSessionNotFound
	}

	key, err := m.signer.Parse(c.Value)
	if err != nil {
		return "", fmt.Errorf("%w: %w", inerr.ErrSessionNotFound, err)
	}

	return key, nil
}
