package security

import (
	"context"
	"errors"
	"github.com/ivanpodgorny/sprayweb/internal/entity"
	inerr "github.com/ivanpodgorny/sprayweb/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

type SessionStorageMock struct {
	mock.Mock
}

func (m *SessionStorageMock) Save(_ context.Context, s *entity.Session) error {
	args := m.Called(s.AccessToken)

	return args.Error(0)
}

func (m *SessionStorageMock) Find(_ context.Context, key string) (*entity.Session, error) {
	args := m.Called(key)
	if s, ok := args.Get(0).(*entity.Session); ok {
		return s, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *SessionStorageMock) Delete(_ context.Context, key string) error {
	args := m.Called(key)

	return args.Error(0)
}

func requestWithCookie(value string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	if value != "" {
		r.AddCookie(&http.Cookie{Name: SessionCookie, Value: value})
	}

	return r
}

func TestSessionManager_Start(t *testing.T) {
	var (
		ctx       = context.Background()
		user      = entity.User{ID: 7, Role: entity.RoleSprayer}
		expiresAt = time.Date(2024, time.June, 20, 10, 0, 0, 0, time.UTC)
		signer    = NewCookieSigner("secret")
		storage   = &SessionStorageMock{}
	)
	storage.On("Save", "token").Return(inerr.ErrSessionExists).Once()
	storage.On("Save", "token").Return(nil).Once()
	storage.On("Save", "failed").Return(errors.New("")).Once()
	manager := NewSessionManager(signer, storage)

	w := httptest.NewRecorder()
	s, err := manager.Start(ctx, w, user, "token", expiresAt)
	require.NoError(t, err, "успешное создание сессии после коллизии ключа")
	assert.Equal(t, user, s.User)
	assert.Len(t, s.Key, sessionKeySize)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, SessionCookie, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)
	key, err := signer.Parse(cookies[0].Value)
	assert.NoError(t, err, "cookie подписана")
	assert.Equal(t, s.Key, key)

	w = httptest.NewRecorder()
	_, err = manager.Start(ctx, w, user, "failed", expiresAt)
	assert.Error(t, err, "ошибка при сохранении сессии")
	assert.Empty(t, w.Result().Cookies(), "cookie не устанавливается при ошибке")

	storage.AssertExpectations(t)
}

func TestSessionManager_Resume(t *testing.T) {
	var (
		now     = time.Date(2024, time.June, 19, 10, 0, 0, 0, time.UTC)
		signer  = NewCookieSigner("secret")
		storage = &SessionStorageMock{}
		active  = &entity.Session{Key: "active", ExpiresAt: now.Add(time.Hour)}
		expired = &entity.Session{Key: "expired", ExpiresAt: now}
	)
	storage.On("Find", "active").Return(active, nil).Once()
	storage.On("Find", "expired").Return(expired, nil).Once()
	storage.On("Find", "missing").Return(nil, inerr.ErrSessionNotFound).Once()
	storage.On("Delete", "expired").Return(nil).Once()
	manager := NewSessionManager(signer, storage)
	manager.now = func() time.Time { return now }

	_, err := manager.Resume(requestWithCookie(""))
	assert.ErrorIs(t, err, inerr.ErrSessionNotFound, "запрос без cookie")

	_, err = manager.Resume(requestWithCookie("active.AAAA"))
	assert.ErrorIs(t, err, inerr.ErrSessionNotFound, "неверная подпись")
	assert.ErrorIs(t, err, inerr.ErrInvalidSessionCookie)

	_, err = manager.Resume(requestWithCookie(signer.Sign("missing")))
	assert.ErrorIs(t, err, inerr.ErrSessionNotFound, "несуществующая сессия")

	_, err = manager.Resume(requestWithCookie(signer.Sign("expired")))
	assert.ErrorIs(t, err, inerr.ErrSessionExpired, "истекшая сессия")

	r, err := manager.Resume(requestWithCookie(signer.Sign("active")))
	require.NoError(t, err, "успешное восстановление сессии")
	s, ok := entity.CurrentSession(r.Context())
	assert.True(t, ok)
	assert.Equal(t, active, s)

	storage.AssertExpectations(t)
}

func TestSessionManager_End(t *testing.T) {
	var (
		ctx     = context.Background()
		signer  = NewCookieSigner("secret")
		storage = &SessionStorageMock{}
	)
	storage.On("Delete", "key").Return(nil).Once()
	manager := NewSessionManager(signer, storage)

	w := httptest.NewRecorder()
	assert.NoError(t, manager.End(ctx, w, requestWithCookie(signer.Sign("key"))), "успешное завершение сессии")
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, -1, cookies[0].MaxAge, "cookie удаляется")

	assert.NoError(t, manager.End(ctx, httptest.NewRecorder(), requestWithCookie("")), "запрос без сессии")

	storage.AssertExpectations(t)
}

func TestSessionManager_ForgetExpired(t *testing.T) {
	var (
		now     = time.Date(2024, time.June, 19, 10, 0, 0, 0, time.UTC)
		signer  = NewCookieSigner("secret")
		storage = &SessionStorageMock{}
		expired = &entity.Session{Key: "expired", ExpiresAt: now.Add(-time.Minute)}
	)
	storage.On("Find", "expired").Return(expired, nil).Once()
	storage.On("Delete", "expired").Return(nil).Once()
	manager := NewSessionManager(signer, storage)
	manager.now = func() time.Time { return now }

	_, err := manager.Resume(requestWithCookie(signer.Sign("expired")))
	require.ErrorIs(t, err, inerr.ErrSessionExpired)

	w := httptest.NewRecorder()
	manager.Forget(w)
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, SessionCookie, cookies[0].Name)
	assert.Equal(t, -1, cookies[0].MaxAge, "cookie истекшей сессии удаляется")
	assert.Empty(t, cookies[0].Value)

	storage.AssertExpectations(t)
}
