package service

import (
	"context"
	"errors"
	"github.com/golang-jwt/jwt/v5"
	"github.com/ivanpodgorny/sprayweb/internal/entity"
	inerr "github.com/ivanpodgorny/sprayweb/internal/errors"
	"github.com/ivanpodgorny/sprayweb/internal/metrics"
	"net/http"
	"time"
)

const genericLoginFailure = "Internal Server Error"

var oauthProviders = map[string]bool{
	"google":   true,
	"facebook": true,
}

type Auth struct {
	client AuthClient
	ttl    time.Duration
	now    func() time.Time
}

type AuthClient interface {
	Login(ctx context.Context, emailOrPhone, password string) (entity.Credentials, error)
	Register(ctx context.Context, r entity.Registration) (entity.User, string, error)
	OAuthURL(ctx context.Context, provider string) (string, error)
}

// Grant - результат успешной аутентификации, из которого создается сессия.
type Grant struct {
	User        entity.User
	AccessToken string
	ExpiresAt   time.Time
}

// LoginError - неудачный вход с сообщением для пользователя.
type LoginError struct {
	Message string
	err     error
}

func NewAuth(c AuthClient, ttl time.Duration) *Auth {
	return &Auth{
		client: c,
		ttl:    ttl,
		now:    time.Now,
	}
}

func (e *LoginError) Error() string {
	return e.Message
}

func (e *LoginError) Unwrap() error {
	return e.err
}

// Login аутентифицирует пользователя в бэкенде. При ответе бэкенда с кодом 401 или 404
// возвращает LoginError с сообщением бэкенда, в остальных случаях - с общим сообщением.
func (s *Auth) Login(ctx context.Context, emailOrPhone, password string) (Grant, error) {
	cred, err := s.client.Login(ctx, emailOrPhone, password)
	metrics.LoginsTotal.WithLabelValues(metrics.Outcome(err)).Inc()
	if err != nil {
		return Grant{}, &LoginError{Message: loginFailureMessage(err), err: err}
	}

	return s.grant(cred.User, cred.AccessToken), nil
}

// Register регистрирует фермера и возвращает данные для входа зарегистрированного пользователя.
func (s *Auth) Register(ctx context.Context, r entity.Registration) (Grant, error) {
	r.UserRole = entity.RoleFarmer
	user, token, err := s.client.Register(ctx, r)
	if err != nil {
		return Grant{}, err
	}

	if user.Role == "" {
		user.Role = entity.RoleFarmer
	}

	return s.grant(user, token), nil
}

// OAuthURL возвращает адрес входа через внешнего провайдера (google или facebook).
func (s *Auth) OAuthURL(ctx context.Context, provider string) (string, error) {
	if !oauthProviders[provider] {
		return "", inerr.ErrUnknownProvider
	}

	return s.client.OAuthURL(ctx, provider)
}

// grant определяет срок действия сессии по полю exp токена доступа. Подпись токена
// проверяет бэкенд, поэтому здесь токен разбирается без проверки. Если срок не указан,
// сессия действует Auth.ttl.
func (s *Auth) grant(user entity.User, token string) Grant {
	g := Grant{
		User:        user,
		AccessToken: token,
		ExpiresAt:   s.now().Add(s.ttl),
	}

	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err == nil && claims.ExpiresAt != nil {
		g.ExpiresAt = claims.ExpiresAt.Time
	}

	return g
}

func loginFailureMessage(err error) string {
	backendErr := &inerr.BackendError{}
	if errors.As(err, &backendErr) {
		switch backendErr.StatusCode {
		case http.StatusUnauthorized, http.StatusNotFound:
			return backendErr.Message
		}
	}

	return genericLoginFailure
}
