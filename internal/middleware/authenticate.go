package middleware

import (
	"github.com/ivanpodgorny/sprayweb/internal/entity"
	"net/http"
)

const LoginPath = "/auth/login"

type SessionResumer interface {
	Resume(r *http.Request) (*http.Request, error)
	Forget(w http.ResponseWriter)
}

// Authenticate возвращает middleware для восстановления сессии пользователя.
// Запросы без действительной сессии перенаправляются на страницу входа,
// cookie такой сессии удаляется.
func Authenticate(s SessionResumer) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r, err := s.Resume(r)
			if err != nil {
				s.Forget(w)
				http.Redirect(w, r, LoginPath, http.StatusFound)

				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireRole возвращает middleware, который пропускает только пользователей
// с одной из ролей roles. Должен использоваться после Authenticate.
func RequireRole(roles ...entity.Role) func(next http.Handler) http.Handler {
	allowed := make(map[entity.Role]bool, len(roles))
	for _, role := range roles {
		allowed[role] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s, ok := entity.CurrentSession(r.Context())
			if !ok || !allowed[s.User.Role] {
				http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)

				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
