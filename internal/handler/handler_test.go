package handler

import (
	"context"
	"github.com/go-chi/chi/v5"
	"github.com/ivanpodgorny/sprayweb/internal/entity"
	"github.com/ivanpodgorny/sprayweb/internal/view"
	"github.com/stretchr/testify/mock"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
)

type ValidatorMock struct {
	mock.Mock
}

func (m *ValidatorMock) Struct(_ context.Context, s any) error {
	args := m.Called(s)

	return args.Error(0)
}

func (m *ValidatorMock) Var(_ context.Context, field any, tag string) error {
	args := m.Called(field, tag)

	return args.Error(0)
}

// RendererMock проверяет имя страницы, код ответа и уведомление, а отрисованную
// страницу сохраняет для проверки содержимого.
type RendererMock struct {
	mock.Mock
	page view.Page
}

func (m *RendererMock) Render(w http.ResponseWriter, status int, name string, p view.Page) error {
	args := m.Called(status, name, p.Notice)
	m.page = p
	w.WriteHeader(status)

	return args.Error(0)
}

var noNotice *view.Notice

func negative(text string) *view.Notice {
	return &view.Notice{Text: text}
}

func positive(text string) *view.Notice {
	return &view.Notice{Positive: true, Text: text}
}

func newTestRequest(method, target string, form url.Values) *http.Request {
	if form == nil {
		return httptest.NewRequest(method, target, nil)
	}

	r := httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	return r
}

func withURLParams(r *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}

	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func withRole(r *http.Request, role entity.Role) *http.Request {
	s := &entity.Session{
		Key:         "key",
		AccessToken: "token",
		User:        entity.User{ID: 7, FullName: "Nguyen Van A", Role: role},
	}

	return r.WithContext(entity.WithSession(r.Context(), s))
}

func sendTestRequest(r *http.Request, handler http.HandlerFunc) *http.Response {
	w := httptest.NewRecorder()
	handler(w, r)

	return w.Result()
}
