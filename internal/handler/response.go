package handler

import (
	"github.com/ivanpodgorny/sprayweb/internal/view"
	"go.uber.org/zap"
	"net/http"
)

type Renderer interface {
	Render(w http.ResponseWriter, status int, name string, p view.Page) error
}

func badRequest(w http.ResponseWriter) {
	http.Error(w, "400 bad request", http.StatusBadRequest)
}

func serverError(w http.ResponseWriter) {
	http.Error(w, "500 internal server error", http.StatusInternalServerError)
}

// internalError записывает ошибку в лог и отвечает кодом 500. Используется
// для ошибок, после которых страница не может быть построена.
func internalError(w http.ResponseWriter, r *http.Request, err error) {
	zap.L().Error(
		"request failed",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Error(err),
	)
	serverError(w)
}

func render(w http.ResponseWriter, r *http.Request, renderer Renderer, status int, name string, p view.Page) {
	if err := renderer.Render(w, status, name, p); err != nil {
		internalError(w, r, err)
	}
}

// redirect перенаправляет запрос после отправки формы на страницу url.
func redirect(w http.ResponseWriter, r *http.Request, url string) {
	http.Redirect(w, r, url, http.StatusSeeOther)
}
