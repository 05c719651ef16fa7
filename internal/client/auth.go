package client

import (
	"context"
	"github.com/ivanpodgorny/sprayweb/internal/entity"
	inerr "github.com/ivanpodgorny/sprayweb/internal/errors"
)

// Login аутентифицирует пользователя по email или телефону и паролю.
func (c *Backend) Login(ctx context.Context, emailOrPhone, password string) (entity.Credentials, error) {
	respBody := entity.Credentials{}
	resp, err := c.req.R().
		SetContext(ctx).
		SetBody(&struct {
			EmailOrPhone string `json:"emailOrPhone"`
			Password     string `json:"password"`
		}{
			EmailOrPhone: emailOrPhone,
			Password:     password,
		}).
		SetSuccessResult(&respBody).
		Post("/auth/login")
	if err != nil {
		return entity.Credentials{}, err
	}

	if resp.IsErrorState() {
		return entity.Credentials{}, newBackendError(resp)
	}

	return respBody, nil
}

// Register регистрирует пользователя. Токен доступа возвращается, только если
// бэкенд выдал его вместе с данными пользователя.
func (c *Backend) Register(ctx context.Context, r entity.Registration) (entity.User, string, error) {
	respBody := struct {
		DTO         entity.User `json:"dto"`
		AccessToken string      `json:"accessToken"`
	}{}
	resp, err := c.req.R().
		SetContext(ctx).
		SetBody(&r).
		SetSuccessResult(&respBody).
		Post("/auth/register")
	if err != nil {
		return entity.User{}, "", err
	}

	if resp.IsErrorState() {
		return entity.User{}, "", newBackendError(resp)
	}

	return respBody.DTO, respBody.AccessToken, nil
}

// OAuthURL возвращает адрес, с которого начинается вход через внешнего провайдера.
func (c *Backend) OAuthURL(ctx context.Context, provider string) (string, error) {
	respBody := struct {
		RedirectURL string `json:"redirectUrl"`
	}{}
	resp, err := c.req.R().
		SetContext(ctx).
		SetSuccessResult(&respBody).
		SetPathParam("provider", provider).
		Get("/auth/oauth2/{provider}")
	if err != nil {
		return "", err
	}

	if resp.IsErrorState() {
		return "", newBackendError(resp)
	}

	if respBody.RedirectURL == "" {
		return "", &inerr.BackendError{StatusCode: resp.StatusCode, Message: "empty redirect url"}
	}

	return respBody.RedirectURL, nil
}
