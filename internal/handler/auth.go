package handler

import (
	"context"
	"errors"
	"github.com/go-chi/chi/v5"
	"github.com/ivanpodgorny/sprayweb/internal/entity"
	inerr "github.com/ivanpodgorny/sprayweb/internal/errors"
	"github.com/ivanpodgorny/sprayweb/internal/service"
	"github.com/ivanpodgorny/sprayweb/internal/view"
	"go.uber.org/zap"
	"net/http"
	"time"
)

const (
	signupFailure = "Authentication failed! Something wrong"
	oauthFailure  = "Something went wrong"
	bookingPath   = "/booking"
	loginPath     = "/auth/login"
)

type Auth struct {
	authenticator Authenticator
	sessions      SessionKeeper
	renderer      Renderer
	validator     Validator
}

type Authenticator interface {
	Login(ctx context.Context, emailOrPhone, password string) (service.Grant, error)
	Register(ctx context.Context, r entity.Registration) (service.Grant, error)
	OAuthURL(ctx context.Context, provider string) (string, error)
}

type SessionKeeper interface {
	Start(
		ctx context.Context,
		w http.ResponseWriter,
		user entity.User,
		accessToken string,
		expiresAt time.Time,
	) (*entity.Session, error)
	End(ctx context.Context, w http.ResponseWriter, r *http.Request) error
}

func NewAuth(a Authenticator, s SessionKeeper, rnd Renderer, v Validator) *Auth {
	return &Auth{
		authenticator: a,
		sessions:      s,
		renderer:      rnd,
		validator:     v,
	}
}

func (h *Auth) LoginPage(w http.ResponseWriter, r *http.Request) {
	render(w, r, h.renderer, http.StatusOK, "login", view.NewPage(r, "Log in", LoginRequest{}))
}

// Login аутентифицирует пользователя по адресу электронной почты или номеру телефона
// и паролю, создает сессию и перенаправляет на стартовую страницу роли пользователя.
// При неудаче форма отображается повторно с сообщением об ошибке.
func (h *Auth) Login(w http.ResponseWriter, r *http.Request) {
	req, err := readLoginForm(r)
	if err != nil {
		badRequest(w)

		return
	}

	form := LoginRequest{EmailOrPhone: req.EmailOrPhone}
	page := view.NewPage(r, "Log in", form)
	if err := h.validator.Struct(r.Context(), &req); err != nil {
		render(w, r, h.renderer, http.StatusBadRequest, "login", page.WithNotice(false, validationMessage(err)))

		return
	}

	grant, err := h.authenticator.Login(r.Context(), req.EmailOrPhone, req.Password)
	loginErr := &service.LoginError{}
	if errors.As(err, &loginErr) {
		render(w, r, h.renderer, http.StatusUnauthorized, "login", page.WithNotice(false, loginErr.Message))

		return
	} else if err != nil {
		internalError(w, r, err)

		return
	}

	if _, err := h.sessions.Start(r.Context(), w, grant.User, grant.AccessToken, grant.ExpiresAt); err != nil {
		internalError(w, r, err)

		return
	}

	redirect(w, r, grant.User.Role.Home())
}

func (h *Auth) SignupPage(w http.ResponseWriter, r *http.Request) {
	render(w, r, h.renderer, http.StatusOK, "signup", view.NewPage(r, "Sign up", SignupRequest{}))
}

// Signup регистрирует фермера, создает сессию для вернувшегося пользователя и
// перенаправляет его на страницу бронирования. Токен доступа в ответе на регистрацию
// необязателен.
func (h *Auth) Signup(w http.ResponseWriter, r *http.Request) {
	req, err := readSignupForm(r)
	if err != nil {
		badRequest(w)

		return
	}

	form := req
	form.Password, form.ConfirmPassword = "", ""
	page := view.NewPage(r, "Sign up", form)
	if err := h.validator.Struct(r.Context(), &req); err != nil {
		render(w, r, h.renderer, http.StatusBadRequest, "signup", page.WithNotice(false, validationMessage(err)))

		return
	}

	grant, err := h.authenticator.Register(r.Context(), entity.Registration{
		FullName:     req.FullName,
		PhoneNumber:  req.PhoneNumber,
		EmailAddress: req.EmailAddress,
		HomeAddress:  req.HomeAddress,
		Password:     req.Password,
	})
	if err != nil {
		zap.L().Info("registration failed", zap.Error(err))
		render(w, r, h.renderer, http.StatusUnprocessableEntity, "signup", page.WithNotice(false, signupFailure))

		return
	}

	if _, err := h.sessions.Start(r.Context(), w, grant.User, grant.AccessToken, grant.ExpiresAt); err != nil {
		internalError(w, r, err)

		return
	}

	redirect(w, r, bookingPath)
}

// OAuth перенаправляет пользователя на страницу входа внешнего провайдера.
func (h *Auth) OAuth(w http.ResponseWriter, r *http.Request) {
	url, err := h.authenticator.OAuthURL(r.Context(), chi.URLParam(r, "provider"))
	if errors.Is(err, inerr.ErrUnknownProvider) {
		http.NotFound(w, r)

		return
	} else if err != nil {
		zap.L().Warn("oauth redirect failed", zap.Error(err))
		page := view.NewPage(r, "Log in", LoginRequest{})
		render(w, r, h.renderer, http.StatusBadGateway, "login", page.WithNotice(false, oauthFailure))

		return
	}

	http.Redirect(w, r, url, http.StatusFound)
}

// ErrorContent - сообщение страницы ошибки.
type ErrorContent struct {
	Message string
}

// Home перенаправляет пользователя на стартовую страницу его роли. Для роли
// без стартовой страницы отображает страницу ошибки.
func (h *Auth) Home(w http.ResponseWriter, r *http.Request) {
	if home := currentRole(r).Home(); home != "/" {
		http.Redirect(w, r, home, http.StatusFound)

		return
	}

	content := ErrorContent{Message: "Your account has no access to this application."}
	render(w, r, h.renderer, http.StatusForbidden, "error", view.NewPage(r, "Access denied", content))
}

// Logout завершает сессию пользователя.
func (h *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.End(r.Context(), w, r); err != nil {
		zap.L().Warn("session teardown failed", zap.Error(err))
	}

	redirect(w, r, loginPath)
}
