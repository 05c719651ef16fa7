package handler

import (
	"context"
	"errors"
	"fmt"
	"github.com/go-chi/chi/v5"
	v10validator "github.com/go-playground/validator/v10"
	"net/http"
	"strconv"
	"strings"
)

type LoginRequest struct {
	EmailOrPhone string `validate:"required"`
	Password     string `validate:"required"`
}

type SignupRequest struct {
	FullName        string `validate:"required,max=255"`
	PhoneNumber     string `validate:"required,phone"`
	EmailAddress    string `validate:"required,email"`
	HomeAddress     string `validate:"required,max=255"`
	Password        string `validate:"required,min=8,max=64"`
	ConfirmPassword string `validate:"required,eqfield=Password"`
}

type Validator interface {
	Struct(ctx context.Context, s any) error
	Var(ctx context.Context, field any, tag string) error
}

func readLoginForm(r *http.Request) (LoginRequest, error) {
	if err := r.ParseForm(); err != nil {
		return LoginRequest{}, err
	}

	return LoginRequest{
		EmailOrPhone: strings.TrimSpace(r.PostForm.Get("emailOrPhone")),
		Password:     r.PostForm.Get("password"),
	}, nil
}

func readSignupForm(r *http.Request) (SignupRequest, error) {
	if err := r.ParseForm(); err != nil {
		return SignupRequest{}, err
	}

	return SignupRequest{
		FullName:        strings.TrimSpace(r.PostForm.Get("fullName")),
		PhoneNumber:     strings.TrimSpace(r.PostForm.Get("phoneNumber")),
		EmailAddress:    strings.TrimSpace(r.PostForm.Get("emailAddress")),
		HomeAddress:     strings.TrimSpace(r.PostForm.Get("homeAddress")),
		Password:        r.PostForm.Get("password"),
		ConfirmPassword: r.PostForm.Get("confirmPassword"),
	}, nil
}

// pathID возвращает положительный идентификатор из параметра пути name.
func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil {
		return 0, err
	}

	if id < 1 {
		return 0, fmt.Errorf("invalid %s: %d", name, id)
	}

	return id, nil
}

// pageNumber возвращает номер страницы из значения value. Некорректное значение
// считается первой страницей.
func pageNumber(value string) int {
	page, err := strconv.Atoi(value)
	if err != nil || page < 1 {
		return 1
	}

	return page
}

// validationMessage возвращает сообщение о первом некорректном поле формы.
func validationMessage(err error) string {
	var errs v10validator.ValidationErrors
	if errors.As(err, &errs) && len(errs) > 0 {
		return fieldMessages[errs[0].Field()]
	}

	return "Please check the form fields."
}

var fieldMessages = map[string]string{
	"EmailOrPhone":    "Please enter your email address or phone number.",
	"Password":        "Please enter a password (at least 8 characters for a new account).",
	"FullName":        "Please enter your full name.",
	"PhoneNumber":     "Please enter a valid phone number.",
	"EmailAddress":    "Please enter a valid email address.",
	"HomeAddress":     "Please enter your home address.",
	"ConfirmPassword": "Passwords do not match.",
}
