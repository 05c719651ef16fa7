package errors

import (
	"errors"
	"fmt"
)

var (
	ErrSessionNotFound      = errors.New("session not found")
	ErrSessionExists        = errors.New("session exists")
	ErrSessionExpired       = errors.New("session expired")
	ErrInvalidSessionCookie = errors.New("invalid session cookie signature")
	ErrNotConfirmed         = errors.New("action not confirmed")
	ErrInvalidOrder         = errors.New("invalid order record")
	ErrInvalidTransition    = errors.New("status is not a transition target")
	ErrUnknownProvider      = errors.New("unknown oauth provider")
)

// BackendError - ошибка, о которой сообщил бэкенд ответом с кодом 4xx/5xx.
type BackendError struct {
	StatusCode int
	Message    string
}

func (e *BackendError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server responded with status code %d", e.StatusCode)
	}

	return fmt.Sprintf("server responded with status code %d: %s", e.StatusCode, e.Message)
}
