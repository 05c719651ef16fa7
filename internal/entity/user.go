package entity

import (
	"context"
	"time"
)

type Role string

const (
	RoleFarmer       Role = "ROLE_FARMER"
	RoleSprayer      Role = "ROLE_SPRAYER"
	RoleReceptionist Role = "ROLE_RECEPTIONIST"
)

var roleHomes = map[Role]string{
	RoleFarmer:       "/farmer/orders",
	RoleSprayer:      "/sprayer/assign-orders",
	RoleReceptionist: "/receptionist/dashboard",
}

var roleTitles = map[Role]string{
	RoleFarmer:       "Farmer",
	RoleSprayer:      "Sprayer",
	RoleReceptionist: "Receptionist",
}

// Home возвращает страницу, на которую пользователь попадает после входа.
// Для неизвестной роли возвращает "/".
func (r Role) Home() string {
	if home, ok := roleHomes[r]; ok {
		return home
	}

	return "/"
}

func (r Role) Title() string {
	return roleTitles[r]
}

type User struct {
	ID           int64  `json:"id"`
	FullName     string `json:"fullName"`
	EmailAddress string `json:"emailAddress"`
	PhoneNumber  string `json:"phoneNumber"`
	HomeAddress  string `json:"homeAddress"`
	Role         Role   `json:"userRole"`
}

// Session - текущий пользователь приложения вместе с токеном доступа к бэкенду.
type Session struct {
	Key         string
	AccessToken string
	User        User
	ExpiresAt   time.Time
}

func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

type sessionContextKey string

const sessionKey sessionContextKey = "currentSession"

func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionKey, s)
}

// CurrentSession возвращает сессию текущего пользователя из контекста запроса.
func CurrentSession(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(sessionKey).(*Session)

	return s, ok && s != nil
}
