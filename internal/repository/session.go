package repository

import (
	"context"
	"database/sql"
	"errors"
	"github.com/ivanpodgorny/sprayweb/internal/entity"
	inerr "github.com/ivanpodgorny/sprayweb/internal/errors"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"time"
)

type Session struct {
	db *sql.DB
}

func NewSession(db *sql.DB) *Session {
	return &Session{db: db}
}

// Save сохраняет сессию пользователя. Если сессия с таким ключом уже существует,
// возвращает ошибку errors.ErrSessionExists.
func (r *Session) Save(ctx context.Context, s *entity.Session) error {
	_, err := r.db.ExecContext(
		ctx,
		`INSERT INTO sessions (key, access_token, user_id, full_name, email_address, phone_number, home_address, role, expires_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		s.Key,
		s.AccessToken,
		s.User.ID,
		s.User.FullName,
		s.User.EmailAddress,
		s.User.PhoneNumber,
		s.User.HomeAddress,
		string(s.User.Role),
		s.ExpiresAt,
	)
	pgErr := &pgconn.PgError{}
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return inerr.ErrSessionExists
	}

	return err
}

// Find возвращает сессию по ключу. Если сессия не найдена, возвращает
// ошибку errors.ErrSessionNotFound.
func (r *Session) Find(ctx context.Context, key string) (*entity.Session, error) {
	var (
		s    = &entity.Session{}
		role = ""
	)
	err := r.db.QueryRowContext(
		ctx,
		`SELECT key, access_token, user_id, full_name, email_address, phone_number, home_address, role, expires_at
FROM sessions WHERE key = $1`,
		key,
	).Scan(
		&s.Key,
		&s.AccessToken,
		&s.User.ID,
		&s.User.FullName,
		&s.User.EmailAddress,
		&s.User.PhoneNumber,
		&s.User.HomeAddress,
		&role,
		&s.ExpiresAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, inerr.ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	s.User.Role = entity.Role(role)

	return s, nil
}

func (r *Session) Delete(ctx context.Context, key string) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM sessions WHERE key = $1", key)

	return err
}

// DeleteExpired удаляет сессии, срок действия которых истек к моменту now,
// и возвращает количество удаленных сессий.
func (r *Session) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM sessions WHERE expires_at <= $1", now)
	if err != nil {
		return 0, err
	}

	return res.RowsAffected()
}
