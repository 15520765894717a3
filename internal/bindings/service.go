// Package bindings persists the chat-user to AniList-username association.
package bindings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
)

// Binding associates a Discord user id with an AniList username.
type Binding struct {
	UserID   int64
	Username string
}

// Service reads and writes bindings. One row per Discord user; Set replaces
// the username in place.
type Service struct {
	conn   *sql.DB
	logger *slog.Logger
}

func NewService(log *slog.Logger, conn *sql.DB) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		conn:   conn,
		logger: log.With(slog.String("service", "bindings")),
	}
}

// Set inserts the binding for userID or replaces its username if one exists.
// The upsert is a single statement, so concurrent writers for the same id
// resolve last-writer-wins without corrupting the row.
func (s *Service) Set(ctx context.Context, userID int64, username string) error {
	if s.conn == nil {
		return fmt.Errorf("bindings store not configured")
	}
	if username == "" {
		return fmt.Errorf("username is required")
	}
	_, err := s.conn.ExecContext(ctx, `
		INSERT INTO bindings (user_id, anilist_username) VALUES (?, ?)
		ON CONFLICT(user_id) DO UPDATE SET anilist_username = excluded.anilist_username
	`, userID, username)
	if err != nil {
		return fmt.Errorf("set binding: %w", err)
	}
	return nil
}

// Get returns the stored username for userID. The second return value is
// false when no binding exists; absence is not an error.
func (s *Service) Get(ctx context.Context, userID int64) (string, bool, error) {
	if s.conn == nil {
		return "", false, fmt.Errorf("bindings store not configured")
	}
	var username string
	err := s.conn.QueryRowContext(ctx,
		"SELECT anilist_username FROM bindings WHERE user_id = ?", userID,
	).Scan(&username)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get binding: %w", err)
	}
	return username, true, nil
}
