package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

type activityRepository struct {
	db *sql.DB
}

// NewActivityRepository creates a new activity repository
func NewActivityRepository(db *sql.DB) *activityRepository {
	return &activityRepository{
		db: db,
	}
}

// RegisterSession inserts a new open session row for a user
func (r *activityRepository) RegisterSession(ctx context.Context, userEmail, userAgent string) error {
	query := `
		INSERT INTO user_sessions (user_email, user_agent, login_at)
		VALUES (?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query, userEmail, userAgent, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to register session: %w", err)
	}

	return nil
}

// CloseOpenSession stamps the most recent open session for a user with its
// logout time and duration
func (r *activityRepository) CloseOpenSession(ctx context.Context, userEmail string) error {
	query := `
		SELECT id, login_at
		FROM user_sessions
		WHERE user_email = ? AND logout_at IS NULL
		ORDER BY login_at DESC
		LIMIT 1
	`

	var id int
	var loginAt time.Time
	err := r.db.QueryRowContext(ctx, query, userEmail).Scan(&id, &loginAt)
	if err == sql.ErrNoRows {
		return fmt.Errorf("no open session found")
	}
	if err != nil {
		return fmt.Errorf("failed to find open session: %w", err)
	}

	now := time.Now().UTC()
	duration := int(now.Sub(loginAt).Seconds())

	updateQuery := `
		UPDATE user_sessions
		SET logout_at = ?, duration_seconds = ?
		WHERE id = ?
	`

	_, err = r.db.ExecContext(ctx, updateQuery, now, duration, id)
	if err != nil {
		return fmt.Errorf("failed to close session: %w", err)
	}

	return nil
}

// InsertEvent records an activity event for a user
func (r *activityRepository) InsertEvent(ctx context.Context, userEmail, eventType, eventData string) error {
	query := `
		INSERT INTO user_events (user_email, event_type, event_data, created_at)
		VALUES (?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query, userEmail, eventType, eventData, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to insert event: %w", err)
	}

	return nil
}
