package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/toticourse/backend/internal/models"
)

type progressRepository struct {
	db *sql.DB
}

// NewProgressRepository creates a new progress repository
func NewProgressRepository(db *sql.DB) *progressRepository {
	return &progressRepository{
		db: db,
	}
}

// Get retrieves the progress record for a user.
// Returns nil without error when no record exists, so a missing record is
// indistinguishable from "no completions yet".
func (r *progressRepository) Get(ctx context.Context, userEmail string) (*models.UserProgress, error) {
	query := `SELECT completed_lessons, last_updated FROM user_progress WHERE user_email = ?`

	var rawLessons []byte
	progress := &models.UserProgress{Owner: userEmail}

	err := r.db.QueryRowContext(ctx, query, userEmail).Scan(&rawLessons, &progress.LastUpdated)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get progress record: %w", err)
	}

	if err := json.Unmarshal(rawLessons, &progress.CompletedLessons); err != nil {
		return nil, fmt.Errorf("failed to decode completed lessons: %w", err)
	}

	return progress, nil
}

// AddLesson atomically adds a lesson to the user's completion set.
// Returns the resulting set and whether the lesson was absent before.
func (r *progressRepository) AddLesson(ctx context.Context, userEmail, lessonID string, updatedAt time.Time) (models.LessonSet, bool, error) {
	return r.mutate(ctx, userEmail, updatedAt, func(set models.LessonSet) bool {
		return set.Add(lessonID)
	})
}

// RemoveLesson atomically removes a lesson from the user's completion set.
// Returns the resulting set and whether the lesson was present before.
func (r *progressRepository) RemoveLesson(ctx context.Context, userEmail, lessonID string, updatedAt time.Time) (models.LessonSet, bool, error) {
	return r.mutate(ctx, userEmail, updatedAt, func(set models.LessonSet) bool {
		return set.Remove(lessonID)
	})
}

// MergeLessons atomically unions the given lessons into the user's completion
// set. Returns the resulting set and whether the union added anything.
func (r *progressRepository) MergeLessons(ctx context.Context, userEmail string, lessons []string, updatedAt time.Time) (models.LessonSet, bool, error) {
	return r.mutate(ctx, userEmail, updatedAt, func(set models.LessonSet) bool {
		changed := false
		for _, lessonID := range lessons {
			if set.Add(lessonID) {
				changed = true
			}
		}
		return changed
	})
}

// mutate applies a set mutation under a row lock so two overlapping
// read-modify-write cycles for the same user cannot clobber each other's
// lessons. The row is locked for the duration of the transaction; a missing
// row is treated as the empty set. The upsert is skipped when apply reports
// no change.
func (r *progressRepository) mutate(ctx context.Context, userEmail string, updatedAt time.Time, apply func(models.LessonSet) bool) (models.LessonSet, bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	lockQuery := `SELECT completed_lessons FROM user_progress WHERE user_email = ? FOR UPDATE`

	var rawLessons []byte
	set := models.NewLessonSet()

	err = tx.QueryRowContext(ctx, lockQuery, userEmail).Scan(&rawLessons)
	if err != nil && err != sql.ErrNoRows {
		return nil, false, fmt.Errorf("failed to lock progress record: %w", err)
	}
	if err == nil {
		var lessons []string
		if err := json.Unmarshal(rawLessons, &lessons); err != nil {
			return nil, false, fmt.Errorf("failed to decode completed lessons: %w", err)
		}
		set = models.NewLessonSet(lessons...)
	}

	if !apply(set) {
		return set, false, nil
	}

	rawLessons, err = json.Marshal(set.Slice())
	if err != nil {
		return nil, false, fmt.Errorf("failed to encode completed lessons: %w", err)
	}

	upsertQuery := `
		INSERT INTO user_progress (user_email, completed_lessons, last_updated)
		VALUES (?, ?, ?)
		ON DUPLICATE KEY UPDATE completed_lessons = VALUES(completed_lessons), last_updated = VALUES(last_updated)
	`

	if _, err := tx.ExecContext(ctx, upsertQuery, userEmail, rawLessons, updatedAt); err != nil {
		return nil, false, fmt.Errorf("failed to save progress record: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, false, fmt.Errorf("failed to commit progress record: %w", err)
	}

	return set, true, nil
}

// Delete removes the progress record for a user.
// Deleting an absent record is not an error.
func (r *progressRepository) Delete(ctx context.Context, userEmail string) error {
	query := `DELETE FROM user_progress WHERE user_email = ?`

	_, err := r.db.ExecContext(ctx, query, userEmail)
	if err != nil {
		return fmt.Errorf("failed to delete progress record: %w", err)
	}

	return nil
}
