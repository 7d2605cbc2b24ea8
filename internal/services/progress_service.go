package services

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/toticourse/backend/internal/models"
	"go.uber.org/zap"
)

// remoteWriteTimeout bounds fire-and-forget remote writes so an abandoned
// request cannot hold a goroutine forever
const remoteWriteTimeout = 10 * time.Second

// ProgressRepository defines methods for progress record data access.
// The mutating operations are atomic per user so overlapping requests cannot
// clobber each other's lessons.
type ProgressRepository interface {
	// Get retrieves the progress record for a user
	//
	// "ctx" is the context for the request.
	// "userEmail" is the identity of the user.
	//
	// Returns the record, or nil without error when no record exists.
	Get(ctx context.Context, userEmail string) (*models.UserProgress, error)
	// AddLesson atomically adds a lesson to the user's completion set
	//
	// "ctx" is the context for the request.
	// "userEmail" is the identity of the user.
	// "lessonID" is the ID of the lesson.
	// "updatedAt" is the record timestamp to store.
	//
	// Returns the resulting set, whether the lesson was absent before, and an
	// error if any.
	AddLesson(ctx context.Context, userEmail, lessonID string, updatedAt time.Time) (models.LessonSet, bool, error)
	// RemoveLesson atomically removes a lesson from the user's completion set
	//
	// "ctx" is the context for the request.
	// "userEmail" is the identity of the user.
	// "lessonID" is the ID of the lesson.
	// "updatedAt" is the record timestamp to store.
	//
	// Returns the resulting set, whether the lesson was present before, and an
	// error if any.
	RemoveLesson(ctx context.Context, userEmail, lessonID string, updatedAt time.Time) (models.LessonSet, bool, error)
	// MergeLessons atomically unions the given lessons into the user's completion set
	//
	// "ctx" is the context for the request.
	// "userEmail" is the identity of the user.
	// "lessons" are the lesson IDs to union in.
	// "updatedAt" is the record timestamp to store.
	//
	// Returns the resulting set, whether the union added anything, and an
	// error if any.
	MergeLessons(ctx context.Context, userEmail string, lessons []string, updatedAt time.Time) (models.LessonSet, bool, error)
	// Delete removes the progress record for a user
	//
	// "ctx" is the context for the request.
	// "userEmail" is the identity of the user.
	//
	// Returns an error if any.
	Delete(ctx context.Context, userEmail string) error
}

// CompletionGateway defines the remote completion operations the service depends on
type CompletionGateway interface {
	// FetchCompletions retrieves the remotely recorded completion set for a user
	//
	// "ctx" is the context for the request.
	// "userEmail" is the identity of the user.
	//
	// Returns the set and an error. A failure is never conflated with an empty set.
	FetchCompletions(ctx context.Context, userEmail string) (models.LessonSet, error)
	// RecordCompletion records one completion fact remotely
	//
	// "ctx" is the context for the request.
	// "userEmail" is the identity of the user.
	// "lessonID" is the ID of the completed lesson.
	//
	// Returns an error if any. Duplicate records are not an error.
	RecordCompletion(ctx context.Context, userEmail, lessonID string) error
}

// EventRecorder defines methods for activity event persistence
type EventRecorder interface {
	// InsertEvent records an activity event for a user
	//
	// "ctx" is the context for the request.
	// "userEmail" is the identity of the user.
	// "eventType" is the type of the event.
	// "eventData" is the JSON-encoded event payload.
	//
	// Returns an error if any.
	InsertEvent(ctx context.Context, userEmail, eventType, eventData string) error
}

type progressService struct {
	repo    ProgressRepository
	gateway CompletionGateway
	events  EventRecorder
	logger  *zap.Logger
	now     func() time.Time

	// remoteWrites tracks in-flight fire-and-forget writes; tests wait on it
	remoteWrites sync.WaitGroup
}

// NewProgressService creates a new progress service
func NewProgressService(
	repo ProgressRepository,
	gateway CompletionGateway,
	events EventRecorder,
	logger *zap.Logger,
) *progressService {
	return &progressService{
		repo:    repo,
		gateway: gateway,
		events:  events,
		logger:  logger,
		now:     time.Now,
	}
}

// GetCompleted returns the current completion set for a user.
// Storage faults degrade to the empty set: progress tracking is an enhancement,
// never a blocking capability.
func (s *progressService) GetCompleted(ctx context.Context, userEmail string) models.LessonSet {
	return s.loadSet(ctx, userEmail)
}

// MarkComplete flips a lesson to completed for a user.
// The remote write is fired asynchronously and its failure is logged only; the
// local store is updated synchronously so the caller's next read observes the
// mark regardless of remote outcome. Marking an already-completed lesson is a
// no-op. Returns the resulting completion set.
func (s *progressService) MarkComplete(ctx context.Context, userEmail, lessonID string) models.LessonSet {
	if userEmail == "" {
		s.logger.Warn("mark complete rejected: no user identity")
		return models.NewLessonSet()
	}

	// Best-effort remote mirroring, never blocks the local transition
	s.remoteWrites.Add(1)
	go func() {
		defer s.remoteWrites.Done()
		writeCtx, cancel := context.WithTimeout(context.Background(), remoteWriteTimeout)
		defer cancel()

		if err := s.gateway.RecordCompletion(writeCtx, userEmail, lessonID); err != nil {
			s.logger.Warn("remote completion write failed",
				zap.String("user", userEmail),
				zap.String("lesson", lessonID),
				zap.Error(err),
			)
		}
	}()

	set, added, err := s.repo.AddLesson(ctx, userEmail, lessonID, s.now().UTC())
	if err != nil {
		// Storage fault: the caller still observes the optimistic state
		s.logger.Error("failed to save progress record",
			zap.String("user", userEmail),
			zap.Error(err),
		)
		set = s.loadSet(ctx, userEmail)
		set.Add(lessonID)
		return set
	}
	if added {
		s.recordEvent(userEmail, models.EventLessonComplete, lessonID)
	}

	return set
}

// UnmarkComplete flips a lesson back to incomplete for a user.
// The local record is updated synchronously; no remote retraction is issued
// because the gateway contract only records completions. Unmarking an absent
// lesson is a no-op. Returns the resulting completion set.
func (s *progressService) UnmarkComplete(ctx context.Context, userEmail, lessonID string) models.LessonSet {
	if userEmail == "" {
		s.logger.Warn("unmark complete rejected: no user identity")
		return models.NewLessonSet()
	}

	set, removed, err := s.repo.RemoveLesson(ctx, userEmail, lessonID, s.now().UTC())
	if err != nil {
		s.logger.Error("failed to save progress record",
			zap.String("user", userEmail),
			zap.Error(err),
		)
		set = s.loadSet(ctx, userEmail)
		set.Remove(lessonID)
		return set
	}
	if removed {
		s.recordEvent(userEmail, models.EventLessonUnmarked, lessonID)
	}

	return set
}

// Clear removes the user's progress record entirely
func (s *progressService) Clear(ctx context.Context, userEmail string) {
	if err := s.repo.Delete(ctx, userEmail); err != nil {
		s.logger.Error("failed to clear progress record",
			zap.String("user", userEmail),
			zap.Error(err),
		)
	}
}

// Reconcile merges the local completion set with the remote one.
//
// On a remote fetch failure reconciliation aborts silently and local state is
// left untouched, so losing connectivity never makes earned progress
// disappear. On success the local record is rewritten only when the union
// added something, which makes the operation idempotent. The merged set is
// always a superset of the local one.
func (s *progressService) Reconcile(ctx context.Context, userEmail string) models.LessonSet {
	local := s.loadSet(ctx, userEmail)

	remote, err := s.gateway.FetchCompletions(ctx, userEmail)
	if err != nil {
		s.logger.Warn("reconciliation skipped: remote fetch failed",
			zap.String("user", userEmail),
			zap.Error(err),
		)
		return local
	}

	merged := local.Union(remote)
	if merged.Equal(local) {
		return merged
	}

	// The merge re-reads the row under lock, so lessons marked by a
	// concurrent request survive the write-back
	stored, _, err := s.repo.MergeLessons(ctx, userEmail, remote.Slice(), s.now().UTC())
	if err != nil {
		s.logger.Error("failed to save progress record",
			zap.String("user", userEmail),
			zap.Error(err),
		)
		return merged
	}

	return stored
}

// loadSet reads the stored completion set, degrading storage faults to the
// empty set
func (s *progressService) loadSet(ctx context.Context, userEmail string) models.LessonSet {
	progress, err := s.repo.Get(ctx, userEmail)
	if err != nil {
		s.logger.Error("failed to read progress record, treating as empty",
			zap.String("user", userEmail),
			zap.Error(err),
		)
		return models.NewLessonSet()
	}
	if progress == nil {
		return models.NewLessonSet()
	}
	return progress.Set()
}

// recordEvent writes an activity event fire-and-forget
func (s *progressService) recordEvent(userEmail, eventType, lessonID string) {
	payload, err := json.Marshal(map[string]string{"lesson_id": lessonID})
	if err != nil {
		s.logger.Error("failed to encode event payload", zap.Error(err))
		return
	}

	s.remoteWrites.Add(1)
	go func() {
		defer s.remoteWrites.Done()
		writeCtx, cancel := context.WithTimeout(context.Background(), remoteWriteTimeout)
		defer cancel()

		if err := s.events.InsertEvent(writeCtx, userEmail, eventType, string(payload)); err != nil {
			s.logger.Warn("failed to record activity event",
				zap.String("user", userEmail),
				zap.String("event", eventType),
				zap.Error(err),
			)
		}
	}()
}
