package services

import (
	"context"

	"go.uber.org/zap"
)

// ActivityRepository defines methods for session activity data access
type ActivityRepository interface {
	// RegisterSession inserts a new open session row for a user
	//
	// "ctx" is the context for the request.
	// "userEmail" is the identity of the user.
	// "userAgent" is the client user agent string.
	//
	// Returns an error if any.
	RegisterSession(ctx context.Context, userEmail, userAgent string) error
	// CloseOpenSession closes the most recent open session for a user
	//
	// "ctx" is the context for the request.
	// "userEmail" is the identity of the user.
	//
	// Returns an error if any, including when no open session exists.
	CloseOpenSession(ctx context.Context, userEmail string) error
}

type activityService struct {
	repo   ActivityRepository
	logger *zap.Logger
}

// NewActivityService creates a new activity service
func NewActivityService(repo ActivityRepository, logger *zap.Logger) *activityService {
	return &activityService{
		repo:   repo,
		logger: logger,
	}
}

// RegisterSession records a sign-in. Session tracking is best-effort: failures
// are logged and never surfaced to the caller.
func (s *activityService) RegisterSession(ctx context.Context, userEmail, userAgent string) {
	if err := s.repo.RegisterSession(ctx, userEmail, userAgent); err != nil {
		s.logger.Warn("failed to register session",
			zap.String("user", userEmail),
			zap.Error(err),
		)
	}
}

// CloseSession stamps the most recent open session with its logout time and
// duration. Best-effort like registration.
func (s *activityService) CloseSession(ctx context.Context, userEmail string) {
	if err := s.repo.CloseOpenSession(ctx, userEmail); err != nil {
		s.logger.Warn("failed to close session",
			zap.String("user", userEmail),
			zap.Error(err),
		)
	}
}
