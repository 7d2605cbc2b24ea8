package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// mockActivityRepository is a mock implementation of ActivityRepository
type mockActivityRepository struct {
	registered []string
	closed     []string
	err        error
}

func (m *mockActivityRepository) RegisterSession(ctx context.Context, userEmail, userAgent string) error {
	if m.err != nil {
		return m.err
	}
	m.registered = append(m.registered, userEmail)
	return nil
}

func (m *mockActivityRepository) CloseOpenSession(ctx context.Context, userEmail string) error {
	if m.err != nil {
		return m.err
	}
	m.closed = append(m.closed, userEmail)
	return nil
}

func TestActivityService_RegisterSession(t *testing.T) {
	repo := &mockActivityRepository{}
	svc := NewActivityService(repo, zap.NewNop())

	svc.RegisterSession(context.Background(), "user@example.com", "Mozilla/5.0")

	assert.Equal(t, []string{"user@example.com"}, repo.registered)
}

func TestActivityService_RegisterSession_RepositoryFailureIsAbsorbed(t *testing.T) {
	repo := &mockActivityRepository{err: errors.New("database error")}
	svc := NewActivityService(repo, zap.NewNop())

	// Must not panic or surface the error
	svc.RegisterSession(context.Background(), "user@example.com", "Mozilla/5.0")

	assert.Empty(t, repo.registered)
}

func TestActivityService_CloseSession(t *testing.T) {
	repo := &mockActivityRepository{}
	svc := NewActivityService(repo, zap.NewNop())

	svc.CloseSession(context.Background(), "user@example.com")

	assert.Equal(t, []string{"user@example.com"}, repo.closed)
}

func TestActivityService_CloseSession_RepositoryFailureIsAbsorbed(t *testing.T) {
	repo := &mockActivityRepository{err: errors.New("no open session found")}
	svc := NewActivityService(repo, zap.NewNop())

	svc.CloseSession(context.Background(), "user@example.com")

	assert.Empty(t, repo.closed)
}
