// Package gateway is the sole channel through which the service exchanges
// completion facts with the remote learning-records system.
package gateway

import (
	"context"
	"fmt"

	"github.com/toticourse/backend/internal/models"
)

// Gateway defines the two-operation contract against the remote learning-records API
type Gateway interface {
	// FetchCompletions retrieves all completion facts recorded remotely for a user.
	//
	// "ctx" is the context for the request.
	// "userEmail" is the identity of the user.
	//
	// Returns the set of completed lesson IDs. A failure is reported as an error
	// and is never conflated with an empty set.
	FetchCompletions(ctx context.Context, userEmail string) (models.LessonSet, error)
	// RecordCompletion records a single completion fact remotely.
	//
	// "ctx" is the context for the request.
	// "userEmail" is the identity of the user.
	// "lessonID" is the ID of the completed lesson.
	//
	// At-least-once semantics: recording the same pair twice is not an error.
	RecordCompletion(ctx context.Context, userEmail, lessonID string) error
}

// ErrorKind classifies gateway failures so callers can branch exhaustively
type ErrorKind string

const (
	// KindUnavailable means the remote system could not be reached
	KindUnavailable ErrorKind = "unavailable"
	// KindRejected means the remote system answered with a non-success status
	KindRejected ErrorKind = "rejected"
	// KindDecode means the remote answer could not be decoded
	KindDecode ErrorKind = "decode"
)

// Error is a tagged error returned by gateway implementations
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("remote gateway %s: %s", e.Kind, e.Message)
}
