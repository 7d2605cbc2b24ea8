package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	authMiddleware "github.com/toticourse/backend/internal/auth/middleware"
	"github.com/toticourse/backend/internal/models"
	"go.uber.org/zap"
)

// ActivityService is the interface that wraps methods for session tracking
type ActivityService interface {
	// RegisterSession records a sign-in for a user
	//
	// "ctx" is the context for the request.
	// "userEmail" is the identity of the user.
	// "userAgent" is the client user agent string.
	//
	// Best-effort; failures are logged, not surfaced.
	RegisterSession(ctx context.Context, userEmail, userAgent string)
	// CloseSession closes the most recent open session for a user
	//
	// "ctx" is the context for the request.
	// "userEmail" is the identity of the user.
	//
	// Best-effort; failures are logged, not surfaced.
	CloseSession(ctx context.Context, userEmail string)
}

// ProgressSyncer runs reconciliation on session establishment
type ProgressSyncer interface {
	// Reconcile merges the local completion set with the remote one
	//
	// "ctx" is the context for the request.
	// "userEmail" is the identity of the user.
	//
	// Returns the merged completion set.
	Reconcile(ctx context.Context, userEmail string) models.LessonSet
}

// ActivityHandler handles HTTP requests for session tracking
type ActivityHandler struct {
	BaseHandler
	service ActivityService
	syncer  ProgressSyncer
}

// NewActivityHandler creates a new activity handler
func NewActivityHandler(svc ActivityService, syncer ProgressSyncer, logger *zap.Logger) *ActivityHandler {
	return &ActivityHandler{
		service:     svc,
		syncer:      syncer,
		BaseHandler: BaseHandler{Logger: logger},
	}
}

// RegisterRoutes registers all activity handler routes
func (h *ActivityHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/sessions", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Post("/", h.RegisterSession)
		r.Delete("/current", h.CloseSession)
	})
}

// RegisterSession handles POST /sessions
// @Summary Register a session
// @Description Record a sign-in and reconcile local progress with the remote record
// @Tags sessions
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} progressResponse "Reconciled completion set"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /sessions [post]
func (h *ActivityHandler) RegisterSession(w http.ResponseWriter, r *http.Request) {
	userEmail, ok := authMiddleware.GetUserEmail(r.Context())
	if !ok {
		h.Logger.Error("user email not found in context")
		h.RespondError(w, http.StatusUnauthorized, "user email not found in context")
		return
	}

	h.service.RegisterSession(r.Context(), userEmail, r.UserAgent())

	// Sign-in is the reconciliation point: merge remote completions into the
	// local record exactly once per authenticated-session establishment
	set := h.syncer.Reconcile(r.Context(), userEmail)
	h.RespondJSON(w, http.StatusOK, progressResponse{CompletedLessons: set.Slice()})
}

// CloseSession handles DELETE /sessions/current
// @Summary Close the current session
// @Description Stamp the most recent open session with its logout time and duration
// @Tags sessions
// @Produce json
// @Security ApiKeyAuth
// @Success 204 "No content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /sessions/current [delete]
func (h *ActivityHandler) CloseSession(w http.ResponseWriter, r *http.Request) {
	userEmail, ok := authMiddleware.GetUserEmail(r.Context())
	if !ok {
		h.Logger.Error("user email not found in context")
		h.RespondError(w, http.StatusUnauthorized, "user email not found in context")
		return
	}

	h.service.CloseSession(r.Context(), userEmail)
	h.RespondNoContent(w)
}
