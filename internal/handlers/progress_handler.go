package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	authMiddleware "github.com/toticourse/backend/internal/auth/middleware"
	"github.com/toticourse/backend/internal/models"
	"go.uber.org/zap"
)

// ProgressService is the interface that wraps methods for progress operations
type ProgressService interface {
	// GetCompleted returns the current completion set for a user
	//
	// "ctx" is the context for the request.
	// "userEmail" is the identity of the user.
	//
	// Never fails; storage faults degrade to the empty set.
	GetCompleted(ctx context.Context, userEmail string) models.LessonSet
	// MarkComplete flips a lesson to completed for a user
	//
	// "ctx" is the context for the request.
	// "userEmail" is the identity of the user.
	// "lessonID" is the ID of the lesson.
	//
	// Returns the resulting completion set.
	MarkComplete(ctx context.Context, userEmail, lessonID string) models.LessonSet
	// UnmarkComplete flips a lesson back to incomplete for a user
	//
	// "ctx" is the context for the request.
	// "userEmail" is the identity of the user.
	// "lessonID" is the ID of the lesson.
	//
	// Returns the resulting completion set.
	UnmarkComplete(ctx context.Context, userEmail, lessonID string) models.LessonSet
	// Clear removes the user's progress record entirely
	//
	// "ctx" is the context for the request.
	// "userEmail" is the identity of the user.
	Clear(ctx context.Context, userEmail string)
	// Reconcile merges the local completion set with the remote one
	//
	// "ctx" is the context for the request.
	// "userEmail" is the identity of the user.
	//
	// Returns the merged completion set; on remote failure the local set is
	// returned unchanged.
	Reconcile(ctx context.Context, userEmail string) models.LessonSet
}

// progressResponse is the JSON shape for completion set responses
type progressResponse struct {
	CompletedLessons []string `json:"completedLessons"`
}

// ProgressHandler handles HTTP requests for progress operations
type ProgressHandler struct {
	BaseHandler
	service ProgressService
}

// NewProgressHandler creates a new progress handler
func NewProgressHandler(svc ProgressService, logger *zap.Logger) *ProgressHandler {
	return &ProgressHandler{
		service:     svc,
		BaseHandler: BaseHandler{Logger: logger},
	}
}

// RegisterRoutes registers all progress handler routes
func (h *ProgressHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/progress", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/", h.GetProgress)
		r.Post("/sync", h.SyncProgress)
		r.Delete("/", h.ClearProgress)
	})
	r.Route("/lessons", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Post("/{id}/complete", h.MarkComplete)
		r.Delete("/{id}/complete", h.UnmarkComplete)
	})
}

// RegisterInternalRoutes registers service-to-service routes guarded by API key
func (h *ProgressHandler) RegisterInternalRoutes(r chi.Router, apiKeyMiddleware func(http.Handler) http.Handler) {
	r.Route("/internal", func(r chi.Router) {
		r.Use(apiKeyMiddleware)
		r.Post("/users/{email}/sync", h.SyncUserProgress)
	})
}

// GetProgress handles GET /progress
// @Summary Get completion set
// @Description Get the authenticated user's completed lesson IDs
// @Tags progress
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} progressResponse "Completion set"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /progress [get]
func (h *ProgressHandler) GetProgress(w http.ResponseWriter, r *http.Request) {
	userEmail, ok := authMiddleware.GetUserEmail(r.Context())
	if !ok {
		h.Logger.Error("user email not found in context")
		h.RespondError(w, http.StatusUnauthorized, "user email not found in context")
		return
	}

	set := h.service.GetCompleted(r.Context(), userEmail)
	h.RespondJSON(w, http.StatusOK, progressResponse{CompletedLessons: set.Slice()})
}

// MarkComplete handles POST /lessons/{id}/complete
// @Summary Mark a lesson completed
// @Description Mark a lesson as completed for the authenticated user; the remote record is written best-effort
// @Tags progress
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Lesson ID"
// @Success 200 {object} progressResponse "Resulting completion set"
// @Failure 400 {object} map[string]string "Bad request"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /lessons/{id}/complete [post]
func (h *ProgressHandler) MarkComplete(w http.ResponseWriter, r *http.Request) {
	userEmail, ok := authMiddleware.GetUserEmail(r.Context())
	if !ok {
		h.Logger.Error("user email not found in context")
		h.RespondError(w, http.StatusUnauthorized, "user email not found in context")
		return
	}

	lessonID := chi.URLParam(r, "id")
	if lessonID == "" {
		h.RespondError(w, http.StatusBadRequest, "lesson ID is required")
		return
	}

	set := h.service.MarkComplete(r.Context(), userEmail, lessonID)
	h.RespondJSON(w, http.StatusOK, progressResponse{CompletedLessons: set.Slice()})
}

// UnmarkComplete handles DELETE /lessons/{id}/complete
// @Summary Unmark a lesson
// @Description Remove a lesson from the authenticated user's completion set
// @Tags progress
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Lesson ID"
// @Success 200 {object} progressResponse "Resulting completion set"
// @Failure 400 {object} map[string]string "Bad request"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /lessons/{id}/complete [delete]
func (h *ProgressHandler) UnmarkComplete(w http.ResponseWriter, r *http.Request) {
	userEmail, ok := authMiddleware.GetUserEmail(r.Context())
	if !ok {
		h.Logger.Error("user email not found in context")
		h.RespondError(w, http.StatusUnauthorized, "user email not found in context")
		return
	}

	lessonID := chi.URLParam(r, "id")
	if lessonID == "" {
		h.RespondError(w, http.StatusBadRequest, "lesson ID is required")
		return
	}

	set := h.service.UnmarkComplete(r.Context(), userEmail, lessonID)
	h.RespondJSON(w, http.StatusOK, progressResponse{CompletedLessons: set.Slice()})
}

// SyncProgress handles POST /progress/sync
// @Summary Reconcile progress
// @Description Merge the local completion set with the remotely recorded one; remote failures degrade silently
// @Tags progress
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} progressResponse "Merged completion set"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /progress/sync [post]
func (h *ProgressHandler) SyncProgress(w http.ResponseWriter, r *http.Request) {
	userEmail, ok := authMiddleware.GetUserEmail(r.Context())
	if !ok {
		h.Logger.Error("user email not found in context")
		h.RespondError(w, http.StatusUnauthorized, "user email not found in context")
		return
	}

	set := h.service.Reconcile(r.Context(), userEmail)
	h.RespondJSON(w, http.StatusOK, progressResponse{CompletedLessons: set.Slice()})
}

// SyncUserProgress handles POST /internal/users/{email}/sync.
// Lets the learning-records system trigger a reconciliation for one user after
// it backfills completions, instead of waiting for the user's next sign-in.
// @Summary Reconcile progress for a user (service-to-service)
// @Description Merge the named user's local completion set with the remotely recorded one
// @Tags internal
// @Produce json
// @Param email path string true "User email"
// @Success 200 {object} progressResponse "Merged completion set"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /internal/users/{email}/sync [post]
func (h *ProgressHandler) SyncUserProgress(w http.ResponseWriter, r *http.Request) {
	userEmail := chi.URLParam(r, "email")
	if userEmail == "" {
		h.RespondError(w, http.StatusBadRequest, "user email is required")
		return
	}

	set := h.service.Reconcile(r.Context(), userEmail)
	h.RespondJSON(w, http.StatusOK, progressResponse{CompletedLessons: set.Slice()})
}

// ClearProgress handles DELETE /progress
// @Summary Clear progress
// @Description Remove the authenticated user's progress record entirely
// @Tags progress
// @Produce json
// @Security ApiKeyAuth
// @Success 204 "No content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /progress [delete]
func (h *ProgressHandler) ClearProgress(w http.ResponseWriter, r *http.Request) {
	userEmail, ok := authMiddleware.GetUserEmail(r.Context())
	if !ok {
		h.Logger.Error("user email not found in context")
		h.RespondError(w, http.StatusUnauthorized, "user email not found in context")
		return
	}

	h.service.Clear(r.Context(), userEmail)
	h.RespondNoContent(w)
}
