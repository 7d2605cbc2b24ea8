package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	authMiddleware "github.com/toticourse/backend/internal/auth/middleware"
	"github.com/toticourse/backend/internal/models"
	"github.com/toticourse/backend/internal/services"
	"go.uber.org/zap"
)

// CourseService is the interface that wraps methods for course catalog operations
type CourseService interface {
	// GetCoursesList retrieves all courses in the catalog
	//
	// "ctx" is the context for the request.
	//
	// Returns a list of courses and an error if any.
	GetCoursesList(ctx context.Context) ([]models.CourseListItem, error)
	// GetCourseProjection builds the course tree annotated with completion flags
	//
	// "ctx" is the context for the request.
	// "slug" is the slug of the course.
	// "userEmail" is the identity of the user.
	//
	// Returns the projection and an error if any.
	GetCourseProjection(ctx context.Context, slug, userEmail string) (*models.CourseProjection, error)
}

// CourseHandler handles HTTP requests for course catalog operations
type CourseHandler struct {
	BaseHandler
	service CourseService
}

// NewCourseHandler creates a new course handler
func NewCourseHandler(svc CourseService, logger *zap.Logger) *CourseHandler {
	return &CourseHandler{
		service:     svc,
		BaseHandler: BaseHandler{Logger: logger},
	}
}

// RegisterRoutes registers all course handler routes
func (h *CourseHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/courses", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/", h.GetCoursesList)
		r.Get("/{slug}", h.GetCourse)
	})
}

// GetCoursesList handles GET /courses
// @Summary Get list of courses
// @Description Get all courses in the catalog
// @Tags courses
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} models.CourseListItem "List of courses"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /courses [get]
func (h *CourseHandler) GetCoursesList(w http.ResponseWriter, r *http.Request) {
	courses, err := h.service.GetCoursesList(r.Context())
	if err != nil {
		h.Logger.Error("failed to get courses list", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.RespondJSON(w, http.StatusOK, courses)
}

// GetCourse handles GET /courses/{slug}
// @Summary Get course with completion flags
// @Description Get the course tree annotated with the authenticated user's completion state
// @Tags courses
// @Produce json
// @Security ApiKeyAuth
// @Param slug path string true "Course slug"
// @Success 200 {object} models.CourseProjection "Course projection"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Course not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /courses/{slug} [get]
func (h *CourseHandler) GetCourse(w http.ResponseWriter, r *http.Request) {
	userEmail, ok := authMiddleware.GetUserEmail(r.Context())
	if !ok {
		h.Logger.Error("user email not found in context")
		h.RespondError(w, http.StatusUnauthorized, "user email not found in context")
		return
	}

	slug := chi.URLParam(r, "slug")
	if slug == "" {
		h.RespondError(w, http.StatusBadRequest, "course slug is required")
		return
	}

	projection, err := h.service.GetCourseProjection(r.Context(), slug, userEmail)
	if err != nil {
		if errors.Is(err, services.ErrCourseNotFound) {
			h.RespondError(w, http.StatusNotFound, "course not found")
			return
		}
		h.Logger.Error("failed to get course projection", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.RespondJSON(w, http.StatusOK, projection)
}
