package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/toticourse/backend/internal/models"
)

// ErrCourseNotFound is returned when a requested course does not exist
var ErrCourseNotFound = errors.New("course not found")

// CourseRepository defines methods for course catalog data access
type CourseRepository interface {
	// GetAll retrieves all courses in the catalog
	//
	// "ctx" is the context for the request.
	//
	// Returns a list of courses and an error if any.
	GetAll(ctx context.Context) ([]models.CourseListItem, error)
	// GetBySlug retrieves a course by slug
	//
	// "ctx" is the context for the request.
	// "slug" is the slug of the course.
	//
	// Returns the course, or nil without error when it does not exist.
	GetBySlug(ctx context.Context, slug string) (*models.Course, error)
	// GetModulesWithLessons retrieves the ordered module and lesson tree for a course
	//
	// "ctx" is the context for the request.
	// "courseID" is the ID of the course.
	//
	// Returns the modules with their lessons and an error if any.
	GetModulesWithLessons(ctx context.Context, courseID string) ([]models.Module, error)
}

// ProgressReader provides the current completion set for projections
type ProgressReader interface {
	// GetCompleted returns the current completion set for a user
	//
	// "ctx" is the context for the request.
	// "userEmail" is the identity of the user.
	//
	// Never fails; storage faults degrade to the empty set.
	GetCompleted(ctx context.Context, userEmail string) models.LessonSet
}

type courseService struct {
	courseRepo CourseRepository
	progress   ProgressReader
}

// NewCourseService creates a new course service
func NewCourseService(courseRepo CourseRepository, progress ProgressReader) *courseService {
	return &courseService{
		courseRepo: courseRepo,
		progress:   progress,
	}
}

// GetCoursesList retrieves all courses in the catalog
func (s *courseService) GetCoursesList(ctx context.Context) ([]models.CourseListItem, error) {
	return s.courseRepo.GetAll(ctx)
}

// GetCourseProjection builds the read-only course tree annotated with the
// user's completion flags. The projection is derived on every call and is
// never the source of truth.
func (s *courseService) GetCourseProjection(ctx context.Context, slug, userEmail string) (*models.CourseProjection, error) {
	course, err := s.courseRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("failed to get course: %w", err)
	}
	if course == nil {
		return nil, ErrCourseNotFound
	}

	modules, err := s.courseRepo.GetModulesWithLessons(ctx, course.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get course tree: %w", err)
	}

	completed := s.progress.GetCompleted(ctx, userEmail)

	projection := &models.CourseProjection{
		ID:          course.ID,
		Slug:        course.Slug,
		Title:       course.Title,
		Description: course.Description,
		Thumbnail:   course.Thumbnail,
		Duration:    course.Duration,
		Modules:     make([]models.ModuleProjection, 0, len(modules)),
	}

	for _, module := range modules {
		mp := models.ModuleProjection{
			ID:          module.ID,
			Title:       module.Title,
			Description: module.Description,
			Order:       module.Order,
			Lessons:     make([]models.LessonProjection, 0, len(module.Lessons)),
		}

		for _, lesson := range module.Lessons {
			isCompleted := completed.Contains(lesson.ID)
			if isCompleted {
				projection.CompletedLessons++
			}
			projection.TotalLessons++

			mp.Lessons = append(mp.Lessons, models.LessonProjection{
				ID:          lesson.ID,
				Title:       lesson.Title,
				Description: lesson.Description,
				VideoURL:    lesson.VideoURL,
				Duration:    lesson.Duration,
				Order:       lesson.Order,
				Completed:   isCompleted,
				Resources:   lesson.Resources,
			})
		}

		projection.Modules = append(projection.Modules, mp)
	}

	return projection, nil
}
