package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/toticourse/backend/internal/models"
)

type courseRepository struct {
	db *sql.DB
}

// NewCourseRepository creates a new course repository
func NewCourseRepository(db *sql.DB) *courseRepository {
	return &courseRepository{
		db: db,
	}
}

// GetAll retrieves all courses in the catalog
func (r *courseRepository) GetAll(ctx context.Context) ([]models.CourseListItem, error) {
	query := `SELECT slug, title, description, thumbnail, duration FROM courses ORDER BY title`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get courses: %w", err)
	}
	defer rows.Close()

	courses := make([]models.CourseListItem, 0)
	for rows.Next() {
		var course models.CourseListItem
		if err := rows.Scan(&course.Slug, &course.Title, &course.Description, &course.Thumbnail, &course.Duration); err != nil {
			return nil, fmt.Errorf("failed to scan course: %w", err)
		}
		courses = append(courses, course)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate courses: %w", err)
	}

	return courses, nil
}

// GetBySlug retrieves a course by slug.
// Returns nil without error when the course does not exist.
func (r *courseRepository) GetBySlug(ctx context.Context, slug string) (*models.Course, error) {
	query := `SELECT id, slug, title, description, thumbnail, duration FROM courses WHERE slug = ?`

	course := &models.Course{}
	err := r.db.QueryRowContext(ctx, query, slug).Scan(
		&course.ID,
		&course.Slug,
		&course.Title,
		&course.Description,
		&course.Thumbnail,
		&course.Duration,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get course: %w", err)
	}

	return course, nil
}

// GetModulesWithLessons retrieves the ordered module and lesson tree for a course
func (r *courseRepository) GetModulesWithLessons(ctx context.Context, courseID string) ([]models.Module, error) {
	moduleQuery := `
		SELECT id, title, description, position
		FROM modules
		WHERE course_id = ?
		ORDER BY position
	`

	rows, err := r.db.QueryContext(ctx, moduleQuery, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to get modules: %w", err)
	}
	defer rows.Close()

	modules := make([]models.Module, 0)
	moduleIndex := make(map[string]int)
	for rows.Next() {
		var module models.Module
		if err := rows.Scan(&module.ID, &module.Title, &module.Description, &module.Order); err != nil {
			return nil, fmt.Errorf("failed to scan module: %w", err)
		}
		module.Lessons = make([]models.Lesson, 0)
		moduleIndex[module.ID] = len(modules)
		modules = append(modules, module)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate modules: %w", err)
	}

	lessonQuery := `
		SELECT l.id, l.module_id, l.title, l.description, l.video_url, l.duration, l.position
		FROM lessons l
		JOIN modules m ON l.module_id = m.id
		WHERE m.course_id = ?
		ORDER BY l.position
	`

	lessonRows, err := r.db.QueryContext(ctx, lessonQuery, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to get lessons: %w", err)
	}
	defer lessonRows.Close()

	lessonIndex := make(map[string][2]int)
	for lessonRows.Next() {
		var lesson models.Lesson
		if err := lessonRows.Scan(&lesson.ID, &lesson.ModuleID, &lesson.Title, &lesson.Description, &lesson.VideoURL, &lesson.Duration, &lesson.Order); err != nil {
			return nil, fmt.Errorf("failed to scan lesson: %w", err)
		}
		idx, ok := moduleIndex[lesson.ModuleID]
		if !ok {
			continue
		}
		lessonIndex[lesson.ID] = [2]int{idx, len(modules[idx].Lessons)}
		modules[idx].Lessons = append(modules[idx].Lessons, lesson)
	}
	if err := lessonRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate lessons: %w", err)
	}

	resourceQuery := `
		SELECT res.id, res.lesson_id, res.title, res.type, res.url, res.description
		FROM resources res
		JOIN lessons l ON res.lesson_id = l.id
		JOIN modules m ON l.module_id = m.id
		WHERE m.course_id = ?
		ORDER BY res.id
	`

	resourceRows, err := r.db.QueryContext(ctx, resourceQuery, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to get resources: %w", err)
	}
	defer resourceRows.Close()

	for resourceRows.Next() {
		var resource models.Resource
		if err := resourceRows.Scan(&resource.ID, &resource.LessonID, &resource.Title, &resource.Type, &resource.URL, &resource.Description); err != nil {
			return nil, fmt.Errorf("failed to scan resource: %w", err)
		}
		pos, ok := lessonIndex[resource.LessonID]
		if !ok {
			continue
		}
		lesson := &modules[pos[0]].Lessons[pos[1]]
		lesson.Resources = append(lesson.Resources, resource)
	}
	if err := resourceRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate resources: %w", err)
	}

	return modules, nil
}
