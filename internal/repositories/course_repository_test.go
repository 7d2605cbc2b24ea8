package repositories

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/toticourse/backend/internal/models"
)

// setupCourseTestRepository creates a course repository with a mock database
func setupCourseTestRepository(t *testing.T) (*courseRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	repo := NewCourseRepository(db)

	cleanup := func() {
		db.Close()
	}

	return repo, mock, cleanup
}

func TestNewCourseRepository(t *testing.T) {
	db := &sql.DB{}

	repo := NewCourseRepository(db)

	assert.NotNil(t, repo)
	assert.Equal(t, db, repo.db)
}

func TestCourseRepository_GetAll(t *testing.T) {
	tests := []struct {
		name          string
		setupMock     func(sqlmock.Sqlmock)
		expectedError bool
		expected      []models.CourseListItem
	}{
		{
			name: "success",
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"slug", "title", "description", "thumbnail", "duration"}).
					AddRow("go-basics", "Go Basics", "Intro course", "/img/go.png", "4h").
					AddRow("sql-101", "SQL 101", "Query course", "/img/sql.png", "2h")
				mock.ExpectQuery(`SELECT slug, title, description, thumbnail, duration FROM courses ORDER BY title`).
					WillReturnRows(rows)
			},
			expectedError: false,
			expected: []models.CourseListItem{
				{Slug: "go-basics", Title: "Go Basics", Description: "Intro course", Thumbnail: "/img/go.png", Duration: "4h"},
				{Slug: "sql-101", Title: "SQL 101", Description: "Query course", Thumbnail: "/img/sql.png", Duration: "2h"},
			},
		},
		{
			name: "success - empty catalog",
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"slug", "title", "description", "thumbnail", "duration"})
				mock.ExpectQuery(`SELECT slug, title, description, thumbnail, duration FROM courses ORDER BY title`).
					WillReturnRows(rows)
			},
			expectedError: false,
			expected:      []models.CourseListItem{},
		},
		{
			name: "database error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT slug, title, description, thumbnail, duration FROM courses ORDER BY title`).
					WillReturnError(errors.New("database error"))
			},
			expectedError: true,
			expected:      nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupCourseTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			courses, err := repo.GetAll(context.Background())

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.expected, courses)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestCourseRepository_GetBySlug(t *testing.T) {
	tests := []struct {
		name          string
		slug          string
		setupMock     func(sqlmock.Sqlmock)
		expectedError bool
		expected      *models.Course
	}{
		{
			name: "success",
			slug: "go-basics",
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"id", "slug", "title", "description", "thumbnail", "duration"}).
					AddRow("c1", "go-basics", "Go Basics", "Intro course", "/img/go.png", "4h")
				mock.ExpectQuery(`SELECT id, slug, title, description, thumbnail, duration FROM courses WHERE slug = \?`).
					WithArgs("go-basics").
					WillReturnRows(rows)
			},
			expectedError: false,
			expected: &models.Course{
				ID:          "c1",
				Slug:        "go-basics",
				Title:       "Go Basics",
				Description: "Intro course",
				Thumbnail:   "/img/go.png",
				Duration:    "4h",
			},
		},
		{
			name: "success - course not found",
			slug: "missing",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, slug, title, description, thumbnail, duration FROM courses WHERE slug = \?`).
					WithArgs("missing").
					WillReturnError(sql.ErrNoRows)
			},
			expectedError: false,
			expected:      nil,
		},
		{
			name: "database error",
			slug: "go-basics",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, slug, title, description, thumbnail, duration FROM courses WHERE slug = \?`).
					WithArgs("go-basics").
					WillReturnError(errors.New("database error"))
			},
			expectedError: true,
			expected:      nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupCourseTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			course, err := repo.GetBySlug(context.Background(), tt.slug)

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.expected, course)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestCourseRepository_GetModulesWithLessons(t *testing.T) {
	repo, mock, cleanup := setupCourseTestRepository(t)
	defer cleanup()

	moduleRows := sqlmock.NewRows([]string{"id", "title", "description", "position"}).
		AddRow("m1", "Module One", "First module", 1).
		AddRow("m2", "Module Two", "Second module", 2)
	mock.ExpectQuery(`SELECT id, title, description, position\s+FROM modules\s+WHERE course_id = \?`).
		WithArgs("c1").
		WillReturnRows(moduleRows)

	lessonRows := sqlmock.NewRows([]string{"id", "module_id", "title", "description", "video_url", "duration", "position"}).
		AddRow("l1", "m1", "Lesson One", "", "https://cdn/v1", "10m", 1).
		AddRow("l2", "m1", "Lesson Two", "", "https://cdn/v2", "12m", 2).
		AddRow("l3", "m2", "Lesson Three", "", "https://cdn/v3", "8m", 1)
	mock.ExpectQuery(`SELECT l.id, l.module_id, l.title, l.description, l.video_url, l.duration, l.position\s+FROM lessons l`).
		WithArgs("c1").
		WillReturnRows(lessonRows)

	resourceRows := sqlmock.NewRows([]string{"id", "lesson_id", "title", "type", "url", "description"}).
		AddRow("r1", "l1", "Slides", "pdf", "https://cdn/slides.pdf", "Lecture slides")
	mock.ExpectQuery(`SELECT res.id, res.lesson_id, res.title, res.type, res.url, res.description\s+FROM resources res`).
		WithArgs("c1").
		WillReturnRows(resourceRows)

	modules, err := repo.GetModulesWithLessons(context.Background(), "c1")

	assert.NoError(t, err)
	require.Len(t, modules, 2)

	assert.Equal(t, "m1", modules[0].ID)
	require.Len(t, modules[0].Lessons, 2)
	assert.Equal(t, "l1", modules[0].Lessons[0].ID)
	require.Len(t, modules[0].Lessons[0].Resources, 1)
	assert.Equal(t, "Slides", modules[0].Lessons[0].Resources[0].Title)

	assert.Equal(t, "m2", modules[1].ID)
	require.Len(t, modules[1].Lessons, 1)
	assert.Equal(t, "l3", modules[1].Lessons[0].ID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseRepository_GetModulesWithLessons_NoModules(t *testing.T) {
	repo, mock, cleanup := setupCourseTestRepository(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT id, title, description, position\s+FROM modules\s+WHERE course_id = \?`).
		WithArgs("c1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "description", "position"}))
	mock.ExpectQuery(`SELECT l.id, l.module_id, l.title, l.description, l.video_url, l.duration, l.position\s+FROM lessons l`).
		WithArgs("c1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "module_id", "title", "description", "video_url", "duration", "position"}))
	mock.ExpectQuery(`SELECT res.id, res.lesson_id, res.title, res.type, res.url, res.description\s+FROM resources res`).
		WithArgs("c1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "lesson_id", "title", "type", "url", "description"}))

	modules, err := repo.GetModulesWithLessons(context.Background(), "c1")

	assert.NoError(t, err)
	assert.Empty(t, modules)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseRepository_GetModulesWithLessons_ModuleQueryError(t *testing.T) {
	repo, mock, cleanup := setupCourseTestRepository(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT id, title, description, position\s+FROM modules\s+WHERE course_id = \?`).
		WithArgs("c1").
		WillReturnError(errors.New("database error"))

	modules, err := repo.GetModulesWithLessons(context.Background(), "c1")

	assert.Error(t, err)
	assert.Nil(t, modules)
	assert.NoError(t, mock.ExpectationsWereMet())
}
