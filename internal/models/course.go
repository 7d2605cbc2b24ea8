package models

// ResourceType represents the type of a lesson resource
type ResourceType string

const (
	ResourceTypePDF      ResourceType = "pdf"
	ResourceTypeLink     ResourceType = "link"
	ResourceTypeDownload ResourceType = "download"
	ResourceTypeAudio    ResourceType = "audio"
	ResourceTypeVideo    ResourceType = "video"
	ResourceTypeQuiz     ResourceType = "quiz"
	ResourceTypeExercise ResourceType = "exercise"
)

// Course represents a course in the catalog
type Course struct {
	ID          string `json:"id"`
	Slug        string `json:"slug"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Thumbnail   string `json:"thumbnail,omitempty"`
	Duration    string `json:"duration,omitempty"`
}

// CourseListItem represents a course in list responses
type CourseListItem struct {
	Slug        string `json:"slug"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Thumbnail   string `json:"thumbnail,omitempty"`
	Duration    string `json:"duration,omitempty"`
}

// Module represents an ordered group of lessons within a course
type Module struct {
	ID          string   `json:"id"`
	CourseID    string   `json:"courseId,omitempty"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Order       int      `json:"order"`
	Lessons     []Lesson `json:"lessons,omitempty"`
}

// Lesson represents a lesson in a course module
type Lesson struct {
	ID          string     `json:"id"`
	ModuleID    string     `json:"moduleId,omitempty"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	VideoURL    string     `json:"videoUrl,omitempty"`
	Duration    string     `json:"duration,omitempty"`
	Order       int        `json:"order"`
	Resources   []Resource `json:"resources,omitempty"`
}

// Resource represents supplementary material attached to a lesson
type Resource struct {
	ID          string       `json:"id"`
	LessonID    string       `json:"lessonId,omitempty"`
	Title       string       `json:"title"`
	Type        ResourceType `json:"type"`
	URL         string       `json:"url"`
	Description string       `json:"description,omitempty"`
}

// CourseProjection is the read-only course tree annotated with completion state.
// It is rebuilt from the catalog and the current completion set on every request
// and is never a mutation point.
type CourseProjection struct {
	ID               string             `json:"id"`
	Slug             string             `json:"slug"`
	Title            string             `json:"title"`
	Description      string             `json:"description"`
	Thumbnail        string             `json:"thumbnail,omitempty"`
	Duration         string             `json:"duration,omitempty"`
	TotalLessons     int                `json:"totalLessons"`
	CompletedLessons int                `json:"completedLessons"`
	Modules          []ModuleProjection `json:"modules"`
}

// ModuleProjection is a module within a course projection
type ModuleProjection struct {
	ID          string             `json:"id"`
	Title       string             `json:"title"`
	Description string             `json:"description,omitempty"`
	Order       int                `json:"order"`
	Lessons     []LessonProjection `json:"lessons"`
}

// LessonProjection is a lesson annotated with its completion flag
type LessonProjection struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	VideoURL    string     `json:"videoUrl,omitempty"`
	Duration    string     `json:"duration,omitempty"`
	Order       int        `json:"order"`
	Completed   bool       `json:"completed"`
	Resources   []Resource `json:"resources,omitempty"`
}
