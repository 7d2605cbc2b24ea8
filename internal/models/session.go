package models

import "time"

// UserSession represents a tracked login session for a user
type UserSession struct {
	ID              int        `json:"id"`
	UserEmail       string     `json:"userEmail"`
	UserAgent       string     `json:"userAgent"`
	LoginAt         time.Time  `json:"loginAt"`
	LogoutAt        *time.Time `json:"logoutAt,omitempty"`
	DurationSeconds *int       `json:"durationSeconds,omitempty"`
}

// UserEvent represents an activity event recorded for a user
type UserEvent struct {
	ID        int       `json:"id"`
	UserEmail string    `json:"userEmail"`
	EventType string    `json:"eventType"`
	EventData string    `json:"eventData"`
	CreatedAt time.Time `json:"createdAt"`
}

// Event types recorded by the activity tracker
const (
	EventLessonComplete = "LESSON_COMPLETE"
	EventLessonUnmarked = "LESSON_UNMARKED"
)
