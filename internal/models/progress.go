package models

import (
	"sort"
	"time"
)

// LessonSet is the set of lesson identifiers a user has completed.
// The zero value is not usable; use NewLessonSet.
type LessonSet map[string]struct{}

// NewLessonSet creates a lesson set from the given lesson IDs
func NewLessonSet(lessonIDs ...string) LessonSet {
	s := make(LessonSet, len(lessonIDs))
	for _, id := range lessonIDs {
		s[id] = struct{}{}
	}
	return s
}

// Contains reports whether the set includes the given lesson ID
func (s LessonSet) Contains(lessonID string) bool {
	_, ok := s[lessonID]
	return ok
}

// Add inserts a lesson ID and reports whether it was absent before
func (s LessonSet) Add(lessonID string) bool {
	if _, ok := s[lessonID]; ok {
		return false
	}
	s[lessonID] = struct{}{}
	return true
}

// Remove deletes a lesson ID and reports whether it was present before
func (s LessonSet) Remove(lessonID string) bool {
	if _, ok := s[lessonID]; !ok {
		return false
	}
	delete(s, lessonID)
	return true
}

// Union returns a new set containing every lesson ID present in either set
func (s LessonSet) Union(other LessonSet) LessonSet {
	merged := make(LessonSet, len(s)+len(other))
	for id := range s {
		merged[id] = struct{}{}
	}
	for id := range other {
		merged[id] = struct{}{}
	}
	return merged
}

// Equal reports whether both sets hold exactly the same lesson IDs
func (s LessonSet) Equal(other LessonSet) bool {
	if len(s) != len(other) {
		return false
	}
	for id := range s {
		if _, ok := other[id]; !ok {
			return false
		}
	}
	return true
}

// Clone returns an independent copy of the set
func (s LessonSet) Clone() LessonSet {
	c := make(LessonSet, len(s))
	for id := range s {
		c[id] = struct{}{}
	}
	return c
}

// Slice returns the lesson IDs in sorted order for stable storage and responses
func (s LessonSet) Slice() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// UserProgress is the durable per-user progress record
type UserProgress struct {
	Owner            string    `json:"owner"`
	CompletedLessons []string  `json:"completedLessons"`
	LastUpdated      time.Time `json:"lastUpdated"`
}

// Set returns the completed lessons as a lesson set
func (p *UserProgress) Set() LessonSet {
	return NewLessonSet(p.CompletedLessons...)
}
