package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLessonSet_AddRemove(t *testing.T) {
	set := NewLessonSet()

	assert.True(t, set.Add("l1"))
	assert.False(t, set.Add("l1"), "adding a present lesson is a no-op")
	assert.True(t, set.Contains("l1"))
	assert.Equal(t, []string{"l1"}, set.Slice())

	assert.True(t, set.Remove("l1"))
	assert.False(t, set.Remove("l1"), "removing an absent lesson is a no-op")
	assert.False(t, set.Contains("l1"))
	assert.Empty(t, set.Slice())
}

func TestLessonSet_Union(t *testing.T) {
	tests := []struct {
		name     string
		a        LessonSet
		b        LessonSet
		expected []string
	}{
		{
			name:     "overlapping sets",
			a:        NewLessonSet("l1", "l2"),
			b:        NewLessonSet("l2", "l3"),
			expected: []string{"l1", "l2", "l3"},
		},
		{
			name:     "empty with non-empty",
			a:        NewLessonSet(),
			b:        NewLessonSet("l1"),
			expected: []string{"l1"},
		},
		{
			name:     "both empty",
			a:        NewLessonSet(),
			b:        NewLessonSet(),
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			merged := tt.a.Union(tt.b)

			assert.Equal(t, tt.expected, merged.Slice())
			// Union is commutative
			assert.True(t, merged.Equal(tt.b.Union(tt.a)))
			// Union is idempotent
			assert.True(t, merged.Equal(merged.Union(tt.b)))
		})
	}
}

func TestLessonSet_UnionDoesNotMutateOperands(t *testing.T) {
	a := NewLessonSet("l1")
	b := NewLessonSet("l2")

	_ = a.Union(b)

	assert.Equal(t, []string{"l1"}, a.Slice())
	assert.Equal(t, []string{"l2"}, b.Slice())
}

func TestLessonSet_Equal(t *testing.T) {
	assert.True(t, NewLessonSet("l1", "l2").Equal(NewLessonSet("l2", "l1")))
	assert.False(t, NewLessonSet("l1").Equal(NewLessonSet("l1", "l2")))
	assert.False(t, NewLessonSet("l1").Equal(NewLessonSet("l2")))
	assert.True(t, NewLessonSet().Equal(NewLessonSet()))
}

func TestLessonSet_Clone(t *testing.T) {
	original := NewLessonSet("l1")
	clone := original.Clone()

	clone.Add("l2")

	assert.False(t, original.Contains("l2"))
	assert.True(t, clone.Contains("l1"))
}

func TestLessonSet_SliceSorted(t *testing.T) {
	set := NewLessonSet("l3", "l1", "l2")

	assert.Equal(t, []string{"l1", "l2", "l3"}, set.Slice())
}

func TestUserProgress_Set(t *testing.T) {
	progress := &UserProgress{
		Owner:            "user@example.com",
		CompletedLessons: []string{"l1", "l2", "l1"},
		LastUpdated:      time.Now(),
	}

	set := progress.Set()

	assert.Equal(t, []string{"l1", "l2"}, set.Slice(), "duplicates collapse to set membership")
}
