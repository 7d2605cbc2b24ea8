package gateway

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/toticourse/backend/internal/models"
)

// fakeClock is a manually advanced clock for deterministic expiry tests
type fakeClock struct {
	current time.Time
}

func (c *fakeClock) Now() time.Time { return c.current }

func (c *fakeClock) Advance(d time.Duration) { c.current = c.current.Add(d) }

// countingGateway is a stub gateway that counts delegated calls
type countingGateway struct {
	sets       map[string]models.LessonSet
	fetchErr   error
	recordErr  error
	fetchCalls int
}

func (g *countingGateway) FetchCompletions(ctx context.Context, userEmail string) (models.LessonSet, error) {
	g.fetchCalls++
	if g.fetchErr != nil {
		return nil, g.fetchErr
	}
	set, ok := g.sets[userEmail]
	if !ok {
		return models.NewLessonSet(), nil
	}
	return set.Clone(), nil
}

func (g *countingGateway) RecordCompletion(ctx context.Context, userEmail, lessonID string) error {
	return g.recordErr
}

func setupCachedGateway(ttl time.Duration) (*cachedGateway, *countingGateway, *fakeClock) {
	next := &countingGateway{sets: map[string]models.LessonSet{
		"user@example.com": models.NewLessonSet("l1"),
	}}
	clock := &fakeClock{current: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	return NewCachedGateway(next, ttl, clock), next, clock
}

func TestCachedGateway_FetchCompletions_CacheHit(t *testing.T) {
	cache, next, _ := setupCachedGateway(5 * time.Minute)

	first, err := cache.FetchCompletions(context.Background(), "user@example.com")
	assert.NoError(t, err)
	second, err := cache.FetchCompletions(context.Background(), "user@example.com")
	assert.NoError(t, err)

	assert.True(t, first.Equal(second))
	assert.Equal(t, 1, next.fetchCalls)
}

func TestCachedGateway_FetchCompletions_Expiry(t *testing.T) {
	cache, next, clock := setupCachedGateway(5 * time.Minute)

	_, err := cache.FetchCompletions(context.Background(), "user@example.com")
	assert.NoError(t, err)

	clock.Advance(5*time.Minute + time.Second)

	next.sets["user@example.com"] = models.NewLessonSet("l1", "l2")
	set, err := cache.FetchCompletions(context.Background(), "user@example.com")
	assert.NoError(t, err)

	assert.Equal(t, 2, next.fetchCalls)
	assert.Equal(t, []string{"l1", "l2"}, set.Slice())
}

func TestCachedGateway_FetchCompletions_FailureNotCached(t *testing.T) {
	cache, next, _ := setupCachedGateway(5 * time.Minute)
	next.fetchErr = errors.New("remote unavailable")

	_, err := cache.FetchCompletions(context.Background(), "user@example.com")
	assert.Error(t, err)

	next.fetchErr = nil
	set, err := cache.FetchCompletions(context.Background(), "user@example.com")
	assert.NoError(t, err)

	assert.Equal(t, []string{"l1"}, set.Slice())
	assert.Equal(t, 2, next.fetchCalls)
}

func TestCachedGateway_RecordCompletion_InvalidatesUser(t *testing.T) {
	cache, next, _ := setupCachedGateway(5 * time.Minute)

	_, err := cache.FetchCompletions(context.Background(), "user@example.com")
	assert.NoError(t, err)

	next.sets["user@example.com"] = models.NewLessonSet("l1", "l2")
	assert.NoError(t, cache.RecordCompletion(context.Background(), "user@example.com", "l2"))

	set, err := cache.FetchCompletions(context.Background(), "user@example.com")
	assert.NoError(t, err)

	assert.Equal(t, []string{"l1", "l2"}, set.Slice())
	assert.Equal(t, 2, next.fetchCalls)
}

func TestCachedGateway_RecordCompletion_FailureKeepsCache(t *testing.T) {
	cache, next, _ := setupCachedGateway(5 * time.Minute)

	_, err := cache.FetchCompletions(context.Background(), "user@example.com")
	assert.NoError(t, err)

	next.recordErr = errors.New("remote unavailable")
	assert.Error(t, cache.RecordCompletion(context.Background(), "user@example.com", "l2"))

	_, err = cache.FetchCompletions(context.Background(), "user@example.com")
	assert.NoError(t, err)
	assert.Equal(t, 1, next.fetchCalls, "failed write does not drop the cached entry")
}

func TestCachedGateway_IsolatesUsers(t *testing.T) {
	cache, next, _ := setupCachedGateway(5 * time.Minute)
	next.sets["other@example.com"] = models.NewLessonSet("l9")

	_, err := cache.FetchCompletions(context.Background(), "user@example.com")
	assert.NoError(t, err)
	_, err = cache.FetchCompletions(context.Background(), "other@example.com")
	assert.NoError(t, err)
	assert.Equal(t, 2, next.fetchCalls)

	cache.Invalidate("user@example.com")

	_, err = cache.FetchCompletions(context.Background(), "other@example.com")
	assert.NoError(t, err)
	assert.Equal(t, 2, next.fetchCalls, "invalidation touches only the named user")
}

func TestCachedGateway_CachedSetIsACopy(t *testing.T) {
	cache, _, _ := setupCachedGateway(5 * time.Minute)

	first, err := cache.FetchCompletions(context.Background(), "user@example.com")
	assert.NoError(t, err)
	first.Add("mutated")

	second, err := cache.FetchCompletions(context.Background(), "user@example.com")
	assert.NoError(t, err)

	assert.False(t, second.Contains("mutated"))
}
