package gateway

import (
	"context"
	"sync"
	"time"

	"github.com/toticourse/backend/internal/models"
)

// Clock abstracts the time source so cache expiry is testable
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns a clock backed by the wall clock
func SystemClock() Clock { return systemClock{} }

type cacheEntry struct {
	set     models.LessonSet
	expires time.Time
}

// cachedGateway is a read-through TTL cache in front of another gateway.
// Entries are keyed by user identity and invalidated per user on writes,
// never by substring matching over all keys.
type cachedGateway struct {
	next  Gateway
	ttl   time.Duration
	clock Clock

	mu      sync.Mutex
	entries map[string]cacheEntry
}

// NewCachedGateway wraps a gateway with a per-user TTL cache for fetches
func NewCachedGateway(next Gateway, ttl time.Duration, clock Clock) *cachedGateway {
	return &cachedGateway{
		next:    next,
		ttl:     ttl,
		clock:   clock,
		entries: make(map[string]cacheEntry),
	}
}

// FetchCompletions returns the cached set if fresh, otherwise delegates and caches.
// Failures are never cached.
func (c *cachedGateway) FetchCompletions(ctx context.Context, userEmail string) (models.LessonSet, error) {
	c.mu.Lock()
	entry, ok := c.entries[userEmail]
	if ok && c.clock.Now().Before(entry.expires) {
		set := entry.set.Clone()
		c.mu.Unlock()
		return set, nil
	}
	if ok {
		delete(c.entries, userEmail)
	}
	c.mu.Unlock()

	set, err := c.next.FetchCompletions(ctx, userEmail)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.entries[userEmail] = cacheEntry{set: set.Clone(), expires: c.clock.Now().Add(c.ttl)}
	c.mu.Unlock()

	return set, nil
}

// RecordCompletion delegates the write and invalidates the user's cached fetch
// on success so the next fetch observes the new fact
func (c *cachedGateway) RecordCompletion(ctx context.Context, userEmail, lessonID string) error {
	if err := c.next.RecordCompletion(ctx, userEmail, lessonID); err != nil {
		return err
	}

	c.Invalidate(userEmail)
	return nil
}

// Invalidate drops the cached completion set for one user
func (c *cachedGateway) Invalidate(userEmail string) {
	c.mu.Lock()
	delete(c.entries, userEmail)
	c.mu.Unlock()
}
