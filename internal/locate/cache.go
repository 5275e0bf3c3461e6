package locate

import (
	"fmt"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rozgarmap/district-stats/internal/domain"
)

// Cache memoizes resolution results per coordinate bucket. Keys round both
// axes to three decimal places (~110m), so nearby requests share a slot.
// Entries expire after the TTL but are never proactively purged; an expired
// entry reads as absent and is overwritten by the next resolution.
type Cache struct {
	ttl   time.Duration
	clock clockwork.Clock

	mu      sync.Mutex
	entries map[string]cacheEntry
}

type cacheEntry struct {
	guess     domain.LocationGuess
	createdAt time.Time
}

// NewCache creates a resolution cache. Pass a fake clock in tests to drive
// TTL expiry deterministically; pass clockwork.NewRealClock in production.
func NewCache(ttl time.Duration, clock clockwork.Clock) *Cache {
	return &Cache{
		ttl:     ttl,
		clock:   clock,
		entries: make(map[string]cacheEntry),
	}
}

// Get returns the unexpired guess cached for the coordinate's bucket.
func (c *Cache) Get(lat, lng float64) (domain.LocationGuess, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[cacheKey(lat, lng)]
	if !ok || c.clock.Since(e.createdAt) >= c.ttl {
		return domain.LocationGuess{}, false
	}
	return e.guess, true
}

// Put stores a guess under the coordinate's bucket, replacing any previous
// entry. Racing writes for the same bucket are last-write-wins; callers are
// expected to store equivalent values for the same bucket.
func (c *Cache) Put(lat, lng float64, guess domain.LocationGuess) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[cacheKey(lat, lng)] = cacheEntry{guess: guess, createdAt: c.clock.Now()}
}

// Clear drops every entry.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]cacheEntry)
}

func cacheKey(lat, lng float64) string {
	return fmt.Sprintf("%.3f_%.3f", lat, lng)
}
