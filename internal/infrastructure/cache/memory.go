package cache

import (
	"context"
	"sync"
	"time"

	"github.com/o1iviachen/my-protein-buddy/internal/domain"
)

// cacheItem represents a single item in the cache with expiration
type cacheItem struct {
	Food       domain.Food
	Expiration time.Time
}

// MemoryCache is a thread-safe in-memory cache for resolved foods with TTL
// support. Cached foods are stored by value and copied out on Get so a caller
// mutating its copy (multiplier, selected measure) cannot corrupt the cache.
type MemoryCache struct {
	data  map[string]cacheItem
	mutex sync.RWMutex
}

// NewMemoryCache creates a new in-memory cache
func NewMemoryCache() *MemoryCache {
	cache := &MemoryCache{
		data: make(map[string]cacheItem),
	}

	// Start cleanup goroutine to remove expired entries every 10 minutes
	go cache.cleanupExpired()

	return cache
}

// FoodKey builds the cache key for a resolved search ref.
func FoodKey(ref domain.FoodRef) string {
	if ref.Kind == domain.RefBranded {
		return "food:branded:" + ref.ID
	}
	return "food:common:" + ref.Name
}

// BarcodeKey builds the cache key for a barcode lookup.
func BarcodeKey(code string) string {
	return "food:barcode:" + code
}

// Get retrieves a food from the cache
func (c *MemoryCache) Get(ctx context.Context, key string) (*domain.Food, error) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	item, exists := c.data[key]
	if !exists {
		return nil, domain.ErrCacheMiss
	}

	// Check if expired
	if time.Now().After(item.Expiration) {
		return nil, domain.ErrCacheMiss
	}

	food := item.Food
	return &food, nil
}

// Set stores a food in the cache with TTL
func (c *MemoryCache) Set(ctx context.Context, key string, food *domain.Food, ttl time.Duration) error {
	if food == nil {
		return domain.ErrInvalidRequest
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.data[key] = cacheItem{
		Food:       *food,
		Expiration: time.Now().Add(ttl),
	}

	return nil
}

// Delete removes a food from the cache
func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	delete(c.data, key)
	return nil
}

// cleanupExpired removes expired entries from the cache periodically
func (c *MemoryCache) cleanupExpired() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		c.mutex.Lock()
		now := time.Now()
		for key, item := range c.data {
			if now.After(item.Expiration) {
				delete(c.data, key)
			}
		}
		c.mutex.Unlock()
	}
}

// Size returns the current number of items in the cache (for debugging/monitoring)
func (c *MemoryCache) Size() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return len(c.data)
}

// Clear removes all items from the cache
func (c *MemoryCache) Clear() {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.data = make(map[string]cacheItem)
}
