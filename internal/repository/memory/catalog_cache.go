package memory

import (
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// CatalogCache keeps each user's visible filename listing between changes.
type CatalogCache struct {
	cache *cache.Cache
}

func NewCatalogCache(ttl time.Duration) *CatalogCache {
	return &CatalogCache{
		cache: cache.New(ttl, 2*ttl),
	}
}

func (c *CatalogCache) Get(userID uuid.UUID) ([]string, bool) {
	x, found := c.cache.Get(userID.String())
	if !found {
		return nil, false
	}
	files := x.([]string)
	out := make([]string, len(files))
	copy(out, files)
	return out, true
}

func (c *CatalogCache) Set(userID uuid.UUID, files []string) {
	stored := make([]string, len(files))
	copy(stored, files)
	c.cache.Set(userID.String(), stored, cache.DefaultExpiration)
}

func (c *CatalogCache) Invalidate(userID uuid.UUID) {
	c.cache.Delete(userID.String())
}
