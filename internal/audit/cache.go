package audit

import (
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru"
)

// StoredResult is a Result kept for later retrieval by ID.
type StoredResult struct {
	ID        string
	CreatedAt time.Time
	Sources   []string
	Result    *Result
}

// ResultCache keeps the most recent audit results in memory.
// It is bounded and non-durable: evicted or restarted results are gone.
type ResultCache struct {
	lru *lru.Cache
	now func() time.Time
}

// NewResultCache creates a cache holding up to size results.
func NewResultCache(size int) (*ResultCache, error) {
	c, err := lru.New(size)
	if err != nil {
		return nil, err
	}
	return &ResultCache{lru: c, now: time.Now}, nil
}

// Put stores res under a fresh ID and returns the stored entry.
func (c *ResultCache) Put(res *Result, sources ...string) *StoredResult {
	sr := &StoredResult{
		ID:        uuid.NewString(),
		CreatedAt: c.now().UTC(),
		Sources:   sources,
		Result:    res,
	}
	c.lru.Add(sr.ID, sr)
	return sr
}

func (c *ResultCache) Get(id string) (*StoredResult, bool) {
	v, ok := c.lru.Get(id)
	if !ok {
		return nil, false
	}
	return v.(*StoredResult), true
}

func (c *ResultCache) Len() int {
	return c.lru.Len()
}
