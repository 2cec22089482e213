package calendar

import (
	"strconv"
	"sync"
)

// YearCache holds the holidays of every year fetched so far.
// Entries are never evicted or refreshed; an empty entry records a failed fetch.
type YearCache struct {
	mu    sync.RWMutex
	years map[string][]Holiday // year string → holidays
}

// NewYearCache creates an empty YearCache
func NewYearCache() *YearCache {
	return &YearCache{years: make(map[string][]Holiday)}
}

// Get returns the cached holidays of the year
func (c *YearCache) Get(year int) ([]Holiday, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	holidays, ok := c.years[strconv.Itoa(year)]
	return holidays, ok
}

// Put stores the holidays of the year, replacing nothing that a racing fetch already wrote
func (c *YearCache) Put(year int, holidays []Holiday) {
	if holidays == nil {
		holidays = []Holiday{}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	key := strconv.Itoa(year)
	if _, ok := c.years[key]; ok {
		return
	}
	c.years[key] = holidays
}

// Len returns the number of cached years
func (c *YearCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.years)
}
