package server

import "sync"

// docCache is a single-entry cache for the tournament document. Capacity
// is fixed at one: a write always replaces the previous entry.
type docCache struct {
	mu  sync.Mutex
	doc map[string]any
	ok  bool
}

func (c *docCache) Get() (map[string]any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.doc, c.ok
}

func (c *docCache) Set(doc map[string]any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.doc = doc
	c.ok = true
}
