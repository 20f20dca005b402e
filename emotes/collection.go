package emotes

import (
	"math/rand/v2"
	"sync"
)

// Collection is an insertion-ordered mapping from emote code to Emote. A
// re-insert under an existing code replaces the value but keeps the code's
// original position. Safe for concurrent use.
type Collection struct {
	mu     sync.RWMutex
	codes  []string
	byCode map[string]Emote
}

func NewCollection() *Collection {
	return &Collection{byCode: make(map[string]Emote)}
}

// Set inserts or replaces the emote cached under code.
func (c *Collection) Set(code string, e Emote) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.byCode[code]; !ok {
		c.codes = append(c.codes, code)
	}
	c.byCode[code] = e
}

// Get returns the emote cached under code, if any.
func (c *Collection) Get(code string) (Emote, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.byCode[code]
	return e, ok
}

func (c *Collection) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.codes)
}

// Codes returns the cached codes in insertion order.
func (c *Collection) Codes() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, len(c.codes))
	copy(out, c.codes)
	return out
}

// Emotes returns the cached emotes in insertion order.
func (c *Collection) Emotes() []Emote {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Emote, 0, len(c.codes))
	for _, code := range c.codes {
		out = append(out, c.byCode[code])
	}
	return out
}

// First returns the earliest-inserted emote, or nil when empty.
func (c *Collection) First() Emote {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if len(c.codes) == 0 {
		return nil
	}
	return c.byCode[c.codes[0]]
}

// Last returns the latest-inserted emote, or nil when empty.
func (c *Collection) Last() Emote {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if len(c.codes) == 0 {
		return nil
	}
	return c.byCode[c.codes[len(c.codes)-1]]
}

// Random returns a uniformly random emote, or nil when empty.
func (c *Collection) Random() Emote {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if len(c.codes) == 0 {
		return nil
	}
	return c.byCode[c.codes[rand.IntN(len(c.codes))]]
}

// Each calls fn for every entry in insertion order. The snapshot is taken up
// front, so fn may touch the collection without deadlocking.
func (c *Collection) Each(fn func(code string, e Emote)) {
	c.mu.RLock()
	codes := make([]string, len(c.codes))
	copy(codes, c.codes)
	byCode := make(map[string]Emote, len(c.byCode))
	for k, v := range c.byCode {
		byCode[k] = v
	}
	c.mu.RUnlock()
	for _, code := range codes {
		fn(code, byCode[code])
	}
}
