package emotes

import "sync"

// GlobalChannel is the distinguished channel id under which every provider's
// global emote set is cached.
const GlobalChannel = ""

// Channel groups a channel identifier with the emotes currently cached for it
// and an optional rendering preference. Channels are created lazily on first
// reference and live for the owning Fetcher's lifetime.
type Channel struct {
	id     string
	emotes *Collection

	mu     sync.RWMutex
	format ImageFormat
}

func newChannel(id string) *Channel {
	return &Channel{id: id, emotes: NewCollection()}
}

// ID returns the channel identifier; empty for the global channel.
func (c *Channel) ID() string { return c.id }

// Emotes is the channel-local index. Every entry is also present in the
// owning fetcher's global index under the same code.
func (c *Channel) Emotes() *Collection { return c.emotes }

// Format returns the channel's image format preference, empty if never set.
func (c *Channel) Format() ImageFormat {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.format
}

// setFormat records the preference; a later fetch may override it.
func (c *Channel) setFormat(f ImageFormat) {
	c.mu.Lock()
	c.format = f
	c.mu.Unlock()
}
