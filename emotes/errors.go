package emotes

import (
	"errors"
	"fmt"
)

// ErrMissingCredentials is returned by Twitch fetches when the fetcher was
// constructed without Twitch credentials or a pre-built Helix client. It is
// raised before any network call, for global and channel-scoped fetches
// alike.
var ErrMissingCredentials = errors.New("twitch client credentials not configured")

// UnknownProviderError is returned by FromObjects when a descriptor carries a
// provider tag that is not one of the four recognized values.
type UnknownProviderError struct {
	Tag string
}

func (e *UnknownProviderError) Error() string {
	return fmt.Sprintf("unknown emote provider type %q", e.Tag)
}
