// Package providers contains one adapter per third-party emote catalog
// (Twitch, BTTV, FFZ, 7TV). Each adapter knows its provider's endpoint and
// idiosyncratic JSON shape and yields a uniform list of RawEmote descriptors
// for the cache layer to turn into concrete emote values.
//
// Adapters report transport and decode failures as ordinary errors; deciding
// whether a failure is fatal is the caller's job (the emote fetcher swallows
// them for everything but Twitch).
package providers

// RawEmote is the uniform descriptor every adapter normalizes its payload
// into. ID is the provider-native identifier rendered as a string even when
// the provider uses integers (FFZ).
type RawEmote struct {
	ID        string
	Code      string
	Animated  bool
	ImageType string
	Modifier  bool
}
