// Package chat contains the live emote bridge.
//
// StartBridge connects to Twitch IRC for a configured channel and runs every
// incoming message through an emote parser, handing the rewritten text to a
// caller-supplied handler. It is a thin consumer of the emotes package; the
// cache it resolves against must have been populated by the caller
// beforehand (the bridge performs no fetches of its own).
//
// Credentials: the IRC client requires a bot username and an OAuth token with
// chat:read scope.
package chat
