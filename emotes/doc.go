// Package emotes implements the multi-provider emote cache and the text
// substitution engine built on top of it.
//
// A Fetcher pulls emote metadata from Twitch, BTTV, FFZ and 7TV, normalizes
// it into provider-specific Emote values and merges everything into a global
// code-indexed cache plus per-channel sub-indices. A Parser consumes that
// cache to rewrite free-form text, replacing recognized :code: tokens with
// rendered image references (markdown, HTML, BBCode, plain link, or a custom
// template).
//
// The cache lives for the lifetime of the Fetcher; there is no persistence,
// no live invalidation and no internal retry policy. Provider outages for
// BTTV/FFZ/7TV are swallowed and surface as a nil result set, never as an
// error. Only the Twitch path fails hard, and only when no credentials were
// configured.
package emotes
