// Package config loads environment variables and provides a typed Config used
// across the binaries. It applies sensible defaults so they can run locally
// with minimal setup. For required credential sets use ValidateHelixReady /
// ValidateChatReady.
package config

import (
	"fmt"
	"os"
	"strconv"
)

type Config struct {
	// Twitch API (app token; required for Twitch emote fetches)
	TwitchClientID     string
	TwitchClientSecret string

	// Twitch chat (bot credentials; required only for the chat bridge)
	TwitchChannel     string
	TwitchBotUsername string
	TwitchOAuthToken  string

	// Emote rendering
	SevenTVFormat string // webp | avif | gif | png
	Template      string // markdown | html | bbcode | plain
	EmoteSize     int    // zero-based CDN size index

	// HTTP
	ListenAddr string
}

// Load reads environment variables and applies defaults. It doesn't fail when
// credentials are missing; fetches and the chat bridge validate what they
// need when started.
func Load() (*Config, error) {
	cfg := &Config{}

	cfg.TwitchClientID = os.Getenv("TWITCH_CLIENT_ID")
	cfg.TwitchClientSecret = os.Getenv("TWITCH_CLIENT_SECRET")

	cfg.TwitchChannel = os.Getenv("TWITCH_CHANNEL")
	cfg.TwitchBotUsername = os.Getenv("TWITCH_BOT_USERNAME")
	cfg.TwitchOAuthToken = os.Getenv("TWITCH_OAUTH_TOKEN")

	cfg.SevenTVFormat = os.Getenv("EMOTE_7TV_FORMAT")
	if cfg.SevenTVFormat == "" {
		cfg.SevenTVFormat = "webp"
	}

	cfg.Template = os.Getenv("EMOTE_TEMPLATE")
	if cfg.Template == "" {
		cfg.Template = "markdown"
	}

	if v := os.Getenv("EMOTE_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("invalid EMOTE_SIZE %q: want a non-negative integer", v)
		}
		cfg.EmoteSize = n
	}

	cfg.ListenAddr = os.Getenv("LISTEN_ADDR")
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = ":8080"
	}

	return cfg, nil
}

// ValidateHelixReady checks the fields required for Twitch emote fetches.
func (c *Config) ValidateHelixReady() error {
	if c.TwitchClientID == "" || c.TwitchClientSecret == "" {
		return fmt.Errorf("missing twitch env: require TWITCH_CLIENT_ID, TWITCH_CLIENT_SECRET")
	}
	return nil
}

// ValidateChatReady checks the fields required for the live chat bridge.
func (c *Config) ValidateChatReady() error {
	if c.TwitchChannel == "" || c.TwitchBotUsername == "" || c.TwitchOAuthToken == "" {
		return fmt.Errorf("missing twitch env: require TWITCH_CHANNEL, TWITCH_BOT_USERNAME, TWITCH_OAUTH_TOKEN")
	}
	return nil
}
