package emotes

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"go.opentelemetry.io/otel/attribute"

	"github.com/onnwee/emote-tender/providers"
	"github.com/onnwee/emote-tender/telemetry"
	"github.com/onnwee/emote-tender/twitchapi"
)

const tracerName = "github.com/onnwee/emote-tender/emotes"

// Options configures a Fetcher. Twitch access requires either a client
// id/secret pair or a pre-built Helix client; every other field is optional.
type Options struct {
	TwitchClientID     string
	TwitchClientSecret string

	// Helix, when set, is used instead of building a client from the
	// id/secret pair.
	Helix *twitchapi.HelixClient

	// HTTPClient is used for the BTTV/FFZ/7TV endpoints and, when a Helix
	// client is built here, for Twitch as well. Defaults to
	// http.DefaultClient.
	HTTPClient *http.Client

	// Per-provider client overrides, mainly for tests.
	BTTV    *providers.BTTVClient
	FFZ     *providers.FFZClient
	SevenTV *providers.SevenTVClient
}

// Fetcher owns the global emote index and the channel table and orchestrates
// the four provider adapters. All fetch methods are idempotent: re-fetching
// overwrites cache entries by code instead of duplicating them, and each
// returns only that call's result set, not the cumulative cache.
type Fetcher struct {
	mu       sync.RWMutex
	emotes   *Collection
	channels map[string]*Channel

	twitch  *providers.TwitchClient // nil when no credentials were configured
	bttv    *providers.BTTVClient
	ffz     *providers.FFZClient
	seventv *providers.SevenTVClient

	ffzModifiersFetched bool
}

// New constructs a Fetcher. Missing Twitch credentials do not fail here;
// FetchTwitchEmotes reports ErrMissingCredentials when eventually called.
func New(opts Options) *Fetcher {
	telemetry.Init()
	f := &Fetcher{
		emotes:   NewCollection(),
		channels: make(map[string]*Channel),
		bttv:     opts.BTTV,
		ffz:      opts.FFZ,
		seventv:  opts.SevenTV,
	}
	if f.bttv == nil {
		f.bttv = &providers.BTTVClient{HTTPClient: opts.HTTPClient}
	}
	if f.ffz == nil {
		f.ffz = &providers.FFZClient{HTTPClient: opts.HTTPClient}
	}
	if f.seventv == nil {
		f.seventv = &providers.SevenTVClient{HTTPClient: opts.HTTPClient}
	}
	helix := opts.Helix
	if helix == nil && opts.TwitchClientID != "" && opts.TwitchClientSecret != "" {
		helix = &twitchapi.HelixClient{
			AppTokenSource: &twitchapi.TokenSource{
				ClientID:     opts.TwitchClientID,
				ClientSecret: opts.TwitchClientSecret,
				HTTPClient:   opts.HTTPClient,
			},
			ClientID:   opts.TwitchClientID,
			HTTPClient: opts.HTTPClient,
		}
	}
	if helix != nil {
		f.twitch = &providers.TwitchClient{Helix: helix}
	}
	return f
}

// Emotes is the global index spanning all channels. Later insertions under
// the same code overwrite earlier ones regardless of channel.
func (f *Fetcher) Emotes() *Collection { return f.emotes }

// Emote looks up a code in the global index.
func (f *Fetcher) Emote(code string) (Emote, bool) { return f.emotes.Get(code) }

// Channel returns the channel cached under id, if it was ever referenced.
func (f *Fetcher) Channel(id string) (*Channel, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	ch, ok := f.channels[id]
	return ch, ok
}

// Channels returns a snapshot of all known channels.
func (f *Fetcher) Channels() []*Channel {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]*Channel, 0, len(f.channels))
	for _, ch := range f.channels {
		out = append(out, ch)
	}
	return out
}

// channel returns the Channel for id, creating it on first reference.
func (f *Fetcher) channel(id string) *Channel {
	f.mu.Lock()
	defer f.mu.Unlock()
	if ch, ok := f.channels[id]; ok {
		return ch
	}
	ch := newChannel(id)
	f.channels[id] = ch
	return ch
}

// cache upserts e into both the channel-local and the global index. Every
// emote reachable from a channel index is therefore also reachable from the
// global one under the same code; the reverse does not hold after overwrites.
func (f *Fetcher) cache(ch *Channel, e Emote) {
	ch.Emotes().Set(e.Code(), e)
	f.emotes.Set(e.Code(), e)
	telemetry.SetGauge(telemetry.CacheSizeGauge, float64(f.emotes.Len()))
}

// ResolveChannelID maps a Twitch login name to the broadcaster id the
// provider endpoints key channels by. Requires Twitch credentials.
func (f *Fetcher) ResolveChannelID(ctx context.Context, login string) (string, error) {
	if f.twitch == nil {
		return "", ErrMissingCredentials
	}
	return f.twitch.Helix.GetUserID(ctx, login)
}

// FetchTwitchEmotes fetches Twitch global (channelID == GlobalChannel) or
// channel emotes and merges them into the cache. It fails with
// ErrMissingCredentials before any network call when the fetcher has no
// Twitch client, independent of channelID. A successful call that found
// nothing returns (nil, nil).
func (f *Fetcher) FetchTwitchEmotes(ctx context.Context, channelID string) (*Collection, error) {
	if f.twitch == nil {
		return nil, ErrMissingCredentials
	}
	ctx = telemetry.EnsureCorrelation(ctx)
	ctx, span := telemetry.StartSpan(ctx, tracerName, "FetchTwitchEmotes", attribute.String("channel", channelID))
	defer span.End()
	telemetry.IncProvider(telemetry.FetchesStarted, "twitch")

	var raws []providers.RawEmote
	var err error
	telemetry.ObserveDuration(telemetry.FetchDuration, func() {
		if channelID == GlobalChannel {
			raws, err = f.twitch.GlobalEmotes(ctx)
		} else {
			raws, err = f.twitch.ChannelEmotes(ctx, channelID)
		}
	})
	if err != nil {
		telemetry.RecordError(span, err)
		telemetry.IncProvider(telemetry.FetchesFailed, "twitch")
		return nil, fmt.Errorf("fetch twitch emotes: %w", err)
	}
	if len(raws) == 0 {
		telemetry.IncProvider(telemetry.FetchesFailed, "twitch")
		return nil, nil
	}

	ch := f.channel(channelID)
	result := NewCollection()
	for _, r := range raws {
		e := NewTwitchEmote(r.Code, r.ID, r.Animated, ch)
		f.cache(ch, e)
		result.Set(e.Code(), e)
	}
	telemetry.IncProvider(telemetry.FetchesSucceeded, "twitch")
	return result, nil
}

// FetchBTTVEmotes fetches BTTV global or channel emotes and merges them into
// the cache. Provider or transport failure is not an error at this layer: it
// is logged and surfaces as (nil, nil), same as an empty result.
func (f *Fetcher) FetchBTTVEmotes(ctx context.Context, channelID string) (*Collection, error) {
	ctx = telemetry.EnsureCorrelation(ctx)
	ctx, span := telemetry.StartSpan(ctx, tracerName, "FetchBTTVEmotes", attribute.String("channel", channelID))
	defer span.End()
	telemetry.IncProvider(telemetry.FetchesStarted, "bttv")

	var raws []providers.RawEmote
	var err error
	telemetry.ObserveDuration(telemetry.FetchDuration, func() {
		if channelID == GlobalChannel {
			raws, err = f.bttv.GlobalEmotes(ctx)
		} else {
			raws, err = f.bttv.ChannelEmotes(ctx, channelID)
		}
	})
	if err != nil {
		telemetry.RecordError(span, err)
		telemetry.IncProvider(telemetry.FetchesFailed, "bttv")
		telemetry.LoggerWithCorr(ctx).Warn("bttv emote fetch failed", "channel", channelID, "err", err)
		return nil, nil
	}
	if len(raws) == 0 {
		telemetry.IncProvider(telemetry.FetchesFailed, "bttv")
		return nil, nil
	}

	ch := f.channel(channelID)
	result := NewCollection()
	for _, r := range raws {
		e := NewBTTVEmote(r.Code, r.ID, r.ImageType, r.Animated, ch)
		f.cache(ch, e)
		result.Set(e.Code(), e)
	}
	telemetry.IncProvider(telemetry.FetchesSucceeded, "bttv")
	return result, nil
}

// FetchFFZEmotes fetches FFZ global or room emotes and merges them into the
// cache. Modifier emotes are cached individually (flagged, under their own
// codes) but excluded from the returned mapping; no modifier-to-base
// composition is attempted. Failure semantics match FetchBTTVEmotes.
func (f *Fetcher) FetchFFZEmotes(ctx context.Context, channelID string) (*Collection, error) {
	ctx = telemetry.EnsureCorrelation(ctx)
	ctx, span := telemetry.StartSpan(ctx, tracerName, "FetchFFZEmotes", attribute.String("channel", channelID))
	defer span.End()
	telemetry.IncProvider(telemetry.FetchesStarted, "ffz")

	var regular, modifiers []providers.RawEmote
	var err error
	telemetry.ObserveDuration(telemetry.FetchDuration, func() {
		if channelID == GlobalChannel {
			regular, modifiers, err = f.ffz.GlobalEmotes(ctx)
		} else {
			regular, modifiers, err = f.ffz.ChannelEmotes(ctx, channelID)
		}
	})
	if err != nil {
		telemetry.RecordError(span, err)
		telemetry.IncProvider(telemetry.FetchesFailed, "ffz")
		telemetry.LoggerWithCorr(ctx).Warn("ffz emote fetch failed", "channel", channelID, "err", err)
		return nil, nil
	}
	if len(regular) == 0 && len(modifiers) == 0 {
		telemetry.IncProvider(telemetry.FetchesFailed, "ffz")
		return nil, nil
	}

	ch := f.channel(channelID)

	// Global modifiers only need caching once per fetcher lifetime; room
	// modifiers are channel-specific and re-cached like any other entry.
	cacheModifiers := true
	if channelID == GlobalChannel {
		f.mu.Lock()
		cacheModifiers = !f.ffzModifiersFetched
		f.ffzModifiersFetched = true
		f.mu.Unlock()
	}
	if cacheModifiers {
		for _, r := range modifiers {
			id, convErr := ffzID(r.ID)
			if convErr != nil {
				telemetry.LoggerWithCorr(ctx).Warn("skipping ffz modifier with bad id", "id", r.ID, "err", convErr)
				continue
			}
			f.cache(ch, NewFFZEmote(r.Code, id, true, ch))
		}
	}

	if len(regular) == 0 {
		// Only modifiers in the payload: nothing to return, but the cache
		// still advanced, so this is not a failure.
		telemetry.IncProvider(telemetry.FetchesSucceeded, "ffz")
		return nil, nil
	}
	result := NewCollection()
	for _, r := range regular {
		id, convErr := ffzID(r.ID)
		if convErr != nil {
			telemetry.LoggerWithCorr(ctx).Warn("skipping ffz emote with bad id", "id", r.ID, "err", convErr)
			continue
		}
		e := NewFFZEmote(r.Code, id, false, ch)
		f.cache(ch, e)
		result.Set(e.Code(), e)
	}
	telemetry.IncProvider(telemetry.FetchesSucceeded, "ffz")
	return result, nil
}

// FetchSevenTVEmotes fetches 7TV global or channel emotes and merges them
// into the cache. format selects the CDN image encoding for emotes cached by
// this call and becomes the channel's preference (overriding an earlier one);
// empty means webp. A user without an emote set yields (nil, nil), not an
// error. Failure semantics match FetchBTTVEmotes.
func (f *Fetcher) FetchSevenTVEmotes(ctx context.Context, channelID string, format ImageFormat) (*Collection, error) {
	ctx = telemetry.EnsureCorrelation(ctx)
	ctx, span := telemetry.StartSpan(ctx, tracerName, "FetchSevenTVEmotes", attribute.String("channel", channelID))
	defer span.End()
	telemetry.IncProvider(telemetry.FetchesStarted, "7tv")

	if format == "" {
		format = DefaultSevenTVFormat
	}

	var raws []providers.RawEmote
	var err error
	telemetry.ObserveDuration(telemetry.FetchDuration, func() {
		if channelID == GlobalChannel {
			raws, err = f.seventv.GlobalEmotes(ctx)
		} else {
			var ok bool
			raws, ok, err = f.seventv.ChannelEmotes(ctx, channelID)
			if err == nil && !ok {
				raws = nil
			}
		}
	})
	if err != nil {
		telemetry.RecordError(span, err)
		telemetry.IncProvider(telemetry.FetchesFailed, "7tv")
		telemetry.LoggerWithCorr(ctx).Warn("7tv emote fetch failed", "channel", channelID, "err", err)
		return nil, nil
	}
	if len(raws) == 0 {
		telemetry.IncProvider(telemetry.FetchesFailed, "7tv")
		return nil, nil
	}

	ch := f.channel(channelID)
	ch.setFormat(format)
	result := NewCollection()
	for _, r := range raws {
		e := NewSevenTVEmote(r.Code, r.ID, r.Animated, format, ch)
		f.cache(ch, e)
		result.Set(e.Code(), e)
	}
	telemetry.IncProvider(telemetry.FetchesSucceeded, "7tv")
	return result, nil
}
