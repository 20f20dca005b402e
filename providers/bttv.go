package providers

import (
	"context"
	"net/http"
)

const defaultBTTVBaseURL = "https://api.betterttv.net/3"

// BTTVClient fetches BetterTTV emote lists. The zero value is usable.
type BTTVClient struct {
	HTTPClient *http.Client
	BaseURL    string
}

func (c *BTTVClient) baseURL() string {
	if c.BaseURL != "" {
		return c.BaseURL
	}
	return defaultBTTVBaseURL
}

type bttvEmote struct {
	ID        string `json:"id"`
	Code      string `json:"code"`
	ImageType string `json:"imageType"`
	Animated  bool   `json:"animated"`
}

func (e bttvEmote) raw() RawEmote {
	return RawEmote{ID: e.ID, Code: e.Code, Animated: e.Animated, ImageType: e.ImageType}
}

// GlobalEmotes returns the global emote list, which the endpoint serves flat.
func (c *BTTVClient) GlobalEmotes(ctx context.Context) ([]RawEmote, error) {
	var payload []bttvEmote
	if err := getJSON(ctx, c.HTTPClient, c.baseURL()+"/cached/emotes/global", &payload); err != nil {
		return nil, err
	}
	out := make([]RawEmote, 0, len(payload))
	for _, e := range payload {
		out = append(out, e.raw())
	}
	return out, nil
}

// ChannelEmotes returns a channel's emotes. The endpoint splits them into
// channel-owned and shared-from-elsewhere lists; both belong to the channel,
// so they are concatenated into one logical list.
func (c *BTTVClient) ChannelEmotes(ctx context.Context, channelID string) ([]RawEmote, error) {
	var payload struct {
		ChannelEmotes []bttvEmote `json:"channelEmotes"`
		SharedEmotes  []bttvEmote `json:"sharedEmotes"`
	}
	if err := getJSON(ctx, c.HTTPClient, c.baseURL()+"/cached/users/twitch/"+channelID, &payload); err != nil {
		return nil, err
	}
	out := make([]RawEmote, 0, len(payload.ChannelEmotes)+len(payload.SharedEmotes))
	for _, e := range payload.ChannelEmotes {
		out = append(out, e.raw())
	}
	for _, e := range payload.SharedEmotes {
		out = append(out, e.raw())
	}
	return out, nil
}
