package providers

import (
	"context"
	"net/http"
)

const defaultSevenTVBaseURL = "https://7tv.io/v3"

// SevenTVClient fetches 7TV emote sets. The zero value is usable.
type SevenTVClient struct {
	HTTPClient *http.Client
	BaseURL    string
}

func (c *SevenTVClient) baseURL() string {
	if c.BaseURL != "" {
		return c.BaseURL
	}
	return defaultSevenTVBaseURL
}

// sevenTVEmote is one element of an emote set. The wrapper Name is the name
// active in the set (channels can alias emotes) and takes precedence over the
// nested descriptor's own name when they differ.
type sevenTVEmote struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Data struct {
		ID       string `json:"id"`
		Name     string `json:"name"`
		Animated bool   `json:"animated"`
	} `json:"data"`
}

func (e sevenTVEmote) raw() RawEmote {
	code := e.Name
	if code == "" {
		code = e.Data.Name
	}
	id := e.ID
	if id == "" {
		id = e.Data.ID
	}
	return RawEmote{ID: id, Code: code, Animated: e.Data.Animated}
}

// GlobalEmotes returns the global emote set.
func (c *SevenTVClient) GlobalEmotes(ctx context.Context) ([]RawEmote, error) {
	var payload struct {
		Emotes []sevenTVEmote `json:"emotes"`
	}
	if err := getJSON(ctx, c.HTTPClient, c.baseURL()+"/emote-sets/global", &payload); err != nil {
		return nil, err
	}
	out := make([]RawEmote, 0, len(payload.Emotes))
	for _, e := range payload.Emotes {
		out = append(out, e.raw())
	}
	return out, nil
}

// ChannelEmotes returns a channel's active emote set by Twitch channel id.
// A user with no emote set configured yields ok=false and no error; that is
// an expected state, not a failure.
func (c *SevenTVClient) ChannelEmotes(ctx context.Context, channelID string) (emotes []RawEmote, ok bool, err error) {
	var payload struct {
		EmoteSet *struct {
			Emotes []sevenTVEmote `json:"emotes"`
		} `json:"emote_set"`
	}
	if err := getJSON(ctx, c.HTTPClient, c.baseURL()+"/users/twitch/"+channelID, &payload); err != nil {
		return nil, false, err
	}
	if payload.EmoteSet == nil {
		return nil, false, nil
	}
	out := make([]RawEmote, 0, len(payload.EmoteSet.Emotes))
	for _, e := range payload.EmoteSet.Emotes {
		out = append(out, e.raw())
	}
	return out, true, nil
}
