package providers

import (
	"context"
	"net/http"
	"strconv"
)

const defaultFFZBaseURL = "https://api.frankerfacez.com/v1"

// FFZClient fetches FrankerFaceZ emote sets. The zero value is usable.
type FFZClient struct {
	HTTPClient *http.Client
	BaseURL    string
}

func (c *FFZClient) baseURL() string {
	if c.BaseURL != "" {
		return c.BaseURL
	}
	return defaultFFZBaseURL
}

// ffzPayload covers both the global-set and room endpoints: each returns a
// mapping of named sets holding a mixed list of regular and modifier emotes.
type ffzPayload struct {
	Sets map[string]struct {
		Emoticons []struct {
			ID       int    `json:"id"`
			Name     string `json:"name"`
			Modifier bool   `json:"modifier"`
		} `json:"emoticons"`
	} `json:"sets"`
}

func (p ffzPayload) partition() (regular, modifiers []RawEmote) {
	for _, set := range p.Sets {
		for _, e := range set.Emoticons {
			raw := RawEmote{ID: strconv.Itoa(e.ID), Code: e.Name, Modifier: e.Modifier}
			if e.Modifier {
				modifiers = append(modifiers, raw)
			} else {
				regular = append(regular, raw)
			}
		}
	}
	return regular, modifiers
}

// GlobalEmotes returns the default global sets, partitioned into regular and
// modifier emotes.
func (c *FFZClient) GlobalEmotes(ctx context.Context) (regular, modifiers []RawEmote, err error) {
	var payload ffzPayload
	if err := getJSON(ctx, c.HTTPClient, c.baseURL()+"/set/global", &payload); err != nil {
		return nil, nil, err
	}
	regular, modifiers = payload.partition()
	return regular, modifiers, nil
}

// ChannelEmotes returns a room's sets by Twitch channel id, partitioned into
// regular and modifier emotes.
func (c *FFZClient) ChannelEmotes(ctx context.Context, channelID string) (regular, modifiers []RawEmote, err error) {
	var payload ffzPayload
	if err := getJSON(ctx, c.HTTPClient, c.baseURL()+"/room/id/"+channelID, &payload); err != nil {
		return nil, nil, err
	}
	regular, modifiers = payload.partition()
	return regular, modifiers, nil
}
