package providers

import (
	"context"
	"slices"

	"github.com/onnwee/emote-tender/twitchapi"
)

// TwitchClient adapts the authenticated Helix client to the uniform adapter
// contract. Unlike the other providers it has a hard credential precondition,
// enforced by the fetcher before this adapter is reached.
type TwitchClient struct {
	Helix *twitchapi.HelixClient
}

func rawFromEmoteData(data []twitchapi.EmoteData) []RawEmote {
	out := make([]RawEmote, 0, len(data))
	for _, e := range data {
		out = append(out, RawEmote{
			ID:       e.ID,
			Code:     e.Name,
			Animated: slices.Contains(e.Formats, "animated"),
		})
	}
	return out
}

// GlobalEmotes returns Twitch's global emote list.
func (c *TwitchClient) GlobalEmotes(ctx context.Context) ([]RawEmote, error) {
	data, err := c.Helix.GetGlobalEmotes(ctx)
	if err != nil {
		return nil, err
	}
	return rawFromEmoteData(data), nil
}

// ChannelEmotes returns a broadcaster's channel emotes.
func (c *TwitchClient) ChannelEmotes(ctx context.Context, broadcasterID string) ([]RawEmote, error) {
	data, err := c.Helix.GetChannelEmotes(ctx, broadcasterID)
	if err != nil {
		return nil, err
	}
	return rawFromEmoteData(data), nil
}
