package twitchapi

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
)

// AppTokenGetter yields a valid app access token. *TokenSource implements it.
type AppTokenGetter interface {
	Get(ctx context.Context) (string, error)
}

// HelixClient provides the minimal Helix surface needed for emote discovery:
// login-to-id resolution and the global/channel chat emote listings.
type HelixClient struct {
	AppTokenSource AppTokenGetter
	ClientID       string
	HTTPClient     *http.Client
}

func (hc *HelixClient) http() *http.Client {
	if hc.HTTPClient != nil {
		return hc.HTTPClient
	}
	return http.DefaultClient
}

func (hc *HelixClient) get(ctx context.Context, path string, query url.Values, out any) error {
	tok, err := hc.AppTokenSource.Get(ctx)
	if err != nil {
		return err
	}
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, "https://api.twitch.tv/helix"+path, nil)
	req.URL.RawQuery = query.Encode()
	req.Header.Set("Client-Id", hc.ClientID)
	req.Header.Set("Authorization", "Bearer "+tok)
	resp, err := hc.http().Do(req)
	if err != nil {
		return err
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			slog.Warn("failed to close response body", slog.Any("err", err))
		}
	}()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("helix %s: unexpected status %s", path, resp.Status)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// GetUserID resolves a login name to its user ID.
func (hc *HelixClient) GetUserID(ctx context.Context, login string) (string, error) {
	if login == "" {
		return "", fmt.Errorf("login empty")
	}
	q := url.Values{}
	q.Set("login", login)
	var body struct {
		Data []struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	if err := hc.get(ctx, "/users", q, &body); err != nil {
		return "", err
	}
	if len(body.Data) == 0 {
		return "", fmt.Errorf("user not found")
	}
	return body.Data[0].ID, nil
}

// EmoteData is one entry of a Helix chat emote listing.
type EmoteData struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Formats []string `json:"format"`
}

// GetGlobalEmotes lists Twitch's global chat emotes.
func (hc *HelixClient) GetGlobalEmotes(ctx context.Context) ([]EmoteData, error) {
	var body struct {
		Data []EmoteData `json:"data"`
	}
	if err := hc.get(ctx, "/chat/emotes/global", url.Values{}, &body); err != nil {
		return nil, err
	}
	return body.Data, nil
}

// GetChannelEmotes lists a broadcaster's channel chat emotes.
func (hc *HelixClient) GetChannelEmotes(ctx context.Context, broadcasterID string) ([]EmoteData, error) {
	if broadcasterID == "" {
		return nil, fmt.Errorf("broadcasterID empty")
	}
	q := url.Values{}
	q.Set("broadcaster_id", broadcasterID)
	var body struct {
		Data []EmoteData `json:"data"`
	}
	if err := hc.get(ctx, "/chat/emotes", q, &body); err != nil {
		return nil, err
	}
	return body.Data, nil
}
