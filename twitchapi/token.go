// Package twitchapi contains minimal helpers to interact with Twitch Helix
// APIs for user id resolution and chat emote listing, using an app access
// token obtained via the client-credentials grant.
package twitchapi

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
	"golang.org/x/oauth2/endpoints"
)

// TokenSource fetches and caches a Twitch app access (client credentials)
// token, delegating caching and refresh to oauth2.ReuseTokenSource.
type TokenSource struct {
	ClientID     string
	ClientSecret string
	HTTPClient   *http.Client

	mu     sync.Mutex
	source oauth2.TokenSource
}

// Get returns a valid (fresh or cached) app access token. Token refresh runs
// on the background context; ctx only gates entry into the call.
func (ts *TokenSource) Get(ctx context.Context) (string, error) {
	if ts.ClientID == "" || ts.ClientSecret == "" {
		return "", errors.New("missing client id/secret for twitch app token")
	}
	ts.mu.Lock()
	if ts.source == nil {
		conf := &clientcredentials.Config{
			ClientID:     ts.ClientID,
			ClientSecret: ts.ClientSecret,
			TokenURL:     endpoints.Twitch.TokenURL,
		}
		base := context.Background()
		if ts.HTTPClient != nil {
			base = context.WithValue(base, oauth2.HTTPClient, ts.HTTPClient)
		}
		ts.source = conf.TokenSource(base)
	}
	src := ts.source
	ts.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return "", err
	}
	tok, err := src.Token()
	if err != nil {
		return "", err
	}
	return tok.AccessToken, nil
}
