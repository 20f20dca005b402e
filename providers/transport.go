package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/onnwee/emote-tender/telemetry"
)

// getJSON performs a GET against url and decodes the body into v. Any
// transport error, non-200 status or decode failure comes back as an error;
// status and failure cause are not distinguished further because all
// non-Twitch callers treat them identically.
func getJSON(ctx context.Context, hc *http.Client, url string, v any) error {
	if hc == nil {
		hc = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := hc.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			telemetry.LoggerWithCorr(ctx).Warn("failed to close response body", "err", err)
		}
	}()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %s for %s", resp.Status, url)
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode %s: %w", url, err)
	}
	telemetry.LoggerWithCorr(ctx).Debug("provider payload fetched", "url", url)
	return nil
}
