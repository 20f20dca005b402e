package emotes

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/onnwee/emote-tender/providers"
	"github.com/onnwee/emote-tender/telemetry"
	"github.com/onnwee/emote-tender/twitchapi"
)

type staticToken string

func (s staticToken) Get(context.Context) (string, error) { return string(s), nil }

// rewriteTransport redirects requests for hardcoded API hosts at a test server.
type rewriteTransport struct {
	host string
}

func (t *rewriteTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.URL.Scheme = "http"
	req.URL.Host = strings.TrimPrefix(t.host, "http://")
	return http.DefaultTransport.RoundTrip(req)
}

func jsonServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func twitchFetcher(t *testing.T, body string) *Fetcher {
	t.Helper()
	server := jsonServer(t, http.StatusOK, body)
	helix := &twitchapi.HelixClient{
		AppTokenSource: staticToken("test-token"),
		ClientID:       "test-client-id",
		HTTPClient:     &http.Client{Transport: &rewriteTransport{host: server.URL}},
	}
	return New(Options{Helix: helix})
}

func TestFetchTwitchEmotesMissingCredentials(t *testing.T) {
	f := New(Options{})
	for _, channelID := range []string{GlobalChannel, "44445592"} {
		if _, err := f.FetchTwitchEmotes(context.Background(), channelID); !errors.Is(err, ErrMissingCredentials) {
			t.Errorf("FetchTwitchEmotes(%q) error = %v, want ErrMissingCredentials", channelID, err)
		}
	}
	if _, err := f.ResolveChannelID(context.Background(), "somelogin"); !errors.Is(err, ErrMissingCredentials) {
		t.Errorf("ResolveChannelID error = %v, want ErrMissingCredentials", err)
	}
}

func TestFetchTwitchEmotesCachesGlobalAndParses(t *testing.T) {
	f := twitchFetcher(t, `{"data":[
		{"id":"25","name":"Kappa","format":["static"]},
		{"id":"58127","name":"CoolCat","format":["static"]}
	]}`)

	result, err := f.FetchTwitchEmotes(context.Background(), GlobalChannel)
	if err != nil {
		t.Fatalf("FetchTwitchEmotes() error = %v", err)
	}
	if result.Len() != 2 {
		t.Fatalf("result size = %d, want 2", result.Len())
	}

	// Channel-local entries must be the identical instances held globally.
	ch, ok := f.Channel(GlobalChannel)
	if !ok {
		t.Fatalf("global channel not created")
	}
	for _, code := range ch.Emotes().Codes() {
		local, _ := ch.Emotes().Get(code)
		global, found := f.Emote(code)
		if !found || local != global {
			t.Errorf("channel entry %q not the same instance in the global index", code)
		}
	}

	p := &Parser{Fetcher: f, Template: MarkdownTemplate}
	got := p.Parse("This is a test string with :CoolCat: in it.")
	want := `This is a test string with ![CoolCat](https://static-cdn.jtvnw.net/emoticons/v2/58127/default/dark/1.0 "CoolCat") in it.`
	if got != want {
		t.Errorf("Parse() = %q, want %q", got, want)
	}
}

func TestFetchTwitchEmotesEmptyResultIsNil(t *testing.T) {
	f := twitchFetcher(t, `{"data":[]}`)
	result, err := f.FetchTwitchEmotes(context.Background(), GlobalChannel)
	if err != nil {
		t.Fatalf("FetchTwitchEmotes() error = %v", err)
	}
	if result != nil {
		t.Errorf("result = %v, want nil for empty payload", result)
	}
}

func TestReFetchOverwritesInsteadOfDuplicating(t *testing.T) {
	f := twitchFetcher(t, `{"data":[{"id":"25","name":"Kappa","format":["static"]}]}`)

	for range 3 {
		if _, err := f.FetchTwitchEmotes(context.Background(), "44445592"); err != nil {
			t.Fatalf("FetchTwitchEmotes() error = %v", err)
		}
	}
	ch, _ := f.Channel("44445592")
	if ch.Emotes().Len() != 1 {
		t.Errorf("channel index size = %d after 3 re-fetches, want 1", ch.Emotes().Len())
	}
	if f.Emotes().Len() != 1 {
		t.Errorf("global index size = %d after 3 re-fetches, want 1", f.Emotes().Len())
	}
}

func TestFetchBTTVEmotesMergesOwnedAndShared(t *testing.T) {
	server := jsonServer(t, http.StatusOK, `{
		"channelEmotes":[{"id":"a1","code":"ownedEmote","imageType":"png"}],
		"sharedEmotes":[{"id":"b2","code":"sharedEmote","imageType":"gif","animated":true}]
	}`)
	f := New(Options{BTTV: &providers.BTTVClient{BaseURL: server.URL}})

	result, err := f.FetchBTTVEmotes(context.Background(), "123")
	if err != nil {
		t.Fatalf("FetchBTTVEmotes() error = %v", err)
	}
	if result.Len() != 2 {
		t.Fatalf("result size = %d, want 2 (owned + shared)", result.Len())
	}
	for _, code := range []string{"ownedEmote", "sharedEmote"} {
		if _, ok := result.Get(code); !ok {
			t.Errorf("merged result missing %q", code)
		}
	}
}

func TestFetchBTTVEmotesSwallowsProviderFailure(t *testing.T) {
	server := jsonServer(t, http.StatusInternalServerError, `boom`)
	f := New(Options{BTTV: &providers.BTTVClient{BaseURL: server.URL}})

	result, err := f.FetchBTTVEmotes(context.Background(), "123")
	if err != nil {
		t.Fatalf("provider failure must not propagate, got %v", err)
	}
	if result != nil {
		t.Errorf("result = %v, want nil on provider failure", result)
	}
	if f.Emotes().Len() != 0 {
		t.Errorf("nothing should have been cached")
	}
}

func TestFetchFFZEmotesCachesModifiersWithoutReturningThem(t *testing.T) {
	server := jsonServer(t, http.StatusOK, `{
		"sets": {"3": {"emoticons": [
			{"id": 27081, "name": "ZreknarF", "modifier": false},
			{"id": 70852, "name": "FFZOverlay", "modifier": true}
		]}}
	}`)
	f := New(Options{FFZ: &providers.FFZClient{BaseURL: server.URL}})

	result, err := f.FetchFFZEmotes(context.Background(), GlobalChannel)
	if err != nil {
		t.Fatalf("FetchFFZEmotes() error = %v", err)
	}
	if _, ok := result.Get("FFZOverlay"); ok {
		t.Errorf("modifier emote must not appear in the returned mapping")
	}
	if result.Len() != 1 {
		t.Errorf("result size = %d, want 1 regular emote", result.Len())
	}

	cached, ok := f.Emote("FFZOverlay")
	if !ok {
		t.Fatalf("modifier emote should still be cached individually")
	}
	ffz, ok := cached.(*FFZEmote)
	if !ok || !ffz.Modifier() {
		t.Errorf("cached modifier = %#v, want *FFZEmote with Modifier()", cached)
	}
}

func TestFetchFFZEmotesModifiersOnlyIsNotAFailure(t *testing.T) {
	server := jsonServer(t, http.StatusOK, `{
		"sets": {"3": {"emoticons": [
			{"id": 70852, "name": "FFZOverlay", "modifier": true}
		]}}
	}`)
	f := New(Options{FFZ: &providers.FFZClient{BaseURL: server.URL}})

	failedBefore := testutil.ToFloat64(telemetry.FetchesFailed.WithLabelValues("ffz"))
	succeededBefore := testutil.ToFloat64(telemetry.FetchesSucceeded.WithLabelValues("ffz"))

	result, err := f.FetchFFZEmotes(context.Background(), "123")
	if err != nil {
		t.Fatalf("FetchFFZEmotes() error = %v", err)
	}
	if result != nil {
		t.Errorf("result = %v, want nil when the payload holds only modifiers", result)
	}
	if _, ok := f.Emote("FFZOverlay"); !ok {
		t.Fatalf("modifier emote should have been cached")
	}

	if d := testutil.ToFloat64(telemetry.FetchesFailed.WithLabelValues("ffz")) - failedBefore; d != 0 {
		t.Errorf("failed counter advanced by %v, want 0", d)
	}
	if d := testutil.ToFloat64(telemetry.FetchesSucceeded.WithLabelValues("ffz")) - succeededBefore; d != 1 {
		t.Errorf("succeeded counter advanced by %v, want 1", d)
	}
}

func TestFetchSevenTVEmotesAbsentSetIsNil(t *testing.T) {
	server := jsonServer(t, http.StatusOK, `{"id":"user","emote_set":null}`)
	f := New(Options{SevenTV: &providers.SevenTVClient{BaseURL: server.URL}})

	result, err := f.FetchSevenTVEmotes(context.Background(), "123", "")
	if err != nil {
		t.Fatalf("absent emote set must not be an error, got %v", err)
	}
	if result != nil {
		t.Errorf("result = %v, want nil for absent emote set", result)
	}
}

func TestFetchSevenTVEmotesAppliesFormat(t *testing.T) {
	server := jsonServer(t, http.StatusOK, `{
		"emote_set": {"emotes": [
			{"id":"01ab","name":"peepoHappy","data":{"id":"01ab","name":"peepoHappy","animated":true}}
		]}
	}`)
	f := New(Options{SevenTV: &providers.SevenTVClient{BaseURL: server.URL}})

	result, err := f.FetchSevenTVEmotes(context.Background(), "123", FormatGIF)
	if err != nil {
		t.Fatalf("FetchSevenTVEmotes() error = %v", err)
	}
	e, _ := result.Get("peepoHappy")
	if got := e.ToLink(0); got != "https://cdn.7tv.app/emote/01ab/1x.gif" {
		t.Errorf("ToLink(0) = %s, want gif variant", got)
	}

	ch, _ := f.Channel("123")
	if ch.Format() != FormatGIF {
		t.Errorf("channel format = %q, want gif", ch.Format())
	}

	// Re-setup overrides the preference.
	if _, err := f.FetchSevenTVEmotes(context.Background(), "123", FormatAVIF); err != nil {
		t.Fatalf("re-fetch error = %v", err)
	}
	if ch.Format() != FormatAVIF {
		t.Errorf("channel format = %q after re-fetch, want avif", ch.Format())
	}
}

func TestChannelCreatedOnceAndReused(t *testing.T) {
	server := jsonServer(t, http.StatusOK, `[
		{"id":"x1","code":"globalThing","imageType":"png"}
	]`)
	f := New(Options{BTTV: &providers.BTTVClient{BaseURL: server.URL}})

	if _, err := f.FetchBTTVEmotes(context.Background(), GlobalChannel); err != nil {
		t.Fatalf("FetchBTTVEmotes() error = %v", err)
	}
	first, ok := f.Channel(GlobalChannel)
	if !ok {
		t.Fatalf("channel not created on first fetch")
	}
	if _, err := f.FetchBTTVEmotes(context.Background(), GlobalChannel); err != nil {
		t.Fatalf("FetchBTTVEmotes() error = %v", err)
	}
	second, _ := f.Channel(GlobalChannel)
	if first != second {
		t.Errorf("re-fetch created a duplicate channel instance")
	}
	if len(f.Channels()) != 1 {
		t.Errorf("Channels() = %d entries, want 1", len(f.Channels()))
	}
}

func TestGlobalIndexLastWriteWinsAcrossChannels(t *testing.T) {
	server := jsonServer(t, http.StatusOK, `[
		{"id":"x1","code":"sameCode","imageType":"png"}
	]`)
	f := New(Options{BTTV: &providers.BTTVClient{BaseURL: server.URL}})

	if _, err := f.FetchBTTVEmotes(context.Background(), GlobalChannel); err != nil {
		t.Fatal(err)
	}
	firstGlobal, _ := f.Emote("sameCode")

	// The room endpoint serves the object shape, so point the adapter at a
	// second server before the channel-scoped fetch.
	server2 := jsonServer(t, http.StatusOK, `{
		"channelEmotes":[{"id":"y2","code":"sameCode","imageType":"png"}],
		"sharedEmotes":[]
	}`)
	f.bttv = &providers.BTTVClient{BaseURL: server2.URL}
	if _, err := f.FetchBTTVEmotes(context.Background(), "123"); err != nil {
		t.Fatal(err)
	}
	secondGlobal, _ := f.Emote("sameCode")
	if firstGlobal == secondGlobal {
		t.Errorf("global index should hold the later insertion")
	}
	if secondGlobal.ProviderID() != "y2" {
		t.Errorf("global entry id = %s, want y2 (last write wins)", secondGlobal.ProviderID())
	}

	// The earlier channel still holds its own instance.
	globalCh, _ := f.Channel(GlobalChannel)
	kept, _ := globalCh.Emotes().Get("sameCode")
	if kept != firstGlobal {
		t.Errorf("channel-local entry must survive a global overwrite")
	}
}
