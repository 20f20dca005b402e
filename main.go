// Command emote-tender is the live chat bridge entrypoint. It:
//   - Loads configuration and initializes structured logging.
//   - Builds an emote fetcher and warms the cache from all four providers
//     for the configured channel (plus the global sets).
//   - Connects to Twitch IRC and logs every message with its emote codes
//     rewritten through the configured template.
//   - Exposes a minimal HTTP server with /healthz and /metrics.
//
// Shutdown is graceful on SIGINT/SIGTERM.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/onnwee/emote-tender/chat"
	"github.com/onnwee/emote-tender/config"
	"github.com/onnwee/emote-tender/emotes"
	"github.com/onnwee/emote-tender/telemetry"
)

func main() {
	// Load .env file if present (local dev convenience only; production relies on real env)
	_ = godotenv.Load(".env")

	// Configure logging (level + format). Defaults: level=info, format=text.
	lvl := slog.LevelInfo
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	case "info", "":
		// keep default
	default:
		tmp := slog.New(slog.NewTextHandler(os.Stdout, nil))
		tmp.Warn("unknown LOG_LEVEL, using info", slog.String("value", os.Getenv("LOG_LEVEL")))
	}
	var handler slog.Handler
	if strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})
	} else {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})
	}
	slog.SetDefault(slog.New(handler))

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load failed", slog.Any("err", err))
		os.Exit(1)
	}

	telemetry.Init()
	shutdownTracing, err := telemetry.InitTracing("emote-tender", "dev")
	if err != nil {
		slog.Error("tracing init failed", slog.Any("err", err))
		os.Exit(1)
	}
	defer shutdownTracing()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fetcher := emotes.New(emotes.Options{
		TwitchClientID:     cfg.TwitchClientID,
		TwitchClientSecret: cfg.TwitchClientSecret,
	})

	warmCache(ctx, cfg, fetcher)

	tmpl, ok := emotes.TemplateByName(cfg.Template)
	if !ok {
		slog.Warn("unknown EMOTE_TEMPLATE, using markdown", slog.String("value", cfg.Template))
		tmpl = emotes.MarkdownTemplate
	}
	parser := &emotes.Parser{Fetcher: fetcher, Template: tmpl, Size: cfg.EmoteSize}

	// Minimal HTTP surface: liveness + metrics.
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: cfg.ListenAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		slog.Info("http server listening", slog.String("addr", cfg.ListenAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("http server error", slog.Any("err", err))
		}
	}()

	if err := cfg.ValidateChatReady(); err != nil {
		slog.Info("chat bridge disabled", slog.Any("reason", err))
		<-ctx.Done()
	} else {
		chat.StartBridge(ctx, chat.BridgeConfig{
			Channel:     cfg.TwitchChannel,
			BotUsername: cfg.TwitchBotUsername,
			OAuthToken:  cfg.TwitchOAuthToken,
		}, parser, nil)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("http shutdown error", slog.Any("err", err))
	}
	slog.Info("shutdown complete", slog.Int("emotes_cached", fetcher.Emotes().Len()))
}

// warmCache populates the emote cache from every provider for the global
// scope and, when a channel is configured and resolvable, for that channel.
// Provider outages are non-fatal: whatever could be fetched gets cached.
func warmCache(ctx context.Context, cfg *config.Config, fetcher *emotes.Fetcher) {
	format := emotes.ImageFormat(cfg.SevenTVFormat)

	fetchAll := func(channelID string) {
		if _, err := fetcher.FetchTwitchEmotes(ctx, channelID); err != nil {
			slog.Warn("twitch emote fetch failed", slog.String("channel", channelID), slog.Any("err", err))
		}
		_, _ = fetcher.FetchBTTVEmotes(ctx, channelID)
		_, _ = fetcher.FetchFFZEmotes(ctx, channelID)
		_, _ = fetcher.FetchSevenTVEmotes(ctx, channelID, format)
	}

	fetchAll(emotes.GlobalChannel)

	if cfg.TwitchChannel == "" {
		return
	}
	if err := cfg.ValidateHelixReady(); err != nil {
		slog.Info("channel emotes skipped: cannot resolve channel id", slog.Any("reason", err))
		return
	}
	id, err := fetcher.ResolveChannelID(ctx, cfg.TwitchChannel)
	if err != nil {
		slog.Warn("channel id resolution failed", slog.String("channel", cfg.TwitchChannel), slog.Any("err", err))
		return
	}
	fetchAll(id)
	slog.Info("emote cache warmed", slog.String("channel", cfg.TwitchChannel), slog.Int("emotes", fetcher.Emotes().Len()))
}
