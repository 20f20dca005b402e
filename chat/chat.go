package chat

import (
	"context"
	"log/slog"

	twitch "github.com/gempir/go-twitch-irc/v4"

	"github.com/onnwee/emote-tender/emotes"
)

// BridgeConfig carries the IRC credentials and target channel for a bridge.
type BridgeConfig struct {
	Channel     string
	BotUsername string
	OAuthToken  string
}

// MessageHandler receives each chat message alongside its emote-rewritten
// form.
type MessageHandler func(user, raw, rewritten string)

// StartBridge connects to Twitch IRC for cfg.Channel and runs every incoming
// message through parser, handing the rewritten text to handler (or logging
// it when handler is nil). It blocks until ctx is canceled or the connection
// fails.
func StartBridge(ctx context.Context, cfg BridgeConfig, parser *emotes.Parser, handler MessageHandler) {
	if cfg.Channel == "" || cfg.BotUsername == "" || cfg.OAuthToken == "" {
		slog.Info("twitch chat creds not set; skipping emote bridge")
		return
	}
	if handler == nil {
		handler = func(user, raw, rewritten string) {
			slog.Info("chat", slog.String("user", user), slog.String("message", rewritten))
		}
	}
	client := twitch.NewClient(cfg.BotUsername, cfg.OAuthToken)

	client.OnPrivateMessage(func(msg twitch.PrivateMessage) {
		handler(msg.User.Name, msg.Message, parser.Parse(msg.Message))
	})

	// Handle context cancellation by closing the client
	done := make(chan struct{})
	go func() {
		<-ctx.Done()
		if err := client.Disconnect(); err != nil {
			slog.Debug("twitch chat disconnect", slog.Any("err", err))
		}
		close(done)
	}()

	client.Join(cfg.Channel)
	if err := client.Connect(); err != nil {
		slog.Error("twitch chat connect error", slog.Any("err", err))
	}
	<-done
}
