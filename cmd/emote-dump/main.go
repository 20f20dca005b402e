// Command emote-dump fetches a channel's emotes across all providers and
// writes the cache as a JSON array of plain descriptors, or restores such a
// dump without touching the network and renders a sample text through it.
//
// Dump:    emote-dump -channel-id 12345 -out emotes.json
// Restore: emote-dump -load emotes.json -text "hello :Kappa:"
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/onnwee/emote-tender/config"
	"github.com/onnwee/emote-tender/emotes"
)

func main() {
	channelID := flag.String("channel-id", "", "broadcaster id to fetch channel emotes for (empty: global sets only)")
	out := flag.String("out", "emotes.json", "output file for the dump")
	load := flag.String("load", "", "restore a dump from this file instead of fetching")
	text := flag.String("text", "", "sample text to parse after a restore")
	timeout := flag.Duration("timeout", 30*time.Second, "overall fetch timeout")
	flag.Parse()

	_ = godotenv.Load(".env")
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	if *load != "" {
		if err := restore(*load, *text); err != nil {
			slog.Error("restore failed", slog.Any("err", err))
			os.Exit(1)
		}
		return
	}
	if err := dump(*channelID, *out, *timeout); err != nil {
		slog.Error("dump failed", slog.Any("err", err))
		os.Exit(1)
	}
}

func dump(channelID, out string, timeout time.Duration) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	fetcher := emotes.New(emotes.Options{
		TwitchClientID:     cfg.TwitchClientID,
		TwitchClientSecret: cfg.TwitchClientSecret,
	})

	channels := []string{emotes.GlobalChannel}
	if channelID != "" {
		channels = append(channels, channelID)
	}
	for _, id := range channels {
		if _, err := fetcher.FetchTwitchEmotes(ctx, id); err != nil {
			slog.Warn("twitch fetch failed", slog.String("channel", id), slog.Any("err", err))
		}
		_, _ = fetcher.FetchBTTVEmotes(ctx, id)
		_, _ = fetcher.FetchFFZEmotes(ctx, id)
		_, _ = fetcher.FetchSevenTVEmotes(ctx, id, emotes.ImageFormat(cfg.SevenTVFormat))
	}

	objs := fetcher.Objects()
	if len(objs) == 0 {
		return fmt.Errorf("no emotes fetched; nothing to write")
	}
	data, err := json.MarshalIndent(objs, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return err
	}
	slog.Info("dump written", slog.String("file", out), slog.Int("emotes", len(objs)))
	return nil
}

func restore(path, text string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var objs []emotes.EmoteObject
	if err := json.Unmarshal(data, &objs); err != nil {
		return err
	}
	fetcher := emotes.New(emotes.Options{})
	restored, err := fetcher.FromObjects(objs)
	if err != nil {
		return err
	}
	slog.Info("cache restored", slog.Int("emotes", len(restored)))
	if text != "" {
		parser := &emotes.Parser{Fetcher: fetcher}
		fmt.Println(parser.Parse(text))
	}
	return nil
}
