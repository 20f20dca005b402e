package emotes

import "fmt"

// ImageFormat selects the encoded image variant requested from a CDN, where
// the provider supports more than one (currently 7TV only).
type ImageFormat string

const (
	FormatWebP ImageFormat = "webp"
	FormatAVIF ImageFormat = "avif"
	FormatGIF  ImageFormat = "gif"
	FormatPNG  ImageFormat = "png"
)

// DefaultSevenTVFormat is used when no format preference was supplied.
const DefaultSevenTVFormat = FormatWebP

// ffzScales maps the shared zero-based size index onto the scale steps the
// FFZ CDN actually serves (1x, 2x and 4x; there is no 3x).
var ffzScales = [...]int{1, 2, 4}

func clampSize(size, max int) int {
	if size < 0 {
		return 0
	}
	if size > max {
		return max
	}
	return size
}

// twitchEmoteURL builds a Twitch CDN link. The shared size index is shifted
// by one into the CDN path convention (0 -> 1.0, 2 -> 3.0).
func twitchEmoteURL(id string, size int) string {
	return fmt.Sprintf("https://static-cdn.jtvnw.net/emoticons/v2/%s/default/dark/%d.0", id, clampSize(size, 2)+1)
}

func bttvEmoteURL(id string, size int) string {
	return fmt.Sprintf("https://cdn.betterttv.net/emote/%s/%dx", id, clampSize(size, 2)+1)
}

func ffzEmoteURL(id, size int) string {
	return fmt.Sprintf("https://cdn.frankerfacez.com/emote/%d/%d", id, ffzScales[clampSize(size, 2)])
}

func sevenTVEmoteURL(id string, size int, format ImageFormat) string {
	if format == "" {
		format = DefaultSevenTVFormat
	}
	return fmt.Sprintf("https://cdn.7tv.app/emote/%s/%dx.%s", id, clampSize(size, 3)+1, format)
}
