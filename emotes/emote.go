package emotes

import "strconv"

// Provider identifies one of the four supported emote catalogs. The values
// double as the tag used by EmoteObject / FromObjects round-trips.
type Provider string

const (
	ProviderTwitch  Provider = "twitch"
	ProviderBTTV    Provider = "bttv"
	ProviderFFZ     Provider = "ffz"
	ProviderSevenTV Provider = "7tv"
)

// Emote is one cached emote. Values are immutable after construction:
// re-fetching a channel replaces cache entries wholesale instead of mutating
// an existing instance.
type Emote interface {
	// Code is the text trigger, unique within a channel's index.
	Code() string
	// ProviderID is the provider-native identifier rendered as a string.
	ProviderID() string
	// Provider names the catalog this emote came from.
	Provider() Provider
	// Channel is a non-owning back-reference to the channel the emote was
	// cached under; used for render context only.
	Channel() *Channel
	// ToLink returns the direct asset URL at the given zero-based size index.
	ToLink(size int) string
	// Object returns the plain serializable form accepted by FromObjects.
	Object() EmoteObject
}

// TwitchEmote is an emote served from the Twitch emoticon CDN.
type TwitchEmote struct {
	code     string
	id       string
	animated bool
	channel  *Channel
}

func NewTwitchEmote(code, id string, animated bool, channel *Channel) *TwitchEmote {
	return &TwitchEmote{code: code, id: id, animated: animated, channel: channel}
}

func (e *TwitchEmote) Code() string       { return e.code }
func (e *TwitchEmote) ProviderID() string { return e.id }
func (e *TwitchEmote) Provider() Provider { return ProviderTwitch }
func (e *TwitchEmote) Channel() *Channel  { return e.channel }
func (e *TwitchEmote) Animated() bool     { return e.animated }

func (e *TwitchEmote) ToLink(size int) string { return twitchEmoteURL(e.id, size) }

func (e *TwitchEmote) Object() EmoteObject {
	return EmoteObject{Provider: ProviderTwitch, Code: e.code, ID: e.id, Channel: e.channel.ID(), Animated: e.animated}
}

// BTTVEmote is an emote served from the BetterTTV CDN.
type BTTVEmote struct {
	code      string
	id        string
	imageType string
	animated  bool
	channel   *Channel
}

func NewBTTVEmote(code, id, imageType string, animated bool, channel *Channel) *BTTVEmote {
	return &BTTVEmote{code: code, id: id, imageType: imageType, animated: animated, channel: channel}
}

func (e *BTTVEmote) Code() string       { return e.code }
func (e *BTTVEmote) ProviderID() string { return e.id }
func (e *BTTVEmote) Provider() Provider { return ProviderBTTV }
func (e *BTTVEmote) Channel() *Channel  { return e.channel }
func (e *BTTVEmote) ImageType() string  { return e.imageType }
func (e *BTTVEmote) Animated() bool     { return e.animated }

func (e *BTTVEmote) ToLink(size int) string { return bttvEmoteURL(e.id, size) }

func (e *BTTVEmote) Object() EmoteObject {
	return EmoteObject{Provider: ProviderBTTV, Code: e.code, ID: e.id, Channel: e.channel.ID(), Animated: e.animated, ImageType: e.imageType}
}

// FFZEmote is an emote served from the FrankerFaceZ CDN. Modifier emotes are
// overlay emotes meant to compose with a base emote; they are cached like any
// other emote but flagged so callers can filter them.
type FFZEmote struct {
	code     string
	id       int
	modifier bool
	channel  *Channel
}

func NewFFZEmote(code string, id int, modifier bool, channel *Channel) *FFZEmote {
	return &FFZEmote{code: code, id: id, modifier: modifier, channel: channel}
}

func (e *FFZEmote) Code() string       { return e.code }
func (e *FFZEmote) ProviderID() string { return strconv.Itoa(e.id) }
func (e *FFZEmote) Provider() Provider { return ProviderFFZ }
func (e *FFZEmote) Channel() *Channel  { return e.channel }
func (e *FFZEmote) Modifier() bool     { return e.modifier }

func (e *FFZEmote) ToLink(size int) string { return ffzEmoteURL(e.id, size) }

func (e *FFZEmote) Object() EmoteObject {
	return EmoteObject{Provider: ProviderFFZ, Code: e.code, ID: strconv.Itoa(e.id), Channel: e.channel.ID(), Modifier: e.modifier}
}

// SevenTVEmote is an emote served from the 7TV CDN. The image format is fixed
// at cache time from the owning channel's preference.
type SevenTVEmote struct {
	code     string
	id       string
	animated bool
	format   ImageFormat
	channel  *Channel
}

func NewSevenTVEmote(code, id string, animated bool, format ImageFormat, channel *Channel) *SevenTVEmote {
	if format == "" {
		format = DefaultSevenTVFormat
	}
	return &SevenTVEmote{code: code, id: id, animated: animated, format: format, channel: channel}
}

func (e *SevenTVEmote) Code() string        { return e.code }
func (e *SevenTVEmote) ProviderID() string  { return e.id }
func (e *SevenTVEmote) Provider() Provider  { return ProviderSevenTV }
func (e *SevenTVEmote) Channel() *Channel   { return e.channel }
func (e *SevenTVEmote) Animated() bool      { return e.animated }
func (e *SevenTVEmote) Format() ImageFormat { return e.format }

func (e *SevenTVEmote) ToLink(size int) string { return sevenTVEmoteURL(e.id, size, e.format) }

func (e *SevenTVEmote) Object() EmoteObject {
	return EmoteObject{Provider: ProviderSevenTV, Code: e.code, ID: e.id, Channel: e.channel.ID(), Animated: e.animated, Format: e.format}
}
