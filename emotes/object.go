package emotes

import (
	"fmt"
	"strconv"
)

// EmoteObject is the plain serializable form of an Emote, suitable for JSON
// round-trips. The Provider tag selects the variant constructor when the
// object is restored through FromObjects.
type EmoteObject struct {
	Provider  Provider    `json:"provider"`
	Code      string      `json:"code"`
	ID        string      `json:"id"`
	Channel   string      `json:"channel,omitempty"`
	Animated  bool        `json:"animated,omitempty"`
	ImageType string      `json:"image_type,omitempty"`
	Format    ImageFormat `json:"format,omitempty"`
	Modifier  bool        `json:"modifier,omitempty"`
}

// ffzID parses an FFZ provider-native integer id from its string form.
func ffzID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("ffz emote id %q: %w", s, err)
	}
	return id, nil
}

// objectConstructors dispatches a descriptor's provider tag to the matching
// variant constructor. Channel setup has already happened by the time one of
// these runs.
var objectConstructors = map[Provider]func(o EmoteObject, ch *Channel) (Emote, error){
	ProviderTwitch: func(o EmoteObject, ch *Channel) (Emote, error) {
		return NewTwitchEmote(o.Code, o.ID, o.Animated, ch), nil
	},
	ProviderBTTV: func(o EmoteObject, ch *Channel) (Emote, error) {
		return NewBTTVEmote(o.Code, o.ID, o.ImageType, o.Animated, ch), nil
	},
	ProviderFFZ: func(o EmoteObject, ch *Channel) (Emote, error) {
		id, err := ffzID(o.ID)
		if err != nil {
			return nil, err
		}
		return NewFFZEmote(o.Code, id, o.Modifier, ch), nil
	},
	ProviderSevenTV: func(o EmoteObject, ch *Channel) (Emote, error) {
		if o.Format != "" {
			ch.setFormat(o.Format)
		}
		return NewSevenTVEmote(o.Code, o.ID, o.Animated, o.Format, ch), nil
	},
}

// FromObjects reconstructs and caches Emote values from previously serialized
// plain descriptors, restoring a saved cache without re-hitting the network.
// Restoration is best-effort: it stops at the first invalid descriptor with
// an *UnknownProviderError (or an id conversion error), and descriptors
// processed before the failure stay cached. Callers wanting all-or-nothing
// behavior must validate the batch up front.
func (f *Fetcher) FromObjects(objs []EmoteObject) ([]Emote, error) {
	out := make([]Emote, 0, len(objs))
	for _, o := range objs {
		build, ok := objectConstructors[o.Provider]
		if !ok {
			return nil, &UnknownProviderError{Tag: string(o.Provider)}
		}
		ch := f.channel(o.Channel)
		e, err := build(o, ch)
		if err != nil {
			return nil, err
		}
		f.cache(ch, e)
		out = append(out, e)
	}
	return out, nil
}

// Objects returns the global index as plain descriptors in insertion order,
// the inverse of FromObjects.
func (f *Fetcher) Objects() []EmoteObject {
	emotes := f.emotes.Emotes()
	out := make([]EmoteObject, 0, len(emotes))
	for _, e := range emotes {
		out = append(out, e.Object())
	}
	return out
}
