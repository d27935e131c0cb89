// Package selector maps a quality token and resolved metadata to a retrieval decision.
//
// Select is pure: it never performs I/O, and the same inputs always yield the same Decision.
package selector

import (
	"strings"

	"github.com/ytfetch-cli/ytfetch/constant"
	"github.com/ytfetch-cli/ytfetch/media"
)

// Strategy is how the bytes will reach the client.
type Strategy int

const (
	Unavailable Strategy = iota
	Redirect
	Proxy
	Transcode
)

func (s Strategy) String() string {
	switch s {
	case Redirect:
		return "redirect"
	case Proxy:
		return "proxy"
	case Transcode:
		return "transcode"
	default:
		return "unavailable"
	}
}

// Mode is the shape of the delivered media, reported in the X-Mode header.
type Mode string

const (
	ModeNone  Mode = ""
	ModeAudio Mode = "audio"
	ModeMuxed Mode = "muxed"
	ModeMerge Mode = "merge"
)

// Merge describes a video and audio pair to be muxed together.
type Merge struct {
	// Height caps the video stream; zero leaves it unconstrained.
	Height int
	Video  *media.Format
	Audio  *media.Format
	// Deferred is set when no formats are known and the retrieval tiers pick them on load.
	Deferred bool
}

// Decision is the outcome of Select.
type Decision struct {
	Strategy Strategy
	Mode     Mode
	Target   *media.Format
	Audio    media.AudioTag
	Merge    *Merge
}

// Available reports whether anything can be delivered.
func (d Decision) Available() bool {
	return d.Strategy != Unavailable
}

// Options tunes Select.
type Options struct {
	// Redirect sends direct targets as a 302 instead of proxying them.
	Redirect bool
}

func (o Options) direct() Strategy {
	if o.Redirect {
		return Redirect
	}
	return Proxy
}

// Select applies the selection rules in priority order.
func Select(md *media.Metadata, token string, opts Options) Decision {
	if token == "" {
		token = constant.TokenBest
	}

	var formats []media.Format
	if md != nil {
		formats = md.Formats
	}

	if tag, ok := media.ParseAudioTag(token); ok {
		return selectAudio(formats, tag, opts)
	}

	isBest := token == constant.TokenBest

	if f := findMuxed(formats, func(f *media.Format) bool { return f.Label() == token }); f != nil {
		return Decision{Strategy: opts.direct(), Mode: ModeMuxed, Target: f}
	}

	if isBest {
		if f := findMuxed(formats, func(*media.Format) bool { return true }); f != nil {
			return Decision{Strategy: opts.direct(), Mode: ModeMuxed, Target: f}
		}
	} else {
		if f := findMuxed(formats, func(f *media.Format) bool { return strings.Contains(f.Label(), token) }); f != nil {
			return Decision{Strategy: opts.direct(), Mode: ModeMuxed, Target: f}
		}
	}

	height, numeric := media.DigitsOnly(token)

	if numeric && hasVideoWithin(formats, token, height) {
		return mergeDecision(formats, height)
	}

	if isBest && hasVideoOnly(formats) {
		return mergeDecision(formats, 0)
	}

	if len(formats) == 0 && (isBest || numeric) {
		return Decision{Strategy: Transcode, Mode: ModeMerge, Merge: &Merge{Height: height, Deferred: true}}
	}

	return Decision{Strategy: Unavailable}
}

func selectAudio(formats []media.Format, tag media.AudioTag, opts Options) Decision {
	var hints []string
	switch tag.Subformat {
	case "m4a":
		hints = []string{"audio/mp4", "m4a"}
	case "opus":
		hints = []string{"audio/webm", "opus"}
	}

	if len(hints) > 0 {
		for i := range formats {
			f := &formats[i]
			if !f.AudioOnly() || f.DirectURL == "" {
				continue
			}
			for _, hint := range hints {
				if strings.Contains(f.MimeHint, hint) {
					return Decision{Strategy: opts.direct(), Mode: ModeAudio, Target: f, Audio: tag}
				}
			}
		}
	}

	return Decision{Strategy: Transcode, Mode: ModeAudio, Audio: tag}
}

// findMuxed returns the first muxed format with a direct URL satisfying match.
func findMuxed(formats []media.Format, match func(f *media.Format) bool) *media.Format {
	for i := range formats {
		f := &formats[i]
		if f.Muxed() && f.DirectURL != "" && match(f) {
			return f
		}
	}
	return nil
}

func hasVideoWithin(formats []media.Format, token string, height int) bool {
	for i := range formats {
		f := &formats[i]
		if !f.HasVideo && f.Height == 0 {
			continue
		}
		if f.Height > 0 {
			if f.Height <= height {
				return true
			}
			continue
		}
		if strings.Contains(f.Label(), token) {
			return true
		}
	}
	return false
}

func hasVideoOnly(formats []media.Format) bool {
	for i := range formats {
		if formats[i].VideoOnly() {
			return true
		}
	}
	return false
}

func mergeDecision(formats []media.Format, height int) Decision {
	return Decision{
		Strategy: Transcode,
		Mode:     ModeMerge,
		Merge: &Merge{
			Height: height,
			Video:  BestVideo(formats, height),
			Audio:  BestAudio(formats),
		},
	}
}

// BestVideo returns the tallest video-only format no taller than height, preferring higher bitrate on ties.
// A zero height leaves it unconstrained.
func BestVideo(formats []media.Format, height int) *media.Format {
	var best *media.Format
	for i := range formats {
		f := &formats[i]
		if !f.VideoOnly() {
			continue
		}
		if height > 0 && f.Height > height {
			continue
		}
		if best == nil || f.Height > best.Height || (f.Height == best.Height && f.Bitrate > best.Bitrate) {
			best = f
		}
	}
	return best
}

// BestAudio returns the audio-only format with the highest bitrate.
func BestAudio(formats []media.Format) *media.Format {
	var best *media.Format
	for i := range formats {
		f := &formats[i]
		if !f.AudioOnly() {
			continue
		}
		if best == nil || f.Bitrate > best.Bitrate {
			best = f
		}
	}
	return best
}
