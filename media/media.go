// Package media defines the canonical shapes shared by every metadata provider and retrieval strategy.
//
// Providers translate their own field names into Format and Metadata through explicit adapter
// functions; nothing downstream of the resolver sees a provider-specific type.
package media

import (
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/samber/lo"
	"github.com/ytfetch-cli/ytfetch/constant"
)

// Format is one upstream rendition of a video.
// Zero Height, Bitrate and ContentLength mean the provider did not report them.
type Format struct {
	ID            string `json:"id"`
	DirectURL     string `json:"directUrl,omitempty"`
	MimeHint      string `json:"mimeHint,omitempty"`
	QualityLabel  string `json:"qualityLabel,omitempty"`
	Height        int    `json:"height,omitempty"`
	Bitrate       int    `json:"bitrate,omitempty"`
	ContentLength int64  `json:"contentLength,omitempty"`
	HasAudio      bool   `json:"hasAudio"`
	HasVideo      bool   `json:"hasVideo"`
}

// Muxed reports whether the format carries both audio and video.
func (f *Format) Muxed() bool { return f.HasAudio && f.HasVideo }

// AudioOnly reports whether the format carries audio without video.
func (f *Format) AudioOnly() bool { return f.HasAudio && !f.HasVideo }

// VideoOnly reports whether the format carries video without audio.
func (f *Format) VideoOnly() bool { return f.HasVideo && !f.HasAudio }

// Selectable reports whether the format carries any track at all.
func (f *Format) Selectable() bool { return f.HasAudio || f.HasVideo }

// Label returns the quality label, or "<height>p" when only the height is known.
func (f *Format) Label() string {
	if f.QualityLabel != "" {
		return f.QualityLabel
	}
	if f.Height > 0 {
		return strconv.Itoa(f.Height) + "p"
	}
	return ""
}

// Tier records which metadata provider produced a result.
type Tier int

const (
	Primary Tier = iota
	Secondary
	Extractor
	Unavailable
)

func (t Tier) String() string {
	switch t {
	case Primary:
		return "primary"
	case Secondary:
		return "secondary"
	case Extractor:
		return "extractor"
	default:
		return "unavailable"
	}
}

// Metadata is the resolved description of one video.
type Metadata struct {
	Title     string   `json:"title"`
	Thumbnail string   `json:"thumbnail"`
	Formats   []Format `json:"formats"`
	Tier      Tier     `json:"-"`
}

// Empty reports whether the metadata carries nothing usable.
func (m *Metadata) Empty() bool {
	return m == nil || (m.Title == "" && len(m.Formats) == 0)
}

// Limited reports whether the result came from a fallback tier.
func (m *Metadata) Limited() bool {
	return m.Tier != Primary
}

// Qualities returns the distinct labels of video-carrying formats ordered by their leading integer.
// Labels without a leading integer keep their discovery order after the numeric ones.
func (m *Metadata) Qualities() []string {
	seen := make(map[string]struct{})
	labels := make([]string, 0)
	for i := range m.Formats {
		f := &m.Formats[i]
		if !f.HasVideo && f.Height == 0 {
			continue
		}
		label := f.Label()
		if label == "" {
			continue
		}
		if _, ok := seen[label]; ok {
			continue
		}
		seen[label] = struct{}{}
		labels = append(labels, label)
	}

	sort.SliceStable(labels, func(i, j int) bool {
		a, aok := LeadingInt(labels[i])
		b, bok := LeadingInt(labels[j])
		switch {
		case aok && bok:
			return a < b
		case aok:
			return true
		default:
			return false
		}
	})

	return labels
}

// LeadingInt parses the integer prefix of s after leading whitespace, as parseInt does.
func LeadingInt(s string) (int, bool) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	start := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == start {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

// DigitsOnly extracts the height encoded in a token by dropping every non-digit.
// Tokens without digits report false, meaning no height constraint.
func DigitsOnly(token string) (int, bool) {
	var b strings.Builder
	for _, r := range token {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(b.String())
	if err != nil {
		return 0, false
	}
	return n, true
}

// Request is the caller-supplied input to a retrieval.
type Request struct {
	URL    string
	Token  string
	Cookie string
	Range  string
}

// EffectiveToken returns the requested token, defaulting to "best".
func (r *Request) EffectiveToken() string {
	if r.Token == "" {
		return constant.TokenBest
	}
	return r.Token
}

// AudioSubformats lists the output codecs accepted after "audio:".
var AudioSubformats = []string{"mp3", "wav", "m4a", "opus", "flac"}

// AudioTag selects an audio-only output codec.
type AudioTag struct {
	Subformat string
}

// ParseAudioTag recognizes "audio" and "audio:<sub>" tokens.
// An absent or unknown subformat falls back to m4a.
func ParseAudioTag(token string) (AudioTag, bool) {
	if !strings.HasPrefix(token, constant.TokenAudio) {
		return AudioTag{}, false
	}

	rest := strings.TrimPrefix(token, constant.TokenAudio)
	sub := ""
	if strings.HasPrefix(rest, ":") {
		sub = strings.SplitN(rest[1:], ":", 2)[0]
	}
	sub = strings.ToLower(sub)
	if !lo.Contains(AudioSubformats, sub) {
		sub = constant.DefaultAudioType
	}
	return AudioTag{Subformat: sub}, true
}
