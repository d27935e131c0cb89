package ytdlp

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/ytfetch-cli/ytfetch/media"
)

// Info is the subset of the yt-dlp JSON dump the resolver reads.
type Info struct {
	Title      string       `json:"title"`
	Thumbnail  string       `json:"thumbnail"`
	Thumbnails []Thumbnail  `json:"thumbnails"`
	Formats    []InfoFormat `json:"formats"`
}

type Thumbnail struct {
	URL string `json:"url"`
}

// InfoFormat mirrors one entry of the dump's formats array.
// Numeric fields are pointers because yt-dlp emits null for unknown values.
type InfoFormat struct {
	FormatID       string   `json:"format_id"`
	URL            string   `json:"url"`
	Ext            string   `json:"ext"`
	FormatNote     string   `json:"format_note"`
	Height         *int     `json:"height"`
	AudioChannels  *int     `json:"audio_channels"`
	ASR            *float64 `json:"asr"`
	TBR            *float64 `json:"tbr"`
	Filesize       *int64   `json:"filesize"`
	FilesizeApprox *int64   `json:"filesize_approx"`
}

// ParseInfo decodes a `yt-dlp -J` dump into metadata.
func ParseInfo(data []byte) (*media.Metadata, error) {
	var info Info
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, fmt.Errorf("decode yt-dlp info: %w", err)
	}

	return info.Metadata(), nil
}

// Metadata adapts the dump into the shared shape.
func (i *Info) Metadata() *media.Metadata {
	md := &media.Metadata{
		Title:     i.Title,
		Thumbnail: i.Thumbnail,
		Formats:   make([]media.Format, 0, len(i.Formats)),
		Tier:      media.Extractor,
	}

	if len(i.Thumbnails) > 0 && i.Thumbnails[0].URL != "" {
		md.Thumbnail = i.Thumbnails[0].URL
	}

	for _, f := range i.Formats {
		md.Formats = append(md.Formats, f.Format())
	}

	return md
}

// Format adapts one dump entry.
func (f *InfoFormat) Format() media.Format {
	height := deref(f.Height)

	format := media.Format{
		ID:        f.FormatID,
		DirectURL: f.URL,
		Height:    height,
		HasAudio:  deref(f.AudioChannels) > 0 || deref(f.ASR) > 0,
		HasVideo:  height > 0,
		Bitrate:   int(deref(f.TBR)),
	}

	if f.Ext != "" {
		format.MimeHint = "video/" + f.Ext
	}

	switch {
	case f.FormatNote != "":
		format.QualityLabel = f.FormatNote
	case height > 0:
		format.QualityLabel = strconv.Itoa(height) + "p"
	}

	if size := deref(f.Filesize); size > 0 {
		format.ContentLength = size
	} else {
		format.ContentLength = deref(f.FilesizeApprox)
	}

	return format
}

func deref[T int | int64 | float64](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}
