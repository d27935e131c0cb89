package resolver

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/kkdai/youtube/v2"
	"github.com/ytfetch-cli/ytfetch/media"
)

// YouTube resolves metadata through the kkdai/youtube player API.
type YouTube struct {
	client   *youtube.Client
	decipher bool
}

// NewPrimary returns the full-metadata provider: every format URL goes through the decipherer.
func NewPrimary(httpClient *http.Client) *YouTube {
	return &YouTube{client: &youtube.Client{HTTPClient: httpClient}, decipher: true}
}

// NewSecondary returns the lighter provider. It skips the player script entirely and
// keeps only formats that already carry a plain URL, so adaptive formats may be missing.
func NewSecondary(httpClient *http.Client) *YouTube {
	return &YouTube{client: &youtube.Client{HTTPClient: httpClient}}
}

// Client exposes the underlying player client for stream retrieval.
func (y *YouTube) Client() *youtube.Client {
	return y.client
}

// Resolve fetches the player response and adapts it.
func (y *YouTube) Resolve(ctx context.Context, url string) (*media.Metadata, error) {
	video, err := y.client.GetVideoContext(ctx, url)
	if err != nil {
		return nil, err
	}

	if !y.decipher {
		return FromVideo(plain(video)), nil
	}

	md := FromVideo(video)
	// Plain URLs still carry the throttling parameter, so every format goes through the decipherer.
	for i := range video.Formats {
		if direct, err := y.client.GetStreamURLContext(ctx, video, &video.Formats[i]); err == nil {
			md.Formats[i].DirectURL = direct
		}
	}

	return md, nil
}

// plain returns a shallow copy of video without the ciphered formats.
func plain(video *youtube.Video) *youtube.Video {
	copied := *video
	copied.Formats = make(youtube.FormatList, 0, len(video.Formats))
	for _, f := range video.Formats {
		if f.URL != "" {
			copied.Formats = append(copied.Formats, f)
		}
	}
	return &copied
}

// FromVideo adapts a player response to the canonical metadata shape.
func FromVideo(video *youtube.Video) *media.Metadata {
	md := &media.Metadata{
		Title:   video.Title,
		Formats: make([]media.Format, len(video.Formats)),
	}

	if len(video.Thumbnails) > 0 {
		md.Thumbnail = video.Thumbnails[0].URL
	}

	for i := range video.Formats {
		md.Formats[i] = FromFormat(&video.Formats[i])
	}

	return md
}

// FromFormat adapts one player format.
func FromFormat(f *youtube.Format) media.Format {
	return media.Format{
		ID:            strconv.Itoa(f.ItagNo),
		DirectURL:     f.URL,
		MimeHint:      f.MimeType,
		QualityLabel:  f.QualityLabel,
		Height:        f.Height,
		Bitrate:       f.Bitrate,
		ContentLength: f.ContentLength,
		HasAudio:      f.AudioChannels > 0,
		HasVideo:      f.Height > 0 || strings.HasPrefix(f.MimeType, "video/"),
	}
}
