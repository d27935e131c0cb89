package strategy

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/kkdai/youtube/v2"
	"github.com/ytfetch-cli/ytfetch/constant"
	"github.com/ytfetch-cli/ytfetch/ffmpeg"
	"github.com/ytfetch-cli/ytfetch/media"
	"github.com/ytfetch-cli/ytfetch/network"
	"github.com/ytfetch-cli/ytfetch/resolver"
	"github.com/ytfetch-cli/ytfetch/selector"
	"github.com/ytfetch-cli/ytfetch/stream"
	"github.com/ytfetch-cli/ytfetch/util"
)

var (
	errNoAudio = errors.New("no audio-only stream")
	errNoVideo = errors.New("no video-only stream")
)

// Source is one video's set of openable upstream streams.
type Source interface {
	Formats() []media.Format
	Open(ctx context.Context, f *media.Format) (io.ReadCloser, error)
}

// Upstream loads the streams of a video.
type Upstream interface {
	Load(ctx context.Context, req media.Request) (Source, error)
}

// Transcoder turns raw upstream streams into a deliverable one.
type Transcoder interface {
	Audio(ctx context.Context, src io.ReadCloser, sub string) (*stream.Stream, error)
	Merge(ctx context.Context, video, audio io.ReadCloser) (*stream.Stream, error)
}

// Library transcodes streams fetched in-process by the player client.
type Library struct {
	Upstream Upstream
	FFmpeg   Transcoder
}

// Audio transcodes the highest-bitrate audio-only stream to tag's subformat.
func (l *Library) Audio(ctx context.Context, req media.Request, tag media.AudioTag, title string) (*Result, error) {
	src, err := l.Upstream.Load(ctx, req)
	if err != nil {
		return nil, err
	}

	best := selector.BestAudio(src.Formats())
	if best == nil {
		return nil, errNoAudio
	}

	rc, err := src.Open(ctx, best)
	if err != nil {
		return nil, err
	}

	s, err := l.FFmpeg.Audio(ctx, rc, tag.Subformat)
	if err != nil {
		return nil, &TranscodeError{Err: err}
	}

	body, err := prime(ctx, s)
	if err != nil {
		return nil, err
	}

	out := ffmpeg.AudioOutput(tag.Subformat)
	return okResult(body, util.FileName(title, constant.DefaultAudioName, out.Ext), out.ContentType), nil
}

// Merge muxes the merge's video and audio streams into matroska.
// Formats the selector did not pin are picked again from the loaded source.
func (l *Library) Merge(ctx context.Context, req media.Request, merge *selector.Merge, title string) (*Result, error) {
	src, err := l.Upstream.Load(ctx, req)
	if err != nil {
		return nil, err
	}

	formats := src.Formats()
	video := pick(formats, merge.Video, func() *media.Format { return selector.BestVideo(formats, merge.Height) })
	if video == nil {
		return nil, errNoVideo
	}
	audio := pick(formats, merge.Audio, func() *media.Format { return selector.BestAudio(formats) })
	if audio == nil {
		return nil, errNoAudio
	}

	videoRC, err := src.Open(ctx, video)
	if err != nil {
		return nil, err
	}

	audioRC, err := src.Open(ctx, audio)
	if err != nil {
		_ = videoRC.Close()
		return nil, err
	}

	s, err := l.FFmpeg.Merge(ctx, videoRC, audioRC)
	if err != nil {
		return nil, &TranscodeError{Err: err}
	}

	body, err := prime(ctx, s)
	if err != nil {
		return nil, err
	}

	return okResult(body, util.FileName(title, constant.DefaultVideoName, ffmpeg.MergeOutput.Ext), ffmpeg.MergeOutput.ContentType), nil
}

func pick(formats []media.Format, pinned *media.Format, fallback func() *media.Format) *media.Format {
	if pinned != nil {
		for i := range formats {
			if formats[i].ID == pinned.ID {
				return &formats[i]
			}
		}
	}
	return fallback()
}

// YouTubeUpstream opens streams through the kkdai/youtube player client.
type YouTubeUpstream struct {
	HTTPClient *http.Client
}

// Load fetches the player response with the request's headers applied to every call.
func (u *YouTubeUpstream) Load(ctx context.Context, req media.Request) (Source, error) {
	headers := Headers(media.Request{Cookie: req.Cookie})
	client := &youtube.Client{HTTPClient: network.WithHeaders(u.HTTPClient, headers)}

	video, err := client.GetVideoContext(ctx, req.URL)
	if err != nil {
		return nil, err
	}

	return &youtubeSource{client: client, video: video, md: resolver.FromVideo(video)}, nil
}

type youtubeSource struct {
	client *youtube.Client
	video  *youtube.Video
	md     *media.Metadata
}

func (s *youtubeSource) Formats() []media.Format {
	return s.md.Formats
}

func (s *youtubeSource) Open(ctx context.Context, f *media.Format) (io.ReadCloser, error) {
	itag, err := strconv.Atoi(f.ID)
	if err != nil {
		return nil, err
	}

	formats := s.video.Formats.Itag(itag)
	if len(formats) == 0 {
		return nil, errors.New("format " + f.ID + " vanished from the player response")
	}

	rc, _, err := s.client.GetStreamContext(ctx, s.video, &formats[0])
	return rc, err
}
