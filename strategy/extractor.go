package strategy

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/samber/mo"
	"github.com/ytfetch-cli/ytfetch/constant"
	"github.com/ytfetch-cli/ytfetch/filesystem"
	"github.com/ytfetch-cli/ytfetch/log"
	"github.com/ytfetch-cli/ytfetch/media"
	"github.com/ytfetch-cli/ytfetch/stream"
	"github.com/ytfetch-cli/ytfetch/util"
	"github.com/ytfetch-cli/ytfetch/ytdlp"
)

// Downloader runs one extractor download and returns the produced file.
type Downloader interface {
	Download(ctx context.Context, spec ytdlp.Spec) (string, error)
}

// Extractor transcodes through yt-dlp into a temp file and streams it back.
type Extractor struct {
	Runner   Downloader
	VideoDir string
	AudioDir string
}

// Merge downloads the best video capped at height merged with the best audio.
func (e *Extractor) Merge(ctx context.Context, req media.Request, height int, title string) (*Result, error) {
	spec := ytdlp.Spec{
		URL:    req.URL,
		Cookie: req.Cookie,
		Height: height,
		Dir:    e.VideoDir,
		Stem:   stem(title, constant.DefaultVideoName),
	}
	return e.run(ctx, spec, title, constant.DefaultVideoName)
}

// Audio downloads the best audio converted to tag's subformat.
func (e *Extractor) Audio(ctx context.Context, req media.Request, tag media.AudioTag, title string) (*Result, error) {
	spec := ytdlp.Spec{
		URL:       req.URL,
		Cookie:    req.Cookie,
		Audio:     true,
		Subformat: tag.Subformat,
		Dir:       e.AudioDir,
		Stem:      stem(title, constant.DefaultAudioName),
	}
	return e.run(ctx, spec, title, constant.DefaultAudioName)
}

func (e *Extractor) run(ctx context.Context, spec ytdlp.Spec, title, fallback string) (*Result, error) {
	path, err := e.Runner.Download(ctx, spec)
	if err != nil {
		return nil, &TranscodeError{Err: err}
	}

	remove := func() {
		if err := filesystem.API().Remove(path); err != nil {
			log.Warnf("failed to remove extractor output %s: %v", path, err)
		}
	}

	stat, err := filesystem.API().Stat(path)
	if err != nil {
		remove()
		return nil, &TranscodeError{Err: err}
	}

	body, err := stream.FromFile(path, remove)
	if err != nil {
		return nil, &TranscodeError{Err: err}
	}

	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	result := okResult(body, util.FileName(title, fallback, ext), ytdlp.MimeType(ext))
	result.ContentLength = mo.Some(stat.Size())
	return result, nil
}

func stem(title, fallback string) string {
	if s := util.SanitizeFilename(title); s != "" {
		return s
	}
	return fallback
}
