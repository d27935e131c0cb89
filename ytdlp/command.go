package ytdlp

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/lrstanley/go-ytdlp"
	"github.com/sirupsen/logrus"
	"github.com/ytfetch-cli/ytfetch/constant"
	"github.com/ytfetch-cli/ytfetch/filesystem"
	"github.com/ytfetch-cli/ytfetch/log"
	"github.com/ytfetch-cli/ytfetch/media"
	"github.com/ytfetch-cli/ytfetch/util"
)

// maxStemRunes keeps the prefix plus yt-dlp's own suffixes under common filename limits.
const maxStemRunes = 80

// Runner executes yt-dlp for metadata dumps and downloads.
type Runner struct {
	Installer *Installer
	FFmpeg    string
	Disabled  bool
}

// Spec describes one extractor download.
type Spec struct {
	URL       string
	Cookie    string
	Audio     bool
	Subformat string
	// Height caps the video stream; zero leaves it unconstrained.
	Height int
	Dir    string
	Stem   string
}

// VideoFormat is the -f selector for a merge capped at height.
func VideoFormat(height int) string {
	if height <= 0 {
		return "bestvideo+bestaudio/best"
	}
	h := strconv.Itoa(height)
	return "bestvideo[height<=" + h + "]+bestaudio/best[height<=" + h + "]"
}

// Prefix returns the unique file name prefix of a download started at t.
func (s Spec) Prefix(t time.Time) string {
	stem := []rune(util.SanitizeFilename(s.Stem))
	if len(stem) > maxStemRunes {
		stem = stem[:maxStemRunes]
	}
	return strconv.FormatInt(t.UnixNano(), 10) + "-" + string(stem)
}

// Enabled reports whether yt-dlp may be invoked at all.
func (r *Runner) Enabled() bool {
	return r != nil && !r.Disabled
}

func (r *Runner) command(ctx context.Context, cookie string) (*ytdlp.Command, error) {
	if !r.Enabled() {
		return nil, ErrDisabled
	}

	bin, err := r.Installer.Ensure(ctx)
	if err != nil {
		return nil, err
	}

	cmd := ytdlp.New().
		SetExecutable(bin).
		NoPlaylist().
		AddHeaders("User-Agent: " + constant.UserAgent)

	if cookie != "" {
		cmd = cmd.AddHeaders("Cookie: " + cookie)
	}

	if r.FFmpeg != "" {
		cmd = cmd.FFmpegLocation(r.FFmpeg)
	}

	return cmd, nil
}

// DumpJSON runs `yt-dlp -J` and returns its stdout.
func (r *Runner) DumpJSON(ctx context.Context, url string) ([]byte, error) {
	cmd, err := r.command(ctx, "")
	if err != nil {
		return nil, err
	}

	result, err := cmd.DumpSingleJSON().Run(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("yt-dlp -J: %w", err)
	}

	return []byte(result.Stdout), nil
}

// Resolve makes the runner usable as a metadata provider.
func (r *Runner) Resolve(ctx context.Context, url string) (*media.Metadata, error) {
	data, err := r.DumpJSON(ctx, url)
	if err != nil {
		return nil, err
	}

	return ParseInfo(data)
}

// Download runs yt-dlp for spec and returns the path of the produced file.
// Partial files sharing the download's prefix are removed when it fails.
func (r *Runner) Download(ctx context.Context, spec Spec) (string, error) {
	cmd, err := r.command(ctx, spec.Cookie)
	if err != nil {
		return "", err
	}

	if err := filesystem.API().MkdirAll(spec.Dir, 0o755); err != nil {
		return "", err
	}

	prefix := spec.Prefix(time.Now())
	cmd = cmd.Output(filepath.Join(spec.Dir, prefix+".%(ext)s"))

	if spec.Audio {
		sub := spec.Subformat
		if sub == "" {
			sub = constant.DefaultAudioType
		}
		cmd = cmd.Format("bestaudio").ExtractAudio().AudioFormat(sub)
		if sub == "mp3" {
			cmd = cmd.AudioQuality("0")
		}
	} else {
		cmd = cmd.Format(VideoFormat(spec.Height)).MergeOutputFormat("mkv")
	}

	entry := log.WithFields(logrus.Fields{"url": spec.URL, "audio": spec.Audio, "prefix": prefix})
	entry.Debug("starting yt-dlp download")

	if _, err := cmd.Run(ctx, spec.URL); err != nil {
		RemovePrefixed(spec.Dir, prefix)
		return "", fmt.Errorf("yt-dlp download: %w", err)
	}

	path, err := FindPrefixed(spec.Dir, prefix)
	if err != nil {
		RemovePrefixed(spec.Dir, prefix)
		return "", err
	}

	entry.WithField("path", path).Debug("yt-dlp download finished")
	return path, nil
}

// FindPrefixed returns the finished file in dir whose name starts with prefix.
// Intermediate .part and .ytdl files are ignored.
func FindPrefixed(dir, prefix string) (string, error) {
	for _, match := range prefixed(dir, prefix) {
		if isPartial(match) {
			continue
		}
		return match, nil
	}

	return "", fmt.Errorf("yt-dlp produced no output for %s", prefix)
}

// RemovePrefixed deletes every file in dir whose name starts with prefix.
func RemovePrefixed(dir, prefix string) {
	for _, match := range prefixed(dir, prefix) {
		if err := filesystem.API().Remove(match); err != nil {
			log.Warnf("failed to remove %s: %v", match, err)
		}
	}
}

// prefixed lists by name rather than globbing since titles may contain glob metacharacters.
func prefixed(dir, prefix string) []string {
	entries, err := filesystem.API().ReadDir(dir)
	if err != nil {
		return nil
	}

	var matches []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), prefix) {
			continue
		}
		matches = append(matches, filepath.Join(dir, entry.Name()))
	}

	return matches
}

func isPartial(path string) bool {
	return strings.HasSuffix(path, ".part") || strings.HasSuffix(path, ".ytdl") || strings.HasSuffix(path, ".temp")
}

// MimeType maps an extractor output extension to its content type.
func MimeType(ext string) string {
	switch strings.TrimPrefix(strings.ToLower(ext), ".") {
	case "mp3":
		return "audio/mpeg"
	case "wav":
		return "audio/wav"
	case "m4a":
		return "audio/mp4"
	case "opus", "ogg":
		return "audio/ogg"
	case "flac":
		return "audio/flac"
	case "mkv":
		return "video/x-matroska"
	case "mp4":
		return "video/mp4"
	case "webm":
		return "video/webm"
	default:
		return "application/octet-stream"
	}
}
