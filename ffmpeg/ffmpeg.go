// Package ffmpeg runs ffmpeg as a streaming transcoder fed from upstream readers.
package ffmpeg

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"

	"github.com/ytfetch-cli/ytfetch/constant"
	"github.com/ytfetch-cli/ytfetch/internal/proc"
	"github.com/ytfetch-cli/ytfetch/log"
	"github.com/ytfetch-cli/ytfetch/stream"
)

// ErrMergeUnsupported is returned where the platform cannot pass a second input pipe.
var ErrMergeUnsupported = errors.New("ffmpeg merge needs an extra pipe, unsupported on this platform")

// Locate returns configured if set, otherwise ffmpeg from PATH.
func Locate(configured string) (string, error) {
	if configured != "" {
		return configured, nil
	}
	return exec.LookPath("ffmpeg")
}

// Output describes what an audio transcode produces.
type Output struct {
	Format      string
	ContentType string
	Ext         string
}

// AudioOutput maps a requested audio subformat to the container ffmpeg can stream to a pipe.
func AudioOutput(sub string) Output {
	switch sub {
	case "mp3":
		return Output{Format: "mp3", ContentType: "audio/mpeg", Ext: "mp3"}
	case "wav":
		return Output{Format: "wav", ContentType: "audio/wav", Ext: "wav"}
	case "opus":
		return Output{Format: "ogg", ContentType: "audio/ogg", Ext: "ogg"}
	default:
		return Output{Format: "mp4", ContentType: "audio/mp4", Ext: constant.DefaultAudioType}
	}
}

// MergeOutput is the result of muxing separate video and audio streams.
var MergeOutput = Output{Format: "matroska", ContentType: "video/x-matroska", Ext: "mkv"}

var baseArgs = []string{"-hide_banner", "-loglevel", "error"}

// AudioArgs reads pipe:0 and writes the subformat's container to pipe:1.
func AudioArgs(sub string) []string {
	out := AudioOutput(sub)
	args := append(append([]string{}, baseArgs...), "-i", "pipe:0", "-vn")
	if out.Format == "mp4" {
		args = append(args, "-movflags", "frag_keyframe+empty_moov")
	}
	return append(args, "-f", out.Format, "pipe:1")
}

// MergeArgs reads video from pipe:0 and audio from pipe:3, copying both into matroska on pipe:1.
func MergeArgs() []string {
	return append(append([]string{}, baseArgs...),
		"-i", "pipe:0",
		"-i", "pipe:3",
		"-map", "0:v",
		"-map", "1:a",
		"-c:v", "copy",
		"-c:a", "copy",
		"-f", MergeOutput.Format,
		"pipe:1",
	)
}

// Transcoder starts ffmpeg processes.
type Transcoder struct {
	Path string
}

// Audio transcodes src to the subformat's container.
func (t *Transcoder) Audio(ctx context.Context, src io.ReadCloser, sub string) (*stream.Stream, error) {
	cmd := proc.Command(ctx, t.Path, AudioArgs(sub)...)

	stdin, err := cmd.StdinPipe()
	if err != nil {
		_ = src.Close()
		return nil, err
	}

	s, err := stream.FromCommand(cmd, src)
	if err != nil {
		_ = src.Close()
		return nil, fmt.Errorf("start ffmpeg: %w", err)
	}

	go feed(cmd, stdin, src, "audio")
	return s, nil
}

// Merge muxes video and audio into matroska.
func (t *Transcoder) Merge(ctx context.Context, video, audio io.ReadCloser) (*stream.Stream, error) {
	if runtime.GOOS == constant.Windows {
		_ = video.Close()
		_ = audio.Close()
		return nil, ErrMergeUnsupported
	}

	audioR, audioW, err := os.Pipe()
	if err != nil {
		_ = video.Close()
		_ = audio.Close()
		return nil, err
	}

	cmd := proc.Command(ctx, t.Path, MergeArgs()...)
	cmd.ExtraFiles = []*os.File{audioR}

	stdin, err := cmd.StdinPipe()
	if err != nil {
		closeAll(audioR, audioW, video, audio)
		return nil, err
	}

	s, err := stream.FromCommand(cmd, video, audio, audioW)
	if err != nil {
		closeAll(audioR, audioW, video, audio)
		return nil, fmt.Errorf("start ffmpeg: %w", err)
	}

	// The child holds its own copy of the read end.
	_ = audioR.Close()

	go feed(cmd, stdin, video, "video")
	go feed(cmd, audioW, audio, "audio")
	return s, nil
}

// feed copies src into dst. A failed upstream read kills ffmpeg so it cannot finish on truncated input.
func feed(cmd *exec.Cmd, dst io.WriteCloser, src io.ReadCloser, track string) {
	defer src.Close()

	_, err := io.Copy(dst, src)
	if err != nil && !errors.Is(err, os.ErrClosed) {
		log.Warnf("ffmpeg %s feed failed: %v", track, err)
		_ = proc.Kill(cmd)
	}

	_ = dst.Close()
}

func closeAll(closers ...io.Closer) {
	for _, c := range closers {
		_ = c.Close()
	}
}
