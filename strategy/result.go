// Package strategy implements the ways bytes can reach a client: redirect, proxy,
// in-process transcode through ffmpeg, and transcode through yt-dlp.
package strategy

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/samber/mo"
	"github.com/ytfetch-cli/ytfetch/stream"
	"github.com/ytfetch-cli/ytfetch/util"
)

// Result is a ready-to-send response.
type Result struct {
	Body          io.ReadCloser
	Filename      string
	ContentType   string
	ContentLength mo.Option[int64]
	ContentRange  string
	Status        int
	Location      string
}

// Disposition is the attachment header value for the result's filename.
func (r *Result) Disposition() string {
	return Disposition(r.Filename)
}

// Disposition formats an RFC 5987 attachment header for filename.
func Disposition(filename string) string {
	return "attachment; filename*=UTF-8''" + util.EncodeURIComponent(filename)
}

// UpstreamError is a non-2xx or bodiless upstream response.
type UpstreamError struct {
	Status int
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream failed (%d)", e.Status)
}

// TranscodeError is a failure to start or prime a transcode.
type TranscodeError struct {
	Err error
}

func (e *TranscodeError) Error() string {
	return "transcode failed: " + e.Err.Error()
}

func (e *TranscodeError) Unwrap() error {
	return e.Err
}

// primed is a stream whose first chunk has already been read.
type primed struct {
	io.Reader
	s *stream.Stream
}

func (p *primed) Close() error {
	return p.s.Close()
}

// prime waits for the first chunk so that a transcode failing at startup can still fall through
// to the next strategy before any response bytes are committed.
func prime(ctx context.Context, s *stream.Stream) (io.ReadCloser, error) {
	first, err := s.Next(ctx)
	switch {
	case err == io.EOF:
		s.Cancel()
		return nil, &TranscodeError{Err: fmt.Errorf("empty output")}
	case err != nil:
		s.Cancel()
		return nil, &TranscodeError{Err: err}
	}

	return &primed{Reader: io.MultiReader(bytes.NewReader(first), s), s: s}, nil
}

func okResult(body io.ReadCloser, filename, contentType string) *Result {
	return &Result{
		Body:          body,
		Filename:      filename,
		ContentType:   contentType,
		ContentLength: mo.None[int64](),
		Status:        http.StatusOK,
	}
}
