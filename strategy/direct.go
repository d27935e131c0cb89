package strategy

import (
	"context"
	"net/http"
	"strconv"

	"github.com/samber/mo"
	"github.com/sirupsen/logrus"
	"github.com/ytfetch-cli/ytfetch/constant"
	"github.com/ytfetch-cli/ytfetch/log"
	"github.com/ytfetch-cli/ytfetch/media"
	"github.com/ytfetch-cli/ytfetch/selector"
	"github.com/ytfetch-cli/ytfetch/util"
)

// DirectFilename names a muxed or audio-only direct download.
func DirectFilename(d selector.Decision, title string) string {
	if d.Mode == selector.ModeAudio {
		return util.FileName(title, constant.DefaultAudioName, d.Audio.Subformat)
	}
	return util.FileName(title, constant.DefaultVideoName, "mp4")
}

// Redirect sends the client straight to the decision's direct target.
func Redirect(d selector.Decision, title string) *Result {
	return &Result{
		Filename:      DirectFilename(d, title),
		Status:        http.StatusFound,
		Location:      d.Target.DirectURL,
		ContentLength: mo.None[int64](),
	}
}

// Proxy relays a direct target through this process.
type Proxy struct {
	Client *http.Client
	// FastMode skips the HEAD request used to learn the length of muxed targets.
	FastMode bool
}

// Headers builds the upstream request headers for req.
func Headers(req media.Request) http.Header {
	h := http.Header{}
	h.Set("User-Agent", constant.UserAgent)
	h.Set("Accept", "*/*")
	if req.Cookie != "" {
		h.Set("Cookie", req.Cookie)
	}
	if req.Range != "" {
		h.Set("Range", req.Range)
	}
	return h
}

// Fetch streams the decision's target.
func (p *Proxy) Fetch(ctx context.Context, d selector.Decision, req media.Request, title string) (*Result, error) {
	target := d.Target.DirectURL
	audio := d.Mode == selector.ModeAudio
	entry := log.WithFields(logrus.Fields{"format": d.Target.ID, "mode": string(d.Mode)})

	length := mo.None[int64]()
	if !audio && !p.FastMode {
		length = p.head(ctx, target, req)
	}

	upstream, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	upstream.Header = Headers(req)

	resp, err := p.Client.Do(upstream)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 || resp.Body == nil || resp.Body == http.NoBody {
		if resp.Body != nil {
			_ = resp.Body.Close()
		}
		entry.Warnf("proxy upstream answered %d", resp.StatusCode)
		return nil, &UpstreamError{Status: resp.StatusCode}
	}

	if length.IsAbsent() && resp.ContentLength >= 0 {
		length = mo.Some(resp.ContentLength)
	}

	contentType := "application/octet-stream"
	if audio {
		contentType = resp.Header.Get("Content-Type")
		if contentType == "" {
			contentType = "audio/ogg"
			if d.Audio.Subformat == constant.DefaultAudioType {
				contentType = "audio/mp4"
			}
		}
	}

	return &Result{
		Body:          resp.Body,
		Filename:      DirectFilename(d, title),
		ContentType:   contentType,
		ContentLength: length,
		ContentRange:  resp.Header.Get("Content-Range"),
		Status:        resp.StatusCode,
	}, nil
}

// head learns the target's length; any failure just leaves it unknown.
func (p *Proxy) head(ctx context.Context, target string, req media.Request) mo.Option[int64] {
	head, err := http.NewRequestWithContext(ctx, http.MethodHead, target, nil)
	if err != nil {
		return mo.None[int64]()
	}
	head.Header = Headers(req)

	resp, err := p.Client.Do(head)
	if err != nil {
		return mo.None[int64]()
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return mo.None[int64]()
	}

	n, err := strconv.ParseInt(resp.Header.Get("Content-Length"), 10, 64)
	if err != nil || n < 0 {
		return mo.None[int64]()
	}
	return mo.Some(n)
}
