// Package fetch orchestrates resolution, selection and tiered retrieval of one request.
package fetch

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
	"github.com/ytfetch-cli/ytfetch/internal/chain"
	"github.com/ytfetch-cli/ytfetch/log"
	"github.com/ytfetch-cli/ytfetch/media"
	"github.com/ytfetch-cli/ytfetch/normalize"
	"github.com/ytfetch-cli/ytfetch/selector"
	"github.com/ytfetch-cli/ytfetch/strategy"
)

// MetadataResolver is the resolver as seen by the service.
type MetadataResolver interface {
	Resolve(ctx context.Context, url string) *media.Metadata
	Hydrate(ctx context.Context, url string, md *media.Metadata) *media.Metadata
}

// DirectFetcher relays a direct target.
type DirectFetcher interface {
	Fetch(ctx context.Context, d selector.Decision, req media.Request, title string) (*strategy.Result, error)
}

// LibraryTranscoder transcodes in-process.
type LibraryTranscoder interface {
	Audio(ctx context.Context, req media.Request, tag media.AudioTag, title string) (*strategy.Result, error)
	Merge(ctx context.Context, req media.Request, merge *selector.Merge, title string) (*strategy.Result, error)
}

// ExtractorTranscoder transcodes through yt-dlp.
type ExtractorTranscoder interface {
	Audio(ctx context.Context, req media.Request, tag media.AudioTag, title string) (*strategy.Result, error)
	Merge(ctx context.Context, req media.Request, height int, title string) (*strategy.Result, error)
}

// InfoResponse is the body of an info request.
type InfoResponse struct {
	RawTitle           string   `json:"rawTitle" jsonschema:"description=Video title as reported upstream."`
	Thumbnail          string   `json:"thumbnail" jsonschema:"description=Thumbnail URL. Empty when unknown."`
	AvailableQualities []string `json:"availableQualities" jsonschema:"description=Distinct quality labels of video-carrying formats in ascending order."`
	Limited            bool     `json:"limited" jsonschema:"description=Set when the metadata came from a fallback provider."`
}

// Service ties the resolver, selector and strategies together.
// A nil Extractor disables the yt-dlp tier.
type Service struct {
	Resolver  MetadataResolver
	Proxy     DirectFetcher
	Library   LibraryTranscoder
	Extractor ExtractorTranscoder
	Options   selector.Options
}

func canonical(raw string) (string, error) {
	url, ok := normalize.Normalize(raw).Get()
	if !ok {
		return "", ErrMissingURL
	}
	return url, nil
}

// Info resolves url and reports its title and selectable qualities.
func (s *Service) Info(ctx context.Context, raw string) (*InfoResponse, error) {
	url, err := canonical(raw)
	if err != nil {
		return nil, err
	}

	md := s.Resolver.Hydrate(ctx, url, s.Resolver.Resolve(ctx, url))

	return &InfoResponse{
		RawTitle:           md.Title,
		Thumbnail:          md.Thumbnail,
		AvailableQualities: md.Qualities(),
		Limited:            md.Limited(),
	}, nil
}

// Plan resolves the request and returns the selector's decision without retrieving anything.
func (s *Service) Plan(ctx context.Context, req media.Request) (selector.Decision, *media.Metadata, error) {
	url, err := canonical(req.URL)
	if err != nil {
		return selector.Decision{}, nil, err
	}

	md := s.Resolver.Resolve(ctx, url)
	token := req.EffectiveToken()
	d := selector.Select(md, token, s.Options)
	if d.Available() {
		req.URL = url
		if tiers, _ := s.tiers(d, req, token, md.Title); len(tiers) == 0 {
			d = selector.Decision{Strategy: selector.Unavailable}
		}
	}
	return d, md, nil
}

type tier struct {
	name string
	run  func(ctx context.Context) (*strategy.Result, error)
}

// Retrieve resolves, selects and walks the retrieval tiers until one produces a response.
func (s *Service) Retrieve(ctx context.Context, req media.Request) (*strategy.Result, error) {
	url, err := canonical(req.URL)
	if err != nil {
		return nil, err
	}
	req.URL = url
	token := req.EffectiveToken()

	md := s.Resolver.Resolve(ctx, url)
	d := selector.Select(md, token, s.Options)
	if !d.Available() {
		return nil, &UnavailableError{Token: token, Suggestions: selector.Suggest(token, md.Qualities())}
	}

	tiers, kind := s.tiers(d, req, token, md.Title)
	if len(tiers) == 0 {
		return nil, &UnavailableError{Token: token, Suggestions: selector.Suggest(token, md.Qualities())}
	}

	entry := log.WithFields(logrus.Fields{"url": url, "format": token, "mode": string(d.Mode)})
	steps := make([]chain.Step[media.Request, *strategy.Result], len(tiers))
	for i, t := range tiers {
		steps[i] = func(ctx context.Context, _ media.Request) (*strategy.Result, error) {
			result, err := t.run(ctx)
			if err != nil {
				entry.WithField("tier", t.name).Warnf("retrieval tier failed: %v", err)
				return nil, err
			}
			entry.WithField("tier", t.name).Info("retrieval tier succeeded")
			return result, nil
		}
	}

	result, _, err := chain.FirstSuccess(ctx, req, steps...)
	if err == nil {
		return result, nil
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}

	detail := err.Error()
	var exhausted *chain.ExhaustedError
	if errors.As(err, &exhausted) && exhausted.Last() != nil {
		detail = exhausted.Last().Error()
	}

	return nil, &FailedError{Kind: kind, Detail: detail, Err: err}
}

func (s *Service) tiers(d selector.Decision, req media.Request, token, title string) ([]tier, string) {
	var tiers []tier

	direct := func() {
		if d.Target == nil {
			return
		}
		if d.Strategy == selector.Redirect {
			tiers = append(tiers, tier{"redirect", func(context.Context) (*strategy.Result, error) {
				return strategy.Redirect(d, title), nil
			}})
			return
		}
		tiers = append(tiers, tier{"proxy", func(ctx context.Context) (*strategy.Result, error) {
			return s.Proxy.Fetch(ctx, d, req, title)
		}})
	}

	if d.Mode == selector.ModeAudio {
		direct()
		if s.Library != nil {
			tiers = append(tiers, tier{"library-audio", func(ctx context.Context) (*strategy.Result, error) {
				return s.Library.Audio(ctx, req, d.Audio, title)
			}})
		}
		if s.Extractor != nil {
			tiers = append(tiers, tier{"extractor-audio", func(ctx context.Context) (*strategy.Result, error) {
				return s.Extractor.Audio(ctx, req, d.Audio, title)
			}})
		}
		return tiers, KindAudio
	}

	merge := d.Merge
	if merge == nil {
		height, _ := media.DigitsOnly(token)
		merge = &selector.Merge{Height: height}
	}

	direct()
	// Deferred merges still start at the library: it reloads the player response itself.
	if s.Library != nil {
		tiers = append(tiers, tier{"library-merge", func(ctx context.Context) (*strategy.Result, error) {
			return s.Library.Merge(ctx, req, merge, title)
		}})
	}
	if s.Extractor != nil {
		tiers = append(tiers, tier{"extractor-merge", func(ctx context.Context) (*strategy.Result, error) {
			return s.Extractor.Merge(ctx, req, merge.Height, title)
		}})
	}
	return tiers, KindVideo
}
