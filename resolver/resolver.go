// Package resolver obtains video metadata by walking an ordered chain of providers.
//
// Each tier's failure is logged and absorbed; Resolve itself never fails and reports the
// tier that answered so callers can flag fallback results as limited.
package resolver

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
	"github.com/ytfetch-cli/ytfetch/internal/chain"
	"github.com/ytfetch-cli/ytfetch/log"
	"github.com/ytfetch-cli/ytfetch/media"
)

// ErrEmpty is returned for a provider answer carrying neither a title nor formats.
var ErrEmpty = errors.New("provider returned no metadata")

// Provider resolves a canonical URL into metadata.
type Provider interface {
	Resolve(ctx context.Context, url string) (*media.Metadata, error)
}

// ProviderFunc adapts a plain function to Provider.
type ProviderFunc func(ctx context.Context, url string) (*media.Metadata, error)

func (f ProviderFunc) Resolve(ctx context.Context, url string) (*media.Metadata, error) {
	return f(ctx, url)
}

// Tier binds a provider to the tier it reports on success.
type Tier struct {
	Tier     media.Tier
	Provider Provider
}

// Resolver walks its tiers in order.
type Resolver struct {
	tiers    []Tier
	hydrator Provider
}

// New builds a resolver over tiers, tried in the given order.
func New(tiers ...Tier) *Resolver {
	return &Resolver{tiers: tiers}
}

// WithHydrator sets the provider used by Hydrate to fill an empty format list.
func (r *Resolver) WithHydrator(p Provider) *Resolver {
	r.hydrator = p
	return r
}

// Resolve returns the first non-empty tier result, or empty Unavailable metadata when every tier fails.
func (r *Resolver) Resolve(ctx context.Context, url string) *media.Metadata {
	steps := make([]chain.Step[string, *media.Metadata], len(r.tiers))
	for i, t := range r.tiers {
		steps[i] = r.step(t)
	}

	md, _, err := chain.FirstSuccess(ctx, url, steps...)
	if err != nil {
		log.WithFields(logrus.Fields{"url": url}).Warnf("metadata unavailable: %v", err)
		return &media.Metadata{Formats: []media.Format{}, Tier: media.Unavailable}
	}

	return md
}

func (r *Resolver) step(t Tier) chain.Step[string, *media.Metadata] {
	return func(ctx context.Context, url string) (*media.Metadata, error) {
		md, err := t.Provider.Resolve(ctx, url)
		if err == nil && md.Empty() {
			err = ErrEmpty
		}
		if err != nil {
			log.WithFields(logrus.Fields{"tier": t.Tier.String(), "url": url}).Warnf("metadata tier failed: %v", err)
			return nil, err
		}

		md.Tier = t.Tier
		md.Formats = selectable(md.Formats)
		return md, nil
	}
}

// Hydrate fills an empty format list from the hydrator, keeping the original tier.
// Failures leave md untouched.
func (r *Resolver) Hydrate(ctx context.Context, url string, md *media.Metadata) *media.Metadata {
	if r.hydrator == nil || len(md.Formats) > 0 {
		return md
	}

	extra, err := r.hydrator.Resolve(ctx, url)
	if err != nil || extra == nil {
		log.WithFields(logrus.Fields{"url": url}).Debugf("format hydration skipped: %v", err)
		return md
	}

	hydrated := *md
	hydrated.Formats = selectable(extra.Formats)
	return &hydrated
}

func selectable(formats []media.Format) []media.Format {
	out := make([]media.Format, 0, len(formats))
	for _, f := range formats {
		if f.Selectable() {
			out = append(out, f)
		}
	}
	return out
}
