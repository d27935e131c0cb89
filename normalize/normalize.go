// Package normalize canonicalizes the URL shapes users paste into one watch-page form.
package normalize

import (
	"net/url"
	"strings"

	"github.com/samber/mo"
	"github.com/ytfetch-cli/ytfetch/constant"
)

// Normalize returns the canonical watch URL for short links, shorts and watch pages.
// Blank input yields None. Unrecognized or unparseable input is returned unchanged.
func Normalize(raw string) mo.Option[string] {
	if strings.TrimSpace(raw) == "" {
		return mo.None[string]()
	}

	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return mo.Some(raw)
	}

	host := strings.ToLower(u.Hostname())
	segments := strings.Split(strings.Trim(u.Path, "/"), "/")

	switch {
	case strings.Contains(host, "youtu.be"):
		if id := segments[0]; id != "" {
			return mo.Some(constant.WatchURLPrefix + url.QueryEscape(id))
		}
	case strings.Contains(host, "youtube.com"):
		if len(segments) >= 2 && segments[0] == "shorts" && segments[1] != "" {
			return mo.Some(constant.WatchURLPrefix + url.QueryEscape(segments[1]))
		}
		if u.Path == "/watch" {
			if id := u.Query().Get("v"); id != "" {
				return mo.Some(constant.WatchURLPrefix + url.QueryEscape(id))
			}
		}
	}

	return mo.Some(raw)
}
