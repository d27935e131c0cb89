// Package version discovers the latest published releases of ytfetch and yt-dlp.
package version

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/metafates/gache"
	"github.com/ytfetch-cli/ytfetch/filesystem"
	"github.com/ytfetch-cli/ytfetch/network"
	"github.com/ytfetch-cli/ytfetch/util"
	"github.com/ytfetch-cli/ytfetch/where"
)

// APIBase is the GitHub REST endpoint releases are looked up against.
var APIBase = "https://api.github.com"

// Release tracks the latest tag of one GitHub repository with an on-disk cache.
type Release struct {
	Repo   string
	cacher *gache.Cache[string]
}

// NewRelease caches the latest tag of repo in cacheFile under the cache dir.
func NewRelease(repo, cacheFile string) *Release {
	return &Release{
		Repo: repo,
		cacher: gache.New[string](&gache.Options{
			Path:       filepath.Join(where.Cache(), cacheFile),
			Lifetime:   time.Hour * 24 * 2,
			FileSystem: &filesystem.GacheFs{},
		}),
	}
}

var (
	// App is ytfetch itself.
	App = NewRelease("ytfetch-cli/ytfetch", "version.json")
	// YtDlp is the companion extractor, whose tags are dates such as 2025.01.15.
	YtDlp = NewRelease("yt-dlp/yt-dlp", "ytdlp-version.json")
)

// URL is the release page of tag.
func (r *Release) URL(tag string) string {
	return fmt.Sprintf("https://github.com/%s/releases/tag/%s", r.Repo, tag)
}

// Latest returns the latest release tag without a leading "v".
func (r *Release) Latest() (string, error) {
	ver, expired, err := r.cacher.Get()
	if err != nil {
		return "", err
	}

	if !expired && ver != "" {
		return ver, nil
	}

	ver, err = r.fetch()
	if err != nil {
		return "", err
	}

	_ = r.cacher.Set(ver)
	return ver, nil
}

func (r *Release) fetch() (string, error) {
	resp, err := network.Client.Get(fmt.Sprintf("%s/repos/%s/releases/latest", APIBase, r.Repo))
	if err != nil {
		return "", err
	}

	defer util.Ignore(resp.Body.Close)

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("release lookup for %s: status %d", r.Repo, resp.StatusCode)
	}

	var release struct {
		TagName string `json:"tag_name"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return "", err
	}

	if release.TagName == "" {
		return "", errors.New("empty tag name")
	}

	return strings.TrimPrefix(release.TagName, "v"), nil
}

// Latest returns the latest ytfetch version.
func Latest() (string, error) {
	return App.Latest()
}
