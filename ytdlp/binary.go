// Package ytdlp locates, installs and drives the yt-dlp companion binary.
package ytdlp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"runtime"

	"github.com/google/uuid"
	"github.com/samber/mo"
	"github.com/ytfetch-cli/ytfetch/constant"
	"github.com/ytfetch-cli/ytfetch/filesystem"
	"github.com/ytfetch-cli/ytfetch/log"
)

// ReleaseURL is the base of the latest-release download links.
const ReleaseURL = "https://github.com/yt-dlp/yt-dlp/releases/latest/download/"

var (
	// ErrNotFound is returned when no binary exists and auto-install is off.
	ErrNotFound = errors.New("yt-dlp binary not found")
	// ErrDisabled is returned by every operation when yt-dlp use is switched off.
	ErrDisabled = errors.New("yt-dlp disabled")
)

// Installer resolves the yt-dlp binary in a fixed order: EnvPath, LocalDir, CacheDir.
// Concurrent installs are not locked: each writes its own temp file and the last rename wins,
// which is safe because every download fetches the same release asset.
type Installer struct {
	EnvPath     string
	LocalDir    string
	CacheDir    string
	AutoInstall bool
	Client      *http.Client
	ReleaseURL  string
}

// BinaryNames lists the file names probed in each directory for the current platform.
func BinaryNames() []string {
	if runtime.GOOS == constant.Windows {
		return []string{"yt-dlp.exe", "yt-dlp"}
	}
	return []string{"yt-dlp"}
}

// AssetName returns the release asset matching the current platform.
func AssetName() string {
	switch runtime.GOOS {
	case constant.Windows:
		return "yt-dlp.exe"
	case constant.Darwin:
		return "yt-dlp_macos"
	case constant.Linux:
		if runtime.GOARCH == "arm64" {
			return "yt-dlp_linux_aarch64"
		}
		return "yt-dlp_linux"
	default:
		return "yt-dlp"
	}
}

// Candidates returns every path Locate probes, in order.
func (i *Installer) Candidates() []string {
	var candidates []string
	if i.EnvPath != "" {
		candidates = append(candidates, i.EnvPath)
	}
	for _, dir := range []string{i.LocalDir, i.CacheDir} {
		if dir == "" {
			continue
		}
		for _, name := range BinaryNames() {
			candidates = append(candidates, filepath.Join(dir, name))
		}
	}
	return candidates
}

// Locate returns the first candidate that exists as a regular file.
func (i *Installer) Locate() mo.Option[string] {
	for _, candidate := range i.Candidates() {
		stat, err := filesystem.API().Stat(candidate)
		if err == nil && stat.Mode().IsRegular() {
			return mo.Some(candidate)
		}
	}
	return mo.None[string]()
}

// Target is the path an install writes to.
func (i *Installer) Target() string {
	return filepath.Join(i.CacheDir, BinaryNames()[0])
}

// Ensure returns a usable binary path, downloading one into CacheDir if needed.
func (i *Installer) Ensure(ctx context.Context) (string, error) {
	if found, ok := i.Locate().Get(); ok {
		return found, nil
	}

	if !i.AutoInstall {
		return "", ErrNotFound
	}

	return i.Install(ctx)
}

// Install downloads the latest release into CacheDir unconditionally.
func (i *Installer) Install(ctx context.Context) (string, error) {
	target := i.Target()
	if err := filesystem.API().MkdirAll(i.CacheDir, 0o755); err != nil {
		return "", fmt.Errorf("create cache dir: %w", err)
	}

	base := i.ReleaseURL
	if base == "" {
		base = ReleaseURL
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+AssetName(), nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", constant.UserAgent)

	client := i.Client
	if client == nil {
		client = http.DefaultClient
	}

	log.Infof("downloading yt-dlp from %s", req.URL)
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("download yt-dlp: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download yt-dlp: unexpected status %d", resp.StatusCode)
	}

	tmpPath := fmt.Sprintf("%s.%s.tmp", target, uuid.NewString())
	if err := writeExecutable(tmpPath, resp.Body); err != nil {
		_ = filesystem.API().Remove(tmpPath)
		return "", err
	}

	if err := filesystem.API().Rename(tmpPath, target); err != nil {
		_ = filesystem.API().Remove(tmpPath)
		return "", fmt.Errorf("install yt-dlp: %w", err)
	}

	log.Infof("installed yt-dlp at %s", target)
	return target, nil
}

func writeExecutable(path string, body io.Reader) error {
	fs := filesystem.API()
	f, err := fs.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o755)
	if err != nil {
		return fmt.Errorf("create temp binary: %w", err)
	}

	if _, err := io.Copy(f, body); err != nil {
		_ = f.Close()
		return fmt.Errorf("write temp binary: %w", err)
	}

	if err := f.Close(); err != nil {
		return err
	}

	return fs.Chmod(path, 0o755)
}
