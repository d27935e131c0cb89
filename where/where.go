// Package where implements a cross-platform resolver for application-specific filesystem paths.
package where

import (
	"os"
	"path/filepath"

	"github.com/samber/lo"
	"github.com/ytfetch-cli/ytfetch/constant"
	"github.com/ytfetch-cli/ytfetch/filesystem"
)

// EnvConfigPath is the environment variable identifier used to override the default configuration directory.
const EnvConfigPath = "YTFETCH_CONFIG_PATH"

func ensureDir(path string) string {
	lo.Must0(filesystem.API().MkdirAll(path, os.ModePerm))
	return path
}

// Config resolves the absolute path to the primary application configuration directory.
// The path can be overridden with the YTFETCH_CONFIG_PATH environment variable.
func Config() string {
	if custom, ok := os.LookupEnv(EnvConfigPath); ok {
		return ensureDir(custom)
	}

	base := lo.Must(os.UserConfigDir())
	return ensureDir(filepath.Join(base, constant.Ytfetch))
}

// Cache resolves the absolute path to the application's persistent cache directory.
func Cache() string {
	base, err := os.UserCacheDir()
	if err != nil {
		base = filepath.Join(".", "cache")
	}
	return ensureDir(filepath.Join(base, constant.Ytfetch))
}

// Logs resolves the directory used for diagnostic logs.
func Logs() string {
	return ensureDir(filepath.Join(Config(), "logs"))
}

// Binaries resolves the temp-backed cache holding a downloaded yt-dlp.
// It lives under the system temp directory because serverless hosts only grant write access there.
func Binaries() string {
	return ensureDir(filepath.Join(os.TempDir(), "yt-dlp"))
}

// LocalBin resolves the project-local binary directory checked before the cache.
func LocalBin() string {
	return filepath.Join(".", "bin")
}

// ExtractorVideo resolves the scratch directory for merged video downloads.
func ExtractorVideo() string {
	return ensureDir(filepath.Join(os.TempDir(), "yt-dlp-tmp"))
}

// ExtractorAudio resolves the scratch directory for extracted audio downloads.
func ExtractorAudio() string {
	return ensureDir(filepath.Join(os.TempDir(), "yt-dlp-audio"))
}

// Keyring is the service name under which secrets are stored in the system keyring.
func Keyring() string {
	return constant.Ytfetch + "-cli"
}
