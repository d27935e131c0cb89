package where

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/ytfetch-cli/ytfetch/filesystem"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestPaths(t *testing.T) {
	Convey("Path functions", t, func() {
		for name, fn := range map[string]func() string{
			"Config":         Config,
			"Cache":          Cache,
			"Logs":           Logs,
			"Binaries":       Binaries,
			"ExtractorVideo": ExtractorVideo,
			"ExtractorAudio": ExtractorAudio,
		} {
			Convey(name+"() should exist as a directory", func() {
				path := fn()
				So(path, ShouldNotBeEmpty)
				So(lo.Must(filesystem.API().IsDir(path)), ShouldBeTrue)
			})
		}

		Convey("Extractor scratch dirs should live under the system temp dir", func() {
			So(ExtractorVideo(), ShouldEqual, filepath.Join(os.TempDir(), "yt-dlp-tmp"))
			So(ExtractorAudio(), ShouldEqual, filepath.Join(os.TempDir(), "yt-dlp-audio"))
			So(Binaries(), ShouldEqual, filepath.Join(os.TempDir(), "yt-dlp"))
		})

		Convey("Config() should honor the override variable", func() {
			So(os.Setenv(EnvConfigPath, "/custom/ytfetch"), ShouldBeNil)
			defer os.Unsetenv(EnvConfigPath)
			So(Config(), ShouldEqual, "/custom/ytfetch")
		})
	})
}
