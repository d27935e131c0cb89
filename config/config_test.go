package config

import (
	"os"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
	"github.com/ytfetch-cli/ytfetch/filesystem"
	"github.com/ytfetch-cli/ytfetch/key"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestSetup(t *testing.T) {
	Convey("Config Setup", t, func() {
		Convey("Should initialize without error", func() {
			So(Setup(), ShouldBeNil)
		})

		Convey("Should populate every registered default", func() {
			So(Setup(), ShouldBeNil)
			for name := range Default {
				So(viper.Get(name), ShouldNotBeNil)
			}
			So(viper.GetString(key.ServerAddr), ShouldEqual, ":8080")
			So(viper.GetBool(key.ServerFastRedirect), ShouldBeFalse)
		})

		Convey("Should honor legacy environment aliases", func() {
			So(os.Setenv("DISABLE_YTDLP", "1"), ShouldBeNil)
			So(os.Setenv("FAST_MODE", "1"), ShouldBeNil)
			defer os.Unsetenv("DISABLE_YTDLP")
			defer os.Unsetenv("FAST_MODE")

			So(Setup(), ShouldBeNil)
			So(viper.GetBool(key.YtdlpDisable), ShouldBeTrue)
			So(viper.GetBool(key.ServerFastMode), ShouldBeTrue)
		})

		Convey("Should prefer the prefixed variable over an alias", func() {
			So(os.Setenv("YTFETCH_YTDLP_PATH", "/opt/yt-dlp"), ShouldBeNil)
			So(os.Setenv("YTDLP_PATH", "/usr/bin/yt-dlp"), ShouldBeNil)
			defer os.Unsetenv("YTFETCH_YTDLP_PATH")
			defer os.Unsetenv("YTDLP_PATH")

			So(Setup(), ShouldBeNil)
			So(viper.GetString(key.YtdlpPath), ShouldEqual, "/opt/yt-dlp")
		})
	})
}

func TestField(t *testing.T) {
	Convey("Given a registered field", t, func() {
		field := Default[key.ServerFastRedirect]

		Convey("Env should be prefixed and upper-cased", func() {
			So(field.Env(), ShouldEqual, "YTFETCH_SERVER_FAST_REDIRECT")
		})

		Convey("Aliases should carry the legacy name", func() {
			So(field.Aliases, ShouldResemble, []string{"FAST_REDIRECT"})
		})

		Convey("EnvKeyReplacer should convert dots to underscores", func() {
			So(EnvKeyReplacer.Replace("server.fast_mode"), ShouldEqual, "server_fast_mode")
		})
	})
}
