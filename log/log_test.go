package log

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
	"github.com/ytfetch-cli/ytfetch/filesystem"
	"github.com/ytfetch-cli/ytfetch/key"
	"github.com/ytfetch-cli/ytfetch/where"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestSetup(t *testing.T) {
	Convey("Log Setup", t, func() {
		Reset(func() {
			viper.Set(key.LogsWrite, false)
			viper.Set(key.LogsConsole, false)
		})

		Convey("Should stay silent with every output disabled", func() {
			viper.Set(key.LogsWrite, false)
			viper.Set(key.LogsConsole, false)
			So(Setup(), ShouldBeNil)
			So(Enabled(), ShouldBeFalse)
			So(func() { WithFields(nil).Info("dropped") }, ShouldNotPanic)
		})

		Convey("Should create a dated file when writing is enabled", func() {
			viper.Set(key.LogsWrite, true)
			So(Setup(), ShouldBeNil)
			So(Enabled(), ShouldBeTrue)

			entries, err := filesystem.API().ReadDir(where.Logs())
			So(err, ShouldBeNil)
			So(entries, ShouldNotBeEmpty)
		})
	})
}
