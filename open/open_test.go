package open

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/ytfetch-cli/ytfetch/constant"
)

func TestCommand(t *testing.T) {
	Convey("Given a downloaded file", t, func() {
		target := "/downloads/clip.mp4"

		Convey("Linux uses xdg-open by default", func() {
			cmd, err := Command(constant.Linux, target, "")
			So(err, ShouldBeNil)
			So(cmd.Args, ShouldResemble, []string{"xdg-open", target})
		})

		Convey("Linux runs a named app directly", func() {
			cmd, err := Command(constant.Linux, target, "mpv")
			So(err, ShouldBeNil)
			So(cmd.Args, ShouldResemble, []string{"mpv", target})
		})

		Convey("macOS passes the app with -a", func() {
			cmd, err := Command(constant.Darwin, target, "IINA")
			So(err, ShouldBeNil)
			So(cmd.Args, ShouldResemble, []string{"open", "-a", "IINA", target})
		})

		Convey("Windows escapes ampersands for start", func() {
			cmd, err := Command(constant.Windows, "https://example.com/?a=1&b=2", "vlc")
			So(err, ShouldBeNil)
			So(cmd.Args[len(cmd.Args)-1], ShouldEqual, "https://example.com/?a=1^&b=2")
		})

		Convey("Unknown platforms are rejected", func() {
			_, err := Command("plan9", target, "")
			So(err, ShouldEqual, ErrUnsupported)
		})
	})
}
