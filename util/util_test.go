package util

import (
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/ytfetch-cli/ytfetch/filesystem"
)

func TestSanitizeFilename(t *testing.T) {
	Convey("SanitizeFilename", t, func() {
		Convey("Should drop illegal characters", func() {
			So(SanitizeFilename(`AC/DC: Back in Black?`), ShouldEqual, "ACDC Back in Black")
			So(SanitizeFilename(`a<b>c|d*e"f\g`), ShouldEqual, "abcdefg")
		})
		Convey("Should keep spaces and unicode", func() {
			So(SanitizeFilename("Café del Mar – 1999"), ShouldEqual, "Café del Mar – 1999")
		})
		Convey("Should drop control characters", func() {
			So(SanitizeFilename("line\nbreak\ttab"), ShouldEqual, "linebreaktab")
		})
		Convey("Should reject reserved names", func() {
			So(SanitizeFilename(".."), ShouldEqual, "")
			So(SanitizeFilename("CON"), ShouldEqual, "")
			So(SanitizeFilename("lpt1.txt"), ShouldEqual, "")
		})
		Convey("Should trim trailing dots and spaces", func() {
			So(SanitizeFilename("title. . "), ShouldEqual, "title")
		})
		Convey("Should cap the length at 255 bytes without splitting runes", func() {
			out := SanitizeFilename(strings.Repeat("é", 200))
			So(len(out), ShouldBeLessThanOrEqualTo, 255)
			So(strings.Count(out, "é"), ShouldEqual, 127)
		})
	})
}

func TestFileName(t *testing.T) {
	Convey("FileName", t, func() {
		So(FileName("My Clip", "video", "mp4"), ShouldEqual, "My Clip.mp4")
		So(FileName("", "video", "mkv"), ShouldEqual, "video.mkv")
		So(FileName("???", "audio", "m4a"), ShouldEqual, "audio.m4a")
	})
}

func TestEncodeURIComponent(t *testing.T) {
	Convey("EncodeURIComponent", t, func() {
		So(EncodeURIComponent("My Clip.mkv"), ShouldEqual, "My%20Clip.mkv")
		So(EncodeURIComponent("a+b&c=d"), ShouldEqual, "a%2Bb%26c%3Dd")
		So(EncodeURIComponent("it's (live)!~*"), ShouldEqual, "it's%20(live)!~*")
		So(EncodeURIComponent("é"), ShouldEqual, "%C3%A9")
	})
}

func TestQuantify(t *testing.T) {
	Convey("Quantify", t, func() {
		So(Quantify(1, "file", "files"), ShouldEqual, "1 file")
		So(Quantify(2, "file", "files"), ShouldEqual, "2 files")
	})
}

func TestCapitalize(t *testing.T) {
	Convey("Capitalize", t, func() {
		So(Capitalize("hello"), ShouldEqual, "Hello")
		So(Capitalize(""), ShouldEqual, "")
	})
}

func TestDelete(t *testing.T) {
	Convey("Delete", t, func() {
		filesystem.SetMemMapFs()
		fs := filesystem.API()
		So(fs.WriteFile("/scratch/dir/a.bin", []byte("a"), 0o644), ShouldBeNil)

		Convey("Should remove a single file", func() {
			So(Delete("/scratch/dir/a.bin"), ShouldBeNil)
			exists, _ := fs.Exists("/scratch/dir/a.bin")
			So(exists, ShouldBeFalse)
		})

		Convey("Should remove a directory tree", func() {
			So(Delete("/scratch"), ShouldBeNil)
			exists, _ := fs.Exists("/scratch")
			So(exists, ShouldBeFalse)
		})

		Convey("Should report a missing path", func() {
			So(Delete("/nope"), ShouldNotBeNil)
		})
	})
}
