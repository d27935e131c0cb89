package ytdlp

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/ytfetch-cli/ytfetch/filesystem"
)

func TestInstallerLocate(t *testing.T) {
	Convey("Given an installer over an in-memory filesystem", t, func() {
		filesystem.SetMemMapFs()
		name := BinaryNames()[0]
		installer := &Installer{
			EnvPath:  "/opt/custom/yt-dlp",
			LocalDir: "/work/bin",
			CacheDir: "/tmp/yt-dlp",
		}

		Convey("Nothing is found on an empty filesystem", func() {
			So(installer.Locate().IsAbsent(), ShouldBeTrue)
		})

		Convey("The cache dir is used as the last resort", func() {
			So(filesystem.API().WriteFile(filepath.Join("/tmp/yt-dlp", name), []byte("bin"), 0o755), ShouldBeNil)
			So(installer.Locate().MustGet(), ShouldEqual, filepath.Join("/tmp/yt-dlp", name))
		})

		Convey("The local bin dir beats the cache dir", func() {
			So(filesystem.API().WriteFile(filepath.Join("/tmp/yt-dlp", name), []byte("bin"), 0o755), ShouldBeNil)
			So(filesystem.API().WriteFile(filepath.Join("/work/bin", name), []byte("bin"), 0o755), ShouldBeNil)
			So(installer.Locate().MustGet(), ShouldEqual, filepath.Join("/work/bin", name))
		})

		Convey("The explicit path beats everything", func() {
			So(filesystem.API().WriteFile(filepath.Join("/work/bin", name), []byte("bin"), 0o755), ShouldBeNil)
			So(filesystem.API().WriteFile("/opt/custom/yt-dlp", []byte("bin"), 0o755), ShouldBeNil)
			So(installer.Locate().MustGet(), ShouldEqual, "/opt/custom/yt-dlp")
		})

		Convey("Directories are not mistaken for binaries", func() {
			So(filesystem.API().MkdirAll(filepath.Join("/work/bin", name), 0o755), ShouldBeNil)
			So(installer.Locate().IsAbsent(), ShouldBeTrue)
		})
	})
}

func TestInstallerEnsure(t *testing.T) {
	Convey("Given a release server", t, func() {
		filesystem.SetMemMapFs()
		var hits atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hits.Add(1)
			if r.URL.Path != "/"+AssetName() {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			_, _ = w.Write([]byte("#!/bin/sh\necho yt-dlp\n"))
		}))
		defer server.Close()

		installer := &Installer{
			CacheDir:    "/tmp/yt-dlp",
			AutoInstall: true,
			Client:      server.Client(),
			ReleaseURL:  server.URL + "/",
		}

		Convey("A missing binary is downloaded and made executable", func() {
			path, err := installer.Ensure(context.Background())
			So(err, ShouldBeNil)
			So(path, ShouldEqual, installer.Target())

			data, err := filesystem.API().ReadFile(path)
			So(err, ShouldBeNil)
			So(string(data), ShouldContainSubstring, "yt-dlp")

			stat, err := filesystem.API().Stat(path)
			So(err, ShouldBeNil)
			So(stat.Mode().Perm(), ShouldEqual, os.FileMode(0o755))

			Convey("No temp files are left behind", func() {
				entries, err := filesystem.API().ReadDir("/tmp/yt-dlp")
				So(err, ShouldBeNil)
				So(entries, ShouldHaveLength, 1)
			})

			Convey("A second call reuses the installed binary", func() {
				_, err := installer.Ensure(context.Background())
				So(err, ShouldBeNil)
				So(hits.Load(), ShouldEqual, int32(1))
			})
		})

		Convey("With auto-install off a missing binary is an error", func() {
			installer.AutoInstall = false
			_, err := installer.Ensure(context.Background())
			So(err, ShouldEqual, ErrNotFound)
			So(hits.Load(), ShouldEqual, int32(0))
		})

		Convey("A failed download installs nothing", func() {
			installer.ReleaseURL = server.URL + "/missing/"
			_, err := installer.Ensure(context.Background())
			So(err, ShouldNotBeNil)
			So(installer.Locate().IsAbsent(), ShouldBeTrue)
		})
	})
}

func TestAssetName(t *testing.T) {
	Convey("AssetName should name a published release asset", t, func() {
		So(AssetName(), ShouldBeIn, []string{"yt-dlp", "yt-dlp.exe", "yt-dlp_macos", "yt-dlp_linux", "yt-dlp_linux_aarch64"})
	})
}
