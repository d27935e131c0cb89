package ffmpeg

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/ytfetch-cli/ytfetch/stream"
)

func TestAudioOutput(t *testing.T) {
	Convey("AudioOutput", t, func() {
		So(AudioOutput("mp3"), ShouldResemble, Output{Format: "mp3", ContentType: "audio/mpeg", Ext: "mp3"})
		So(AudioOutput("wav"), ShouldResemble, Output{Format: "wav", ContentType: "audio/wav", Ext: "wav"})
		So(AudioOutput("opus"), ShouldResemble, Output{Format: "ogg", ContentType: "audio/ogg", Ext: "ogg"})
		So(AudioOutput("m4a"), ShouldResemble, Output{Format: "mp4", ContentType: "audio/mp4", Ext: "m4a"})
		So(AudioOutput("flac").Format, ShouldEqual, "mp4")
	})
}

func TestArgs(t *testing.T) {
	Convey("AudioArgs", t, func() {
		Convey("mp4 output is fragmented for piping", func() {
			args := strings.Join(AudioArgs("m4a"), " ")
			So(args, ShouldContainSubstring, "-i pipe:0 -vn -movflags frag_keyframe+empty_moov -f mp4 pipe:1")
		})

		Convey("Other containers skip movflags", func() {
			args := strings.Join(AudioArgs("mp3"), " ")
			So(args, ShouldNotContainSubstring, "movflags")
			So(args, ShouldEndWith, "-f mp3 pipe:1")
		})
	})

	Convey("MergeArgs copies both tracks into matroska", t, func() {
		args := strings.Join(MergeArgs(), " ")
		So(args, ShouldContainSubstring, "-i pipe:0 -i pipe:3 -map 0:v -map 1:a -c:v copy -c:a copy -f matroska pipe:1")
	})
}

func TestLocate(t *testing.T) {
	Convey("A configured path is returned as is", t, func() {
		path, err := Locate("/opt/ffmpeg/bin/ffmpeg")
		So(err, ShouldBeNil)
		So(path, ShouldEqual, "/opt/ffmpeg/bin/ffmpeg")
	})
}

func fakeFFmpeg(t *testing.T, script string) string {
	path := filepath.Join(t.TempDir(), "ffmpeg")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+script+"\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	return path
}

type failingReader struct {
	data string
	err  error
}

func (r *failingReader) Read(p []byte) (int, error) {
	if r.data == "" {
		return 0, r.err
	}
	n := copy(p, r.data)
	r.data = r.data[n:]
	return n, nil
}

func (r *failingReader) Close() error { return nil }

func TestTranscoder(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}

	Convey("Given a pass-through ffmpeg stand-in", t, func() {
		tr := &Transcoder{Path: fakeFFmpeg(t, `cat; [ -e /dev/fd/3 ] && cat <&3; exit 0`)}

		Convey("Audio streams stdin through", func() {
			s, err := tr.Audio(context.Background(), io.NopCloser(strings.NewReader("audio-bytes")), "mp3")
			So(err, ShouldBeNil)
			data, err := io.ReadAll(s)
			So(err, ShouldBeNil)
			So(string(data), ShouldEqual, "audio-bytes")
		})

		Convey("Merge reads video then the extra audio pipe", func() {
			s, err := tr.Merge(context.Background(),
				io.NopCloser(strings.NewReader("VIDEO")),
				io.NopCloser(strings.NewReader("AUDIO")))
			So(err, ShouldBeNil)
			data, err := io.ReadAll(s)
			So(err, ShouldBeNil)
			So(string(data), ShouldEqual, "VIDEOAUDIO")
		})
	})

	Convey("Given a transcoder that waits for its input", t, func() {
		tr := &Transcoder{Path: fakeFFmpeg(t, `cat > /dev/null; echo done`)}

		Convey("An upstream read error kills it and fails the stream", func() {
			src := &failingReader{data: "partial", err: errors.New("connection reset")}
			s, err := tr.Audio(context.Background(), src, "m4a")
			So(err, ShouldBeNil)
			_, err = io.ReadAll(s)
			var streamErr *stream.Error
			So(errors.As(err, &streamErr), ShouldBeTrue)
		})
	})
}
