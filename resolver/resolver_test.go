package resolver

import (
	"context"
	"errors"
	"testing"

	"github.com/kkdai/youtube/v2"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/ytfetch-cli/ytfetch/media"
)

func fixed(md *media.Metadata, err error, calls *[]string, name string) Provider {
	return ProviderFunc(func(context.Context, string) (*media.Metadata, error) {
		*calls = append(*calls, name)
		if md == nil {
			return nil, err
		}
		copied := *md
		return &copied, err
	})
}

func TestResolve(t *testing.T) {
	ctx := context.Background()
	url := "https://www.youtube.com/watch?v=abc"
	full := &media.Metadata{Title: "Clip", Formats: []media.Format{
		{ID: "18", QualityLabel: "360p", HasAudio: true, HasVideo: true},
		{ID: "x", QualityLabel: "storyboard"},
	}}

	Convey("Given a three-tier chain", t, func() {
		var calls []string

		Convey("The first success wins and non-selectable formats are dropped", func() {
			r := New(
				Tier{media.Primary, fixed(full, nil, &calls, "primary")},
				Tier{media.Secondary, fixed(full, nil, &calls, "secondary")},
			)
			md := r.Resolve(ctx, url)
			So(md.Tier, ShouldEqual, media.Primary)
			So(md.Formats, ShouldHaveLength, 1)
			So(calls, ShouldResemble, []string{"primary"})
		})

		Convey("Failures and empty answers fall through in order", func() {
			r := New(
				Tier{media.Primary, fixed(nil, errors.New("login required"), &calls, "primary")},
				Tier{media.Secondary, fixed(&media.Metadata{}, nil, &calls, "secondary")},
				Tier{media.Extractor, fixed(full, nil, &calls, "extractor")},
			)
			md := r.Resolve(ctx, url)
			So(md.Tier, ShouldEqual, media.Extractor)
			So(md.Limited(), ShouldBeTrue)
			So(calls, ShouldResemble, []string{"primary", "secondary", "extractor"})
		})

		Convey("A title alone is a usable answer", func() {
			r := New(Tier{media.Secondary, fixed(&media.Metadata{Title: "Clip"}, nil, &calls, "secondary")})
			md := r.Resolve(ctx, url)
			So(md.Title, ShouldEqual, "Clip")
			So(md.Formats, ShouldBeEmpty)
		})

		Convey("When everything fails the result is empty and unavailable", func() {
			r := New(
				Tier{media.Primary, fixed(nil, errors.New("a"), &calls, "primary")},
				Tier{media.Secondary, fixed(nil, errors.New("b"), &calls, "secondary")},
			)
			md := r.Resolve(ctx, url)
			So(md.Tier, ShouldEqual, media.Unavailable)
			So(md.Formats, ShouldNotBeNil)
			So(md.Formats, ShouldBeEmpty)
			So(md.Title, ShouldBeEmpty)
		})

		Convey("Repeated calls give identical results", func() {
			r := New(Tier{media.Primary, fixed(full, nil, &calls, "primary")})
			So(r.Resolve(ctx, url), ShouldResemble, r.Resolve(ctx, url))
		})
	})
}

func TestHydrate(t *testing.T) {
	ctx := context.Background()
	url := "https://www.youtube.com/watch?v=abc"

	Convey("Given a hydrator", t, func() {
		var calls []string
		extra := &media.Metadata{Title: "other", Formats: []media.Format{{ID: "22", HasAudio: true, HasVideo: true}}}
		r := New().WithHydrator(fixed(extra, nil, &calls, "hydrator"))

		Convey("Empty formats are filled while tier and title stay", func() {
			md := &media.Metadata{Title: "Clip", Tier: media.Secondary}
			out := r.Hydrate(ctx, url, md)
			So(out.Title, ShouldEqual, "Clip")
			So(out.Tier, ShouldEqual, media.Secondary)
			So(out.Formats, ShouldHaveLength, 1)
			So(md.Formats, ShouldBeEmpty)
		})

		Convey("Known formats skip the hydrator", func() {
			md := &media.Metadata{Formats: []media.Format{{ID: "18", HasVideo: true}}}
			So(r.Hydrate(ctx, url, md), ShouldEqual, md)
			So(calls, ShouldBeEmpty)
		})
	})

	Convey("A failing hydrator leaves metadata untouched", t, func() {
		var calls []string
		r := New().WithHydrator(fixed(nil, errors.New("disabled"), &calls, "hydrator"))
		md := &media.Metadata{Title: "Clip"}
		So(r.Hydrate(ctx, url, md), ShouldEqual, md)
	})
}

func TestFromVideo(t *testing.T) {
	Convey("Player formats are adapted", t, func() {
		video := &youtube.Video{
			Title:      "Clip",
			Thumbnails: youtube.Thumbnails{{URL: "https://i.ytimg.com/a.jpg"}},
			Formats: youtube.FormatList{
				{ItagNo: 18, URL: "https://cdn/18", MimeType: `video/mp4; codecs="avc1, mp4a"`, QualityLabel: "360p", Height: 360, AudioChannels: 2, Bitrate: 500},
				{ItagNo: 140, MimeType: `audio/mp4; codecs="mp4a.40.2"`, AudioChannels: 2, Bitrate: 128000, ContentLength: 4096},
				{ItagNo: 137, MimeType: `video/mp4; codecs="avc1"`, QualityLabel: "1080p", Height: 1080},
			},
		}

		md := FromVideo(video)
		So(md.Title, ShouldEqual, "Clip")
		So(md.Thumbnail, ShouldEqual, "https://i.ytimg.com/a.jpg")
		So(md.Formats[0].ID, ShouldEqual, "18")
		So(md.Formats[0].Muxed(), ShouldBeTrue)
		So(md.Formats[1].AudioOnly(), ShouldBeTrue)
		So(md.Formats[1].ContentLength, ShouldEqual, int64(4096))
		So(md.Formats[2].VideoOnly(), ShouldBeTrue)
	})
}

func TestPlainFormats(t *testing.T) {
	Convey("The lighter provider drops ciphered formats", t, func() {
		video := &youtube.Video{
			Title: "Clip",
			Formats: youtube.FormatList{
				{ItagNo: 18, URL: "https://cdn/18", MimeType: "video/mp4", Height: 360, AudioChannels: 2},
				{ItagNo: 137, Cipher: "s=abc&url=https%3A%2F%2Fcdn%2F137", MimeType: "video/mp4", Height: 1080},
			},
		}

		md := FromVideo(plain(video))
		So(md.Title, ShouldEqual, "Clip")
		So(md.Formats, ShouldHaveLength, 1)
		So(md.Formats[0].ID, ShouldEqual, "18")
		So(video.Formats, ShouldHaveLength, 2)
	})

	Convey("Both providers share the upstream client type", t, func() {
		So(NewPrimary(nil).Client(), ShouldNotBeNil)
		So(NewPrimary(nil).decipher, ShouldBeTrue)
		So(NewSecondary(nil).decipher, ShouldBeFalse)
	})
}
