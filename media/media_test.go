package media

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestFormatPredicates(t *testing.T) {
	Convey("Format predicates", t, func() {
		muxed := Format{HasAudio: true, HasVideo: true}
		audio := Format{HasAudio: true}
		video := Format{HasVideo: true}
		empty := Format{}

		So(muxed.Muxed(), ShouldBeTrue)
		So(audio.AudioOnly(), ShouldBeTrue)
		So(video.VideoOnly(), ShouldBeTrue)
		So(muxed.AudioOnly() || muxed.VideoOnly(), ShouldBeFalse)
		So(empty.Selectable(), ShouldBeFalse)
		So(audio.Selectable(), ShouldBeTrue)
	})

	Convey("Label falls back to the height", t, func() {
		So((&Format{QualityLabel: "720p60"}).Label(), ShouldEqual, "720p60")
		So((&Format{Height: 480}).Label(), ShouldEqual, "480p")
		So((&Format{}).Label(), ShouldEqual, "")
	})
}

func TestQualities(t *testing.T) {
	Convey("Given a mixed format list", t, func() {
		md := &Metadata{Formats: []Format{
			{QualityLabel: "1080p", HasVideo: true},
			{QualityLabel: "360p", HasVideo: true, HasAudio: true},
			{QualityLabel: "720p", HasVideo: true, HasAudio: true},
			{QualityLabel: "720p", HasVideo: true},
			{Height: 144, HasVideo: true},
			{QualityLabel: "tiny", HasAudio: true},
			{QualityLabel: "hd", HasVideo: true},
		}}

		Convey("Only video labels appear, deduplicated and ordered numerically", func() {
			So(md.Qualities(), ShouldResemble, []string{"144p", "360p", "720p", "1080p", "hd"})
		})
	})

	Convey("An empty list yields an empty, non-nil slice", t, func() {
		md := &Metadata{}
		So(md.Qualities(), ShouldNotBeNil)
		So(md.Qualities(), ShouldBeEmpty)
	})
}

func TestTier(t *testing.T) {
	Convey("Only the primary tier is unlimited", t, func() {
		So((&Metadata{Tier: Primary}).Limited(), ShouldBeFalse)
		for _, tier := range []Tier{Secondary, Extractor, Unavailable} {
			So((&Metadata{Tier: tier}).Limited(), ShouldBeTrue)
		}
		So(Extractor.String(), ShouldEqual, "extractor")
	})
}

func TestNumericHelpers(t *testing.T) {
	Convey("LeadingInt mirrors parseInt", t, func() {
		n, ok := LeadingInt("720p60")
		So(ok, ShouldBeTrue)
		So(n, ShouldEqual, 720)

		_, ok = LeadingInt("hd720")
		So(ok, ShouldBeFalse)
	})

	Convey("DigitsOnly strips every non-digit", t, func() {
		n, ok := DigitsOnly("1080p")
		So(ok, ShouldBeTrue)
		So(n, ShouldEqual, 1080)

		n, ok = DigitsOnly("720p60")
		So(ok, ShouldBeTrue)
		So(n, ShouldEqual, 72060)

		_, ok = DigitsOnly("best")
		So(ok, ShouldBeFalse)
	})
}

func TestParseAudioTag(t *testing.T) {
	Convey("ParseAudioTag", t, func() {
		tag, ok := ParseAudioTag("audio")
		So(ok, ShouldBeTrue)
		So(tag.Subformat, ShouldEqual, "m4a")

		tag, ok = ParseAudioTag("audio:mp3")
		So(ok, ShouldBeTrue)
		So(tag.Subformat, ShouldEqual, "mp3")

		tag, ok = ParseAudioTag("audio:")
		So(ok, ShouldBeTrue)
		So(tag.Subformat, ShouldEqual, "m4a")

		tag, ok = ParseAudioTag("audio:FLAC")
		So(ok, ShouldBeTrue)
		So(tag.Subformat, ShouldEqual, "flac")

		tag, ok = ParseAudioTag("audio:xyz")
		So(ok, ShouldBeTrue)
		So(tag.Subformat, ShouldEqual, "m4a")

		tag, ok = ParseAudioTag("audio:../../etc")
		So(ok, ShouldBeTrue)
		So(tag.Subformat, ShouldEqual, "m4a")

		_, ok = ParseAudioTag("720p")
		So(ok, ShouldBeFalse)
	})

	Convey("Request defaults its token to best", t, func() {
		So((&Request{}).EffectiveToken(), ShouldEqual, "best")
		So((&Request{Token: "480p"}).EffectiveToken(), ShouldEqual, "480p")
	})
}
