package auth

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/zalando/go-keyring"
)

func TestCookieKeyring(t *testing.T) {
	Convey("Given a mock keyring", t, func() {
		keyring.MockInit()

		Convey("Nothing is stored initially", func() {
			So(StoredCookie().IsAbsent(), ShouldBeTrue)
		})

		Convey("A cookie round-trips through the keyring", func() {
			So(SetCookie("  SID=abc; HSID=def  "), ShouldBeNil)
			So(StoredCookie().MustGet(), ShouldEqual, "SID=abc; HSID=def")

			Convey("And can be deleted", func() {
				So(DeleteCookie(), ShouldBeNil)
				So(StoredCookie().IsAbsent(), ShouldBeTrue)
			})
		})

		Convey("Blank cookies are rejected", func() {
			So(SetCookie("   "), ShouldEqual, ErrEmptyCookie)
		})
	})
}

func TestMask(t *testing.T) {
	Convey("Mask", t, func() {
		So(Mask("SID=abcdef"), ShouldEqual, "SID=ab****")
		So(Mask("abc"), ShouldEqual, "***")
	})
}
