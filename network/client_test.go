package network

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestNewMediaClient(t *testing.T) {
	Convey("NewMediaClient", t, func() {
		Convey("Should use the tuned transport by default", func() {
			c := NewMediaClient(false, 0)
			tr, ok := c.Transport.(*http.Transport)
			So(ok, ShouldBeTrue)
			So(tr.MaxIdleConnsPerHost, ShouldEqual, 100)
			So(c.Timeout, ShouldEqual, time.Duration(0))
		})

		Convey("Should switch to the fingerprint transport on request", func() {
			c := NewMediaClient(true, 5*time.Second)
			_, ok := c.Transport.(*fingerprintTransport)
			So(ok, ShouldBeTrue)
			So(c.Timeout, ShouldEqual, 5*time.Second)
		})
	})
}

func TestFingerprintTransportPlainHTTP(t *testing.T) {
	Convey("Given a plain-HTTP upstream", t, func() {
		upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Proto", r.Proto)
			w.WriteHeader(http.StatusNoContent)
		}))
		defer upstream.Close()

		Convey("Requests bypass the TLS path and go over HTTP/1.1", func() {
			c := &http.Client{Transport: NewFingerprintTransport()}
			resp, err := c.Get(upstream.URL)
			So(err, ShouldBeNil)
			defer resp.Body.Close()
			So(resp.StatusCode, ShouldEqual, http.StatusNoContent)
			So(resp.Header.Get("X-Proto"), ShouldEqual, "HTTP/1.1")
		})
	})
}

func TestWithHeaders(t *testing.T) {
	Convey("Given an upstream echoing the cookie header", t, func() {
		upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Cookie", r.Header.Get("Cookie"))
			w.WriteHeader(http.StatusNoContent)
		}))
		defer upstream.Close()

		Convey("Missing headers are added", func() {
			c := WithHeaders(upstream.Client(), http.Header{"Cookie": {"SID=1"}})
			resp, err := c.Get(upstream.URL)
			So(err, ShouldBeNil)
			defer resp.Body.Close()
			So(resp.Header.Get("X-Cookie"), ShouldEqual, "SID=1")
		})

		Convey("Headers set on the request win", func() {
			c := WithHeaders(upstream.Client(), http.Header{"Cookie": {"SID=1"}})
			req, _ := http.NewRequest(http.MethodGet, upstream.URL, nil)
			req.Header.Set("Cookie", "SID=2")
			resp, err := c.Do(req)
			So(err, ShouldBeNil)
			defer resp.Body.Close()
			So(resp.Header.Get("X-Cookie"), ShouldEqual, "SID=2")
		})

		Convey("No headers returns the same client", func() {
			c := upstream.Client()
			So(WithHeaders(c, nil), ShouldEqual, c)
		})
	})
}
