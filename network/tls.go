package network

// The fingerprint transport presents Chrome's ClientHello (utls HelloChrome_120) to upstream hosts.
// Some CDNs throttle or reject the stock Go handshake on media endpoints.
//
// Protocol negotiation: requests go through an HTTP/2 transport first. When the handshake
// or the h2 exchange fails, the request is retried once over HTTP/1.1 with ALPN pinned to
// http/1.1. Only bodiless requests are retried, which covers every GET and HEAD sent to media hosts.

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/http"
	"time"

	utls "github.com/refraction-networking/utls"
	"golang.org/x/net/http2"
)

const dialTimeout = 30 * time.Second

type fingerprintTransport struct {
	h2 http.RoundTripper
	h1 http.RoundTripper
}

// NewFingerprintTransport returns a RoundTripper that mimics Chrome's TLS fingerprint.
func NewFingerprintTransport() http.RoundTripper {
	return &fingerprintTransport{
		h2: &http2.Transport{
			DialTLSContext: func(ctx context.Context, network, addr string, _ *tls.Config) (net.Conn, error) {
				return dialFingerprint(ctx, network, addr, nil)
			},
		},
		h1: &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			DialTLSContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
				return dialFingerprint(ctx, network, addr, []string{"http/1.1"})
			},
			MaxIdleConnsPerHost:   100,
			IdleConnTimeout:       30 * time.Second,
			ResponseHeaderTimeout: 30 * time.Second,
		},
	}
}

func (t *fingerprintTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.URL.Scheme != "https" {
		return t.h1.RoundTrip(req)
	}

	resp, err := t.h2.RoundTrip(req)
	if err == nil {
		return resp, nil
	}

	if req.Body != nil && req.Body != http.NoBody {
		return nil, err
	}

	if ctxErr := req.Context().Err(); ctxErr != nil {
		return nil, ctxErr
	}

	return t.h1.RoundTrip(req.Clone(req.Context()))
}

func dialFingerprint(ctx context.Context, network, addr string, protos []string) (net.Conn, error) {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		host = addr
	}

	dialer := &net.Dialer{Timeout: dialTimeout}
	conn, err := dialer.DialContext(ctx, network, addr)
	if err != nil {
		return nil, err
	}

	tlsConn := utls.UClient(conn, &utls.Config{
		ServerName: host,
		MinVersion: tls.VersionTLS12,
		NextProtos: protos,
	}, utls.HelloChrome_120)

	if err := tlsConn.Handshake(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("tls handshake: %w", err)
	}

	return tlsConn, nil
}
