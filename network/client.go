// Package network provides pre-configured HTTP clients for upstream media and release traffic.
package network

import (
	"net/http"
	"time"
)

// Client is the shared HTTP client used for small API calls such as release lookups.
var Client = &http.Client{
	Timeout:   time.Minute,
	Transport: newTransport(),
}

// NewMediaClient builds the client used against media hosts.
// A zero timeout leaves long transfers bounded only by the caller's context.
func NewMediaClient(fingerprint bool, timeout time.Duration) *http.Client {
	var transport http.RoundTripper = newTransport()
	if fingerprint {
		transport = NewFingerprintTransport()
	}

	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
}

func newTransport() *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConns = 100
	t.MaxIdleConnsPerHost = 100
	t.MaxConnsPerHost = 200
	t.IdleConnTimeout = 30 * time.Second
	t.ResponseHeaderTimeout = 30 * time.Second
	t.ExpectContinueTimeout = 30 * time.Second
	return t
}
