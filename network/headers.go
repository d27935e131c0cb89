package network

import "net/http"

// headerTransport stamps fixed headers onto every outgoing request.
type headerTransport struct {
	base    http.RoundTripper
	headers http.Header
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	for key, values := range t.headers {
		if req.Header.Get(key) != "" {
			continue
		}
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
	return t.base.RoundTrip(req)
}

// WithHeaders returns a copy of client that adds headers to requests lacking them.
// The copy shares the underlying transport and its connection pool.
func WithHeaders(client *http.Client, headers http.Header) *http.Client {
	if len(headers) == 0 {
		return client
	}

	base := client.Transport
	if base == nil {
		base = http.DefaultTransport
	}

	clone := *client
	clone.Transport = &headerTransport{base: base, headers: headers.Clone()}
	return &clone
}
