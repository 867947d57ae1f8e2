package http

import "net/http"

// TransportFunc wraps a RoundTripper with extra behaviour
type TransportFunc func(http.RoundTripper) http.RoundTripper

type headerTransport struct {
	headers   http.Header
	transport http.RoundTripper
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	reqCopy := req.Clone(req.Context())
	for key, values := range t.headers {
		reqCopy.Header[key] = append([]string(nil), values...)
	}
	return t.transport.RoundTrip(reqCopy)
}

// WithStaticHeaders sets fixed headers on every request, empty values are skipped
func WithStaticHeaders(headers map[string]string) HttpOpts {
	h := make(http.Header, len(headers))
	for k, v := range headers {
		if v != "" {
			h.Set(k, v)
		}
	}

	return WithTransport(func(rt http.RoundTripper) http.RoundTripper {
		if len(h) == 0 {
			return rt
		}
		return &headerTransport{headers: h, transport: rt}
	})
}

// WithAuthToken sends the token as a bearer credential. An empty token adds nothing.
func WithAuthToken(token string) HttpOpts {
	if token == "" {
		return WithStaticHeaders(nil)
	}
	return WithStaticHeaders(map[string]string{"Authorization": "Bearer " + token})
}
