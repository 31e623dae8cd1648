package httpclient

import "net/http"

// RequestOption adjusts a single outgoing request.
type RequestOption func(req *http.Request)

// WithIdempotencyKey lets the backend deduplicate retried POSTs.
func WithIdempotencyKey(key string) RequestOption {
	return func(req *http.Request) {
		if key != "" {
			req.Header.Set("Idempotency-Key", key)
		}
	}
}

func WithHeader(name, value string) RequestOption {
	return func(req *http.Request) {
		req.Header.Set(name, value)
	}
}
