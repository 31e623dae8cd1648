// Package workos is the entry point of the SDK. A WorkOS value owns one shared
// HTTP client and exposes every resource built on top of it.
package workos

import (
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/trace"

	"github.com/Icegreeen/workos-go/pkg/platform/httpclient"
	"github.com/Icegreeen/workos-go/pkg/users"
)

type WorkOS struct {
	client *httpclient.Client

	Users *users.Users
}

type settings struct {
	clientOpts []httpclient.Option
}

type Option func(s *settings)

// WithBaseURL points the SDK at another API host, e.g. a local fake.
func WithBaseURL(baseURL string) Option {
	return func(s *settings) {
		s.clientOpts = append(s.clientOpts, httpclient.WithBaseURL(baseURL))
	}
}

func WithHTTPClient(hc *http.Client) Option {
	return func(s *settings) {
		s.clientOpts = append(s.clientOpts, httpclient.WithHTTPClient(hc))
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) {
		s.clientOpts = append(s.clientOpts, httpclient.WithLogger(logger))
	}
}

// WithMetrics registers request counters and latency histograms on reg.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(s *settings) {
		s.clientOpts = append(s.clientOpts, httpclient.WithMetrics(reg))
	}
}

func WithTracer(tracer trace.Tracer) Option {
	return func(s *settings) {
		s.clientOpts = append(s.clientOpts, httpclient.WithTracer(tracer))
	}
}

func WithUserAgent(ua string) Option {
	return func(s *settings) {
		s.clientOpts = append(s.clientOpts, httpclient.WithUserAgent(ua))
	}
}

// New builds the SDK around apiKey. The key authenticates every request and is
// sent as client_secret on session token grants.
func New(apiKey string, opts ...Option) *WorkOS {
	var s settings
	for _, opt := range opts {
		opt(&s)
	}
	client := httpclient.New(apiKey, s.clientOpts...)
	return &WorkOS{
		client: client,
		Users:  users.New(client),
	}
}

// Key returns the API key the SDK was built with.
func (w *WorkOS) Key() string {
	return w.client.Key()
}

// BaseURL returns the API host requests go to.
func (w *WorkOS) BaseURL() string {
	return w.client.BaseURL()
}
