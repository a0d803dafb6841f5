package httpclient

import (
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Client is the subset of http.Client used by outbound integrations; swapped for fakes in tests
type Client interface {
	Do(req *http.Request) (*http.Response, error)
}

// StandardHTTPClient wraps http.Client with trace propagation on outgoing requests
type StandardHTTPClient struct {
	client *http.Client
}

// NewStandardClient creates an instrumented client; timeout <= 0 means 30s
func NewStandardClient(timeout time.Duration) Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &StandardHTTPClient{
		client: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

// Do executes an HTTP request
func (c *StandardHTTPClient) Do(req *http.Request) (*http.Response, error) {
	return c.client.Do(req)
}
