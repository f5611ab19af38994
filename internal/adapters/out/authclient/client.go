// Package authclient downloads the token signing key from the auth service.
package authclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"delivery-service/internal/pkg/errs"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	DefaultTimeout = 5 * time.Second
	keyPath        = "/auth/key"
	serviceName    = "auth"
	maxBodyBytes   = 64 << 10
)

type keyResponse struct {
	PublicKey string `json:"public_key"`
}

type Client struct {
	http *http.Client
}

func NewClient(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		http: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

// FetchPublicKey calls GET {baseURL}/auth/key. Anything but a 200 with a
// non-empty public_key is reported as *errs.UpstreamUnavailableError.
func (c *Client) FetchPublicKey(ctx context.Context, baseURL string) (string, error) {
	url := strings.TrimRight(baseURL, "/") + keyPath
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", errs.NewUpstreamUnavailableError(serviceName, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", errs.NewUpstreamUnavailableError(serviceName, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", errs.NewUpstreamUnavailableError(serviceName, fmt.Errorf("GET %s returned status %d", keyPath, resp.StatusCode))
	}

	var body keyResponse
	if err = json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&body); err != nil {
		return "", errs.NewUpstreamUnavailableError(serviceName, fmt.Errorf("decode key response: %w", err))
	}
	if body.PublicKey == "" {
		return "", errs.NewUpstreamUnavailableError(serviceName, fmt.Errorf("key response has no public_key"))
	}

	return body.PublicKey, nil
}
