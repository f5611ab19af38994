// Package discovery resolves logical service names to base URLs.
package discovery

import (
	"context"
	"fmt"
	"strings"

	"delivery-service/internal/pkg/errs"
)

// Static resolves names from a fixed table built from configuration.
type Static struct {
	services map[string]string
}

// NewStatic drops entries with an empty URL and trailing slashes.
func NewStatic(services map[string]string) *Static {
	table := make(map[string]string, len(services))
	for name, url := range services {
		url = strings.TrimRight(strings.TrimSpace(url), "/")
		if url == "" {
			continue
		}
		table[name] = url
	}
	return &Static{services: table}
}

func (s *Static) Resolve(_ context.Context, service string) (string, error) {
	url, ok := s.services[service]
	if !ok {
		return "", errs.NewObjectNotFoundErrorWithCause("service", service, fmt.Errorf("no address configured"))
	}
	return url, nil
}
