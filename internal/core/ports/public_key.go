package ports

import "context"

// PublicKeyStore holds the PEM-encoded key used to verify bearer tokens.
// Get returns an empty string until the first successful Set.
type PublicKeyStore interface {
	Get() string
	Set(key string)
}

// PublicKeyFetcher downloads the current signing key from the auth service.
type PublicKeyFetcher interface {
	FetchPublicKey(ctx context.Context, baseURL string) (string, error)
}

// ServiceDiscovery resolves a logical service name to a base URL
// such as "http://auth:8000".
type ServiceDiscovery interface {
	Resolve(ctx context.Context, service string) (string, error)
}
