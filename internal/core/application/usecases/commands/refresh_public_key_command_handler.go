package commands

import (
	"context"

	"delivery-service/internal/core/ports"
	"delivery-service/internal/metrics"
	"delivery-service/internal/pkg/errs"
)

// RefreshPublicKeyCommandHandler downloads the auth service's current signing
// key and replaces the cached one. On any failure the cached key stays in place.
type RefreshPublicKeyCommandHandler struct {
	discovery ports.ServiceDiscovery
	fetcher   ports.PublicKeyFetcher
	store     ports.PublicKeyStore
}

func NewRefreshPublicKeyCommandHandler(
	discovery ports.ServiceDiscovery,
	fetcher ports.PublicKeyFetcher,
	store ports.PublicKeyStore,
) RefreshPublicKeyCommandHandler {
	return RefreshPublicKeyCommandHandler{
		discovery: discovery,
		fetcher:   fetcher,
		store:     store,
	}
}

func (h *RefreshPublicKeyCommandHandler) Handle(ctx context.Context, cmd RefreshPublicKeyCommand) (err error) {
	if err = cmd.Validate(); err != nil {
		return err
	}
	defer func() { metrics.RecordKeyRefresh(err) }()

	baseURL, err := h.discovery.Resolve(ctx, AuthServiceName)
	if err != nil {
		return errs.NewUpstreamUnavailableError(AuthServiceName, err)
	}

	key, err := h.fetcher.FetchPublicKey(ctx, baseURL)
	if err != nil {
		return err
	}

	h.store.Set(key)
	return nil
}
