package commands_test

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"delivery-service/internal/adapters/out/authclient"
	"delivery-service/internal/adapters/out/discovery"
	"delivery-service/internal/adapters/out/memory"
	"delivery-service/internal/core/application/usecases/commands"
	"delivery-service/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRefreshPublicKey_AgainstAuthService(t *testing.T) {
	var healthy atomic.Bool
	authService := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/key" || !healthy.Load() {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"public_key":"abc"}`))
	}))
	defer authService.Close()

	keys := memory.NewPublicKeyStore()
	keys.Set("old")

	h := commands.NewRefreshPublicKeyCommandHandler(
		discovery.NewStatic(map[string]string{commands.AuthServiceName: authService.URL}),
		authclient.NewClient(time.Second),
		keys,
	)
	cmd, err := commands.NewRefreshPublicKeyCommand(commands.PublicKeyAvailable)
	require.NoError(t, err)

	err = h.Handle(t.Context(), cmd)
	require.ErrorIs(t, err, errs.ErrUpstreamUnavailable)
	assert.Equal(t, "old", keys.Get())

	healthy.Store(true)
	require.NoError(t, h.Handle(t.Context(), cmd))
	assert.Equal(t, "abc", keys.Get())
}
