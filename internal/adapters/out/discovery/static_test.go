package discovery_test

import (
	"testing"

	"delivery-service/internal/adapters/out/discovery"
	"delivery-service/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatic_Resolve(t *testing.T) {
	d := discovery.NewStatic(map[string]string{
		"auth":  " http://auth:8000/ ",
		"empty": "",
	})

	url, err := d.Resolve(t.Context(), "auth")
	require.NoError(t, err)
	assert.Equal(t, "http://auth:8000", url)

	_, err = d.Resolve(t.Context(), "empty")
	require.ErrorIs(t, err, errs.ErrObjectNotFound)

	_, err = d.Resolve(t.Context(), "orders")
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}
