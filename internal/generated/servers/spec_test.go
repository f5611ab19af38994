package servers_test

import (
	"strings"
	"testing"

	"delivery-service/internal/generated/servers"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSwagger(t *testing.T) {
	doc, err := servers.GetSwagger()
	require.NoError(t, err)

	for _, path := range []string{
		"/deliveries",
		"/deliveries/address",
		"/deliveries/health/auth",
		"/deliveries/{orderId}",
	} {
		assert.NotNil(t, doc.Paths.Find(path), path)
	}

	op := doc.Paths.Find("/deliveries/address").Post
	require.NotNil(t, op.Security)
	assert.NotEmpty(t, *op.Security)
}

func TestRegisterHandlers_BindsEveryDocumentedOperation(t *testing.T) {
	doc, err := servers.GetSwagger()
	require.NoError(t, err)

	e := echo.New()
	servers.RegisterHandlers(e, nil)

	bound := map[string]bool{}
	for _, r := range e.Routes() {
		bound[r.Method+" "+r.Path] = true
	}

	documented := 0
	for path, item := range doc.Paths.Map() {
		echoPath := strings.NewReplacer("{", ":", "}", "").Replace(path)
		for method := range item.Operations() {
			documented++
			assert.True(t, bound[method+" "+echoPath], "%s %s is not bound", method, path)
		}
	}
	assert.Len(t, e.Routes(), documented)
}
