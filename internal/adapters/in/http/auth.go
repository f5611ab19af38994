package http

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"delivery-service/internal/core/ports"
	"delivery-service/internal/generated/servers"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const claimsKey = "auth.claims"

var (
	ErrMissingToken   = errors.New("missing bearer token")
	ErrKeyUnavailable = errors.New("token signing key is not available yet")
)

// TokenVerifier checks RS256 bearer tokens against the key currently held by
// the public key store. The parsed key is cached until the PEM changes.
type TokenVerifier struct {
	store ports.PublicKeyStore

	mu     sync.Mutex
	pem    string
	parsed *rsa.PublicKey
}

func NewTokenVerifier(store ports.PublicKeyStore) *TokenVerifier {
	return &TokenVerifier{store: store}
}

// Verify returns the token claims.
func (v *TokenVerifier) Verify(token string) (jwt.MapClaims, error) {
	key, err := v.key()
	if err != nil {
		return nil, err
	}

	claims := jwt.MapClaims{}
	_, err = jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}

	return claims, nil
}

func (v *TokenVerifier) key() (*rsa.PublicKey, error) {
	current := v.store.Get()
	if current == "" {
		return nil, ErrKeyUnavailable
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	if current == v.pem && v.parsed != nil {
		return v.parsed, nil
	}

	parsed, err := ParseRSAPublicKey(current)
	if err != nil {
		return nil, err
	}
	v.pem, v.parsed = current, parsed
	return parsed, nil
}

// ParseRSAPublicKey accepts PKCS#1 and PKIX encoded PEM keys.
func ParseRSAPublicKey(pemKey string) (*rsa.PublicKey, error) {
	block, _ := pem.Decode([]byte(pemKey))
	if block == nil {
		return nil, errors.New("failed to decode PEM block")
	}

	if key, err := x509.ParsePKCS1PublicKey(block.Bytes); err == nil {
		return key, nil
	}

	key, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse public key: %w", err)
	}
	rsaKey, ok := key.(*rsa.PublicKey)
	if !ok {
		return nil, errors.New("public key is not RSA")
	}
	return rsaKey, nil
}

// AuthMiddleware enforces bearer tokens on operations that declare a security
// requirement in the OpenAPI document. It must be installed with Echo.Use so
// the matched route template is known.
func AuthMiddleware(verifier *TokenVerifier, doc *openapi3.T) echo.MiddlewareFunc {
	secured := securedRoutes(doc)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			if _, ok := secured[routeKey(ctx.Request().Method, ctx.Path())]; !ok {
				return next(ctx)
			}

			token, err := bearerToken(ctx.Request())
			if err != nil {
				return unauthorized(ctx, err)
			}

			claims, err := verifier.Verify(token)
			switch {
			case errors.Is(err, ErrKeyUnavailable):
				return ctx.JSON(http.StatusServiceUnavailable, servers.Error{
					Code:    http.StatusServiceUnavailable,
					Message: err.Error(),
				})
			case err != nil:
				return unauthorized(ctx, err)
			}

			ctx.Set(claimsKey, map[string]interface{}(claims))
			return next(ctx)
		}
	}
}

// securedRoutes lists "METHOD /echo/:path" keys of operations with a
// non-empty security requirement, inherited from the document when the
// operation does not declare its own.
func securedRoutes(doc *openapi3.T) map[string]struct{} {
	secured := make(map[string]struct{})
	for path, item := range doc.Paths.Map() {
		for method, op := range item.Operations() {
			security := op.Security
			if security == nil {
				security = &doc.Security
			}
			if len(*security) == 0 {
				continue
			}
			secured[routeKey(method, echoPath(path))] = struct{}{}
		}
	}
	return secured
}

func routeKey(method, path string) string {
	return strings.ToUpper(method) + " " + path
}

// echoPath converts "/deliveries/{orderId}" to "/deliveries/:orderId".
func echoPath(path string) string {
	return strings.NewReplacer("{", ":", "}", "").Replace(path)
}

// ClaimsFromContext returns the claims of the verified token.
func ClaimsFromContext(ctx echo.Context) (map[string]interface{}, bool) {
	claims, ok := ctx.Get(claimsKey).(map[string]interface{})
	return claims, ok
}

func bearerToken(r *http.Request) (string, error) {
	header := r.Header.Get(echo.HeaderAuthorization)
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return "", ErrMissingToken
	}
	return strings.TrimSpace(token), nil
}

func unauthorized(ctx echo.Context, err error) error {
	ctx.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
	return ctx.JSON(http.StatusUnauthorized, servers.Error{
		Code:    http.StatusUnauthorized,
		Message: "Invalid token: " + err.Error(),
	})
}
