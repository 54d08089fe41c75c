// internal/interfaces/http/routes/routes_test.go
package routes

import (
	"io"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/your-org/storefront-api/internal/config"
)

func registeredRoutes(t *testing.T) gin.RoutesInfo {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	engine := gin.New()
	SetupRoutes(engine.Group("/api/v1"), nil, &config.Config{}, logger)
	return engine.Routes()
}

func TestSetupRoutesRegistersAPI(t *testing.T) {
	routes := registeredRoutes(t)

	has := func(method, path string) bool {
		for _, r := range routes {
			if r.Method == method && r.Path == path {
				return true
			}
		}
		return false
	}

	expected := []struct {
		method string
		path   string
	}{
		{"POST", "/api/v1/auth/register"},
		{"POST", "/api/v1/auth/login"},
		{"GET", "/api/v1/auth/me"},

		{"GET", "/api/v1/products"},
		{"GET", "/api/v1/products/:id"},
		{"GET", "/api/v1/products/:id/related"},
		{"POST", "/api/v1/products/:id/reviews"},

		{"GET", "/api/v1/cart"},
		{"POST", "/api/v1/cart/items"},

		{"POST", "/api/v1/orders"},
		{"POST", "/api/v1/orders/payment-intent"},
		{"POST", "/api/v1/orders/verify-payment"},
		{"GET", "/api/v1/orders"},
		{"GET", "/api/v1/orders/:id"},

		{"GET", "/api/v1/admin/orders"},
		{"PUT", "/api/v1/admin/orders/:id/status"},

		{"GET", "/api/v1/admin/products"},
		{"POST", "/api/v1/admin/products"},
		{"PUT", "/api/v1/admin/products/:id"},
		{"DELETE", "/api/v1/admin/products/:id"},

		{"GET", "/api/v1/admin/reviews"},
		{"DELETE", "/api/v1/admin/reviews/:id"},

		{"GET", "/api/v1/admin/users"},
		{"PUT", "/api/v1/admin/users/:id/role"},
		{"DELETE", "/api/v1/admin/users/:id"},

		{"GET", "/api/v1/admin/newsletter"},
		{"GET", "/api/v1/admin/carousel"},
		{"GET", "/api/v1/admin/contacts"},
	}
	for _, e := range expected {
		assert.True(t, has(e.method, e.path), "%s %s is not registered", e.method, e.path)
	}
}
