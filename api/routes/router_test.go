package routes

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/angelmondragon/rocketshoes-cart/api/controllers"
	"github.com/angelmondragon/rocketshoes-cart/api/middleware"
	"github.com/angelmondragon/rocketshoes-cart/internal/cart"
	"github.com/angelmondragon/rocketshoes-cart/internal/inventory"
	"github.com/angelmondragon/rocketshoes-cart/internal/notifications"
	"github.com/angelmondragon/rocketshoes-cart/internal/storage"
	"github.com/angelmondragon/rocketshoes-cart/pkg/config"
	"github.com/angelmondragon/rocketshoes-cart/pkg/logger"
	"github.com/angelmondragon/rocketshoes-cart/pkg/metrics"
	"github.com/angelmondragon/rocketshoes-cart/pkg/types"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()
	reg := prometheus.NewRegistry()
	catalog := inventory.NewCatalog(inventory.Seed{
		Products: []inventory.Product{{ID: 1, Title: "Tênis"}},
		Stock:    []inventory.Stock{{ID: 1, Amount: 1}},
	})
	store := storage.NewMemory()
	feed := notifications.NewFeed(10)
	manager, err := cart.NewManager(context.Background(), catalog, store, feed, cart.WithMetrics(metrics.NewCartMetrics(reg)))
	require.NoError(t, err)

	return NewRouter(&config.Config{App: config.AppConfig{Env: "test"}}, logger.Nop(), Dependencies{
		Cart:           manager,
		Notifications:  feed,
		Readiness:      map[string]controllers.Pinger{"store": store},
		HTTPMetrics:    middleware.NewHTTPMetrics(reg),
		MetricsHandler: promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
	})
}

func serve(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	resp := httptest.NewRecorder()
	h.ServeHTTP(resp, req)
	return resp
}

func TestRouterHealth(t *testing.T) {
	h := newTestHandler(t)
	assert.Equal(t, http.StatusOK, serve(h, http.MethodGet, "/health/live", "").Code)
	assert.Equal(t, http.StatusOK, serve(h, http.MethodGet, "/health/ready", "").Code)
}

func TestRouterCartAndNotifications(t *testing.T) {
	h := newTestHandler(t)

	resp := serve(h, http.MethodPost, "/api/v1/cart/items", `{"productId":1}`)
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
	assert.NotEmpty(t, resp.Header().Get("X-Request-Id"))

	resp = serve(h, http.MethodPost, "/api/v1/cart/items", `{"productId":1}`)
	require.Equal(t, http.StatusConflict, resp.Code)

	resp = serve(h, http.MethodGet, "/api/v1/notifications", "")
	require.Equal(t, http.StatusOK, resp.Code)
	var envelope struct {
		Data []notifications.Notification `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	require.Len(t, envelope.Data, 1)
	assert.Equal(t, "Quantidade solicitada fora de estoque", envelope.Data[0].Message)

	resp = serve(h, http.MethodGet, "/api/v1/cart", "")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"itemCount":1`)
}

func TestRouterMetricsEndpoint(t *testing.T) {
	h := newTestHandler(t)
	serve(h, http.MethodDelete, "/api/v1/cart/items/5", "")

	resp := serve(h, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, resp.Code)
	body := resp.Body.String()
	assert.Contains(t, body, "cart_operations_total")
	assert.Contains(t, body, "http_requests_total")
}

func TestRouterUnknownRoute(t *testing.T) {
	h := newTestHandler(t)
	assert.Equal(t, http.StatusNotFound, serve(h, http.MethodGet, "/nope", "").Code)
}

func TestRouterErrorBodiesEchoRequestID(t *testing.T) {
	h := newTestHandler(t)

	resp := serve(h, http.MethodDelete, "/api/v1/cart/items/42", "")
	require.Equal(t, http.StatusUnprocessableEntity, resp.Code, resp.Body.String())

	var envelope types.ErrorEnvelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	assert.Equal(t, "CART_OPERATION_FAILED", envelope.Error.Code)
	assert.Equal(t, resp.Header().Get(middleware.RequestIDHeader), envelope.Error.RequestID)
	assert.True(t, envelope.Error.Retryable)
}
