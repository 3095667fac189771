package cart

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	cartsvc "github.com/angelmondragon/rocketshoes-cart/internal/cart"
	"github.com/angelmondragon/rocketshoes-cart/internal/inventory"
	"github.com/angelmondragon/rocketshoes-cart/internal/notifications"
	"github.com/angelmondragon/rocketshoes-cart/internal/storage"
	pkgerrors "github.com/angelmondragon/rocketshoes-cart/pkg/errors"
	"github.com/angelmondragon/rocketshoes-cart/pkg/logger"
	"github.com/angelmondragon/rocketshoes-cart/pkg/types"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

func newTestRouter(t *testing.T, stock map[int64]int) (http.Handler, *notifications.Feed) {
	t.Helper()
	seed := inventory.Seed{
		Products: []inventory.Product{
			{ID: 1, Title: "Tênis de Caminhada Leve Confortável", Price: decimal.RequireFromString("179.9"), Image: "1.jpg"},
			{ID: 2, Title: "Tênis VR Caminhada Confortável", Price: decimal.RequireFromString("139.9"), Image: "2.jpg"},
		},
	}
	for id, amount := range stock {
		seed.Stock = append(seed.Stock, inventory.Stock{ID: id, Amount: amount})
	}
	feed := notifications.NewFeed(10)
	manager, err := cartsvc.NewManager(context.Background(), inventory.NewCatalog(seed), storage.NewMemory(), feed)
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}

	r := chi.NewRouter()
	r.Get("/api/v1/cart", CartFetch(manager, logger.Nop()))
	r.Post("/api/v1/cart/items", CartAddItem(manager, logger.Nop()))
	r.Delete("/api/v1/cart/items/{productId}", CartRemoveItem(manager, logger.Nop()))
	r.Patch("/api/v1/cart/items/{productId}", CartUpdateItem(manager, logger.Nop()))
	return r, feed
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	resp := httptest.NewRecorder()
	h.ServeHTTP(resp, req)
	return resp
}

func decodeView(t *testing.T, resp *httptest.ResponseRecorder) CartView {
	t.Helper()
	var envelope struct {
		Data CartView `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return envelope.Data
}

func decodeError(t *testing.T, resp *httptest.ResponseRecorder) types.APIError {
	t.Helper()
	var envelope types.ErrorEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	return envelope.Error
}

func TestCartFetchEmpty(t *testing.T) {
	h, _ := newTestRouter(t, nil)
	resp := do(t, h, http.MethodGet, "/api/v1/cart", "")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	view := decodeView(t, resp)
	if view.Items == nil || len(view.Items) != 0 || view.ItemCount != 0 {
		t.Fatalf("unexpected view %+v", view)
	}
}

func TestCartAddUpdateRemoveFlow(t *testing.T) {
	h, feed := newTestRouter(t, map[int64]int{1: 3, 2: 1})

	resp := do(t, h, http.MethodPost, "/api/v1/cart/items", `{"productId":1}`)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", resp.Code, resp.Body.String())
	}
	resp = do(t, h, http.MethodPost, "/api/v1/cart/items", `{"productId":2}`)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d", resp.Code)
	}

	resp = do(t, h, http.MethodPatch, "/api/v1/cart/items/1", `{"amount":3}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	view := decodeView(t, resp)
	if view.ItemCount != 4 || !view.Subtotal.Equal(decimal.RequireFromString("679.6")) {
		t.Fatalf("unexpected totals %+v", view)
	}

	resp = do(t, h, http.MethodDelete, "/api/v1/cart/items/2", "")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	view = decodeView(t, resp)
	if len(view.Items) != 1 || view.Items[0].ID != 1 {
		t.Fatalf("unexpected items %+v", view.Items)
	}
	if feed.Len() != 0 {
		t.Fatalf("expected no notifications")
	}
}

func TestCartErrorStatuses(t *testing.T) {
	cases := []struct {
		name   string
		method string
		path   string
		body   string
		status int
		code   pkgerrors.Code
	}{
		{name: "out of stock add", method: http.MethodPost, path: "/api/v1/cart/items", body: `{"productId":2}`, status: http.StatusConflict, code: pkgerrors.CodeOutOfStock},
		{name: "remove missing", method: http.MethodDelete, path: "/api/v1/cart/items/9", status: http.StatusUnprocessableEntity, code: pkgerrors.CodeCartOperation},
		{name: "update missing", method: http.MethodPatch, path: "/api/v1/cart/items/9", body: `{"amount":1}`, status: http.StatusNotFound, code: pkgerrors.CodeProductNotInCart},
		{name: "update zero", method: http.MethodPatch, path: "/api/v1/cart/items/9", body: `{"amount":0}`, status: http.StatusUnprocessableEntity, code: pkgerrors.CodeCartOperation},
		{name: "missing amount", method: http.MethodPatch, path: "/api/v1/cart/items/9", body: `{}`, status: http.StatusBadRequest, code: pkgerrors.CodeValidation},
		{name: "bad id", method: http.MethodDelete, path: "/api/v1/cart/items/abc", status: http.StatusBadRequest, code: pkgerrors.CodeValidation},
		{name: "bad body", method: http.MethodPost, path: "/api/v1/cart/items", body: `{"productId":"x"}`, status: http.StatusBadRequest, code: pkgerrors.CodeValidation},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h, _ := newTestRouter(t, map[int64]int{1: 3, 2: 0})
			resp := do(t, h, tc.method, tc.path, tc.body)
			if resp.Code != tc.status {
				t.Fatalf("expected %d got %d: %s", tc.status, resp.Code, resp.Body.String())
			}
			if apiErr := decodeError(t, resp); apiErr.Code != string(tc.code) {
				t.Fatalf("expected code %s got %s", tc.code, apiErr.Code)
			}
		})
	}
}

func TestCartOutOfStockMessageIsLocalized(t *testing.T) {
	h, feed := newTestRouter(t, map[int64]int{1: 1})
	do(t, h, http.MethodPost, "/api/v1/cart/items", `{"productId":1}`)
	resp := do(t, h, http.MethodPost, "/api/v1/cart/items", `{"productId":1}`)

	apiErr := decodeError(t, resp)
	if apiErr.Message != "Quantidade solicitada fora de estoque" {
		t.Fatalf("unexpected message %q", apiErr.Message)
	}
	drained := feed.Drain()
	if len(drained) != 1 || drained[0].Message != apiErr.Message {
		t.Fatalf("unexpected feed %+v", drained)
	}
}

func TestHandlersWithoutService(t *testing.T) {
	resp := httptest.NewRecorder()
	CartFetch(nil, nil).ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/", nil))
	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 got %d", resp.Code)
	}
}
