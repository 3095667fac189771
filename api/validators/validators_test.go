package validators

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	pkgerrors "github.com/angelmondragon/rocketshoes-cart/pkg/errors"
	"github.com/go-chi/chi/v5"
)

type addPayload struct {
	ProductID int64 `json:"productId" validate:"required,min=1"`
}

func TestDecodeJSONBody(t *testing.T) {
	var payload addPayload
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"productId":3}`))
	if err := DecodeJSONBody(req, &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload.ProductID != 3 {
		t.Fatalf("unexpected payload %+v", payload)
	}
}

func TestDecodeJSONBodyErrors(t *testing.T) {
	cases := map[string]string{
		"malformed":     `{`,
		"unknown field": `{"productId":1,"extra":true}`,
		"missing":       `{}`,
		"negative":      `{"productId":-1}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			var payload addPayload
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
			err := DecodeJSONBody(req, &payload)
			if pkgerrors.CodeOf(err) != pkgerrors.CodeValidation {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func withParam(key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestParseIDParam(t *testing.T) {
	id, err := ParseIDParam(withParam("productId", "42"), "productId")
	if err != nil || id != 42 {
		t.Fatalf("expected 42, got %d (%v)", id, err)
	}

	for _, raw := range []string{"", "abc", "0", "-2"} {
		if _, err := ParseIDParam(withParam("productId", raw), "productId"); pkgerrors.CodeOf(err) != pkgerrors.CodeValidation {
			t.Fatalf("expected validation error for %q, got %v", raw, err)
		}
	}
}
