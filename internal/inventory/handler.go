package inventory

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	pkgerrors "github.com/angelmondragon/rocketshoes-cart/pkg/errors"
	"github.com/angelmondragon/rocketshoes-cart/pkg/logger"
)

// NewHandler serves a catalog with the same routes and bare JSON bodies as the
// upstream inventory service, so Client can be pointed at it.
func NewHandler(catalog *Catalog, logg *logger.Logger) http.Handler {
	r := chi.NewRouter()
	r.Get("/products", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, catalog.Products())
	})
	r.Get("/stock", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, catalog.Stocks())
	})
	r.Get("/products/{id}", func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(w, r)
		if !ok {
			return
		}
		p, err := catalog.GetProduct(r.Context(), id)
		if err != nil {
			writeLookupError(w, r, logg, err)
			return
		}
		writeJSON(w, http.StatusOK, p)
	})
	r.Get("/stock/{id}", func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(w, r)
		if !ok {
			return
		}
		s, err := catalog.GetStock(r.Context(), id)
		if err != nil {
			writeLookupError(w, r, logg, err)
			return
		}
		writeJSON(w, http.StatusOK, s)
	})
	return r
}

func parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusNotFound, struct{}{})
		return 0, false
	}
	return id, true
}

func writeLookupError(w http.ResponseWriter, r *http.Request, logg *logger.Logger, err error) {
	status := pkgerrors.MetadataFor(pkgerrors.CodeOf(err)).HTTPStatus
	if logg != nil && status >= http.StatusInternalServerError {
		logg.Error(r.Context(), "inventory lookup failed", err)
	}
	writeJSON(w, status, struct{}{})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
