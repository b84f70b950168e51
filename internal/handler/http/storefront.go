// Package http exposes the storefront and admin REST surface.
package http

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/theBillionaireApostle/Rani-Riwaaj-sub000/pkg/httputil"

	"github.com/theBillionaireApostle/Rani-Riwaaj-sub000/internal/catalog"
	"github.com/theBillionaireApostle/Rani-Riwaaj-sub000/internal/domain"
)

// ProductLister supplies the raw catalog the storefront derives its grid
// from.
type ProductLister interface {
	ListAllProducts(ctx context.Context) ([]domain.Product, error)
}

// StorefrontHandler serves the public product grid.
type StorefrontHandler struct {
	products ProductLister
	pipeline *catalog.Pipeline
	logger   *slog.Logger
}

// NewStorefrontHandler creates a storefront handler running the given
// pipeline.
func NewStorefrontHandler(products ProductLister, pipeline *catalog.Pipeline, logger *slog.Logger) *StorefrontHandler {
	return &StorefrontHandler{
		products: products,
		pipeline: pipeline,
		logger:   logger,
	}
}

// ListProducts handles GET /api/v1/products.
//
// Query params: search (name substring), justIn (justIn|notJustIn),
// sort (date-desc|date-asc|price-asc|price-desc), limit (reveal size,
// default 10, grows in steps of 10).
func (h *StorefrontHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	query := catalog.Query{
		Search: r.URL.Query().Get("search"),
		Sort:   catalog.SortOption(r.URL.Query().Get("sort")),
	}

	switch v := r.URL.Query().Get("justIn"); v {
	case "", string(catalog.JustInOnly), string(catalog.JustInNone):
		query.JustIn = catalog.JustInFilter(v)
	default:
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_PARAMETER", Message: "justIn must be justIn or notJustIn"},
		})
		return
	}

	switch query.Sort {
	case "", catalog.SortDateDesc, catalog.SortDateAsc, catalog.SortPriceAsc, catalog.SortPriceDesc:
	default:
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_PARAMETER", Message: "sort must be one of: date-desc, date-asc, price-asc, price-desc"},
		})
		return
	}

	limit := catalog.DefaultWindowStep
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
				Error: &httputil.ErrorResponse{Code: "INVALID_PARAMETER", Message: "limit must be a positive integer"},
			})
			return
		}
		limit = n
	}

	products, err := h.products.ListAllProducts(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	enriched := h.pipeline.RunAll(products, query)

	// Grow a reveal window until it covers the requested limit, so the
	// visible count advances in the same steps the scroll trigger uses.
	window := catalog.NewWindow(catalog.DefaultWindowStep)
	window.SetTotal(len(enriched))
	for window.Visible() < limit && window.Reveal() {
	}
	visible := catalog.Cut(enriched, window)

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{
		Data: map[string]any{
			"products":  visible,
			"total":     len(enriched),
			"visible":   window.Visible(),
			"exhausted": window.Exhausted(),
		},
	})
}
