package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/theBillionaireApostle/Rani-Riwaaj-sub000/pkg/httputil"
	"github.com/theBillionaireApostle/Rani-Riwaaj-sub000/pkg/middleware"
	"github.com/theBillionaireApostle/Rani-Riwaaj-sub000/pkg/validator"

	"github.com/theBillionaireApostle/Rani-Riwaaj-sub000/internal/domain"
	"github.com/theBillionaireApostle/Rani-Riwaaj-sub000/internal/event"
	"github.com/theBillionaireApostle/Rani-Riwaaj-sub000/internal/syncer"
)

// WishlistHandler serves the wishlist endpoints.
type WishlistHandler struct {
	sessions *syncer.Manager
	events   event.Publisher
	logger   *slog.Logger
}

// NewWishlistHandler creates a wishlist handler. events may be nil.
func NewWishlistHandler(sessions *syncer.Manager, events event.Publisher, logger *slog.Logger) *WishlistHandler {
	return &WishlistHandler{
		sessions: sessions,
		events:   events,
		logger:   logger,
	}
}

// ToggleRequest is the JSON request body for toggling a wishlist item.
type ToggleRequest struct {
	ID       string         `json:"id" validate:"required"`
	Name     string         `json:"name" validate:"required"`
	Price    *domain.Amount `json:"price"`
	ImageURL string         `json:"image_url"`
}

type wishlistResponse struct {
	Items []domain.WishlistItem `json:"items"`
	Count int                   `json:"count"`
}

func (h *WishlistHandler) wishlist(w http.ResponseWriter, r *http.Request) (*syncer.Wishlist, bool) {
	wl, err := h.sessions.Wishlist(r.Context(), middleware.UserIDFromContext(r.Context()))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return nil, false
	}
	return wl, true
}

func (h *WishlistHandler) writeWishlist(w http.ResponseWriter, wl *syncer.Wishlist) {
	items := wl.Items()
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: wishlistResponse{
		Items: items,
		Count: len(items),
	}})
}

func (h *WishlistHandler) publishUpdated(r *http.Request, wl *syncer.Wishlist) {
	if h.events == nil {
		return
	}
	if err := h.events.WishlistUpdated(r.Context(), wl.UserID(), wl.Items()); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to publish wishlist.updated event",
			slog.String("error", err.Error()),
		)
	}
}

// GetWishlist handles GET /api/v1/wishlist.
func (h *WishlistHandler) GetWishlist(w http.ResponseWriter, r *http.Request) {
	wl, ok := h.wishlist(w, r)
	if !ok {
		return
	}
	h.writeWishlist(w, wl)
}

// ToggleItem handles POST /api/v1/wishlist/toggle. For guest sessions the
// toggle is a no-op and the (empty) wishlist is returned unchanged.
func (h *WishlistHandler) ToggleItem(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req ToggleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return
	}
	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	wl, ok := h.wishlist(w, r)
	if !ok {
		return
	}

	item := domain.WishlistItem{
		ID:       req.ID,
		Name:     req.Name,
		Price:    req.Price,
		ImageURL: req.ImageURL,
	}
	if err := wl.Toggle(r.Context(), item); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	h.publishUpdated(r, wl)
	h.writeWishlist(w, wl)
}

// RemoveItem handles DELETE /api/v1/wishlist/{id}.
func (h *WishlistHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	wl, ok := h.wishlist(w, r)
	if !ok {
		return
	}

	if err := wl.Remove(r.Context(), chi.URLParam(r, "id")); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	h.publishUpdated(r, wl)
	h.writeWishlist(w, wl)
}
