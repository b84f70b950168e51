package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/theBillionaireApostle/Rani-Riwaaj-sub000/pkg/httputil"
	"github.com/theBillionaireApostle/Rani-Riwaaj-sub000/pkg/middleware"
	"github.com/theBillionaireApostle/Rani-Riwaaj-sub000/pkg/validator"

	"github.com/theBillionaireApostle/Rani-Riwaaj-sub000/internal/checkout"
	"github.com/theBillionaireApostle/Rani-Riwaaj-sub000/internal/domain"
	"github.com/theBillionaireApostle/Rani-Riwaaj-sub000/internal/event"
	"github.com/theBillionaireApostle/Rani-Riwaaj-sub000/internal/syncer"
)

// CartHandler serves the shopping cart endpoints.
type CartHandler struct {
	sessions *syncer.Manager
	checkout *checkout.Service
	events   event.Publisher
	logger   *slog.Logger
}

// NewCartHandler creates a cart handler. events may be nil.
func NewCartHandler(sessions *syncer.Manager, checkoutSvc *checkout.Service, events event.Publisher, logger *slog.Logger) *CartHandler {
	return &CartHandler{
		sessions: sessions,
		checkout: checkoutSvc,
		events:   events,
		logger:   logger,
	}
}

// AddItemRequest is the JSON request body for adding a cart line.
type AddItemRequest struct {
	ProductID string        `json:"product_id" validate:"required"`
	Name      string        `json:"name" validate:"required"`
	Price     domain.Amount `json:"price"`
	Quantity  int           `json:"quantity" validate:"omitempty,gte=1"`
	GiftWrap  bool          `json:"gift_wrap"`
	ImageURL  string        `json:"image_url"`
}

// GiftWrapRequest is the JSON request body for toggling gift wrap.
type GiftWrapRequest struct {
	GiftWrap bool `json:"gift_wrap"`
}

// CheckoutRequest is the JSON request body for WhatsApp checkout.
type CheckoutRequest struct {
	CustomerName string `json:"customer_name" validate:"omitempty,max=200"`
}

type cartResponse struct {
	Items []domain.CartItem `json:"items"`
	Count int               `json:"count"`
	Total domain.Amount     `json:"total"`
}

func (h *CartHandler) cart(w http.ResponseWriter, r *http.Request) (*syncer.Cart, bool) {
	cart, err := h.sessions.Cart(r.Context(), middleware.UserIDFromContext(r.Context()))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return nil, false
	}
	return cart, true
}

func (h *CartHandler) writeCart(w http.ResponseWriter, cart *syncer.Cart) {
	items := cart.Items()
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: cartResponse{
		Items: items,
		Count: domain.CartCount(items),
		Total: domain.CartTotal(items),
	}})
}

func (h *CartHandler) publishUpdated(r *http.Request, cart *syncer.Cart) {
	if h.events == nil {
		return
	}
	if err := h.events.CartUpdated(r.Context(), cart.UserID(), cart.Items()); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to publish cart.updated event",
			slog.String("error", err.Error()),
		)
	}
}

// GetCart handles GET /api/v1/cart.
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	cart, ok := h.cart(w, r)
	if !ok {
		return
	}
	h.writeCart(w, cart)
}

// AddItem handles POST /api/v1/cart/items.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req AddItemRequest
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

	cart, ok := h.cart(w, r)
	if !ok {
		return
	}

	item := domain.CartItem{
		ProductID: req.ProductID,
		Name:      req.Name,
		Price:     req.Price,
		Quantity:  req.Quantity,
		GiftWrap:  req.GiftWrap,
		ImageURL:  req.ImageURL,
	}
	if err := cart.Add(r.Context(), item); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	h.publishUpdated(r, cart)
	h.writeCart(w, cart)
}

// IncrementItem handles POST /api/v1/cart/items/{productID}/increment.
func (h *CartHandler) IncrementItem(w http.ResponseWriter, r *http.Request) {
	cart, ok := h.cart(w, r)
	if !ok {
		return
	}

	if err := cart.Increment(r.Context(), chi.URLParam(r, "productID")); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	h.publishUpdated(r, cart)
	h.writeCart(w, cart)
}

// DecrementItem handles POST /api/v1/cart/items/{productID}/decrement.
func (h *CartHandler) DecrementItem(w http.ResponseWriter, r *http.Request) {
	cart, ok := h.cart(w, r)
	if !ok {
		return
	}

	if err := cart.Decrement(r.Context(), chi.URLParam(r, "productID")); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	h.publishUpdated(r, cart)
	h.writeCart(w, cart)
}

// SetGiftWrap handles PUT /api/v1/cart/items/{productID}/gift-wrap.
func (h *CartHandler) SetGiftWrap(w http.ResponseWriter, r *http.Request) {
	var req GiftWrapRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return
	}

	cart, ok := h.cart(w, r)
	if !ok {
		return
	}

	if err := cart.SetGiftWrap(r.Context(), chi.URLParam(r, "productID"), req.GiftWrap); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	h.publishUpdated(r, cart)
	h.writeCart(w, cart)
}

// RemoveItem handles DELETE /api/v1/cart/items/{productID}.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	cart, ok := h.cart(w, r)
	if !ok {
		return
	}

	if err := cart.Remove(r.Context(), chi.URLParam(r, "productID")); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	h.publishUpdated(r, cart)
	h.writeCart(w, cart)
}

// ClearCart handles DELETE /api/v1/cart.
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	cart, ok := h.cart(w, r)
	if !ok {
		return
	}

	if err := cart.Clear(r.Context()); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	h.publishUpdated(r, cart)
	h.writeCart(w, cart)
}

// Checkout handles POST /api/v1/cart/checkout.
func (h *CartHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req CheckoutRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
				Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
			})
			return
		}
	}

	cart, ok := h.cart(w, r)
	if !ok {
		return
	}

	order, err := h.checkout.Compose(cart.Items(), req.CustomerName)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: order})
}
