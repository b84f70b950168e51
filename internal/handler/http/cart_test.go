package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theBillionaireApostle/Rani-Riwaaj-sub000/pkg/health"

	"github.com/theBillionaireApostle/Rani-Riwaaj-sub000/internal/auth"
	"github.com/theBillionaireApostle/Rani-Riwaaj-sub000/internal/checkout"
	"github.com/theBillionaireApostle/Rani-Riwaaj-sub000/internal/domain"
	"github.com/theBillionaireApostle/Rani-Riwaaj-sub000/internal/store/memory"
	"github.com/theBillionaireApostle/Rani-Riwaaj-sub000/internal/syncer"
)

type testServer struct {
	handler  http.Handler
	tokens   *auth.JWTManager
	sessions *syncer.Manager
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	logger := discardLogger()

	sessions := syncer.NewManager(memory.New(), nil, nil, logger)
	t.Cleanup(sessions.Close)

	tokens := auth.NewJWTManager("test-secret", time.Hour)

	router := NewRouter(RouterDeps{
		Cart:     NewCartHandler(sessions, checkout.NewService("919876543210", "Rani Riwaaj"), nil, logger),
		Wishlist: NewWishlistHandler(sessions, nil, logger),
		Health:   health.NewHandler(),
		Tokens:   tokens,
		Logger:   logger,
	})

	return &testServer{handler: router, tokens: tokens, sessions: sessions}
}

func (s *testServer) do(t *testing.T, method, url, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, url, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) userToken(t *testing.T, userID string) string {
	t.Helper()
	token, err := s.tokens.Generate(userID, userID+"@example.com", "customer")
	require.NoError(t, err)
	return token
}

type cartEnvelope struct {
	Data cartResponse `json:"data"`
}

func decodeCart(t *testing.T, rec *httptest.ResponseRecorder) cartResponse {
	t.Helper()
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var env cartEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env.Data
}

func TestGuestCartFlow(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(t, http.MethodGet, "/api/v1/cart", "", nil)
	cart := decodeCart(t, rec)
	assert.Empty(t, cart.Items)

	rec = srv.do(t, http.MethodPost, "/api/v1/cart/items", "", AddItemRequest{
		ProductID: "p1", Name: "Silk Scarf", Price: 999, Quantity: 2,
	})
	cart = decodeCart(t, rec)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Count)
	assert.Equal(t, domain.Amount(1998), cart.Total)

	rec = srv.do(t, http.MethodPost, "/api/v1/cart/items/p1/decrement", "", nil)
	cart = decodeCart(t, rec)
	assert.Equal(t, 1, cart.Count)

	rec = srv.do(t, http.MethodPost, "/api/v1/cart/items/p1/decrement", "", nil)
	cart = decodeCart(t, rec)
	assert.Empty(t, cart.Items)
}

func TestCartIncrementUnknownItem(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(t, http.MethodPost, "/api/v1/cart/items/missing/increment", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCartAddValidation(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(t, http.MethodPost, "/api/v1/cart/items", "", AddItemRequest{Name: "No ID"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCartGuestMigratesOnSignIn(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(t, http.MethodPost, "/api/v1/cart/items", "", AddItemRequest{
		ProductID: "p1", Name: "Silk Scarf", Price: 999, Quantity: 1,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	token := srv.userToken(t, "u1")
	rec = srv.do(t, http.MethodGet, "/api/v1/cart", token, nil)
	cart := decodeCart(t, rec)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, "p1", cart.Items[0].ProductID)
}

func TestCartCheckout(t *testing.T) {
	srv := newTestServer(t)

	srv.do(t, http.MethodPost, "/api/v1/cart/items", "", AddItemRequest{
		ProductID: "p1", Name: "Silk Scarf", Price: 999, Quantity: 1,
	})

	rec := srv.do(t, http.MethodPost, "/api/v1/cart/checkout", "", CheckoutRequest{CustomerName: "Asha"})
	require.Equal(t, http.StatusOK, rec.Code)

	var env struct {
		Data checkout.Order `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Contains(t, env.Data.Link, "https://wa.me/919876543210")
	assert.Contains(t, env.Data.Message, "Silk Scarf")
}

func TestCartCheckoutEmpty(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(t, http.MethodPost, "/api/v1/cart/checkout", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCartInvalidToken(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(t, http.MethodGet, "/api/v1/cart", "not-a-real-token", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

type wishlistEnvelope struct {
	Data wishlistResponse `json:"data"`
}

func decodeWishlist(t *testing.T, rec *httptest.ResponseRecorder) wishlistResponse {
	t.Helper()
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var env wishlistEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env.Data
}

func TestWishlistGuestToggleIsNoop(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(t, http.MethodPost, "/api/v1/wishlist/toggle", "", ToggleRequest{ID: "p1", Name: "Silk Scarf"})
	wl := decodeWishlist(t, rec)
	assert.Empty(t, wl.Items)
}

func TestWishlistSignedInToggle(t *testing.T) {
	srv := newTestServer(t)
	token := srv.userToken(t, "u1")

	rec := srv.do(t, http.MethodPost, "/api/v1/wishlist/toggle", token, ToggleRequest{ID: "p1", Name: "Silk Scarf"})
	wl := decodeWishlist(t, rec)
	require.Len(t, wl.Items, 1)
	assert.Equal(t, "p1", wl.Items[0].ID)

	rec = srv.do(t, http.MethodPost, "/api/v1/wishlist/toggle", token, ToggleRequest{ID: "p1", Name: "Silk Scarf"})
	wl = decodeWishlist(t, rec)
	assert.Empty(t, wl.Items)
}

func TestHealthEndpoints(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(t, http.MethodGet, "/health/live", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = srv.do(t, http.MethodGet, "/health/ready", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}
