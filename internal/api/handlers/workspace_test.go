package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tokosinar/posfront/internal/backend"
	"github.com/tokosinar/posfront/internal/domain"
	"github.com/tokosinar/posfront/internal/workspace"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// --- Fake backend --------------------------------------------------------

type stubBackend struct {
	snapshot *backend.CartSnapshot
	tx       *domain.Transaction
	err      error
}

func (s *stubBackend) AddToCart(context.Context, backend.AddToCartInput) (*backend.CartSnapshot, error) {
	return s.snapshot, s.err
}

func (s *stubBackend) UpdateCartLine(context.Context, int64, int) (*backend.CartSnapshot, error) {
	return s.snapshot, s.err
}

func (s *stubBackend) RemoveCartLine(context.Context, int64) (*backend.CartSnapshot, error) {
	return s.snapshot, s.err
}

func (s *stubBackend) CreateTransaction(context.Context, backend.CreateTransactionInput) (*domain.Transaction, error) {
	return s.tx, s.err
}

// --- Helpers -------------------------------------------------------------

func strPtr(s string) *string { return &s }

func testPayload() *backend.WorkspacePayload {
	return &backend.WorkspacePayload{
		Products: []domain.Product{
			{ID: 1, Title: "Teh Botol", Barcode: strPtr("ABC123"), SellPrice: 5000, Stock: 10},
		},
		Customers: []domain.Customer{{ID: 7, Name: "Budi"}},
		PaymentGateways: []domain.PaymentOption{
			{Value: "midtrans", Label: "Midtrans"},
		},
	}
}

func testRouter(t *testing.T, stub *stubBackend) (*gin.Engine, string) {
	t.Helper()

	logger := zap.NewNop()
	ws := workspace.New(stub, testPayload(), logger)
	sessions := NewSessionStore(time.Hour)
	sess := sessions.Create(ws)

	r := gin.New()
	r.GET("/v1/sessions/:id", HandleSessionState(sessions, logger))
	r.DELETE("/v1/sessions/:id", HandleCloseSession(sessions, logger))
	r.POST("/v1/sessions/:id/cart", HandleAddToCart(sessions, logger))
	r.PATCH("/v1/sessions/:id/cart/:lineId", HandleUpdateQuantity(sessions, logger))
	r.DELETE("/v1/sessions/:id/cart/:lineId", HandleRemoveLine(sessions, logger))
	r.POST("/v1/sessions/:id/scan", HandleScan(sessions, logger))
	r.PATCH("/v1/sessions/:id/draft", HandleUpdateDraft(sessions, logger))
	r.POST("/v1/sessions/:id/checkout", HandleCheckout(sessions, logger))

	return r, sess.ID
}

func perform(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeState(t *testing.T, w *httptest.ResponseRecorder) SessionResponse {
	t.Helper()
	var state SessionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &state))
	return state
}

// --- Tests ---------------------------------------------------------------

func TestSessionStateAndUnknownSession(t *testing.T) {
	r, id := testRouter(t, &stubBackend{})

	w := perform(r, http.MethodGet, "/v1/sessions/"+id, "")
	require.Equal(t, http.StatusOK, w.Code)

	state := decodeState(t, w)
	assert.Equal(t, id, state.SessionID)
	require.NotEmpty(t, state.PaymentOptions)
	assert.Equal(t, "cash", state.PaymentOptions[0].Value)
	assert.Len(t, state.Products, 1)

	w = perform(r, http.MethodGet, "/v1/sessions/nope", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAddToCartFlow(t *testing.T) {
	stub := &stubBackend{snapshot: &backend.CartSnapshot{
		Carts:      []domain.CartLine{{ID: 11, ProductID: 1, Qty: 1, Subtotal: 5000}},
		CartsTotal: 5000,
	}}
	r, id := testRouter(t, stub)

	w := perform(r, http.MethodPost, "/v1/sessions/"+id+"/cart", `{"product_id": 1}`)
	require.Equal(t, http.StatusOK, w.Code)

	state := decodeState(t, w)
	assert.Equal(t, int64(5000), state.Draft.Subtotal)
	assert.Equal(t, 1, state.CartCount)
	require.Len(t, state.Notices, 1)
	assert.Equal(t, "Teh Botol ditambahkan", state.Notices[0].Message)
}

func TestAddToCartUnknownProduct(t *testing.T) {
	r, id := testRouter(t, &stubBackend{})

	w := perform(r, http.MethodPost, "/v1/sessions/"+id+"/cart", `{"product_id": 999}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateQuantityInvalid(t *testing.T) {
	r, id := testRouter(t, &stubBackend{})

	w := perform(r, http.MethodPatch, "/v1/sessions/"+id+"/cart/abc", `{"qty": 2}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = perform(r, http.MethodPatch, "/v1/sessions/"+id+"/cart/11", `{"qty": -2}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestScanUnknownBarcodeIsNotAFailure(t *testing.T) {
	r, id := testRouter(t, &stubBackend{})

	w := perform(r, http.MethodPost, "/v1/sessions/"+id+"/scan", `{"barcode": "ZZZ999"}`)
	require.Equal(t, http.StatusOK, w.Code)

	state := decodeState(t, w)
	require.Len(t, state.Notices, 1)
	assert.Equal(t, workspace.NoticeError, state.Notices[0].Level)
	assert.Equal(t, "Produk tidak ditemukan: ZZZ999", state.Notices[0].Message)
}

func TestDraftPatchAndCheckout(t *testing.T) {
	stub := &stubBackend{
		snapshot: &backend.CartSnapshot{
			Carts:      []domain.CartLine{{ID: 11, ProductID: 1, Qty: 2, Subtotal: 10000}},
			CartsTotal: 10000,
		},
		tx: &domain.Transaction{ID: 99, Invoice: "INV-099"},
	}
	r, id := testRouter(t, stub)

	// Fill the cart.
	w := perform(r, http.MethodPost, "/v1/sessions/"+id+"/cart", `{"product_id": 1}`)
	require.Equal(t, http.StatusOK, w.Code)

	// Checkout before selecting a customer is rejected.
	w = perform(r, http.MethodPost, "/v1/sessions/"+id+"/checkout", "")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	// Patch customer, discount and cash in one go.
	w = perform(r, http.MethodPatch, "/v1/sessions/"+id+"/draft",
		`{"customer_id": 7, "discount": "2000", "cash": "10000"}`)
	require.Equal(t, http.StatusOK, w.Code)

	state := decodeState(t, w)
	require.NotNil(t, state.SelectedCustomer)
	assert.Equal(t, int64(7), state.SelectedCustomer.ID)
	assert.Equal(t, int64(8000), state.Draft.Payable)
	assert.Equal(t, int64(2000), state.Draft.Change)

	w = perform(r, http.MethodPost, "/v1/sessions/"+id+"/checkout", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp CheckoutResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Transaction)
	assert.Equal(t, "INV-099", resp.Transaction.Invoice)
	assert.Empty(t, resp.State.Carts, "cart resets after a successful sale")
}

func TestDraftPatchUnknownCustomer(t *testing.T) {
	r, id := testRouter(t, &stubBackend{})

	w := perform(r, http.MethodPatch, "/v1/sessions/"+id+"/draft", `{"customer_id": 999}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBackendErrorMapsToBadGateway(t *testing.T) {
	stub := &stubBackend{err: &backend.APIError{StatusCode: 500, Message: "database down"}}
	r, id := testRouter(t, stub)

	w := perform(r, http.MethodPost, "/v1/sessions/"+id+"/cart", `{"product_id": 1}`)
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "database down")
}

func TestCloseSession(t *testing.T) {
	r, id := testRouter(t, &stubBackend{})

	w := perform(r, http.MethodDelete, "/v1/sessions/"+id, "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = perform(r, http.MethodGet, "/v1/sessions/"+id, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
