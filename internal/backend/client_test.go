package backend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tokosinar/posfront/internal/config"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewClient(config.BackendConfig{
		BaseURL: srv.URL + "/", // trailing slash gets stripped
		APIKey:  "test-key",
	}, zap.NewNop())
}

func TestLoadWorkspace(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/pos/workspace", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"carts": [{"id": 11, "product_id": 1, "qty": 2, "price": 10000}],
			"carts_total": 10000,
			"customers": [{"id": 7, "name": "Budi"}],
			"products": [{"id": 1, "title": "Teh Botol", "sell_price": 5000, "stock": 10}],
			"payment_gateways": [{"value": "midtrans", "label": "Midtrans"}],
			"default_payment_gateway": "cash"
		}`))
	})

	payload, err := client.LoadWorkspace(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(10000), payload.CartsTotal)
	require.Len(t, payload.Carts, 1)
	assert.Equal(t, int64(10000), payload.Carts[0].Subtotal)
	assert.Equal(t, "Budi", payload.Customers[0].Name)
	assert.Equal(t, "cash", payload.DefaultPaymentGateway)
}

func TestAddToCartSendsBody(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/pos/carts", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var in AddToCartInput
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, AddToCartInput{ProductID: 1, SellPrice: 5000, Qty: 1}, in)

		_, _ = w.Write([]byte(`{"carts": [], "carts_total": 5000}`))
	})

	snap, err := client.AddToCart(context.Background(), AddToCartInput{ProductID: 1, SellPrice: 5000, Qty: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(5000), snap.CartsTotal)
}

func TestUpdateCartLinePath(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/pos/carts/11", r.URL.Path)

		var in map[string]int
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, 4, in["qty"])

		_, _ = w.Write([]byte(`{"carts": [], "carts_total": 0}`))
	})

	_, err := client.UpdateCartLine(context.Background(), 11, 4)
	require.NoError(t, err)
}

func TestErrorEnvelopeBecomesAPIError(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message": "Stok tidak mencukupi"}`))
	})

	_, err := client.AddToCart(context.Background(), AddToCartInput{ProductID: 1, Qty: 1})
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.StatusCode)
	assert.Equal(t, "Stok tidak mencukupi", apiErr.Message)
	assert.Contains(t, apiErr.Error(), "Stok tidak mencukupi")
}

func TestErrorWithoutEnvelope(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream gone"))
	})

	_, err := client.LoadWorkspace(context.Background())
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Empty(t, apiErr.Message)
	assert.Equal(t, "backend error: status 502", apiErr.Error())
}

func TestNoAuthHeaderWithoutKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{}`))
	}))
	t.Cleanup(srv.Close)

	client := NewClient(config.BackendConfig{BaseURL: srv.URL}, zap.NewNop())
	_, err := client.LoadWorkspace(context.Background())
	require.NoError(t, err)
}

func TestGetTransaction(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/pos/transactions/1042", r.URL.Path)
		_, _ = w.Write([]byte(`{
			"id": 1042,
			"invoice": "INV-20260828-1042",
			"grand_total": 28000,
			"payment_method": "cash",
			"payment_status": "paid",
			"details": [{"id": 1, "qty": 3, "price": 30000, "product": {"id": 1, "title": "Teh Botol"}}]
		}`))
	})

	tx, err := client.GetTransaction(context.Background(), 1042)
	require.NoError(t, err)
	assert.Equal(t, "INV-20260828-1042", tx.Invoice)
	require.Len(t, tx.Details, 1)
	assert.Equal(t, int64(30000), tx.Details[0].Price)
}
