package backend

import "github.com/tokosinar/posfront/internal/domain"

// WorkspacePayload is everything the backend hands a fresh transaction
// screen at page load.
type WorkspacePayload struct {
	Carts                 []domain.CartLine      `json:"carts"`
	CartsTotal            int64                  `json:"carts_total"`
	Customers             []domain.Customer      `json:"customers"`
	Products              []domain.Product       `json:"products"`
	Categories            []domain.Category      `json:"categories"`
	PaymentGateways       []domain.PaymentOption `json:"payment_gateways"`
	DefaultPaymentGateway string                 `json:"default_payment_gateway"`
}

// CartSnapshot is the authoritative cart state returned after every cart
// mutation. The local layer replaces its view with this wholesale.
type CartSnapshot struct {
	Carts      []domain.CartLine `json:"carts"`
	CartsTotal int64             `json:"carts_total"`
}

// AddToCartInput mirrors the backend's addToCart request body.
type AddToCartInput struct {
	ProductID int64 `json:"product_id"`
	SellPrice int64 `json:"sell_price"`
	Qty       int   `json:"qty"`
}

type updateCartLineInput struct {
	Qty int `json:"qty"`
}

// CreateTransactionInput is the checkout payload. PaymentGateway is nil for
// cash sales and the gateway key otherwise.
type CreateTransactionInput struct {
	CustomerID     int64   `json:"customer_id"`
	Discount       int64   `json:"discount"`
	GrandTotal     int64   `json:"grand_total"`
	Cash           int64   `json:"cash"`
	Change         int64   `json:"change"`
	PaymentGateway *string `json:"payment_gateway"`
}
