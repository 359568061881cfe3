package workspace

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/tokosinar/posfront/internal/backend"
	"github.com/tokosinar/posfront/internal/domain"
)

var (
	ErrProductMissingID = errors.New("product has no identifier")
	ErrInvalidQty       = errors.New("quantity must be at least 1")
	ErrRequestInFlight  = errors.New("request already in flight")
	ErrCartEmpty        = errors.New("cart is empty")
	ErrNoCustomer       = errors.New("no customer selected")
	ErrInsufficientCash = errors.New("cash is less than payable")
	ErrProductNotFound  = errors.New("product not found")
	ErrOutOfStock       = errors.New("product out of stock")
)

// Backend is the remote collaborator that owns cart and transaction state.
// Implemented by backend.Client; tests substitute a fake.
type Backend interface {
	AddToCart(ctx context.Context, in backend.AddToCartInput) (*backend.CartSnapshot, error)
	UpdateCartLine(ctx context.Context, lineID int64, qty int) (*backend.CartSnapshot, error)
	RemoveCartLine(ctx context.Context, lineID int64) (*backend.CartSnapshot, error)
	CreateTransaction(ctx context.Context, in backend.CreateTransactionInput) (*domain.Transaction, error)
}

// Workspace holds all ephemeral state of one in-progress sale: the last
// authoritative cart snapshot, the cashier's inputs, per-slot in-flight
// markers and queued notices.
//
// A Workspace is not safe for concurrent use. It models a single-threaded
// cashier screen; hosts that share one across goroutines must serialize
// access themselves.
type Workspace struct {
	backend Backend
	logger  *zap.Logger

	products       []domain.Product
	categories     []domain.Category
	customers      []domain.Customer
	gateways       []domain.PaymentOption
	defaultGateway string

	carts      []domain.CartLine
	cartsTotal int64

	searchQuery      string
	selectedCategory int64
	selectedCustomer *domain.Customer
	discountInput    string
	cashInput        string
	paymentMethod    string

	// In-flight markers. At most one outstanding request per slot; a busy
	// slot rejects overlapping intents with ErrRequestInFlight.
	addingProductID int64
	updatingLineID  int64
	removingLineID  int64
	submitting      bool

	view          View
	numpadOpen    bool
	showShortcuts bool

	notices []Notice
}

// New builds a workspace around the page-load payload. The default payment
// gateway falls back to cash when the backend supplies none.
func New(b Backend, payload *backend.WorkspacePayload, logger *zap.Logger) *Workspace {
	defaultGateway := payload.DefaultPaymentGateway
	if defaultGateway == "" {
		defaultGateway = domain.PaymentMethodCash
	}

	return &Workspace{
		backend:        b,
		logger:         logger,
		products:       payload.Products,
		categories:     payload.Categories,
		customers:      payload.Customers,
		gateways:       payload.PaymentGateways,
		defaultGateway: defaultGateway,
		carts:          payload.Carts,
		cartsTotal:     payload.CartsTotal,
		paymentMethod:  defaultGateway,
		view:           ViewProducts,
	}
}

// applySnapshot replaces the locally rendered cart with the backend's latest
// authoritative state.
func (w *Workspace) applySnapshot(snap *backend.CartSnapshot) {
	w.carts = snap.Carts
	w.cartsTotal = snap.CartsTotal
	w.syncCashToPayable()
}

// AddToCart sends an add intent for one unit of the product. A product
// without an identifier is a no-op; a second add while one is outstanding is
// rejected.
func (w *Workspace) AddToCart(ctx context.Context, product domain.Product) error {
	if product.ID == 0 {
		return ErrProductMissingID
	}
	if w.addingProductID != 0 {
		return ErrRequestInFlight
	}

	w.addingProductID = product.ID

	snap, err := w.backend.AddToCart(ctx, backend.AddToCartInput{
		ProductID: product.ID,
		SellPrice: product.SellPrice,
		Qty:       1,
	})
	w.addingProductID = 0
	if err != nil {
		w.logger.Warn("add to cart failed", zap.Int64("product_id", product.ID), zap.Error(err))
		w.notify(NoticeError, "Gagal menambahkan produk")
		return err
	}

	w.applySnapshot(snap)
	w.notify(NoticeSuccess, fmt.Sprintf("%s ditambahkan", product.Title))
	return nil
}

// UpdateQuantity sends a quantity change for one cart line. Quantities below
// one are rejected before any request.
func (w *Workspace) UpdateQuantity(ctx context.Context, lineID int64, qty int) error {
	if qty < 1 {
		return ErrInvalidQty
	}
	if w.updatingLineID != 0 {
		return ErrRequestInFlight
	}

	w.updatingLineID = lineID

	snap, err := w.backend.UpdateCartLine(ctx, lineID, qty)
	w.updatingLineID = 0
	if err != nil {
		w.logger.Warn("update quantity failed", zap.Int64("line_id", lineID), zap.Error(err))
		w.notify(NoticeError, serverMessage(err, "Gagal update quantity"))
		return err
	}

	w.applySnapshot(snap)
	return nil
}

// RemoveFromCart sends a remove intent for one cart line.
func (w *Workspace) RemoveFromCart(ctx context.Context, lineID int64) error {
	if w.removingLineID != 0 {
		return ErrRequestInFlight
	}

	w.removingLineID = lineID

	snap, err := w.backend.RemoveCartLine(ctx, lineID)
	w.removingLineID = 0
	if err != nil {
		w.logger.Warn("remove from cart failed", zap.Int64("line_id", lineID), zap.Error(err))
		w.notify(NoticeError, "Gagal menghapus item")
		return err
	}

	w.applySnapshot(snap)
	w.notify(NoticeSuccess, "Item dihapus dari keranjang")
	return nil
}

// SubmitTransaction validates and finalizes the sale. Each failed check
// short-circuits with its own notice and sends nothing. Success resets the
// entered state back to defaults; failure preserves it so the cashier can
// retry.
func (w *Workspace) SubmitTransaction(ctx context.Context) (*domain.Transaction, error) {
	if len(w.carts) == 0 {
		w.notify(NoticeError, "Keranjang masih kosong")
		return nil, ErrCartEmpty
	}
	if w.selectedCustomer == nil || w.selectedCustomer.ID == 0 {
		w.notify(NoticeError, "Pilih pelanggan terlebih dahulu")
		return nil, ErrNoCustomer
	}
	if w.IsCashPayment() && w.Cash() < w.Payable() {
		w.notify(NoticeError, "Jumlah pembayaran kurang dari total")
		return nil, ErrInsufficientCash
	}
	if w.submitting {
		return nil, ErrRequestInFlight
	}

	w.submitting = true

	var gateway *string
	cash := w.Payable()
	change := int64(0)
	if w.IsCashPayment() {
		cash = w.Cash()
		change = w.Change()
	} else {
		method := w.paymentMethod
		gateway = &method
	}

	tx, err := w.backend.CreateTransaction(ctx, backend.CreateTransactionInput{
		CustomerID:     w.selectedCustomer.ID,
		Discount:       w.Discount(),
		GrandTotal:     w.Payable(),
		Cash:           cash,
		Change:         change,
		PaymentGateway: gateway,
	})
	if err != nil {
		w.submitting = false
		w.logger.Warn("submit transaction failed", zap.Error(err))
		w.notify(NoticeError, "Gagal menyimpan transaksi")
		return nil, err
	}

	// The backend consumed the cart; start the next sale clean.
	w.carts = nil
	w.cartsTotal = 0
	w.discountInput = ""
	w.cashInput = ""
	w.selectedCustomer = nil
	w.paymentMethod = w.defaultGateway
	w.submitting = false
	w.notify(NoticeSuccess, "Transaksi berhasil!")

	return tx, nil
}

// ScanBarcode resolves a scanned code against the catalog, case-insensitively
// and exactly. A stocked match is added to the cart; everything else only
// signals.
func (w *Workspace) ScanBarcode(ctx context.Context, code string) error {
	code = strings.TrimSpace(code)

	var product *domain.Product
	for i := range w.products {
		if w.products[i].Barcode != nil && strings.EqualFold(*w.products[i].Barcode, code) {
			product = &w.products[i]
			break
		}
	}

	if product == nil {
		w.notify(NoticeError, fmt.Sprintf("Produk tidak ditemukan: %s", code))
		return ErrProductNotFound
	}
	if product.Stock <= 0 {
		w.notify(NoticeError, fmt.Sprintf("%s stok habis", product.Title))
		return ErrOutOfStock
	}

	return w.AddToCart(ctx, *product)
}

// serverMessage prefers the backend-supplied error text over the generic one.
func serverMessage(err error, fallback string) string {
	var apiErr *backend.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
