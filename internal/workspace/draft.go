package workspace

import (
	"strconv"
	"strings"

	"github.com/tokosinar/posfront/internal/domain"
)

// Draft is the derived payment state for the sale in progress. It is
// recomputed from the current inputs on every read and never persisted; it
// exists only to be submitted once.
type Draft struct {
	Subtotal      int64  `json:"subtotal"`
	Discount      int64  `json:"discount"`
	Payable       int64  `json:"payable"`
	PaymentMethod string `json:"payment_method"`
	Cash          int64  `json:"cash"`
	Change        int64  `json:"change"`
}

// parseAmount reads a free-form money input. Anything non-numeric counts as
// zero, matching how the screen treats half-typed values.
func parseAmount(s string) int64 {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// Discount is the entered discount, clamped to zero or more.
func (w *Workspace) Discount() int64 {
	d := parseAmount(w.discountInput)
	if d < 0 {
		return 0
	}
	return d
}

// Subtotal is the backend-reported cart total. Never recomputed locally.
func (w *Workspace) Subtotal() int64 {
	return w.cartsTotal
}

// Payable is subtotal minus discount, floored at zero.
func (w *Workspace) Payable() int64 {
	p := w.Subtotal() - w.Discount()
	if p < 0 {
		return 0
	}
	return p
}

func (w *Workspace) IsCashPayment() bool {
	return w.paymentMethod == domain.PaymentMethodCash
}

// Cash is the tendered amount. For non-cash tenders it is forced to the
// payable amount, so no change is ever due.
func (w *Workspace) Cash() int64 {
	if !w.IsCashPayment() {
		return w.Payable()
	}
	c := parseAmount(w.cashInput)
	if c < 0 {
		return 0
	}
	return c
}

// Change is tendered cash minus payable, floored at zero.
func (w *Workspace) Change() int64 {
	c := w.Cash() - w.Payable()
	if c < 0 {
		return 0
	}
	return c
}

// CartCount is the total quantity across all cart lines.
func (w *Workspace) CartCount() int {
	count := 0
	for _, line := range w.carts {
		count += line.Qty
	}
	return count
}

// Draft snapshots the derived payment state.
func (w *Workspace) Draft() Draft {
	return Draft{
		Subtotal:      w.Subtotal(),
		Discount:      w.Discount(),
		Payable:       w.Payable(),
		PaymentMethod: w.paymentMethod,
		Cash:          w.Cash(),
		Change:        w.Change(),
	}
}

// PaymentOptions lists the selectable tenders: the synthetic cash option
// first, then the backend-supplied gateways with any "cash" entry filtered
// out so it never appears twice.
func (w *Workspace) PaymentOptions() []domain.PaymentOption {
	options := []domain.PaymentOption{{
		Value:       domain.PaymentMethodCash,
		Label:       "Tunai",
		Description: "Pembayaran tunai langsung di kasir.",
	}}
	for _, gw := range w.gateways {
		if gw.Value == "" || strings.EqualFold(gw.Value, domain.PaymentMethodCash) {
			continue
		}
		options = append(options, gw)
	}
	return options
}

// FilteredProducts applies the category filter and the search query (title or
// barcode substring, case-insensitive) to the catalog. Out-of-stock products
// stay visible.
func (w *Workspace) FilteredProducts() []domain.Product {
	query := strings.ToLower(strings.TrimSpace(w.searchQuery))

	filtered := make([]domain.Product, 0, len(w.products))
	for _, p := range w.products {
		if w.selectedCategory != 0 && p.CategoryID != w.selectedCategory {
			continue
		}
		if query != "" {
			title := strings.ToLower(p.Title)
			barcode := ""
			if p.Barcode != nil {
				barcode = strings.ToLower(*p.Barcode)
			}
			if !strings.Contains(title, query) && !strings.Contains(barcode, query) {
				continue
			}
		}
		filtered = append(filtered, p)
	}
	return filtered
}

// ProductByID looks a product up in the page-load catalog.
func (w *Workspace) ProductByID(id int64) (domain.Product, bool) {
	for _, p := range w.products {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Product{}, false
}

// syncCashToPayable enforces the non-cash invariant: whenever the method is
// not cash, the tendered field tracks the payable amount.
func (w *Workspace) syncCashToPayable() {
	if !w.IsCashPayment() {
		w.cashInput = strconv.FormatInt(w.Payable(), 10)
	}
}

func (w *Workspace) SetSearchQuery(q string) {
	w.searchQuery = q
}

// SetCategory filters the grid to one category; zero clears the filter.
func (w *Workspace) SetCategory(categoryID int64) {
	w.selectedCategory = categoryID
}

// SelectCustomer picks the buyer for this sale. Nil clears the selection.
func (w *Workspace) SelectCustomer(c *domain.Customer) {
	w.selectedCustomer = c
}

// SelectCustomerByID picks a buyer out of the page-load customer list.
func (w *Workspace) SelectCustomerByID(id int64) bool {
	for i := range w.customers {
		if w.customers[i].ID == id {
			w.selectedCustomer = &w.customers[i]
			return true
		}
	}
	return false
}

func (w *Workspace) SetDiscountInput(s string) {
	w.discountInput = s
	w.syncCashToPayable()
}

func (w *Workspace) SetCashInput(s string) {
	w.cashInput = s
}

// SetPaymentMethod switches the tender. Switching to a non-cash method locks
// the cash field to the payable amount.
func (w *Workspace) SetPaymentMethod(method string) {
	w.paymentMethod = method
	w.syncCashToPayable()
}

// SetDefaultPaymentGateway follows a host-side change of the configured
// default: the current method resets along with it.
func (w *Workspace) SetDefaultPaymentGateway(gateway string) {
	if gateway == "" {
		gateway = domain.PaymentMethodCash
	}
	w.defaultGateway = gateway
	w.SetPaymentMethod(gateway)
}

// NumpadConfirm writes the numeric-pad result into the cash field and closes
// the pad.
func (w *Workspace) NumpadConfirm(value int64) {
	if value < 0 {
		value = 0
	}
	w.cashInput = strconv.FormatInt(value, 10)
	w.numpadOpen = false
}

// Read-only accessors for the rendering surfaces.

func (w *Workspace) Carts() []domain.CartLine          { return w.carts }
func (w *Workspace) Products() []domain.Product        { return w.products }
func (w *Workspace) Categories() []domain.Category     { return w.categories }
func (w *Workspace) Customers() []domain.Customer      { return w.customers }
func (w *Workspace) SelectedCustomer() *domain.Customer { return w.selectedCustomer }
func (w *Workspace) SelectedCategory() int64           { return w.selectedCategory }
func (w *Workspace) SearchQuery() string               { return w.searchQuery }
func (w *Workspace) DiscountInput() string             { return w.discountInput }
func (w *Workspace) CashInput() string                 { return w.cashInput }
func (w *Workspace) PaymentMethod() string             { return w.paymentMethod }
func (w *Workspace) DefaultPaymentGateway() string     { return w.defaultGateway }
func (w *Workspace) AddingProductID() int64            { return w.addingProductID }
func (w *Workspace) UpdatingLineID() int64             { return w.updatingLineID }
func (w *Workspace) RemovingLineID() int64             { return w.removingLineID }
func (w *Workspace) Submitting() bool                  { return w.submitting }
