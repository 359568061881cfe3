package domain

import "time"

// Product is a catalog entry as supplied by the backend at page load.
// Read-only from this layer's perspective.
type Product struct {
	ID         int64   `json:"id"`
	Title      string  `json:"title"`
	Barcode    *string `json:"barcode,omitempty"`
	SellPrice  int64   `json:"sell_price"`
	Stock      int     `json:"stock"`
	CategoryID int64   `json:"category_id"`
}

// Category groups products in the browsing grid.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Customer is a selectable buyer. Selection is mandatory before checkout.
type Customer struct {
	ID      int64   `json:"id"`
	Name    string  `json:"name"`
	Address *string `json:"address,omitempty"`
	Phone   *string `json:"phone,omitempty"`
}

// CartLine is one product entry in the in-progress sale. The backend owns
// every field; this layer never recomputes Subtotal.
type CartLine struct {
	ID        int64   `json:"id"`
	ProductID int64   `json:"product_id"`
	Product   Product `json:"product"`
	Qty       int     `json:"qty"`
	// Subtotal is the line total for Qty units, not the unit price.
	Subtotal int64 `json:"price"`
}

// PaymentOption is a selectable tender. The synthetic "cash" option is always
// present and first; the rest come from the backend's gateway list.
type PaymentOption struct {
	Value       string `json:"value"`
	Label       string `json:"label"`
	Description string `json:"description,omitempty"`
}

// TransactionDetail is one sold line on a finished transaction.
type TransactionDetail struct {
	ID      int64   `json:"id"`
	Qty     int     `json:"qty"`
	Price   int64   `json:"price"` // line subtotal, unit price is derived
	Product Product `json:"product"`
}

// Cashier identifies the user who rang up the sale.
type Cashier struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Transaction is a completed sale record as returned by the backend.
type Transaction struct {
	ID            int64               `json:"id"`
	Invoice       string              `json:"invoice"`
	Customer      *Customer           `json:"customer,omitempty"`
	Cashier       *Cashier            `json:"cashier,omitempty"`
	Discount      int64               `json:"discount"`
	GrandTotal    int64               `json:"grand_total"`
	Cash          int64               `json:"cash"`
	Change        int64               `json:"change"`
	PaymentMethod string              `json:"payment_method"`
	PaymentStatus string              `json:"payment_status"`
	PaymentURL    string              `json:"payment_url,omitempty"`
	Details       []TransactionDetail `json:"details"`
	CreatedAt     time.Time           `json:"created_at"`
}
