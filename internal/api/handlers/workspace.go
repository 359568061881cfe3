package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tokosinar/posfront/internal/backend"
	"github.com/tokosinar/posfront/internal/domain"
	"github.com/tokosinar/posfront/internal/workspace"
)

// SessionResponse is the state snapshot returned by every session endpoint.
type SessionResponse struct {
	SessionID        string                 `json:"session_id"`
	Carts            []domain.CartLine      `json:"carts"`
	CartCount        int                    `json:"cart_count"`
	Draft            workspace.Draft        `json:"draft"`
	PaymentOptions   []domain.PaymentOption `json:"payment_options"`
	Customers        []domain.Customer      `json:"customers"`
	Categories       []domain.Category      `json:"categories"`
	Products         []domain.Product       `json:"products"`
	SelectedCustomer *domain.Customer       `json:"selected_customer,omitempty"`
	SelectedCategory int64                  `json:"selected_category,omitempty"`
	SearchQuery      string                 `json:"search_query,omitempty"`
	DiscountInput    string                 `json:"discount_input"`
	CashInput        string                 `json:"cash_input"`
	View             workspace.View         `json:"view"`
	NumpadOpen       bool                   `json:"numpad_open"`
	ShortcutsOpen    bool                   `json:"shortcuts_open"`
	AddingProductID  int64                  `json:"adding_product_id,omitempty"`
	UpdatingLineID   int64                  `json:"updating_line_id,omitempty"`
	RemovingLineID   int64                  `json:"removing_line_id,omitempty"`
	Submitting       bool                   `json:"submitting"`
	Notices          []workspace.Notice     `json:"notices"`
}

func sessionResponse(id string, ws *workspace.Workspace) SessionResponse {
	return SessionResponse{
		SessionID:        id,
		Carts:            ws.Carts(),
		CartCount:        ws.CartCount(),
		Draft:            ws.Draft(),
		PaymentOptions:   ws.PaymentOptions(),
		Customers:        ws.Customers(),
		Categories:       ws.Categories(),
		Products:         ws.FilteredProducts(),
		SelectedCustomer: ws.SelectedCustomer(),
		SelectedCategory: ws.SelectedCategory(),
		SearchQuery:      ws.SearchQuery(),
		DiscountInput:    ws.DiscountInput(),
		CashInput:        ws.CashInput(),
		View:             ws.View(),
		NumpadOpen:       ws.NumpadOpen(),
		ShortcutsOpen:    ws.ShortcutsOpen(),
		AddingProductID:  ws.AddingProductID(),
		UpdatingLineID:   ws.UpdatingLineID(),
		RemovingLineID:   ws.RemovingLineID(),
		Submitting:       ws.Submitting(),
		Notices:          ws.DrainNotices(),
	}
}

// HandleOpenSession handles POST /v1/sessions: loads the page-load payload
// from the backend and opens a fresh terminal session around it.
func HandleOpenSession(client *backend.Client, sessions *SessionStore, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		payload, err := client.LoadWorkspace(c.Request.Context())
		if err != nil {
			logger.Error("Failed to load workspace from backend", zap.Error(err))
			c.JSON(http.StatusBadGateway, gin.H{"error": "backend unavailable"})
			return
		}

		ws := workspace.New(client, payload, logger)
		sess := sessions.Create(ws)

		sess.Do(func(ws *workspace.Workspace) {
			c.JSON(http.StatusCreated, sessionResponse(sess.ID, ws))
		})
	}
}

// HandleSessionState handles GET /v1/sessions/:id.
func HandleSessionState(sessions *SessionStore, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		withSession(c, sessions, func(sess *Session, ws *workspace.Workspace) {
			c.JSON(http.StatusOK, sessionResponse(sess.ID, ws))
		})
	}
}

// HandleCloseSession handles DELETE /v1/sessions/:id.
func HandleCloseSession(sessions *SessionStore, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessions.Delete(c.Param("id"))
		c.Status(http.StatusNoContent)
	}
}

// AddToCartRequest selects the product to add; price and quantity are the
// backend's business.
type AddToCartRequest struct {
	ProductID int64 `json:"product_id" binding:"required"`
}

// HandleAddToCart handles POST /v1/sessions/:id/cart.
func HandleAddToCart(sessions *SessionStore, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AddToCartRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "validation failed", "details": err.Error()})
			return
		}

		withSession(c, sessions, func(sess *Session, ws *workspace.Workspace) {
			product, ok := ws.ProductByID(req.ProductID)
			if !ok {
				c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
				return
			}

			if err := ws.AddToCart(c.Request.Context(), product); err != nil {
				respondWorkspaceError(c, logger, err)
				return
			}
			c.JSON(http.StatusOK, sessionResponse(sess.ID, ws))
		})
	}
}

type UpdateQtyRequest struct {
	Qty int `json:"qty" binding:"required"`
}

// HandleUpdateQuantity handles PATCH /v1/sessions/:id/cart/:lineId.
func HandleUpdateQuantity(sessions *SessionStore, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		lineID, err := strconv.ParseInt(c.Param("lineId"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid cart line ID"})
			return
		}

		var req UpdateQtyRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "validation failed", "details": err.Error()})
			return
		}

		withSession(c, sessions, func(sess *Session, ws *workspace.Workspace) {
			if err := ws.UpdateQuantity(c.Request.Context(), lineID, req.Qty); err != nil {
				respondWorkspaceError(c, logger, err)
				return
			}
			c.JSON(http.StatusOK, sessionResponse(sess.ID, ws))
		})
	}
}

// HandleRemoveLine handles DELETE /v1/sessions/:id/cart/:lineId.
func HandleRemoveLine(sessions *SessionStore, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		lineID, err := strconv.ParseInt(c.Param("lineId"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid cart line ID"})
			return
		}

		withSession(c, sessions, func(sess *Session, ws *workspace.Workspace) {
			if err := ws.RemoveFromCart(c.Request.Context(), lineID); err != nil {
				respondWorkspaceError(c, logger, err)
				return
			}
			c.JSON(http.StatusOK, sessionResponse(sess.ID, ws))
		})
	}
}

type ScanRequest struct {
	Barcode string `json:"barcode" binding:"required"`
}

// HandleScan handles POST /v1/sessions/:id/scan.
func HandleScan(sessions *SessionStore, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ScanRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "validation failed", "details": err.Error()})
			return
		}

		withSession(c, sessions, func(sess *Session, ws *workspace.Workspace) {
			err := ws.ScanBarcode(c.Request.Context(), req.Barcode)
			if err != nil && !errors.Is(err, workspace.ErrProductNotFound) && !errors.Is(err, workspace.ErrOutOfStock) {
				respondWorkspaceError(c, logger, err)
				return
			}
			// Not-found and out-of-stock are signals, not failures; the
			// notice rides along in the snapshot.
			c.JSON(http.StatusOK, sessionResponse(sess.ID, ws))
		})
	}
}

// UpdateDraftRequest patches the entered sale state. Only present fields are
// applied.
type UpdateDraftRequest struct {
	CustomerID    *int64  `json:"customer_id"`
	Discount      *string `json:"discount"`
	Cash          *string `json:"cash"`
	PaymentMethod *string `json:"payment_method"`
	Search        *string `json:"search"`
	CategoryID    *int64  `json:"category_id"`
	View          *string `json:"view"`
	NumpadValue   *int64  `json:"numpad_value"`
}

// HandleUpdateDraft handles PATCH /v1/sessions/:id/draft.
func HandleUpdateDraft(sessions *SessionStore, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpdateDraftRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "validation failed", "details": err.Error()})
			return
		}

		withSession(c, sessions, func(sess *Session, ws *workspace.Workspace) {
			if req.CustomerID != nil {
				if *req.CustomerID == 0 {
					ws.SelectCustomer(nil)
				} else if !ws.SelectCustomerByID(*req.CustomerID) {
					c.JSON(http.StatusNotFound, gin.H{"error": "customer not found"})
					return
				}
			}
			if req.Discount != nil {
				ws.SetDiscountInput(*req.Discount)
			}
			if req.Cash != nil {
				ws.SetCashInput(*req.Cash)
			}
			if req.PaymentMethod != nil {
				ws.SetPaymentMethod(*req.PaymentMethod)
			}
			if req.Search != nil {
				ws.SetSearchQuery(*req.Search)
			}
			if req.CategoryID != nil {
				ws.SetCategory(*req.CategoryID)
			}
			if req.View != nil {
				ws.SetView(workspace.View(*req.View))
			}
			if req.NumpadValue != nil {
				ws.NumpadConfirm(*req.NumpadValue)
			}

			c.JSON(http.StatusOK, sessionResponse(sess.ID, ws))
		})
	}
}

// CheckoutResponse carries the created transaction; the client navigates to
// its invoice view.
type CheckoutResponse struct {
	Transaction *domain.Transaction `json:"transaction"`
	State       SessionResponse     `json:"state"`
}

// HandleCheckout handles POST /v1/sessions/:id/checkout.
func HandleCheckout(sessions *SessionStore, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		withSession(c, sessions, func(sess *Session, ws *workspace.Workspace) {
			tx, err := ws.SubmitTransaction(c.Request.Context())
			if err != nil {
				respondWorkspaceError(c, logger, err)
				return
			}

			c.JSON(http.StatusOK, CheckoutResponse{
				Transaction: tx,
				State:       sessionResponse(sess.ID, ws),
			})
		})
	}
}

// withSession resolves the :id session or 404s.
func withSession(c *gin.Context, sessions *SessionStore, fn func(sess *Session, ws *workspace.Workspace)) {
	sess, ok := sessions.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}
	sess.Do(func(ws *workspace.Workspace) {
		fn(sess, ws)
	})
}

// respondWorkspaceError maps controller outcomes onto HTTP statuses. The
// user-facing notice is already queued on the workspace; the error body is
// for the calling screen's logic.
func respondWorkspaceError(c *gin.Context, logger *zap.Logger, err error) {
	switch {
	case errors.Is(err, workspace.ErrProductMissingID), errors.Is(err, workspace.ErrInvalidQty):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, workspace.ErrRequestInFlight):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, workspace.ErrCartEmpty),
		errors.Is(err, workspace.ErrNoCustomer),
		errors.Is(err, workspace.ErrInsufficientCash):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		var apiErr *backend.APIError
		if errors.As(err, &apiErr) {
			message := apiErr.Message
			if message == "" {
				message = "backend request failed"
			}
			c.JSON(http.StatusBadGateway, gin.H{"error": message})
			return
		}
		logger.Error("Unexpected workspace error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
