package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tokosinar/posfront/internal/backend"
	"github.com/tokosinar/posfront/internal/invoice"
)

// HandleGetInvoice handles GET /v1/invoices/:id. The default response is the
// invoice summary as JSON; ?format=text returns the printable plain-text
// rendering.
func HandleGetInvoice(client *backend.Client, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid transaction ID"})
			return
		}

		tx, err := client.GetTransaction(c.Request.Context(), id)
		if err != nil {
			var apiErr *backend.APIError
			if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
				c.JSON(http.StatusNotFound, gin.H{"error": "transaction not found"})
				return
			}
			logger.Error("Failed to get transaction", zap.Int64("id", id), zap.Error(err))
			c.JSON(http.StatusBadGateway, gin.H{"error": "backend unavailable"})
			return
		}

		summary := invoice.Summarize(*tx)

		if c.Query("format") == "text" {
			c.String(http.StatusOK, invoice.RenderText(summary))
			return
		}
		c.JSON(http.StatusOK, summary)
	}
}
