package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// GetTransactions lists journaled transactions, newest first. ?limit=N, default 50, max 500.
func (h *Handler) GetTransactions(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			newErrorResponse(c, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	records, err := h.service.Transactions.List(c.Request.Context(), limit)
	if err != nil {
		newErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	wrapOkJSON(c, map[string]interface{}{
		"transactions": records,
	})
}
