package handler

import (
	"net/http"

	"disperse_back/models"

	"github.com/gin-gonic/gin"
)

// DisperseEth sends native currency to every recipient in one contract call.
// Body: {"to": [...], "amounts": [...], "percents": "..."}
func (h *Handler) DisperseEth(c *gin.Context) {
	var req models.DisperseEthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		newErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	hashes, err := h.service.Disperse.DisperseETH(c.Request.Context(), req)
	if err != nil {
		serviceError(c, err)
		return
	}
	txHashesJSON(c, hashes)
}

func (h *Handler) DisperseErc20(c *gin.Context) {
	var req models.DisperseErc20Request
	if err := c.ShouldBindJSON(&req); err != nil {
		newErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	hashes, err := h.service.Disperse.DisperseERC20(c.Request.Context(), req)
	if err != nil {
		serviceError(c, err)
		return
	}
	txHashesJSON(c, hashes)
}
