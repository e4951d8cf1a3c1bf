package handler

import (
	"net/http"

	"disperse_back/models"

	"github.com/gin-gonic/gin"
)

// CollectEth sends one collect transaction per configured collect key.
func (h *Handler) CollectEth(c *gin.Context) {
	var req models.CollectEthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		newErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	hashes, err := h.service.Collect.CollectETH(c.Request.Context(), req)
	if err != nil {
		serviceError(c, err)
		return
	}
	txHashesJSON(c, hashes)
}

func (h *Handler) CollectErc20(c *gin.Context) {
	var req models.CollectErc20Request
	if err := c.ShouldBindJSON(&req); err != nil {
		newErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	hashes, err := h.service.Collect.CollectERC20(c.Request.Context(), req)
	if err != nil {
		serviceError(c, err)
		return
	}
	txHashesJSON(c, hashes)
}
