package handler

import (
	"net/http"

	"disperse_back/models"
	"disperse_back/pkg/service"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

type Error struct {
	Message string `json:"message"`
}

func newErrorResponse(c *gin.Context, statusCode int, message string) {
	logrus.WithFields(logrus.Fields{
		"path":   c.Request.URL.Path,
		"status": statusCode,
	}).Error(message)
	c.AbortWithStatusJSON(statusCode, Error{Message: message})
}

// serviceError maps validation failures to 400 and everything else to 500.
func serviceError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrInvalidRequest) {
		newErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	newErrorResponse(c, http.StatusInternalServerError, err.Error())
}

func wrapOkJSON(c *gin.Context, response map[string]interface{}) {
	c.JSON(http.StatusOK, response)
}

func txHashesJSON(c *gin.Context, hashes []string) {
	c.JSON(http.StatusOK, models.ApiResponse{TxHashes: hashes})
}
