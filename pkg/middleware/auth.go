package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const APIKeyHeader = "X-API-Key"

// APIKeyMiddleware rejects requests without a matching X-API-Key header. An empty key disables the check.
func APIKeyMiddleware(apiKey string, skipPaths ...string) gin.HandlerFunc {
	skip := make(map[string]struct{}, len(skipPaths))
	for _, p := range skipPaths {
		skip[p] = struct{}{}
	}

	return func(c *gin.Context) {
		if apiKey == "" {
			c.Next()
			return
		}
		if _, ok := skip[c.FullPath()]; ok {
			c.Next()
			return
		}

		got := c.GetHeader(APIKeyHeader)
		if got == "" || subtle.ConstantTimeCompare([]byte(got), []byte(apiKey)) != 1 {
			logrus.WithField("path", c.Request.URL.Path).Warn("APIKeyMiddleware: missing or invalid api key")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "missing or invalid '" + APIKeyHeader + "' header"})
			return
		}
		c.Next()
	}
}
