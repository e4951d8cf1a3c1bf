package handler

import (
	"net/http"

	"disperse_back/internal/config"
	"disperse_back/pkg/middleware"
	"disperse_back/pkg/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *service.Service
	server  config.ServerConfig
}

func NewHandler(service *service.Service, server config.ServerConfig) *Handler {
	return &Handler{
		service: service,
		server:  server,
	}
}

func (h *Handler) InitRoute() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), middleware.Logger())
	router.Use(cors.New(h.corsConfig()))

	router.GET("/health", h.Health)

	api := router.Group("/", middleware.APIKeyMiddleware(h.server.APIKey, "/health"))
	{
		api.POST("/disperse-eth", h.DisperseEth)
		api.POST("/disperse-erc20", h.DisperseErc20)
		api.POST("/collect-eth", h.CollectEth)
		api.POST("/collect-erc20", h.CollectErc20)
		api.GET("/transactions", h.GetTransactions)
	}
	return router
}

func (h *Handler) corsConfig() cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Length", "Content-Type", middleware.APIKeyHeader},
		ExposeHeaders: []string{"Content-Length"},
	}

	for _, origin := range h.server.AllowOrigins {
		if origin == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	cfg.AllowOrigins = h.server.AllowOrigins
	if len(cfg.AllowOrigins) == 0 {
		cfg.AllowAllOrigins = true
	}
	return cfg
}

func (h *Handler) Health(c *gin.Context) {
	wrapOkJSON(c, map[string]interface{}{
		"status": "ok",
	})
}
