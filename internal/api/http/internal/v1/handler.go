package v1

import (
	"github.com/esp-integration/backend/internal/config"
	"github.com/esp-integration/backend/internal/service"

	"github.com/gin-gonic/gin"
)

// @title ESP Integration API
// @version 1.0
// @description Registers email-service-provider credentials, validates them
// @description against the provider's live API and serves mailing lists.

// @BasePath /api

type Handler struct {
	services *service.Services
	config   *config.Config
}

func NewHandler(services *service.Services, config *config.Config) *Handler {
	return &Handler{
		services: services,
		config:   config,
	}
}

func (h *Handler) Init(api *gin.RouterGroup) {
	h.initIntegrationsRoutes(api)
}
