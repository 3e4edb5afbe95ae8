package v1

import (
	"github.com/esp-integration/backend/internal/domain"
	"github.com/esp-integration/backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

func (h *Handler) initIntegrationsRoutes(api *gin.RouterGroup) {
	integrations := api.Group("/integrations/esp")
	{
		integrations.POST("", h.createIntegration)
		integrations.GET("/lists", h.getIntegrationLists)
	}
}

type createIntegrationRequest struct {
	Provider string `json:"provider" binding:"required,oneof=MAILCHIMP GETRESPONSE"`
	APIKey   string `json:"apiKey" binding:"required,min=10,max=2000"`
}

// @Summary Create ESP Integration
// @Tags Integrations
// @Description Register a provider API key and validate it against the provider's live API
// @ModuleID createIntegration
// @Accept json
// @Produce json
// @Param input body createIntegrationRequest true "provider and API key"
// @Success 200 {object} successEnvelope
// @Failure 400,401,429,502,504 {object} errorEnvelope
// @Failure 500 {object} errorEnvelope
// @Router /integrations/esp [post]
func (h *Handler) createIntegration(c *gin.Context) {
	var req createIntegrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationErrorResponse(c, err)
		return
	}

	provider, err := domain.ParseProvider(req.Provider)
	if err != nil {
		validationErrorResponse(c, err)
		return
	}

	result, err := h.services.Integrations.CreateAndValidate(c.Request.Context(), provider, req.APIKey)
	if err != nil {
		logger.Warn("create integration failed",
			zap.String("provider", req.Provider),
			zap.Error(err),
		)
		errorResponse(c, err)
		return
	}

	successResponse(c, req.Provider, result)
}

// @Summary Get Provider Lists
// @Tags Integrations
// @Description Fetch the provider's mailing lists (campaigns for GetResponse) with a stored, previously validated key
// @ModuleID getIntegrationLists
// @Accept json
// @Produce json
// @Param provider query string false "MAILCHIMP or GETRESPONSE"
// @Param integrationId query string false "integration id, overrides provider resolution"
// @Success 200 {object} successEnvelope
// @Failure 400,404 {object} errorEnvelope
// @Failure 401,429,502,504 {object} errorEnvelope
// @Router /integrations/esp/lists [get]
func (h *Handler) getIntegrationLists(c *gin.Context) {
	var integrationID *uuid.UUID
	if raw := c.Query("integrationId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			validationErrorResponse(c, err)
			return
		}
		integrationID = &id
	}

	// the provider argument only has to be well formed when there is no id to
	// resolve by
	provider, err := domain.ParseProvider(c.Query("provider"))
	if err != nil && integrationID == nil {
		validationErrorResponse(c, err)
		return
	}

	page, err := h.services.Integrations.GetLists(c.Request.Context(), provider, integrationID)
	if err != nil {
		logger.Warn("get lists failed",
			zap.String("provider", c.Query("provider")),
			zap.Error(err),
		)
		errorResponse(c, err)
		return
	}

	data := gin.H{"total": page.Total}
	data[page.Field] = page.Items

	successResponse(c, c.Query("provider"), data)
}
