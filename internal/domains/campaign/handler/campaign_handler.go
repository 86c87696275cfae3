package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"campaignhub-backend/internal/domains/campaign/model"
	"campaignhub-backend/internal/domains/campaign/service"
	"campaignhub-backend/internal/shared/middleware"
	"campaignhub-backend/internal/shared/response"
	"campaignhub-backend/pkg/logger"
)

// =====================================================
// CAMPAIGN HANDLER
// =====================================================

type CampaignHandler struct {
	campaignService service.CampaignService
	updateService   service.UpdateService
	statsService    service.StatsService
}

func NewCampaignHandler(
	campaignService service.CampaignService,
	updateService service.UpdateService,
	statsService service.StatsService,
) *CampaignHandler {
	return &CampaignHandler{
		campaignService: campaignService,
		updateService:   updateService,
		statsService:    statsService,
	}
}

// =====================================================
// CREATE CAMPAIGN
// =====================================================

// Create - POST /campaigns
func (h *CampaignHandler) Create(c *gin.Context) {
	// Step 1: Caller identity from auth middleware
	callerID, ok := middleware.CallerID(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	// Step 2: Bind body
	var req model.CreateCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "Invalid request body")
		return
	}

	// Step 3: Call service (validation happens at the write boundary)
	campaign, err := h.campaignService.Create(c.Request.Context(), callerID, req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, model.NewCampaignResponse(campaign))
}

// =====================================================
// READ / LIST
// =====================================================

// List - GET /campaigns?sort=newest|most-visited
func (h *CampaignHandler) List(c *gin.Context) {
	sort := c.DefaultQuery("sort", model.SortNewest)

	campaigns, err := h.campaignService.ListPublic(c.Request.Context(), sort)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, toResponses(campaigns))
}

// ListMostVisited - GET /campaigns/most-visited
func (h *CampaignHandler) ListMostVisited(c *gin.Context) {
	campaigns, err := h.campaignService.ListMostVisited(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, toResponses(campaigns))
}

// ListMine - GET /campaigns/user
func (h *CampaignHandler) ListMine(c *gin.Context) {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	campaigns, err := h.campaignService.ListByOwner(c.Request.Context(), callerID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, toResponses(campaigns))
}

// Get - GET /campaigns/:id (id or slug)
func (h *CampaignHandler) Get(c *gin.Context) {
	campaign, err := h.campaignService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, model.NewCampaignResponse(campaign))
}

// =====================================================
// MUTATIONS
// =====================================================

// Update - PUT /campaigns/:id
func (h *CampaignHandler) Update(c *gin.Context) {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	var req model.UpdateCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "Invalid request body")
		return
	}

	campaign, err := h.campaignService.Update(c.Request.Context(), c.Param("id"), callerID, req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, model.NewCampaignResponse(campaign))
}

// SetProgress - PATCH /campaigns/:id/progress
func (h *CampaignHandler) SetProgress(c *gin.Context) {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	var req model.SetProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "Invalid request body")
		return
	}

	campaign, err := h.campaignService.SetProgress(c.Request.Context(), c.Param("id"), callerID, req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, model.NewCampaignResponse(campaign))
}

// SetVisibility - PATCH /campaigns/:id/visibility
func (h *CampaignHandler) SetVisibility(c *gin.Context) {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	var req model.SetVisibilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "Invalid request body")
		return
	}

	campaign, err := h.campaignService.SetVisibility(c.Request.Context(), c.Param("id"), callerID, req.Hidden)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, model.NewCampaignResponse(campaign))
}

// IncrementView - POST /campaigns/:id/view
// Unauthenticated; each call counts. Clients treat failures here as
// best-effort telemetry loss, but the endpoint still reports them.
func (h *CampaignHandler) IncrementView(c *gin.Context) {
	count, err := h.campaignService.IncrementView(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, model.ViewCountResponse{ViewCount: count})
}

// Delete - DELETE /campaigns/:id
func (h *CampaignHandler) Delete(c *gin.Context) {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	if err := h.campaignService.Delete(c.Request.Context(), c.Param("id"), callerID); err != nil {
		h.handleServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

// =====================================================
// EDIT HISTORY
// =====================================================

// GetEditHistory - GET /campaigns/:id/edit-history
func (h *CampaignHandler) GetEditHistory(c *gin.Context) {
	entries, err := h.campaignService.GetEditHistory(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, entries)
}

// =====================================================
// UPDATE FEED
// =====================================================

// ListUpdates - GET /campaigns/:id/updates
func (h *CampaignHandler) ListUpdates(c *gin.Context) {
	updates, err := h.updateService.ListForCampaign(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, updates)
}

// CreateUpdate - POST /campaigns/:id/updates
func (h *CampaignHandler) CreateUpdate(c *gin.Context) {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	var req model.CreateUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "Invalid request body")
		return
	}

	update, err := h.updateService.Create(c.Request.Context(), c.Param("id"), callerID, req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, update)
}

// =====================================================
// STATS
// =====================================================

// GetPlatformStats - GET /campaigns/stats/platform
func (h *CampaignHandler) GetPlatformStats(c *gin.Context) {
	stats, err := h.statsService.GetPlatformStats(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, stats)
}

// =====================================================
// ERROR MAPPING
// =====================================================

func (h *CampaignHandler) handleServiceError(c *gin.Context, err error) {
	var vErrs validation.Errors
	switch {
	case errors.As(err, &vErrs):
		response.ValidationErrorWithDetails(c, "Validation failed", vErrs)
	case errors.Is(err, model.ErrValidation):
		response.ValidationError(c, err.Error())
	case errors.Is(err, model.ErrCampaignNotFound), errors.Is(err, model.ErrUpdateNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, model.ErrNotOwner):
		response.Forbidden(c, "You do not own this campaign")
	case errors.Is(err, model.ErrSlugTaken):
		response.Conflict(c, "Could not assign a unique slug, try a different title")
	default:
		logger.Error("campaign handler internal error", err)
		response.InternalServerError(c, "Something went wrong")
	}
}

func toResponses(campaigns []model.Campaign) []model.CampaignResponse {
	out := make([]model.CampaignResponse, 0, len(campaigns))
	for i := range campaigns {
		out = append(out, model.NewCampaignResponse(&campaigns[i]))
	}
	return out
}
