package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/rewardly/cbs/internal/application/campaigns"
)

type CampaignHandler struct {
	campaignSvc campaigns.ICampaignService
	logger      zerolog.Logger
}

func NewCampaignHandler(campaignSvc campaigns.ICampaignService, logger zerolog.Logger) *CampaignHandler {
	return &CampaignHandler{
		campaignSvc: campaignSvc,
		logger:      logger,
	}
}

func (h *CampaignHandler) GetByID(c *gin.Context) {
	campaign, err := h.campaignSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, campaign)
}

func (h *CampaignHandler) ListByMerchant(c *gin.Context) {
	list, err := h.campaignSvc.ListByMerchant(c.Request.Context(), c.Param("merchant_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"campaigns": list, "count": len(list)})
}

func (h *CampaignHandler) PauseAll(c *gin.Context) {
	paused, err := h.campaignSvc.PauseActiveCampaigns(c.Request.Context(), c.Param("merchant_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"campaigns": paused, "count": len(paused)})
}

func (h *CampaignHandler) ResumeAll(c *gin.Context) {
	resumed, err := h.campaignSvc.ResumeCampaigns(c.Request.Context(), c.Param("merchant_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"campaigns": resumed, "count": len(resumed)})
}

func (h *CampaignHandler) CompleteExpired(c *gin.Context) {
	completed, err := h.campaignSvc.CompleteExpiredCampaigns(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"campaigns": completed, "count": len(completed)})
}
