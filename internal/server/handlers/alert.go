package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/rewardly/cbs/internal/application/monitor"
)

type AlertHandler struct {
	monitorSvc monitor.IMonitorService
	logger     zerolog.Logger
}

func NewAlertHandler(monitorSvc monitor.IMonitorService, logger zerolog.Logger) *AlertHandler {
	return &AlertHandler{
		monitorSvc: monitorSvc,
		logger:     logger,
	}
}

func (h *AlertHandler) ListByMerchant(c *gin.Context) {
	limit, offset := pagination(c)
	openOnly := c.DefaultQuery("open", "false") == "true"

	alerts, err := h.monitorSvc.Alerts(c.Request.Context(), c.Param("merchant_id"), openOnly, limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"alerts": alerts, "count": len(alerts)})
}

func (h *AlertHandler) Acknowledge(c *gin.Context) {
	alert, err := h.monitorSvc.Acknowledge(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, alert)
}

func (h *AlertHandler) Check(c *gin.Context) {
	result, err := h.monitorSvc.Check(c.Request.Context(), c.Param("merchant_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *AlertHandler) Sweep(c *gin.Context) {
	result, err := h.monitorSvc.SweepAllActiveMerchants(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
