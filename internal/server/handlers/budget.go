package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/rewardly/cbs/internal/application/ledger"
	"github.com/rewardly/cbs/internal/application/monitor"
	"github.com/rewardly/cbs/internal/domain"
	"github.com/rewardly/cbs/pkg/money"
)

type BudgetHandler struct {
	ledgerSvc  ledger.ILedgerService
	monitorSvc monitor.IMonitorService
	logger     zerolog.Logger
}

func NewBudgetHandler(ledgerSvc ledger.ILedgerService, monitorSvc monitor.IMonitorService, logger zerolog.Logger) *BudgetHandler {
	return &BudgetHandler{
		ledgerSvc:  ledgerSvc,
		monitorSvc: monitorSvc,
		logger:     logger,
	}
}

type createBudgetRequest struct {
	MerchantID string `json:"merchant_id" binding:"required"`
	Currency   string `json:"currency"`
}

func (h *BudgetHandler) CreateBudget(c *gin.Context) {
	var req createBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Currency == "" {
		req.Currency = money.DefaultCurrency
	}
	if !money.ValidCurrency(req.Currency) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid currency code"})
		return
	}

	budget, err := h.ledgerSvc.GetOrCreateByMerchant(c.Request.Context(), req.MerchantID, req.Currency)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, budget)
}

func (h *BudgetHandler) GetBudgetByMerchant(c *gin.Context) {
	budget, err := h.ledgerSvc.GetBudgetByMerchant(c.Request.Context(), c.Param("merchant_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, budget)
}

type mutationRequest struct {
	Amount      string `json:"amount" binding:"required"`
	Description string `json:"description"`
}

// Load credits a merchant budget and then rechecks utilization so campaigns
// paused by auto-stop come back once the balance recovers.
func (h *BudgetHandler) Load(c *gin.Context) {
	mutation, ok := h.bindMutation(c)
	if !ok {
		return
	}

	mv, err := h.ledgerSvc.Load(c.Request.Context(), mutation)
	if err != nil {
		respondError(c, err)
		return
	}

	var check *monitor.CheckResult
	if budget, budgetErr := h.ledgerSvc.GetBudget(c.Request.Context(), mutation.BudgetID); budgetErr != nil {
		h.logger.Error().Err(budgetErr).Str("budget_id", mutation.BudgetID).Msg("Post-load budget lookup failed, recheck skipped")
	} else if check, err = h.monitorSvc.Recheck(c.Request.Context(), budget.MerchantID); err != nil {
		h.logger.Error().Err(err).Str("budget_id", mutation.BudgetID).Msg("Post-load recheck failed")
		check = nil
	}

	c.JSON(http.StatusOK, gin.H{
		"movement": mv,
		"check":    check,
	})
}

func (h *BudgetHandler) Deduct(c *gin.Context) {
	mutation, ok := h.bindMutation(c)
	if !ok {
		return
	}

	mv, err := h.ledgerSvc.Deduct(c.Request.Context(), mutation)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"movement": mv})
}

func (h *BudgetHandler) bindMutation(c *gin.Context) (ledger.MutationRequest, bool) {
	var req mutationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return ledger.MutationRequest{}, false
	}

	amount, err := money.ParseAmount(req.Amount)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return ledger.MutationRequest{}, false
	}

	return ledger.MutationRequest{
		BudgetID:    c.Param("budget_id"),
		Amount:      amount,
		ActorID:     c.GetString("actor_id"),
		Description: req.Description,
	}, true
}

type updateBudgetStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *BudgetHandler) UpdateStatus(c *gin.Context) {
	var req updateBudgetStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	budget, err := h.ledgerSvc.UpdateStatus(c.Request.Context(), c.Param("budget_id"), domain.BudgetStatus(req.Status))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, budget)
}

func (h *BudgetHandler) Movements(c *gin.Context) {
	limit, offset := pagination(c)
	movements, err := h.ledgerSvc.Movements(c.Request.Context(), c.Param("budget_id"), limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"movements": movements, "count": len(movements)})
}

func (h *BudgetHandler) MovementsByMerchant(c *gin.Context) {
	limit, offset := pagination(c)
	movements, err := h.ledgerSvc.MovementsByMerchant(c.Request.Context(), c.Param("merchant_id"), limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"movements": movements, "count": len(movements)})
}

func (h *BudgetHandler) Stats(c *gin.Context) {
	stats, err := h.ledgerSvc.Stats(c.Request.Context(), c.Param("merchant_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// AtRisk lists active budgets whose utilization is at or above the given
// threshold percentage. Ops tooling uses it to spot merchants approaching
// auto-stop before the sweep gets to them.
func (h *BudgetHandler) AtRisk(c *gin.Context) {
	threshold, err := decimal.NewFromString(c.DefaultQuery("threshold", "80"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid threshold"})
		return
	}

	budgets, err := h.ledgerSvc.GetBudgetsAtOrAbove(c.Request.Context(), threshold)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"budgets": budgets, "count": len(budgets)})
}

func (h *BudgetHandler) Utilization(c *gin.Context) {
	utilization, err := h.ledgerSvc.GetUtilization(c.Request.Context(), c.Param("merchant_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"merchant_id":            c.Param("merchant_id"),
		"utilization_percentage": utilization.StringFixed(2),
	})
}

func pagination(c *gin.Context) (limit, offset int) {
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
